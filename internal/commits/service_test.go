package commits_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/clawgit/internal/commits"
	"github.com/temirov/clawgit/internal/shared"
	"github.com/temirov/clawgit/internal/testsupport"
)

const testRepositoryPathConstant = "/tmp/repository"

func newTestService(testInstance *testing.T, executor *testsupport.GitExecutorStub, manager *testsupport.RepositoryManagerStub) *commits.Service {
	testInstance.Helper()
	service, serviceError := commits.NewService(commits.ServiceDependencies{GitExecutor: executor, RepositoryManager: manager})
	require.NoError(testInstance, serviceError)
	return service
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, missingExecutorError := commits.NewService(commits.ServiceDependencies{RepositoryManager: &testsupport.RepositoryManagerStub{}})
	require.ErrorIs(testInstance, missingExecutorError, commits.ErrGitExecutorNotConfigured)

	_, missingManagerError := commits.NewService(commits.ServiceDependencies{GitExecutor: &testsupport.GitExecutorStub{}})
	require.ErrorIs(testInstance, missingManagerError, commits.ErrRepositoryManagerNotConfigured)
}

func TestServiceNeedsStaging(testInstance *testing.T) {
	testCases := []struct {
		name     string
		stageAll bool
		state    shared.WorkingTreeState
		expected bool
	}{
		{name: "stage_all_requested", stageAll: true, state: shared.WorkingTreeState{Staged: []shared.ChangeEntry{{StatusCode: "M", Path: "a"}}}, expected: true},
		{name: "nothing_staged", state: shared.WorkingTreeState{Unstaged: []shared.ChangeEntry{{StatusCode: "M", Path: "a"}}}, expected: true},
		{name: "already_staged", state: shared.WorkingTreeState{Staged: []shared.ChangeEntry{{StatusCode: "A", Path: "a"}}}, expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			service := newTestService(testInstance, &testsupport.GitExecutorStub{}, &testsupport.RepositoryManagerStub{State: testCase.state})
			needsStaging, stagingError := service.NeedsStaging(context.Background(), testRepositoryPathConstant, testCase.stageAll)
			require.NoError(testInstance, stagingError)
			require.Equal(testInstance, testCase.expected, needsStaging)
		})
	}
}

func TestServiceGitInvocations(testInstance *testing.T) {
	testCases := []struct {
		name              string
		operation         func(*commits.Service) error
		expectedArguments []string
		expectNetworkEnv  bool
	}{
		{
			name:              "stage_all",
			operation:         func(service *commits.Service) error { return service.StageAll(context.Background(), testRepositoryPathConstant) },
			expectedArguments: []string{"add", "-A"},
		},
		{
			name: "commit_passes_message_verbatim",
			operation: func(service *commits.Service) error {
				return service.Commit(context.Background(), testRepositoryPathConstant, `fix "quoted" $HOME`)
			},
			expectedArguments: []string{"commit", "-m", `fix "quoted" $HOME`},
		},
		{
			name:              "push",
			operation:         func(service *commits.Service) error { return service.Push(context.Background(), testRepositoryPathConstant) },
			expectedArguments: []string{"push"},
			expectNetworkEnv:  true,
		},
		{
			name: "undo_soft",
			operation: func(service *commits.Service) error {
				return service.UndoLastCommit(context.Background(), testRepositoryPathConstant, true)
			},
			expectedArguments: []string{"reset", "--soft", "HEAD~1"},
		},
		{
			name: "undo_mixed",
			operation: func(service *commits.Service) error {
				return service.UndoLastCommit(context.Background(), testRepositoryPathConstant, false)
			},
			expectedArguments: []string{"reset", "HEAD~1"},
		},
		{
			name: "oneline_log",
			operation: func(service *commits.Service) error {
				_, logError := service.OnelineLog(context.Background(), testRepositoryPathConstant, 5)
				return logError
			},
			expectedArguments: []string{"log", "--max-count=5", "--oneline"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &testsupport.GitExecutorStub{}
			service := newTestService(testInstance, executor, &testsupport.RepositoryManagerStub{})

			require.NoError(testInstance, testCase.operation(service))
			require.Len(testInstance, executor.ExecutedCommands, 1)
			require.Equal(testInstance, testCase.expectedArguments, executor.ExecutedCommands[0].Arguments)
			require.Equal(testInstance, testRepositoryPathConstant, executor.ExecutedCommands[0].WorkingDirectory)
			if testCase.expectNetworkEnv {
				require.Equal(testInstance, "0", executor.ExecutedCommands[0].EnvironmentVariables["GIT_TERMINAL_PROMPT"])
			} else {
				require.Empty(testInstance, executor.ExecutedCommands[0].EnvironmentVariables)
			}
		})
	}
}

func TestServiceResolveMessage(testInstance *testing.T) {
	service := newTestService(testInstance, &testsupport.GitExecutorStub{}, &testsupport.RepositoryManagerStub{Staged: []string{"a.go", "b.go"}})

	providedMessage, providedError := service.ResolveMessage(context.Background(), testRepositoryPathConstant, "explicit")
	require.NoError(testInstance, providedError)
	require.Equal(testInstance, "explicit", providedMessage)

	synthesizedMessage, synthesizedError := service.ResolveMessage(context.Background(), testRepositoryPathConstant, "  ")
	require.NoError(testInstance, synthesizedError)
	require.Equal(testInstance, "update a.go, b.go", synthesizedMessage)
}

func TestServiceCommitRejectsBlankMessage(testInstance *testing.T) {
	executor := &testsupport.GitExecutorStub{}
	service := newTestService(testInstance, executor, &testsupport.RepositoryManagerStub{})
	require.ErrorIs(testInstance, service.Commit(context.Background(), testRepositoryPathConstant, " "), commits.ErrCommitMessageRequired)
	require.Empty(testInstance, executor.ExecutedCommands)
}

func TestServiceWrapsGitFailures(testInstance *testing.T) {
	pushFailure := errors.New("rejected")
	executor := &testsupport.GitExecutorStub{Responses: map[string]testsupport.GitResponse{"push": {Error: pushFailure}}}
	service := newTestService(testInstance, executor, &testsupport.RepositoryManagerStub{})

	pushError := service.Push(context.Background(), testRepositoryPathConstant)
	require.ErrorIs(testInstance, pushError, pushFailure)
	require.Contains(testInstance, pushError.Error(), "failed to push")
}
