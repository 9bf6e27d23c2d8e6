package branches_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/branches"
	"github.com/temirov/clawgit/internal/output"
	"github.com/temirov/clawgit/internal/shared"
	"github.com/temirov/clawgit/internal/testsupport"
)

func runBranchesCommand(testInstance *testing.T, manager *testsupport.RepositoryManagerStub, arguments ...string) (string, error) {
	testInstance.Helper()
	builder := branches.CommandBuilder{
		LoggerProvider:       func() *zap.Logger { return zap.NewNop() },
		GitRepositoryManager: manager,
		ColorModeProvider:    func() output.ColorMode { return output.ColorModeNever },
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(arguments)
	command.SilenceUsage = true
	command.SilenceErrors = true
	executionError := command.ExecuteContext(context.Background())
	return outputBuffer.String(), executionError
}

func TestBranchesCommandHumanOutput(testInstance *testing.T) {
	manager := &testsupport.RepositoryManagerStub{Branch: "main", Branches: []string{"feature/x", "main"}}
	commandOutput, executionError := runBranchesCommand(testInstance, manager)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "\n  feature/x\n* main\n\n", commandOutput)
}

func TestBranchesCommandJSON(testInstance *testing.T) {
	testCases := []struct {
		name             string
		manager          *testsupport.RepositoryManagerStub
		expectedDocument string
	}{
		{
			name:             "lists_branches",
			manager:          &testsupport.RepositoryManagerStub{Branch: "main", Branches: []string{"dev", "main"}},
			expectedDocument: "{\"current\":\"main\",\"branches\":[\"dev\",\"main\"]}\n",
		},
		{
			name:             "empty_repository",
			manager:          &testsupport.RepositoryManagerStub{Branch: "main"},
			expectedDocument: "{\"current\":\"main\",\"branches\":[]}\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			commandOutput, executionError := runBranchesCommand(testInstance, testCase.manager, "--json")
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedDocument, commandOutput)

			var decoded branches.Listing
			require.NoError(testInstance, json.Unmarshal([]byte(commandOutput), &decoded))
			require.Equal(testInstance, testCase.manager.Branch, decoded.Current)
		})
	}
}

func TestBranchesCommandOutsideRepository(testInstance *testing.T) {
	commandOutput, executionError := runBranchesCommand(testInstance, &testsupport.RepositoryManagerStub{NotRepository: true})
	require.Equal(testInstance, "Not a git repository\n", commandOutput)
	var reportedError shared.ReportedError
	require.True(testInstance, errors.As(executionError, &reportedError))
}

func TestBranchesServicePropagatesFailures(testInstance *testing.T) {
	listFailure := errors.New("branch failed")
	service, serviceError := branches.NewService(branches.ServiceDependencies{
		RepositoryManager: &testsupport.RepositoryManagerStub{Branch: "main", BranchesError: listFailure},
	})
	require.NoError(testInstance, serviceError)

	_, listError := service.List(context.Background(), "")
	require.ErrorIs(testInstance, listError, listFailure)

	_, missingError := branches.NewService(branches.ServiceDependencies{})
	require.ErrorIs(testInstance, missingError, branches.ErrRepositoryManagerNotConfigured)
}
