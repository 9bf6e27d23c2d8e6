package execshell_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/clawgit/internal/execshell"
)

const (
	testExecutionSuccessCaseNameConstant         = "success"
	testExecutionFailureCaseNameConstant         = "failure_exit_code"
	testExecutionRunnerErrorCaseNameConstant     = "runner_error"
	testCommandArgumentConstant                  = "status"
	testPorcelainArgumentConstant                = "--porcelain"
	testWorkingDirectoryConstant                 = "."
	testStandardErrorOutputConstant              = "fatal: not a git repository"
	testLoggerInitializationCaseNameConstant     = "logger_validation"
	testRunnerInitializationCaseNameConstant     = "runner_validation"
	testSuccessfulInitializationCaseNameConstant = "successful_initialization"
	testGitExecutableNameConstant                = "git"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, runner.executionError
}

type recordingObserver struct {
	started   int
	completed []execshell.ExecutionResult
	failures  []error
}

func (observer *recordingObserver) CommandStarted(execshell.ShellCommand) {
	observer.started++
}

func (observer *recordingObserver) CommandCompleted(_ execshell.ShellCommand, result execshell.ExecutionResult) {
	observer.completed = append(observer.completed, result)
}

func (observer *recordingObserver) CommandExecutionFailed(_ execshell.ShellCommand, failure error) {
	observer.failures = append(observer.failures, failure)
}

func TestShellExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectError   error
		expectSuccess bool
	}{
		{
			name:        testLoggerInitializationCaseNameConstant,
			runner:      &recordingCommandRunner{},
			expectError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:        testRunnerInitializationCaseNameConstant,
			logger:      zap.NewNop(),
			expectError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:          testSuccessfulInitializationCaseNameConstant,
			logger:        zap.NewNop(),
			runner:        &recordingCommandRunner{},
			expectSuccess: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			if testCase.expectSuccess {
				require.NoError(testInstance, creationError)
				require.NotNil(testInstance, executor)
				return
			}
			require.ErrorIs(testInstance, creationError, testCase.expectError)
			require.Nil(testInstance, executor)
		})
	}
}

func TestShellExecutorExecuteBehavior(testInstance *testing.T) {
	testCases := []struct {
		name              string
		runnerResult      execshell.ExecutionResult
		runnerError       error
		expectErrorType   any
		expectedLogCount  int
		expectedCompleted int
		expectedFailures  int
	}{
		{
			name:              testExecutionSuccessCaseNameConstant,
			runnerResult:      execshell.ExecutionResult{StandardOutput: " M main.go\n"},
			expectedLogCount:  2,
			expectedCompleted: 1,
		},
		{
			name:              testExecutionFailureCaseNameConstant,
			runnerResult:      execshell.ExecutionResult{StandardError: testStandardErrorOutputConstant, ExitCode: 128},
			expectErrorType:   execshell.CommandFailedError{},
			expectedLogCount:  2,
			expectedCompleted: 1,
		},
		{
			name:             testExecutionRunnerErrorCaseNameConstant,
			runnerError:      errors.New("executable file not found"),
			expectErrorType:  execshell.CommandExecutionError{},
			expectedLogCount: 2,
			expectedFailures: 1,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			recordingRunner := &recordingCommandRunner{
				executionResult: testCase.runnerResult,
				executionError:  testCase.runnerError,
			}
			eventObserver := &recordingObserver{}

			shellExecutor, creationError := execshell.NewShellExecutor(zap.New(observerCore), recordingRunner, nil, eventObserver)
			require.NoError(testInstance, creationError)

			commandDetails := execshell.CommandDetails{
				Arguments:        []string{testCommandArgumentConstant, testPorcelainArgumentConstant},
				WorkingDirectory: testWorkingDirectoryConstant,
			}
			executionResult, executionError := shellExecutor.ExecuteGit(context.Background(), commandDetails)

			if testCase.expectErrorType != nil {
				require.Error(testInstance, executionError)
				require.IsType(testInstance, testCase.expectErrorType, executionError)
				require.Empty(testInstance, executionResult.StandardOutput)
			} else {
				require.NoError(testInstance, executionError)
				require.Equal(testInstance, testCase.runnerResult.StandardOutput, executionResult.StandardOutput)
			}

			require.Len(testInstance, observerLogs.All(), testCase.expectedLogCount)
			require.Equal(testInstance, 1, eventObserver.started)
			require.Len(testInstance, eventObserver.completed, testCase.expectedCompleted)
			require.Len(testInstance, eventObserver.failures, testCase.expectedFailures)

			require.Len(testInstance, recordingRunner.recordedCommands, 1)
			require.Equal(testInstance, execshell.CommandGit, recordingRunner.recordedCommands[0].Name)
		})
	}
}

func TestCommandFailedErrorIncludesStandardError(testInstance *testing.T) {
	failure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"push"}}},
		Result:  execshell.ExecutionResult{ExitCode: 1, StandardError: "  rejected  \n"},
	}
	require.Equal(testInstance, "git push failed with exit code 1: rejected", failure.Error())
}

func TestCommandExecutionErrorUnwrapsCause(testInstance *testing.T) {
	cause := errors.New("exec: \"git\": executable file not found in $PATH")
	executionError := execshell.CommandExecutionError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"status"}}},
		Cause:   cause,
	}
	require.ErrorIs(testInstance, executionError, cause)
	require.Contains(testInstance, executionError.Error(), "git status failed")
}

func TestOSCommandRunnerReportsExitCodes(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(testGitExecutableNameConstant); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	runner := execshell.NewOSCommandRunner()

	versionResult, versionError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"--version"}},
	})
	require.NoError(testInstance, versionError)
	require.Zero(testInstance, versionResult.ExitCode)
	require.Contains(testInstance, versionResult.StandardOutput, "git version")

	failureResult, failureError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:            []string{"rev-parse", "--is-inside-work-tree"},
			WorkingDirectory:     testInstance.TempDir(),
			EnvironmentVariables: map[string]string{"GIT_CEILING_DIRECTORIES": "/"},
		},
	})
	require.NoError(testInstance, failureError)
	require.NotZero(testInstance, failureResult.ExitCode)
	require.NotEmpty(testInstance, failureResult.StandardError)
}
