package execshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/execshell"
)

type sequenceObserver struct {
	events *[]string
	label  string
}

func (observer sequenceObserver) CommandStarted(execshell.ShellCommand) {
	*observer.events = append(*observer.events, observer.label+":started")
}

func (observer sequenceObserver) CommandCompleted(execshell.ShellCommand, execshell.ExecutionResult) {
	*observer.events = append(*observer.events, observer.label+":completed")
}

func (observer sequenceObserver) CommandExecutionFailed(execshell.ShellCommand, error) {
	*observer.events = append(*observer.events, observer.label+":failed")
}

func TestShellExecutorNotifiesEveryObserver(testInstance *testing.T) {
	testCases := []struct {
		name           string
		runnerError    error
		expectedEvents []string
	}{
		{
			name:           "completed",
			expectedEvents: []string{"first:started", "second:started", "first:completed", "second:completed"},
		},
		{
			name:           "execution_failed",
			runnerError:    errors.New("fork failed"),
			expectedEvents: []string{"first:started", "second:started", "first:failed", "second:failed"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			recordedEvents := []string{}
			runner := &recordingCommandRunner{executionError: testCase.runnerError}
			shellExecutor, creationError := execshell.NewShellExecutor(
				zap.NewNop(),
				runner,
				sequenceObserver{events: &recordedEvents, label: "first"},
				nil,
				sequenceObserver{events: &recordedEvents, label: "second"},
			)
			require.NoError(testInstance, creationError)

			_, _ = shellExecutor.ExecuteGit(context.Background(), execshell.CommandDetails{Arguments: []string{testCommandArgumentConstant}})
			require.Equal(testInstance, testCase.expectedEvents, recordedEvents)
		})
	}
}
