package execshell

// CommandEventObserver receives lifecycle notifications for git invocations.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports failures to start or await git, before any exit code exists.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// observerGroup forwards every event to its members in registration order.
type observerGroup []CommandEventObserver

func newObserverGroup(observers []CommandEventObserver) observerGroup {
	group := make(observerGroup, 0, len(observers))
	for _, candidate := range observers {
		if candidate != nil {
			group = append(group, candidate)
		}
	}
	return group
}

func (group observerGroup) CommandStarted(command ShellCommand) {
	for _, member := range group {
		member.CommandStarted(command)
	}
}

func (group observerGroup) CommandCompleted(command ShellCommand, result ExecutionResult) {
	for _, member := range group {
		member.CommandCompleted(command, result)
	}
}

func (group observerGroup) CommandExecutionFailed(command ShellCommand, failure error) {
	for _, member := range group {
		member.CommandExecutionFailed(command, failure)
	}
}
