package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
	referenceJoinSeparatorConstant          = ", "
)

const (
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitWorkTreeFlagConstant           = "--is-inside-work-tree"
	gitSymbolicFullNameFlagConstant   = "--symbolic-full-name"
	gitBranchSubcommandNameConstant   = "branch"
	gitShowCurrentFlagConstant        = "--show-current"
	gitStatusSubcommandNameConstant   = "status"
	gitFetchSubcommandNameConstant    = "fetch"
	gitPushSubcommandNameConstant     = "push"
	gitPullSubcommandNameConstant     = "pull"
	gitAddSubcommandNameConstant      = "add"
	gitAddAllFlagConstant             = "-A"
	gitCommitSubcommandNameConstant   = "commit"
	gitMessageFlagConstant            = "-m"
	gitLogSubcommandNameConstant      = "log"
	gitRevListSubcommandNameConstant  = "rev-list"
	gitDiffSubcommandNameConstant     = "diff"
	gitCachedFlagConstant             = "--cached"
	gitResetSubcommandNameConstant    = "reset"
	gitSoftFlagConstant               = "--soft"
	gitStashSubcommandNameConstant    = "stash"
	gitStashDefaultActionConstant     = "push"
	gitAllChangesLabelConstant        = "all changes"
	gitStagedDiffLabelConstant        = "staged"
	gitWorkingTreeDiffLabelConstant   = "working tree"
	gitSoftResetLabelConstant         = "soft"
	gitMixedResetLabelConstant        = "mixed"
	gitCurrentBranchLabelConstant     = "current branch"
	gitUpstreamRemoteLabelConstant    = "its upstream"
	gitFetchAllRemotesLabelConstant   = "all remotes"
)

// messageTemplates groups the four lifecycle templates of one git operation.
// Every template receives the operation subject values followed by the working directory;
// failure templates additionally receive the exit code and a standard error suffix,
// execution failure templates the failure description.
type messageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

var (
	gitWorkTreeTemplates = messageTemplates{
		start:            "Analyzing repository at %s",
		success:          "%s is a Git repository",
		failure:          "Could not confirm %s is a Git repository (exit code %d%s)",
		executionFailure: "Could not analyze %s: %s",
	}
	gitUpstreamTemplates = messageTemplates{
		start:            "Checking upstream branch configuration in %s",
		success:          "Checked upstream branch configuration in %s",
		failure:          "No upstream branch configured in %s (exit code %d%s)",
		executionFailure: "Unable to check upstream branch configuration in %s: %s",
	}
	gitRevisionTemplates = messageTemplates{
		start:            "Resolving %s in %s",
		success:          "Resolved %s in %s",
		failure:          "Failed to resolve %s in %s (exit code %d%s)",
		executionFailure: "Unable to resolve %s in %s: %s",
	}
	gitCurrentBranchTemplates = messageTemplates{
		start:            "Identifying current branch in %s",
		success:          "Identified current branch in %s",
		failure:          "Failed to identify current branch in %s (exit code %d%s)",
		executionFailure: "Unable to identify current branch in %s: %s",
	}
	gitBranchListTemplates = messageTemplates{
		start:            "Listing local branches in %s",
		success:          "Listed local branches in %s",
		failure:          "Failed to list local branches in %s (exit code %d%s)",
		executionFailure: "Unable to list local branches in %s: %s",
	}
	gitStatusTemplates = messageTemplates{
		start:            "Reviewing working tree status in %s",
		success:          "Collected working tree status for %s",
		failure:          "Failed to review working tree status in %s (exit code %d%s)",
		executionFailure: "Unable to review working tree status in %s: %s",
	}
	gitFetchTemplates = messageTemplates{
		start:            "Fetching from %s in %s",
		success:          "Fetched from %s in %s",
		failure:          "Failed to fetch from %s in %s (exit code %d%s)",
		executionFailure: "Unable to fetch from %s in %s: %s",
	}
	gitPushTemplates = messageTemplates{
		start:            "Pushing %s to %s from %s",
		success:          "Pushed %s to %s from %s",
		failure:          "Failed to push %s to %s from %s (exit code %d%s)",
		executionFailure: "Unable to push %s to %s from %s: %s",
	}
	gitPullTemplates = messageTemplates{
		start:            "Pulling upstream changes into %s",
		success:          "Pulled upstream changes into %s",
		failure:          "Failed to pull upstream changes into %s (exit code %d%s)",
		executionFailure: "Unable to pull upstream changes into %s: %s",
	}
	gitAddTemplates = messageTemplates{
		start:            "Staging %s in %s",
		success:          "Staged %s in %s",
		failure:          "Failed to stage %s in %s (exit code %d%s)",
		executionFailure: "Unable to stage %s in %s: %s",
	}
	gitCommitTemplates = messageTemplates{
		start:            "Creating commit with message %q in %s",
		success:          "Created commit with message %q in %s",
		failure:          "Failed to create commit with message %q in %s (exit code %d%s)",
		executionFailure: "Unable to create commit with message %q in %s: %s",
	}
	gitLogTemplates = messageTemplates{
		start:            "Reading commit history in %s",
		success:          "Read commit history in %s",
		failure:          "Failed to read commit history in %s (exit code %d%s)",
		executionFailure: "Unable to read commit history in %s: %s",
	}
	gitRevListTemplates = messageTemplates{
		start:            "Counting commits relative to upstream in %s",
		success:          "Counted commits relative to upstream in %s",
		failure:          "Failed to count commits relative to upstream in %s (exit code %d%s)",
		executionFailure: "Unable to count commits relative to upstream in %s: %s",
	}
	gitDiffTemplates = messageTemplates{
		start:            "Collecting %s diff in %s",
		success:          "Collected %s diff in %s",
		failure:          "Failed to collect %s diff in %s (exit code %d%s)",
		executionFailure: "Unable to collect %s diff in %s: %s",
	}
	gitResetTemplates = messageTemplates{
		start:            "Resetting to %s (%s) in %s",
		success:          "Reset to %s (%s) in %s",
		failure:          "Failed to reset to %s (%s) in %s (exit code %d%s)",
		executionFailure: "Unable to reset to %s (%s) in %s: %s",
	}
	gitStashTemplates = messageTemplates{
		start:            "Running stash %s in %s",
		success:          "Completed stash %s in %s",
		failure:          "Failed to run stash %s in %s (exit code %d%s)",
		executionFailure: "Unable to run stash %s in %s: %s",
	}
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	templates, subjects, recognized := formatter.describeGitOperation(command.Details.Arguments)
	if !recognized {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	return formatter.renderTemplates(templates, subjects, formatter.describeWorkingDirectory(command), result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitOperation(arguments []string) (messageTemplates, []any, bool) {
	subcommand := strings.TrimSpace(arguments[0])
	remainingArguments := arguments[1:]

	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		if containsArgument(remainingArguments, gitWorkTreeFlagConstant) {
			return gitWorkTreeTemplates, nil, true
		}
		if containsArgument(remainingArguments, gitSymbolicFullNameFlagConstant) {
			return gitUpstreamTemplates, nil, true
		}
		return gitRevisionTemplates, []any{formatter.resolveRevisionReference(remainingArguments)}, true
	case gitBranchSubcommandNameConstant:
		if containsArgument(remainingArguments, gitShowCurrentFlagConstant) {
			return gitCurrentBranchTemplates, nil, true
		}
		return gitBranchListTemplates, nil, true
	case gitStatusSubcommandNameConstant:
		return gitStatusTemplates, nil, true
	case gitFetchSubcommandNameConstant:
		remoteName := formatter.extractFirstNonFlagArgument(remainingArguments)
		if len(remoteName) == 0 {
			remoteName = gitFetchAllRemotesLabelConstant
		}
		return gitFetchTemplates, []any{remoteName}, true
	case gitPushSubcommandNameConstant:
		remoteName, references := formatter.extractRemoteAndReferences(remainingArguments)
		if len(remoteName) == 0 {
			remoteName = gitUpstreamRemoteLabelConstant
		}
		referenceLabel := formatter.joinReferences(references)
		if len(referenceLabel) == 0 {
			referenceLabel = gitCurrentBranchLabelConstant
		}
		return gitPushTemplates, []any{referenceLabel, remoteName}, true
	case gitPullSubcommandNameConstant:
		return gitPullTemplates, nil, true
	case gitAddSubcommandNameConstant:
		stagedLabel := gitAllChangesLabelConstant
		if !containsArgument(remainingArguments, gitAddAllFlagConstant) {
			stagedLabel = formatter.ensureValue(formatter.joinReferences(formatter.nonFlagArguments(remainingArguments)))
		}
		return gitAddTemplates, []any{stagedLabel}, true
	case gitCommitSubcommandNameConstant:
		return gitCommitTemplates, []any{formatter.extractCommitMessage(remainingArguments)}, true
	case gitLogSubcommandNameConstant:
		return gitLogTemplates, nil, true
	case gitRevListSubcommandNameConstant:
		return gitRevListTemplates, nil, true
	case gitDiffSubcommandNameConstant:
		diffLabel := gitWorkingTreeDiffLabelConstant
		if containsArgument(remainingArguments, gitCachedFlagConstant) {
			diffLabel = gitStagedDiffLabelConstant
		}
		return gitDiffTemplates, []any{diffLabel}, true
	case gitResetSubcommandNameConstant:
		resetMode := gitMixedResetLabelConstant
		if containsArgument(remainingArguments, gitSoftFlagConstant) {
			resetMode = gitSoftResetLabelConstant
		}
		return gitResetTemplates, []any{formatter.resolveRevisionReference(remainingArguments), resetMode}, true
	case gitStashSubcommandNameConstant:
		stashAction := formatter.extractFirstNonFlagArgument(remainingArguments)
		if len(stashAction) == 0 {
			stashAction = gitStashDefaultActionConstant
		}
		return gitStashTemplates, []any{stashAction}, true
	default:
		return messageTemplates{}, nil, false
	}
}

func (formatter CommandMessageFormatter) renderTemplates(templates messageTemplates, subjects []any, workingDirectory string, result ExecutionResult, failure error, stage messageStage) string {
	values := append(append([]any{}, subjects...), workingDirectory)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, values...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, values...)
	case messageStageFailure:
		values = append(values, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(templates.failure, values...)
	case messageStageExecutionFailure:
		values = append(values, formatter.describeFailure(failure))
		return fmt.Sprintf(templates.executionFailure, values...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func (formatter CommandMessageFormatter) resolveRevisionReference(arguments []string) string {
	if len(arguments) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return formatter.ensureValue(arguments[len(arguments)-1])
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) nonFlagArguments(arguments []string) []string {
	values := []string{}
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		values = append(values, trimmed)
	}
	return values
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	values := formatter.nonFlagArguments(arguments)
	if len(values) == 0 {
		return emptyStringConstant
	}
	return values[0]
}

func (formatter CommandMessageFormatter) extractRemoteAndReferences(arguments []string) (string, []string) {
	values := formatter.nonFlagArguments(arguments)
	if len(values) == 0 {
		return emptyStringConstant, nil
	}
	return values[0], values[1:]
}

func (formatter CommandMessageFormatter) joinReferences(references []string) string {
	return strings.Join(references, referenceJoinSeparatorConstant)
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == gitMessageFlagConstant && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return fallbackUnknownValueLabelConstant
}
