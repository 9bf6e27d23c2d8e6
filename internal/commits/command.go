package commits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/dependencies"
	"github.com/temirov/clawgit/internal/output"
	"github.com/temirov/clawgit/internal/shared"
	"github.com/temirov/clawgit/internal/utils"
)

const (
	commitCommandUseConstant              = "commit [message]"
	commitCommandAliasConstant            = "c"
	commitCommandShortDescriptionConstant = "Stage and commit changes, optionally pushing"
	commitCommandLongDescriptionConstant  = "commit stages all changes when --all is set or nothing is staged, then commits. Without a message one is synthesized from the staged files: up to three are named, more are counted."
	commitCommandExampleConstant          = "claw-git commit \"fix parser\"\nclaw-git commit -ap"
	undoCommandUseConstant                = "undo"
	undoCommandShortDescriptionConstant   = "Undo the last commit"
	undoCommandLongDescriptionConstant    = "undo resets the branch to the previous commit. Changes stay staged with --soft and become unstaged otherwise."
	logCommandUseConstant                 = "log [count]"
	logCommandAliasConstant               = "l"
	logCommandShortDescriptionConstant    = "Show recent commits"
	logCommandLongDescriptionConstant     = "log shows the last commits with hash, subject, and relative time. A count that is not a positive integer falls back to tools.log.count."
	allFlagNameConstant                   = "all"
	allFlagShorthandConstant              = "a"
	allFlagUsageConstant                  = "Stage all changes before committing"
	pushFlagNameConstant                  = "push"
	pushFlagShorthandConstant             = "p"
	pushFlagUsageConstant                 = "Push after committing"
	softFlagNameConstant                  = "soft"
	softFlagShorthandConstant             = "s"
	softFlagUsageConstant                 = "Keep the undone changes staged"
	onelineFlagNameConstant               = "oneline"
	onelineFlagUsageConstant              = "Print git's one-line log"
	stagedAllMessageConstant              = "Staged all changes"
	nothingToCommitNoticeConstant         = "Nothing to commit"
	committedMessagePrefixConstant        = "Committed: "
	pushingMessageConstant                = "Pushing..."
	pushedMessageConstant                 = "Pushed"
	undoSoftMessageConstant               = "Undid last commit (changes kept staged)"
	undoMixedMessageConstant              = "Undid last commit (changes unstaged)"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the commit, undo, and log commands.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	GitRepositoryManager         shared.GitRepositoryManager
	HumanReadableLoggingProvider func() bool
	ColorModeProvider            func() output.ColorMode
	LogConfigurationProvider     func() LogConfiguration
}

// Build constructs the commit command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commitCommandUseConstant,
		Aliases: []string{commitCommandAliasConstant},
		Short:   commitCommandShortDescriptionConstant,
		Long:    commitCommandLongDescriptionConstant,
		Example: commitCommandExampleConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE:    builder.runCommit,
	}
	command.Flags().BoolP(allFlagNameConstant, allFlagShorthandConstant, false, allFlagUsageConstant)
	command.Flags().BoolP(pushFlagNameConstant, pushFlagShorthandConstant, false, pushFlagUsageConstant)
	return command, nil
}

// BuildUndo constructs the undo command.
func (builder *CommandBuilder) BuildUndo() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   undoCommandUseConstant,
		Short: undoCommandShortDescriptionConstant,
		Long:  undoCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runUndo,
	}
	command.Flags().BoolP(softFlagNameConstant, softFlagShorthandConstant, false, softFlagUsageConstant)
	return command, nil
}

// BuildLog constructs the log command.
func (builder *CommandBuilder) BuildLog() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     logCommandUseConstant,
		Aliases: []string{logCommandAliasConstant},
		Short:   logCommandShortDescriptionConstant,
		Long:    logCommandLongDescriptionConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE:    builder.runLog,
	}
	command.Flags().Bool(onelineFlagNameConstant, false, onelineFlagUsageConstant)
	return command, nil
}

func (builder *CommandBuilder) runCommit(command *cobra.Command, arguments []string) error {
	session, sessionError := builder.openSession(command)
	if sessionError != nil {
		return sessionError
	}

	stageAll, _ := command.Flags().GetBool(allFlagNameConstant)
	pushAfterCommit, _ := command.Flags().GetBool(pushFlagNameConstant)

	needsStaging, stagingError := session.service.NeedsStaging(command.Context(), session.repositoryPath, stageAll)
	if stagingError != nil {
		return stagingError
	}
	if needsStaging {
		if stageError := session.service.StageAll(command.Context(), session.repositoryPath); stageError != nil {
			return stageError
		}
		session.println(session.palette.Muted(stagedAllMessageConstant))
	}

	providedMessage := ""
	if len(arguments) > 0 {
		providedMessage = arguments[0]
	}
	message, messageError := session.service.ResolveMessage(command.Context(), session.repositoryPath, providedMessage)
	if errors.Is(messageError, ErrNothingToCommit) {
		session.println(session.palette.Warning(nothingToCommitNoticeConstant))
		return nil
	}
	if messageError != nil {
		return messageError
	}

	if commitError := session.service.Commit(command.Context(), session.repositoryPath, message); commitError != nil {
		return commitError
	}
	session.println(session.palette.SuccessLine(committedMessagePrefixConstant + session.palette.Emphasis(message)))

	if !pushAfterCommit {
		return nil
	}
	session.println(session.palette.Muted(pushingMessageConstant))
	if pushError := session.service.Push(command.Context(), session.repositoryPath); pushError != nil {
		return pushError
	}
	session.println(session.palette.SuccessLine(pushedMessageConstant))
	return nil
}

func (builder *CommandBuilder) runUndo(command *cobra.Command, arguments []string) error {
	session, sessionError := builder.openSession(command)
	if sessionError != nil {
		return sessionError
	}

	soft, _ := command.Flags().GetBool(softFlagNameConstant)
	if undoError := session.service.UndoLastCommit(command.Context(), session.repositoryPath, soft); undoError != nil {
		return undoError
	}

	if soft {
		session.println(session.palette.SuccessLine(undoSoftMessageConstant))
	} else {
		session.println(session.palette.SuccessLine(undoMixedMessageConstant))
	}
	return nil
}

func (builder *CommandBuilder) runLog(command *cobra.Command, arguments []string) error {
	session, sessionError := builder.openSession(command)
	if sessionError != nil {
		return sessionError
	}

	count := builder.resolveLogCount(arguments)
	oneline, _ := command.Flags().GetBool(onelineFlagNameConstant)
	if oneline {
		logOutput, logError := session.service.OnelineLog(command.Context(), session.repositoryPath, count)
		if logError != nil {
			return logError
		}
		session.println(logOutput)
		return nil
	}

	recentCommits, logError := session.service.RecentCommits(command.Context(), session.repositoryPath, count)
	if logError != nil {
		return logError
	}
	RenderLog(command.OutOrStdout(), session.palette, recentCommits)
	return nil
}

// resolveLogCount accepts a positive integer argument and otherwise uses the configured count.
func (builder *CommandBuilder) resolveLogCount(arguments []string) int {
	configuration := DefaultLogConfiguration()
	if builder.LogConfigurationProvider != nil {
		configuration = builder.LogConfigurationProvider()
	}
	configuration = configuration.sanitize()

	if len(arguments) == 0 {
		return configuration.Count
	}
	requestedCount, parseError := strconv.Atoi(strings.TrimSpace(arguments[0]))
	if parseError != nil || requestedCount <= 0 {
		return configuration.Count
	}
	return requestedCount
}

type commandSession struct {
	command        *cobra.Command
	service        *Service
	palette        output.Palette
	repositoryPath string
}

func (session commandSession) println(line string) {
	_, _ = fmt.Fprintln(session.command.OutOrStdout(), line)
}

// openSession resolves collaborators and verifies the working directory is a repository.
func (builder *CommandBuilder) openSession(command *cobra.Command) (commandSession, error) {
	writer := command.OutOrStdout()
	session := commandSession{
		command:        command,
		palette:        output.ResolvePalette(writer, builder.ColorModeProvider),
		repositoryPath: utils.NewCommandContextAccessor().WorkingDirectory(command.Context()),
	}

	service, serviceError := builder.resolveService()
	if serviceError != nil {
		return commandSession{}, serviceError
	}
	session.service = service

	if repositoryError := service.EnsureRepository(command.Context(), session.repositoryPath); repositoryError != nil {
		return commandSession{}, output.ReportNotRepository(writer, session.palette)
	}
	return session, nil
}

func (builder *CommandBuilder) resolveService() (*Service, error) {
	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}

	repositoryManager, managerError := dependencies.ResolveRepositoryManager(builder.GitRepositoryManager, gitExecutor)
	if managerError != nil {
		return nil, managerError
	}

	return NewService(ServiceDependencies{GitExecutor: gitExecutor, RepositoryManager: repositoryManager})
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
