package stash

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/dependencies"
	"github.com/temirov/clawgit/internal/output"
	"github.com/temirov/clawgit/internal/shared"
	"github.com/temirov/clawgit/internal/utils"
)

const (
	commandUseConstant                  = "stash [save|pop|list|drop]"
	commandShortDescriptionConstant     = "Stash, restore, list, or drop changes"
	commandLongDescriptionConstant      = "stash shelves uncommitted changes (save, the default), reapplies the latest stash (pop), lists stashes (list), or discards the latest stash (drop)."
	stashedMessageConstant              = "Stashed changes"
	poppedMessageConstant               = "Popped stash"
	droppedMessageConstant              = "Dropped stash"
	emptyStashListMessageConstant       = "No stashes"
	unknownActionNoticeTemplateConstant = "Unknown stash action: %s"
)

var actionSuccessMessages = map[Action]string{
	ActionSave: stashedMessageConstant,
	ActionPop:  poppedMessageConstant,
	ActionDrop: droppedMessageConstant,
}

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the stash command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	GitRepositoryManager         shared.GitRepositoryManager
	HumanReadableLoggingProvider func() bool
	ColorModeProvider            func() output.ColorMode
}

// Build constructs the stash command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:       commandUseConstant,
		Short:     commandShortDescriptionConstant,
		Long:      commandLongDescriptionConstant,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(ActionSave), string(ActionPop), string(ActionList), string(ActionDrop)},
		RunE:      builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	writer := command.OutOrStdout()
	palette := output.ResolvePalette(writer, builder.ColorModeProvider)
	repositoryPath := utils.NewCommandContextAccessor().WorkingDirectory(command.Context())

	service, serviceError := builder.resolveService()
	if serviceError != nil {
		return serviceError
	}
	if repositoryError := service.EnsureRepository(command.Context(), repositoryPath); repositoryError != nil {
		return output.ReportNotRepository(writer, palette)
	}

	rawAction := ""
	if len(arguments) > 0 {
		rawAction = arguments[0]
	}
	action, parseError := ParseAction(rawAction)
	var unknownActionError UnknownActionError
	if errors.As(parseError, &unknownActionError) {
		_, _ = fmt.Fprintf(writer, unknownActionNoticeTemplateConstant+"\n", unknownActionError.Action)
		return nil
	}

	stashOutput, stashError := service.Run(command.Context(), repositoryPath, action)
	if stashError != nil {
		return stashError
	}

	if action == ActionList {
		if len(stashOutput) == 0 {
			stashOutput = emptyStashListMessageConstant
		}
		_, _ = fmt.Fprintln(writer, stashOutput)
		return nil
	}
	_, _ = fmt.Fprintln(writer, palette.SuccessLine(actionSuccessMessages[action]))
	return nil
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
