package diff

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
	commandUseConstant              = "diff [paths...]"
	commandAliasConstant            = "d"
	commandShortDescriptionConstant = "Show unstaged or staged changes"
	commandLongDescriptionConstant  = "diff prints git's diff of unstaged changes, or of staged changes with --staged, optionally limited to the given paths."
	stagedFlagNameConstant          = "staged"
	stagedFlagShorthandConstant     = "s"
	stagedFlagUsageConstant         = "Show staged changes"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the diff command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	GitRepositoryManager         shared.GitRepositoryManager
	HumanReadableLoggingProvider func() bool
	ColorModeProvider            func() output.ColorMode
}

// Build constructs the diff command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Aliases: []string{commandAliasConstant},
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}
	command.Flags().BoolP(stagedFlagNameConstant, stagedFlagShorthandConstant, false, stagedFlagUsageConstant)
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	writer := command.OutOrStdout()
	palette := output.ResolvePalette(writer, builder.ColorModeProvider)

	service, serviceError := builder.resolveService()
	if serviceError != nil {
		return serviceError
	}

	staged, _ := command.Flags().GetBool(stagedFlagNameConstant)
	diffText, diffError := service.Collect(command.Context(), Options{
		RepositoryPath: utils.NewCommandContextAccessor().WorkingDirectory(command.Context()),
		Staged:         staged,
		Paths:          arguments,
	})
	if errors.Is(diffError, shared.ErrNotRepository) {
		return output.ReportNotRepository(writer, palette)
	}
	if diffError != nil {
		return diffError
	}

	_, _ = fmt.Fprintln(writer, diffText)
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
