package branches

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/dependencies"
	"github.com/temirov/clawgit/internal/output"
	"github.com/temirov/clawgit/internal/shared"
	"github.com/temirov/clawgit/internal/utils"
)

const (
	commandUseConstant              = "branches"
	commandAliasConstant            = "br"
	commandShortDescriptionConstant = "List local branches"
	commandLongDescriptionConstant  = "branches lists local branches in git's order and marks the checked-out branch with an asterisk."
	jsonFlagNameConstant            = "json"
	jsonFlagUsageConstant           = "Print {\"current\", \"branches\"} as compact JSON"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the branches command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	GitRepositoryManager         shared.GitRepositoryManager
	HumanReadableLoggingProvider func() bool
	ColorModeProvider            func() output.ColorMode
}

// Build constructs the branches command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Aliases: []string{commandAliasConstant},
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.run,
	}
	command.Flags().Bool(jsonFlagNameConstant, false, jsonFlagUsageConstant)
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	writer := command.OutOrStdout()
	palette := output.ResolvePalette(writer, builder.ColorModeProvider)

	service, serviceError := builder.resolveService()
	if serviceError != nil {
		return serviceError
	}

	listing, listError := service.List(command.Context(), utils.NewCommandContextAccessor().WorkingDirectory(command.Context()))
	if errors.Is(listError, shared.ErrNotRepository) {
		return output.ReportNotRepository(writer, palette)
	}
	if listError != nil {
		return listError
	}

	jsonRequested, _ := command.Flags().GetBool(jsonFlagNameConstant)
	if jsonRequested {
		return RenderListingJSON(writer, listing)
	}
	RenderListing(writer, palette, listing)
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

	return NewService(ServiceDependencies{RepositoryManager: repositoryManager})
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
