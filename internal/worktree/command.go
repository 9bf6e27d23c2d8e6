package worktree

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/dependencies"
	"github.com/temirov/clawgit/internal/output"
	"github.com/temirov/clawgit/internal/shared"
	"github.com/temirov/clawgit/internal/utils"
	flagutils "github.com/temirov/clawgit/internal/utils/flags"
)

const (
	statusCommandUseConstant              = "status"
	statusCommandShortDescriptionConstant = "Show branch, divergence, last commit, and changes"
	statusCommandLongDescriptionConstant  = "status prints the current branch with commits ahead of and behind its upstream, the last commit, and staged, modified, and untracked files. Remote refs are fetched first unless --fetch=no is given or tools.status.fetch is false; an unreachable remote never fails the report."
	statusCommandExampleConstant          = "claw-git status\nclaw-git status --json --fetch=no"
	quickCommandUseConstant               = "quick"
	quickCommandAliasConstant             = "q"
	quickCommandShortDescriptionConstant  = "Print a one-line status summary"
	quickCommandLongDescriptionConstant   = "quick prints a single line: a status emoji, the branch with divergence arrows, and staged/modified/untracked counts or \"clean\"."
	// JSONFlagName selects JSON output for status.
	JSONFlagName = "json"
	// FetchFlagName toggles the remote refresh before divergence is computed.
	FetchFlagName  = "fetch"
	jsonFlagUsage  = "Print the status report as JSON"
	fetchFlagUsage = "Fetch remote refs before computing ahead/behind counts"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the status and quick commands.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	GitRepositoryManager         shared.GitRepositoryManager
	HumanReadableLoggingProvider func() bool
	ColorModeProvider            func() output.ColorMode
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the status command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     statusCommandUseConstant,
		Short:   statusCommandShortDescriptionConstant,
		Long:    statusCommandLongDescriptionConstant,
		Example: statusCommandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.RunStatus,
	}
	builder.BindStatusFlags(command)
	return command, nil
}

// BuildQuick constructs the quick command.
func (builder *CommandBuilder) BuildQuick() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     quickCommandUseConstant,
		Aliases: []string{quickCommandAliasConstant},
		Short:   quickCommandShortDescriptionConstant,
		Long:    quickCommandLongDescriptionConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.runQuick,
	}
	builder.bindFetchFlag(command)
	return command, nil
}

// BindStatusFlags registers the status flags on command so another command, such as the root, can run status.
func (builder *CommandBuilder) BindStatusFlags(command *cobra.Command) {
	if command.Flags().Lookup(JSONFlagName) == nil {
		command.Flags().Bool(JSONFlagName, false, jsonFlagUsage)
	}
	builder.bindFetchFlag(command)
}

// RunStatus prints the status report, or its JSON form when --json is set.
func (builder *CommandBuilder) RunStatus(command *cobra.Command, arguments []string) error {
	report, palette, inspectError := builder.inspect(command, true)
	if inspectError != nil {
		return inspectError
	}

	presenter := NewStatusPresenter(palette)
	jsonRequested, _ := command.Flags().GetBool(JSONFlagName)
	if jsonRequested {
		return presenter.RenderJSON(command.OutOrStdout(), report)
	}
	presenter.RenderReport(command.OutOrStdout(), report)
	return nil
}

func (builder *CommandBuilder) runQuick(command *cobra.Command, arguments []string) error {
	report, _, inspectError := builder.inspect(command, false)
	if inspectError != nil {
		return inspectError
	}
	_, _ = fmt.Fprintln(command.OutOrStdout(), FormatQuickLine(report))
	return nil
}

func (builder *CommandBuilder) inspect(command *cobra.Command, includeLastCommit bool) (Report, output.Palette, error) {
	writer := command.OutOrStdout()
	palette := output.ResolvePalette(writer, builder.ColorModeProvider)

	service, serviceError := builder.resolveService()
	if serviceError != nil {
		return Report{}, palette, serviceError
	}

	report, inspectError := service.Inspect(command.Context(), Options{
		RepositoryPath:    utils.NewCommandContextAccessor().WorkingDirectory(command.Context()),
		Fetch:             builder.resolveFetch(command),
		IncludeLastCommit: includeLastCommit,
	})
	if errors.Is(inspectError, shared.ErrNotRepository) {
		return Report{}, palette, output.ReportNotRepository(writer, palette)
	}
	return report, palette, inspectError
}

func (builder *CommandBuilder) bindFetchFlag(command *cobra.Command) {
	if command.Flags().Lookup(FetchFlagName) != nil {
		return
	}
	fetchEnabled := DefaultCommandConfiguration().Fetch
	flagutils.AddToggleFlag(command.Flags(), &fetchEnabled, FetchFlagName, "", fetchEnabled, fetchFlagUsage)
}

func (builder *CommandBuilder) resolveFetch(command *cobra.Command) bool {
	configuration := builder.resolveConfiguration()
	if command.Flags().Changed(FetchFlagName) {
		if fetchEnabled, flagError := command.Flags().GetBool(FetchFlagName); flagError == nil {
			return fetchEnabled
		}
	}
	return configuration.Fetch
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

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
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
