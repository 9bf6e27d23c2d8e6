package remote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/dependencies"
	"github.com/temirov/clawgit/internal/output"
	"github.com/temirov/clawgit/internal/shared"
	"github.com/temirov/clawgit/internal/utils"
	flagutils "github.com/temirov/clawgit/internal/utils/flags"
)

const (
	pushCommandUseConstant              = "push"
	pushCommandShortDescriptionConstant = "Push the current branch"
	pushCommandLongDescriptionConstant  = "push sends local commits to the upstream branch. A branch without an upstream is pushed to the configured remote and starts tracking it. --force uses --force-with-lease so remote work is never silently discarded."
	pullCommandUseConstant              = "pull"
	pullCommandShortDescriptionConstant = "Pull the current branch"
	pullCommandLongDescriptionConstant  = "pull merges upstream changes into the current branch, or rebases onto them with --rebase."
	forceFlagNameConstant               = "force"
	forceFlagShorthandConstant          = "f"
	forceFlagUsageConstant              = "Force push with --force-with-lease"
	rebaseFlagNameConstant              = "rebase"
	rebaseFlagShorthandConstant         = "r"
	rebaseFlagUsageConstant             = "Rebase instead of merging"
	alreadyUpToDateMessageConstant      = "Already up to date"
	pushingCommitsTemplateConstant      = "Pushing %d commit(s) to %s..."
	pushingNewBranchTemplateConstant    = "Pushing %s to %s..."
	pushedMessageConstant               = "Pushed"
	pullingTemplateConstant             = "Pulling from %s..."
	pulledMessageConstant               = "Pulled"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the push and pull commands.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	GitRepositoryManager         shared.GitRepositoryManager
	HumanReadableLoggingProvider func() bool
	ColorModeProvider            func() output.ColorMode
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the push command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   pushCommandUseConstant,
		Short: pushCommandShortDescriptionConstant,
		Long:  pushCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runPush,
	}
	command.Flags().BoolP(forceFlagNameConstant, forceFlagShorthandConstant, false, forceFlagUsageConstant)
	flagutils.BindRemoteFlag(command)
	return command, nil
}

// BuildPull constructs the pull command.
func (builder *CommandBuilder) BuildPull() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   pullCommandUseConstant,
		Short: pullCommandShortDescriptionConstant,
		Long:  pullCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runPull,
	}
	command.Flags().BoolP(rebaseFlagNameConstant, rebaseFlagShorthandConstant, false, rebaseFlagUsageConstant)
	return command, nil
}

func (builder *CommandBuilder) runPush(command *cobra.Command, arguments []string) error {
	writer := command.OutOrStdout()
	palette := output.ResolvePalette(writer, builder.ColorModeProvider)
	repositoryPath := utils.NewCommandContextAccessor().WorkingDirectory(command.Context())

	service, serviceError := builder.resolveService()
	if serviceError != nil {
		return serviceError
	}

	target, targetError := service.ResolveTarget(command.Context(), repositoryPath, builder.resolveRemoteName(command), true)
	if errors.Is(targetError, shared.ErrNotRepository) {
		return output.ReportNotRepository(writer, palette)
	}
	if targetError != nil {
		return targetError
	}

	if target.UpToDate() {
		_, _ = fmt.Fprintln(writer, palette.SuccessLine(alreadyUpToDateMessageConstant))
		return nil
	}

	progressMessage := fmt.Sprintf(pushingNewBranchTemplateConstant, target.Branch, target.Upstream)
	if target.HasUpstream {
		progressMessage = fmt.Sprintf(pushingCommitsTemplateConstant, target.Divergence.Ahead, target.Upstream)
	}
	_, _ = fmt.Fprintln(writer, palette.Muted(progressMessage))

	force, _ := command.Flags().GetBool(forceFlagNameConstant)
	if pushError := service.Push(command.Context(), PushOptions{RepositoryPath: repositoryPath, Target: target, Force: force}); pushError != nil {
		return pushError
	}
	_, _ = fmt.Fprintln(writer, palette.SuccessLine(pushedMessageConstant))
	return nil
}

func (builder *CommandBuilder) runPull(command *cobra.Command, arguments []string) error {
	writer := command.OutOrStdout()
	palette := output.ResolvePalette(writer, builder.ColorModeProvider)
	repositoryPath := utils.NewCommandContextAccessor().WorkingDirectory(command.Context())

	service, serviceError := builder.resolveService()
	if serviceError != nil {
		return serviceError
	}

	target, targetError := service.ResolveTarget(command.Context(), repositoryPath, builder.resolveConfiguration().RemoteName, false)
	if errors.Is(targetError, shared.ErrNotRepository) {
		return output.ReportNotRepository(writer, palette)
	}
	if targetError != nil {
		return targetError
	}

	_, _ = fmt.Fprintln(writer, palette.Muted(fmt.Sprintf(pullingTemplateConstant, target.Upstream)))

	rebase, _ := command.Flags().GetBool(rebaseFlagNameConstant)
	if pullError := service.Pull(command.Context(), PullOptions{RepositoryPath: repositoryPath, Rebase: rebase}); pullError != nil {
		return pullError
	}
	_, _ = fmt.Fprintln(writer, palette.SuccessLine(pulledMessageConstant))
	return nil
}

func (builder *CommandBuilder) resolveRemoteName(command *cobra.Command) string {
	remoteName := builder.resolveConfiguration().RemoteName
	if command.Flags().Changed(flagutils.RemoteFlagName) {
		if overridden, flagError := command.Flags().GetString(flagutils.RemoteFlagName); flagError == nil && len(strings.TrimSpace(overridden)) > 0 {
			remoteName = strings.TrimSpace(overridden)
		}
	}
	return remoteName
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
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
