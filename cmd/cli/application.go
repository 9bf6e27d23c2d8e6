package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/branches"
	"github.com/temirov/clawgit/internal/commits"
	"github.com/temirov/clawgit/internal/diff"
	"github.com/temirov/clawgit/internal/output"
	"github.com/temirov/clawgit/internal/remote"
	"github.com/temirov/clawgit/internal/stash"
	"github.com/temirov/clawgit/internal/utils"
	flagutils "github.com/temirov/clawgit/internal/utils/flags"
	pathutils "github.com/temirov/clawgit/internal/utils/path"
	"github.com/temirov/clawgit/internal/worktree"
)

const (
	applicationNameConstant                 = "claw-git"
	applicationVersionConstant              = "1.0.0"
	applicationVersionTemplateConstant      = "{{.Version}}\n"
	applicationShortDescriptionConstant     = "Git helper for AI agents"
	applicationLongDescriptionConstant      = "claw-git wraps git with compact status reports, one-line summaries, and simplified commit, push, pull, and stash flows. Without a subcommand it prints the status report."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	colorFlagNameConstant                   = "color"
	colorFlagUsageConstant                  = "Colorize output."
	directoryFlagNameConstant               = "directory"
	directoryFlagShorthandConstant          = "C"
	directoryFlagUsageConstant              = "Run as if claw-git was started in this directory."
	environmentPrefixConstant               = "CLAWGIT"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationLogFileFieldConstant       = "log_file"
	configurationColorFieldConstant         = "color"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	colorModeErrorTemplateConstant          = "invalid presentation.color: %w"
	unknownCommandTemplateConstant          = "unknown command: %s\nRun with --help for usage"
	rootCommandDebugMessageConstant         = "claw-git invoked"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentsConstant               = "arguments"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationDirectoryNameConstant  = "claw-git"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common       ApplicationCommonConfiguration       `mapstructure:"common"`
	Presentation ApplicationPresentationConfiguration `mapstructure:"presentation"`
	Tools        ApplicationToolsConfiguration        `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
}

// ApplicationPresentationConfiguration controls how reports are styled.
type ApplicationPresentationConfiguration struct {
	Color string `mapstructure:"color"`
}

// ApplicationToolsConfiguration holds per-command settings.
type ApplicationToolsConfiguration struct {
	Status worktree.CommandConfiguration `mapstructure:"status"`
	Log    commits.LogConfiguration      `mapstructure:"log"`
	Push   remote.CommandConfiguration   `mapstructure:"push"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	colorFlagValue         string
	directoryFlagValue     string
	colorMode              output.ColorMode
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(utils.ConfigurationSource{
		Name:              configurationNameConstant,
		Type:              configurationTypeConstant,
		EnvironmentPrefix: environmentPrefixConstant,
		SearchPaths:       configurationSearchPaths(),
	})
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		colorMode:              output.ColorModeAuto,
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	colorModeProvider := func() output.ColorMode {
		return application.colorMode
	}

	statusBuilder := &worktree.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ColorModeProvider:            colorModeProvider,
		ConfigurationProvider: func() worktree.CommandConfiguration {
			return application.configuration.Tools.Status
		},
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       applicationVersionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          rejectUnknownCommand,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			application.logger.Debug(rootCommandDebugMessageConstant, zap.String(logFieldCommandNameConstant, command.Name()), zap.Strings(logFieldArgumentsConstant, arguments))
			return statusBuilder.RunStatus(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetVersionTemplate(applicationVersionTemplateConstant)
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVarP(&application.directoryFlagValue, directoryFlagNameConstant, directoryFlagShorthandConstant, "", directoryFlagUsageConstant)
	flagutils.AddChoiceFlag(cobraCommand.PersistentFlags(), &application.colorFlagValue, colorFlagNameConstant, string(output.ColorModeAuto), output.ColorModeChoices(), colorFlagUsageConstant)
	statusBuilder.BindStatusFlags(cobraCommand)

	commandBuilders := []func() (*cobra.Command, error){
		statusBuilder.Build,
		statusBuilder.BuildQuick,
	}

	commitsBuilder := &commits.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ColorModeProvider:            colorModeProvider,
		LogConfigurationProvider: func() commits.LogConfiguration {
			return application.configuration.Tools.Log
		},
	}
	commandBuilders = append(commandBuilders, commitsBuilder.Build, commitsBuilder.BuildUndo, commitsBuilder.BuildLog)

	remoteBuilder := &remote.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ColorModeProvider:            colorModeProvider,
		ConfigurationProvider: func() remote.CommandConfiguration {
			return application.configuration.Tools.Push
		},
	}
	commandBuilders = append(commandBuilders, remoteBuilder.Build, remoteBuilder.BuildPull)

	branchesBuilder := &branches.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ColorModeProvider:            colorModeProvider,
	}
	diffBuilder := &diff.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ColorModeProvider:            colorModeProvider,
	}
	stashBuilder := &stash.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ColorModeProvider:            colorModeProvider,
	}
	commandBuilders = append(commandBuilders, branchesBuilder.Build, diffBuilder.Build, stashBuilder.Build)

	for _, build := range commandBuilders {
		subcommand, buildError := build()
		if buildError == nil {
			cobraCommand.AddCommand(subcommand)
		}
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	application.rootCommand.SetArgs(flagutils.NormalizeToggleArguments(os.Args[1:]))
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, colorFlagNameConstant) {
		application.configuration.Presentation.Color = application.colorFlagValue
	}

	colorMode, colorModeError := output.ParseColorMode(application.configuration.Presentation.Color)
	if colorModeError != nil {
		return fmt.Errorf(colorModeErrorTemplateConstant, colorModeError)
	}
	application.colorMode = colorMode

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(utils.LoggerOptions{
		Level:    utils.LogLevel(application.configuration.Common.LogLevel),
		Format:   utils.LogFormat(application.configuration.Common.LogFormat),
		FilePath: application.configuration.Common.LogFile,
	})
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationLogFileFieldConstant, loggerOutputs.LogFilePath),
		zap.String(configurationColorFieldConstant, string(application.colorMode)),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		workingDirectory := pathutils.NewHomeExpander().Expand(strings.TrimSpace(application.directoryFlagValue))
		updatedContext = application.commandContextAccessor.WithWorkingDirectory(updatedContext, workingDirectory)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

// rejectUnknownCommand fails on positional arguments that did not resolve to a subcommand.
func rejectUnknownCommand(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		return nil
	}
	return fmt.Errorf(unknownCommandTemplateConstant, arguments[0])
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}

func (application *Application) flushLogger() error {
	return application.syncLoggerInstance(application.logger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
