package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gflow/internal/changelog"
	"github.com/temirov/gflow/internal/dependencies"
	"github.com/temirov/gflow/internal/execshell"
	"github.com/temirov/gflow/internal/flow"
	"github.com/temirov/gflow/internal/prune"
	"github.com/temirov/gflow/internal/release"
	"github.com/temirov/gflow/internal/ui"
	"github.com/temirov/gflow/internal/utils"
	flagutils "github.com/temirov/gflow/internal/utils/flags"
)

const (
	applicationNameConstant                  = "gflow"
	applicationShortDescriptionConstant      = "Branch flow orchestrator for Git repositories"
	applicationLongDescriptionConstant       = "gflow automates feature, fix, and release branch lifecycles over Git and the GitHub CLI."
	configFileFlagNameConstant               = "config"
	configFileFlagUsageConstant              = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                 = "log-level"
	logLevelFlagUsageDescriptionConstant     = "Log verbosity"
	logFormatFlagNameConstant                = "log-format"
	logFormatFlagUsageDescriptionConstant    = "Log output format"
	commonConfigurationKeyConstant           = "common"
	commonLogLevelConfigKeyConstant          = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant         = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant                = "GFLOW"
	configurationNameConstant                = "gflow"
	configurationTypeConstant                = "yaml"
	configurationInitializedMessageConstant  = "configuration initialized"
	configurationLogLevelFieldConstant       = "log_level"
	configurationLogFormatFieldConstant      = "log_format"
	configurationFileFieldConstant           = "config_file"
	configurationLoadErrorTemplateConstant   = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant      = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant          = "unable to flush logger: %w"
	commandRegistrationErrorTemplateConstant = "unable to register %s command: %w"
	rootCommandInfoMessageConstant           = "gflow CLI executed"
	rootCommandDebugMessageConstant          = "gflow CLI diagnostics"
	logFieldCommandNameConstant              = "command_name"
	logFieldArgumentCountConstant            = "argument_count"
	logFieldArgumentsConstant                = "arguments"
	loggerNotInitializedMessageConstant      = "logger not initialized"
	defaultConfigurationSearchPathConstant   = "."
	featureBranchKindConstant                = "feature"
	fixBranchKindConstant                    = "fix"
	releaseCommandNameConstant               = "release"
	changelogCommandNameConstant             = "changelog"
	pruneCommandNameConstant                 = "prune"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common     ApplicationCommonConfiguration `mapstructure:"common"`
	Repository string                         `mapstructure:"repository"`
	Flow       flow.Configuration             `mapstructure:"flow"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
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
	commandContextAccessor utils.CommandContextAccessor
	commandBuilders        applicationCommandBuilders
	startupError           error
}

type applicationCommandBuilders struct {
	feature   *flow.CommandBuilder
	fix       *flow.CommandBuilder
	release   *release.CommandBuilder
	changelog *changelog.CommandBuilder
	prune     *prune.CommandBuilder
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	embeddedConfigurationData, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfigurationData, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetOut(utils.NewFlushingWriter(os.Stdout))
	cobraCommand.SetErr(utils.NewFlushingWriter(os.Stderr))
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(
		&application.logLevelFlagValue,
		logLevelFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(
			string(utils.LogLevelInfo),
			[]string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)},
			logLevelFlagUsageDescriptionConstant,
		),
	)
	cobraCommand.PersistentFlags().StringVar(
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(
			string(utils.LogFormatStructured),
			[]string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)},
			logFormatFlagUsageDescriptionConstant,
		),
	)
	flagutils.BindExecutionFlags(cobraCommand, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		DryRun:    flagutils.ExecutionFlagDefinition{Name: flagutils.DryRunFlagName, Usage: flagutils.DryRunFlagUsage, Enabled: true},
		AssumeYes: flagutils.ExecutionFlagDefinition{Name: flagutils.AssumeYesFlagName, Usage: flagutils.AssumeYesFlagUsage, Shorthand: flagutils.AssumeYesFlagShorthand, Enabled: true},
		Remote:    flagutils.ExecutionFlagDefinition{Name: flagutils.RemoteFlagName, Usage: flagutils.RemoteFlagUsage, Enabled: true},
	})
	flagutils.BindRepositoryFlag(cobraCommand, flagutils.RepositoryFlagValues{}, flagutils.RepositoryFlagDefinition{Enabled: true, Persistent: true})

	application.startupError = application.registerCommands(cobraCommand)
	application.rootCommand = cobraCommand

	return application
}

func (application *Application) registerCommands(rootCommand *cobra.Command) error {
	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	configurationProvider := func() flow.CommandConfiguration {
		return flow.CommandConfiguration{
			RepositoryPath: application.configuration.Repository,
			Flow:           application.configuration.Flow,
		}
	}

	featureBuilder := &flow.CommandBuilder{
		BranchKind:                   featureBranchKindConstant,
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        configurationProvider,
	}
	featureCommand, featureBuildError := featureBuilder.Build()
	if featureBuildError != nil {
		return fmt.Errorf(commandRegistrationErrorTemplateConstant, featureBranchKindConstant, featureBuildError)
	}
	rootCommand.AddCommand(featureCommand)

	fixBuilder := &flow.CommandBuilder{
		BranchKind:                   fixBranchKindConstant,
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        configurationProvider,
	}
	fixCommand, fixBuildError := fixBuilder.Build()
	if fixBuildError != nil {
		return fmt.Errorf(commandRegistrationErrorTemplateConstant, fixBranchKindConstant, fixBuildError)
	}
	rootCommand.AddCommand(fixCommand)

	releaseBuilder := &release.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        configurationProvider,
	}
	releaseCommand, releaseBuildError := releaseBuilder.Build()
	if releaseBuildError != nil {
		return fmt.Errorf(commandRegistrationErrorTemplateConstant, releaseCommandNameConstant, releaseBuildError)
	}
	rootCommand.AddCommand(releaseCommand)

	changelogBuilder := &changelog.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        configurationProvider,
	}
	changelogCommand, changelogBuildError := changelogBuilder.Build()
	if changelogBuildError != nil {
		return fmt.Errorf(commandRegistrationErrorTemplateConstant, changelogCommandNameConstant, changelogBuildError)
	}
	rootCommand.AddCommand(changelogCommand)

	pruneBuilder := &prune.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        configurationProvider,
	}
	pruneCommand, pruneBuildError := pruneBuilder.Build()
	if pruneBuildError != nil {
		return fmt.Errorf(commandRegistrationErrorTemplateConstant, pruneCommandNameConstant, pruneBuildError)
	}
	rootCommand.AddCommand(pruneCommand)

	application.commandBuilders = applicationCommandBuilders{
		feature:   featureBuilder,
		fix:       fixBuilder,
		release:   releaseBuilder,
		changelog: changelogBuilder,
		prune:     pruneBuilder,
	}
	return nil
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	if application.startupError != nil {
		return application.startupError
	}
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
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

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	if wiringError := application.wireCommandExecutor(); wiringError != nil {
		return wiringError
	}

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) wireCommandExecutor() error {
	var commandEventObserver execshell.CommandEventObserver
	if application.humanReadableLoggingEnabled() {
		commandEventObserver = ui.NewConsoleCommandEventLogger(application.logger)
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutorWithObserver(
		nil,
		application.logger,
		application.humanReadableLoggingEnabled(),
		commandEventObserver,
	)
	if executorError != nil {
		return executorError
	}

	if application.commandBuilders.feature != nil {
		application.commandBuilders.feature.GitExecutor = gitExecutor
	}
	if application.commandBuilders.fix != nil {
		application.commandBuilders.fix.GitExecutor = gitExecutor
	}
	if application.commandBuilders.release != nil {
		application.commandBuilders.release.GitExecutor = gitExecutor
	}
	if application.commandBuilders.changelog != nil {
		application.commandBuilders.changelog.GitExecutor = gitExecutor
	}
	if application.commandBuilders.prune != nil {
		application.commandBuilders.prune.GitExecutor = gitExecutor
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return nil
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
