package cli

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	flagutils "github.com/temirov/gflow/internal/utils/flags"
)

// changeWorkingDirectoryForTest mirrors testing.T.Chdir, which requires Go 1.24.
func changeWorkingDirectoryForTest(testInstance *testing.T, targetDirectory string) {
	testInstance.Helper()
	originalDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	require.NoError(testInstance, os.Chdir(targetDirectory))
	testInstance.Cleanup(func() {
		require.NoError(testInstance, os.Chdir(originalDirectory))
	})
}

func TestNewApplicationRegistersFlowCommands(t *testing.T) {
	application := NewApplication()

	registeredCommandNames := map[string]bool{}
	for _, subcommand := range application.rootCommand.Commands() {
		registeredCommandNames[subcommand.Name()] = true
	}

	for _, expectedCommandName := range []string{"feature", "fix", "release", "changelog", "prune"} {
		require.True(t, registeredCommandNames[expectedCommandName], "command %s not registered", expectedCommandName)
	}
}

func TestNewApplicationReportsNoStartupError(t *testing.T) {
	application := NewApplication()
	require.NoError(t, application.startupError)
}

func TestExecuteSurfacesStartupError(t *testing.T) {
	registrationFailure := errors.New("duplicate command registration")
	application := NewApplication()
	application.startupError = registrationFailure

	require.ErrorIs(t, application.Execute(), registrationFailure)
}

func TestNewApplicationBindsPersistentFlags(t *testing.T) {
	application := NewApplication()

	persistentFlagSet := application.rootCommand.PersistentFlags()
	for _, expectedFlagName := range []string{
		configFileFlagNameConstant,
		logLevelFlagNameConstant,
		logFormatFlagNameConstant,
		flagutils.DryRunFlagName,
		flagutils.AssumeYesFlagName,
		flagutils.RemoteFlagName,
		flagutils.RepositoryFlagName,
	} {
		require.NotNil(t, persistentFlagSet.Lookup(expectedFlagName), "flag %s not bound", expectedFlagName)
	}
}

func TestInitializeConfigurationAppliesEmbeddedDefaults(t *testing.T) {
	changeWorkingDirectoryForTest(t, t.TempDir())

	application := NewApplication()
	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, "info", application.configuration.Common.LogLevel)
	require.Equal(t, "structured", application.configuration.Common.LogFormat)
	require.Equal(t, "dev", application.configuration.Flow.DevelopmentBranch)
	require.Equal(t, "main", application.configuration.Flow.ProductionBranch)
	require.Equal(t, "feature/", application.configuration.Flow.FeaturePrefix)
	require.Equal(t, "docs/changelog.md", application.configuration.Flow.ChangelogPath)
	require.Equal(t, "release", application.configuration.Flow.ReleaseLabel)
	require.False(t, application.humanReadableLoggingEnabled())

	require.NotNil(t, application.commandBuilders.feature.GitExecutor)
	require.NotNil(t, application.commandBuilders.release.GitExecutor)
	require.NotNil(t, application.commandBuilders.prune.GitExecutor)
}

func TestInitializeConfigurationHonorsLogFormatFlag(t *testing.T) {
	changeWorkingDirectoryForTest(t, t.TempDir())

	application := NewApplication()
	flagSetError := application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, "console")
	require.NoError(t, flagSetError)

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, "console", application.configuration.Common.LogFormat)
	require.True(t, application.humanReadableLoggingEnabled())
}

func TestInitializeConfigurationRejectsUnknownLogLevel(t *testing.T) {
	changeWorkingDirectoryForTest(t, t.TempDir())

	application := NewApplication()
	flagSetError := application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "verbose")
	require.NoError(t, flagSetError)

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.Error(t, initializationError)
	require.Contains(t, initializationError.Error(), "unable to create logger")
}

func TestEmbeddedDefaultConfigurationParses(t *testing.T) {
	configurationData, configurationType := EmbeddedDefaultConfiguration()
	require.Equal(t, configurationTypeConstant, configurationType)

	parsedConfiguration := map[string]any{}
	require.NoError(t, yaml.Unmarshal(configurationData, &parsedConfiguration))
	require.Contains(t, parsedConfiguration, "common")
	require.Contains(t, parsedConfiguration, "flow")
}

func TestExecuteWithoutArgumentsPrintsHelp(t *testing.T) {
	changeWorkingDirectoryForTest(t, t.TempDir())

	application := NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs(nil)

	executionError := application.Execute()
	require.NoError(t, executionError)
	require.Contains(t, outputBuffer.String(), "release")
	require.Contains(t, outputBuffer.String(), "feature")
}
