package changelog

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gflow/internal/dependencies"
	"github.com/temirov/gflow/internal/flow"
	"github.com/temirov/gflow/internal/shared"
	flagutils "github.com/temirov/gflow/internal/utils/flags"
	repoutils "github.com/temirov/gflow/internal/utils/repository"
)

const (
	commandUseConstant              = "changelog [version]"
	commandShortDescriptionConstant = "Render the release changelog entry"
	commandLongDescriptionConstant  = "changelog collects conventional commits since the previous version tag and renders the grouped Markdown entry, printing it or prepending it into the changelog file."
	writeFlagNameConstant           = "write"
	writeFlagUsageConstant          = "Prepend the entry into the changelog file instead of printing it"
	writtenMessageTemplateConstant  = "CHANGELOG: %s (%d commits)\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the changelog command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
	FileSystem                   shared.FileSystem
	Clock                        shared.Clock
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() flow.CommandConfiguration
}

// Build constructs the changelog command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	changelogCommand := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.runGenerate,
	}
	changelogCommand.Flags().Bool(writeFlagNameConstant, false, writeFlagUsageConstant)
	return changelogCommand, nil
}

func (builder *CommandBuilder) runGenerate(command *cobra.Command, arguments []string) error {
	commandConfiguration := builder.resolveConfiguration()

	repositoryPath, repositoryPathError := repoutils.Resolve(command, commandConfiguration.RepositoryPath)
	if repositoryPathError != nil {
		return repositoryPathError
	}

	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)
	flowConfiguration, overrideError := flow.LoadRepositoryOverride(fileSystem, repositoryPath, commandConfiguration.Flow)
	if overrideError != nil {
		return overrideError
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}
	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	generateService, serviceError := NewGenerateService(Dependencies{
		RepositoryManager: repositoryManager,
		FileSystem:        fileSystem,
		Clock:             dependencies.ResolveClock(builder.Clock),
	})
	if serviceError != nil {
		return serviceError
	}

	versionLabel := ""
	if len(arguments) > 0 {
		versionLabel = arguments[0]
	}
	writeRequested, _ := command.Flags().GetBool(writeFlagNameConstant)

	executionFlags, _ := flagutils.ResolveExecutionFlags(command)
	if executionFlags.DryRun {
		writeRequested = false
	}

	generateResult, generateError := generateService.Generate(command.Context(), GenerateOptions{
		RepositoryPath: repositoryPath,
		Version:        versionLabel,
		ChangelogPath:  flowConfiguration.ChangelogPath,
		WriteFile:      writeRequested,
	})
	if generateError != nil {
		return generateError
	}

	if len(generateResult.WrittenPath) > 0 {
		fmt.Fprintf(command.OutOrStdout(), writtenMessageTemplateConstant, generateResult.WrittenPath, generateResult.CommitCount)
		return nil
	}
	fmt.Fprint(command.OutOrStdout(), generateResult.Entry)
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() flow.CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return flow.DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
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
