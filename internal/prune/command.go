package prune

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
	commandUseConstant              = "prune"
	commandShortDescriptionConstant = "Delete local flow branches already merged into the development branch"
	commandLongDescriptionConstant  = "prune walks the local feature, fix, release, and staging branches and deletes the ones already merged into the development branch, confirming each deletion."
	summaryMessageTemplateConstant  = "PRUNED: %d deleted, %d kept\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the prune command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
	FileSystem                   shared.FileSystem
	Prompter                     shared.ConfirmationPrompter
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() flow.CommandConfiguration
}

// Build constructs the prune command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	pruneCommand := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runPrune,
	}
	return pruneCommand, nil
}

func (builder *CommandBuilder) runPrune(command *cobra.Command, _ []string) error {
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

	pruneService, serviceError := NewService(Dependencies{
		RepositoryManager: repositoryManager,
		Prompter:          builder.resolvePrompter(command),
		Output:            command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	executionFlags, _ := flagutils.ResolveExecutionFlags(command)
	if executionFlags.RemoteSet {
		flowConfiguration.RemoteName = executionFlags.Remote
		flowConfiguration = flowConfiguration.Sanitize()
	}

	result, pruneError := pruneService.Prune(command.Context(), Options{
		RepositoryPath: repositoryPath,
		Configuration:  flowConfiguration,
		DryRun:         executionFlags.DryRun,
		AssumeYes:      executionFlags.AssumeYes,
	})
	if pruneError != nil {
		return pruneError
	}

	if !executionFlags.DryRun {
		fmt.Fprintf(command.OutOrStdout(), summaryMessageTemplateConstant, len(result.DeletedBranches), len(result.SkippedBranches))
	}
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

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) shared.ConfirmationPrompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	return shared.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
}
