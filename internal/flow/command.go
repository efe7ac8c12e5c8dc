package flow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gflow/internal/dependencies"
	"github.com/temirov/gflow/internal/shared"
	flagutils "github.com/temirov/gflow/internal/utils/flags"
	repoutils "github.com/temirov/gflow/internal/utils/repository"
)

const (
	parentShortDescriptionTemplateConstant = "Manage %s branches"
	parentLongDescriptionTemplateConstant  = "%s starts and finishes %s branches cut from the development branch."
	startCommandUseConstant                = "start <name>"
	startShortDescriptionTemplateConstant  = "Start a new %s branch"
	finishCommandUseConstant               = "finish [name]"
	finishShortDescriptionTemplateConstant = "Merge a finished %s branch into the development branch"

	releaseKindNotSupportedMessageConstant = "release commands are assembled by the release package"
	startSuccessMessageTemplateConstant    = "STARTED: %s (from %s)\n"
	finishSuccessMessageTemplateConstant   = "FINISHED: %s -> %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandConfiguration carries configured defaults for flow commands.
type CommandConfiguration struct {
	RepositoryPath string        `mapstructure:"repository"`
	Flow           Configuration `mapstructure:"flow"`
}

// DefaultCommandConfiguration provides baseline configuration values for flow commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Flow: DefaultConfiguration()}
}

// Sanitize normalizes configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RepositoryPath = strings.TrimSpace(configuration.RepositoryPath)
	sanitized.Flow = configuration.Flow.Sanitize()
	return sanitized
}

// CommandBuilder assembles the start and finish commands for one branch type.
type CommandBuilder struct {
	BranchKind                   string
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
	FileSystem                   shared.FileSystem
	Prompter                     shared.ConfirmationPrompter
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the branch type command with start and finish subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	branchType, parseError := ParseBranchType(builder.BranchKind)
	if parseError != nil {
		return nil, parseError
	}
	if branchType == BranchTypeRelease {
		return nil, errors.New(releaseKindNotSupportedMessageConstant)
	}

	parentCommand := &cobra.Command{
		Use:   branchType.String(),
		Short: fmt.Sprintf(parentShortDescriptionTemplateConstant, branchType),
		Long:  fmt.Sprintf(parentLongDescriptionTemplateConstant, branchType, branchType),
	}

	startCommand := &cobra.Command{
		Use:   startCommandUseConstant,
		Short: fmt.Sprintf(startShortDescriptionTemplateConstant, branchType),
		Args:  cobra.ExactArgs(1),
		RunE:  builder.runStart,
	}

	finishCommand := &cobra.Command{
		Use:   finishCommandUseConstant,
		Short: fmt.Sprintf(finishShortDescriptionTemplateConstant, branchType),
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.runFinish,
	}

	parentCommand.AddCommand(startCommand, finishCommand)

	return parentCommand, nil
}

func (builder *CommandBuilder) runStart(command *cobra.Command, arguments []string) error {
	invocation, invocationError := builder.resolveInvocation(command)
	if invocationError != nil {
		return invocationError
	}

	startService, serviceError := NewStartService(Dependencies{
		RepositoryManager: invocation.repositoryManager,
		Output:            command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	result, startError := startService.Start(command.Context(), StartOptions{
		RepositoryPath: invocation.repositoryPath,
		BranchKind:     invocation.branchKind,
		BranchName:     arguments[0],
		Configuration:  invocation.configuration,
		DryRun:         invocation.dryRun,
	})
	if startError != nil {
		return startError
	}

	if !invocation.dryRun {
		fmt.Fprintf(command.OutOrStdout(), startSuccessMessageTemplateConstant, result.BranchName, result.BaseBranch)
	}
	return nil
}

func (builder *CommandBuilder) runFinish(command *cobra.Command, arguments []string) error {
	invocation, invocationError := builder.resolveInvocation(command)
	if invocationError != nil {
		return invocationError
	}

	branchName := ""
	if len(arguments) > 0 {
		branchName = arguments[0]
	}

	finishService, serviceError := NewFinishService(Dependencies{
		RepositoryManager: invocation.repositoryManager,
		Prompter:          builder.resolvePrompter(command),
		Output:            command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	result, finishError := finishService.Finish(command.Context(), FinishOptions{
		RepositoryPath: invocation.repositoryPath,
		BranchKind:     invocation.branchKind,
		BranchName:     branchName,
		Configuration:  invocation.configuration,
		DryRun:         invocation.dryRun,
		AssumeYes:      invocation.assumeYes,
	})
	if finishError != nil {
		return finishError
	}

	if !invocation.dryRun {
		fmt.Fprintf(command.OutOrStdout(), finishSuccessMessageTemplateConstant, result.SourceBranch, result.TargetBranch)
	}
	return nil
}

// commandInvocation bundles the resolved collaborators and settings for one run.
type commandInvocation struct {
	branchKind        string
	repositoryPath    string
	configuration     Configuration
	repositoryManager shared.GitRepositoryManager
	dryRun            bool
	assumeYes         bool
}

func (builder *CommandBuilder) resolveInvocation(command *cobra.Command) (commandInvocation, error) {
	commandConfiguration := builder.resolveConfiguration()

	repositoryPath, repositoryPathError := repoutils.Resolve(command, commandConfiguration.RepositoryPath)
	if repositoryPathError != nil {
		return commandInvocation{}, repositoryPathError
	}

	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)
	flowConfiguration, overrideError := LoadRepositoryOverride(fileSystem, repositoryPath, commandConfiguration.Flow)
	if overrideError != nil {
		return commandInvocation{}, overrideError
	}

	executionFlags, _ := flagutils.ResolveExecutionFlags(command)
	if executionFlags.RemoteSet {
		flowConfiguration.RemoteName = executionFlags.Remote
		flowConfiguration = flowConfiguration.Sanitize()
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return commandInvocation{}, executorError
	}
	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return commandInvocation{}, managerError
	}

	return commandInvocation{
		branchKind:        builder.BranchKind,
		repositoryPath:    repositoryPath,
		configuration:     flowConfiguration,
		repositoryManager: repositoryManager,
		dryRun:            executionFlags.DryRun,
		assumeYes:         executionFlags.AssumeYes,
	}, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
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
