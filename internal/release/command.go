package release

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
	parentCommandUseConstant             = "release"
	parentShortDescriptionConstant       = "Manage release branches"
	parentLongDescriptionConstant        = "release prepares, lands, and publishes release branches: version bump, changelog entry, squash onto the production branch, version tag, and pull request."
	startCommandUseConstant              = "start [version]"
	startShortDescriptionConstant        = "Start a release branch with the next version"
	startLongDescriptionConstant         = "start computes the next version from the latest tag, cuts the release branch from the development branch, rewrites version files, and prepends the changelog entry."
	finishCommandUseConstant             = "finish [name]"
	finishShortDescriptionConstant       = "Land a release branch on the production branch"
	pullRequestCommandUseConstant        = "pr [name]"
	pullRequestShortDescriptionConstant  = "Open a squashed release pull request against the development branch"
	incrementFlagNameConstant            = "increment"
	incrementFlagUsageConstant           = "Version component to bump when no explicit version is given (patch, minor, major)"
	defaultIncrementConstant             = string(IncrementMinor)
	startSuccessMessageTemplateConstant  = "RELEASE-STARTED: %s (version %s)\n"
	finishSuccessMessageTemplateConstant = "RELEASED: %s (tag %s)\n"
	pullRequestMessageTemplateConstant   = "PR-CREATED: #%d %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the release command tree.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
	GitHubClient                 shared.GitHubOperations
	FileSystem                   shared.FileSystem
	Prompter                     shared.ConfirmationPrompter
	Clock                        shared.Clock
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() flow.CommandConfiguration
}

// Build constructs the release command with start, finish, and pr subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	parentCommand := &cobra.Command{
		Use:   parentCommandUseConstant,
		Short: parentShortDescriptionConstant,
		Long:  parentLongDescriptionConstant,
	}

	startCommand := &cobra.Command{
		Use:   startCommandUseConstant,
		Short: startShortDescriptionConstant,
		Long:  startLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.runStart,
	}
	startCommand.Flags().String(incrementFlagNameConstant, defaultIncrementConstant, incrementFlagUsageConstant)

	finishCommand := &cobra.Command{
		Use:   finishCommandUseConstant,
		Short: finishShortDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.runFinish,
	}

	pullRequestCommand := &cobra.Command{
		Use:   pullRequestCommandUseConstant,
		Short: pullRequestShortDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.runPullRequest,
	}

	parentCommand.AddCommand(startCommand, finishCommand, pullRequestCommand)

	return parentCommand, nil
}

func (builder *CommandBuilder) runStart(command *cobra.Command, arguments []string) error {
	invocation, invocationError := builder.resolveInvocation(command)
	if invocationError != nil {
		return invocationError
	}

	startService, serviceError := NewStartService(invocation.serviceDependencies(command))
	if serviceError != nil {
		return serviceError
	}

	versionSelector, _ := command.Flags().GetString(incrementFlagNameConstant)
	if len(arguments) > 0 {
		versionSelector = arguments[0]
	}

	result, startError := startService.Start(command.Context(), StartOptions{
		RepositoryPath:  invocation.repositoryPath,
		VersionSelector: versionSelector,
		Configuration:   invocation.configuration,
		DryRun:          invocation.dryRun,
	})
	if startError != nil {
		return startError
	}

	if !invocation.dryRun {
		fmt.Fprintf(command.OutOrStdout(), startSuccessMessageTemplateConstant, result.BranchName, result.Version)
	}
	return nil
}

func (builder *CommandBuilder) runFinish(command *cobra.Command, arguments []string) error {
	invocation, invocationError := builder.resolveInvocation(command)
	if invocationError != nil {
		return invocationError
	}

	finishService, serviceError := NewFinishService(invocation.serviceDependencies(command))
	if serviceError != nil {
		return serviceError
	}

	result, finishError := finishService.Finish(command.Context(), FinishOptions{
		RepositoryPath: invocation.repositoryPath,
		BranchName:     firstArgument(arguments),
		Configuration:  invocation.configuration,
		DryRun:         invocation.dryRun,
		AssumeYes:      invocation.assumeYes,
	})
	if finishError != nil {
		return finishError
	}

	if !invocation.dryRun {
		fmt.Fprintf(command.OutOrStdout(), finishSuccessMessageTemplateConstant, result.ReleaseBranch, result.TagName)
	}
	return nil
}

func (builder *CommandBuilder) runPullRequest(command *cobra.Command, arguments []string) error {
	invocation, invocationError := builder.resolveInvocation(command)
	if invocationError != nil {
		return invocationError
	}

	pullRequestService, serviceError := NewPullRequestService(invocation.serviceDependencies(command))
	if serviceError != nil {
		return serviceError
	}

	result, publishError := pullRequestService.Publish(command.Context(), PullRequestOptions{
		RepositoryPath: invocation.repositoryPath,
		BranchName:     firstArgument(arguments),
		Configuration:  invocation.configuration,
		DryRun:         invocation.dryRun,
	})
	if publishError != nil {
		return publishError
	}

	if result.Created {
		fmt.Fprintf(command.OutOrStdout(), pullRequestMessageTemplateConstant, result.PullRequest.Number, result.PullRequest.URL)
	}
	return nil
}

// commandInvocation bundles the resolved collaborators and settings for one run.
type commandInvocation struct {
	builder           *CommandBuilder
	repositoryPath    string
	configuration     flow.Configuration
	repositoryManager shared.GitRepositoryManager
	githubClient      shared.GitHubOperations
	fileSystem        shared.FileSystem
	dryRun            bool
	assumeYes         bool
}

func (invocation commandInvocation) serviceDependencies(command *cobra.Command) Dependencies {
	return Dependencies{
		RepositoryManager: invocation.repositoryManager,
		FileSystem:        invocation.fileSystem,
		GitHubClient:      invocation.githubClient,
		Prompter:          invocation.builder.resolvePrompter(command),
		Clock:             dependencies.ResolveClock(invocation.builder.Clock),
		Output:            command.OutOrStdout(),
	}
}

func (builder *CommandBuilder) resolveInvocation(command *cobra.Command) (commandInvocation, error) {
	commandConfiguration := builder.resolveConfiguration()

	repositoryPath, repositoryPathError := repoutils.Resolve(command, commandConfiguration.RepositoryPath)
	if repositoryPathError != nil {
		return commandInvocation{}, repositoryPathError
	}

	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)
	flowConfiguration, overrideError := flow.LoadRepositoryOverride(fileSystem, repositoryPath, commandConfiguration.Flow)
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
	githubClient, clientError := dependencies.ResolveGitHubOperations(builder.GitHubClient, gitExecutor)
	if clientError != nil {
		return commandInvocation{}, clientError
	}

	return commandInvocation{
		builder:           builder,
		repositoryPath:    repositoryPath,
		configuration:     flowConfiguration,
		repositoryManager: repositoryManager,
		githubClient:      githubClient,
		fileSystem:        fileSystem,
		dryRun:            executionFlags.DryRun,
		assumeYes:         executionFlags.AssumeYes,
	}, nil
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

func firstArgument(arguments []string) string {
	if len(arguments) == 0 {
		return ""
	}
	return arguments[0]
}
