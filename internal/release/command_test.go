package release_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gflow/internal/flow"
	"github.com/temirov/gflow/internal/githubcli"
	"github.com/temirov/gflow/internal/release"
	"github.com/temirov/gflow/internal/testsupport"
	flagutils "github.com/temirov/gflow/internal/utils/flags"
)

func bindReleaseTestFlags(command *cobra.Command) {
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		DryRun:    flagutils.ExecutionFlagDefinition{Name: flagutils.DryRunFlagName, Usage: flagutils.DryRunFlagUsage, Enabled: true},
		AssumeYes: flagutils.ExecutionFlagDefinition{Name: flagutils.AssumeYesFlagName, Usage: flagutils.AssumeYesFlagUsage, Enabled: true},
		Remote:    flagutils.ExecutionFlagDefinition{Name: flagutils.RemoteFlagName, Usage: flagutils.RemoteFlagUsage, Enabled: true},
	})
	flagutils.BindRepositoryFlag(command, flagutils.RepositoryFlagValues{}, flagutils.RepositoryFlagDefinition{Enabled: true, Persistent: true})
}

func findSubcommand(t *testing.T, parentCommand *cobra.Command, commandName string) *cobra.Command {
	t.Helper()
	for _, subcommand := range parentCommand.Commands() {
		if subcommand.Name() == commandName {
			return subcommand
		}
	}
	t.Fatalf("subcommand %s not found", commandName)
	return nil
}

func buildReleaseCommand(t *testing.T, repositoryPath string, recorder *testsupport.RepositoryManagerRecorder, githubRecorder *testsupport.GitHubClientRecorder, fileSystem *testsupport.FileSystemStub) *cobra.Command {
	t.Helper()
	builder := release.CommandBuilder{
		RepositoryManager: recorder,
		GitHubClient:      githubRecorder,
		FileSystem:        fileSystem,
		ConfigurationProvider: func() flow.CommandConfiguration {
			return flow.CommandConfiguration{RepositoryPath: repositoryPath, Flow: flow.DefaultConfiguration()}
		},
	}
	parentCommand, buildError := builder.Build()
	require.NoError(t, buildError)
	bindReleaseTestFlags(parentCommand)
	return parentCommand
}

func TestBuildReleaseCommandHierarchy(t *testing.T) {
	builder := release.CommandBuilder{}
	parentCommand, buildError := builder.Build()
	require.NoError(t, buildError)
	require.Equal(t, "release", parentCommand.Use)
	require.NotNil(t, findSubcommand(t, parentCommand, "start"))
	require.NotNil(t, findSubcommand(t, parentCommand, "finish"))
	require.NotNil(t, findSubcommand(t, parentCommand, "pr"))
}

func TestReleaseStartCommandPreparesBranch(t *testing.T) {
	repositoryPath := t.TempDir()
	recorder := &testsupport.RepositoryManagerRecorder{
		CleanWorktree: true,
		CurrentBranch: "dev",
		NewestTag:     "v1.2.0",
	}
	fileSystem := &testsupport.FileSystemStub{}
	parentCommand := buildReleaseCommand(t, repositoryPath, recorder, &testsupport.GitHubClientRecorder{}, fileSystem)

	outputBuffer := &bytes.Buffer{}
	parentCommand.SetOut(outputBuffer)

	startCommand := findSubcommand(t, parentCommand, "start")
	require.NoError(t, startCommand.RunE(startCommand, nil))

	require.Contains(t, outputBuffer.String(), "RELEASE-STARTED: release/v1.3.0 (version v1.3.0)")
	require.Contains(t, recorder.Operations, fmt.Sprintf("CreateBranch %s release/v1.3.0 dev", repositoryPath))
	require.Contains(t, recorder.Operations, fmt.Sprintf("CommitAll %s chore(release): v1.3.0", repositoryPath))
	require.Len(t, fileSystem.WrittenFiles, 1)
}

func TestReleaseStartCommandHonorsIncrementFlag(t *testing.T) {
	repositoryPath := t.TempDir()
	recorder := &testsupport.RepositoryManagerRecorder{
		CleanWorktree: true,
		CurrentBranch: "dev",
		NewestTag:     "v1.2.0",
	}
	parentCommand := buildReleaseCommand(t, repositoryPath, recorder, &testsupport.GitHubClientRecorder{}, &testsupport.FileSystemStub{})
	parentCommand.SetOut(&bytes.Buffer{})

	startCommand := findSubcommand(t, parentCommand, "start")
	require.NoError(t, startCommand.Flags().Set("increment", "major"))
	require.NoError(t, startCommand.RunE(startCommand, nil))

	require.Contains(t, recorder.Operations, fmt.Sprintf("CreateBranch %s release/v2.0.0 dev", repositoryPath))
}

func TestReleaseStartCommandAcceptsExplicitVersionArgument(t *testing.T) {
	repositoryPath := t.TempDir()
	recorder := &testsupport.RepositoryManagerRecorder{
		CleanWorktree: true,
		CurrentBranch: "dev",
	}
	parentCommand := buildReleaseCommand(t, repositoryPath, recorder, &testsupport.GitHubClientRecorder{}, &testsupport.FileSystemStub{})
	parentCommand.SetOut(&bytes.Buffer{})

	startCommand := findSubcommand(t, parentCommand, "start")
	require.NoError(t, startCommand.RunE(startCommand, []string{"v3.0.0"}))

	require.Contains(t, recorder.Operations, fmt.Sprintf("CreateBranch %s release/v3.0.0 dev", repositoryPath))
}

func TestReleaseStartCommandHonorsDryRunFlag(t *testing.T) {
	repositoryPath := t.TempDir()
	recorder := &testsupport.RepositoryManagerRecorder{
		CleanWorktree: true,
		CurrentBranch: "dev",
		NewestTag:     "v1.2.0",
	}
	parentCommand := buildReleaseCommand(t, repositoryPath, recorder, &testsupport.GitHubClientRecorder{}, &testsupport.FileSystemStub{})
	require.NoError(t, parentCommand.PersistentFlags().Set(flagutils.DryRunFlagName, "true"))

	outputBuffer := &bytes.Buffer{}
	parentCommand.SetOut(outputBuffer)

	startCommand := findSubcommand(t, parentCommand, "start")
	require.NoError(t, startCommand.RunE(startCommand, nil))

	require.Contains(t, outputBuffer.String(), "PLAN-RELEASE-START: release/v1.3.0 (version v1.3.0)")
	require.NotContains(t, outputBuffer.String(), "RELEASE-STARTED:")
	for _, operation := range recorder.Operations {
		require.NotContains(t, operation, "CreateBranch")
	}
}

func TestReleaseFinishCommandLandsRelease(t *testing.T) {
	repositoryPath := t.TempDir()
	recorder := &testsupport.RepositoryManagerRecorder{
		CleanWorktree: true,
		LocalBranches: map[string]bool{"release/v1.3.0": true},
	}
	parentCommand := buildReleaseCommand(t, repositoryPath, recorder, &testsupport.GitHubClientRecorder{}, &testsupport.FileSystemStub{})
	require.NoError(t, parentCommand.PersistentFlags().Set(flagutils.AssumeYesFlagName, "true"))

	outputBuffer := &bytes.Buffer{}
	parentCommand.SetOut(outputBuffer)

	finishCommand := findSubcommand(t, parentCommand, "finish")
	require.NoError(t, finishCommand.RunE(finishCommand, []string{"v1.3.0"}))

	require.Contains(t, outputBuffer.String(), "RELEASED: release/v1.3.0 (tag v1.3.0)")
	require.Contains(t, recorder.Operations, fmt.Sprintf("CreateAnnotatedTag %s v1.3.0 🔖 Release v1.3.0", repositoryPath))
	require.Contains(t, recorder.Operations, fmt.Sprintf("PushTag %s origin v1.3.0", repositoryPath))
}

func TestReleasePullRequestCommandPublishes(t *testing.T) {
	repositoryPath := t.TempDir()
	recorder := &testsupport.RepositoryManagerRecorder{
		CleanWorktree: true,
		LocalBranches: map[string]bool{"release/v1.3.0": true},
		RemoteURL:     "git@github.com:acme/widgets.git",
	}
	githubRecorder := &testsupport.GitHubClientRecorder{
		CreatedPullRequest: githubcli.PullRequest{Number: 12, URL: "https://github.com/acme/widgets/pull/12"},
	}
	parentCommand := buildReleaseCommand(t, repositoryPath, recorder, githubRecorder, &testsupport.FileSystemStub{})

	outputBuffer := &bytes.Buffer{}
	parentCommand.SetOut(outputBuffer)

	pullRequestCommand := findSubcommand(t, parentCommand, "pr")
	require.NoError(t, pullRequestCommand.RunE(pullRequestCommand, []string{"v1.3.0"}))

	require.Contains(t, outputBuffer.String(), "PR-CREATED: #12 https://github.com/acme/widgets/pull/12")
	require.Contains(t, recorder.Operations, fmt.Sprintf("PushBranch %s origin pr/release/v1.3.0 upstream", repositoryPath))
	require.Contains(t, githubRecorder.Operations, fmt.Sprintf("CreatePullRequest %s pr/release/v1.3.0 dev Release v1.3.0", repositoryPath))
}
