package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForFetchIncludesRemoteAndReferences(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--prune", "origin", "feature/login"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Fetching feature/login from origin in /workspace/repo", message)
}

func TestBuildStartedMessageForFetchWithoutRemoteUsesAllRemotesLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--prune"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Fetching from all remotes in /workspace/repo", message)
}

func TestBuildStartedMessageForSwitchCreateNamesStartPoint(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"switch", "--create", "feature/login", "dev"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Creating branch feature/login from dev in /workspace/repo", message)
}

func TestBuildStartedMessageForSwitchShortCreateFlag(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"switch", "-c", "release/v1.2.0", "dev"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Creating branch release/v1.2.0 from dev in /workspace/repo", message)
}

func TestBuildStartedMessageForTrackedSwitch(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"switch", "--track", "origin/dev"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Switching /workspace/repo to tracked branch origin/dev", message)
}

func TestBuildStartedMessageForMergeSkipsCommitMessageArgument(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"merge", "--no-ff", "-m", "merge: feature/login -> dev", "feature/login"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Merging feature/login into the current branch in /workspace/repo", message)
}

func TestBuildSuccessMessageForAnnotatedTag(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"tag", "--annotate", "v1.2.0", "-m", "🔖 Release v1.2.0"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildSuccessMessage(command)

	require.Equal(t, "Created annotated tag v1.2.0 in /workspace/repo", message)
}

func TestBuildFailureMessageForMergeIncludesStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"merge", "--no-commit", "--no-ff", "release/v1.2.0"},
			WorkingDirectory: "/workspace/repo",
		},
	}
	result := ExecutionResult{ExitCode: 1, StandardError: "CONFLICT (content): Merge conflict in main.go"}

	message := formatter.BuildFailureMessage(command, result)

	require.Equal(t, "Failed to merge release/v1.2.0 into the current branch in /workspace/repo (exit code 1: CONFLICT (content): Merge conflict in main.go)", message)
}

func TestBuildStartedMessageForPullRequestCreate(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"pr", "create", "--base", "dev", "--head", "pr/release/v1.2.0", "--title", "release: v1.2.0"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Opening pull request from pr/release/v1.2.0 to dev", message)
}

func TestShouldLogStartMessageSuppressesReadOnlyGitHubLookups(t *testing.T) {
	formatter := CommandMessageFormatter{}

	listCommand := ShellCommand{Name: CommandGitHub, Details: CommandDetails{Arguments: []string{"pr", "list", "--head", "pr/release/v1.2.0", "--state", "open"}}}
	require.False(t, formatter.shouldLogStartMessage(listCommand))

	labelCommand := ShellCommand{Name: CommandGitHub, Details: CommandDetails{Arguments: []string{"label", "list", "--json", "name"}}}
	require.False(t, formatter.shouldLogStartMessage(labelCommand))

	createCommand := ShellCommand{Name: CommandGitHub, Details: CommandDetails{Arguments: []string{"pr", "create", "--base", "dev"}}}
	require.True(t, formatter.shouldLogStartMessage(createCommand))

	gitCommand := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"status"}}}
	require.True(t, formatter.shouldLogStartMessage(gitCommand))
}
