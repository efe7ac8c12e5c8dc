package changelog_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gflow/internal/changelog"
	"github.com/temirov/gflow/internal/flow"
	"github.com/temirov/gflow/internal/shared"
	"github.com/temirov/gflow/internal/testsupport"
	flagutils "github.com/temirov/gflow/internal/utils/flags"
)

func buildChangelogCommand(t *testing.T, repositoryPath string, recorder *testsupport.RepositoryManagerRecorder, fileSystem *testsupport.FileSystemStub) *cobra.Command {
	t.Helper()
	builder := changelog.CommandBuilder{
		RepositoryManager: recorder,
		FileSystem:        fileSystem,
		ConfigurationProvider: func() flow.CommandConfiguration {
			return flow.CommandConfiguration{RepositoryPath: repositoryPath, Flow: flow.DefaultConfiguration()}
		},
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		DryRun: flagutils.ExecutionFlagDefinition{Name: flagutils.DryRunFlagName, Usage: flagutils.DryRunFlagUsage, Enabled: true},
	})
	return command
}

func TestChangelogCommandPrintsEntry(t *testing.T) {
	repositoryPath := t.TempDir()
	recorder := &testsupport.RepositoryManagerRecorder{
		NewestTag: "v1.0.0",
		Commits:   []shared.CommitRecord{{Hash: "abc", Subject: "feat: expand"}},
	}
	command := buildChangelogCommand(t, repositoryPath, recorder, &testsupport.FileSystemStub{})

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{"v1.1.0"}))
	require.Contains(t, outputBuffer.String(), "## v1.1.0 - ")
	require.Contains(t, outputBuffer.String(), "### Features")
}

func TestChangelogCommandWritesFileWhenRequested(t *testing.T) {
	repositoryPath := t.TempDir()
	recorder := &testsupport.RepositoryManagerRecorder{
		NewestTag: "v1.0.0",
		Commits:   []shared.CommitRecord{{Hash: "abc", Subject: "feat: expand"}},
	}
	fileSystem := &testsupport.FileSystemStub{}
	command := buildChangelogCommand(t, repositoryPath, recorder, fileSystem)
	require.NoError(t, command.Flags().Set("write", "true"))

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{"v1.1.0"}))
	require.Contains(t, outputBuffer.String(), "CHANGELOG: "+repositoryPath+"/docs/changelog.md")
	require.Len(t, fileSystem.WrittenFiles, 1)
}

func TestChangelogCommandDryRunSuppressesWrite(t *testing.T) {
	repositoryPath := t.TempDir()
	recorder := &testsupport.RepositoryManagerRecorder{NewestTag: "v1.0.0"}
	fileSystem := &testsupport.FileSystemStub{}
	command := buildChangelogCommand(t, repositoryPath, recorder, fileSystem)
	require.NoError(t, command.Flags().Set("write", "true"))
	require.NoError(t, command.PersistentFlags().Set(flagutils.DryRunFlagName, "true"))
	command.SetOut(&bytes.Buffer{})

	require.NoError(t, command.RunE(command, []string{"v1.1.0"}))
	require.Empty(t, fileSystem.WrittenFiles)
}
