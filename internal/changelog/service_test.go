package changelog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gflow/internal/shared"
	"github.com/temirov/gflow/internal/testsupport"
)

type fixedClock struct {
	moment time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.moment
}

func newGenerateService(t *testing.T, recorder *testsupport.RepositoryManagerRecorder, fileSystem *testsupport.FileSystemStub) *GenerateService {
	t.Helper()
	service, creationError := NewGenerateService(Dependencies{
		RepositoryManager: recorder,
		FileSystem:        fileSystem,
		Clock:             fixedClock{moment: time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, creationError)
	return service
}

func TestNewGenerateServiceValidatesDependencies(t *testing.T) {
	_, creationError := NewGenerateService(Dependencies{FileSystem: &testsupport.FileSystemStub{}})
	require.ErrorIs(t, creationError, ErrRepositoryManagerNotConfigured)

	_, creationError = NewGenerateService(Dependencies{RepositoryManager: &testsupport.RepositoryManagerRecorder{}})
	require.ErrorIs(t, creationError, ErrFileSystemNotConfigured)
}

func TestGenerateCollectsSincePreviousTag(t *testing.T) {
	recorder := &testsupport.RepositoryManagerRecorder{
		NewestTag: "v1.0.0",
		Commits: []shared.CommitRecord{
			{Hash: "abc", Subject: "feat(auth): add login"},
			{Hash: "def", Subject: "fix: handle empty remote"},
		},
	}
	service := newGenerateService(t, recorder, &testsupport.FileSystemStub{})

	generateResult, generateError := service.Generate(context.Background(), GenerateOptions{
		RepositoryPath: "/tmp/repo",
		Version:        "v1.1.0",
	})

	require.NoError(t, generateError)
	require.Equal(t, "v1.0.0", generateResult.FromReference)
	require.Equal(t, 2, generateResult.CommitCount)
	require.Contains(t, generateResult.Entry, "## v1.1.0 - 2025-03-14")
	require.Contains(t, generateResult.Entry, "- auth: add login")
	require.Equal(t, []string{
		"LatestTag /tmp/repo",
		"ListCommits /tmp/repo v1.0.0 HEAD",
	}, recorder.Operations)
}

func TestGenerateWithoutTagsUsesFullHistory(t *testing.T) {
	recorder := &testsupport.RepositoryManagerRecorder{
		Commits: []shared.CommitRecord{{Hash: "abc", Subject: "feat: initial"}},
	}
	service := newGenerateService(t, recorder, &testsupport.FileSystemStub{})

	generateResult, generateError := service.Generate(context.Background(), GenerateOptions{RepositoryPath: "/tmp/repo"})

	require.NoError(t, generateError)
	require.Empty(t, generateResult.FromReference)
	require.Equal(t, "Unreleased", generateResult.VersionLabel)
	require.Contains(t, recorder.Operations, "ListCommits /tmp/repo HEAD")
}

func TestGenerateWritesChangelogFile(t *testing.T) {
	recorder := &testsupport.RepositoryManagerRecorder{
		NewestTag: "v1.0.0",
		Commits:   []shared.CommitRecord{{Hash: "abc", Subject: "feat: expand"}},
	}
	fileSystem := &testsupport.FileSystemStub{}
	service := newGenerateService(t, recorder, fileSystem)

	generateResult, generateError := service.Generate(context.Background(), GenerateOptions{
		RepositoryPath: "/tmp/repo",
		Version:        "v1.1.0",
		ChangelogPath:  "docs/changelog.md",
		WriteFile:      true,
	})

	require.NoError(t, generateError)
	require.Equal(t, "/tmp/repo/docs/changelog.md", generateResult.WrittenPath)
	require.Contains(t, string(fileSystem.Files["/tmp/repo/docs/changelog.md"]), "## v1.1.0 - 2025-03-14")
}

func TestGenerateWriteRequiresChangelogPath(t *testing.T) {
	recorder := &testsupport.RepositoryManagerRecorder{}
	service := newGenerateService(t, recorder, &testsupport.FileSystemStub{})

	_, generateError := service.Generate(context.Background(), GenerateOptions{
		RepositoryPath: "/tmp/repo",
		Version:        "v1.1.0",
		WriteFile:      true,
	})

	require.ErrorIs(t, generateError, ErrChangelogPathRequired)
}

func TestGenerateRejectsDuplicateVersionWrite(t *testing.T) {
	recorder := &testsupport.RepositoryManagerRecorder{NewestTag: "v1.0.0"}
	fileSystem := &testsupport.FileSystemStub{
		Files: map[string][]byte{
			"/tmp/repo/docs/changelog.md": []byte("# Changelog\n\n## v1.1.0 - 2025-03-01\n"),
		},
	}
	service := newGenerateService(t, recorder, fileSystem)

	_, generateError := service.Generate(context.Background(), GenerateOptions{
		RepositoryPath: "/tmp/repo",
		Version:        "v1.1.0",
		ChangelogPath:  "docs/changelog.md",
		WriteFile:      true,
	})

	var duplicateError DuplicateVersionError
	require.ErrorAs(t, generateError, &duplicateError)
}

func TestGenerateSurfacesHistoryFailures(t *testing.T) {
	historyError := errors.New("command failed")
	recorder := &testsupport.RepositoryManagerRecorder{
		Failures: map[string]error{"ListCommits /tmp/repo HEAD": historyError},
	}
	service := newGenerateService(t, recorder, &testsupport.FileSystemStub{})

	_, generateError := service.Generate(context.Background(), GenerateOptions{RepositoryPath: "/tmp/repo"})
	require.ErrorIs(t, generateError, historyError)
}
