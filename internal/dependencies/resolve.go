// Package dependencies resolves shared collaborators for command builders,
// substituting shell-backed defaults when callers do not inject their own.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/gflow/internal/execshell"
	"github.com/temirov/gflow/internal/filesystem"
	"github.com/temirov/gflow/internal/githubcli"
	"github.com/temirov/gflow/internal/gitrepo"
	"github.com/temirov/gflow/internal/shared"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.GitExecutor, error) {
	return ResolveGitExecutorWithObserver(existing, logger, humanReadableLogging, nil)
}

// ResolveGitExecutorWithObserver returns the provided executor or constructs a
// shell-backed default that reports command lifecycle events to the observer.
func ResolveGitExecutorWithObserver(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool, observer execshell.CommandEventObserver) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, humanReadableLogging)
	if creationError != nil {
		return nil, creationError
	}
	if observer != nil {
		shellExecutor.SetCommandEventObserver(observer)
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

// ResolveGitHubOperations returns the provided hosting client or creates a GitHub CLI-backed implementation.
func ResolveGitHubOperations(existing shared.GitHubOperations, executor shared.GitExecutor) (shared.GitHubOperations, error) {
	if existing != nil {
		return existing, nil
	}
	return githubcli.NewClient(executor)
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveClock returns the provided clock or the system clock.
func ResolveClock(existing shared.Clock) shared.Clock {
	if existing != nil {
		return existing
	}
	return shared.SystemClock{}
}
