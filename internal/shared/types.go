package shared

import (
	"context"
	"io/fs"
	"time"

	"github.com/temirov/gflow/internal/execshell"
	"github.com/temirov/gflow/internal/githubcli"
)

const (
	// OriginRemoteNameConstant identifies the default upstream remote for flow operations.
	OriginRemoteNameConstant = "origin"
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FileSystem exposes filesystem operations required by the flow, release, and changelog services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte, permissions fs.FileMode) error
	MkdirAll(path string, permissions fs.FileMode) error
}

// ConfirmationResult captures the outcome of a user confirmation prompt.
type ConfirmationResult struct {
	Confirmed  bool
	ApplyToAll bool
}

// ConfirmationPrompter collects user confirmations prior to mutating actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (ConfirmationResult, error)
}

// GitExecutor exposes the subset of shell execution used by flow services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommitRecord carries the hash, subject, and body of one commit returned by history listings.
type CommitRecord struct {
	Hash    string
	Subject string
	Body    string
}

// GitRepositoryManager exposes repository-level git operations over an explicit repository path.
type GitRepositoryManager interface {
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	BranchExists(executionContext context.Context, repositoryPath string, branchName string) (bool, error)
	RemoteBranchExists(executionContext context.Context, repositoryPath string, remoteName string, branchName string) (bool, error)
	CreateBranch(executionContext context.Context, repositoryPath string, branchName string, startPoint string) error
	SwitchBranch(executionContext context.Context, repositoryPath string, branchName string, trackingRemoteName string) error
	PullFastForwardOnly(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
	FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	MergeNoFastForward(executionContext context.Context, repositoryPath string, sourceBranch string, commitMessage string) error
	MergeWithoutCommit(executionContext context.Context, repositoryPath string, sourceBranch string) (bool, error)
	MergeSquash(executionContext context.Context, repositoryPath string, sourceBranch string) error
	MergeFastForwardOnly(executionContext context.Context, repositoryPath string, sourceBranch string) error
	AbortMerge(executionContext context.Context, repositoryPath string) error
	DeleteBranch(executionContext context.Context, repositoryPath string, branchName string, force bool) error
	CommitAll(executionContext context.Context, repositoryPath string, commitMessage string) error
	CreateAnnotatedTag(executionContext context.Context, repositoryPath string, tagName string, tagMessage string) error
	TagExists(executionContext context.Context, repositoryPath string, tagName string) (bool, error)
	LatestTag(executionContext context.Context, repositoryPath string) (string, error)
	ListBranches(executionContext context.Context, repositoryPath string) ([]string, error)
	ListMergedBranches(executionContext context.Context, repositoryPath string, targetBranch string) ([]string, error)
	ListCommits(executionContext context.Context, repositoryPath string, fromReference string, toReference string) ([]CommitRecord, error)
	PushBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string, setUpstream bool) error
	PushTag(executionContext context.Context, repositoryPath string, remoteName string, tagName string) error
}

// GitHubOperations exposes the hosting operations used by release workflows.
type GitHubOperations interface {
	EnsureAuthenticated(executionContext context.Context) error
	CreatePullRequest(executionContext context.Context, repositoryPath string, options githubcli.PullRequestCreateOptions) (githubcli.PullRequest, error)
	FindOpenPullRequest(executionContext context.Context, repositoryPath string, headBranch string, baseBranch string) (*githubcli.PullRequest, error)
	EnsureLabel(executionContext context.Context, repositoryPath string, label githubcli.LabelDetails) error
}
