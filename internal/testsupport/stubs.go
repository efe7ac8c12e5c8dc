// Package testsupport provides recording stubs shared by service tests.
package testsupport

import (
	"context"
	"io/fs"
	"strings"

	"github.com/temirov/gflow/internal/githubcli"
	"github.com/temirov/gflow/internal/shared"
)

const (
	operationPartSeparatorConstant = " "
	forcedDeleteMarkerConstant     = "force"
	safeDeleteMarkerConstant       = "safe"
	upstreamMarkerConstant         = "upstream"
)

// RepositoryManagerRecorder implements shared.GitRepositoryManager for tests.
// Every call is appended to Operations as a space-joined entry; configured
// Failures keyed by the exact entry fail the matching call.
type RepositoryManagerRecorder struct {
	Operations []string

	CleanWorktree  bool
	CurrentBranch  string
	RemoteURL      string
	LocalBranches  map[string]bool
	RemoteBranches map[string]bool
	MergeConflict  bool
	TagPresence    map[string]bool
	NewestTag      string
	Branches       []string
	MergedBranches []string
	Commits        []shared.CommitRecord

	Failures map[string]error
}

func (recorder *RepositoryManagerRecorder) record(parts ...string) (string, error) {
	entry := strings.Join(parts, operationPartSeparatorConstant)
	recorder.Operations = append(recorder.Operations, entry)
	if recorder.Failures != nil {
		if configuredFailure, failureConfigured := recorder.Failures[entry]; failureConfigured {
			return entry, configuredFailure
		}
	}
	return entry, nil
}

// CheckCleanWorktree reports the configured worktree state.
func (recorder *RepositoryManagerRecorder) CheckCleanWorktree(_ context.Context, repositoryPath string) (bool, error) {
	_, failure := recorder.record("CheckCleanWorktree", repositoryPath)
	if failure != nil {
		return false, failure
	}
	return recorder.CleanWorktree, nil
}

// GetCurrentBranch reports the configured current branch.
func (recorder *RepositoryManagerRecorder) GetCurrentBranch(_ context.Context, repositoryPath string) (string, error) {
	_, failure := recorder.record("GetCurrentBranch", repositoryPath)
	if failure != nil {
		return "", failure
	}
	return recorder.CurrentBranch, nil
}

// GetRemoteURL reports the configured remote URL.
func (recorder *RepositoryManagerRecorder) GetRemoteURL(_ context.Context, repositoryPath string, remoteName string) (string, error) {
	_, failure := recorder.record("GetRemoteURL", repositoryPath, remoteName)
	if failure != nil {
		return "", failure
	}
	return recorder.RemoteURL, nil
}

// BranchExists reports membership in LocalBranches.
func (recorder *RepositoryManagerRecorder) BranchExists(_ context.Context, repositoryPath string, branchName string) (bool, error) {
	_, failure := recorder.record("BranchExists", repositoryPath, branchName)
	if failure != nil {
		return false, failure
	}
	return recorder.LocalBranches[branchName], nil
}

// RemoteBranchExists reports membership in RemoteBranches.
func (recorder *RepositoryManagerRecorder) RemoteBranchExists(_ context.Context, repositoryPath string, remoteName string, branchName string) (bool, error) {
	_, failure := recorder.record("RemoteBranchExists", repositoryPath, remoteName, branchName)
	if failure != nil {
		return false, failure
	}
	return recorder.RemoteBranches[branchName], nil
}

// CreateBranch records the branch creation request.
func (recorder *RepositoryManagerRecorder) CreateBranch(_ context.Context, repositoryPath string, branchName string, startPoint string) error {
	_, failure := recorder.record("CreateBranch", repositoryPath, branchName, startPoint)
	return failure
}

// SwitchBranch records the branch switch request.
func (recorder *RepositoryManagerRecorder) SwitchBranch(_ context.Context, repositoryPath string, branchName string, trackingRemoteName string) error {
	parts := []string{"SwitchBranch", repositoryPath, branchName}
	if len(trackingRemoteName) > 0 {
		parts = append(parts, trackingRemoteName)
	}
	_, failure := recorder.record(parts...)
	return failure
}

// PullFastForwardOnly records the pull request.
func (recorder *RepositoryManagerRecorder) PullFastForwardOnly(_ context.Context, repositoryPath string, remoteName string, branchName string) error {
	_, failure := recorder.record("PullFastForwardOnly", repositoryPath, remoteName, branchName)
	return failure
}

// FetchRemote records the fetch request.
func (recorder *RepositoryManagerRecorder) FetchRemote(_ context.Context, repositoryPath string, remoteName string) error {
	_, failure := recorder.record("FetchRemote", repositoryPath, remoteName)
	return failure
}

// MergeNoFastForward records the merge request.
func (recorder *RepositoryManagerRecorder) MergeNoFastForward(_ context.Context, repositoryPath string, sourceBranch string, commitMessage string) error {
	_, failure := recorder.record("MergeNoFastForward", repositoryPath, sourceBranch, commitMessage)
	return failure
}

// MergeWithoutCommit reports the configured conflict outcome.
func (recorder *RepositoryManagerRecorder) MergeWithoutCommit(_ context.Context, repositoryPath string, sourceBranch string) (bool, error) {
	_, failure := recorder.record("MergeWithoutCommit", repositoryPath, sourceBranch)
	if failure != nil {
		return false, failure
	}
	return recorder.MergeConflict, nil
}

// MergeSquash records the squash merge request.
func (recorder *RepositoryManagerRecorder) MergeSquash(_ context.Context, repositoryPath string, sourceBranch string) error {
	_, failure := recorder.record("MergeSquash", repositoryPath, sourceBranch)
	return failure
}

// MergeFastForwardOnly records the fast-forward merge request.
func (recorder *RepositoryManagerRecorder) MergeFastForwardOnly(_ context.Context, repositoryPath string, sourceBranch string) error {
	_, failure := recorder.record("MergeFastForwardOnly", repositoryPath, sourceBranch)
	return failure
}

// AbortMerge records the abort request.
func (recorder *RepositoryManagerRecorder) AbortMerge(_ context.Context, repositoryPath string) error {
	_, failure := recorder.record("AbortMerge", repositoryPath)
	return failure
}

// DeleteBranch records the deletion request with a force or safe marker.
func (recorder *RepositoryManagerRecorder) DeleteBranch(_ context.Context, repositoryPath string, branchName string, force bool) error {
	deleteMarker := safeDeleteMarkerConstant
	if force {
		deleteMarker = forcedDeleteMarkerConstant
	}
	_, failure := recorder.record("DeleteBranch", repositoryPath, branchName, deleteMarker)
	return failure
}

// CommitAll records the commit request.
func (recorder *RepositoryManagerRecorder) CommitAll(_ context.Context, repositoryPath string, commitMessage string) error {
	_, failure := recorder.record("CommitAll", repositoryPath, commitMessage)
	return failure
}

// CreateAnnotatedTag records the tag creation request.
func (recorder *RepositoryManagerRecorder) CreateAnnotatedTag(_ context.Context, repositoryPath string, tagName string, tagMessage string) error {
	_, failure := recorder.record("CreateAnnotatedTag", repositoryPath, tagName, tagMessage)
	return failure
}

// TagExists reports membership in TagPresence.
func (recorder *RepositoryManagerRecorder) TagExists(_ context.Context, repositoryPath string, tagName string) (bool, error) {
	_, failure := recorder.record("TagExists", repositoryPath, tagName)
	if failure != nil {
		return false, failure
	}
	return recorder.TagPresence[tagName], nil
}

// LatestTag reports the configured newest tag.
func (recorder *RepositoryManagerRecorder) LatestTag(_ context.Context, repositoryPath string) (string, error) {
	_, failure := recorder.record("LatestTag", repositoryPath)
	if failure != nil {
		return "", failure
	}
	return recorder.NewestTag, nil
}

// ListBranches reports the configured local branch list.
func (recorder *RepositoryManagerRecorder) ListBranches(_ context.Context, repositoryPath string) ([]string, error) {
	_, failure := recorder.record("ListBranches", repositoryPath)
	if failure != nil {
		return nil, failure
	}
	return append([]string{}, recorder.Branches...), nil
}

// ListMergedBranches reports the configured merged branch list.
func (recorder *RepositoryManagerRecorder) ListMergedBranches(_ context.Context, repositoryPath string, targetBranch string) ([]string, error) {
	_, failure := recorder.record("ListMergedBranches", repositoryPath, targetBranch)
	if failure != nil {
		return nil, failure
	}
	return append([]string{}, recorder.MergedBranches...), nil
}

// ListCommits reports the configured commit records.
func (recorder *RepositoryManagerRecorder) ListCommits(_ context.Context, repositoryPath string, fromReference string, toReference string) ([]shared.CommitRecord, error) {
	parts := []string{"ListCommits", repositoryPath}
	if len(fromReference) > 0 {
		parts = append(parts, fromReference)
	}
	parts = append(parts, toReference)
	_, failure := recorder.record(parts...)
	if failure != nil {
		return nil, failure
	}
	return append([]shared.CommitRecord{}, recorder.Commits...), nil
}

// PushBranch records the push request with an upstream marker when requested.
func (recorder *RepositoryManagerRecorder) PushBranch(_ context.Context, repositoryPath string, remoteName string, branchName string, setUpstream bool) error {
	parts := []string{"PushBranch", repositoryPath, remoteName, branchName}
	if setUpstream {
		parts = append(parts, upstreamMarkerConstant)
	}
	_, failure := recorder.record(parts...)
	return failure
}

// PushTag records the tag push request.
func (recorder *RepositoryManagerRecorder) PushTag(_ context.Context, repositoryPath string, remoteName string, tagName string) error {
	_, failure := recorder.record("PushTag", repositoryPath, remoteName, tagName)
	return failure
}

// GitHubClientRecorder implements shared.GitHubOperations for tests using the
// same recording conventions as RepositoryManagerRecorder.
type GitHubClientRecorder struct {
	Operations []string

	OpenPullRequest    *githubcli.PullRequest
	CreatedPullRequest githubcli.PullRequest

	Failures map[string]error
}

func (recorder *GitHubClientRecorder) record(parts ...string) (string, error) {
	entry := strings.Join(parts, operationPartSeparatorConstant)
	recorder.Operations = append(recorder.Operations, entry)
	if recorder.Failures != nil {
		if configuredFailure, failureConfigured := recorder.Failures[entry]; failureConfigured {
			return entry, configuredFailure
		}
	}
	return entry, nil
}

// EnsureAuthenticated records the authentication check.
func (recorder *GitHubClientRecorder) EnsureAuthenticated(_ context.Context) error {
	_, failure := recorder.record("EnsureAuthenticated")
	return failure
}

// CreatePullRequest records the creation request and returns the configured pull request.
func (recorder *GitHubClientRecorder) CreatePullRequest(_ context.Context, repositoryPath string, options githubcli.PullRequestCreateOptions) (githubcli.PullRequest, error) {
	_, failure := recorder.record("CreatePullRequest", repositoryPath, options.HeadBranch, options.BaseBranch, options.Title)
	if failure != nil {
		return githubcli.PullRequest{}, failure
	}
	return recorder.CreatedPullRequest, nil
}

// FindOpenPullRequest records the lookup and returns the configured open pull request.
func (recorder *GitHubClientRecorder) FindOpenPullRequest(_ context.Context, repositoryPath string, headBranch string, baseBranch string) (*githubcli.PullRequest, error) {
	_, failure := recorder.record("FindOpenPullRequest", repositoryPath, headBranch, baseBranch)
	if failure != nil {
		return nil, failure
	}
	return recorder.OpenPullRequest, nil
}

// EnsureLabel records the label request.
func (recorder *GitHubClientRecorder) EnsureLabel(_ context.Context, repositoryPath string, label githubcli.LabelDetails) error {
	_, failure := recorder.record("EnsureLabel", repositoryPath, label.Name)
	return failure
}

// ConfirmationPrompterStub scripts confirmation responses for tests.
type ConfirmationPrompterStub struct {
	Responses   []shared.ConfirmationResult
	Prompts     []string
	PromptError error
}

// Confirm records the prompt and pops the next scripted response.
func (prompter *ConfirmationPrompterStub) Confirm(prompt string) (shared.ConfirmationResult, error) {
	prompter.Prompts = append(prompter.Prompts, prompt)
	if prompter.PromptError != nil {
		return shared.ConfirmationResult{}, prompter.PromptError
	}
	if len(prompter.Responses) == 0 {
		return shared.ConfirmationResult{}, nil
	}
	response := prompter.Responses[0]
	prompter.Responses = prompter.Responses[1:]
	return response, nil
}

// FileSystemStub implements shared.FileSystem over an in-memory file map.
type FileSystemStub struct {
	Files              map[string][]byte
	CreatedDirectories []string
	WrittenFiles       []string

	StatErrors  map[string]error
	ReadErrors  map[string]error
	WriteErrors map[string]error
}

// Stat reports whether the path exists in Files.
func (fileSystem *FileSystemStub) Stat(path string) (fs.FileInfo, error) {
	if fileSystem.StatErrors != nil {
		if statError, exists := fileSystem.StatErrors[path]; exists {
			return nil, statError
		}
	}
	if _, exists := fileSystem.Files[path]; !exists {
		return nil, fs.ErrNotExist
	}
	return nil, nil
}

// ReadFile returns the stored content for the path.
func (fileSystem *FileSystemStub) ReadFile(path string) ([]byte, error) {
	if fileSystem.ReadErrors != nil {
		if readError, exists := fileSystem.ReadErrors[path]; exists {
			return nil, readError
		}
	}
	content, exists := fileSystem.Files[path]
	if !exists {
		return nil, fs.ErrNotExist
	}
	return append([]byte{}, content...), nil
}

// WriteFile stores the content for the path and records the write.
func (fileSystem *FileSystemStub) WriteFile(path string, content []byte, _ fs.FileMode) error {
	if fileSystem.WriteErrors != nil {
		if writeError, exists := fileSystem.WriteErrors[path]; exists {
			return writeError
		}
	}
	if fileSystem.Files == nil {
		fileSystem.Files = map[string][]byte{}
	}
	fileSystem.Files[path] = append([]byte{}, content...)
	fileSystem.WrittenFiles = append(fileSystem.WrittenFiles, path)
	return nil
}

// MkdirAll records the directory creation request.
func (fileSystem *FileSystemStub) MkdirAll(path string, _ fs.FileMode) error {
	fileSystem.CreatedDirectories = append(fileSystem.CreatedDirectories, path)
	return nil
}
