package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gflow/internal/execshell"
	"github.com/temirov/gflow/internal/shared"
)

const (
	statusSubcommandConstant             = "status"
	porcelainFlagConstant                = "--porcelain"
	revParseSubcommandConstant           = "rev-parse"
	abbreviatedReferenceFlagConstant     = "--abbrev-ref"
	headReferenceConstant                = "HEAD"
	remoteSubcommandConstant             = "remote"
	getURLSubcommandConstant             = "get-url"
	showReferenceSubcommandConstant      = "show-ref"
	verifyFlagConstant                   = "--verify"
	quietFlagConstant                    = "--quiet"
	headsReferencePrefixConstant         = "refs/heads/"
	listRemoteSubcommandConstant         = "ls-remote"
	headsFlagConstant                    = "--heads"
	switchSubcommandConstant             = "switch"
	createBranchFlagConstant             = "-c"
	trackFlagConstant                    = "--track"
	pullSubcommandConstant               = "pull"
	fastForwardOnlyFlagConstant          = "--ff-only"
	fetchSubcommandConstant              = "fetch"
	pruneFlagConstant                    = "--prune"
	mergeSubcommandConstant              = "merge"
	noFastForwardFlagConstant            = "--no-ff"
	noCommitFlagConstant                 = "--no-commit"
	squashFlagConstant                   = "--squash"
	abortFlagConstant                    = "--abort"
	messageFlagConstant                  = "-m"
	branchSubcommandConstant             = "branch"
	forcedDeleteFlagConstant             = "-D"
	safeDeleteFlagConstant               = "-d"
	addSubcommandConstant                = "add"
	allPathsFlagConstant                 = "--all"
	commitSubcommandConstant             = "commit"
	tagSubcommandConstant                = "tag"
	annotateFlagConstant                 = "-a"
	listFlagConstant                     = "--list"
	describeSubcommandConstant           = "describe"
	tagsFlagConstant                     = "--tags"
	abbreviationDisabledFlagConstant     = "--abbrev=0"
	pushSubcommandConstant               = "push"
	setUpstreamFlagConstant              = "--set-upstream"
	logSubcommandConstant                = "log"
	mergedFlagConstant                   = "--merged"
	branchFormatFlagConstant             = "--format=%(refname:short)"
	commitPrettyFormatFlagConstant       = "--pretty=format:%H%x1f%s%x1f%b%x1e"
	commitFieldSeparatorConstant         = "\x1f"
	commitRecordSeparatorConstant        = "\x1e"
	commitRangeSeparatorConstant         = ".."
	commitFieldCountConstant             = 3
	remoteReferenceSeparatorConstant     = "/"
	terminalPromptEnvironmentKeyConstant = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValueConstant  = "0"
	executorNotConfiguredMessageConstant = "git executor not configured"
	requiredValueMessageConstant         = "value required"
	invalidInputErrorTemplateConstant    = "%s: %s"
	operationErrorTemplateConstant       = "%s operation failed: %s"
	repositoryPathFieldNameConstant      = "repository_path"
	branchNameFieldNameConstant          = "branch_name"
	sourceBranchFieldNameConstant        = "source_branch"
	startPointFieldNameConstant          = "start_point"
	remoteNameFieldNameConstant          = "remote_name"
	tagNameFieldNameConstant             = "tag_name"
	targetBranchFieldNameConstant        = "target_branch"
	toReferenceFieldNameConstant         = "to_reference"
	commitMessageFieldNameConstant       = "commit_message"
	tagMessageFieldNameConstant          = "tag_message"

	mergeConflictExitCodeConstant    = 1
	missingReferenceExitCodeConstant = 128
)

// Operation names reported by repository manager failures.
const (
	checkCleanWorktreeOperationConstant OperationName = "CheckCleanWorktree"
	getCurrentBranchOperationConstant   OperationName = "GetCurrentBranch"
	getRemoteURLOperationConstant       OperationName = "GetRemoteURL"
	branchExistsOperationConstant       OperationName = "BranchExists"
	remoteBranchExistsOperationConstant OperationName = "RemoteBranchExists"
	createBranchOperationConstant       OperationName = "CreateBranch"
	switchBranchOperationConstant       OperationName = "SwitchBranch"
	pullOperationConstant               OperationName = "PullFastForwardOnly"
	fetchOperationConstant              OperationName = "FetchRemote"
	mergeOperationConstant              OperationName = "MergeNoFastForward"
	mergeWithoutCommitOperationConstant OperationName = "MergeWithoutCommit"
	mergeSquashOperationConstant        OperationName = "MergeSquash"
	mergeFastForwardOperationConstant   OperationName = "MergeFastForwardOnly"
	abortMergeOperationConstant         OperationName = "AbortMerge"
	deleteBranchOperationConstant       OperationName = "DeleteBranch"
	commitAllOperationConstant          OperationName = "CommitAll"
	createTagOperationConstant          OperationName = "CreateAnnotatedTag"
	tagExistsOperationConstant          OperationName = "TagExists"
	latestTagOperationConstant          OperationName = "LatestTag"
	pushBranchOperationConstant         OperationName = "PushBranch"
	pushTagOperationConstant            OperationName = "PushTag"
	listBranchesOperationConstant       OperationName = "ListBranches"
	listMergedBranchesOperationConstant OperationName = "ListMergedBranches"
	listCommitsOperationConstant        OperationName = "ListCommits"
)

// OperationName describes a named git workflow supported by the repository manager.
type OperationName string

// ErrExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// InvalidInputError surfaces validation issues for repository operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps git execution failures with the failed operation name.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// GitCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitCommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager drives git porcelain commands against an explicit repository path.
type RepositoryManager struct {
	executor GitCommandExecutor
}

// NewRepositoryManager constructs a repository manager.
func NewRepositoryManager(executor GitCommandExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CheckCleanWorktree reports whether the repository worktree has no pending changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.runGit(executionContext, checkCleanWorktreeOperationConstant, repositoryPath,
		statusSubcommandConstant, porcelainFlagConstant)
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// GetCurrentBranch returns the checked-out branch name.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.runGit(executionContext, getCurrentBranchOperationConstant, repositoryPath,
		revParseSubcommandConstant, abbreviatedReferenceFlagConstant, headReferenceConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// GetRemoteURL returns the fetch URL configured for the remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	if validationError := requireValue(remoteNameFieldNameConstant, remoteName); validationError != nil {
		return "", validationError
	}
	executionResult, executionError := manager.runGit(executionContext, getRemoteURLOperationConstant, repositoryPath,
		remoteSubcommandConstant, getURLSubcommandConstant, remoteName)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// BranchExists reports whether a local branch with the provided name exists.
func (manager *RepositoryManager) BranchExists(executionContext context.Context, repositoryPath string, branchName string) (bool, error) {
	if validationError := requireValue(branchNameFieldNameConstant, branchName); validationError != nil {
		return false, validationError
	}
	_, executionError := manager.runGit(executionContext, branchExistsOperationConstant, repositoryPath,
		showReferenceSubcommandConstant, verifyFlagConstant, quietFlagConstant, headsReferencePrefixConstant+branchName)
	if executionError == nil {
		return true, nil
	}
	if isCommandFailure(executionError) {
		return false, nil
	}
	return false, executionError
}

// RemoteBranchExists reports whether the remote advertises a branch with the provided name.
func (manager *RepositoryManager) RemoteBranchExists(executionContext context.Context, repositoryPath string, remoteName string, branchName string) (bool, error) {
	if validationError := requireValue(remoteNameFieldNameConstant, remoteName); validationError != nil {
		return false, validationError
	}
	if validationError := requireValue(branchNameFieldNameConstant, branchName); validationError != nil {
		return false, validationError
	}
	executionResult, executionError := manager.runGit(executionContext, remoteBranchExistsOperationConstant, repositoryPath,
		listRemoteSubcommandConstant, headsFlagConstant, remoteName, branchName)
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// CreateBranch creates and switches to a branch, optionally from an explicit start point.
func (manager *RepositoryManager) CreateBranch(executionContext context.Context, repositoryPath string, branchName string, startPoint string) error {
	if validationError := requireValue(branchNameFieldNameConstant, branchName); validationError != nil {
		return validationError
	}
	arguments := []string{switchSubcommandConstant, createBranchFlagConstant, branchName}
	if len(strings.TrimSpace(startPoint)) > 0 {
		arguments = append(arguments, startPoint)
	}
	_, executionError := manager.runGit(executionContext, createBranchOperationConstant, repositoryPath, arguments...)
	return executionError
}

// SwitchBranch switches to the branch, falling back to tracking the remote copy
// and finally to creating the branch when neither exists.
func (manager *RepositoryManager) SwitchBranch(executionContext context.Context, repositoryPath string, branchName string, trackingRemoteName string) error {
	if validationError := requireValue(branchNameFieldNameConstant, branchName); validationError != nil {
		return validationError
	}

	_, switchError := manager.runGit(executionContext, switchBranchOperationConstant, repositoryPath,
		switchSubcommandConstant, branchName)
	if switchError == nil {
		return nil
	}
	if !isCommandFailure(switchError) {
		return switchError
	}

	if len(strings.TrimSpace(trackingRemoteName)) > 0 {
		remoteReference := trackingRemoteName + remoteReferenceSeparatorConstant + branchName
		_, trackError := manager.runGit(executionContext, switchBranchOperationConstant, repositoryPath,
			switchSubcommandConstant, trackFlagConstant, remoteReference)
		if trackError == nil {
			return nil
		}
		if !isCommandFailure(trackError) {
			return trackError
		}
	}

	_, createError := manager.runGit(executionContext, switchBranchOperationConstant, repositoryPath,
		switchSubcommandConstant, createBranchFlagConstant, branchName)
	return createError
}

// PullFastForwardOnly updates the branch from the remote, refusing merge commits.
func (manager *RepositoryManager) PullFastForwardOnly(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	if validationError := requireValue(remoteNameFieldNameConstant, remoteName); validationError != nil {
		return validationError
	}
	if validationError := requireValue(branchNameFieldNameConstant, branchName); validationError != nil {
		return validationError
	}
	_, executionError := manager.runGit(executionContext, pullOperationConstant, repositoryPath,
		pullSubcommandConstant, fastForwardOnlyFlagConstant, remoteName, branchName)
	return executionError
}

// FetchRemote fetches the remote and prunes stale remote-tracking references.
func (manager *RepositoryManager) FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	if validationError := requireValue(remoteNameFieldNameConstant, remoteName); validationError != nil {
		return validationError
	}
	_, executionError := manager.runGit(executionContext, fetchOperationConstant, repositoryPath,
		fetchSubcommandConstant, pruneFlagConstant, remoteName)
	return executionError
}

// MergeNoFastForward merges the source branch into the current branch with an explicit merge commit.
func (manager *RepositoryManager) MergeNoFastForward(executionContext context.Context, repositoryPath string, sourceBranch string, commitMessage string) error {
	if validationError := requireValue(sourceBranchFieldNameConstant, sourceBranch); validationError != nil {
		return validationError
	}
	if validationError := requireValue(commitMessageFieldNameConstant, commitMessage); validationError != nil {
		return validationError
	}
	_, executionError := manager.runGit(executionContext, mergeOperationConstant, repositoryPath,
		mergeSubcommandConstant, noFastForwardFlagConstant, messageFlagConstant, commitMessage, sourceBranch)
	return executionError
}

// MergeWithoutCommit rehearses a merge of the source branch without committing.
// The returned flag reports merge conflicts; git merge exits with code 1 when
// the merge cannot complete cleanly.
func (manager *RepositoryManager) MergeWithoutCommit(executionContext context.Context, repositoryPath string, sourceBranch string) (bool, error) {
	if validationError := requireValue(sourceBranchFieldNameConstant, sourceBranch); validationError != nil {
		return false, validationError
	}
	_, executionError := manager.runGit(executionContext, mergeWithoutCommitOperationConstant, repositoryPath,
		mergeSubcommandConstant, noCommitFlagConstant, noFastForwardFlagConstant, sourceBranch)
	if executionError == nil {
		return false, nil
	}
	if commandExitCode(executionError) == mergeConflictExitCodeConstant {
		return true, nil
	}
	return false, executionError
}

// MergeSquash stages the squashed changes of the source branch without committing them.
func (manager *RepositoryManager) MergeSquash(executionContext context.Context, repositoryPath string, sourceBranch string) error {
	if validationError := requireValue(sourceBranchFieldNameConstant, sourceBranch); validationError != nil {
		return validationError
	}
	_, executionError := manager.runGit(executionContext, mergeSquashOperationConstant, repositoryPath,
		mergeSubcommandConstant, squashFlagConstant, sourceBranch)
	return executionError
}

// MergeFastForwardOnly fast-forwards the current branch to the source branch.
func (manager *RepositoryManager) MergeFastForwardOnly(executionContext context.Context, repositoryPath string, sourceBranch string) error {
	if validationError := requireValue(sourceBranchFieldNameConstant, sourceBranch); validationError != nil {
		return validationError
	}
	_, executionError := manager.runGit(executionContext, mergeFastForwardOperationConstant, repositoryPath,
		mergeSubcommandConstant, fastForwardOnlyFlagConstant, sourceBranch)
	return executionError
}

// AbortMerge abandons an in-progress merge and restores the pre-merge state.
func (manager *RepositoryManager) AbortMerge(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.runGit(executionContext, abortMergeOperationConstant, repositoryPath,
		mergeSubcommandConstant, abortFlagConstant)
	return executionError
}

// DeleteBranch removes a local branch, forcing the deletion when requested.
func (manager *RepositoryManager) DeleteBranch(executionContext context.Context, repositoryPath string, branchName string, force bool) error {
	if validationError := requireValue(branchNameFieldNameConstant, branchName); validationError != nil {
		return validationError
	}
	deleteFlag := safeDeleteFlagConstant
	if force {
		deleteFlag = forcedDeleteFlagConstant
	}
	_, executionError := manager.runGit(executionContext, deleteBranchOperationConstant, repositoryPath,
		branchSubcommandConstant, deleteFlag, branchName)
	return executionError
}

// CommitAll stages every pending change and records a commit with the provided message.
func (manager *RepositoryManager) CommitAll(executionContext context.Context, repositoryPath string, commitMessage string) error {
	if validationError := requireValue(commitMessageFieldNameConstant, commitMessage); validationError != nil {
		return validationError
	}
	_, stageError := manager.runGit(executionContext, commitAllOperationConstant, repositoryPath,
		addSubcommandConstant, allPathsFlagConstant)
	if stageError != nil {
		return stageError
	}
	_, commitError := manager.runGit(executionContext, commitAllOperationConstant, repositoryPath,
		commitSubcommandConstant, messageFlagConstant, commitMessage)
	return commitError
}

// CreateAnnotatedTag records an annotated tag with the provided message.
func (manager *RepositoryManager) CreateAnnotatedTag(executionContext context.Context, repositoryPath string, tagName string, tagMessage string) error {
	if validationError := requireValue(tagNameFieldNameConstant, tagName); validationError != nil {
		return validationError
	}
	if validationError := requireValue(tagMessageFieldNameConstant, tagMessage); validationError != nil {
		return validationError
	}
	_, executionError := manager.runGit(executionContext, createTagOperationConstant, repositoryPath,
		tagSubcommandConstant, annotateFlagConstant, tagName, messageFlagConstant, tagMessage)
	return executionError
}

// TagExists reports whether a tag with the provided name exists.
func (manager *RepositoryManager) TagExists(executionContext context.Context, repositoryPath string, tagName string) (bool, error) {
	if validationError := requireValue(tagNameFieldNameConstant, tagName); validationError != nil {
		return false, validationError
	}
	executionResult, executionError := manager.runGit(executionContext, tagExistsOperationConstant, repositoryPath,
		tagSubcommandConstant, listFlagConstant, tagName)
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// LatestTag returns the most recent tag reachable from the current commit, or
// an empty string when the repository has no reachable tags. git describe
// exits with code 128 when no tag can describe the commit.
func (manager *RepositoryManager) LatestTag(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.runGit(executionContext, latestTagOperationConstant, repositoryPath,
		describeSubcommandConstant, tagsFlagConstant, abbreviationDisabledFlagConstant)
	if executionError == nil {
		return strings.TrimSpace(executionResult.StandardOutput), nil
	}
	if commandExitCode(executionError) == missingReferenceExitCodeConstant {
		return "", nil
	}
	return "", executionError
}

// PushBranch pushes a branch to the remote, optionally recording the upstream.
func (manager *RepositoryManager) PushBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string, setUpstream bool) error {
	if validationError := requireValue(remoteNameFieldNameConstant, remoteName); validationError != nil {
		return validationError
	}
	if validationError := requireValue(branchNameFieldNameConstant, branchName); validationError != nil {
		return validationError
	}
	arguments := []string{pushSubcommandConstant}
	if setUpstream {
		arguments = append(arguments, setUpstreamFlagConstant)
	}
	arguments = append(arguments, remoteName, branchName)
	_, executionError := manager.runGit(executionContext, pushBranchOperationConstant, repositoryPath, arguments...)
	return executionError
}

// PushTag pushes a tag to the remote.
func (manager *RepositoryManager) PushTag(executionContext context.Context, repositoryPath string, remoteName string, tagName string) error {
	if validationError := requireValue(remoteNameFieldNameConstant, remoteName); validationError != nil {
		return validationError
	}
	if validationError := requireValue(tagNameFieldNameConstant, tagName); validationError != nil {
		return validationError
	}
	_, executionError := manager.runGit(executionContext, pushTagOperationConstant, repositoryPath,
		pushSubcommandConstant, remoteName, tagName)
	return executionError
}

// ListBranches returns every local branch name in the repository.
func (manager *RepositoryManager) ListBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.runGit(executionContext, listBranchesOperationConstant, repositoryPath,
		branchSubcommandConstant, listFlagConstant, branchFormatFlagConstant)
	if executionError != nil {
		return nil, executionError
	}
	return splitOutputLines(executionResult.StandardOutput), nil
}

// ListMergedBranches returns the local branches whose commits are fully contained in the target branch.
func (manager *RepositoryManager) ListMergedBranches(executionContext context.Context, repositoryPath string, targetBranch string) ([]string, error) {
	if validationError := requireValue(targetBranchFieldNameConstant, targetBranch); validationError != nil {
		return nil, validationError
	}
	executionResult, executionError := manager.runGit(executionContext, listMergedBranchesOperationConstant, repositoryPath,
		branchSubcommandConstant, mergedFlagConstant, targetBranch, branchFormatFlagConstant)
	if executionError != nil {
		return nil, executionError
	}
	return splitOutputLines(executionResult.StandardOutput), nil
}

// ListCommits returns the commits reachable from toReference and not from
// fromReference, newest first. An empty fromReference lists the full history
// of toReference. Hash, subject, and body are separated by unit separators
// and commits by record separators so multi-line bodies survive parsing.
func (manager *RepositoryManager) ListCommits(executionContext context.Context, repositoryPath string, fromReference string, toReference string) ([]shared.CommitRecord, error) {
	if validationError := requireValue(toReferenceFieldNameConstant, toReference); validationError != nil {
		return nil, validationError
	}

	revisionRange := toReference
	if len(strings.TrimSpace(fromReference)) > 0 {
		revisionRange = fromReference + commitRangeSeparatorConstant + toReference
	}

	executionResult, executionError := manager.runGit(executionContext, listCommitsOperationConstant, repositoryPath,
		logSubcommandConstant, commitPrettyFormatFlagConstant, revisionRange)
	if executionError != nil {
		return nil, executionError
	}

	commitRecords := []shared.CommitRecord{}
	for _, rawRecord := range strings.Split(executionResult.StandardOutput, commitRecordSeparatorConstant) {
		trimmedRecord := strings.TrimSpace(rawRecord)
		if len(trimmedRecord) == 0 {
			continue
		}
		recordFields := strings.SplitN(trimmedRecord, commitFieldSeparatorConstant, commitFieldCountConstant)
		commitRecord := shared.CommitRecord{Hash: strings.TrimSpace(recordFields[0])}
		if len(recordFields) > 1 {
			commitRecord.Subject = strings.TrimSpace(recordFields[1])
		}
		if len(recordFields) > 2 {
			commitRecord.Body = strings.TrimSpace(recordFields[2])
		}
		commitRecords = append(commitRecords, commitRecord)
	}
	return commitRecords, nil
}

func splitOutputLines(commandOutput string) []string {
	outputLines := []string{}
	for _, outputLine := range strings.Split(commandOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) > 0 {
			outputLines = append(outputLines, trimmedLine)
		}
	}
	return outputLines
}

func (manager *RepositoryManager) runGit(executionContext context.Context, operation OperationName, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	if validationError := requireValue(repositoryPathFieldNameConstant, repositoryPath); validationError != nil {
		return execshell.ExecutionResult{}, validationError
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
		EnvironmentVariables: map[string]string{
			terminalPromptEnvironmentKeyConstant: terminalPromptDisabledValueConstant,
		},
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return executionResult, OperationError{Operation: operation, Cause: executionError}
	}
	return executionResult, nil
}

func requireValue(fieldName string, value string) error {
	if len(strings.TrimSpace(value)) == 0 {
		return InvalidInputError{FieldName: fieldName, Message: requiredValueMessageConstant}
	}
	return nil
}

func isCommandFailure(candidate error) bool {
	var commandFailure execshell.CommandFailedError
	return errors.As(candidate, &commandFailure)
}

func commandExitCode(candidate error) int {
	var commandFailure execshell.CommandFailedError
	if errors.As(candidate, &commandFailure) {
		return commandFailure.Result.ExitCode
	}
	return 0
}
