package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/gflow/internal/flow"
	"github.com/temirov/gflow/internal/shared"
)

const (
	repositoryPathRequiredMessageConstant   = "repository path must be provided"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	fileSystemMissingMessageConstant        = "file system not configured"
	githubClientMissingMessageConstant      = "github client not configured"
	worktreeNotCleanMessageConstant         = "repository worktree is not clean"

	wrongBranchTemplateConstant      = "release start must run from %s (currently on %s)"
	tagExistsTemplateConstant        = "tag %s already exists"
	notReleaseBranchTemplateConstant = "branch %s is not a release branch (expected prefix %s)"
	branchNotFoundTemplateConstant   = "branch %s not found"

	cleanVerificationErrorTemplateConstant = "failed to verify clean worktree: %w"
	currentBranchErrorTemplateConstant     = "failed to determine current branch: %w"
	branchLookupErrorTemplateConstant      = "failed to check branch %s: %w"
	remoteLookupErrorTemplateConstant      = "failed to check remote branch %s: %w"
	tagLookupErrorTemplateConstant         = "failed to check tag %s: %w"
	latestTagErrorTemplateConstant         = "failed to determine latest version tag: %w"
	fetchErrorTemplateConstant             = "failed to fetch %s: %w"
	switchErrorTemplateConstant            = "failed to switch to branch %s: %w"
	pullErrorTemplateConstant              = "failed to pull %s from %s: %w"
	pushErrorTemplateConstant              = "failed to push %s to %s: %w"
	createBranchErrorTemplateConstant      = "failed to create branch %s: %w"
	mergeErrorTemplateConstant             = "failed to merge %s into %s: %w"
	deleteBranchErrorTemplateConstant      = "failed to delete branch %s: %w"
	commitErrorTemplateConstant            = "failed to commit on %s: %w"
	tagCreationErrorTemplateConstant       = "failed to create tag %s: %w"

	pushBranchPromptTemplateConstant = "Push %s to %s? [a/N/y] "
	pushTagPromptTemplateConstant    = "Push tag %s to %s? [a/N/y] "
	pushSkippedMessageConstant       = "PUSH-SKIP: %s (user declined)\n"
	pushPromptErrorTemplateConstant  = "failed to read push confirmation: %w"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrFileSystemNotConfigured indicates the file system dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrGitHubClientNotConfigured indicates the github client dependency was missing.
var ErrGitHubClientNotConfigured = errors.New(githubClientMissingMessageConstant)

// ErrWorktreeNotClean indicates the repository contains uncommitted changes.
var ErrWorktreeNotClean = errors.New(worktreeNotCleanMessageConstant)

// WrongBranchError reports a release start attempted away from the development branch.
type WrongBranchError struct {
	CurrentBranch  string
	ExpectedBranch string
}

// Error describes the wrong branch failure.
func (branchError WrongBranchError) Error() string {
	return fmt.Sprintf(wrongBranchTemplateConstant, branchError.ExpectedBranch, branchError.CurrentBranch)
}

// TagExistsError reports an attempt to release a version whose tag already exists.
type TagExistsError struct {
	TagName string
}

// Error describes the duplicate tag failure.
func (tagError TagExistsError) Error() string {
	return fmt.Sprintf(tagExistsTemplateConstant, tagError.TagName)
}

// NotReleaseBranchError reports a branch handed to the release pipeline without the release prefix.
type NotReleaseBranchError struct {
	BranchName string
	Prefix     string
}

// Error describes the prefix mismatch failure.
func (prefixError NotReleaseBranchError) Error() string {
	return fmt.Sprintf(notReleaseBranchTemplateConstant, prefixError.BranchName, prefixError.Prefix)
}

// Dependencies enumerates external collaborators required by the release services.
type Dependencies struct {
	RepositoryManager shared.GitRepositoryManager
	FileSystem        shared.FileSystem
	GitHubClient      shared.GitHubOperations
	Prompter          shared.ConfirmationPrompter
	Clock             shared.Clock
	Output            io.Writer
}

func writeOutput(outputWriter io.Writer, format string, arguments ...any) {
	if outputWriter == nil {
		return
	}
	fmt.Fprintf(outputWriter, format, arguments...)
}

// resolveReleaseBranch determines the release branch for finish and pull
// request operations. An empty branch name selects the current branch, which
// must carry the release prefix; a short explicit name gets the prefix added.
func resolveReleaseBranch(executionContext context.Context, repositoryManager shared.GitRepositoryManager, repositoryPath string, branchName string, configuration flow.Configuration) (string, error) {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		currentBranch, currentBranchError := repositoryManager.GetCurrentBranch(executionContext, repositoryPath)
		if currentBranchError != nil {
			return "", fmt.Errorf(currentBranchErrorTemplateConstant, currentBranchError)
		}
		if !strings.HasPrefix(currentBranch, configuration.ReleasePrefix) {
			return "", NotReleaseBranchError{BranchName: currentBranch, Prefix: configuration.ReleasePrefix}
		}
		return currentBranch, nil
	}
	if strings.HasPrefix(trimmedBranchName, configuration.ReleasePrefix) {
		return trimmedBranchName, nil
	}
	return configuration.ReleasePrefix + trimmedBranchName, nil
}

// confirmPush runs the push confirmation prompt. The first return reports
// whether the push may proceed and the second whether the answer covers every
// remaining push of the operation.
func confirmPush(dependencies Dependencies, prompt string, subject string, assumeYes bool) (bool, bool, error) {
	if assumeYes || dependencies.Prompter == nil {
		return true, false, nil
	}
	confirmationResult, promptError := dependencies.Prompter.Confirm(prompt)
	if promptError != nil {
		return false, false, fmt.Errorf(pushPromptErrorTemplateConstant, promptError)
	}
	if !confirmationResult.Confirmed {
		writeOutput(dependencies.Output, pushSkippedMessageConstant, subject)
		return false, false, nil
	}
	return true, confirmationResult.ApplyToAll, nil
}

func pushBranchWithConfirmation(executionContext context.Context, dependencies Dependencies, repositoryPath string, remoteName string, branchName string, assumeYes bool) (bool, bool, error) {
	prompt := fmt.Sprintf(pushBranchPromptTemplateConstant, branchName, remoteName)
	confirmed, applyToAll, confirmationError := confirmPush(dependencies, prompt, branchName, assumeYes)
	if confirmationError != nil || !confirmed {
		return false, applyToAll, confirmationError
	}
	if pushError := dependencies.RepositoryManager.PushBranch(executionContext, repositoryPath, remoteName, branchName, false); pushError != nil {
		return false, applyToAll, fmt.Errorf(pushErrorTemplateConstant, branchName, remoteName, pushError)
	}
	return true, applyToAll, nil
}

func pushTagWithConfirmation(executionContext context.Context, dependencies Dependencies, repositoryPath string, remoteName string, tagName string, assumeYes bool) (bool, bool, error) {
	prompt := fmt.Sprintf(pushTagPromptTemplateConstant, tagName, remoteName)
	confirmed, applyToAll, confirmationError := confirmPush(dependencies, prompt, tagName, assumeYes)
	if confirmationError != nil || !confirmed {
		return false, applyToAll, confirmationError
	}
	if pushError := dependencies.RepositoryManager.PushTag(executionContext, repositoryPath, remoteName, tagName); pushError != nil {
		return false, applyToAll, fmt.Errorf(pushErrorTemplateConstant, tagName, remoteName, pushError)
	}
	return true, applyToAll, nil
}
