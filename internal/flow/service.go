package flow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/temirov/gflow/internal/shared"
)

const (
	repositoryPathRequiredMessageConstant   = "repository path must be provided"
	branchNameRequiredMessageConstant       = "branch name must be provided"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	worktreeNotCleanMessageConstant         = "repository worktree is not clean"
	releaseFinishUnsupportedMessageConstant = "release branches finish through the release pipeline"

	cleanVerificationErrorTemplateConstant = "failed to verify clean worktree: %w"
	branchLookupErrorTemplateConstant      = "failed to check branch %s: %w"
	remoteLookupErrorTemplateConstant      = "failed to check remote branch %s: %w"
	currentBranchErrorTemplateConstant     = "failed to determine current branch: %w"
	fetchErrorTemplateConstant             = "failed to fetch %s: %w"
	switchErrorTemplateConstant            = "failed to switch to branch %s: %w"
	pullErrorTemplateConstant              = "failed to pull %s from %s: %w"
	pushErrorTemplateConstant              = "failed to push %s to %s: %w"

	pushPromptTemplateConstant      = "Push %s to %s? [a/N/y] "
	pushSkippedMessageConstant      = "PUSH-SKIP: %s (user declined)\n"
	pushPromptErrorTemplateConstant = "failed to read push confirmation: %w"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrBranchNameRequired indicates the branch name option was empty.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrWorktreeNotClean indicates the repository contains uncommitted changes.
var ErrWorktreeNotClean = errors.New(worktreeNotCleanMessageConstant)

// ErrReleaseFinishUnsupported indicates a release branch was handed to the plain branch finish flow.
var ErrReleaseFinishUnsupported = errors.New(releaseFinishUnsupportedMessageConstant)

// Dependencies enumerates external collaborators required by the flow services.
type Dependencies struct {
	RepositoryManager shared.GitRepositoryManager
	Prompter          shared.ConfirmationPrompter
	Output            io.Writer
}

func writeOutput(outputWriter io.Writer, format string, arguments ...any) {
	if outputWriter == nil {
		return
	}
	fmt.Fprintf(outputWriter, format, arguments...)
}

// pushWithConfirmation pushes branchName to remoteName unless an interactive
// prompt is available and the user declines. It reports whether the push ran.
func pushWithConfirmation(executionContext context.Context, dependencies Dependencies, repositoryPath string, remoteName string, branchName string, assumeYes bool) (bool, error) {
	if !assumeYes && dependencies.Prompter != nil {
		prompt := fmt.Sprintf(pushPromptTemplateConstant, branchName, remoteName)
		confirmationResult, promptError := dependencies.Prompter.Confirm(prompt)
		if promptError != nil {
			return false, fmt.Errorf(pushPromptErrorTemplateConstant, promptError)
		}
		if !confirmationResult.Confirmed {
			writeOutput(dependencies.Output, pushSkippedMessageConstant, branchName)
			return false, nil
		}
	}

	if pushError := dependencies.RepositoryManager.PushBranch(executionContext, repositoryPath, remoteName, branchName, false); pushError != nil {
		return false, fmt.Errorf(pushErrorTemplateConstant, branchName, remoteName, pushError)
	}
	return true, nil
}
