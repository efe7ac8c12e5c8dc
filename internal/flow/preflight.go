package flow

import (
	"context"
	"fmt"

	"github.com/temirov/gflow/internal/shared"
)

const (
	rehearsalBranchCreateTemplateConstant = "failed to create rehearsal branch %s: %w"
	rehearsalMergeTemplateConstant        = "failed to rehearse merging %s into %s: %w"
	rehearsalSwitchTemplateConstant       = "failed to leave rehearsal branch %s: %w"
	rehearsalDeleteTemplateConstant       = "failed to delete rehearsal branch %s: %w"
)

// RehearseMerge verifies that sourceBranch merges cleanly into targetBranch without
// modifying either branch. The merge is attempted on a throwaway rehearsal branch
// cut from targetBranch, aborted, and the rehearsal branch deleted. Conflicts
// surface as MergeConflictError; both real branches remain untouched on every
// outcome.
func RehearseMerge(executionContext context.Context, repositoryManager shared.GitRepositoryManager, repositoryPath string, sourceBranch string, targetBranch string) error {
	rehearsalBranch := RehearsalBranchPrefixConstant + targetBranch

	if createError := repositoryManager.CreateBranch(executionContext, repositoryPath, rehearsalBranch, targetBranch); createError != nil {
		return fmt.Errorf(rehearsalBranchCreateTemplateConstant, rehearsalBranch, createError)
	}

	conflictDetected, mergeError := repositoryManager.MergeWithoutCommit(executionContext, repositoryPath, sourceBranch)

	// Abort fails when the rehearsal merge had nothing to record; that outcome is fine.
	_ = repositoryManager.AbortMerge(executionContext, repositoryPath)

	switchError := repositoryManager.SwitchBranch(executionContext, repositoryPath, targetBranch, "")
	if switchError != nil {
		return fmt.Errorf(rehearsalSwitchTemplateConstant, rehearsalBranch, switchError)
	}

	if deleteError := repositoryManager.DeleteBranch(executionContext, repositoryPath, rehearsalBranch, true); deleteError != nil {
		return fmt.Errorf(rehearsalDeleteTemplateConstant, rehearsalBranch, deleteError)
	}

	if mergeError != nil {
		return fmt.Errorf(rehearsalMergeTemplateConstant, sourceBranch, targetBranch, mergeError)
	}
	if conflictDetected {
		return MergeConflictError{SourceBranch: sourceBranch, TargetBranch: targetBranch}
	}

	return nil
}
