package flow

import (
	"context"
	"fmt"
	"strings"
)

const (
	finishPlanMergeTemplateConstant  = "PLAN-MERGE: %s -> %s\n"
	finishPlanDeleteTemplateConstant = "PLAN-DELETE: %s\n"
	finishPlanPushTemplateConstant   = "PLAN-PUSH: %s -> %s\n"

	mergeCommitMessageTemplateConstant = "merge: %s -> %s"
	prefixMismatchTemplateConstant     = "branch %s is not a %s branch (expected prefix %s)"
	branchNotFoundTemplateConstant     = "branch %s not found"
	mergeErrorTemplateConstant         = "failed to merge %s into %s: %w"
	deleteBranchErrorTemplateConstant  = "failed to delete branch %s: %w"
)

// FinishOptions configures a flow branch finish operation.
type FinishOptions struct {
	RepositoryPath string
	BranchKind     string
	BranchName     string
	Configuration  Configuration
	DryRun         bool
	AssumeYes      bool
}

// FinishResult captures the observable outcomes of a finish.
type FinishResult struct {
	SourceBranch string
	TargetBranch string
	Pushed       bool
}

// FinishService merges finished feature and fix branches into the development branch.
type FinishService struct {
	dependencies Dependencies
}

// NewFinishService constructs a FinishService from the provided dependencies.
func NewFinishService(dependencies Dependencies) (*FinishService, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	return &FinishService{dependencies: dependencies}, nil
}

// Finish merges the branch into the development branch with a merge commit,
// deletes the branch, and pushes the development branch. The merge is rehearsed
// on a throwaway branch first; conflicts surface as MergeConflictError with both
// branches untouched. An empty branch name finishes the current branch, which
// must carry the requested type's prefix.
func (service *FinishService) Finish(executionContext context.Context, options FinishOptions) (FinishResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return FinishResult{}, ErrRepositoryPathRequired
	}

	branchType, parseError := ParseBranchType(options.BranchKind)
	if parseError != nil {
		return FinishResult{}, parseError
	}
	if branchType == BranchTypeRelease {
		return FinishResult{}, ErrReleaseFinishUnsupported
	}

	configuration := options.Configuration.Sanitize()
	branchPrefix := configuration.BranchPrefix(branchType)
	targetBranch := configuration.DevelopmentBranch
	remoteName := configuration.RemoteName
	repositoryManager := service.dependencies.RepositoryManager

	sourceBranch := strings.TrimSpace(options.BranchName)
	if len(sourceBranch) == 0 {
		currentBranch, currentBranchError := repositoryManager.GetCurrentBranch(executionContext, trimmedRepositoryPath)
		if currentBranchError != nil {
			return FinishResult{}, fmt.Errorf(currentBranchErrorTemplateConstant, currentBranchError)
		}
		if !strings.HasPrefix(currentBranch, branchPrefix) {
			return FinishResult{}, fmt.Errorf(prefixMismatchTemplateConstant, currentBranch, branchType, branchPrefix)
		}
		sourceBranch = currentBranch
	} else if !strings.HasPrefix(sourceBranch, branchPrefix) {
		sourceBranch = configuration.QualifiedBranchName(branchType, sourceBranch)
	}

	clean, cleanError := repositoryManager.CheckCleanWorktree(executionContext, trimmedRepositoryPath)
	if cleanError != nil {
		return FinishResult{}, fmt.Errorf(cleanVerificationErrorTemplateConstant, cleanError)
	}
	if !clean {
		return FinishResult{}, ErrWorktreeNotClean
	}

	sourceExists, sourceLookupError := repositoryManager.BranchExists(executionContext, trimmedRepositoryPath, sourceBranch)
	if sourceLookupError != nil {
		return FinishResult{}, fmt.Errorf(branchLookupErrorTemplateConstant, sourceBranch, sourceLookupError)
	}
	if !sourceExists {
		return FinishResult{}, fmt.Errorf(branchNotFoundTemplateConstant, sourceBranch)
	}

	if options.DryRun {
		writeOutput(service.dependencies.Output, finishPlanMergeTemplateConstant, sourceBranch, targetBranch)
		writeOutput(service.dependencies.Output, finishPlanDeleteTemplateConstant, sourceBranch)
		writeOutput(service.dependencies.Output, finishPlanPushTemplateConstant, targetBranch, remoteName)
		return FinishResult{SourceBranch: sourceBranch, TargetBranch: targetBranch}, nil
	}

	if fetchError := repositoryManager.FetchRemote(executionContext, trimmedRepositoryPath, remoteName); fetchError != nil {
		return FinishResult{}, fmt.Errorf(fetchErrorTemplateConstant, remoteName, fetchError)
	}

	if switchError := repositoryManager.SwitchBranch(executionContext, trimmedRepositoryPath, targetBranch, remoteName); switchError != nil {
		return FinishResult{}, fmt.Errorf(switchErrorTemplateConstant, targetBranch, switchError)
	}

	remoteTargetExists, remoteTargetLookupError := repositoryManager.RemoteBranchExists(executionContext, trimmedRepositoryPath, remoteName, targetBranch)
	if remoteTargetLookupError != nil {
		return FinishResult{}, fmt.Errorf(remoteLookupErrorTemplateConstant, targetBranch, remoteTargetLookupError)
	}
	if remoteTargetExists {
		if pullError := repositoryManager.PullFastForwardOnly(executionContext, trimmedRepositoryPath, remoteName, targetBranch); pullError != nil {
			return FinishResult{}, fmt.Errorf(pullErrorTemplateConstant, targetBranch, remoteName, pullError)
		}
	}

	if rehearsalError := RehearseMerge(executionContext, repositoryManager, trimmedRepositoryPath, sourceBranch, targetBranch); rehearsalError != nil {
		return FinishResult{}, rehearsalError
	}

	mergeCommitMessage := fmt.Sprintf(mergeCommitMessageTemplateConstant, sourceBranch, targetBranch)
	if mergeError := repositoryManager.MergeNoFastForward(executionContext, trimmedRepositoryPath, sourceBranch, mergeCommitMessage); mergeError != nil {
		return FinishResult{}, fmt.Errorf(mergeErrorTemplateConstant, sourceBranch, targetBranch, mergeError)
	}

	if deleteError := repositoryManager.DeleteBranch(executionContext, trimmedRepositoryPath, sourceBranch, true); deleteError != nil {
		return FinishResult{}, fmt.Errorf(deleteBranchErrorTemplateConstant, sourceBranch, deleteError)
	}

	pushed, pushError := pushWithConfirmation(executionContext, service.dependencies, trimmedRepositoryPath, remoteName, targetBranch, options.AssumeYes)
	if pushError != nil {
		return FinishResult{}, pushError
	}

	return FinishResult{SourceBranch: sourceBranch, TargetBranch: targetBranch, Pushed: pushed}, nil
}
