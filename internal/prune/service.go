package prune

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

	currentBranchErrorTemplateConstant  = "failed to determine current branch: %w"
	branchListingErrorTemplateConstant  = "failed to list branches: %w"
	mergedListingErrorTemplateConstant  = "failed to list branches merged into %s: %w"
	deleteBranchErrorTemplateConstant   = "failed to delete branch %s: %w"
	deletePromptErrorTemplateConstant   = "failed to read deletion confirmation: %w"
	deletePromptTemplateConstant        = "Delete branch %s? [a/N/y] "
	planDeleteMessageTemplateConstant   = "PLAN-DELETE: %s\n"
	deletedMessageTemplateConstant      = "DELETED: %s\n"
	skipUnmergedMessageTemplateConstant = "SKIP: %s (not merged into %s)\n"
	skipDeclinedMessageTemplateConstant = "SKIP: %s (user declined)\n"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// Dependencies enumerates external collaborators required by the prune service.
type Dependencies struct {
	RepositoryManager shared.GitRepositoryManager
	Prompter          shared.ConfirmationPrompter
	Output            io.Writer
}

// Options configures a prune run.
type Options struct {
	RepositoryPath string
	Configuration  flow.Configuration
	DryRun         bool
	AssumeYes      bool
}

// Result captures which branches were deleted and which were kept.
type Result struct {
	DeletedBranches []string
	SkippedBranches []string
}

// Service deletes local flow branches that already merged into the development branch.
type Service struct {
	dependencies Dependencies
}

// NewService constructs a prune Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	return &Service{dependencies: dependencies}, nil
}

// Prune walks the local flow branches, skips the checked-out branch and every
// branch not merged into the development branch, and deletes the rest after a
// per-branch confirmation. An apply-to-all answer covers the remaining
// branches.
func (service *Service) Prune(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}

	configuration := options.Configuration.Sanitize()
	developmentBranch := configuration.DevelopmentBranch
	repositoryManager := service.dependencies.RepositoryManager

	currentBranch, currentBranchError := repositoryManager.GetCurrentBranch(executionContext, trimmedRepositoryPath)
	if currentBranchError != nil {
		return Result{}, fmt.Errorf(currentBranchErrorTemplateConstant, currentBranchError)
	}

	localBranches, listError := repositoryManager.ListBranches(executionContext, trimmedRepositoryPath)
	if listError != nil {
		return Result{}, fmt.Errorf(branchListingErrorTemplateConstant, listError)
	}

	candidateBranches := make([]string, 0, len(localBranches))
	for _, branchName := range localBranches {
		if branchName == currentBranch {
			continue
		}
		if !hasFlowPrefix(branchName, configuration) {
			continue
		}
		candidateBranches = append(candidateBranches, branchName)
	}
	if len(candidateBranches) == 0 {
		return Result{}, nil
	}

	mergedBranches, mergedError := repositoryManager.ListMergedBranches(executionContext, trimmedRepositoryPath, developmentBranch)
	if mergedError != nil {
		return Result{}, fmt.Errorf(mergedListingErrorTemplateConstant, developmentBranch, mergedError)
	}
	mergedSet := make(map[string]bool, len(mergedBranches))
	for _, mergedBranch := range mergedBranches {
		mergedSet[mergedBranch] = true
	}

	result := Result{}
	assumeYes := options.AssumeYes
	for _, branchName := range candidateBranches {
		if !mergedSet[branchName] {
			writeOutput(service.dependencies.Output, skipUnmergedMessageTemplateConstant, branchName, developmentBranch)
			result.SkippedBranches = append(result.SkippedBranches, branchName)
			continue
		}

		if options.DryRun {
			writeOutput(service.dependencies.Output, planDeleteMessageTemplateConstant, branchName)
			continue
		}

		if !assumeYes && service.dependencies.Prompter != nil {
			prompt := fmt.Sprintf(deletePromptTemplateConstant, branchName)
			confirmationResult, promptError := service.dependencies.Prompter.Confirm(prompt)
			if promptError != nil {
				return Result{}, fmt.Errorf(deletePromptErrorTemplateConstant, promptError)
			}
			if !confirmationResult.Confirmed {
				writeOutput(service.dependencies.Output, skipDeclinedMessageTemplateConstant, branchName)
				result.SkippedBranches = append(result.SkippedBranches, branchName)
				continue
			}
			assumeYes = assumeYes || confirmationResult.ApplyToAll
		}

		if deleteError := repositoryManager.DeleteBranch(executionContext, trimmedRepositoryPath, branchName, false); deleteError != nil {
			return Result{}, fmt.Errorf(deleteBranchErrorTemplateConstant, branchName, deleteError)
		}
		writeOutput(service.dependencies.Output, deletedMessageTemplateConstant, branchName)
		result.DeletedBranches = append(result.DeletedBranches, branchName)
	}

	return result, nil
}

func hasFlowPrefix(branchName string, configuration flow.Configuration) bool {
	prefixes := []string{
		configuration.FeaturePrefix,
		configuration.FixPrefix,
		configuration.ReleasePrefix,
		flow.RehearsalBranchPrefixConstant,
		flow.PullRequestBranchPrefixConstant,
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(branchName, prefix) {
			return true
		}
	}
	return false
}

func writeOutput(outputWriter io.Writer, format string, arguments ...any) {
	if outputWriter == nil {
		return
	}
	fmt.Fprintf(outputWriter, format, arguments...)
}
