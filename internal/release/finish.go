package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/gflow/internal/flow"
)

const (
	finishPlanMergeTemplateConstant  = "PLAN-MERGE: %s -> %s\n"
	finishPlanSquashTemplateConstant = "PLAN-SQUASH: %s -> %s\n"
	finishPlanTagTemplateConstant    = "PLAN-TAG: %s\n"
	finishPlanDeleteTemplateConstant = "PLAN-DELETE: %s\n"
	finishPlanPushTemplateConstant   = "PLAN-PUSH: %s -> %s\n"

	mergeCommitMessageTemplateConstant = "merge: %s -> %s"
	mergeBackSourceTemplateConstant    = "%s/%s"
	tagMessageTemplateConstant         = "🔖 Release %s"
)

// FinishOptions configures a release finish operation.
type FinishOptions struct {
	RepositoryPath string
	// BranchName selects the release branch; empty finishes the current branch.
	BranchName    string
	Configuration flow.Configuration
	DryRun        bool
	AssumeYes     bool
}

// FinishResult captures the observable outcomes of a release finish.
type FinishResult struct {
	ReleaseBranch     string
	Version           string
	TagName           string
	PushedProduction  bool
	PushedDevelopment bool
	PushedTag         bool
}

// FinishService lands release branches: merge into the development branch,
// squash onto the production branch, tag, and merge the production branch back.
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

// Finish lands the release branch. The release merges into the development
// branch with a merge commit, the development branch squashes onto the
// production branch through a throwaway staging branch, the release version
// tag lands on the production branch, and the production branch merges back
// into the development branch so both histories share the release point. Both
// merges are rehearsed before any branch changes; conflicts surface as
// flow.MergeConflictError with every branch untouched. Pushes of the
// production branch, the development branch, and the tag each confirm
// interactively unless AssumeYes is set.
func (service *FinishService) Finish(executionContext context.Context, options FinishOptions) (FinishResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return FinishResult{}, ErrRepositoryPathRequired
	}

	configuration := options.Configuration.Sanitize()
	developmentBranch := configuration.DevelopmentBranch
	productionBranch := configuration.ProductionBranch
	remoteName := configuration.RemoteName
	repositoryManager := service.dependencies.RepositoryManager

	releaseBranch, resolveError := resolveReleaseBranch(executionContext, repositoryManager, trimmedRepositoryPath, options.BranchName, configuration)
	if resolveError != nil {
		return FinishResult{}, resolveError
	}
	version := strings.TrimPrefix(releaseBranch, configuration.ReleasePrefix)
	tagName := version

	clean, cleanError := repositoryManager.CheckCleanWorktree(executionContext, trimmedRepositoryPath)
	if cleanError != nil {
		return FinishResult{}, fmt.Errorf(cleanVerificationErrorTemplateConstant, cleanError)
	}
	if !clean {
		return FinishResult{}, ErrWorktreeNotClean
	}

	branchExists, branchLookupError := repositoryManager.BranchExists(executionContext, trimmedRepositoryPath, releaseBranch)
	if branchLookupError != nil {
		return FinishResult{}, fmt.Errorf(branchLookupErrorTemplateConstant, releaseBranch, branchLookupError)
	}
	if !branchExists {
		return FinishResult{}, fmt.Errorf(branchNotFoundTemplateConstant, releaseBranch)
	}

	tagExists, tagLookupError := repositoryManager.TagExists(executionContext, trimmedRepositoryPath, tagName)
	if tagLookupError != nil {
		return FinishResult{}, fmt.Errorf(tagLookupErrorTemplateConstant, tagName, tagLookupError)
	}
	if tagExists {
		return FinishResult{}, TagExistsError{TagName: tagName}
	}

	if options.DryRun {
		writeOutput(service.dependencies.Output, finishPlanMergeTemplateConstant, releaseBranch, developmentBranch)
		writeOutput(service.dependencies.Output, finishPlanSquashTemplateConstant, developmentBranch, productionBranch)
		writeOutput(service.dependencies.Output, finishPlanTagTemplateConstant, tagName)
		writeOutput(service.dependencies.Output, finishPlanMergeTemplateConstant, productionBranch, developmentBranch)
		writeOutput(service.dependencies.Output, finishPlanDeleteTemplateConstant, releaseBranch)
		writeOutput(service.dependencies.Output, finishPlanPushTemplateConstant, productionBranch, remoteName)
		writeOutput(service.dependencies.Output, finishPlanPushTemplateConstant, developmentBranch, remoteName)
		writeOutput(service.dependencies.Output, finishPlanPushTemplateConstant, tagName, remoteName)
		return FinishResult{ReleaseBranch: releaseBranch, Version: version, TagName: tagName}, nil
	}

	if fetchError := repositoryManager.FetchRemote(executionContext, trimmedRepositoryPath, remoteName); fetchError != nil {
		return FinishResult{}, fmt.Errorf(fetchErrorTemplateConstant, remoteName, fetchError)
	}

	if switchError := repositoryManager.SwitchBranch(executionContext, trimmedRepositoryPath, developmentBranch, remoteName); switchError != nil {
		return FinishResult{}, fmt.Errorf(switchErrorTemplateConstant, developmentBranch, switchError)
	}
	if pullError := service.pullIfRemoteExists(executionContext, trimmedRepositoryPath, remoteName, developmentBranch); pullError != nil {
		return FinishResult{}, pullError
	}

	if rehearsalError := flow.RehearseMerge(executionContext, repositoryManager, trimmedRepositoryPath, releaseBranch, developmentBranch); rehearsalError != nil {
		return FinishResult{}, rehearsalError
	}

	mergeIntoDevelopmentMessage := fmt.Sprintf(mergeCommitMessageTemplateConstant, releaseBranch, developmentBranch)
	if mergeError := repositoryManager.MergeNoFastForward(executionContext, trimmedRepositoryPath, releaseBranch, mergeIntoDevelopmentMessage); mergeError != nil {
		return FinishResult{}, fmt.Errorf(mergeErrorTemplateConstant, releaseBranch, developmentBranch, mergeError)
	}

	if switchError := repositoryManager.SwitchBranch(executionContext, trimmedRepositoryPath, productionBranch, remoteName); switchError != nil {
		return FinishResult{}, fmt.Errorf(switchErrorTemplateConstant, productionBranch, switchError)
	}
	if pullError := service.pullIfRemoteExists(executionContext, trimmedRepositoryPath, remoteName, productionBranch); pullError != nil {
		return FinishResult{}, pullError
	}

	if rehearsalError := flow.RehearseMerge(executionContext, repositoryManager, trimmedRepositoryPath, developmentBranch, productionBranch); rehearsalError != nil {
		return FinishResult{}, rehearsalError
	}

	// The squash runs on a staging branch so the production branch only ever
	// fast-forwards to a fully formed release commit.
	stagingBranch := flow.RehearsalBranchPrefixConstant + releaseBranch
	if createError := repositoryManager.CreateBranch(executionContext, trimmedRepositoryPath, stagingBranch, productionBranch); createError != nil {
		return FinishResult{}, fmt.Errorf(createBranchErrorTemplateConstant, stagingBranch, createError)
	}
	if squashError := repositoryManager.MergeSquash(executionContext, trimmedRepositoryPath, developmentBranch); squashError != nil {
		return FinishResult{}, fmt.Errorf(mergeErrorTemplateConstant, developmentBranch, stagingBranch, squashError)
	}
	squashCommitMessage := fmt.Sprintf(mergeCommitMessageTemplateConstant, releaseBranch, productionBranch)
	if commitError := repositoryManager.CommitAll(executionContext, trimmedRepositoryPath, squashCommitMessage); commitError != nil {
		return FinishResult{}, fmt.Errorf(commitErrorTemplateConstant, stagingBranch, commitError)
	}

	if switchError := repositoryManager.SwitchBranch(executionContext, trimmedRepositoryPath, productionBranch, remoteName); switchError != nil {
		return FinishResult{}, fmt.Errorf(switchErrorTemplateConstant, productionBranch, switchError)
	}
	if fastForwardError := repositoryManager.MergeFastForwardOnly(executionContext, trimmedRepositoryPath, stagingBranch); fastForwardError != nil {
		return FinishResult{}, fmt.Errorf(mergeErrorTemplateConstant, stagingBranch, productionBranch, fastForwardError)
	}

	tagMessage := fmt.Sprintf(tagMessageTemplateConstant, version)
	if tagError := repositoryManager.CreateAnnotatedTag(executionContext, trimmedRepositoryPath, tagName, tagMessage); tagError != nil {
		return FinishResult{}, fmt.Errorf(tagCreationErrorTemplateConstant, tagName, tagError)
	}

	if switchError := repositoryManager.SwitchBranch(executionContext, trimmedRepositoryPath, developmentBranch, remoteName); switchError != nil {
		return FinishResult{}, fmt.Errorf(switchErrorTemplateConstant, developmentBranch, switchError)
	}
	mergeBackSource := fmt.Sprintf(mergeBackSourceTemplateConstant, productionBranch, version)
	mergeBackMessage := fmt.Sprintf(mergeCommitMessageTemplateConstant, mergeBackSource, developmentBranch)
	if mergeError := repositoryManager.MergeNoFastForward(executionContext, trimmedRepositoryPath, productionBranch, mergeBackMessage); mergeError != nil {
		return FinishResult{}, fmt.Errorf(mergeErrorTemplateConstant, productionBranch, developmentBranch, mergeError)
	}

	if deleteError := repositoryManager.DeleteBranch(executionContext, trimmedRepositoryPath, stagingBranch, false); deleteError != nil {
		return FinishResult{}, fmt.Errorf(deleteBranchErrorTemplateConstant, stagingBranch, deleteError)
	}
	// The squash makes the release branch look unmerged to git.
	if deleteError := repositoryManager.DeleteBranch(executionContext, trimmedRepositoryPath, releaseBranch, true); deleteError != nil {
		return FinishResult{}, fmt.Errorf(deleteBranchErrorTemplateConstant, releaseBranch, deleteError)
	}

	assumeYes := options.AssumeYes
	pushedProduction, applyToAll, pushProductionError := pushBranchWithConfirmation(executionContext, service.dependencies, trimmedRepositoryPath, remoteName, productionBranch, assumeYes)
	if pushProductionError != nil {
		return FinishResult{}, pushProductionError
	}
	assumeYes = assumeYes || applyToAll

	pushedDevelopment, applyToAll, pushDevelopmentError := pushBranchWithConfirmation(executionContext, service.dependencies, trimmedRepositoryPath, remoteName, developmentBranch, assumeYes)
	if pushDevelopmentError != nil {
		return FinishResult{}, pushDevelopmentError
	}
	assumeYes = assumeYes || applyToAll

	pushedTag, _, pushTagError := pushTagWithConfirmation(executionContext, service.dependencies, trimmedRepositoryPath, remoteName, tagName, assumeYes)
	if pushTagError != nil {
		return FinishResult{}, pushTagError
	}

	return FinishResult{
		ReleaseBranch:     releaseBranch,
		Version:           version,
		TagName:           tagName,
		PushedProduction:  pushedProduction,
		PushedDevelopment: pushedDevelopment,
		PushedTag:         pushedTag,
	}, nil
}

func (service *FinishService) pullIfRemoteExists(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	remoteExists, remoteLookupError := service.dependencies.RepositoryManager.RemoteBranchExists(executionContext, repositoryPath, remoteName, branchName)
	if remoteLookupError != nil {
		return fmt.Errorf(remoteLookupErrorTemplateConstant, branchName, remoteLookupError)
	}
	if !remoteExists {
		return nil
	}
	if pullError := service.dependencies.RepositoryManager.PullFastForwardOnly(executionContext, repositoryPath, remoteName, branchName); pullError != nil {
		return fmt.Errorf(pullErrorTemplateConstant, branchName, remoteName, pullError)
	}
	return nil
}
