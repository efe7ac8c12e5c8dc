package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/gflow/internal/changelog"
	"github.com/temirov/gflow/internal/flow"
)

const (
	startPlanBranchTemplateConstant    = "PLAN-RELEASE-START: %s (version %s)\n"
	startPlanRewriteTemplateConstant   = "PLAN-REWRITE: %s\n"
	startPlanChangelogTemplateConstant = "PLAN-CHANGELOG: %s\n"

	releaseCommitMessageTemplateConstant = "chore(release): %s"
)

// StartOptions configures a release branch start operation.
type StartOptions struct {
	RepositoryPath string
	// VersionSelector names an increment (patch, minor, major) or an explicit version.
	VersionSelector string
	Configuration   flow.Configuration
	DryRun          bool
}

// StartResult captures the observable outcomes of a release start.
type StartResult struct {
	BranchName     string
	Version        string
	PreviousTag    string
	RewrittenFiles []string
	ChangelogPath  string
}

// StartService cuts release branches from the development branch and prepares
// the release commit: version file rewrites plus the changelog entry.
type StartService struct {
	dependencies Dependencies
}

// NewStartService constructs a StartService from the provided dependencies.
func NewStartService(dependencies Dependencies) (*StartService, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &StartService{dependencies: dependencies}, nil
}

// Start resolves the next version from the latest tag and the selector,
// creates the release branch from the development branch, rewrites the
// configured version files, prepends the changelog entry, and records the
// release preparation commit. The operation must run from a clean checkout of
// the development branch, and both the version tag and the release branch must
// not exist yet.
func (service *StartService) Start(executionContext context.Context, options StartOptions) (StartResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return StartResult{}, ErrRepositoryPathRequired
	}

	configuration := options.Configuration.Sanitize()
	developmentBranch := configuration.DevelopmentBranch
	remoteName := configuration.RemoteName
	repositoryManager := service.dependencies.RepositoryManager

	clean, cleanError := repositoryManager.CheckCleanWorktree(executionContext, trimmedRepositoryPath)
	if cleanError != nil {
		return StartResult{}, fmt.Errorf(cleanVerificationErrorTemplateConstant, cleanError)
	}
	if !clean {
		return StartResult{}, ErrWorktreeNotClean
	}

	currentBranch, currentBranchError := repositoryManager.GetCurrentBranch(executionContext, trimmedRepositoryPath)
	if currentBranchError != nil {
		return StartResult{}, fmt.Errorf(currentBranchErrorTemplateConstant, currentBranchError)
	}
	if currentBranch != developmentBranch {
		return StartResult{}, WrongBranchError{CurrentBranch: currentBranch, ExpectedBranch: developmentBranch}
	}

	latestTag, latestTagError := repositoryManager.LatestTag(executionContext, trimmedRepositoryPath)
	if latestTagError != nil {
		return StartResult{}, fmt.Errorf(latestTagErrorTemplateConstant, latestTagError)
	}

	version, versionError := ResolveVersion(latestTag, options.VersionSelector)
	if versionError != nil {
		return StartResult{}, versionError
	}

	tagExists, tagLookupError := repositoryManager.TagExists(executionContext, trimmedRepositoryPath, version)
	if tagLookupError != nil {
		return StartResult{}, fmt.Errorf(tagLookupErrorTemplateConstant, version, tagLookupError)
	}
	if tagExists {
		return StartResult{}, TagExistsError{TagName: version}
	}

	releaseBranch := configuration.ReleasePrefix + version
	localExists, localLookupError := repositoryManager.BranchExists(executionContext, trimmedRepositoryPath, releaseBranch)
	if localLookupError != nil {
		return StartResult{}, fmt.Errorf(branchLookupErrorTemplateConstant, releaseBranch, localLookupError)
	}
	if localExists {
		return StartResult{}, flow.BranchExistsError{BranchName: releaseBranch}
	}
	remoteExists, remoteLookupError := repositoryManager.RemoteBranchExists(executionContext, trimmedRepositoryPath, remoteName, releaseBranch)
	if remoteLookupError != nil {
		return StartResult{}, fmt.Errorf(remoteLookupErrorTemplateConstant, releaseBranch, remoteLookupError)
	}
	if remoteExists {
		return StartResult{}, flow.BranchExistsError{BranchName: releaseBranch}
	}

	if options.DryRun {
		writeOutput(service.dependencies.Output, startPlanBranchTemplateConstant, releaseBranch, version)
		for _, versionFile := range configuration.VersionFiles {
			writeOutput(service.dependencies.Output, startPlanRewriteTemplateConstant, versionFile)
		}
		writeOutput(service.dependencies.Output, startPlanChangelogTemplateConstant, configuration.ChangelogPath)
		return StartResult{BranchName: releaseBranch, Version: version, PreviousTag: latestTag}, nil
	}

	if fetchError := repositoryManager.FetchRemote(executionContext, trimmedRepositoryPath, remoteName); fetchError != nil {
		return StartResult{}, fmt.Errorf(fetchErrorTemplateConstant, remoteName, fetchError)
	}

	remoteDevelopmentExists, remoteDevelopmentLookupError := repositoryManager.RemoteBranchExists(executionContext, trimmedRepositoryPath, remoteName, developmentBranch)
	if remoteDevelopmentLookupError != nil {
		return StartResult{}, fmt.Errorf(remoteLookupErrorTemplateConstant, developmentBranch, remoteDevelopmentLookupError)
	}
	if remoteDevelopmentExists {
		if pullError := repositoryManager.PullFastForwardOnly(executionContext, trimmedRepositoryPath, remoteName, developmentBranch); pullError != nil {
			return StartResult{}, fmt.Errorf(pullErrorTemplateConstant, developmentBranch, remoteName, pullError)
		}
	}

	if createError := repositoryManager.CreateBranch(executionContext, trimmedRepositoryPath, releaseBranch, developmentBranch); createError != nil {
		return StartResult{}, fmt.Errorf(createBranchErrorTemplateConstant, releaseBranch, createError)
	}

	rewrittenFiles, rewriteError := RewriteVersionFiles(service.dependencies.FileSystem, trimmedRepositoryPath, configuration.VersionFiles, version)
	if rewriteError != nil {
		return StartResult{}, rewriteError
	}

	generateService, generateServiceError := changelog.NewGenerateService(changelog.Dependencies{
		RepositoryManager: repositoryManager,
		FileSystem:        service.dependencies.FileSystem,
		Clock:             service.dependencies.Clock,
	})
	if generateServiceError != nil {
		return StartResult{}, generateServiceError
	}
	generateResult, generateError := generateService.Generate(executionContext, changelog.GenerateOptions{
		RepositoryPath: trimmedRepositoryPath,
		Version:        version,
		FromReference:  latestTag,
		ChangelogPath:  configuration.ChangelogPath,
		WriteFile:      true,
	})
	if generateError != nil {
		return StartResult{}, generateError
	}

	releaseCommitMessage := fmt.Sprintf(releaseCommitMessageTemplateConstant, version)
	if commitError := repositoryManager.CommitAll(executionContext, trimmedRepositoryPath, releaseCommitMessage); commitError != nil {
		return StartResult{}, fmt.Errorf(commitErrorTemplateConstant, releaseBranch, commitError)
	}

	return StartResult{
		BranchName:     releaseBranch,
		Version:        version,
		PreviousTag:    latestTag,
		RewrittenFiles: rewrittenFiles,
		ChangelogPath:  generateResult.WrittenPath,
	}, nil
}
