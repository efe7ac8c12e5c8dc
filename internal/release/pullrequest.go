package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/gflow/internal/flow"
	"github.com/temirov/gflow/internal/githubcli"
	"github.com/temirov/gflow/internal/gitrepo"
)

const (
	pullRequestPlanTemplateConstant       = "PLAN-PR: %s -> %s\n"
	pullRequestExistsTemplateConstant     = "PR-EXISTS: #%d %s\n"
	pullRequestTitleTemplateConstant      = "Release %s"
	pullRequestBodyTemplateConstant       = "Squashed release pull request for %s."
	releaseLabelColorConstant             = "0E8A16"
	releaseLabelDescriptionConstant       = "Automated release pull request"
	authenticationErrorTemplateConstant   = "github authentication failed: %w"
	remoteURLErrorTemplateConstant        = "failed to resolve url of remote %s: %w"
	unsupportedRemoteHostTemplateConstant = "remote %s points at %s; pull requests require a github.com remote"
	pullRequestLookupTemplateConstant     = "failed to look up open pull request for %s: %w"
	labelEnsureErrorTemplateConstant      = "failed to ensure label %s: %w"
	pullRequestCreateTemplateConstant     = "failed to create pull request for %s: %w"
)

// PullRequestOptions configures a release pull request publication.
type PullRequestOptions struct {
	RepositoryPath string
	// BranchName selects the release branch; empty publishes the current branch.
	BranchName    string
	Configuration flow.Configuration
	DryRun        bool
}

// PullRequestResult captures the observable outcomes of a pull request publication.
type PullRequestResult struct {
	ReleaseBranch    string
	StagingBranch    string
	RemoteRepository string
	PullRequest      githubcli.PullRequest
	Created          bool
}

// UnsupportedRemoteHostError indicates the configured remote does not point at GitHub.
type UnsupportedRemoteHostError struct {
	RemoteName string
	Host       string
}

// Error describes the unsupported remote host.
func (hostError UnsupportedRemoteHostError) Error() string {
	return fmt.Sprintf(unsupportedRemoteHostTemplateConstant, hostError.RemoteName, hostError.Host)
}

// PullRequestService publishes release branches as squashed pull requests
// against the development branch.
type PullRequestService struct {
	dependencies Dependencies
}

// NewPullRequestService constructs a PullRequestService from the provided dependencies.
func NewPullRequestService(dependencies Dependencies) (*PullRequestService, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.GitHubClient == nil {
		return nil, ErrGitHubClientNotConfigured
	}
	return &PullRequestService{dependencies: dependencies}, nil
}

// Publish squashes the release branch onto a staging branch cut from the
// development branch, pushes it, and opens a labeled pull request against the
// development branch. An already open pull request for the staging branch is
// returned unchanged. The operation ends back on the release branch.
func (service *PullRequestService) Publish(executionContext context.Context, options PullRequestOptions) (PullRequestResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return PullRequestResult{}, ErrRepositoryPathRequired
	}

	configuration := options.Configuration.Sanitize()
	developmentBranch := configuration.DevelopmentBranch
	remoteName := configuration.RemoteName
	repositoryManager := service.dependencies.RepositoryManager
	githubClient := service.dependencies.GitHubClient

	releaseBranch, resolveError := resolveReleaseBranch(executionContext, repositoryManager, trimmedRepositoryPath, options.BranchName, configuration)
	if resolveError != nil {
		return PullRequestResult{}, resolveError
	}
	version := strings.TrimPrefix(releaseBranch, configuration.ReleasePrefix)
	stagingBranch := flow.PullRequestBranchPrefixConstant + releaseBranch

	clean, cleanError := repositoryManager.CheckCleanWorktree(executionContext, trimmedRepositoryPath)
	if cleanError != nil {
		return PullRequestResult{}, fmt.Errorf(cleanVerificationErrorTemplateConstant, cleanError)
	}
	if !clean {
		return PullRequestResult{}, ErrWorktreeNotClean
	}

	branchExists, branchLookupError := repositoryManager.BranchExists(executionContext, trimmedRepositoryPath, releaseBranch)
	if branchLookupError != nil {
		return PullRequestResult{}, fmt.Errorf(branchLookupErrorTemplateConstant, releaseBranch, branchLookupError)
	}
	if !branchExists {
		return PullRequestResult{}, fmt.Errorf(branchNotFoundTemplateConstant, releaseBranch)
	}

	remoteURLText, remoteURLError := repositoryManager.GetRemoteURL(executionContext, trimmedRepositoryPath, remoteName)
	if remoteURLError != nil {
		return PullRequestResult{}, fmt.Errorf(remoteURLErrorTemplateConstant, remoteName, remoteURLError)
	}
	remoteURL, remoteParseError := gitrepo.ParseRemoteURL(remoteURLText)
	if remoteParseError != nil {
		return PullRequestResult{}, fmt.Errorf(remoteURLErrorTemplateConstant, remoteName, remoteParseError)
	}
	if !remoteURL.IsGitHubHost() {
		return PullRequestResult{}, UnsupportedRemoteHostError{RemoteName: remoteName, Host: remoteURL.Host}
	}
	remoteRepository := remoteURL.OwnerRepository()

	if authenticationError := githubClient.EnsureAuthenticated(executionContext); authenticationError != nil {
		return PullRequestResult{}, fmt.Errorf(authenticationErrorTemplateConstant, authenticationError)
	}

	existingPullRequest, lookupError := githubClient.FindOpenPullRequest(executionContext, trimmedRepositoryPath, stagingBranch, developmentBranch)
	if lookupError != nil {
		return PullRequestResult{}, fmt.Errorf(pullRequestLookupTemplateConstant, stagingBranch, lookupError)
	}
	if existingPullRequest != nil {
		writeOutput(service.dependencies.Output, pullRequestExistsTemplateConstant, existingPullRequest.Number, existingPullRequest.URL)
		return PullRequestResult{
			ReleaseBranch:    releaseBranch,
			StagingBranch:    stagingBranch,
			RemoteRepository: remoteRepository,
			PullRequest:      *existingPullRequest,
		}, nil
	}

	if options.DryRun {
		writeOutput(service.dependencies.Output, pullRequestPlanTemplateConstant, stagingBranch, developmentBranch)
		return PullRequestResult{ReleaseBranch: releaseBranch, StagingBranch: stagingBranch, RemoteRepository: remoteRepository}, nil
	}

	if fetchError := repositoryManager.FetchRemote(executionContext, trimmedRepositoryPath, remoteName); fetchError != nil {
		return PullRequestResult{}, fmt.Errorf(fetchErrorTemplateConstant, remoteName, fetchError)
	}
	if switchError := repositoryManager.SwitchBranch(executionContext, trimmedRepositoryPath, developmentBranch, remoteName); switchError != nil {
		return PullRequestResult{}, fmt.Errorf(switchErrorTemplateConstant, developmentBranch, switchError)
	}
	remoteDevelopmentExists, remoteLookupError := repositoryManager.RemoteBranchExists(executionContext, trimmedRepositoryPath, remoteName, developmentBranch)
	if remoteLookupError != nil {
		return PullRequestResult{}, fmt.Errorf(remoteLookupErrorTemplateConstant, developmentBranch, remoteLookupError)
	}
	if remoteDevelopmentExists {
		if pullError := repositoryManager.PullFastForwardOnly(executionContext, trimmedRepositoryPath, remoteName, developmentBranch); pullError != nil {
			return PullRequestResult{}, fmt.Errorf(pullErrorTemplateConstant, developmentBranch, remoteName, pullError)
		}
	}

	// A stale staging branch from an earlier attempt is rebuilt from scratch.
	stagingExists, stagingLookupError := repositoryManager.BranchExists(executionContext, trimmedRepositoryPath, stagingBranch)
	if stagingLookupError != nil {
		return PullRequestResult{}, fmt.Errorf(branchLookupErrorTemplateConstant, stagingBranch, stagingLookupError)
	}
	if stagingExists {
		if deleteError := repositoryManager.DeleteBranch(executionContext, trimmedRepositoryPath, stagingBranch, true); deleteError != nil {
			return PullRequestResult{}, fmt.Errorf(deleteBranchErrorTemplateConstant, stagingBranch, deleteError)
		}
	}

	if createError := repositoryManager.CreateBranch(executionContext, trimmedRepositoryPath, stagingBranch, developmentBranch); createError != nil {
		return PullRequestResult{}, fmt.Errorf(createBranchErrorTemplateConstant, stagingBranch, createError)
	}
	if squashError := repositoryManager.MergeSquash(executionContext, trimmedRepositoryPath, releaseBranch); squashError != nil {
		return PullRequestResult{}, fmt.Errorf(mergeErrorTemplateConstant, releaseBranch, stagingBranch, squashError)
	}

	pullRequestTitle := fmt.Sprintf(pullRequestTitleTemplateConstant, version)
	if commitError := repositoryManager.CommitAll(executionContext, trimmedRepositoryPath, pullRequestTitle); commitError != nil {
		return PullRequestResult{}, fmt.Errorf(commitErrorTemplateConstant, stagingBranch, commitError)
	}
	if pushError := repositoryManager.PushBranch(executionContext, trimmedRepositoryPath, remoteName, stagingBranch, true); pushError != nil {
		return PullRequestResult{}, fmt.Errorf(pushErrorTemplateConstant, stagingBranch, remoteName, pushError)
	}

	releaseLabel := githubcli.LabelDetails{
		Name:        configuration.ReleaseLabel,
		Color:       releaseLabelColorConstant,
		Description: releaseLabelDescriptionConstant,
	}
	if labelError := githubClient.EnsureLabel(executionContext, trimmedRepositoryPath, releaseLabel); labelError != nil {
		return PullRequestResult{}, fmt.Errorf(labelEnsureErrorTemplateConstant, releaseLabel.Name, labelError)
	}

	createdPullRequest, createError := githubClient.CreatePullRequest(executionContext, trimmedRepositoryPath, githubcli.PullRequestCreateOptions{
		Title:      pullRequestTitle,
		Body:       fmt.Sprintf(pullRequestBodyTemplateConstant, releaseBranch),
		BaseBranch: developmentBranch,
		HeadBranch: stagingBranch,
		Labels:     []string{releaseLabel.Name},
	})
	if createError != nil {
		return PullRequestResult{}, fmt.Errorf(pullRequestCreateTemplateConstant, stagingBranch, createError)
	}

	if switchError := repositoryManager.SwitchBranch(executionContext, trimmedRepositoryPath, releaseBranch, remoteName); switchError != nil {
		return PullRequestResult{}, fmt.Errorf(switchErrorTemplateConstant, releaseBranch, switchError)
	}

	return PullRequestResult{
		ReleaseBranch:    releaseBranch,
		StagingBranch:    stagingBranch,
		RemoteRepository: remoteRepository,
		PullRequest:      createdPullRequest,
		Created:          true,
	}, nil
}
