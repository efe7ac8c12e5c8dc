package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/gflow/internal/shared"
)

const (
	startPlanTemplateConstant         = "PLAN-START: %s (from %s)\n"
	createBranchErrorTemplateConstant = "failed to create branch %s: %w"
)

// StartOptions configures a flow branch start operation.
type StartOptions struct {
	RepositoryPath string
	BranchKind     string
	BranchName     string
	Configuration  Configuration
	DryRun         bool
}

// StartResult captures the observable outcomes of a start.
type StartResult struct {
	BranchName string
	BaseBranch string
}

// StartService creates flow branches from the configured base branch.
type StartService struct {
	dependencies Dependencies
}

// NewStartService constructs a StartService from the provided dependencies.
func NewStartService(dependencies Dependencies) (*StartService, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	return &StartService{dependencies: dependencies}, nil
}

// Start creates a branch of the requested kind from the development branch.
// Branches that already exist locally or on the remote fail with
// BranchExistsError before any repository state changes.
func (service *StartService) Start(executionContext context.Context, options StartOptions) (StartResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return StartResult{}, ErrRepositoryPathRequired
	}

	branchType, parseError := ParseBranchType(options.BranchKind)
	if parseError != nil {
		return StartResult{}, parseError
	}

	trimmedBranchName := strings.TrimSpace(options.BranchName)
	if len(trimmedBranchName) == 0 {
		return StartResult{}, ErrBranchNameRequired
	}

	configuration := options.Configuration.Sanitize()
	fullBranchName := configuration.QualifiedBranchName(branchType, trimmedBranchName)
	if _, nameError := shared.NewBranchName(fullBranchName); nameError != nil {
		return StartResult{}, nameError
	}

	baseBranch := configuration.DevelopmentBranch
	remoteName := configuration.RemoteName
	repositoryManager := service.dependencies.RepositoryManager

	clean, cleanError := repositoryManager.CheckCleanWorktree(executionContext, trimmedRepositoryPath)
	if cleanError != nil {
		return StartResult{}, fmt.Errorf(cleanVerificationErrorTemplateConstant, cleanError)
	}
	if !clean {
		return StartResult{}, ErrWorktreeNotClean
	}

	localExists, localLookupError := repositoryManager.BranchExists(executionContext, trimmedRepositoryPath, fullBranchName)
	if localLookupError != nil {
		return StartResult{}, fmt.Errorf(branchLookupErrorTemplateConstant, fullBranchName, localLookupError)
	}
	if localExists {
		return StartResult{}, BranchExistsError{BranchName: fullBranchName}
	}

	remoteExists, remoteLookupError := repositoryManager.RemoteBranchExists(executionContext, trimmedRepositoryPath, remoteName, fullBranchName)
	if remoteLookupError != nil {
		return StartResult{}, fmt.Errorf(remoteLookupErrorTemplateConstant, fullBranchName, remoteLookupError)
	}
	if remoteExists {
		return StartResult{}, BranchExistsError{BranchName: fullBranchName}
	}

	if options.DryRun {
		writeOutput(service.dependencies.Output, startPlanTemplateConstant, fullBranchName, baseBranch)
		return StartResult{BranchName: fullBranchName, BaseBranch: baseBranch}, nil
	}

	if fetchError := repositoryManager.FetchRemote(executionContext, trimmedRepositoryPath, remoteName); fetchError != nil {
		return StartResult{}, fmt.Errorf(fetchErrorTemplateConstant, remoteName, fetchError)
	}

	if switchError := repositoryManager.SwitchBranch(executionContext, trimmedRepositoryPath, baseBranch, remoteName); switchError != nil {
		return StartResult{}, fmt.Errorf(switchErrorTemplateConstant, baseBranch, switchError)
	}

	remoteBaseExists, remoteBaseLookupError := repositoryManager.RemoteBranchExists(executionContext, trimmedRepositoryPath, remoteName, baseBranch)
	if remoteBaseLookupError != nil {
		return StartResult{}, fmt.Errorf(remoteLookupErrorTemplateConstant, baseBranch, remoteBaseLookupError)
	}
	if remoteBaseExists {
		if pullError := repositoryManager.PullFastForwardOnly(executionContext, trimmedRepositoryPath, remoteName, baseBranch); pullError != nil {
			return StartResult{}, fmt.Errorf(pullErrorTemplateConstant, baseBranch, remoteName, pullError)
		}
	}

	if createError := repositoryManager.CreateBranch(executionContext, trimmedRepositoryPath, fullBranchName, baseBranch); createError != nil {
		return StartResult{}, fmt.Errorf(createBranchErrorTemplateConstant, fullBranchName, createError)
	}

	return StartResult{BranchName: fullBranchName, BaseBranch: baseBranch}, nil
}
