package changelog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/gflow/internal/shared"
)

const (
	headReferenceConstant                 = "HEAD"
	unreleasedVersionLabelConstant        = "Unreleased"
	repositoryPathRequiredMessageConstant = "repository path must be provided"
	changelogPathRequiredMessageConstant  = "changelog path must be provided"
	managerMissingMessageConstant         = "repository manager not configured"
	fileSystemMissingMessageConstant      = "file system not configured"
	previousTagLookupTemplateConstant     = "failed to determine previous version tag: %w"
	commitListingTemplateConstant         = "failed to list commits for %s: %w"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrChangelogPathRequired indicates a file write was requested without a changelog path.
var ErrChangelogPathRequired = errors.New(changelogPathRequiredMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(managerMissingMessageConstant)

// ErrFileSystemNotConfigured indicates the file system dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// Dependencies enumerates external collaborators required by the generation service.
type Dependencies struct {
	RepositoryManager shared.GitRepositoryManager
	FileSystem        shared.FileSystem
	Clock             shared.Clock
}

// GenerateOptions configures one changelog entry generation.
type GenerateOptions struct {
	RepositoryPath string
	// Version labels the entry heading; empty versions render as Unreleased.
	Version string
	// FromReference overrides the collection start; the latest reachable tag by default.
	FromReference string
	// HeadReference overrides the collection end; HEAD by default.
	HeadReference string
	// ChangelogPath locates the changelog file relative to the repository root.
	ChangelogPath string
	// WriteFile prepends the entry into the changelog file instead of only rendering it.
	WriteFile bool
}

// GenerateResult captures the rendered entry and collection metadata.
type GenerateResult struct {
	Entry         string
	VersionLabel  string
	FromReference string
	CommitCount   int
	WrittenPath   string
}

// GenerateService renders release changelog entries from commit history.
type GenerateService struct {
	dependencies Dependencies
}

// NewGenerateService constructs a GenerateService from the provided dependencies.
func NewGenerateService(dependencies Dependencies) (*GenerateService, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &GenerateService{dependencies: dependencies}, nil
}

// Generate collects commits from the previous version tag to the head
// reference, renders the grouped Markdown entry, and optionally prepends it
// into the changelog file. Writing twice for the same version fails with
// DuplicateVersionError.
func (service *GenerateService) Generate(executionContext context.Context, options GenerateOptions) (GenerateResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return GenerateResult{}, ErrRepositoryPathRequired
	}

	headReference := strings.TrimSpace(options.HeadReference)
	if len(headReference) == 0 {
		headReference = headReferenceConstant
	}

	fromReference := strings.TrimSpace(options.FromReference)
	if len(fromReference) == 0 {
		previousTag, previousTagError := service.dependencies.RepositoryManager.LatestTag(executionContext, trimmedRepositoryPath)
		if previousTagError != nil {
			return GenerateResult{}, fmt.Errorf(previousTagLookupTemplateConstant, previousTagError)
		}
		fromReference = previousTag
	}

	commitRecords, listError := service.dependencies.RepositoryManager.ListCommits(executionContext, trimmedRepositoryPath, fromReference, headReference)
	if listError != nil {
		return GenerateResult{}, fmt.Errorf(commitListingTemplateConstant, headReference, listError)
	}

	versionLabel := strings.TrimSpace(options.Version)
	if len(versionLabel) == 0 {
		versionLabel = unreleasedVersionLabelConstant
	}

	clock := service.dependencies.Clock
	if clock == nil {
		clock = shared.SystemClock{}
	}

	renderedEntry := RenderEntry(versionLabel, clock.Now(), ParseConventionalCommits(commitRecords))
	generateResult := GenerateResult{
		Entry:         renderedEntry,
		VersionLabel:  versionLabel,
		FromReference: fromReference,
		CommitCount:   len(commitRecords),
	}

	if !options.WriteFile {
		return generateResult, nil
	}

	trimmedChangelogPath := strings.TrimSpace(options.ChangelogPath)
	if len(trimmedChangelogPath) == 0 {
		return GenerateResult{}, ErrChangelogPathRequired
	}
	absoluteChangelogPath := filepath.Join(trimmedRepositoryPath, trimmedChangelogPath)
	if prependError := PrependEntry(service.dependencies.FileSystem, absoluteChangelogPath, versionLabel, renderedEntry); prependError != nil {
		return GenerateResult{}, prependError
	}
	generateResult.WrittenPath = absoluteChangelogPath

	return generateResult, nil
}
