package flow

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/gflow/internal/shared"
)

const (
	// DefaultDevelopmentBranchConstant names the branch flow branches are cut from.
	DefaultDevelopmentBranchConstant = "dev"
	// DefaultProductionBranchConstant names the branch releases land on.
	DefaultProductionBranchConstant = "main"
	// DefaultFeaturePrefixConstant prefixes feature branch names.
	DefaultFeaturePrefixConstant = "feature/"
	// DefaultFixPrefixConstant prefixes fix branch names.
	DefaultFixPrefixConstant = "fix/"
	// DefaultReleasePrefixConstant prefixes release branch names.
	DefaultReleasePrefixConstant = "release/"
	// DefaultChangelogPathConstant locates the changelog file relative to the repository root.
	DefaultChangelogPathConstant = "docs/changelog.md"
	// DefaultReleaseLabelConstant names the label attached to release pull requests.
	DefaultReleaseLabelConstant = "release"
	// RehearsalBranchPrefixConstant prefixes throwaway merge rehearsal branches.
	RehearsalBranchPrefixConstant = "temp/"
	// PullRequestBranchPrefixConstant prefixes squashed pull request staging branches.
	PullRequestBranchPrefixConstant = "pr/"
	// RepositoryOverrideFileNameConstant names the per-repository configuration override file.
	RepositoryOverrideFileNameConstant = ".gflow.yaml"

	overrideReadErrorTemplateConstant  = "failed to read %s: %w"
	overrideParseErrorTemplateConstant = "failed to parse %s: %w"
)

// Configuration captures branch naming and remote settings for flow operations.
type Configuration struct {
	DevelopmentBranch string   `mapstructure:"development_branch" yaml:"development_branch"`
	ProductionBranch  string   `mapstructure:"production_branch" yaml:"production_branch"`
	FeaturePrefix     string   `mapstructure:"feature_prefix" yaml:"feature_prefix"`
	FixPrefix         string   `mapstructure:"fix_prefix" yaml:"fix_prefix"`
	ReleasePrefix     string   `mapstructure:"release_prefix" yaml:"release_prefix"`
	RemoteName        string   `mapstructure:"remote" yaml:"remote"`
	ChangelogPath     string   `mapstructure:"changelog_path" yaml:"changelog_path"`
	VersionFiles      []string `mapstructure:"version_files" yaml:"version_files"`
	ReleaseLabel      string   `mapstructure:"release_label" yaml:"release_label"`
}

// DefaultConfiguration provides baseline flow settings.
func DefaultConfiguration() Configuration {
	return Configuration{
		DevelopmentBranch: DefaultDevelopmentBranchConstant,
		ProductionBranch:  DefaultProductionBranchConstant,
		FeaturePrefix:     DefaultFeaturePrefixConstant,
		FixPrefix:         DefaultFixPrefixConstant,
		ReleasePrefix:     DefaultReleasePrefixConstant,
		RemoteName:        shared.OriginRemoteNameConstant,
		ChangelogPath:     DefaultChangelogPathConstant,
		VersionFiles:      nil,
		ReleaseLabel:      DefaultReleaseLabelConstant,
	}
}

// Sanitize trims configuration values and substitutes defaults for empty ones.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := Configuration{
		DevelopmentBranch: fallbackValue(configuration.DevelopmentBranch, defaults.DevelopmentBranch),
		ProductionBranch:  fallbackValue(configuration.ProductionBranch, defaults.ProductionBranch),
		FeaturePrefix:     fallbackValue(configuration.FeaturePrefix, defaults.FeaturePrefix),
		FixPrefix:         fallbackValue(configuration.FixPrefix, defaults.FixPrefix),
		ReleasePrefix:     fallbackValue(configuration.ReleasePrefix, defaults.ReleasePrefix),
		RemoteName:        fallbackValue(configuration.RemoteName, defaults.RemoteName),
		ChangelogPath:     fallbackValue(configuration.ChangelogPath, defaults.ChangelogPath),
		VersionFiles:      sanitizeVersionFiles(configuration.VersionFiles),
		ReleaseLabel:      fallbackValue(configuration.ReleaseLabel, defaults.ReleaseLabel),
	}
	return sanitized
}

// BranchPrefix returns the configured prefix for the provided branch type.
func (configuration Configuration) BranchPrefix(branchType BranchType) string {
	switch branchType {
	case BranchTypeFeature:
		return configuration.FeaturePrefix
	case BranchTypeFix:
		return configuration.FixPrefix
	case BranchTypeRelease:
		return configuration.ReleasePrefix
	default:
		return ""
	}
}

// QualifiedBranchName derives the full branch name for the provided type and short name.
func (configuration Configuration) QualifiedBranchName(branchType BranchType, shortName string) string {
	return configuration.BranchPrefix(branchType) + strings.TrimSpace(shortName)
}

// LoadRepositoryOverride merges settings from the repository's override file into the provided base configuration.
// A missing override file leaves the base configuration unchanged.
func LoadRepositoryOverride(fileSystem shared.FileSystem, repositoryPath string, base Configuration) (Configuration, error) {
	overridePath := filepath.Join(repositoryPath, RepositoryOverrideFileNameConstant)

	_, statError := fileSystem.Stat(overridePath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return base.Sanitize(), nil
		}
		return Configuration{}, fmt.Errorf(overrideReadErrorTemplateConstant, overridePath, statError)
	}

	overrideContent, readError := fileSystem.ReadFile(overridePath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(overrideReadErrorTemplateConstant, overridePath, readError)
	}

	merged := base
	if unmarshalError := yaml.Unmarshal(overrideContent, &merged); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(overrideParseErrorTemplateConstant, overridePath, unmarshalError)
	}

	return merged.Sanitize(), nil
}

func fallbackValue(candidate string, defaultValue string) string {
	trimmedCandidate := strings.TrimSpace(candidate)
	if len(trimmedCandidate) == 0 {
		return defaultValue
	}
	return trimmedCandidate
}

func sanitizeVersionFiles(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmedCandidate := strings.TrimSpace(candidate)
		if len(trimmedCandidate) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmedCandidate)
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}
