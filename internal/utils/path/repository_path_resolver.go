// Package pathutils normalizes filesystem path inputs shared across commands.
package pathutils

import (
	"path/filepath"
	"strings"
)

// RepositoryPathResolver normalizes repository path inputs consistently across commands.
type RepositoryPathResolver struct {
	homeExpander *HomeExpander
}

// NewRepositoryPathResolver constructs a RepositoryPathResolver with the default home expander.
func NewRepositoryPathResolver() *RepositoryPathResolver {
	return NewRepositoryPathResolverWithExpander(nil)
}

// NewRepositoryPathResolverWithExpander constructs a RepositoryPathResolver using the provided expander.
func NewRepositoryPathResolverWithExpander(homeExpander *HomeExpander) *RepositoryPathResolver {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}

	return &RepositoryPathResolver{homeExpander: resolvedExpander}
}

// Resolve trims whitespace, expands the user's home directory, and produces a cleaned absolute path.
// Empty candidates resolve to an empty string.
func (resolver *RepositoryPathResolver) Resolve(candidatePath string) string {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		return ""
	}

	expandedPath := resolver.expander().Expand(trimmedCandidate)
	if len(expandedPath) == 0 {
		return ""
	}

	cleanedPath := filepath.Clean(expandedPath)
	absolutePath, absoluteError := filepath.Abs(cleanedPath)
	if absoluteError != nil {
		return cleanedPath
	}

	return filepath.Clean(absolutePath)
}

func (resolver *RepositoryPathResolver) expander() *HomeExpander {
	if resolver == nil || resolver.homeExpander == nil {
		return NewHomeExpander()
	}
	return resolver.homeExpander
}
