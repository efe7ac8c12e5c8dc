package release

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/temirov/gflow/internal/shared"
)

const (
	versionAssignmentPatternConstant   = `(?m)^(\s*VERSION=")[^"]*(")`
	versionReplacementTemplateConstant = "${1}%s${2}"
	versionFileReadTemplateConstant    = "failed to read version file %s: %w"
	versionFileWriteTemplateConstant   = "failed to write version file %s: %w"
	versionFilePermissionsConstant     = 0o644
)

var versionAssignmentPattern = regexp.MustCompile(versionAssignmentPatternConstant)

// RewriteVersionFiles updates VERSION="..." assignments in the configured
// files to the released version without the v prefix. Files without a matching
// assignment are left untouched; the returned paths name the files rewritten.
func RewriteVersionFiles(fileSystem shared.FileSystem, repositoryPath string, versionFiles []string, version string) ([]string, error) {
	bareVersion, normalizeError := NormalizeVersion(version)
	if normalizeError != nil {
		return nil, normalizeError
	}
	replacement := fmt.Sprintf(versionReplacementTemplateConstant, bareVersion[len(versionPrefixConstant):])

	rewrittenPaths := make([]string, 0, len(versionFiles))
	for _, relativePath := range versionFiles {
		absolutePath := filepath.Join(repositoryPath, relativePath)
		originalContent, readError := fileSystem.ReadFile(absolutePath)
		if readError != nil {
			return nil, fmt.Errorf(versionFileReadTemplateConstant, relativePath, readError)
		}

		updatedContent := versionAssignmentPattern.ReplaceAll(originalContent, []byte(replacement))
		if string(updatedContent) == string(originalContent) {
			continue
		}

		if writeError := fileSystem.WriteFile(absolutePath, updatedContent, versionFilePermissionsConstant); writeError != nil {
			return nil, fmt.Errorf(versionFileWriteTemplateConstant, relativePath, writeError)
		}
		rewrittenPaths = append(rewrittenPaths, relativePath)
	}

	if len(rewrittenPaths) == 0 {
		return nil, nil
	}
	return rewrittenPaths, nil
}
