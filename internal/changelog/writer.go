package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/temirov/gflow/internal/shared"
)

const (
	changelogFileHeaderConstant             = "# Changelog"
	changelogFilePermissionsConstant        = fs.FileMode(0o644)
	changelogDirectoryPermissionsConstant   = fs.FileMode(0o755)
	duplicateVersionTemplateConstant        = "changelog already contains an entry for %s"
	changelogReadErrorTemplateConstant      = "failed to read changelog %s: %w"
	changelogWriteErrorTemplateConstant     = "failed to write changelog %s: %w"
	changelogDirectoryErrorTemplateConstant = "failed to create changelog directory %s: %w"
	headerEntrySeparatorConstant            = "\n\n"
)

// DuplicateVersionError reports an attempt to record a release entry twice.
// Changelog entries are write-once per version.
type DuplicateVersionError struct {
	Version string
}

// Error describes the duplicate entry failure.
func (duplicateError DuplicateVersionError) Error() string {
	return fmt.Sprintf(duplicateVersionTemplateConstant, duplicateError.Version)
}

// PrependEntry inserts the rendered entry below the changelog header, creating
// the file (and its directory) when absent. An entry heading for the same
// version already present in the file fails with DuplicateVersionError.
func PrependEntry(fileSystem shared.FileSystem, changelogPath string, versionLabel string, renderedEntry string) error {
	existingContent, readError := fileSystem.ReadFile(changelogPath)
	if readError != nil && !errors.Is(readError, fs.ErrNotExist) {
		return fmt.Errorf(changelogReadErrorTemplateConstant, changelogPath, readError)
	}

	entryHeading := entryHeadingPrefixConstant + versionLabel
	if containsEntryHeading(string(existingContent), entryHeading) {
		return DuplicateVersionError{Version: versionLabel}
	}

	changelogDirectory := filepath.Dir(changelogPath)
	if directoryError := fileSystem.MkdirAll(changelogDirectory, changelogDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(changelogDirectoryErrorTemplateConstant, changelogDirectory, directoryError)
	}

	mergedContent := mergeEntry(string(existingContent), renderedEntry)
	if writeError := fileSystem.WriteFile(changelogPath, []byte(mergedContent), changelogFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(changelogWriteErrorTemplateConstant, changelogPath, writeError)
	}
	return nil
}

func containsEntryHeading(changelogContent string, entryHeading string) bool {
	for _, contentLine := range strings.Split(changelogContent, lineBreakConstant) {
		trimmedLine := strings.TrimSpace(contentLine)
		if trimmedLine == entryHeading || strings.HasPrefix(trimmedLine, entryHeading+entryHeadingSeparatorConstant) {
			return true
		}
	}
	return false
}

// mergeEntry keeps the file header on top and places the new entry above every
// previous release section.
func mergeEntry(existingContent string, renderedEntry string) string {
	trimmedContent := strings.TrimSpace(existingContent)
	if len(trimmedContent) == 0 {
		return changelogFileHeaderConstant + headerEntrySeparatorConstant + renderedEntry
	}

	headerText, remainderText := splitHeader(trimmedContent)
	mergedSections := []string{headerText, strings.TrimSpace(renderedEntry)}
	if len(remainderText) > 0 {
		mergedSections = append(mergedSections, remainderText)
	}
	return strings.Join(mergedSections, headerEntrySeparatorConstant) + lineBreakConstant
}

func splitHeader(changelogContent string) (string, string) {
	if strings.HasPrefix(changelogContent, entryHeadingPrefixConstant) {
		return changelogFileHeaderConstant, changelogContent
	}
	firstEntryIndex := strings.Index(changelogContent, lineBreakConstant+entryHeadingPrefixConstant)
	if firstEntryIndex < 0 {
		return changelogContent, ""
	}
	headerText := strings.TrimSpace(changelogContent[:firstEntryIndex])
	remainderText := strings.TrimSpace(changelogContent[firstEntryIndex:])
	return headerText, remainderText
}
