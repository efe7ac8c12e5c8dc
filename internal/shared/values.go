package shared

import (
	"fmt"
	"strings"
)

const (
	repositoryPathFieldNameConstant      = "repository_path"
	branchNameFieldNameConstant          = "branch_name"
	remoteNameFieldNameConstant          = "remote_name"
	tagNameFieldNameConstant             = "tag_name"
	requiredValueMessageConstant         = "value required"
	lineBreakMessageConstant             = "value must not contain line breaks"
	whitespaceMessageConstant            = "value must not contain whitespace"
	forbiddenReferenceMessageConstant    = "value is not a valid git reference name"
	invalidValueErrorTemplateConstant    = "%s: %s"
	pathTrimCutsetConstant               = " \t"
	lineBreakCharactersConstant          = "\n\r"
	whitespaceCharactersConstant         = " \t\n\r"
	forbiddenReferenceCharactersConstant = "~^:?*[\\"
	parentDirectoryReferenceConstant     = ".."
	optionPrefixConstant                 = "-"
	referenceSeparatorConstant           = "/"
)

// InvalidValueError reports a value that failed shared validation.
type InvalidValueError struct {
	FieldName string
	Message   string
}

// Error describes the invalid value.
func (validationError InvalidValueError) Error() string {
	return fmt.Sprintf(invalidValueErrorTemplateConstant, validationError.FieldName, validationError.Message)
}

// RepositoryPath is a validated filesystem path to a git repository.
type RepositoryPath string

// NewRepositoryPath validates and normalizes a repository path.
func NewRepositoryPath(candidate string) (RepositoryPath, error) {
	trimmedCandidate := strings.Trim(candidate, pathTrimCutsetConstant)
	if len(trimmedCandidate) == 0 {
		return "", InvalidValueError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if strings.ContainsAny(trimmedCandidate, lineBreakCharactersConstant) {
		return "", InvalidValueError{FieldName: repositoryPathFieldNameConstant, Message: lineBreakMessageConstant}
	}
	return RepositoryPath(trimmedCandidate), nil
}

// String returns the textual repository path.
func (path RepositoryPath) String() string {
	return string(path)
}

// BranchName is a validated git branch name.
type BranchName string

// NewBranchName validates a branch name against git reference naming rules.
func NewBranchName(candidate string) (BranchName, error) {
	trimmedCandidate := strings.TrimSpace(candidate)
	if validationError := validateReferenceName(branchNameFieldNameConstant, trimmedCandidate); validationError != nil {
		return "", validationError
	}
	return BranchName(trimmedCandidate), nil
}

// String returns the textual branch name.
func (name BranchName) String() string {
	return string(name)
}

// RemoteName is a validated git remote name.
type RemoteName string

// NewRemoteName validates a remote name.
func NewRemoteName(candidate string) (RemoteName, error) {
	trimmedCandidate := strings.TrimSpace(candidate)
	if validationError := validateReferenceName(remoteNameFieldNameConstant, trimmedCandidate); validationError != nil {
		return "", validationError
	}
	if strings.Contains(trimmedCandidate, referenceSeparatorConstant) {
		return "", InvalidValueError{FieldName: remoteNameFieldNameConstant, Message: forbiddenReferenceMessageConstant}
	}
	return RemoteName(trimmedCandidate), nil
}

// String returns the textual remote name.
func (name RemoteName) String() string {
	return string(name)
}

// TagName is a validated git tag name.
type TagName string

// NewTagName validates a tag name against git reference naming rules.
func NewTagName(candidate string) (TagName, error) {
	trimmedCandidate := strings.TrimSpace(candidate)
	if validationError := validateReferenceName(tagNameFieldNameConstant, trimmedCandidate); validationError != nil {
		return "", validationError
	}
	return TagName(trimmedCandidate), nil
}

// String returns the textual tag name.
func (name TagName) String() string {
	return string(name)
}

func validateReferenceName(fieldName string, candidate string) error {
	if len(candidate) == 0 {
		return InvalidValueError{FieldName: fieldName, Message: requiredValueMessageConstant}
	}
	if strings.ContainsAny(candidate, whitespaceCharactersConstant) {
		return InvalidValueError{FieldName: fieldName, Message: whitespaceMessageConstant}
	}
	if strings.ContainsAny(candidate, forbiddenReferenceCharactersConstant) {
		return InvalidValueError{FieldName: fieldName, Message: forbiddenReferenceMessageConstant}
	}
	if strings.Contains(candidate, parentDirectoryReferenceConstant) {
		return InvalidValueError{FieldName: fieldName, Message: forbiddenReferenceMessageConstant}
	}
	if strings.HasPrefix(candidate, optionPrefixConstant) {
		return InvalidValueError{FieldName: fieldName, Message: forbiddenReferenceMessageConstant}
	}
	return nil
}
