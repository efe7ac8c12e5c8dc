package flow

import (
	"fmt"
	"strings"
)

const (
	branchKindFeatureConstant = "feature"
	branchKindFixConstant     = "fix"
	branchKindReleaseConstant = "release"

	invalidBranchTypeTemplateConstant = "invalid branch type %q: expected one of %s"
	branchExistsTemplateConstant      = "branch %s already exists"
	mergeConflictTemplateConstant     = "merging %s into %s produces conflicts; resolve them manually"
	branchTypeListSeparatorConstant   = ", "
)

// BranchType identifies the lifecycle category of a flow branch.
type BranchType string

const (
	// BranchTypeFeature marks branches carrying new functionality.
	BranchTypeFeature BranchType = BranchType(branchKindFeatureConstant)
	// BranchTypeFix marks branches carrying bug fixes.
	BranchTypeFix BranchType = BranchType(branchKindFixConstant)
	// BranchTypeRelease marks branches preparing a release.
	BranchTypeRelease BranchType = BranchType(branchKindReleaseConstant)
)

// SupportedBranchTypes lists every branch type the orchestrator understands.
func SupportedBranchTypes() []BranchType {
	return []BranchType{BranchTypeFeature, BranchTypeFix, BranchTypeRelease}
}

// ParseBranchType normalizes the provided kind and rejects values outside the supported set.
func ParseBranchType(kind string) (BranchType, error) {
	normalizedKind := strings.ToLower(strings.TrimSpace(kind))
	switch BranchType(normalizedKind) {
	case BranchTypeFeature, BranchTypeFix, BranchTypeRelease:
		return BranchType(normalizedKind), nil
	default:
		return "", InvalidBranchTypeError{Kind: kind}
	}
}

// String returns the branch type identifier.
func (branchType BranchType) String() string {
	return string(branchType)
}

// InvalidBranchTypeError reports a branch kind outside the supported set.
type InvalidBranchTypeError struct {
	Kind string
}

// Error describes the invalid branch type failure.
func (invalidTypeError InvalidBranchTypeError) Error() string {
	supportedNames := make([]string, 0, len(SupportedBranchTypes()))
	for _, supportedType := range SupportedBranchTypes() {
		supportedNames = append(supportedNames, supportedType.String())
	}
	return fmt.Sprintf(invalidBranchTypeTemplateConstant, invalidTypeError.Kind, strings.Join(supportedNames, branchTypeListSeparatorConstant))
}

// BranchExistsError reports an attempt to start a branch that already exists locally or on the remote.
type BranchExistsError struct {
	BranchName string
}

// Error describes the duplicate branch failure.
func (existsError BranchExistsError) Error() string {
	return fmt.Sprintf(branchExistsTemplateConstant, existsError.BranchName)
}

// MergeConflictError reports a merge that cannot complete cleanly.
type MergeConflictError struct {
	SourceBranch string
	TargetBranch string
}

// Error describes the conflicting merge failure.
func (conflictError MergeConflictError) Error() string {
	return fmt.Sprintf(mergeConflictTemplateConstant, conflictError.SourceBranch, conflictError.TargetBranch)
}
