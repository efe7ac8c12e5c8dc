package release

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

const (
	incrementPatchConstant = "patch"
	incrementMinorConstant = "minor"
	incrementMajorConstant = "major"

	// FirstVersionConstant names the version assigned when no tag exists yet.
	FirstVersionConstant = "v0.1.0"

	versionPrefixConstant            = "v"
	versionTemplateConstant          = "v%d.%d.%d"
	invalidIncrementTemplateConstant = "invalid version increment %q: expected one of %s, or an explicit version"
	invalidVersionTemplateConstant   = "invalid version %q: %s"
	incrementListSeparatorConstant   = ", "
	majorSegmentIndexConstant        = 0
	minorSegmentIndexConstant        = 1
	patchSegmentIndexConstant        = 2
)

// Increment selects which semantic-version component a release bumps.
type Increment string

const (
	// IncrementPatch bumps the patch component.
	IncrementPatch Increment = Increment(incrementPatchConstant)
	// IncrementMinor bumps the minor component and resets patch.
	IncrementMinor Increment = Increment(incrementMinorConstant)
	// IncrementMajor bumps the major component and resets minor and patch.
	IncrementMajor Increment = Increment(incrementMajorConstant)
)

// SupportedIncrements lists every increment selector the release pipeline understands.
func SupportedIncrements() []Increment {
	return []Increment{IncrementPatch, IncrementMinor, IncrementMajor}
}

// InvalidIncrementError reports an increment selector outside the supported set.
type InvalidIncrementError struct {
	Value string
}

// Error describes the invalid increment failure.
func (incrementError InvalidIncrementError) Error() string {
	supportedNames := make([]string, 0, len(SupportedIncrements()))
	for _, supportedIncrement := range SupportedIncrements() {
		supportedNames = append(supportedNames, string(supportedIncrement))
	}
	return fmt.Sprintf(invalidIncrementTemplateConstant, incrementError.Value, strings.Join(supportedNames, incrementListSeparatorConstant))
}

// InvalidVersionError reports a version string that cannot be parsed semantically.
type InvalidVersionError struct {
	Value   string
	Message string
}

// Error describes the invalid version failure.
func (versionError InvalidVersionError) Error() string {
	return fmt.Sprintf(invalidVersionTemplateConstant, versionError.Value, versionError.Message)
}

// ParseIncrement normalizes the provided selector and rejects values outside the supported set.
func ParseIncrement(candidate string) (Increment, error) {
	normalizedCandidate := strings.ToLower(strings.TrimSpace(candidate))
	switch Increment(normalizedCandidate) {
	case IncrementPatch, IncrementMinor, IncrementMajor:
		return Increment(normalizedCandidate), nil
	default:
		return "", InvalidIncrementError{Value: candidate}
	}
}

// NormalizeVersion validates an explicit version string and returns it with the v prefix.
func NormalizeVersion(candidate string) (string, error) {
	trimmedCandidate := strings.TrimSpace(candidate)
	parsedVersion, parseError := goversion.NewSemver(strings.TrimPrefix(trimmedCandidate, versionPrefixConstant))
	if parseError != nil {
		return "", InvalidVersionError{Value: candidate, Message: parseError.Error()}
	}
	versionSegments := parsedVersion.Segments()
	return fmt.Sprintf(versionTemplateConstant,
		versionSegments[majorSegmentIndexConstant],
		versionSegments[minorSegmentIndexConstant],
		versionSegments[patchSegmentIndexConstant],
	), nil
}

// NextVersion computes the version following latestTag for the requested
// increment. An empty latestTag yields the first version.
func NextVersion(latestTag string, increment Increment) (string, error) {
	trimmedTag := strings.TrimSpace(latestTag)
	if len(trimmedTag) == 0 {
		return FirstVersionConstant, nil
	}

	parsedVersion, parseError := goversion.NewSemver(strings.TrimPrefix(trimmedTag, versionPrefixConstant))
	if parseError != nil {
		return "", InvalidVersionError{Value: latestTag, Message: parseError.Error()}
	}

	versionSegments := parsedVersion.Segments()
	majorComponent := versionSegments[majorSegmentIndexConstant]
	minorComponent := versionSegments[minorSegmentIndexConstant]
	patchComponent := versionSegments[patchSegmentIndexConstant]

	switch increment {
	case IncrementPatch:
		patchComponent++
	case IncrementMinor:
		minorComponent++
		patchComponent = 0
	case IncrementMajor:
		majorComponent++
		minorComponent = 0
		patchComponent = 0
	default:
		return "", InvalidIncrementError{Value: string(increment)}
	}

	return fmt.Sprintf(versionTemplateConstant, majorComponent, minorComponent, patchComponent), nil
}

// ResolveVersion interprets the release start selector: a supported increment
// bumps the latest tag, anything else must parse as an explicit version.
func ResolveVersion(latestTag string, selector string) (string, error) {
	parsedIncrement, incrementError := ParseIncrement(selector)
	if incrementError == nil {
		return NextVersion(latestTag, parsedIncrement)
	}
	return NormalizeVersion(selector)
}
