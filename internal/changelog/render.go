package changelog

import (
	"strings"
	"time"
)

const (
	entryHeadingPrefixConstant     = "## "
	entryHeadingSeparatorConstant  = " - "
	entryDateLayoutConstant        = "2006-01-02"
	sectionHeadingPrefixConstant   = "### "
	bulletPrefixConstant           = "- "
	lineBreakConstant              = "\n"
	breakingChangesSectionConstant = "Breaking Changes"

	sectionFeaturesConstant      = "Features"
	sectionBugFixesConstant      = "Bug Fixes"
	sectionPerformanceConstant   = "Performance"
	sectionRefactoringConstant   = "Refactoring"
	sectionDocumentationConstant = "Documentation"
	sectionTestsConstant         = "Tests"
	sectionBuildConstant         = "Build"
	sectionCIConstant            = "CI"
	sectionChoresConstant        = "Chores"
	sectionRevertsConstant       = "Reverts"
	sectionOtherConstant         = "Other"
)

// sectionOrder fixes the rendered section sequence independent of commit order.
var sectionOrder = []string{
	sectionFeaturesConstant,
	sectionBugFixesConstant,
	sectionPerformanceConstant,
	sectionRefactoringConstant,
	sectionDocumentationConstant,
	sectionTestsConstant,
	sectionBuildConstant,
	sectionCIConstant,
	sectionChoresConstant,
	sectionRevertsConstant,
	sectionOtherConstant,
}

var commitTypeSections = map[string]string{
	commitTypeFeatureConstant:     sectionFeaturesConstant,
	commitTypeFixConstant:         sectionBugFixesConstant,
	commitTypePerformanceConstant: sectionPerformanceConstant,
	commitTypeRefactorConstant:    sectionRefactoringConstant,
	commitTypeStyleConstant:       sectionRefactoringConstant,
	commitTypeDocsConstant:        sectionDocumentationConstant,
	commitTypeTestConstant:        sectionTestsConstant,
	commitTypeBuildConstant:       sectionBuildConstant,
	commitTypeCIConstant:          sectionCIConstant,
	commitTypeChoreConstant:       sectionChoresConstant,
	commitTypeRevertConstant:      sectionRevertsConstant,
}

// RenderEntry produces the Markdown changelog block for one release: a
// version-and-date heading, breaking changes first, then grouped sections in
// fixed order with one bullet per commit.
func RenderEntry(versionLabel string, entryDate time.Time, commits []ConventionalCommit) string {
	renderedLines := []string{headingLine(versionLabel, entryDate)}

	breakingCommits := []ConventionalCommit{}
	sectionCommits := map[string][]ConventionalCommit{}
	for _, commit := range commits {
		if commit.Breaking {
			breakingCommits = append(breakingCommits, commit)
		}
		sectionName := commitTypeSections[commit.Type]
		if len(sectionName) == 0 {
			sectionName = sectionOtherConstant
		}
		sectionCommits[sectionName] = append(sectionCommits[sectionName], commit)
	}

	if len(breakingCommits) > 0 {
		renderedLines = appendSection(renderedLines, breakingChangesSectionConstant, breakingCommits)
	}
	for _, sectionName := range sectionOrder {
		if len(sectionCommits[sectionName]) == 0 {
			continue
		}
		renderedLines = appendSection(renderedLines, sectionName, sectionCommits[sectionName])
	}

	return strings.Join(renderedLines, lineBreakConstant) + lineBreakConstant
}

func headingLine(versionLabel string, entryDate time.Time) string {
	return entryHeadingPrefixConstant + versionLabel + entryHeadingSeparatorConstant + entryDate.Format(entryDateLayoutConstant)
}

func appendSection(renderedLines []string, sectionName string, commits []ConventionalCommit) []string {
	renderedLines = append(renderedLines, "", sectionHeadingPrefixConstant+sectionName, "")
	for _, commit := range commits {
		renderedLines = append(renderedLines, bulletPrefixConstant+commit.BulletText())
	}
	return renderedLines
}
