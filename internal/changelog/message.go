package changelog

import (
	"regexp"
	"strings"

	"github.com/temirov/gflow/internal/shared"
)

const (
	commitTypeFeatureConstant     = "feat"
	commitTypeFixConstant         = "fix"
	commitTypeDocsConstant        = "docs"
	commitTypeStyleConstant       = "style"
	commitTypeRefactorConstant    = "refactor"
	commitTypePerformanceConstant = "perf"
	commitTypeTestConstant        = "test"
	commitTypeBuildConstant       = "build"
	commitTypeCIConstant          = "ci"
	commitTypeChoreConstant       = "chore"
	commitTypeRevertConstant      = "revert"

	breakingChangeFooterConstant          = "BREAKING CHANGE:"
	breakingChangeHyphenedFooterConstant  = "BREAKING-CHANGE:"
	conventionalSubjectPatternConstant    = `^([a-z]+)(\(([^)]*)\))?(!)?:\s*(.+)$`
	scopeSubjectSeparatorConstant         = ": "
	conventionalTypeMatchIndexConstant    = 1
	conventionalScopeMatchIndexConstant   = 3
	conventionalBangMatchIndexConstant    = 4
	conventionalSubjectMatchIndexConstant = 5
)

var conventionalSubjectPattern = regexp.MustCompile(conventionalSubjectPatternConstant)

var supportedCommitTypes = map[string]bool{
	commitTypeFeatureConstant:     true,
	commitTypeFixConstant:         true,
	commitTypeDocsConstant:        true,
	commitTypeStyleConstant:       true,
	commitTypeRefactorConstant:    true,
	commitTypePerformanceConstant: true,
	commitTypeTestConstant:        true,
	commitTypeBuildConstant:       true,
	commitTypeCIConstant:          true,
	commitTypeChoreConstant:       true,
	commitTypeRevertConstant:      true,
}

// ConventionalCommit is one commit classified by its conventional-commit subject.
// Commits whose subjects do not conform carry an empty Type and keep the raw
// subject text.
type ConventionalCommit struct {
	Hash     string
	Type     string
	Scope    string
	Subject  string
	Breaking bool
}

// ParseConventionalCommit classifies a commit record. A `!` after the type or
// scope and a BREAKING CHANGE footer in the body both mark breaking changes.
func ParseConventionalCommit(record shared.CommitRecord) ConventionalCommit {
	parsedCommit := ConventionalCommit{Hash: record.Hash, Subject: strings.TrimSpace(record.Subject)}

	subjectMatches := conventionalSubjectPattern.FindStringSubmatch(parsedCommit.Subject)
	if subjectMatches != nil && supportedCommitTypes[subjectMatches[conventionalTypeMatchIndexConstant]] {
		parsedCommit.Type = subjectMatches[conventionalTypeMatchIndexConstant]
		parsedCommit.Scope = strings.TrimSpace(subjectMatches[conventionalScopeMatchIndexConstant])
		parsedCommit.Subject = strings.TrimSpace(subjectMatches[conventionalSubjectMatchIndexConstant])
		parsedCommit.Breaking = len(subjectMatches[conventionalBangMatchIndexConstant]) > 0
	}

	if containsBreakingChangeFooter(record.Body) {
		parsedCommit.Breaking = true
	}

	return parsedCommit
}

// ParseConventionalCommits classifies every provided commit record in order.
func ParseConventionalCommits(records []shared.CommitRecord) []ConventionalCommit {
	parsedCommits := make([]ConventionalCommit, 0, len(records))
	for _, record := range records {
		parsedCommits = append(parsedCommits, ParseConventionalCommit(record))
	}
	return parsedCommits
}

// BulletText renders the commit as a changelog bullet body with the scope prefix when present.
func (commit ConventionalCommit) BulletText() string {
	if len(commit.Scope) == 0 {
		return commit.Subject
	}
	return commit.Scope + scopeSubjectSeparatorConstant + commit.Subject
}

func containsBreakingChangeFooter(commitBody string) bool {
	for _, bodyLine := range strings.Split(commitBody, "\n") {
		trimmedLine := strings.TrimSpace(bodyLine)
		if strings.HasPrefix(trimmedLine, breakingChangeFooterConstant) {
			return true
		}
		if strings.HasPrefix(trimmedLine, breakingChangeHyphenedFooterConstant) {
			return true
		}
	}
	return false
}
