package changelog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRenderEntryGroupsSectionsInFixedOrder(t *testing.T) {
	entryDate := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
	commits := []ConventionalCommit{
		{Type: "chore", Subject: "tidy configuration"},
		{Type: "fix", Scope: "remote", Subject: "handle missing branch"},
		{Type: "feat", Scope: "auth", Subject: "add login", Breaking: true},
		{Subject: "Merge branch dev"},
	}

	rendered := RenderEntry("v1.2.0", entryDate, commits)

	require.True(t, strings.HasPrefix(rendered, "## v1.2.0 - 2025-03-14\n"))

	breakingIndex := strings.Index(rendered, "### Breaking Changes")
	featuresIndex := strings.Index(rendered, "### Features")
	fixesIndex := strings.Index(rendered, "### Bug Fixes")
	choresIndex := strings.Index(rendered, "### Chores")
	otherIndex := strings.Index(rendered, "### Other")

	require.Positive(t, breakingIndex)
	require.Greater(t, featuresIndex, breakingIndex)
	require.Greater(t, fixesIndex, featuresIndex)
	require.Greater(t, choresIndex, fixesIndex)
	require.Greater(t, otherIndex, choresIndex)

	require.Contains(t, rendered, "- auth: add login")
	require.Contains(t, rendered, "- remote: handle missing branch")
	require.Contains(t, rendered, "- Merge branch dev")
}

func TestRenderEntryWithoutBreakingChangesOmitsSection(t *testing.T) {
	rendered := RenderEntry("v0.1.0", time.Now(), []ConventionalCommit{{Type: "feat", Subject: "initial"}})
	require.NotContains(t, rendered, "### Breaking Changes")
	require.Contains(t, rendered, "### Features")
}

func TestRenderEntryEmptyCommitListRendersHeadingOnly(t *testing.T) {
	entryDate := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	rendered := RenderEntry("v0.1.0", entryDate, nil)
	require.Equal(t, "## v0.1.0 - 2025-01-02\n", rendered)
}
