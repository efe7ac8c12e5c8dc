package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gflow/internal/gitrepo"
)

func TestParseRemoteURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expected    gitrepo.RemoteURL
		expectError bool
	}{
		{
			name:     "git_user_shorthand",
			input:    "git@github.com:temirov/gflow.git",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "temirov", Repository: "gflow"},
		},
		{
			name:     "ssh_protocol_prefix",
			input:    "ssh://git@github.com/temirov/gflow.git",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "temirov", Repository: "gflow"},
		},
		{
			name:     "https_with_suffix",
			input:    "https://github.com/temirov/gflow.git",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Owner: "temirov", Repository: "gflow"},
		},
		{
			name:     "https_without_suffix",
			input:    "https://github.com/temirov/gflow",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Owner: "temirov", Repository: "gflow"},
		},
		{name: "rejects_empty", input: "   ", expectError: true},
		{name: "rejects_unknown_scheme", input: "svn://example.com/repo", expectError: true},
		{name: "rejects_missing_repository", input: "git@github.com:temirov", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			parsed, parseError := gitrepo.ParseRemoteURL(testCase.input)
			if testCase.expectError {
				require.Error(t, parseError)
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expected, parsed)
		})
	}
}

func TestRemoteURLAccessors(t *testing.T) {
	t.Parallel()

	parsed, parseError := gitrepo.ParseRemoteURL("git@github.com:temirov/gflow.git")
	require.NoError(t, parseError)
	require.Equal(t, "temirov/gflow", parsed.OwnerRepository())
	require.True(t, parsed.IsGitHubHost())

	hosted, parseError := gitrepo.ParseRemoteURL("git@gitlab.example.com:team/project.git")
	require.NoError(t, parseError)
	require.False(t, hosted.IsGitHubHost())
}
