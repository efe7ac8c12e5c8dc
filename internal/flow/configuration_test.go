package flow

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gflow/internal/testsupport"
)

const overrideTestRepositoryPathConstant = "/tmp/repo"

func TestConfigurationSanitizeAppliesDefaults(t *testing.T) {
	sanitized := Configuration{}.Sanitize()
	require.Equal(t, DefaultConfiguration(), sanitized)
}

func TestConfigurationSanitizeKeepsExplicitValues(t *testing.T) {
	configured := Configuration{
		DevelopmentBranch: " develop ",
		ProductionBranch:  "master",
		FeaturePrefix:     "feat/",
		VersionFiles:      []string{" install.sh ", "", "README.md"},
	}

	sanitized := configured.Sanitize()

	require.Equal(t, "develop", sanitized.DevelopmentBranch)
	require.Equal(t, "master", sanitized.ProductionBranch)
	require.Equal(t, "feat/", sanitized.FeaturePrefix)
	require.Equal(t, DefaultFixPrefixConstant, sanitized.FixPrefix)
	require.Equal(t, []string{"install.sh", "README.md"}, sanitized.VersionFiles)
}

func TestConfigurationBranchPrefix(t *testing.T) {
	configuration := DefaultConfiguration()

	testCases := []struct {
		name           string
		branchType     BranchType
		expectedPrefix string
	}{
		{name: "Feature", branchType: BranchTypeFeature, expectedPrefix: DefaultFeaturePrefixConstant},
		{name: "Fix", branchType: BranchTypeFix, expectedPrefix: DefaultFixPrefixConstant},
		{name: "Release", branchType: BranchTypeRelease, expectedPrefix: DefaultReleasePrefixConstant},
		{name: "Unknown", branchType: BranchType("hotfix"), expectedPrefix: ""},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedPrefix, configuration.BranchPrefix(testCase.branchType))
		})
	}
}

func TestConfigurationQualifiedBranchName(t *testing.T) {
	configuration := DefaultConfiguration()
	require.Equal(t, "feature/login", configuration.QualifiedBranchName(BranchTypeFeature, " login "))
	require.Equal(t, "release/v1.2.3", configuration.QualifiedBranchName(BranchTypeRelease, "v1.2.3"))
}

func TestLoadRepositoryOverride(t *testing.T) {
	overridePath := filepath.Join(overrideTestRepositoryPathConstant, RepositoryOverrideFileNameConstant)

	testCases := []struct {
		name                  string
		fileSystem            *testsupport.FileSystemStub
		expectedConfiguration Configuration
		expectedErrorFragment string
	}{
		{
			name:                  "MissingFileKeepsBase",
			fileSystem:            &testsupport.FileSystemStub{},
			expectedConfiguration: DefaultConfiguration(),
		},
		{
			name: "OverrideMergesSubset",
			fileSystem: &testsupport.FileSystemStub{
				Files: map[string][]byte{
					overridePath: []byte("development_branch: develop\nremote: upstream\nversion_files:\n  - install.sh\n"),
				},
			},
			expectedConfiguration: func() Configuration {
				expected := DefaultConfiguration()
				expected.DevelopmentBranch = "develop"
				expected.RemoteName = "upstream"
				expected.VersionFiles = []string{"install.sh"}
				return expected
			}(),
		},
		{
			name: "MalformedOverrideFails",
			fileSystem: &testsupport.FileSystemStub{
				Files: map[string][]byte{overridePath: []byte("development_branch: [\n")},
			},
			expectedErrorFragment: "failed to parse",
		},
		{
			name: "ReadFailureSurfaces",
			fileSystem: &testsupport.FileSystemStub{
				Files:      map[string][]byte{overridePath: []byte("remote: upstream\n")},
				ReadErrors: map[string]error{overridePath: errors.New("permission denied")},
			},
			expectedErrorFragment: "failed to read",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			loadedConfiguration, loadError := LoadRepositoryOverride(testCase.fileSystem, overrideTestRepositoryPathConstant, DefaultConfiguration())
			if len(testCase.expectedErrorFragment) > 0 {
				require.ErrorContains(t, loadError, testCase.expectedErrorFragment)
				return
			}
			require.NoError(t, loadError)
			require.Equal(t, testCase.expectedConfiguration, loadedConfiguration)
		})
	}
}
