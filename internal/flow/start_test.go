package flow

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gflow/internal/testsupport"
)

func TestNewStartServiceValidatesDependencies(t *testing.T) {
	service, creationError := NewStartService(Dependencies{})
	require.ErrorIs(t, creationError, ErrRepositoryManagerNotConfigured)
	require.Nil(t, service)

	service, creationError = NewStartService(Dependencies{RepositoryManager: &testsupport.RepositoryManagerRecorder{}})
	require.NoError(t, creationError)
	require.NotNil(t, service)
}

func TestStartValidatesOptions(t *testing.T) {
	testCases := []struct {
		name        string
		options     StartOptions
		expectedErr error
	}{
		{
			name:        "MissingRepositoryPath",
			options:     StartOptions{BranchKind: "feature", BranchName: "login"},
			expectedErr: ErrRepositoryPathRequired,
		},
		{
			name:        "MissingBranchName",
			options:     StartOptions{RepositoryPath: "/tmp/repo", BranchKind: "feature"},
			expectedErr: ErrBranchNameRequired,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			recorder := &testsupport.RepositoryManagerRecorder{CleanWorktree: true}
			service, creationError := NewStartService(Dependencies{RepositoryManager: recorder})
			require.NoError(t, creationError)

			_, startError := service.Start(context.Background(), testCase.options)
			require.ErrorIs(t, startError, testCase.expectedErr)
			require.Empty(t, recorder.Operations)
		})
	}
}

func TestStartRejectsUnknownKind(t *testing.T) {
	recorder := &testsupport.RepositoryManagerRecorder{CleanWorktree: true}
	service, creationError := NewStartService(Dependencies{RepositoryManager: recorder})
	require.NoError(t, creationError)

	_, startError := service.Start(context.Background(), StartOptions{RepositoryPath: "/tmp/repo", BranchKind: "hotfix", BranchName: "login"})

	var invalidTypeError InvalidBranchTypeError
	require.ErrorAs(t, startError, &invalidTypeError)
	require.Equal(t, "hotfix", invalidTypeError.Kind)
	require.Empty(t, recorder.Operations)
}

func TestStartCreatesBranchFromDevelopment(t *testing.T) {
	recorder := &testsupport.RepositoryManagerRecorder{
		CleanWorktree:  true,
		RemoteBranches: map[string]bool{"dev": true},
	}
	service, creationError := NewStartService(Dependencies{RepositoryManager: recorder})
	require.NoError(t, creationError)

	result, startError := service.Start(context.Background(), StartOptions{
		RepositoryPath: "/tmp/repo",
		BranchKind:     "feature",
		BranchName:     "login",
	})

	require.NoError(t, startError)
	require.Equal(t, StartResult{BranchName: "feature/login", BaseBranch: "dev"}, result)
	require.Equal(t, []string{
		"CheckCleanWorktree /tmp/repo",
		"BranchExists /tmp/repo feature/login",
		"RemoteBranchExists /tmp/repo origin feature/login",
		"FetchRemote /tmp/repo origin",
		"SwitchBranch /tmp/repo dev origin",
		"RemoteBranchExists /tmp/repo origin dev",
		"PullFastForwardOnly /tmp/repo origin dev",
		"CreateBranch /tmp/repo feature/login dev",
	}, recorder.Operations)
}

func TestStartSkipsPullWhenRemoteBaseMissing(t *testing.T) {
	recorder := &testsupport.RepositoryManagerRecorder{CleanWorktree: true}
	service, creationError := NewStartService(Dependencies{RepositoryManager: recorder})
	require.NoError(t, creationError)

	_, startError := service.Start(context.Background(), StartOptions{
		RepositoryPath: "/tmp/repo",
		BranchKind:     "fix",
		BranchName:     "crash",
	})

	require.NoError(t, startError)
	require.NotContains(t, recorder.Operations, "PullFastForwardOnly /tmp/repo origin dev")
	require.Contains(t, recorder.Operations, "CreateBranch /tmp/repo fix/crash dev")
}

func TestStartRejectsExistingBranchWithoutMutation(t *testing.T) {
	testCases := []struct {
		name               string
		localBranches      map[string]bool
		remoteBranches     map[string]bool
		expectedOperations []string
	}{
		{
			name:          "LocalBranch",
			localBranches: map[string]bool{"feature/login": true},
			expectedOperations: []string{
				"CheckCleanWorktree /tmp/repo",
				"BranchExists /tmp/repo feature/login",
			},
		},
		{
			name:           "RemoteBranch",
			remoteBranches: map[string]bool{"feature/login": true},
			expectedOperations: []string{
				"CheckCleanWorktree /tmp/repo",
				"BranchExists /tmp/repo feature/login",
				"RemoteBranchExists /tmp/repo origin feature/login",
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			recorder := &testsupport.RepositoryManagerRecorder{
				CleanWorktree:  true,
				LocalBranches:  testCase.localBranches,
				RemoteBranches: testCase.remoteBranches,
			}
			service, creationError := NewStartService(Dependencies{RepositoryManager: recorder})
			require.NoError(t, creationError)

			_, startError := service.Start(context.Background(), StartOptions{
				RepositoryPath: "/tmp/repo",
				BranchKind:     "feature",
				BranchName:     "login",
			})

			var existsError BranchExistsError
			require.ErrorAs(t, startError, &existsError)
			require.Equal(t, "feature/login", existsError.BranchName)
			require.Equal(t, testCase.expectedOperations, recorder.Operations)
		})
	}
}

func TestStartFailsWhenWorktreeDirty(t *testing.T) {
	recorder := &testsupport.RepositoryManagerRecorder{CleanWorktree: false}
	service, creationError := NewStartService(Dependencies{RepositoryManager: recorder})
	require.NoError(t, creationError)

	_, startError := service.Start(context.Background(), StartOptions{
		RepositoryPath: "/tmp/repo",
		BranchKind:     "feature",
		BranchName:     "login",
	})

	require.ErrorIs(t, startError, ErrWorktreeNotClean)
	require.Equal(t, []string{"CheckCleanWorktree /tmp/repo"}, recorder.Operations)
}

func TestStartDryRunExecutesNoMutations(t *testing.T) {
	outputBuffer := &bytes.Buffer{}
	recorder := &testsupport.RepositoryManagerRecorder{CleanWorktree: true}
	service, creationError := NewStartService(Dependencies{RepositoryManager: recorder, Output: outputBuffer})
	require.NoError(t, creationError)

	result, startError := service.Start(context.Background(), StartOptions{
		RepositoryPath: "/tmp/repo",
		BranchKind:     "feature",
		BranchName:     "login",
		DryRun:         true,
	})

	require.NoError(t, startError)
	require.Equal(t, StartResult{BranchName: "feature/login", BaseBranch: "dev"}, result)
	require.Equal(t, []string{
		"CheckCleanWorktree /tmp/repo",
		"BranchExists /tmp/repo feature/login",
		"RemoteBranchExists /tmp/repo origin feature/login",
	}, recorder.Operations)
	require.Equal(t, "PLAN-START: feature/login (from dev)\n", outputBuffer.String())
}

func TestStartHonorsConfiguredNaming(t *testing.T) {
	recorder := &testsupport.RepositoryManagerRecorder{CleanWorktree: true}
	service, creationError := NewStartService(Dependencies{RepositoryManager: recorder})
	require.NoError(t, creationError)

	result, startError := service.Start(context.Background(), StartOptions{
		RepositoryPath: "/tmp/repo",
		BranchKind:     "feature",
		BranchName:     "login",
		Configuration: Configuration{
			DevelopmentBranch: "develop",
			FeaturePrefix:     "feat/",
			RemoteName:        "upstream",
		},
	})

	require.NoError(t, startError)
	require.Equal(t, StartResult{BranchName: "feat/login", BaseBranch: "develop"}, result)
	require.Contains(t, recorder.Operations, "FetchRemote /tmp/repo upstream")
	require.Contains(t, recorder.Operations, "SwitchBranch /tmp/repo develop upstream")
	require.Contains(t, recorder.Operations, "CreateBranch /tmp/repo feat/login develop")
}

func TestStartSurfacesManagerFailures(t *testing.T) {
	testError := errors.New("command failed")

	testCases := []struct {
		name             string
		failingOperation string
		expectedFragment string
	}{
		{
			name:             "CleanCheck",
			failingOperation: "CheckCleanWorktree /tmp/repo",
			expectedFragment: "failed to verify clean worktree",
		},
		{
			name:             "LocalLookup",
			failingOperation: "BranchExists /tmp/repo feature/login",
			expectedFragment: "failed to check branch feature/login",
		},
		{
			name:             "RemoteLookup",
			failingOperation: "RemoteBranchExists /tmp/repo origin feature/login",
			expectedFragment: "failed to check remote branch feature/login",
		},
		{
			name:             "Fetch",
			failingOperation: "FetchRemote /tmp/repo origin",
			expectedFragment: "failed to fetch origin",
		},
		{
			name:             "Switch",
			failingOperation: "SwitchBranch /tmp/repo dev origin",
			expectedFragment: "failed to switch to branch dev",
		},
		{
			name:             "Pull",
			failingOperation: "PullFastForwardOnly /tmp/repo origin dev",
			expectedFragment: "failed to pull dev from origin",
		},
		{
			name:             "Create",
			failingOperation: "CreateBranch /tmp/repo feature/login dev",
			expectedFragment: "failed to create branch feature/login",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			recorder := &testsupport.RepositoryManagerRecorder{
				CleanWorktree:  true,
				RemoteBranches: map[string]bool{"dev": true},
				Failures:       map[string]error{testCase.failingOperation: testError},
			}
			service, creationError := NewStartService(Dependencies{RepositoryManager: recorder})
			require.NoError(t, creationError)

			_, startError := service.Start(context.Background(), StartOptions{
				RepositoryPath: "/tmp/repo",
				BranchKind:     "feature",
				BranchName:     "login",
			})

			require.ErrorContains(t, startError, testCase.expectedFragment)
			require.ErrorIs(t, startError, testError)
		})
	}
}
