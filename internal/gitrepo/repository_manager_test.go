package gitrepo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gflow/internal/execshell"
	"github.com/temirov/gflow/internal/shared"
)

type scriptedOutcome struct {
	result execshell.ExecutionResult
	err    error
}

type scriptedGitExecutor struct {
	recordedCommands []execshell.CommandDetails
	queuedOutcomes   []scriptedOutcome
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	if len(executor.queuedOutcomes) == 0 {
		return execshell.ExecutionResult{}, nil
	}
	outcome := executor.queuedOutcomes[0]
	executor.queuedOutcomes = executor.queuedOutcomes[1:]
	return outcome.result, outcome.err
}

func commandFailureWithExitCode(exitCode int) error {
	return execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: exitCode}}
}

func newTestManager(t *testing.T, executor *scriptedGitExecutor) *RepositoryManager {
	t.Helper()
	manager, creationError := NewRepositoryManager(executor)
	require.NoError(t, creationError)
	return manager
}

func TestNewRepositoryManagerRequiresExecutor(t *testing.T) {
	manager, creationError := NewRepositoryManager(nil)
	require.ErrorIs(t, creationError, ErrExecutorNotConfigured)
	require.Nil(t, manager)
}

func TestRepositoryManagerRequiresRepositoryPath(t *testing.T) {
	executor := &scriptedGitExecutor{}
	manager := newTestManager(t, executor)

	_, err := manager.CheckCleanWorktree(context.Background(), "  ")
	require.Error(t, err)
	var inputError InvalidInputError
	require.ErrorAs(t, err, &inputError)
	require.Equal(t, repositoryPathFieldNameConstant, inputError.FieldName)
	require.Empty(t, executor.recordedCommands)
}

func TestRepositoryManagerDisablesTerminalPrompts(t *testing.T) {
	executor := &scriptedGitExecutor{}
	manager := newTestManager(t, executor)

	_, err := manager.GetCurrentBranch(context.Background(), "/tmp/repo")
	require.NoError(t, err)
	require.Len(t, executor.recordedCommands, 1)
	require.Equal(t, "/tmp/repo", executor.recordedCommands[0].WorkingDirectory)
	require.Equal(t, terminalPromptDisabledValueConstant, executor.recordedCommands[0].EnvironmentVariables[terminalPromptEnvironmentKeyConstant])
}

func TestCheckCleanWorktree(t *testing.T) {
	testCases := []struct {
		name           string
		statusOutput   string
		expectedResult bool
	}{
		{name: "clean_when_empty", statusOutput: "", expectedResult: true},
		{name: "clean_when_whitespace", statusOutput: "\n", expectedResult: true},
		{name: "dirty_when_changes_listed", statusOutput: " M internal/service.go\n", expectedResult: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{{result: execshell.ExecutionResult{StandardOutput: testCase.statusOutput}}}}
			manager := newTestManager(t, executor)

			clean, err := manager.CheckCleanWorktree(context.Background(), "/tmp/repo")
			require.NoError(t, err)
			require.Equal(t, testCase.expectedResult, clean)
			require.Equal(t, []string{statusSubcommandConstant, porcelainFlagConstant}, executor.recordedCommands[0].Arguments)
		})
	}
}

func TestGetCurrentBranchTrimsOutput(t *testing.T) {
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{{result: execshell.ExecutionResult{StandardOutput: "dev\n"}}}}
	manager := newTestManager(t, executor)

	branchName, err := manager.GetCurrentBranch(context.Background(), "/tmp/repo")
	require.NoError(t, err)
	require.Equal(t, "dev", branchName)
	require.Equal(t, []string{revParseSubcommandConstant, abbreviatedReferenceFlagConstant, headReferenceConstant}, executor.recordedCommands[0].Arguments)
}

func TestBranchExists(t *testing.T) {
	testCases := []struct {
		name           string
		outcome        scriptedOutcome
		expectedExists bool
		expectError    bool
	}{
		{name: "exists_on_success", outcome: scriptedOutcome{}, expectedExists: true},
		{name: "missing_on_command_failure", outcome: scriptedOutcome{err: commandFailureWithExitCode(1)}, expectedExists: false},
		{name: "error_on_execution_failure", outcome: scriptedOutcome{err: execshell.CommandExecutionError{Cause: errors.New("binary missing")}}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{testCase.outcome}}
			manager := newTestManager(t, executor)

			exists, err := manager.BranchExists(context.Background(), "/tmp/repo", "feature/demo")
			if testCase.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.expectedExists, exists)
			require.Equal(t, []string{showReferenceSubcommandConstant, verifyFlagConstant, quietFlagConstant, "refs/heads/feature/demo"}, executor.recordedCommands[0].Arguments)
		})
	}
}

func TestRemoteBranchExistsInspectsListRemoteOutput(t *testing.T) {
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{
		{result: execshell.ExecutionResult{StandardOutput: "9f2c1d\trefs/heads/feature/demo\n"}},
		{result: execshell.ExecutionResult{StandardOutput: "\n"}},
	}}
	manager := newTestManager(t, executor)

	exists, err := manager.RemoteBranchExists(context.Background(), "/tmp/repo", "origin", "feature/demo")
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, []string{listRemoteSubcommandConstant, headsFlagConstant, "origin", "feature/demo"}, executor.recordedCommands[0].Arguments)

	exists, err = manager.RemoteBranchExists(context.Background(), "/tmp/repo", "origin", "feature/demo")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestSwitchBranchFallsBackToTrackingAndCreate(t *testing.T) {
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{
		{err: commandFailureWithExitCode(1)},
		{err: commandFailureWithExitCode(128)},
		{},
	}}
	manager := newTestManager(t, executor)

	require.NoError(t, manager.SwitchBranch(context.Background(), "/tmp/repo", "dev", "origin"))
	require.Len(t, executor.recordedCommands, 3)
	require.Equal(t, []string{switchSubcommandConstant, "dev"}, executor.recordedCommands[0].Arguments)
	require.Equal(t, []string{switchSubcommandConstant, trackFlagConstant, "origin/dev"}, executor.recordedCommands[1].Arguments)
	require.Equal(t, []string{switchSubcommandConstant, createBranchFlagConstant, "dev"}, executor.recordedCommands[2].Arguments)
}

func TestSwitchBranchSkipsTrackingWithoutRemote(t *testing.T) {
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{
		{err: commandFailureWithExitCode(1)},
		{},
	}}
	manager := newTestManager(t, executor)

	require.NoError(t, manager.SwitchBranch(context.Background(), "/tmp/repo", "dev", ""))
	require.Len(t, executor.recordedCommands, 2)
	require.Equal(t, []string{switchSubcommandConstant, createBranchFlagConstant, "dev"}, executor.recordedCommands[1].Arguments)
}

func TestSwitchBranchPropagatesExecutionFailures(t *testing.T) {
	executionFailure := execshell.CommandExecutionError{Cause: errors.New("git missing")}
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{{err: executionFailure}}}
	manager := newTestManager(t, executor)

	err := manager.SwitchBranch(context.Background(), "/tmp/repo", "dev", "origin")
	require.Error(t, err)
	require.Len(t, executor.recordedCommands, 1)
}

func TestCreateBranchIncludesStartPoint(t *testing.T) {
	executor := &scriptedGitExecutor{}
	manager := newTestManager(t, executor)

	require.NoError(t, manager.CreateBranch(context.Background(), "/tmp/repo", "feature/demo", "dev"))
	require.Equal(t, []string{switchSubcommandConstant, createBranchFlagConstant, "feature/demo", "dev"}, executor.recordedCommands[0].Arguments)

	require.NoError(t, manager.CreateBranch(context.Background(), "/tmp/repo", "feature/other", ""))
	require.Equal(t, []string{switchSubcommandConstant, createBranchFlagConstant, "feature/other"}, executor.recordedCommands[1].Arguments)
}

func TestMergeWithoutCommitReportsConflicts(t *testing.T) {
	testCases := []struct {
		name             string
		outcome          scriptedOutcome
		expectedConflict bool
		expectError      bool
	}{
		{name: "clean_merge", outcome: scriptedOutcome{}, expectedConflict: false},
		{name: "conflict_on_exit_one", outcome: scriptedOutcome{err: commandFailureWithExitCode(1)}, expectedConflict: true},
		{name: "error_on_fatal_exit", outcome: scriptedOutcome{err: commandFailureWithExitCode(128)}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{testCase.outcome}}
			manager := newTestManager(t, executor)

			conflict, err := manager.MergeWithoutCommit(context.Background(), "/tmp/repo", "feature/demo")
			if testCase.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.expectedConflict, conflict)
			require.Equal(t, []string{mergeSubcommandConstant, noCommitFlagConstant, noFastForwardFlagConstant, "feature/demo"}, executor.recordedCommands[0].Arguments)
		})
	}
}

func TestMergeNoFastForwardArguments(t *testing.T) {
	executor := &scriptedGitExecutor{}
	manager := newTestManager(t, executor)

	require.NoError(t, manager.MergeNoFastForward(context.Background(), "/tmp/repo", "feature/demo", "merge: feature/demo -> dev"))
	require.Equal(t, []string{mergeSubcommandConstant, noFastForwardFlagConstant, messageFlagConstant, "merge: feature/demo -> dev", "feature/demo"}, executor.recordedCommands[0].Arguments)
}

func TestMergeSquashAndFastForwardArguments(t *testing.T) {
	executor := &scriptedGitExecutor{}
	manager := newTestManager(t, executor)

	require.NoError(t, manager.MergeSquash(context.Background(), "/tmp/repo", "dev"))
	require.Equal(t, []string{mergeSubcommandConstant, squashFlagConstant, "dev"}, executor.recordedCommands[0].Arguments)

	require.NoError(t, manager.MergeFastForwardOnly(context.Background(), "/tmp/repo", "main"))
	require.Equal(t, []string{mergeSubcommandConstant, fastForwardOnlyFlagConstant, "main"}, executor.recordedCommands[1].Arguments)

	require.NoError(t, manager.AbortMerge(context.Background(), "/tmp/repo"))
	require.Equal(t, []string{mergeSubcommandConstant, abortFlagConstant}, executor.recordedCommands[2].Arguments)
}

func TestDeleteBranchSelectsDeletionFlag(t *testing.T) {
	executor := &scriptedGitExecutor{}
	manager := newTestManager(t, executor)

	require.NoError(t, manager.DeleteBranch(context.Background(), "/tmp/repo", "feature/demo", true))
	require.Equal(t, []string{branchSubcommandConstant, forcedDeleteFlagConstant, "feature/demo"}, executor.recordedCommands[0].Arguments)

	require.NoError(t, manager.DeleteBranch(context.Background(), "/tmp/repo", "temp/release", false))
	require.Equal(t, []string{branchSubcommandConstant, safeDeleteFlagConstant, "temp/release"}, executor.recordedCommands[1].Arguments)
}

func TestCommitAllStagesBeforeCommitting(t *testing.T) {
	executor := &scriptedGitExecutor{}
	manager := newTestManager(t, executor)

	require.NoError(t, manager.CommitAll(context.Background(), "/tmp/repo", "release: prepare v1.2.3"))
	require.Len(t, executor.recordedCommands, 2)
	require.Equal(t, []string{addSubcommandConstant, allPathsFlagConstant}, executor.recordedCommands[0].Arguments)
	require.Equal(t, []string{commitSubcommandConstant, messageFlagConstant, "release: prepare v1.2.3"}, executor.recordedCommands[1].Arguments)
}

func TestCreateAnnotatedTagArguments(t *testing.T) {
	executor := &scriptedGitExecutor{}
	manager := newTestManager(t, executor)

	require.NoError(t, manager.CreateAnnotatedTag(context.Background(), "/tmp/repo", "v1.2.3", "🔖 Release v1.2.3"))
	require.Equal(t, []string{tagSubcommandConstant, annotateFlagConstant, "v1.2.3", messageFlagConstant, "🔖 Release v1.2.3"}, executor.recordedCommands[0].Arguments)
}

func TestTagExistsInspectsListOutput(t *testing.T) {
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{
		{result: execshell.ExecutionResult{StandardOutput: "v1.2.3\n"}},
		{result: execshell.ExecutionResult{StandardOutput: ""}},
	}}
	manager := newTestManager(t, executor)

	exists, err := manager.TagExists(context.Background(), "/tmp/repo", "v1.2.3")
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, []string{tagSubcommandConstant, listFlagConstant, "v1.2.3"}, executor.recordedCommands[0].Arguments)

	exists, err = manager.TagExists(context.Background(), "/tmp/repo", "v1.2.3")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLatestTagHandlesMissingTags(t *testing.T) {
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{
		{result: execshell.ExecutionResult{StandardOutput: "v1.2.3\n"}},
		{err: commandFailureWithExitCode(128)},
	}}
	manager := newTestManager(t, executor)

	latest, err := manager.LatestTag(context.Background(), "/tmp/repo")
	require.NoError(t, err)
	require.Equal(t, "v1.2.3", latest)
	require.Equal(t, []string{describeSubcommandConstant, tagsFlagConstant, abbreviationDisabledFlagConstant}, executor.recordedCommands[0].Arguments)

	latest, err = manager.LatestTag(context.Background(), "/tmp/repo")
	require.NoError(t, err)
	require.Empty(t, latest)
}

func TestPushBranchHonorsUpstreamFlag(t *testing.T) {
	executor := &scriptedGitExecutor{}
	manager := newTestManager(t, executor)

	require.NoError(t, manager.PushBranch(context.Background(), "/tmp/repo", "origin", "dev", false))
	require.Equal(t, []string{pushSubcommandConstant, "origin", "dev"}, executor.recordedCommands[0].Arguments)

	require.NoError(t, manager.PushBranch(context.Background(), "/tmp/repo", "origin", "pr/release/v1.2.3", true))
	require.Equal(t, []string{pushSubcommandConstant, setUpstreamFlagConstant, "origin", "pr/release/v1.2.3"}, executor.recordedCommands[1].Arguments)
}

func TestPushTagArguments(t *testing.T) {
	executor := &scriptedGitExecutor{}
	manager := newTestManager(t, executor)

	require.NoError(t, manager.PushTag(context.Background(), "/tmp/repo", "origin", "v1.2.3"))
	require.Equal(t, []string{pushSubcommandConstant, "origin", "v1.2.3"}, executor.recordedCommands[0].Arguments)
}

func TestOperationErrorWrapsCause(t *testing.T) {
	underlying := commandFailureWithExitCode(1)
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{{err: underlying}}}
	manager := newTestManager(t, executor)

	err := manager.FetchRemote(context.Background(), "/tmp/repo", "origin")
	require.Error(t, err)

	var operationError OperationError
	require.ErrorAs(t, err, &operationError)
	require.Equal(t, fetchOperationConstant, operationError.Operation)

	var commandFailure execshell.CommandFailedError
	require.ErrorAs(t, err, &commandFailure)
	require.Equal(t, 1, commandFailure.Result.ExitCode)
}

func TestListBranchesSplitsOutput(t *testing.T) {
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{
		{result: execshell.ExecutionResult{StandardOutput: "dev\nfeature/login\nmain\n"}},
	}}
	manager := newTestManager(t, executor)

	branches, err := manager.ListBranches(context.Background(), "/tmp/repo")
	require.NoError(t, err)
	require.Equal(t, []string{"dev", "feature/login", "main"}, branches)
	require.Equal(t, []string{branchSubcommandConstant, listFlagConstant, branchFormatFlagConstant}, executor.recordedCommands[0].Arguments)
}

func TestListMergedBranchesArguments(t *testing.T) {
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{
		{result: execshell.ExecutionResult{StandardOutput: "fix/crash\n\n"}},
	}}
	manager := newTestManager(t, executor)

	branches, err := manager.ListMergedBranches(context.Background(), "/tmp/repo", "dev")
	require.NoError(t, err)
	require.Equal(t, []string{"fix/crash"}, branches)
	require.Equal(t, []string{branchSubcommandConstant, mergedFlagConstant, "dev", branchFormatFlagConstant}, executor.recordedCommands[0].Arguments)
}

func TestListCommitsParsesSeparatedRecords(t *testing.T) {
	logOutput := "abc123\x1ffeat(auth): add login\x1fbody line\nBREAKING CHANGE: tokens rotate\x1e" +
		"def456\x1fchore: tidy\x1f\x1e"
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{
		{result: execshell.ExecutionResult{StandardOutput: logOutput}},
	}}
	manager := newTestManager(t, executor)

	commits, err := manager.ListCommits(context.Background(), "/tmp/repo", "v1.0.0", "HEAD")
	require.NoError(t, err)
	require.Equal(t, []shared.CommitRecord{
		{Hash: "abc123", Subject: "feat(auth): add login", Body: "body line\nBREAKING CHANGE: tokens rotate"},
		{Hash: "def456", Subject: "chore: tidy"},
	}, commits)
	require.Equal(t, []string{logSubcommandConstant, commitPrettyFormatFlagConstant, "v1.0.0..HEAD"}, executor.recordedCommands[0].Arguments)
}

func TestListCommitsWithoutFromReferenceUsesFullHistory(t *testing.T) {
	executor := &scriptedGitExecutor{queuedOutcomes: []scriptedOutcome{{}}}
	manager := newTestManager(t, executor)

	_, err := manager.ListCommits(context.Background(), "/tmp/repo", "", "HEAD")
	require.NoError(t, err)
	require.Equal(t, []string{logSubcommandConstant, commitPrettyFormatFlagConstant, "HEAD"}, executor.recordedCommands[0].Arguments)
}
