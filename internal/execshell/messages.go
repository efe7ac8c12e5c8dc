package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	messageLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitStatusSubcommandNameConstant   = "status"
	gitSwitchSubcommandNameConstant   = "switch"
	gitBranchSubcommandNameConstant   = "branch"
	gitFetchSubcommandNameConstant    = "fetch"
	gitPullSubcommandNameConstant     = "pull"
	gitMergeSubcommandNameConstant    = "merge"
	gitTagSubcommandNameConstant      = "tag"
	gitPushSubcommandNameConstant     = "push"
	gitLogSubcommandNameConstant      = "log"
	gitDescribeSubcommandNameConstant = "describe"
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitLSRemoteSubcommandNameConstant = "ls-remote"
	gitAddSubcommandNameConstant      = "add"
	gitCommitSubcommandNameConstant   = "commit"

	gitWorkTreeFlagConstant      = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant     = "--abbrev-ref"
	gitHeadReferenceConstant     = "HEAD"
	gitCreateFlagConstant        = "--create"
	gitCreateShortFlagConstant   = "-c"
	gitTrackFlagConstant         = "--track"
	gitDeleteFlagConstant        = "--delete"
	gitForceFlagConstant         = "--force"
	gitListFlagConstant          = "--list"
	gitAbortFlagConstant         = "--abort"
	gitSquashFlagConstant        = "--squash"
	gitFastForwardFlagConstant   = "--ff-only"
	gitAnnotateFlagConstant      = "--annotate"
	gitAnnotateShortFlagConstant = "-a"
	gitSetUpstreamFlagConstant   = "--set-upstream"
	gitAllFlagConstant           = "--all"
	gitAllShortFlagConstant      = "-A"
	gitHeadsFlagConstant         = "--heads"
	gitMessageFlagConstant       = "-m"
)

const (
	gitWorkTreeStartTemplateConstant            = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant          = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant          = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant = "Could not analyze %s: %s"

	gitCurrentBranchStartTemplateConstant           = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant         = "Current branch in %s is %s"
	gitCurrentBranchDetachedSuccessTemplateConstant = "%s is in a detached HEAD state"
	gitCurrentBranchFailureTemplateConstant         = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureConstant        = "Unable to identify current branch in %s: %s"

	gitRevisionStartTemplateConstant            = "Resolving %s in %s"
	gitRevisionSuccessTemplateConstant          = "%s in %s resolved to %s"
	gitRevisionEmptySuccessTemplateConstant     = "%s in %s did not resolve to a revision"
	gitRevisionFailureTemplateConstant          = "Failed to resolve %s in %s (exit code %d%s)"
	gitRevisionExecutionFailureTemplateConstant = "Unable to resolve %s in %s: %s"

	gitStatusStartTemplateConstant            = "Inspecting working tree in %s"
	gitStatusSuccessTemplateConstant          = "Inspected working tree in %s"
	gitStatusFailureTemplateConstant          = "Failed to inspect working tree in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant = "Unable to inspect working tree in %s: %s"

	gitSwitchStartTemplateConstant                     = "Switching %s to branch %s"
	gitSwitchSuccessTemplateConstant                   = "%s now on branch %s"
	gitSwitchFailureTemplateConstant                   = "Failed to switch %s to branch %s (exit code %d%s)"
	gitSwitchExecutionFailureTemplateConstant          = "Unable to switch %s to branch %s: %s"
	gitSwitchTrackedStartTemplateConstant              = "Switching %s to tracked branch %s"
	gitSwitchCreateStartTemplateConstant               = "Creating branch %s in %s"
	gitSwitchCreateWithStartPointStartTemplateConstant = "Creating branch %s from %s in %s"
	gitSwitchCreateSuccessTemplateConstant             = "Created branch %s in %s"
	gitSwitchCreateWithStartPointSuccessConstant       = "Created branch %s from %s in %s"
	gitSwitchCreateFailureTemplateConstant             = "Failed to create branch %s in %s (exit code %d%s)"
	gitSwitchCreateWithStartPointFailureConstant       = "Failed to create branch %s from %s in %s (exit code %d%s)"
	gitSwitchCreateExecutionFailureConstant            = "Unable to create branch %s in %s: %s"
	gitSwitchCreateWithStartPointExecutionConstant     = "Unable to create branch %s from %s in %s: %s"

	gitBranchDeletionStartTemplateConstant            = "Removing local branch %s in %s"
	gitBranchForceDeletionStartTemplateConstant       = "Force removing local branch %s in %s"
	gitBranchDeletionSuccessTemplateConstant          = "Removed local branch %s in %s"
	gitBranchDeletionFailureTemplateConstant          = "Failed to remove local branch %s in %s (exit code %d%s)"
	gitBranchDeletionExecutionFailureTemplateConstant = "Unable to remove local branch %s in %s: %s"
	gitBranchListStartTemplateConstant                = "Listing branches matching %s in %s"
	gitBranchListSuccessTemplateConstant              = "Listed branches matching %s in %s"
	gitBranchListFailureTemplateConstant              = "Failed to list branches matching %s in %s (exit code %d%s)"
	gitBranchListExecutionFailureTemplateConstant     = "Unable to list branches matching %s in %s: %s"

	gitFetchStartTemplateConstant                       = "Fetching %s from %s in %s"
	gitFetchWithoutRefsStartTemplateConstant            = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                     = "Fetched %s from %s in %s"
	gitFetchWithoutRefsSuccessTemplateConstant          = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                     = "Failed to fetch %s from %s in %s (exit code %d%s)"
	gitFetchWithoutRefsFailureTemplateConstant          = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant            = "Unable to fetch %s from %s in %s: %s"
	gitFetchWithoutRefsExecutionFailureTemplateConstant = "Unable to fetch from %s in %s: %s"
	gitFetchAllRemotesLabelConstant                     = "all remotes"

	gitPullStartTemplateConstant                       = "Pulling %s from %s in %s"
	gitPullWithoutRefsStartTemplateConstant            = "Pulling from %s in %s"
	gitPullSuccessTemplateConstant                     = "Pulled %s from %s in %s"
	gitPullWithoutRefsSuccessTemplateConstant          = "Pulled from %s in %s"
	gitPullFailureTemplateConstant                     = "Failed to pull %s from %s in %s (exit code %d%s)"
	gitPullWithoutRefsFailureTemplateConstant          = "Failed to pull from %s in %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant            = "Unable to pull %s from %s in %s: %s"
	gitPullWithoutRefsExecutionFailureTemplateConstant = "Unable to pull from %s in %s: %s"

	gitMergeStartTemplateConstant                  = "Merging %s into the current branch in %s"
	gitMergeSuccessTemplateConstant                = "Merged %s into the current branch in %s"
	gitMergeFailureTemplateConstant                = "Failed to merge %s into the current branch in %s (exit code %d%s)"
	gitMergeExecutionFailureTemplateConstant       = "Unable to merge %s into the current branch in %s: %s"
	gitMergeSquashStartTemplateConstant            = "Squashing %s into the current branch in %s"
	gitMergeSquashSuccessTemplateConstant          = "Squashed %s into the current branch in %s"
	gitMergeSquashFailureTemplateConstant          = "Failed to squash %s into the current branch in %s (exit code %d%s)"
	gitMergeSquashExecutionFailureTemplateConstant = "Unable to squash %s into the current branch in %s: %s"
	gitMergeFastForwardStartTemplateConstant       = "Fast-forwarding current branch to %s in %s"
	gitMergeFastForwardSuccessTemplateConstant     = "Fast-forwarded current branch to %s in %s"
	gitMergeFastForwardFailureTemplateConstant     = "Failed to fast-forward current branch to %s in %s (exit code %d%s)"
	gitMergeFastForwardExecutionFailureConstant    = "Unable to fast-forward current branch to %s in %s: %s"
	gitMergeAbortStartTemplateConstant             = "Aborting in-progress merge in %s"
	gitMergeAbortSuccessTemplateConstant           = "Aborted in-progress merge in %s"
	gitMergeAbortFailureTemplateConstant           = "Failed to abort in-progress merge in %s (exit code %d%s)"
	gitMergeAbortExecutionFailureTemplateConstant  = "Unable to abort in-progress merge in %s: %s"

	gitTagCreationStartTemplateConstant             = "Creating tag %s in %s"
	gitTagAnnotatedCreationStartTemplateConstant    = "Creating annotated tag %s in %s"
	gitTagCreationSuccessTemplateConstant           = "Created tag %s in %s"
	gitTagAnnotatedCreationSuccessTemplateConstant  = "Created annotated tag %s in %s"
	gitTagCreationFailureTemplateConstant           = "Failed to create tag %s in %s (exit code %d%s)"
	gitTagCreationExecutionFailureTemplateConstant  = "Unable to create tag %s in %s: %s"
	gitTagListStartTemplateConstant                 = "Listing tags matching %s in %s"
	gitTagListWithoutPatternStartTemplateConstant   = "Listing tags in %s"
	gitTagListSuccessTemplateConstant               = "Listed tags matching %s in %s"
	gitTagListWithoutPatternSuccessTemplateConstant = "Listed tags in %s"
	gitTagListFailureTemplateConstant               = "Failed to list tags matching %s in %s (exit code %d%s)"
	gitTagListWithoutPatternFailureTemplateConstant = "Failed to list tags in %s (exit code %d%s)"
	gitTagListExecutionFailureTemplateConstant      = "Unable to list tags matching %s in %s: %s"
	gitTagListWithoutPatternExecutionConstant       = "Unable to list tags in %s: %s"

	gitPushStartTemplateConstant                    = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant                  = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant                  = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant         = "Unable to push %s to %s from %s: %s"
	gitPushUpstreamStartTemplateConstant            = "Pushing %s to %s with upstream tracking from %s"
	gitPushUpstreamSuccessTemplateConstant          = "Pushed %s to %s with upstream tracking from %s"
	gitPushUpstreamFailureTemplateConstant          = "Failed to push %s to %s with upstream tracking from %s (exit code %d%s)"
	gitPushUpstreamExecutionFailureConstant         = "Unable to push %s to %s with upstream tracking from %s: %s"
	gitPushDeletionStartTemplateConstant            = "Deleting remote branch %s from %s in %s"
	gitPushDeletionSuccessTemplateConstant          = "Deleted remote branch %s from %s in %s"
	gitPushDeletionFailureTemplateConstant          = "Failed to delete remote branch %s from %s in %s (exit code %d%s)"
	gitPushDeletionExecutionFailureTemplateConstant = "Unable to delete remote branch %s from %s in %s: %s"

	gitLogStartTemplateConstant                 = "Collecting commit history for %s in %s"
	gitLogWithoutRangeStartTemplateConstant     = "Collecting commit history in %s"
	gitLogSuccessTemplateConstant               = "Collected commit history for %s in %s"
	gitLogWithoutRangeSuccessTemplateConstant   = "Collected commit history in %s"
	gitLogFailureTemplateConstant               = "Failed to collect commit history for %s in %s (exit code %d%s)"
	gitLogWithoutRangeFailureTemplateConstant   = "Failed to collect commit history in %s (exit code %d%s)"
	gitLogExecutionFailureTemplateConstant      = "Unable to collect commit history for %s in %s: %s"
	gitLogWithoutRangeExecutionFailureConstant  = "Unable to collect commit history in %s: %s"
	gitDescribeStartTemplateConstant            = "Locating latest tag in %s"
	gitDescribeSuccessTemplateConstant          = "Latest tag in %s is %s"
	gitDescribeEmptySuccessTemplateConstant     = "No tags found in %s"
	gitDescribeFailureTemplateConstant          = "Failed to locate latest tag in %s (exit code %d%s)"
	gitDescribeExecutionFailureTemplateConstant = "Unable to locate latest tag in %s: %s"
	gitLSRemoteHeadsStartTemplateConstant       = "Checking %s on %s from %s"
	gitLSRemoteHeadsSuccessTemplateConstant     = "Checked %s on %s from %s"
	gitLSRemoteHeadsFailureTemplateConstant     = "Failed to check %s on %s from %s (exit code %d%s)"
	gitLSRemoteHeadsExecutionFailureConstant    = "Unable to check %s on %s from %s: %s"
	gitLSRemoteGenericStartTemplateConstant     = "Querying remote references on %s from %s"
	gitLSRemoteGenericSuccessTemplateConstant   = "Queried remote references on %s from %s"
	gitLSRemoteGenericFailureTemplateConstant   = "Failed to query remote references on %s from %s (exit code %d%s)"
	gitLSRemoteGenericExecutionFailureConstant  = "Unable to query remote references on %s from %s: %s"
	gitAddStartTemplateConstant                 = "Staging %s in %s"
	gitAddSuccessTemplateConstant               = "Staged %s in %s"
	gitAddFailureTemplateConstant               = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant      = "Unable to stage %s in %s: %s"
	gitAddAllChangesLabelConstant               = "all changes"
	gitCommitStartTemplateConstant              = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant            = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant            = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant   = "Unable to create commit in %s with message %q: %s"
)

const (
	githubAuthSubcommandNameConstant        = "auth"
	githubAuthStatusSubcommandNameConstant  = "status"
	githubPullRequestSubcommandNameConstant = "pr"
	githubPullRequestCreateSubcommandName   = "create"
	githubPullRequestListSubcommandName     = "list"
	githubLabelSubcommandNameConstant       = "label"
	githubLabelListSubcommandNameConstant   = "list"
	githubLabelCreateSubcommandNameConstant = "create"
	githubBaseFlagConstant                  = "--base"
	githubHeadFlagConstant                  = "--head"
	githubStateFlagConstant                 = "--state"
)

const (
	githubAuthStatusStartTemplateConstant             = "Verifying GitHub CLI authentication"
	githubAuthStatusSuccessTemplateConstant           = "GitHub CLI authentication verified"
	githubAuthStatusFailureTemplateConstant           = "GitHub CLI authentication check failed (exit code %d%s)"
	githubAuthStatusExecutionFailureTemplateConstant  = "Unable to verify GitHub CLI authentication: %s"
	githubPullRequestCreateStartTemplateConstant      = "Opening pull request from %s to %s"
	githubPullRequestCreateSuccessTemplateConstant    = "Opened pull request from %s to %s"
	githubPullRequestCreateFailureTemplateConstant    = "Failed to open pull request from %s to %s (exit code %d%s)"
	githubPullRequestCreateExecutionFailureConstant   = "Unable to open pull request from %s to %s: %s"
	githubPullRequestListStartTemplateConstant        = "Listing %s pull requests for head %s"
	githubPullRequestListSuccessTemplateConstant      = "Listed %s pull requests for head %s"
	githubPullRequestListFailureTemplateConstant      = "Failed to list %s pull requests for head %s (exit code %d%s)"
	githubPullRequestListExecutionFailureConstant     = "Unable to list %s pull requests for head %s: %s"
	githubLabelListStartTemplateConstant              = "Listing repository labels"
	githubLabelListSuccessTemplateConstant            = "Listed repository labels"
	githubLabelListFailureTemplateConstant            = "Failed to list repository labels (exit code %d%s)"
	githubLabelListExecutionFailureTemplateConstant   = "Unable to list repository labels: %s"
	githubLabelCreateStartTemplateConstant            = "Creating label %s"
	githubLabelCreateSuccessTemplateConstant          = "Created label %s"
	githubLabelCreateFailureTemplateConstant          = "Failed to create label %s (exit code %d%s)"
	githubLabelCreateExecutionFailureTemplateConstant = "Unable to create label %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) shouldLogStartMessage(command ShellCommand) bool {
	if command.Name != CommandGitHub {
		return true
	}
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return true
	}
	primaryArgument := strings.TrimSpace(arguments[0])
	secondaryArgument := strings.TrimSpace(arguments[1])
	if primaryArgument == githubPullRequestSubcommandNameConstant && secondaryArgument == githubPullRequestListSubcommandName {
		return false
	}
	if primaryArgument == githubLabelSubcommandNameConstant && secondaryArgument == githubLabelListSubcommandNameConstant {
		return false
	}
	return true
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitStatusSubcommandNameConstant:
		return formatter.describeGitStatusMessage(command, result, failure, stage)
	case gitSwitchSubcommandNameConstant:
		return formatter.describeGitSwitchMessage(command, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitPullSubcommandNameConstant:
		return formatter.describeGitPullMessage(command, result, failure, stage)
	case gitMergeSubcommandNameConstant:
		return formatter.describeGitMergeMessage(command, result, failure, stage)
	case gitTagSubcommandNameConstant:
		return formatter.describeGitTagMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	case gitLogSubcommandNameConstant:
		return formatter.describeGitLogMessage(command, result, failure, stage)
	case gitDescribeSubcommandNameConstant:
		return formatter.describeGitDescribeMessage(command, result, failure, stage)
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitLSRemoteSubcommandNameConstant:
		return formatter.describeGitLSRemoteMessage(command, result, failure, stage)
	case gitAddSubcommandNameConstant:
		return formatter.describeGitAddMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitStatusMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitStatusStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitStatusSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitStatusFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitStatusExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitSwitchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	hasCreateFlag := containsArgument(arguments, gitCreateFlagConstant) || containsArgument(arguments, gitCreateShortFlagConstant)
	hasTrackFlag := containsArgument(arguments, gitTrackFlagConstant)
	positionalArguments := collectNonFlagArguments(arguments[1:])
	branchName := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 0))
	startPoint := strings.TrimSpace(formatter.argumentAtIndex(positionalArguments, 1))

	if hasCreateFlag {
		hasStartPoint := len(startPoint) > 0
		switch stage {
		case messageStageStart:
			if hasStartPoint {
				return fmt.Sprintf(gitSwitchCreateWithStartPointStartTemplateConstant, branchName, startPoint, workingDirectory)
			}
			return fmt.Sprintf(gitSwitchCreateStartTemplateConstant, branchName, workingDirectory)
		case messageStageSuccess:
			if hasStartPoint {
				return fmt.Sprintf(gitSwitchCreateWithStartPointSuccessConstant, branchName, startPoint, workingDirectory)
			}
			return fmt.Sprintf(gitSwitchCreateSuccessTemplateConstant, branchName, workingDirectory)
		case messageStageFailure:
			if hasStartPoint {
				return fmt.Sprintf(gitSwitchCreateWithStartPointFailureConstant, branchName, startPoint, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
			}
			return fmt.Sprintf(gitSwitchCreateFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			if hasStartPoint {
				return fmt.Sprintf(gitSwitchCreateWithStartPointExecutionConstant, branchName, startPoint, workingDirectory, formatter.describeFailure(failure))
			}
			return fmt.Sprintf(gitSwitchCreateExecutionFailureConstant, branchName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		if hasTrackFlag {
			return fmt.Sprintf(gitSwitchTrackedStartTemplateConstant, workingDirectory, branchName)
		}
		return fmt.Sprintf(gitSwitchStartTemplateConstant, workingDirectory, branchName)
	case messageStageSuccess:
		return fmt.Sprintf(gitSwitchSuccessTemplateConstant, workingDirectory, branchName)
	case messageStageFailure:
		return fmt.Sprintf(gitSwitchFailureTemplateConstant, workingDirectory, branchName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitSwitchExecutionFailureTemplateConstant, workingDirectory, branchName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.ensureValue(formatter.lastNonFlagArgument(arguments[1:]))
	hasDeleteFlag := containsArgument(arguments, gitDeleteFlagConstant)
	hasForceFlag := containsArgument(arguments, gitForceFlagConstant)
	hasListFlag := containsArgument(arguments, gitListFlagConstant)

	if hasDeleteFlag {
		switch stage {
		case messageStageStart:
			if hasForceFlag {
				return fmt.Sprintf(gitBranchForceDeletionStartTemplateConstant, branchName, workingDirectory)
			}
			return fmt.Sprintf(gitBranchDeletionStartTemplateConstant, branchName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitBranchDeletionSuccessTemplateConstant, branchName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitBranchDeletionFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitBranchDeletionExecutionFailureTemplateConstant, branchName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if hasListFlag {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitBranchListStartTemplateConstant, branchName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitBranchListSuccessTemplateConstant, branchName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitBranchListFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitBranchListExecutionFailureTemplateConstant, branchName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName, references := formatter.extractRemoteAndReferences(command.Details.Arguments[1:])
	trimmedRemote := strings.TrimSpace(remoteName)
	if len(trimmedRemote) == 0 {
		trimmedRemote = gitFetchAllRemotesLabelConstant
	}
	joinedReferences := formatter.joinReferences(references)

	switch stage {
	case messageStageStart:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitFetchStartTemplateConstant, joinedReferences, trimmedRemote, workingDirectory)
		}
		return fmt.Sprintf(gitFetchWithoutRefsStartTemplateConstant, trimmedRemote, workingDirectory)
	case messageStageSuccess:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitFetchSuccessTemplateConstant, joinedReferences, trimmedRemote, workingDirectory)
		}
		return fmt.Sprintf(gitFetchWithoutRefsSuccessTemplateConstant, trimmedRemote, workingDirectory)
	case messageStageFailure:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitFetchFailureTemplateConstant, joinedReferences, trimmedRemote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		}
		return fmt.Sprintf(gitFetchWithoutRefsFailureTemplateConstant, trimmedRemote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, joinedReferences, trimmedRemote, workingDirectory, formatter.describeFailure(failure))
		}
		return fmt.Sprintf(gitFetchWithoutRefsExecutionFailureTemplateConstant, trimmedRemote, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPullMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName, references := formatter.extractRemoteAndReferences(command.Details.Arguments[1:])
	trimmedRemote := formatter.ensureValue(remoteName)
	joinedReferences := formatter.joinReferences(references)

	switch stage {
	case messageStageStart:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitPullStartTemplateConstant, joinedReferences, trimmedRemote, workingDirectory)
		}
		return fmt.Sprintf(gitPullWithoutRefsStartTemplateConstant, trimmedRemote, workingDirectory)
	case messageStageSuccess:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitPullSuccessTemplateConstant, joinedReferences, trimmedRemote, workingDirectory)
		}
		return fmt.Sprintf(gitPullWithoutRefsSuccessTemplateConstant, trimmedRemote, workingDirectory)
	case messageStageFailure:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitPullFailureTemplateConstant, joinedReferences, trimmedRemote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		}
		return fmt.Sprintf(gitPullWithoutRefsFailureTemplateConstant, trimmedRemote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitPullExecutionFailureTemplateConstant, joinedReferences, trimmedRemote, workingDirectory, formatter.describeFailure(failure))
		}
		return fmt.Sprintf(gitPullWithoutRefsExecutionFailureTemplateConstant, trimmedRemote, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMergeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitAbortFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitMergeAbortStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitMergeAbortSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitMergeAbortFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitMergeAbortExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	branchName := formatter.ensureValue(formatter.lastNonFlagArgument(stripMessageFlagArguments(arguments[1:])))

	if containsArgument(arguments, gitSquashFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitMergeSquashStartTemplateConstant, branchName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitMergeSquashSuccessTemplateConstant, branchName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitMergeSquashFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitMergeSquashExecutionFailureTemplateConstant, branchName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitFastForwardFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitMergeFastForwardStartTemplateConstant, branchName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitMergeFastForwardSuccessTemplateConstant, branchName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitMergeFastForwardFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitMergeFastForwardExecutionFailureConstant, branchName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitMergeStartTemplateConstant, branchName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitMergeSuccessTemplateConstant, branchName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitMergeFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitMergeExecutionFailureTemplateConstant, branchName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitTagMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	hasListFlag := containsArgument(arguments, gitListFlagConstant)
	hasAnnotateFlag := containsArgument(arguments, gitAnnotateFlagConstant) || containsArgument(arguments, gitAnnotateShortFlagConstant)
	tagName := strings.TrimSpace(formatter.firstNonFlagArgument(stripMessageFlagArguments(arguments[1:])))

	if hasListFlag {
		hasPattern := len(tagName) > 0
		switch stage {
		case messageStageStart:
			if hasPattern {
				return fmt.Sprintf(gitTagListStartTemplateConstant, tagName, workingDirectory)
			}
			return fmt.Sprintf(gitTagListWithoutPatternStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			if hasPattern {
				return fmt.Sprintf(gitTagListSuccessTemplateConstant, tagName, workingDirectory)
			}
			return fmt.Sprintf(gitTagListWithoutPatternSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			if hasPattern {
				return fmt.Sprintf(gitTagListFailureTemplateConstant, tagName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
			}
			return fmt.Sprintf(gitTagListWithoutPatternFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			if hasPattern {
				return fmt.Sprintf(gitTagListExecutionFailureTemplateConstant, tagName, workingDirectory, formatter.describeFailure(failure))
			}
			return fmt.Sprintf(gitTagListWithoutPatternExecutionConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	trimmedTag := formatter.ensureValue(tagName)
	switch stage {
	case messageStageStart:
		if hasAnnotateFlag {
			return fmt.Sprintf(gitTagAnnotatedCreationStartTemplateConstant, trimmedTag, workingDirectory)
		}
		return fmt.Sprintf(gitTagCreationStartTemplateConstant, trimmedTag, workingDirectory)
	case messageStageSuccess:
		if hasAnnotateFlag {
			return fmt.Sprintf(gitTagAnnotatedCreationSuccessTemplateConstant, trimmedTag, workingDirectory)
		}
		return fmt.Sprintf(gitTagCreationSuccessTemplateConstant, trimmedTag, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitTagCreationFailureTemplateConstant, trimmedTag, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitTagCreationExecutionFailureTemplateConstant, trimmedTag, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments
	deletionTarget := strings.TrimSpace(formatter.extractDeletionTarget(arguments))
	hasUpstreamFlag := containsArgument(arguments, gitSetUpstreamFlagConstant)
	remoteName, references := formatter.extractRemoteAndReferences(arguments[1:])
	trimmedRemote := formatter.ensureValue(remoteName)

	if len(deletionTarget) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitPushDeletionStartTemplateConstant, deletionTarget, trimmedRemote, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitPushDeletionSuccessTemplateConstant, deletionTarget, trimmedRemote, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitPushDeletionFailureTemplateConstant, deletionTarget, trimmedRemote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitPushDeletionExecutionFailureTemplateConstant, deletionTarget, trimmedRemote, workingDirectory, formatter.describeFailure(failure))
		}
	}

	pushedReference := formatter.ensureValue(formatter.joinReferences(references))
	switch stage {
	case messageStageStart:
		if hasUpstreamFlag {
			return fmt.Sprintf(gitPushUpstreamStartTemplateConstant, pushedReference, trimmedRemote, workingDirectory)
		}
		return fmt.Sprintf(gitPushStartTemplateConstant, pushedReference, trimmedRemote, workingDirectory)
	case messageStageSuccess:
		if hasUpstreamFlag {
			return fmt.Sprintf(gitPushUpstreamSuccessTemplateConstant, pushedReference, trimmedRemote, workingDirectory)
		}
		return fmt.Sprintf(gitPushSuccessTemplateConstant, pushedReference, trimmedRemote, workingDirectory)
	case messageStageFailure:
		if hasUpstreamFlag {
			return fmt.Sprintf(gitPushUpstreamFailureTemplateConstant, pushedReference, trimmedRemote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		}
		return fmt.Sprintf(gitPushFailureTemplateConstant, pushedReference, trimmedRemote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		if hasUpstreamFlag {
			return fmt.Sprintf(gitPushUpstreamExecutionFailureConstant, pushedReference, trimmedRemote, workingDirectory, formatter.describeFailure(failure))
		}
		return fmt.Sprintf(gitPushExecutionFailureTemplateConstant, pushedReference, trimmedRemote, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitLogMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	revisionRange := strings.TrimSpace(formatter.firstNonFlagArgument(command.Details.Arguments[1:]))
	hasRange := len(revisionRange) > 0

	switch stage {
	case messageStageStart:
		if hasRange {
			return fmt.Sprintf(gitLogStartTemplateConstant, revisionRange, workingDirectory)
		}
		return fmt.Sprintf(gitLogWithoutRangeStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		if hasRange {
			return fmt.Sprintf(gitLogSuccessTemplateConstant, revisionRange, workingDirectory)
		}
		return fmt.Sprintf(gitLogWithoutRangeSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		if hasRange {
			return fmt.Sprintf(gitLogFailureTemplateConstant, revisionRange, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		}
		return fmt.Sprintf(gitLogWithoutRangeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		if hasRange {
			return fmt.Sprintf(gitLogExecutionFailureTemplateConstant, revisionRange, workingDirectory, formatter.describeFailure(failure))
		}
		return fmt.Sprintf(gitLogWithoutRangeExecutionFailureConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitDescribeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitDescribeStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		trimmedOutput := strings.TrimSpace(result.StandardOutput)
		if len(trimmedOutput) == 0 {
			return fmt.Sprintf(gitDescribeEmptySuccessTemplateConstant, workingDirectory)
		}
		return fmt.Sprintf(gitDescribeSuccessTemplateConstant, workingDirectory, trimmedOutput)
	case messageStageFailure:
		return fmt.Sprintf(gitDescribeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitDescribeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitWorkTreeFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitAbbrevRefFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			trimmedOutput := strings.TrimSpace(result.StandardOutput)
			if strings.EqualFold(trimmedOutput, gitHeadReferenceConstant) || len(trimmedOutput) == 0 {
				return fmt.Sprintf(gitCurrentBranchDetachedSuccessTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory, trimmedOutput)
		case messageStageFailure:
			return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCurrentBranchExecutionFailureConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	reference := formatter.resolveRevisionReference(arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRevisionStartTemplateConstant, reference, workingDirectory)
	case messageStageSuccess:
		trimmedOutput := strings.TrimSpace(result.StandardOutput)
		if len(trimmedOutput) == 0 {
			return fmt.Sprintf(gitRevisionEmptySuccessTemplateConstant, reference, workingDirectory)
		}
		return fmt.Sprintf(gitRevisionSuccessTemplateConstant, reference, workingDirectory, trimmedOutput)
	case messageStageFailure:
		return fmt.Sprintf(gitRevisionFailureTemplateConstant, reference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRevisionExecutionFailureTemplateConstant, reference, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitLSRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments
	positionalArguments := collectNonFlagArguments(arguments[1:])
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 0))
	reference := strings.TrimSpace(formatter.argumentAtIndex(positionalArguments, 1))
	listsHeads := containsArgument(arguments, gitHeadsFlagConstant)

	if listsHeads && len(reference) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitLSRemoteHeadsStartTemplateConstant, reference, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitLSRemoteHeadsSuccessTemplateConstant, reference, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitLSRemoteHeadsFailureTemplateConstant, reference, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitLSRemoteHeadsExecutionFailureConstant, reference, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitLSRemoteGenericStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitLSRemoteGenericSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitLSRemoteGenericFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitLSRemoteGenericExecutionFailureConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments
	targetLabel := strings.TrimSpace(formatter.firstNonFlagArgument(arguments[1:]))
	if containsArgument(arguments, gitAllFlagConstant) || containsArgument(arguments, gitAllShortFlagConstant) || len(targetLabel) == 0 {
		targetLabel = gitAddAllChangesLabelConstant
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAddStartTemplateConstant, targetLabel, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitAddSuccessTemplateConstant, targetLabel, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitAddFailureTemplateConstant, targetLabel, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, targetLabel, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	commitMessage := formatter.extractCommitMessage(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectory, commitMessage, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	primaryArgument := strings.TrimSpace(arguments[0])
	switch primaryArgument {
	case githubAuthSubcommandNameConstant:
		return formatter.describeGitHubAuthMessage(command, result, failure, stage)
	case githubPullRequestSubcommandNameConstant:
		return formatter.describeGitHubPullRequestMessage(command, result, failure, stage)
	case githubLabelSubcommandNameConstant:
		return formatter.describeGitHubLabelMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubAuthMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || strings.TrimSpace(arguments[1]) != githubAuthStatusSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return githubAuthStatusStartTemplateConstant
	case messageStageSuccess:
		return githubAuthStatusSuccessTemplateConstant
	case messageStageFailure:
		return fmt.Sprintf(githubAuthStatusFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubAuthStatusExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubPullRequestMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[1])
	switch subcommand {
	case githubPullRequestCreateSubcommandName:
		headBranch := formatter.ensureValue(findFlagValue(arguments, githubHeadFlagConstant))
		baseBranch := formatter.ensureValue(findFlagValue(arguments, githubBaseFlagConstant))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubPullRequestCreateStartTemplateConstant, headBranch, baseBranch)
		case messageStageSuccess:
			return fmt.Sprintf(githubPullRequestCreateSuccessTemplateConstant, headBranch, baseBranch)
		case messageStageFailure:
			return fmt.Sprintf(githubPullRequestCreateFailureTemplateConstant, headBranch, baseBranch, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubPullRequestCreateExecutionFailureConstant, headBranch, baseBranch, formatter.describeFailure(failure))
		}
	case githubPullRequestListSubcommandName:
		pullRequestState := formatter.ensureValue(findFlagValue(arguments, githubStateFlagConstant))
		headBranch := formatter.ensureValue(findFlagValue(arguments, githubHeadFlagConstant))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubPullRequestListStartTemplateConstant, pullRequestState, headBranch)
		case messageStageSuccess:
			return fmt.Sprintf(githubPullRequestListSuccessTemplateConstant, pullRequestState, headBranch)
		case messageStageFailure:
			return fmt.Sprintf(githubPullRequestListFailureTemplateConstant, pullRequestState, headBranch, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubPullRequestListExecutionFailureConstant, pullRequestState, headBranch, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitHubLabelMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[1])
	switch subcommand {
	case githubLabelListSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return githubLabelListStartTemplateConstant
		case messageStageSuccess:
			return githubLabelListSuccessTemplateConstant
		case messageStageFailure:
			return fmt.Sprintf(githubLabelListFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubLabelListExecutionFailureTemplateConstant, formatter.describeFailure(failure))
		}
	case githubLabelCreateSubcommandNameConstant:
		labelName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubLabelCreateStartTemplateConstant, labelName)
		case messageStageSuccess:
			return fmt.Sprintf(githubLabelCreateSuccessTemplateConstant, labelName)
		case messageStageFailure:
			return fmt.Sprintf(githubLabelCreateFailureTemplateConstant, labelName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubLabelCreateExecutionFailureTemplateConstant, labelName, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(messageLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) resolveRevisionReference(arguments []string) string {
	if len(arguments) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	lastArgument := strings.TrimSpace(arguments[len(arguments)-1])
	if len(lastArgument) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return lastArgument
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}

func (formatter CommandMessageFormatter) firstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) lastNonFlagArgument(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		trimmedArgument := strings.TrimSpace(arguments[index])
		if len(trimmedArgument) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractRemoteAndReferences(arguments []string) (string, []string) {
	remoteName := emptyStringConstant
	references := []string{}
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		if len(remoteName) == 0 {
			remoteName = trimmedArgument
			continue
		}
		references = append(references, trimmedArgument)
	}
	return remoteName, references
}

func (formatter CommandMessageFormatter) joinReferences(references []string) string {
	cleanedReferences := make([]string, 0, len(references))
	for _, reference := range references {
		trimmedReference := strings.TrimSpace(reference)
		if len(trimmedReference) == 0 {
			continue
		}
		cleanedReferences = append(cleanedReferences, trimmedReference)
	}
	return strings.Join(cleanedReferences, ", ")
}

func (formatter CommandMessageFormatter) extractDeletionTarget(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == gitDeleteFlagConstant && index+1 < len(arguments) {
			return arguments[index+1]
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == gitMessageFlagConstant && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return fallbackUnknownValueLabelConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func collectNonFlagArguments(arguments []string) []string {
	collected := []string{}
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		collected = append(collected, trimmedArgument)
	}
	return collected
}

func stripMessageFlagArguments(arguments []string) []string {
	stripped := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == gitMessageFlagConstant {
			index++
			continue
		}
		stripped = append(stripped, arguments[index])
	}
	return stripped
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
