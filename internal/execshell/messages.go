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
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant     = "rev-parse"
	gitWorkTreeFlagConstant               = "--is-inside-work-tree"
	gitShowToplevelFlagConstant           = "--show-toplevel"
	gitAbbrevRefFlagConstant              = "--abbrev-ref"
	gitHeadReferenceConstant              = "HEAD"
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteGetURLSubcommandNameConstant = "get-url"
)

const (
	mercurialRootSubcommandNameConstant     = "root"
	mercurialBranchSubcommandNameConstant   = "branch"
	mercurialIdentifySubcommandNameConstant = "identify"
	mercurialPathsSubcommandNameConstant    = "paths"
)

const (
	gitWorkTreeStartTemplateConstant                 = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant               = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant               = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant      = "Could not analyze %s: %s"
	gitToplevelStartTemplateConstant                 = "Locating worktree root for %s"
	gitToplevelSuccessTemplateConstant               = "Worktree root for %s is %s"
	gitToplevelFailureTemplateConstant               = "Failed to locate worktree root for %s (exit code %d%s)"
	gitToplevelExecutionFailureTemplateConstant      = "Unable to locate worktree root for %s: %s"
	gitCurrentBranchStartTemplateConstant            = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant          = "Current branch in %s is %s"
	gitCurrentBranchDetachedSuccessTemplateConstant  = "%s is in a detached HEAD state"
	gitCurrentBranchFailureTemplateConstant          = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant = "Unable to identify current branch in %s: %s"
	gitRevisionStartTemplateConstant                 = "Resolving %s in %s"
	gitRevisionSuccessTemplateConstant               = "%s in %s resolved to %s"
	gitRevisionEmptySuccessTemplateConstant          = "%s in %s did not resolve to a revision"
	gitRevisionFailureTemplateConstant               = "Failed to resolve %s in %s (exit code %d%s)"
	gitRevisionExecutionFailureTemplateConstant      = "Unable to resolve %s in %s: %s"
	gitRemoteLookupStartTemplateConstant             = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant           = "%s remote for %s points to %s"
	gitRemoteLookupFailureTemplateConstant           = "Failed to read %s remote for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplateConstant  = "Unable to read %s remote for %s: %s"
)

const (
	mercurialRootStartTemplateConstant                = "Locating Mercurial root for %s"
	mercurialRootSuccessTemplateConstant              = "Mercurial root for %s is %s"
	mercurialRootFailureTemplateConstant              = "Could not confirm %s is a Mercurial repository (exit code %d%s)"
	mercurialRootExecutionFailureTemplateConstant     = "Could not analyze %s: %s"
	mercurialBranchStartTemplateConstant              = "Identifying Mercurial branch in %s"
	mercurialBranchSuccessTemplateConstant            = "Mercurial branch in %s is %s"
	mercurialBranchFailureTemplateConstant            = "Failed to identify Mercurial branch in %s (exit code %d%s)"
	mercurialBranchExecutionFailureTemplateConstant   = "Unable to identify Mercurial branch in %s: %s"
	mercurialIdentifyStartTemplateConstant            = "Identifying Mercurial changeset in %s"
	mercurialIdentifySuccessTemplateConstant          = "Mercurial changeset in %s is %s"
	mercurialIdentifyFailureTemplateConstant          = "Failed to identify Mercurial changeset in %s (exit code %d%s)"
	mercurialIdentifyExecutionFailureTemplateConstant = "Unable to identify Mercurial changeset in %s: %s"
	mercurialPathsStartTemplateConstant               = "Checking %s path alias for %s"
	mercurialPathsSuccessTemplateConstant             = "%s path alias for %s points to %s"
	mercurialPathsFailureTemplateConstant             = "Failed to read %s path alias for %s (exit code %d%s)"
	mercurialPathsExecutionFailureTemplateConstant    = "Unable to read %s path alias for %s: %s"
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

// BuildCompletionMessage formats the success message while retaining the command output for context.
func (formatter CommandMessageFormatter) BuildCompletionMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandMercurial:
		return formatter.describeMercurialMessage(command, result, failure, stage)
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
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
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

	if containsArgument(arguments, gitShowToplevelFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitToplevelStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitToplevelSuccessTemplateConstant, workingDirectory, formatter.ensureValue(result.StandardOutput))
		case messageStageFailure:
			return fmt.Sprintf(gitToplevelFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitToplevelExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitAbbrevRefFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			trimmed := strings.TrimSpace(result.StandardOutput)
			if strings.EqualFold(trimmed, gitHeadReferenceConstant) || len(trimmed) == 0 {
				return fmt.Sprintf(gitCurrentBranchDetachedSuccessTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory, trimmed)
		case messageStageFailure:
			return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCurrentBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	reference := formatter.resolveRevisionReference(arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRevisionStartTemplateConstant, reference, workingDirectory)
	case messageStageSuccess:
		trimmed := strings.TrimSpace(result.StandardOutput)
		if len(trimmed) == 0 {
			return fmt.Sprintf(gitRevisionEmptySuccessTemplateConstant, reference, workingDirectory)
		}
		return fmt.Sprintf(gitRevisionSuccessTemplateConstant, reference, workingDirectory, trimmed)
	case messageStageFailure:
		return fmt.Sprintf(gitRevisionFailureTemplateConstant, reference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRevisionExecutionFailureTemplateConstant, reference, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if len(arguments) > 1 && strings.TrimSpace(arguments[1]) == gitRemoteGetURLSubcommandNameConstant {
		remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
		remoteURL := strings.TrimSpace(result.StandardOutput)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory, formatter.ensureValue(remoteURL))
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteLookupExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeMercurialMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	subcommand := strings.TrimSpace(command.Details.Arguments[0])

	switch subcommand {
	case mercurialRootSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(mercurialRootStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(mercurialRootSuccessTemplateConstant, workingDirectory, formatter.ensureValue(result.StandardOutput))
		case messageStageFailure:
			return fmt.Sprintf(mercurialRootFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(mercurialRootExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	case mercurialBranchSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(mercurialBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(mercurialBranchSuccessTemplateConstant, workingDirectory, formatter.ensureValue(result.StandardOutput))
		case messageStageFailure:
			return fmt.Sprintf(mercurialBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(mercurialBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	case mercurialIdentifySubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(mercurialIdentifyStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(mercurialIdentifySuccessTemplateConstant, workingDirectory, formatter.ensureValue(result.StandardOutput))
		case messageStageFailure:
			return fmt.Sprintf(mercurialIdentifyFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(mercurialIdentifyExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	case mercurialPathsSubcommandNameConstant:
		aliasName := formatter.ensureValue(formatter.argumentAtIndex(command.Details.Arguments, 1))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(mercurialPathsStartTemplateConstant, aliasName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(mercurialPathsSuccessTemplateConstant, aliasName, workingDirectory, formatter.ensureValue(result.StandardOutput))
		case messageStageFailure:
			return fmt.Sprintf(mercurialPathsFailureTemplateConstant, aliasName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(mercurialPathsExecutionFailureTemplateConstant, aliasName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatFullCommandLabel(command)
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

func (formatter CommandMessageFormatter) formatFullCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
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
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
