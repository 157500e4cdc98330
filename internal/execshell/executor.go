package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	gitToolNameConstant                       = "git"
	mercurialToolNameConstant                 = "hg"
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	commandFailedErrorTemplateConstant        = "%s failed with exit code %d%s"
	commandExecutionErrorTemplateConstant     = "%s failed: %s"
	commandLabelJoinSeparatorConstant         = " "
	standardErrorDetailTemplateConstant       = ": %s"
	unknownCauseMessageConstant               = "unknown error"
)

// CommandName identifies a supported executable.
type CommandName string

// Supported executables.
const (
	CommandGit       CommandName = CommandName(gitToolNameConstant)
	CommandMercurial CommandName = CommandName(mercurialToolNameConstant)
)

// CommandDetails describes a single tool invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand combines a CommandName with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Initialization validation errors surfaced by NewShellExecutor.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError indicates a command completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including trailing standard error output.
func (failedError CommandFailedError) Error() string {
	return fmt.Sprintf(
		commandFailedErrorTemplateConstant,
		formatCommandLabel(failedError.Command),
		failedError.Result.ExitCode,
		formatStandardErrorDetail(failedError.Result.StandardError),
	)
}

// CommandExecutionError indicates a command could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	causeMessage := unknownCauseMessageConstant
	if executionError.Cause != nil {
		causeMessage = executionError.Cause.Error()
	}
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, formatCommandLabel(executionError.Command), causeMessage)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor coordinates command execution, structured logging, and lifecycle observation.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs an executor with the required logger and runner collaborators.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, runner, noopCommandEventObserver{})
}

// NewShellExecutorWithObserver constructs an executor that additionally notifies the provided observer.
func NewShellExecutorWithObserver(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if observer == nil {
		observer = noopCommandEventObserver{}
	}

	return &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observer:  observer,
		formatter: CommandMessageFormatter{},
	}, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecuteMercurial runs hg with the provided details.
func (executor *ShellExecutor) ExecuteMercurial(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandMercurial, Details: details})
}

// Execute runs the supplied command, logging lifecycle events and translating failures into typed errors.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Info(executor.formatter.BuildStartedMessage(command))
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, runError))
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(executor.formatter.BuildFailureMessage(command, executionResult))
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Info(executor.formatter.BuildCompletionMessage(command, executionResult))
	return executionResult, nil
}

func formatCommandLabel(command ShellCommand) string {
	labelParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		labelParts = append(labelParts, command.Details.Arguments...)
	}
	return strings.Join(labelParts, commandLabelJoinSeparatorConstant)
}

func formatStandardErrorDetail(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorDetailTemplateConstant, trimmedStandardError)
}
