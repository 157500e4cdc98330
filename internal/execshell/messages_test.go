package execshell_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitlink/internal/execshell"
)

const (
	testMessagesWorkingDirectoryConstant = "/workspace/project"
)

func TestCommandMessageFormatterDescribesKnownSubcommands(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         execshell.ShellCommand
		result          execshell.ExecutionResult
		expectedStart   string
		expectedSuccess string
	}{
		{
			name: "git_worktree_probe",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"rev-parse", "--is-inside-work-tree"}, WorkingDirectory: testMessagesWorkingDirectoryConstant},
			},
			result:          execshell.ExecutionResult{StandardOutput: "true\n"},
			expectedStart:   "Analyzing repository at /workspace/project",
			expectedSuccess: "/workspace/project is a Git repository",
		},
		{
			name: "git_toplevel",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"rev-parse", "--show-toplevel"}, WorkingDirectory: testMessagesWorkingDirectoryConstant},
			},
			result:          execshell.ExecutionResult{StandardOutput: "/workspace/project\n"},
			expectedStart:   "Locating worktree root for /workspace/project",
			expectedSuccess: "Worktree root for /workspace/project is /workspace/project",
		},
		{
			name: "git_current_branch",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"rev-parse", "--abbrev-ref", "HEAD"}, WorkingDirectory: testMessagesWorkingDirectoryConstant},
			},
			result:          execshell.ExecutionResult{StandardOutput: "main\n"},
			expectedStart:   "Identifying current branch in /workspace/project",
			expectedSuccess: "Current branch in /workspace/project is main",
		},
		{
			name: "git_remote_lookup",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"remote", "get-url", "origin"}, WorkingDirectory: testMessagesWorkingDirectoryConstant},
			},
			result:          execshell.ExecutionResult{StandardOutput: "git@github.com:acme/widget.git\n"},
			expectedStart:   "Checking origin remote for /workspace/project",
			expectedSuccess: "origin remote for /workspace/project points to git@github.com:acme/widget.git",
		},
		{
			name: "mercurial_root",
			command: execshell.ShellCommand{
				Name:    execshell.CommandMercurial,
				Details: execshell.CommandDetails{Arguments: []string{"root"}, WorkingDirectory: testMessagesWorkingDirectoryConstant},
			},
			result:          execshell.ExecutionResult{StandardOutput: "/workspace/project\n"},
			expectedStart:   "Locating Mercurial root for /workspace/project",
			expectedSuccess: "Mercurial root for /workspace/project is /workspace/project",
		},
		{
			name: "mercurial_paths_alias",
			command: execshell.ShellCommand{
				Name:    execshell.CommandMercurial,
				Details: execshell.CommandDetails{Arguments: []string{"paths", "default"}, WorkingDirectory: testMessagesWorkingDirectoryConstant},
			},
			result:          execshell.ExecutionResult{StandardOutput: "https://user@bitbucket.org/acme/widget\n"},
			expectedStart:   "Checking default path alias for /workspace/project",
			expectedSuccess: "default path alias for /workspace/project points to https://user@bitbucket.org/acme/widget",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedStart, formatter.BuildStartedMessage(testCase.command))
			require.Equal(testInstance, testCase.expectedSuccess, formatter.BuildCompletionMessage(testCase.command, testCase.result))
		})
	}
}

func TestCommandMessageFormatterFailureIncludesStandardError(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"rev-parse", "--abbrev-ref", "HEAD"}, WorkingDirectory: testMessagesWorkingDirectoryConstant},
	}

	message := formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"})
	require.Equal(testInstance, "Failed to identify current branch in /workspace/project (exit code 128: fatal: not a git repository)", message)
}

func TestCommandMessageFormatterGenericFallback(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"status"}, WorkingDirectory: testMessagesWorkingDirectoryConstant},
	}

	require.Equal(testInstance, "Running git status (in /workspace/project)", formatter.BuildStartedMessage(command))
	require.Equal(testInstance, "Completed git status (in /workspace/project)", formatter.BuildSuccessMessage(command))
}
