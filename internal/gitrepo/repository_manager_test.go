package gitrepo_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitlink/internal/execshell"
	"github.com/temirov/gitlink/internal/gitrepo"
)

const (
	workingDirectoryConstant = "/workspace/project/src"
	worktreeRootConstant     = "/workspace/project"
	featureBranchConstant    = "feature/url-resolution"
	headCommitConstant       = "2f1c4ab8a4f9d2f5c6e7b8a9d0e1f2a3b4c5d6e7"
	originRemoteConstant     = "origin"
	originURLConstant        = "git@github.com:temirov/gitlink.git"
)

type stubGitExecutor struct {
	recordedCommands []execshell.CommandDetails
	result           execshell.ExecutionResult
	executionError   error
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	if executor.executionError != nil {
		return execshell.ExecutionResult{}, executor.executionError
	}
	return executor.result, nil
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	manager, creationError := gitrepo.NewRepositoryManager(nil)

	require.Nil(testInstance, manager)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrExecutorNotConfigured)
}

func TestRepositoryManagerQueries(testInstance *testing.T) {
	testCases := []struct {
		name              string
		executorOutput    string
		query             func(manager *gitrepo.RepositoryManager, executionContext context.Context) (string, error)
		expectedArguments []string
		expectedValue     string
	}{
		{
			name:           "toplevel_trims_output",
			executorOutput: worktreeRootConstant + "\n",
			query: func(manager *gitrepo.RepositoryManager, executionContext context.Context) (string, error) {
				return manager.Toplevel(executionContext, workingDirectoryConstant)
			},
			expectedArguments: []string{"rev-parse", "--show-toplevel"},
			expectedValue:     worktreeRootConstant,
		},
		{
			name:           "current_branch_trims_output",
			executorOutput: featureBranchConstant + "\n",
			query: func(manager *gitrepo.RepositoryManager, executionContext context.Context) (string, error) {
				return manager.CurrentBranch(executionContext, workingDirectoryConstant)
			},
			expectedArguments: []string{"rev-parse", "--abbrev-ref", "HEAD"},
			expectedValue:     featureBranchConstant,
		},
		{
			name:           "current_commit_trims_output",
			executorOutput: headCommitConstant + "\n",
			query: func(manager *gitrepo.RepositoryManager, executionContext context.Context) (string, error) {
				return manager.CurrentCommit(executionContext, workingDirectoryConstant)
			},
			expectedArguments: []string{"rev-parse", "HEAD"},
			expectedValue:     headCommitConstant,
		},
		{
			name:           "remote_url_trims_output",
			executorOutput: originURLConstant + "\n",
			query: func(manager *gitrepo.RepositoryManager, executionContext context.Context) (string, error) {
				return manager.RemoteURL(executionContext, workingDirectoryConstant, originRemoteConstant)
			},
			expectedArguments: []string{"remote", "get-url", originRemoteConstant},
			expectedValue:     originURLConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{result: execshell.ExecutionResult{StandardOutput: testCase.executorOutput}}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			value, queryError := testCase.query(manager, context.Background())

			require.NoError(testInstance, queryError)
			require.Equal(testInstance, testCase.expectedValue, value)
			require.Len(testInstance, executor.recordedCommands, 1)
			require.Equal(testInstance, testCase.expectedArguments, executor.recordedCommands[0].Arguments)
			require.Equal(testInstance, workingDirectoryConstant, executor.recordedCommands[0].WorkingDirectory)
		})
	}
}

func TestRepositoryManagerIsWorkingCopy(testInstance *testing.T) {
	failedCommand := execshell.ShellCommand{Name: execshell.CommandGit}

	testCases := []struct {
		name           string
		executorOutput string
		executionError error
		expectedResult bool
		expectError    bool
	}{
		{
			name:           "inside_worktree_reports_true",
			executorOutput: "true\n",
			expectedResult: true,
		},
		{
			name:           "outside_worktree_reports_false",
			executorOutput: "false\n",
			expectedResult: false,
		},
		{
			name:           "command_failure_reports_false_without_error",
			executionError: execshell.CommandFailedError{Command: failedCommand, Result: execshell.ExecutionResult{ExitCode: 128}},
			expectedResult: false,
		},
		{
			name:           "execution_failure_propagates_error",
			executionError: execshell.CommandExecutionError{Command: failedCommand, Cause: errors.New("git binary missing")},
			expectError:    true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{
				result:         execshell.ExecutionResult{StandardOutput: testCase.executorOutput},
				executionError: testCase.executionError,
			}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			insideWorktree, queryError := manager.IsWorkingCopy(context.Background(), workingDirectoryConstant)

			if testCase.expectError {
				require.Error(testInstance, queryError)
				return
			}
			require.NoError(testInstance, queryError)
			require.Equal(testInstance, testCase.expectedResult, insideWorktree)
			require.Len(testInstance, executor.recordedCommands, 1)
			require.Equal(
				testInstance,
				"rev-parse --is-inside-work-tree",
				strings.Join(executor.recordedCommands[0].Arguments, " "),
			)
		})
	}
}
