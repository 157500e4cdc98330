package hgrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitlink/internal/execshell"
	"github.com/temirov/gitlink/internal/hgrepo"
)

const (
	workingDirectoryConstant = "/workspace/project/src"
	repositoryRootConstant   = "/workspace/project"
	defaultBranchConstant    = "default"
	changesetConstant        = "8f2a1c0d4e5b"
	defaultAliasConstant     = "default"
	defaultPathURLConstant   = "ssh://hg@bitbucket.org/team/project"
)

type stubMercurialExecutor struct {
	recordedCommands []execshell.CommandDetails
	result           execshell.ExecutionResult
	executionError   error
}

func (executor *stubMercurialExecutor) ExecuteMercurial(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	if executor.executionError != nil {
		return execshell.ExecutionResult{}, executor.executionError
	}
	return executor.result, nil
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	manager, creationError := hgrepo.NewRepositoryManager(nil)

	require.Nil(testInstance, manager)
	require.ErrorIs(testInstance, creationError, hgrepo.ErrExecutorNotConfigured)
}

func TestRepositoryManagerQueries(testInstance *testing.T) {
	testCases := []struct {
		name              string
		executorOutput    string
		query             func(manager *hgrepo.RepositoryManager, executionContext context.Context) (string, error)
		expectedArguments []string
		expectedValue     string
	}{
		{
			name:           "root_trims_output",
			executorOutput: repositoryRootConstant + "\n",
			query: func(manager *hgrepo.RepositoryManager, executionContext context.Context) (string, error) {
				return manager.Root(executionContext, workingDirectoryConstant)
			},
			expectedArguments: []string{"root"},
			expectedValue:     repositoryRootConstant,
		},
		{
			name:           "current_branch_trims_output",
			executorOutput: defaultBranchConstant + "\n",
			query: func(manager *hgrepo.RepositoryManager, executionContext context.Context) (string, error) {
				return manager.CurrentBranch(executionContext, workingDirectoryConstant)
			},
			expectedArguments: []string{"branch"},
			expectedValue:     defaultBranchConstant,
		},
		{
			name:           "current_changeset_trims_output",
			executorOutput: changesetConstant + "\n",
			query: func(manager *hgrepo.RepositoryManager, executionContext context.Context) (string, error) {
				return manager.CurrentChangeset(executionContext, workingDirectoryConstant)
			},
			expectedArguments: []string{"identify", "--id"},
			expectedValue:     changesetConstant,
		},
		{
			name:           "current_changeset_strips_dirty_marker",
			executorOutput: changesetConstant + "+\n",
			query: func(manager *hgrepo.RepositoryManager, executionContext context.Context) (string, error) {
				return manager.CurrentChangeset(executionContext, workingDirectoryConstant)
			},
			expectedArguments: []string{"identify", "--id"},
			expectedValue:     changesetConstant,
		},
		{
			name:           "path_url_trims_output",
			executorOutput: defaultPathURLConstant + "\n",
			query: func(manager *hgrepo.RepositoryManager, executionContext context.Context) (string, error) {
				return manager.PathURL(executionContext, workingDirectoryConstant, defaultAliasConstant)
			},
			expectedArguments: []string{"paths", defaultAliasConstant},
			expectedValue:     defaultPathURLConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubMercurialExecutor{result: execshell.ExecutionResult{StandardOutput: testCase.executorOutput}}
			manager, creationError := hgrepo.NewRepositoryManager(executor)
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
	failedCommand := execshell.ShellCommand{Name: execshell.CommandMercurial}

	testCases := []struct {
		name           string
		executionError error
		expectedResult bool
		expectError    bool
	}{
		{
			name:           "inside_repository_reports_true",
			expectedResult: true,
		},
		{
			name:           "command_failure_reports_false_without_error",
			executionError: execshell.CommandFailedError{Command: failedCommand, Result: execshell.ExecutionResult{ExitCode: 255}},
			expectedResult: false,
		},
		{
			name:           "execution_failure_propagates_error",
			executionError: execshell.CommandExecutionError{Command: failedCommand, Cause: errors.New("hg binary missing")},
			expectError:    true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubMercurialExecutor{
				result:         execshell.ExecutionResult{StandardOutput: repositoryRootConstant + "\n"},
				executionError: testCase.executionError,
			}
			manager, creationError := hgrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			insideRepository, queryError := manager.IsWorkingCopy(context.Background(), workingDirectoryConstant)

			if testCase.expectError {
				require.Error(testInstance, queryError)
				return
			}
			require.NoError(testInstance, queryError)
			require.Equal(testInstance, testCase.expectedResult, insideRepository)
		})
	}
}
