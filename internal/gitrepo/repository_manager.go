package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/gitlink/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "git executor not configured"
	revParseSubcommandConstant           = "rev-parse"
	isInsideWorkTreeFlagConstant         = "--is-inside-work-tree"
	showToplevelFlagConstant             = "--show-toplevel"
	abbrevRefFlagConstant                = "--abbrev-ref"
	headReferenceConstant                = "HEAD"
	remoteSubcommandConstant             = "remote"
	remoteGetURLSubcommandConstant       = "get-url"
	insideWorkTreeOutputConstant         = "true"
)

// ErrExecutorNotConfigured reports a missing command executor dependency.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager reads Git working-copy metadata through an executor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// IsWorkingCopy reports whether the directory belongs to a Git worktree.
func (manager *RepositoryManager) IsWorkingCopy(executionContext context.Context, directory string) (bool, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, isInsideWorkTreeFlagConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		failedError := execshell.CommandFailedError{}
		if errors.As(executionError, &failedError) {
			return false, nil
		}
		return false, executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput) == insideWorkTreeOutputConstant, nil
}

// Toplevel returns the absolute path of the worktree root containing the directory.
func (manager *RepositoryManager) Toplevel(executionContext context.Context, directory string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, showToplevelFlagConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CurrentBranch returns the checked-out branch name, or "HEAD" when detached.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, directory string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, abbrevRefFlagConstant, headReferenceConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CurrentCommit returns the full HEAD commit hash.
func (manager *RepositoryManager) CurrentCommit(executionContext context.Context, directory string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, headReferenceConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// RemoteURL returns the fetch URL configured for the named remote.
func (manager *RepositoryManager) RemoteURL(executionContext context.Context, directory string, remoteName string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{remoteSubcommandConstant, remoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}
