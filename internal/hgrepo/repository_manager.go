package hgrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/gitlink/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "mercurial executor not configured"
	rootSubcommandConstant               = "root"
	branchSubcommandConstant             = "branch"
	identifySubcommandConstant           = "identify"
	identifyIDFlagConstant               = "--id"
	pathsSubcommandConstant              = "paths"
	dirtyChangesetSuffixConstant         = "+"
)

// ErrExecutorNotConfigured reports a missing command executor dependency.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// MercurialExecutor exposes the subset of shell execution used by the repository manager.
type MercurialExecutor interface {
	ExecuteMercurial(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager reads Mercurial working-copy metadata through an executor.
type RepositoryManager struct {
	executor MercurialExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor MercurialExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// IsWorkingCopy reports whether the directory belongs to a Mercurial repository.
func (manager *RepositoryManager) IsWorkingCopy(executionContext context.Context, directory string) (bool, error) {
	_, executionError := manager.executor.ExecuteMercurial(executionContext, execshell.CommandDetails{
		Arguments:        []string{rootSubcommandConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		failedError := execshell.CommandFailedError{}
		if errors.As(executionError, &failedError) {
			return false, nil
		}
		return false, executionError
	}
	return true, nil
}

// Root returns the absolute path of the repository root containing the directory.
func (manager *RepositoryManager) Root(executionContext context.Context, directory string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteMercurial(executionContext, execshell.CommandDetails{
		Arguments:        []string{rootSubcommandConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CurrentBranch returns the active branch name.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, directory string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteMercurial(executionContext, execshell.CommandDetails{
		Arguments:        []string{branchSubcommandConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CurrentChangeset returns the working-directory changeset identifier without the dirty marker.
func (manager *RepositoryManager) CurrentChangeset(executionContext context.Context, directory string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteMercurial(executionContext, execshell.CommandDetails{
		Arguments:        []string{identifySubcommandConstant, identifyIDFlagConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return "", executionError
	}
	changesetIdentifier := strings.TrimSpace(executionResult.StandardOutput)
	return strings.TrimSuffix(changesetIdentifier, dirtyChangesetSuffixConstant), nil
}

// PathURL returns the URL configured for the named path alias.
func (manager *RepositoryManager) PathURL(executionContext context.Context, directory string, aliasName string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteMercurial(executionContext, execshell.CommandDetails{
		Arguments:        []string{pathsSubcommandConstant, aliasName},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}
