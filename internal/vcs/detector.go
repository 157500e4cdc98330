package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/gitlink/internal/execshell"
)

const (
	gitSystemNameConstant                    = "git"
	mercurialSystemNameConstant              = "mercurial"
	gitReaderNotConfiguredMessageConstant    = "git metadata reader not configured"
	mercurialReaderNotConfiguredMessage      = "mercurial metadata reader not configured"
	unknownRepositoryErrorTemplateConstant   = "%s is not inside a git or mercurial working copy"
	detachedHeadBranchNameConstant           = "HEAD"
	gitDefaultRemoteNameConstant             = "origin"
	mercurialDefaultAliasNameConstant        = "default"
	gitMetadataFailureTemplateConstant       = "reading git metadata for %s: %w"
	mercurialMetadataFailureTemplateConstant = "reading mercurial metadata for %s: %w"
	repositoryProbeFailureTemplateConstant   = "probing %s for a working copy: %w"
)

// System identifies a supported version control system.
type System string

// Supported version control systems.
const (
	SystemGit       System = System(gitSystemNameConstant)
	SystemMercurial System = System(mercurialSystemNameConstant)
)

// Initialization validation errors surfaced by NewDetector.
var (
	ErrGitReaderNotConfigured       = errors.New(gitReaderNotConfiguredMessageConstant)
	ErrMercurialReaderNotConfigured = errors.New(mercurialReaderNotConfiguredMessage)
)

// WorkingCopy carries the metadata collected from a detected repository.
type WorkingCopy struct {
	System    System
	Root      string
	Branch    string
	Revision  string
	RemoteURL string
}

// UnknownRepositoryError indicates a directory belongs to no supported working copy.
type UnknownRepositoryError struct {
	Directory string
}

// Error describes the undetected directory.
func (unknownError UnknownRepositoryError) Error() string {
	return fmt.Sprintf(unknownRepositoryErrorTemplateConstant, unknownError.Directory)
}

// GitMetadataReader exposes the Git queries the detector performs.
type GitMetadataReader interface {
	IsWorkingCopy(executionContext context.Context, directory string) (bool, error)
	Toplevel(executionContext context.Context, directory string) (string, error)
	CurrentBranch(executionContext context.Context, directory string) (string, error)
	CurrentCommit(executionContext context.Context, directory string) (string, error)
	RemoteURL(executionContext context.Context, directory string, remoteName string) (string, error)
}

// MercurialMetadataReader exposes the Mercurial queries the detector performs.
type MercurialMetadataReader interface {
	IsWorkingCopy(executionContext context.Context, directory string) (bool, error)
	Root(executionContext context.Context, directory string) (string, error)
	CurrentBranch(executionContext context.Context, directory string) (string, error)
	CurrentChangeset(executionContext context.Context, directory string) (string, error)
	PathURL(executionContext context.Context, directory string, aliasName string) (string, error)
}

// Detector probes a directory for a supported working copy, preferring Git.
type Detector struct {
	gitReader       GitMetadataReader
	mercurialReader MercurialMetadataReader
}

// NewDetector constructs a Detector with the required metadata readers.
func NewDetector(gitReader GitMetadataReader, mercurialReader MercurialMetadataReader) (*Detector, error) {
	if gitReader == nil {
		return nil, ErrGitReaderNotConfigured
	}
	if mercurialReader == nil {
		return nil, ErrMercurialReaderNotConfigured
	}
	return &Detector{gitReader: gitReader, mercurialReader: mercurialReader}, nil
}

// Detect identifies the working copy containing the directory and collects its metadata.
// The remoteName selects which Git remote or Mercurial path alias supplies the remote URL;
// an empty remoteName falls back to "origin" for Git and "default" for Mercurial.
func (detector *Detector) Detect(executionContext context.Context, directory string, remoteName string) (WorkingCopy, error) {
	insideGitWorktree, gitProbeError := detector.gitReader.IsWorkingCopy(executionContext, directory)
	if gitProbeError != nil {
		// A missing git binary must not block the Mercurial probe.
		if !isProbeExecutionFailure(gitProbeError) {
			return WorkingCopy{}, fmt.Errorf(repositoryProbeFailureTemplateConstant, directory, gitProbeError)
		}
		insideGitWorktree = false
	}
	if insideGitWorktree {
		return detector.collectGitMetadata(executionContext, directory, remoteName)
	}

	insideMercurialRepository, mercurialProbeError := detector.mercurialReader.IsWorkingCopy(executionContext, directory)
	if mercurialProbeError != nil {
		if !isProbeExecutionFailure(mercurialProbeError) {
			return WorkingCopy{}, fmt.Errorf(repositoryProbeFailureTemplateConstant, directory, mercurialProbeError)
		}
		insideMercurialRepository = false
	}
	if insideMercurialRepository {
		return detector.collectMercurialMetadata(executionContext, directory, remoteName)
	}

	return WorkingCopy{}, UnknownRepositoryError{Directory: directory}
}

// isProbeExecutionFailure recognizes probes that never ran, such as an absent
// git or hg binary, which answer "not this system" rather than aborting detection.
func isProbeExecutionFailure(probeError error) bool {
	executionError := execshell.CommandExecutionError{}
	return errors.As(probeError, &executionError)
}

func (detector *Detector) collectGitMetadata(executionContext context.Context, directory string, remoteName string) (WorkingCopy, error) {
	if len(remoteName) == 0 {
		remoteName = gitDefaultRemoteNameConstant
	}
	worktreeRoot, rootError := detector.gitReader.Toplevel(executionContext, directory)
	if rootError != nil {
		return WorkingCopy{}, fmt.Errorf(gitMetadataFailureTemplateConstant, directory, rootError)
	}
	branchName, branchError := detector.gitReader.CurrentBranch(executionContext, directory)
	if branchError != nil {
		return WorkingCopy{}, fmt.Errorf(gitMetadataFailureTemplateConstant, directory, branchError)
	}
	commitHash, commitError := detector.gitReader.CurrentCommit(executionContext, directory)
	if commitError != nil {
		return WorkingCopy{}, fmt.Errorf(gitMetadataFailureTemplateConstant, directory, commitError)
	}
	remoteURL, remoteError := detector.gitReader.RemoteURL(executionContext, directory, remoteName)
	if remoteError != nil {
		return WorkingCopy{}, fmt.Errorf(gitMetadataFailureTemplateConstant, directory, remoteError)
	}

	// Detached checkouts have no branch name; the commit hash stands in so links stay stable.
	if branchName == detachedHeadBranchNameConstant {
		branchName = commitHash
	}

	return WorkingCopy{
		System:    SystemGit,
		Root:      worktreeRoot,
		Branch:    branchName,
		Revision:  commitHash,
		RemoteURL: remoteURL,
	}, nil
}

func (detector *Detector) collectMercurialMetadata(executionContext context.Context, directory string, remoteName string) (WorkingCopy, error) {
	if len(remoteName) == 0 {
		remoteName = mercurialDefaultAliasNameConstant
	}
	repositoryRoot, rootError := detector.mercurialReader.Root(executionContext, directory)
	if rootError != nil {
		return WorkingCopy{}, fmt.Errorf(mercurialMetadataFailureTemplateConstant, directory, rootError)
	}
	branchName, branchError := detector.mercurialReader.CurrentBranch(executionContext, directory)
	if branchError != nil {
		return WorkingCopy{}, fmt.Errorf(mercurialMetadataFailureTemplateConstant, directory, branchError)
	}
	changesetIdentifier, changesetError := detector.mercurialReader.CurrentChangeset(executionContext, directory)
	if changesetError != nil {
		return WorkingCopy{}, fmt.Errorf(mercurialMetadataFailureTemplateConstant, directory, changesetError)
	}
	remoteURL, remoteError := detector.mercurialReader.PathURL(executionContext, directory, remoteName)
	if remoteError != nil {
		return WorkingCopy{}, fmt.Errorf(mercurialMetadataFailureTemplateConstant, directory, remoteError)
	}

	// hg branch prints nothing for an unnamed working directory; the
	// changeset keeps the resolved URL pointing at real content.
	if len(branchName) == 0 {
		branchName = changesetIdentifier
	}

	return WorkingCopy{
		System:    SystemMercurial,
		Root:      repositoryRoot,
		Branch:    branchName,
		Revision:  changesetIdentifier,
		RemoteURL: remoteURL,
	}, nil
}
