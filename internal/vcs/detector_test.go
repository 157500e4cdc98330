package vcs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitlink/internal/execshell"
	"github.com/temirov/gitlink/internal/vcs"
)

const (
	probedDirectoryConstant  = "/workspace/project/src"
	gitWorktreeRootConstant  = "/workspace/project"
	gitBranchConstant        = "main"
	gitCommitConstant        = "2f1c4ab8a4f9d2f5c6e7b8a9d0e1f2a3b4c5d6e7"
	gitRemoteURLConstant     = "git@github.com:temirov/gitlink.git"
	upstreamRemoteConstant   = "upstream"
	mercurialRootConstant    = "/workspace/hgproject"
	mercurialBranchConstant  = "default"
	mercurialChangesetValue  = "8f2a1c0d4e5b"
	mercurialPathURLConstant = "ssh://hg@bitbucket.org/team/project"
)

type stubGitReader struct {
	insideWorktree     bool
	probeError         error
	requestedRemotes   []string
	remoteURLsByRemote map[string]string
	branchName         string
}

func (reader *stubGitReader) IsWorkingCopy(context.Context, string) (bool, error) {
	if reader.probeError != nil {
		return false, reader.probeError
	}
	return reader.insideWorktree, nil
}

func (reader *stubGitReader) Toplevel(context.Context, string) (string, error) {
	return gitWorktreeRootConstant, nil
}

func (reader *stubGitReader) CurrentBranch(context.Context, string) (string, error) {
	return reader.branchName, nil
}

func (reader *stubGitReader) CurrentCommit(context.Context, string) (string, error) {
	return gitCommitConstant, nil
}

func (reader *stubGitReader) RemoteURL(_ context.Context, _ string, remoteName string) (string, error) {
	reader.requestedRemotes = append(reader.requestedRemotes, remoteName)
	return reader.remoteURLsByRemote[remoteName], nil
}

type stubMercurialReader struct {
	insideRepository bool
	probeError       error
	emptyBranch      bool
	requestedAliases []string
}

func (reader *stubMercurialReader) IsWorkingCopy(context.Context, string) (bool, error) {
	if reader.probeError != nil {
		return false, reader.probeError
	}
	return reader.insideRepository, nil
}

func (reader *stubMercurialReader) Root(context.Context, string) (string, error) {
	return mercurialRootConstant, nil
}

func (reader *stubMercurialReader) CurrentBranch(context.Context, string) (string, error) {
	if reader.emptyBranch {
		return "", nil
	}
	return mercurialBranchConstant, nil
}

func (reader *stubMercurialReader) CurrentChangeset(context.Context, string) (string, error) {
	return mercurialChangesetValue, nil
}

func (reader *stubMercurialReader) PathURL(_ context.Context, _ string, aliasName string) (string, error) {
	reader.requestedAliases = append(reader.requestedAliases, aliasName)
	return mercurialPathURLConstant, nil
}

func TestNewDetectorRequiresReaders(testInstance *testing.T) {
	testCases := []struct {
		name            string
		gitReader       vcs.GitMetadataReader
		mercurialReader vcs.MercurialMetadataReader
		expectedError   error
	}{
		{
			name:            "missing_git_reader",
			mercurialReader: &stubMercurialReader{},
			expectedError:   vcs.ErrGitReaderNotConfigured,
		},
		{
			name:          "missing_mercurial_reader",
			gitReader:     &stubGitReader{},
			expectedError: vcs.ErrMercurialReaderNotConfigured,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			detector, creationError := vcs.NewDetector(testCase.gitReader, testCase.mercurialReader)

			require.Nil(testInstance, detector)
			require.ErrorIs(testInstance, creationError, testCase.expectedError)
		})
	}
}

func TestDetectPrefersGit(testInstance *testing.T) {
	gitReader := &stubGitReader{
		insideWorktree:     true,
		branchName:         gitBranchConstant,
		remoteURLsByRemote: map[string]string{"origin": gitRemoteURLConstant},
	}
	mercurialReader := &stubMercurialReader{insideRepository: true}
	detector, creationError := vcs.NewDetector(gitReader, mercurialReader)
	require.NoError(testInstance, creationError)

	workingCopy, detectionError := detector.Detect(context.Background(), probedDirectoryConstant, "")

	require.NoError(testInstance, detectionError)
	require.Equal(testInstance, vcs.SystemGit, workingCopy.System)
	require.Equal(testInstance, gitWorktreeRootConstant, workingCopy.Root)
	require.Equal(testInstance, gitBranchConstant, workingCopy.Branch)
	require.Equal(testInstance, gitCommitConstant, workingCopy.Revision)
	require.Equal(testInstance, gitRemoteURLConstant, workingCopy.RemoteURL)
	require.Equal(testInstance, []string{"origin"}, gitReader.requestedRemotes)
	require.Empty(testInstance, mercurialReader.requestedAliases)
}

func TestDetectUsesNamedGitRemote(testInstance *testing.T) {
	gitReader := &stubGitReader{
		insideWorktree:     true,
		branchName:         gitBranchConstant,
		remoteURLsByRemote: map[string]string{upstreamRemoteConstant: gitRemoteURLConstant},
	}
	detector, creationError := vcs.NewDetector(gitReader, &stubMercurialReader{})
	require.NoError(testInstance, creationError)

	workingCopy, detectionError := detector.Detect(context.Background(), probedDirectoryConstant, upstreamRemoteConstant)

	require.NoError(testInstance, detectionError)
	require.Equal(testInstance, gitRemoteURLConstant, workingCopy.RemoteURL)
	require.Equal(testInstance, []string{upstreamRemoteConstant}, gitReader.requestedRemotes)
}

func TestDetectSubstitutesCommitForDetachedHead(testInstance *testing.T) {
	gitReader := &stubGitReader{
		insideWorktree:     true,
		branchName:         "HEAD",
		remoteURLsByRemote: map[string]string{"origin": gitRemoteURLConstant},
	}
	detector, creationError := vcs.NewDetector(gitReader, &stubMercurialReader{})
	require.NoError(testInstance, creationError)

	workingCopy, detectionError := detector.Detect(context.Background(), probedDirectoryConstant, "")

	require.NoError(testInstance, detectionError)
	require.Equal(testInstance, gitCommitConstant, workingCopy.Branch)
}

func TestDetectFallsBackToMercurial(testInstance *testing.T) {
	mercurialReader := &stubMercurialReader{insideRepository: true}
	detector, creationError := vcs.NewDetector(&stubGitReader{}, mercurialReader)
	require.NoError(testInstance, creationError)

	workingCopy, detectionError := detector.Detect(context.Background(), probedDirectoryConstant, "")

	require.NoError(testInstance, detectionError)
	require.Equal(testInstance, vcs.SystemMercurial, workingCopy.System)
	require.Equal(testInstance, mercurialRootConstant, workingCopy.Root)
	require.Equal(testInstance, mercurialBranchConstant, workingCopy.Branch)
	require.Equal(testInstance, mercurialChangesetValue, workingCopy.Revision)
	require.Equal(testInstance, mercurialPathURLConstant, workingCopy.RemoteURL)
	require.Equal(testInstance, []string{"default"}, mercurialReader.requestedAliases)
}

func TestDetectFallsBackToMercurialWhenGitBinaryMissing(testInstance *testing.T) {
	gitReader := &stubGitReader{
		probeError: execshell.CommandExecutionError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit},
			Cause:   errors.New(`exec: "git": executable file not found in $PATH`),
		},
	}
	mercurialReader := &stubMercurialReader{insideRepository: true}
	detector, creationError := vcs.NewDetector(gitReader, mercurialReader)
	require.NoError(testInstance, creationError)

	workingCopy, detectionError := detector.Detect(context.Background(), probedDirectoryConstant, "")

	require.NoError(testInstance, detectionError)
	require.Equal(testInstance, vcs.SystemMercurial, workingCopy.System)
	require.Equal(testInstance, mercurialPathURLConstant, workingCopy.RemoteURL)
}

func TestDetectReportsUnknownRepositoryWhenBothBinariesMissing(testInstance *testing.T) {
	gitReader := &stubGitReader{
		probeError: execshell.CommandExecutionError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit},
			Cause:   errors.New(`exec: "git": executable file not found in $PATH`),
		},
	}
	mercurialReader := &stubMercurialReader{
		probeError: execshell.CommandExecutionError{
			Command: execshell.ShellCommand{Name: execshell.CommandMercurial},
			Cause:   errors.New(`exec: "hg": executable file not found in $PATH`),
		},
	}
	detector, creationError := vcs.NewDetector(gitReader, mercurialReader)
	require.NoError(testInstance, creationError)

	_, detectionError := detector.Detect(context.Background(), probedDirectoryConstant, "")

	unknownError := vcs.UnknownRepositoryError{}
	require.ErrorAs(testInstance, detectionError, &unknownError)
}

func TestDetectPropagatesUnexpectedGitProbeFailure(testInstance *testing.T) {
	gitReader := &stubGitReader{probeError: errors.New("permission denied")}
	detector, creationError := vcs.NewDetector(gitReader, &stubMercurialReader{insideRepository: true})
	require.NoError(testInstance, creationError)

	_, detectionError := detector.Detect(context.Background(), probedDirectoryConstant, "")

	require.Error(testInstance, detectionError)
	unknownError := vcs.UnknownRepositoryError{}
	require.False(testInstance, errors.As(detectionError, &unknownError))
}

func TestDetectSubstitutesChangesetForEmptyMercurialBranch(testInstance *testing.T) {
	mercurialReader := &stubMercurialReader{insideRepository: true, emptyBranch: true}
	detector, creationError := vcs.NewDetector(&stubGitReader{}, mercurialReader)
	require.NoError(testInstance, creationError)

	workingCopy, detectionError := detector.Detect(context.Background(), probedDirectoryConstant, "")

	require.NoError(testInstance, detectionError)
	require.Equal(testInstance, mercurialChangesetValue, workingCopy.Branch)
}

func TestDetectReportsUnknownRepository(testInstance *testing.T) {
	detector, creationError := vcs.NewDetector(&stubGitReader{}, &stubMercurialReader{})
	require.NoError(testInstance, creationError)

	_, detectionError := detector.Detect(context.Background(), probedDirectoryConstant, "")

	unknownError := vcs.UnknownRepositoryError{}
	require.ErrorAs(testInstance, detectionError, &unknownError)
	require.Equal(testInstance, probedDirectoryConstant, unknownError.Directory)
}
