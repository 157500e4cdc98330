// Package gitrepo contains helpers for interrogating Git working copies.
//
// It exposes RepositoryManager for reading the worktree root, current branch,
// HEAD commit, and remote URLs through the git binary in a testable manner.
package gitrepo
