// Package hgrepo contains helpers for interrogating Mercurial working copies.
//
// It mirrors the gitrepo package for the hg binary: RepositoryManager reads
// the repository root, branch, working changeset, and configured path aliases.
package hgrepo
