// Package vcs detects which version control system owns a directory and
// collects the working-copy metadata URL resolution depends on.
package vcs
