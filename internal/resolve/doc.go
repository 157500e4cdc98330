// Package resolve translates a local path inside a working copy into the
// web URL of the same file on the hosting provider.
//
// The translation runs in three stages: ParsePathSpec splits an optional
// line suffix off the argument, ParseOrigin normalizes the configured remote
// URL, and a provider resolver selected from the origin renders the final
// URL in that provider's grammar.
package resolve
