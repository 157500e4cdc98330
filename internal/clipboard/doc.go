// Package clipboard writes text to the system clipboard.
package clipboard
