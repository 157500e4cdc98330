// Package cli wires the gitlink root command, configuration loading, and
// structured logging around the resolve subcommand.
package cli
