// Package cmdutil provides shared command utilities.
// It centralizes flag groups, graph loading, version derivation wiring,
// and output formatting helpers.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// DeriveFlags holds flags for commands that derive a version
// (version derive, bundle plan).
type DeriveFlags struct {
	// Describe replaces the git call with fixed describe text.
	Describe string
}

// AddTo registers the derive flags on the given cobra command.
func (f *DeriveFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Describe, "describe", "",
		"Use this text instead of running git describe")
}

// DepsFlags holds flags for the deps subcommands.
type DepsFlags struct {
	File string
}

// AddTo registers the deps flags on the given cobra command.
func (f *DepsFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.File, "file", "",
		"Dependency hashes file (default: <module>-dependencyInfo.txt next to the graph)")
}
