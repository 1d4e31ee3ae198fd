package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/cmdutil"
	"github.com/opmodel/shadeplan/internal/depinfo"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/provided"
)

// NewDepsCmd creates the deps command group.
func NewDepsCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "deps",
		Short: "Maintain dependency hash files",
		Long: `Maintain the dependency hash file of a module. It lists every bundled jar
named in the build graph as group:artifact:version:sha256, one per line.`,
	}

	c.AddCommand(newDepsWriteCmd(gc), newDepsCheckCmd(gc))

	return c
}

// collectDeps loads the module and hashes its bundled files.
func collectDeps(gc *cmdtypes.GlobalConfig, ref, file string) (string, []depinfo.Entry, error) {
	g, id, err := cmdutil.LoadModule(gc, ref)
	if err != nil {
		return "", nil, err
	}
	n, ok := g.Node(id)
	if !ok {
		return "", nil, oerrors.NewNotFoundError(fmt.Sprintf("module %q is not declared", ref), g.Source, "")
	}

	entries, err := depinfo.Collect(n, provided.FromGraph(g))
	if err != nil {
		return "", nil, err
	}

	if file == "" {
		file = depinfo.DefaultPath(g.Source, id)
	}
	return file, entries, nil
}

func newDepsWriteCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.DepsFlags

	c := &cobra.Command{
		Use:   "write <module>",
		Short: "Write the dependency hash file of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path, entries, err := collectDeps(gc, args[0], flags.File)
			if err != nil {
				return err
			}
			if err := depinfo.Write(path, entries); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Wrote %d entries to %s\n", len(entries), path)
			return nil
		},
	}

	flags.AddTo(c)
	return c
}

func newDepsCheckCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.DepsFlags

	c := &cobra.Command{
		Use:   "check <module>",
		Short: "Check the dependency hash file of a module is up to date",
		Long: `Check the dependency hash file of a module is up to date.

Exits with code 5 when the file is missing or no longer matches the jars.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path, entries, err := collectDeps(gc, args[0], flags.File)
			if err != nil {
				return err
			}
			if err := depinfo.Check(path, entries); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Dependency hashes are up to date: %s\n", path)
			return nil
		},
	}

	flags.AddTo(c)
	return c
}

