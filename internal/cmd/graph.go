package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/cmdutil"
	"github.com/opmodel/shadeplan/internal/output"
	"github.com/opmodel/shadeplan/internal/relocate"
)

// NewGraphCmd creates the graph command group.
func NewGraphCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "graph",
		Short: "Inspect the build graph",
		Long:  `Commands for validating and listing the modules of a build graph.`,
	}

	c.AddCommand(newGraphVetCmd(gc), newGraphListCmd(gc))

	return c
}

func newGraphVetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the build graph",
		Long: `Validate the build graph file against its schema and resolve the
relocation rules of every module.

Fails with exit code 2 on schema errors and exit code 3 when an embed cycle
or two conflicting relocations are found.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runGraphVet(c, gc)
		},
	}
}

func runGraphVet(c *cobra.Command, gc *cmdtypes.GlobalConfig) error {
	g, err := cmdutil.LoadGraph(gc)
	if err != nil {
		return err
	}
	if err := g.Check(); err != nil {
		return err
	}
	if _, err := relocate.NewResolver(g).ResolveAll(); err != nil {
		return err
	}

	fmt.Fprintln(c.OutOrStdout(), output.StyleSummary.Render(
		fmt.Sprintf("Build graph is valid: %s (%d modules)", g.Source, g.Len())))
	return nil
}

// moduleSummary is one row of graph list.
type moduleSummary struct {
	Module      string `json:"module"`
	Embeds      int    `json:"embeds"`
	Requires    int    `json:"requires"`
	Provided    int    `json:"provided"`
	Relocations int    `json:"relocations"`
	Bundle      int    `json:"bundle"`
}

func newGraphListCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the modules of the build graph",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			g, err := cmdutil.LoadGraph(gc)
			if err != nil {
				return err
			}

			summaries := make([]moduleSummary, 0, g.Len())
			for _, id := range g.Modules() {
				n, _ := g.Node(id)
				summaries = append(summaries, moduleSummary{
					Module:      id.String(),
					Embeds:      len(n.Embeds),
					Requires:    len(n.Requires),
					Provided:    len(n.Provided) + len(n.ProvidedModules),
					Relocations: len(n.Relocations),
					Bundle:      len(n.Bundle),
				})
			}

			return render(c, gc, output.FormatTable, summaries, func() string {
				tbl := output.NewTable("MODULE", "EMBEDS", "REQUIRES", "PROVIDED", "RELOCATIONS", "BUNDLE")
				for _, s := range summaries {
					tbl.Row(s.Module, strconv.Itoa(s.Embeds), strconv.Itoa(s.Requires),
						strconv.Itoa(s.Provided), strconv.Itoa(s.Relocations), strconv.Itoa(s.Bundle))
				}
				return tbl.String()
			})
		},
	}
}
