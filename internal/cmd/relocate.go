package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/cmdutil"
	"github.com/opmodel/shadeplan/internal/output"
	"github.com/opmodel/shadeplan/internal/relocate"
)

// relocateResult is the output of the relocate command.
type relocateResult struct {
	Module   string          `json:"module"`
	Rules    []relocate.Rule `json:"rules"`
	Rewrites []rewrite       `json:"rewrites,omitempty"`
}

type rewrite struct {
	Name      string `json:"name"`
	Relocated string `json:"relocated"`
	Changed   bool   `json:"changed"`
}

// NewRelocateCmd creates the relocate command.
func NewRelocateCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "relocate <module> [name...]",
		Short: "Show the effective relocation rules of a module",
		Long: `Show the effective relocation rules of a module: its own rules followed by
those of every module it embeds, transitively. Compile-only dependencies do
not contribute rules.

Any further arguments are class or package names to rewrite with the rules.
Both dotted and slashed names are accepted.

Examples:
  shadeplan relocate spigot
  shadeplan relocate spigot org.bstats.bukkit.Metrics`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			g, id, err := cmdutil.LoadModule(gc, args[0])
			if err != nil {
				return err
			}

			rules, err := relocate.NewResolver(g).Resolve(id)
			if err != nil {
				return err
			}

			res := relocateResult{Module: id.String(), Rules: rules}
			for _, name := range args[1:] {
				relocated, changed := relocate.Apply(rules, name)
				res.Rewrites = append(res.Rewrites, rewrite{Name: name, Relocated: relocated, Changed: changed})
			}

			return render(c, gc, output.FormatTable, res, func() string {
				return formatRelocations(res)
			})
		},
	}
}

func formatRelocations(res relocateResult) string {
	var b strings.Builder
	if len(res.Rules) == 0 {
		fmt.Fprintf(&b, "Module %s relocates nothing", res.Module)
	} else {
		tbl := output.NewTable("FROM", "TO", "DECLARED BY")
		for _, r := range res.Rules {
			tbl.Row(r.From, r.To, r.Owner.String())
		}
		b.WriteString(tbl.String())
	}

	for _, rw := range res.Rewrites {
		b.WriteString("\n")
		if rw.Changed {
			b.WriteString(output.FormatRelocation(rw.Name, rw.Relocated))
		} else {
			b.WriteString(output.StyleNoun.Render(rw.Name) + output.StyleDim.Render(" (unchanged)"))
		}
	}
	return b.String()
}
