package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/cmdutil"
	"github.com/opmodel/shadeplan/internal/coordinate"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/output"
	"github.com/opmodel/shadeplan/internal/provided"
)

// NewProvidedCmd creates the provided command group.
func NewProvidedCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "provided",
		Short: "Query provided dependencies",
		Long: `Query the coordinates a module expects its runtime to provide. Provided
coordinates are never bundled.`,
	}

	c.AddCommand(newProvidedListCmd(gc), newProvidedCheckCmd(gc))

	return c
}

// exclusion is one registered provided coordinate.
type exclusion struct {
	Coordinate string `json:"coordinate"`
	Group      string `json:"group,omitempty"`
	Artifact   string `json:"artifact,omitempty"`
	Version    string `json:"version,omitempty"`
}

func newProvidedListCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list <module>",
		Short: "List the provided coordinates of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			g, id, err := cmdutil.LoadModule(gc, args[0])
			if err != nil {
				return err
			}

			coords := provided.FromGraph(g).ExclusionsFor(id)
			list := make([]exclusion, 0, len(coords))
			for _, co := range coords {
				list = append(list, exclusion{
					Coordinate: co.String(),
					Group:      co.Group,
					Artifact:   co.Artifact,
					Version:    co.Version,
				})
			}

			return render(c, gc, output.FormatTable, list, func() string {
				if len(list) == 0 {
					return fmt.Sprintf("Module %s declares no provided dependencies", id)
				}
				tbl := output.NewTable("COORDINATE", "GROUP", "ARTIFACT", "VERSION")
				for _, e := range list {
					tbl.Row(e.Coordinate, orAny(e.Group), orAny(e.Artifact), orAny(e.Version))
				}
				return tbl.String()
			})
		},
	}
}

// checkResult is the outcome of provided check.
type checkResult struct {
	Module     string `json:"module"`
	Coordinate string `json:"coordinate"`
	Mode       string `json:"mode"`
	Provided   bool   `json:"provided"`
}

func newProvidedCheckCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var regex bool

	c := &cobra.Command{
		Use:   "check <module> <group:artifact:version>",
		Short: "Check whether a coordinate is provided for a module",
		Long: `Check whether a coordinate is provided for a module, and therefore left
out of its bundle.

Patterns are compared field by field. By default non-empty fields must be
equal; with --regex they are anchored regular expressions.

Examples:
  shadeplan provided check spigot org.spigotmc:spigot-api:1.20.1
  shadeplan provided check spigot org.incendo:cloud-core:2.0.0 --regex`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			g, id, err := cmdutil.LoadModule(gc, args[0])
			if err != nil {
				return err
			}

			candidate, err := coordinate.Parse(args[1])
			if err != nil {
				return oerrors.NewValidationError(err.Error(), "", "coordinate",
					"Write coordinates as group:artifact:version")
			}

			mode := coordinate.MatchExact
			if regex {
				mode = coordinate.MatchRegex
			}

			res := checkResult{
				Module:     id.String(),
				Coordinate: candidate.String(),
				Mode:       mode.String(),
				Provided:   provided.FromGraph(g).Matches(id, candidate, mode),
			}

			return render(c, gc, output.FormatTable, res, func() string {
				status := output.StatusIncluded
				if res.Provided {
					status = output.StatusExcluded
				}
				return output.FormatEntryLine(res.Coordinate, status)
			})
		},
	}

	c.Flags().BoolVar(&regex, "regex", false, "Treat pattern fields as regular expressions")

	return c
}

func orAny(s string) string {
	if strings.TrimSpace(s) == "" {
		return "*"
	}
	return s
}
