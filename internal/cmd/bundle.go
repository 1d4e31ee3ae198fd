package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/bundle"
	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/cmdutil"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/output"
)

// NewBundleCmd creates the bundle command group.
func NewBundleCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "bundle",
		Short: "Plan shaded artifacts",
		Long:  `Commands for computing and comparing bundle plans.`,
	}

	c.AddCommand(newBundlePlanCmd(gc), newBundleDiffCmd(gc))

	return c
}

func newBundlePlanCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		deriveFlags cmdutil.DeriveFlags
		versionFlag string
		outFlag     string
	)

	c := &cobra.Command{
		Use:   "plan <module>",
		Short: "Compute the bundle plan of a module",
		Long: `Compute the bundle plan of a module: which dependencies are copied into its
artifact, which are left to the runtime, and the package relocations applied
to what remains.

Provided coordinates are removed first. Relocation rules never apply to them.

The artifact version is derived from version control unless --version is set.

Examples:
  shadeplan bundle plan spigot
  shadeplan bundle plan spigot --version 1.2.0 -o yaml
  shadeplan bundle plan spigot --out plan.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			g, id, err := cmdutil.LoadModule(gc, args[0])
			if err != nil {
				return err
			}

			v := versionFlag
			if v == "" {
				d, err := cmdutil.NewDeriver(gc, deriveFlags.Describe)
				if err != nil {
					return err
				}
				v = d.Derive(c.Context()).Version
			}

			plan, err := bundle.NewPlanner(g).Plan(id, v)
			if err != nil {
				return err
			}

			if outFlag != "" {
				return writePlanFile(c, plan, outFlag)
			}

			format := gc.Output.FormatOr(output.FormatTable)
			if format == output.FormatTable {
				fmt.Fprintln(c.OutOrStdout(), formatPlan(plan))
				return nil
			}
			data, err := bundle.Marshal(plan, format)
			if err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(data)
			return err
		},
	}

	deriveFlags.AddTo(c)
	c.Flags().StringVar(&versionFlag, "version", "", "Artifact version (default: derived from version control)")
	c.Flags().StringVar(&outFlag, "out", "", "Write the plan to this file (.json for JSON, YAML otherwise)")

	return c
}

func writePlanFile(c *cobra.Command, plan *bundle.Plan, path string) error {
	format := output.FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = output.FormatJSON
	}
	data, err := bundle.Marshal(plan, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	fmt.Fprintf(c.OutOrStdout(), "Wrote plan for %s to %s\n", plan.Module, path)
	return nil
}

func formatPlan(plan *bundle.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", output.StyleSummary.Render(plan.Artifact), output.StyleDim.Render("("+plan.Module+")"))

	for _, e := range plan.Included {
		b.WriteString(output.FormatEntryLine(e.Coordinate, output.StatusIncluded))
		b.WriteString("\n")
	}
	for _, e := range plan.Excluded {
		b.WriteString(output.FormatEntryLine(e.Coordinate, output.StatusExcluded))
		b.WriteString("\n")
	}
	for _, r := range plan.Relocations {
		b.WriteString("  ")
		b.WriteString(output.FormatRelocation(r.From, r.To))
		b.WriteString("\n")
	}

	b.WriteString(output.StyleSummary.Render(fmt.Sprintf("%d included, %d excluded, %d relocations",
		len(plan.Included), len(plan.Excluded), len(plan.Relocations))))
	return b.String()
}

func newBundleDiffCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two bundle plan files",
		Long: `Compare two bundle plan files written by 'bundle plan --out'. Plans may be
YAML or JSON. Prints nothing but a summary when they are equivalent.`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			before, err := readPlanFile(args[0])
			if err != nil {
				return err
			}
			after, err := readPlanFile(args[1])
			if err != nil {
				return err
			}

			report, err := bundle.Diff(before, after, output.IsTTY())
			if err != nil {
				return err
			}
			if report == "" {
				fmt.Fprintln(c.OutOrStdout(), "No differences found")
				return nil
			}
			fmt.Fprintln(c.OutOrStdout(), report)
			return nil
		},
	}
}

// readPlanFile reads a plan file and checks it decodes as a plan.
func readPlanFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("plan file does not exist", path,
				"Write one with 'shadeplan bundle plan <module> --out <file>'")
		}
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	if _, err := bundle.Unmarshal(data); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), path, "", "")
	}
	return data, nil
}
