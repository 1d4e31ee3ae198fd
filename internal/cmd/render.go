package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/cmdutil"
	"github.com/opmodel/shadeplan/internal/output"
)

// render writes data in the selected output format. Table output, or def when
// the user chose nothing, is produced by text.
func render(c *cobra.Command, gc *cmdtypes.GlobalConfig, def output.OutputFormat, data any, text func() string) error {
	format := gc.Output.FormatOr(def)
	if format == output.FormatTable {
		fmt.Fprintln(c.OutOrStdout(), text())
		return nil
	}
	return cmdutil.WriteData(c.OutOrStdout(), format, data)
}

// skipConfig is the annotation set for commands that tolerate a broken config.
func skipConfig() map[string]string {
	return map[string]string{annotationSkipConfig: "true"}
}
