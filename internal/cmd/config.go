package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the shadeplan CLI.`,
	}

	c.AddCommand(newConfigInitCmd(gc), newConfigVetCmd(gc))

	return c
}
