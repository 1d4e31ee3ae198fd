// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/config"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/output"
)

// annotationSkipConfig marks commands that must run even when the config file
// is broken.
const annotationSkipConfig = "shadeplan/skip-config"

// rootFlags holds the raw global flag values.
type rootFlags struct {
	config     string
	graph      string
	output     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the shadeplan CLI.
func NewRootCmd() *cobra.Command {
	gc := &cmdtypes.GlobalConfig{}
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "shadeplan",
		Short: "Plan the contents of shaded JVM artifacts",
		Long: `shadeplan reads a build graph and answers the questions a packaging step
asks before it writes a shaded jar: which dependencies are provided by the
runtime, which package prefixes are relocated, what version the artifact
carries, and which files end up inside it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, gc, flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: SHADEPLAN_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flags.graph, "graph", "", "Path to the build graph file (env: SHADEPLAN_GRAPH)")
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "", "Output format: table, yaml, json (env: SHADEPLAN_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewGraphCmd(gc),
		NewProvidedCmd(gc),
		NewRelocateCmd(gc),
		NewBundleCmd(gc),
		NewDepsCmd(gc),
		NewConfigCmd(gc),
		NewVersionCmd(gc),
	)

	return rootCmd
}

// initializeGlobals loads configuration, resolves global values and sets up
// logging. The result is written into gc.
func initializeGlobals(c *cobra.Command, gc *cmdtypes.GlobalConfig, flags *rootFlags) error {
	skip := skipsConfig(c)

	configPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: flags.config})
	if err != nil {
		return err
	}

	loader := config.NewLoader()
	cfg, err := loader.Load(configPath.Value)
	if err != nil {
		if !skip {
			return err
		}
		output.Debug("config load error", "error", err)
		cfg = config.DefaultConfig()
	}

	graphValue := loader.Resolve(config.KeyGraph, flags.graph, c.Flags().Changed("graph"))
	outputValue := loader.Resolve(config.KeyOutput, flags.output, c.Flags().Changed("output"))
	cfg.Graph = graphValue.Value

	format, ok := output.ParseOutputFormat(outputValue.Value)
	if !ok && !skip {
		return oerrors.NewValidationError("unknown output format "+outputValue.Value, "", config.KeyOutput,
			"Use one of: table, yaml, json")
	}
	cfg.Output = format.String()

	if !skip {
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	logCfg := output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	config.LogResolvedValues([]config.ResolvedValue{configPath, graphValue, outputValue})

	gc.Config = cfg
	gc.ConfigPath = configPath.Value
	gc.GraphPath = graphValue.Value
	gc.Output = cmdtypes.OutputSelection{
		Format:   format,
		Explicit: outputValue.Source != config.SourceDefault,
	}
	gc.Verbose = flags.verbose

	return nil
}

// skipsConfig reports whether c tolerates a broken config file.
func skipsConfig(c *cobra.Command) bool {
	_, ok := c.Annotations[annotationSkipConfig]
	return ok
}
