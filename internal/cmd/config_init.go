package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/config"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

func newConfigInitCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the shadeplan configuration.

Creates ~/.shadeplan/config.yaml, or the file named by --config or
SHADEPLAN_CONFIG, with every key set to its default.

Examples:
  # Initialize configuration
  shadeplan config init

  # Overwrite existing configuration
  shadeplan config init --force`,
		Args:        cobra.NoArgs,
		Annotations: skipConfig(),
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, gc, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return c
}

func runConfigInit(c *cobra.Command, gc *cmdtypes.GlobalConfig, force bool) error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	path := paths.ConfigFile
	if gc.ConfigPath != "" {
		if path, err = config.ExpandPath(gc.ConfigPath); err != nil {
			return fmt.Errorf("expanding config path: %w", err)
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if path == paths.ConfigFile {
		err = config.EnsureHomeDir()
	} else {
		err = os.MkdirAll(filepath.Dir(path), 0o700)
	}
	if err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(config.DefaultConfigTemplate), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	out := c.OutOrStdout()
	fmt.Fprintln(out, "Configuration initialized at "+path)
	fmt.Fprintln(out, "Validate with: shadeplan config vet")
	return nil
}
