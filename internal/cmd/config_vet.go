package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/shadeplan/internal/cmdtypes"
	"github.com/opmodel/shadeplan/internal/config"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

func newConfigVetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the shadeplan configuration file",
		Long: `Validate the shadeplan configuration file.

The command validates ~/.shadeplan/config.yaml by default.
Use --config or SHADEPLAN_CONFIG to specify a different location.`,
		Args:        cobra.NoArgs,
		Annotations: skipConfig(),
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, gc)
		},
	}
}

func runConfigVet(c *cobra.Command, gc *cmdtypes.GlobalConfig) error {
	path, err := config.ExpandPath(gc.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return oerrors.NewNotFoundError("config file not found", path,
			"Run 'shadeplan config init' to create one")
	}

	cfg, err := config.NewLoader().Load(path)
	if err != nil {
		return err
	}

	if err := config.Validate(cfg); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			exitErr := oerrors.NewExitError(err, oerrors.ExitValidationError)
			exitErr.Printed = true
			return exitErr
		}
		return err
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", path)
	return nil
}
