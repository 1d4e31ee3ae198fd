// Package main is the entry point for the shadeplan CLI.
package main

import (
	"errors"
	"os"

	"github.com/opmodel/shadeplan/internal/cmd"
	"github.com/opmodel/shadeplan/internal/cmdutil"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) && exitErr.Printed {
			os.Exit(exitErr.Code)
		}
		cmdutil.PrintError(err)
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}
