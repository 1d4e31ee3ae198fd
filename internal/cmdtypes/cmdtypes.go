// Package cmdtypes provides shared types for the cmd package and cmdutil.
// It is separate from internal/cmd to avoid an import cycle between them.
package cmdtypes

import (
	"github.com/opmodel/shadeplan/internal/config"
	"github.com/opmodel/shadeplan/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	Config *config.Config

	ConfigPath string // resolved --config path
	GraphPath  string // resolved --graph path

	Output OutputSelection

	Verbose bool
}

// OutputSelection is the resolved --output value.
type OutputSelection struct {
	Format output.OutputFormat

	// Explicit is true when the user chose the format by flag, env or config.
	Explicit bool
}

// FormatOr returns the selected format, or def when the user made no choice.
func (o OutputSelection) FormatOr(def output.OutputFormat) output.OutputFormat {
	if o.Explicit || def == "" {
		return o.Format
	}
	return def
}
