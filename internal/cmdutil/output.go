package cmdutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/output"
)

// PrintError prints a command error in a user-friendly format. DetailErrors
// print their structured form as plain text; joined errors print one line each.
func PrintError(err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(fmt.Sprintf("%s: %s", detail.Type, detail.Message))
		output.Details(detail.Error())
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			PrintError(e)
		}
		return
	}

	output.Error(err.Error())
}

// WriteData encodes v as YAML or JSON to w.
func WriteData(w io.Writer, format output.OutputFormat, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case output.FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case output.FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("format %q cannot encode data", format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}
