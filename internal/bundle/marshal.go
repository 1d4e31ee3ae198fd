package bundle

import (
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/opmodel/shadeplan/internal/output"
)

// Marshal encodes plan as YAML or JSON.
func Marshal(plan *Plan, format output.OutputFormat) ([]byte, error) {
	switch format {
	case output.FormatYAML:
		return yaml.Marshal(plan)
	case output.FormatJSON:
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("plan cannot be encoded as %q", format)
	}
}

// Unmarshal decodes a plan written by Marshal in either format.
func Unmarshal(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	return &plan, nil
}
