package graph

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

//go:embed schema/graph.cue
var graphSchemaCUE []byte

// Validator checks decoded graph documents against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(graphSchemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling graph schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Graph"))
	if !def.Exists() {
		return nil, fmt.Errorf("graph schema has no #Graph definition")
	}

	return &Validator{ctx: ctx, schema: def}, nil
}

// Validate unifies doc with #Graph and requires a concrete result.
// location is only used in the returned diagnostic.
func (v *Validator) Validate(doc map[string]any, location string) error {
	value := v.ctx.Encode(doc)
	if value.Err() != nil {
		return oerrors.NewValidationError(value.Err().Error(), location, "", "")
	}

	unified := v.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		errs := cueerrors.Errors(err)
		field := ""
		if len(errs) > 0 {
			field = strings.Join(errs[0].Path(), ".")
		}
		return oerrors.NewValidationError(
			cueerrors.Details(err, nil),
			location,
			field,
			"Quote version strings and use dotted package prefixes for relocations",
		)
	}
	return nil
}
