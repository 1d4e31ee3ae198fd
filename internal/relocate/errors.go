package relocate

import (
	"fmt"
	"strings"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/graph"
)

// CycleError reports an embed cycle. Cycle starts and ends with the same module.
type CycleError struct {
	Cycle []graph.ModuleID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		parts[i] = id.String()
	}
	return fmt.Sprintf("embed cycle detected: %s", strings.Join(parts, " -> "))
}

// Unwrap lets callers match the error with errors.Is(err, ErrConfiguration).
func (e *CycleError) Unwrap() error {
	return oerrors.ErrConfiguration
}

// ConflictError reports two rules that relocate the same prefix to different targets.
type ConflictError struct {
	From   string
	First  Rule
	Second Rule
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting relocations for %q: %q (from %s) and %q (from %s)",
		e.From, e.First.To, e.First.Owner, e.Second.To, e.Second.Owner)
}

func (e *ConflictError) Unwrap() error {
	return oerrors.ErrConfiguration
}
