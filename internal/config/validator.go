package config

import (
	"fmt"
	"regexp"
	"strings"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/output"
)

// envNameRegex matches portable environment variable names.
var envNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets callers match with errors.Is(err, ErrValidation).
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validate checks cfg for values that would make commands fail later.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.Graph) == "" {
		errs = append(errs, ValidationError{Field: KeyGraph, Message: "must not be empty"})
	}

	if _, ok := output.ParseOutputFormat(cfg.Output); !ok {
		errs = append(errs, ValidationError{
			Field:   KeyOutput,
			Message: fmt.Sprintf("must be one of %s", strings.Join(output.ValidFormats(), ", ")),
		})
	}

	if cfg.Git.Binary != "" && strings.TrimSpace(cfg.Git.Binary) == "" {
		errs = append(errs, ValidationError{Field: KeyGitBinary, Message: "must not be empty or whitespace only"})
	}

	if cfg.Git.Timeout <= 0 {
		errs = append(errs, ValidationError{Field: KeyGitTimeout, Message: "must be a positive duration"})
	}

	for _, v := range []struct{ field, name string }{
		{KeyRefTypeVar, cfg.Version.RefTypeVar},
		{KeyRefNameVar, cfg.Version.RefNameVar},
	} {
		if v.name != "" && !envNameRegex.MatchString(v.name) {
			errs = append(errs, ValidationError{Field: v.field, Message: "must be a valid environment variable name"})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
