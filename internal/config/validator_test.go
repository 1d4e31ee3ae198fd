package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"defaults are valid", func(*Config) {}, nil},
		{"empty graph", func(c *Config) { c.Graph = " " }, []string{KeyGraph}},
		{"unknown output", func(c *Config) { c.Output = "xml" }, []string{KeyOutput}},
		{"whitespace git binary", func(c *Config) { c.Git.Binary = "  " }, []string{KeyGitBinary}},
		{"zero timeout", func(c *Config) { c.Git.Timeout = 0 }, []string{KeyGitTimeout}},
		{
			"bad variable names",
			func(c *Config) {
				c.Version.RefTypeVar = "REF-TYPE"
				c.Version.RefNameVar = "1REF"
			},
			[]string{KeyRefTypeVar, KeyRefNameVar},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			got := make([]string, len(verrs))
			for i, v := range verrs {
				got[i] = v.Field
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{{Field: "output", Message: "bad"}}
	assert.Contains(t, errs.Error(), "output: bad")
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())
}
