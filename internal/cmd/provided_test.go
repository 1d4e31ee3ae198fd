package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/testutil"
)

func TestProvidedList(t *testing.T) {
	isolate(t)
	path := testutil.WriteSampleProject(t)

	out, err := execute(t, "provided", "list", "spigot", "--graph", path)
	require.NoError(t, err)
	assert.Contains(t, out, "org.spigotmc")
	assert.Contains(t, out, "org.incendo")
	assert.Contains(t, out, "org.example")

	out, err = execute(t, "provided", "list", "core", "--graph", path)
	require.NoError(t, err)
	assert.Contains(t, out, "declares no provided dependencies")
}

func TestProvidedCheck(t *testing.T) {
	isolate(t)
	path := testutil.WriteSampleProject(t)

	tests := []struct {
		name     string
		args     []string
		provided bool
	}{
		{
			name:     "version is wildcarded by default",
			args:     []string{"spigot", "org.spigotmc:spigot-api:1.21.0"},
			provided: true,
		},
		{
			name:     "regex artifact is literal in exact mode",
			args:     []string{"spigot", "org.incendo:cloud-core:2.0.0"},
			provided: false,
		},
		{
			name:     "regex artifact matches with --regex",
			args:     []string{"spigot", "org.incendo:cloud-core:2.0.0", "--regex"},
			provided: true,
		},
		{
			name:     "provided module coordinate",
			args:     []string{"spigot", "org.example:api:1.0.0"},
			provided: true,
		},
		{
			name:     "scoped to the module",
			args:     []string{"core", "org.spigotmc:spigot-api:1.20.1"},
			provided: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"provided", "check"}, tt.args...)
			args = append(args, "--graph", path, "-o", "json")
			out, err := execute(t, args...)
			require.NoError(t, err)
			if tt.provided {
				assert.Contains(t, out, `"provided": true`)
			} else {
				assert.Contains(t, out, `"provided": false`)
			}
		})
	}
}

func TestProvidedCheck_Errors(t *testing.T) {
	isolate(t)
	path := testutil.WriteSampleProject(t)

	_, err := execute(t, "provided", "check", "ghost", "a:b:c", "--graph", path)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)

	_, err = execute(t, "provided", "check", "spigot", "a:b:c:d", "--graph", path)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}
