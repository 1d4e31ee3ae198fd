package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/shadeplan/internal/config"
	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/output"
	"github.com/opmodel/shadeplan/internal/testutil"
)

// isolate points HOME at a temp dir and clears every variable that could
// leak in from the environment running the tests.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHADEPLAN_CONFIG", "")
	for _, key := range config.Keys {
		t.Setenv(config.EnvVar(key), "")
	}
	for _, key := range []string{"GITHUB_REF_TYPE", "GITHUB_REF_NAME", "GIT_BRANCH", "IGNORE_BRANCH", "BUILD_NUMBER", "GITHUB_RUN_NUMBER"} {
		t.Setenv(key, "")
	}
	return home
}

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(args, "--timestamps=false"))

	err := rootCmd.Execute()
	output.SetOutput(&bytes.Buffer{})
	return stdout.String(), err
}

func TestNewRootCmd(t *testing.T) {
	rootCmd := NewRootCmd()

	assert.Equal(t, "shadeplan", rootCmd.Use)
	for _, name := range []string{"config", "graph", "output", "verbose", "timestamps"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"graph", "provided", "relocate", "bundle", "deps", "config", "version"}, names)
}

func TestRoot_InvalidOutputFormat(t *testing.T) {
	isolate(t)
	graphPath := testutil.WriteSampleProject(t)

	_, err := execute(t, "graph", "list", "--graph", graphPath, "-o", "xml")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}

func TestRoot_GraphFromConfigFile(t *testing.T) {
	home := isolate(t)
	graphPath := testutil.WriteSampleProject(t)

	configPath := filepath.Join(home, ".shadeplan", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o700))
	require.NoError(t, os.WriteFile(configPath, []byte("graph: "+graphPath+"\noutput: json\n"), 0o600))

	out, err := execute(t, "graph", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"module": "org.example:spigot"`)
}

func TestRoot_EnvOverridesConfigFile(t *testing.T) {
	home := isolate(t)
	graphPath := testutil.WriteSampleProject(t)

	configPath := filepath.Join(home, ".shadeplan", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o700))
	require.NoError(t, os.WriteFile(configPath, []byte("graph: /does/not/exist.yaml\n"), 0o600))
	t.Setenv("SHADEPLAN_GRAPH", graphPath)

	_, err := execute(t, "graph", "vet")
	assert.NoError(t, err)
}

func TestRoot_BrokenConfigFile(t *testing.T) {
	home := isolate(t)
	graphPath := testutil.WriteSampleProject(t)

	configPath := filepath.Join(home, ".shadeplan", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o700))
	require.NoError(t, os.WriteFile(configPath, []byte("git:\n  timeout: soon\n"), 0o600))

	_, err := execute(t, "graph", "vet", "--graph", graphPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)

	// version still runs.
	_, err = execute(t, "version")
	assert.NoError(t, err)
}
