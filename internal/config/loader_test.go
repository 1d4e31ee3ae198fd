package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		path := writeConfig(t, `
graph: plugins/graph.toml
output: json
git:
  binary: /usr/local/bin/git
  dir: /src/plugin
  timeout: 2s
version:
  refTypeVar: CI_REF_KIND
  refNameVar: CI_REF
  envFile: ci.env
log:
  timestamps: false
`)

		loader := NewLoader()
		cfg, err := loader.Load(path)

		require.NoError(t, err)
		assert.True(t, loader.FileLoaded())
		assert.Equal(t, path, loader.Path())
		assert.Equal(t, "plugins/graph.toml", cfg.Graph)
		assert.Equal(t, "json", cfg.Output)
		assert.Equal(t, "/usr/local/bin/git", cfg.Git.Binary)
		assert.Equal(t, "/src/plugin", cfg.Git.Dir)
		assert.Equal(t, 2*time.Second, cfg.Git.Timeout)
		assert.Equal(t, "CI_REF_KIND", cfg.Version.RefTypeVar)
		assert.Equal(t, "CI_REF", cfg.Version.RefNameVar)
		assert.Equal(t, "ci.env", cfg.Version.EnvFile)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("returns defaults for missing file", func(t *testing.T) {
		loader := NewLoader()
		cfg, err := loader.Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

		require.NoError(t, err)
		assert.False(t, loader.FileLoaded())
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "graph: from-file.yaml\ngit:\n  timeout: 2s\n")
		t.Setenv("SHADEPLAN_GRAPH", "from-env.yaml")
		t.Setenv("SHADEPLAN_GIT_TIMEOUT", "750ms")
		t.Setenv("SHADEPLAN_LOG_TIMESTAMPS", "false")

		cfg, err := NewLoader().Load(path)

		require.NoError(t, err)
		assert.Equal(t, "from-env.yaml", cfg.Graph)
		assert.Equal(t, 750*time.Millisecond, cfg.Git.Timeout)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("malformed yaml is a validation error", func(t *testing.T) {
		path := writeConfig(t, "graph: [unclosed\n")

		_, err := NewLoader().Load(path)

		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
	})

	t.Run("bad duration is a validation error", func(t *testing.T) {
		path := writeConfig(t, "git:\n  timeout: soon\n")

		_, err := NewLoader().Load(path)

		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
	})

	t.Run("uses SHADEPLAN_CONFIG when path is empty", func(t *testing.T) {
		path := writeConfig(t, "output: yaml\n")
		t.Setenv("SHADEPLAN_CONFIG", path)

		cfg, err := NewLoader().Load("")

		require.NoError(t, err)
		assert.Equal(t, "yaml", cfg.Output)
	})
}

func TestConfigFileExists(t *testing.T) {
	path := writeConfig(t, "output: table\n")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ConfigFileExists(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, exists)
}
