// Package config provides configuration loading and management.
package config

import "time"

// Configuration keys, as written in the config file.
const (
	KeyGraph      = "graph"
	KeyOutput     = "output"
	KeyGitBinary  = "git.binary"
	KeyGitDir     = "git.dir"
	KeyGitTimeout = "git.timeout"
	KeyRefTypeVar = "version.refTypeVar"
	KeyRefNameVar = "version.refNameVar"
	KeyEnvFile    = "version.envFile"
	KeyTimestamps = "log.timestamps"
)

// Keys lists every configuration key.
var Keys = []string{
	KeyGraph, KeyOutput,
	KeyGitBinary, KeyGitDir, KeyGitTimeout,
	KeyRefTypeVar, KeyRefNameVar, KeyEnvFile,
	KeyTimestamps,
}

// GitConfig controls the git subprocess used for version derivation.
type GitConfig struct {
	// Binary is the git executable. Env: SHADEPLAN_GIT_BINARY, Default: git
	Binary string `mapstructure:"binary"`

	// Dir is the working tree to describe. Default: current directory.
	Dir string `mapstructure:"dir"`

	// Timeout bounds each git call. Default: 5s
	Timeout time.Duration `mapstructure:"timeout"`
}

// VersionConfig controls version derivation.
type VersionConfig struct {
	// RefTypeVar names the variable holding the CI ref type. Default: GITHUB_REF_TYPE
	RefTypeVar string `mapstructure:"refTypeVar"`

	// RefNameVar names the variable holding the CI ref name. Default: GITHUB_REF_NAME
	RefNameVar string `mapstructure:"refNameVar"`

	// EnvFile is an optional dotenv file consulted after the process environment.
	EnvFile string `mapstructure:"envFile"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps"`
}

// Config represents the shadeplan configuration.
// Loaded from ~/.shadeplan/config.yaml.
type Config struct {
	// Graph is the build graph file. Env: SHADEPLAN_GRAPH, Default: build-graph.yaml
	Graph string `mapstructure:"graph"`

	// Output is the default output format. Env: SHADEPLAN_OUTPUT, Default: table
	Output string `mapstructure:"output"`

	Git     GitConfig     `mapstructure:"git"`
	Version VersionConfig `mapstructure:"version"`
	Log     LogConfig     `mapstructure:"log"`
}

// Defaults maps each key with a built-in default to its value.
var Defaults = map[string]any{
	KeyGraph:      "build-graph.yaml",
	KeyOutput:     "table",
	KeyGitBinary:  "git",
	KeyGitTimeout: "5s",
	KeyRefTypeVar: "GITHUB_REF_TYPE",
	KeyRefNameVar: "GITHUB_REF_NAME",
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		Graph:  "build-graph.yaml",
		Output: "table",
		Git: GitConfig{
			Binary:  "git",
			Timeout: 5 * time.Second,
		},
		Version: VersionConfig{
			RefTypeVar: "GITHUB_REF_TYPE",
			RefNameVar: "GITHUB_REF_NAME",
		},
	}
}

// DefaultConfigTemplate is written by `shadeplan config init`.
const DefaultConfigTemplate = `# shadeplan configuration
#
# Precedence: command-line flag > SHADEPLAN_* environment variable > this file > default.

# Build graph file. YAML unless the extension is .toml.
graph: build-graph.yaml

# Default output format for list-like commands: table, yaml, json.
output: table

git:
  binary: git
  # dir: /path/to/working/tree
  timeout: 5s

version:
  # A CI tag build is detected when refTypeVar equals "tag".
  refTypeVar: GITHUB_REF_TYPE
  refNameVar: GITHUB_REF_NAME
  # Optional dotenv file. The process environment wins over its values.
  # envFile: .env

log:
  timestamps: true
`
