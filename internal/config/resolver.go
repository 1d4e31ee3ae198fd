package config

import (
	"fmt"
	"os"

	"github.com/opmodel/shadeplan/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value together with its provenance.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// Resolve resolves key using precedence:
// (1) flag when flagSet, (2) SHADEPLAN_* env, (3) config file, (4) default.
// Call Load first so the config file is known.
func (l *Loader) Resolve(key, flagValue string, flagSet bool) ResolvedValue {
	candidates := make([]struct {
		source ConfigSource
		value  string
	}, 0, 4)

	add := func(source ConfigSource, value string, ok bool) {
		if ok {
			candidates = append(candidates, struct {
				source ConfigSource
				value  string
			}{source, value})
		}
	}

	add(SourceFlag, flagValue, flagSet)
	envValue, envOK := os.LookupEnv(EnvVar(key))
	add(SourceEnv, envValue, envOK && envValue != "")
	fileValue, fileOK := l.fileValue(key)
	add(SourceConfig, fileValue, fileOK)
	def, defOK := Defaults[key]
	add(SourceDefault, fmt.Sprint(def), defOK)

	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for i, c := range candidates {
		if i == 0 {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) SHADEPLAN_CONFIG env, (3) ~/.shadeplan/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	result := ResolvedValue{
		Key:      "config",
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv("SHADEPLAN_CONFIG")

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	if opts.FlagValue != "" {
		result.Value = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	} else if envValue != "" {
		result.Value = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	} else {
		result.Value = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
