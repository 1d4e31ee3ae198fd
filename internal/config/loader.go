package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

// Environment variable prefix for shadeplan configuration.
const envPrefix = "SHADEPLAN"

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper

	// file holds the config file alone, so resolution can tell file values
	// apart from environment values.
	file *viper.Viper

	path string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range Keys {
		_ = v.BindEnv(key, EnvVar(key))
	}
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error; environment and defaults still apply.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}
	l.path = expandedPath

	if _, err := os.Stat(expandedPath); err == nil {
		l.file = viper.New()
		l.file.SetConfigFile(expandedPath)
		l.file.SetConfigType("yaml")
		if err := l.file.ReadInConfig(); err != nil {
			return nil, oerrors.NewValidationError(err.Error(), expandedPath, "",
				"Fix the YAML syntax or run 'shadeplan config init --force'")
		}
		if err := l.v.MergeConfigMap(l.file.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), expandedPath, "",
			"Durations are written like 5s or 1m")
	}

	return &cfg, nil
}

// Path returns the expanded config file path used by the last Load.
func (l *Loader) Path() string {
	return l.path
}

// FileLoaded reports whether the last Load read a config file.
func (l *Loader) FileLoaded() bool {
	return l.file != nil
}

// fileValue returns key's value from the config file alone.
func (l *Loader) fileValue(key string) (string, bool) {
	if l.file == nil || !l.file.IsSet(key) {
		return "", false
	}
	return l.file.GetString(key), true
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
