package config

import (
	"os"

	"github.com/joho/godotenv"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

// EnvLookup returns a variable lookup over the process environment, falling
// back to the dotenv file at path. An empty path means the process
// environment only.
func EnvLookup(path string) (func(string) string, error) {
	if path == "" {
		return os.Getenv, nil
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	fileVars, err := godotenv.Read(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("env file does not exist", expanded,
				"Remove version.envFile from the config or create the file")
		}
		return nil, oerrors.NewValidationError(err.Error(), expanded, "", "")
	}

	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVars[key]
	}, nil
}
