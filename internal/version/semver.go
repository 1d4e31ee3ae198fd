package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
)

// Semver parses a derived version strictly. Errors wrap ErrValidation.
func Semver(v string) (*semver.Version, error) {
	parsed, err := semver.StrictNewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("version %q is not semantic: %v: %w", v, err, oerrors.ErrValidation)
	}
	return parsed, nil
}
