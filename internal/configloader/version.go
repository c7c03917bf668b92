package configloader

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrVersionMismatch is returned when the running binary does not satisfy
// required_version.
var ErrVersionMismatch = errors.New("asmlex version does not satisfy required_version")

// ErrUnversionedBuild is returned when a constraint is set but the binary
// carries no semantic version (a development build).
var ErrUnversionedBuild = errors.New("binary has no semantic version")

// CheckVersion verifies that version satisfies constraint. An empty
// constraint always passes.
func CheckVersion(constraint, version string) error {
	if constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parse required_version %q: %w", constraint, err)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnversionedBuild, version)
	}

	if ok, errs := c.Validate(v); !ok {
		return fmt.Errorf("%w: %s does not match %s: %w", ErrVersionMismatch, v, constraint, errors.Join(errs...))
	}
	return nil
}
