package vda5050

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// MajorVersion returns the major component of a protocol version string.
func MajorVersion(version string) (uint64, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return 0, fmt.Errorf("invalid protocol version %q: %w", version, err)
	}
	return v.Major(), nil
}

// isLegacyVersion reports whether documents of this version predate the
// closed enumerations of 2.0. Unparseable versions are treated as current so
// that their literals are checked exactly.
func isLegacyVersion(version string) bool {
	major, err := MajorVersion(version)
	if err != nil {
		return false
	}
	return major < 2
}
