package tool

import (
	"regexp"

	"github.com/Masterminds/semver/v3"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
)

// Version wraps a strict semver.Version (MAJOR.MINOR.PATCH[-pre][+build]).
// Unlike Masterminds/semver's own lenient NewVersion (which accepts
// shorthand like "1.2"), ParseVersion requires all three numeric
// components, matching the exact-version-only semantics a ToolSpec needs.
type Version struct {
	inner *semver.Version
}

// strictSemverPattern requires exactly MAJOR.MINOR.PATCH before any
// pre-release/build metadata suffix.
var strictSemverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+([-+].*)?$`)

// ParseVersion parses s as an exact semantic version. If s instead looks
// like a version requirement/range (e.g. "^1.2.3", "~1.2", "1.x", ">=1.0.0"),
// the returned error carries a hint steering the caller toward an exact
// version, matching ToolSpec's "ranges aren't specs" invariant.
func ParseVersion(s string) (Version, error) {
	if !strictSemverPattern.MatchString(s) {
		if _, err := semver.NewConstraint(s); err == nil {
			return Version{}, rokiterrors.NewVersionIsRangeError(s)
		}
		return Version{}, rokiterrors.NewVersionParseError(s, errNotSemver(s))
	}

	v, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, rokiterrors.NewVersionParseError(s, err)
	}
	return Version{inner: v}, nil
}

type versionError string

func (e versionError) Error() string { return string(e) }

func errNotSemver(s string) error {
	return versionError("not a valid semantic version: " + s)
}

// String renders the version in canonical MAJOR.MINOR.PATCH[-pre][+build] form.
func (v Version) String() string {
	if v.inner == nil {
		return "0.0.0"
	}
	return v.inner.String()
}

// Compare returns -1, 0, or 1 relative to other, per standard semver
// precedence (build metadata is ignored, matching semver.org's rules).
func (v Version) Compare(other Version) int {
	if v.inner == nil || other.inner == nil {
		return 0
	}
	return v.inner.Compare(other.inner)
}
