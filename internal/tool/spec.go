package tool

import (
	"strings"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
)

// ToolSpec identifies a tool and an exact version to install.
type ToolSpec struct {
	ID      ToolId
	Version Version
}

// ParseToolSpec parses s as "author/name@version".
func ParseToolSpec(s string) (ToolSpec, error) {
	if s == "" {
		return ToolSpec{}, rokiterrors.NewIdentifierParseError(s, "tool spec is empty")
	}

	before, after, ok := strings.Cut(s, "@")
	if !ok {
		return ToolSpec{}, rokiterrors.NewIdentifierParseError(s, "missing '@' separator")
	}

	before = strings.TrimSpace(before)
	after = strings.TrimSpace(after)

	id, err := ParseToolId(before)
	if err != nil {
		return ToolSpec{}, err
	}

	version, err := ParseVersion(after)
	if err != nil {
		return ToolSpec{}, err
	}

	return ToolSpec{ID: id, Version: version}, nil
}

// String renders the ToolSpec as "author/name@version".
func (s ToolSpec) String() string {
	return s.ID.String() + "@" + s.Version.String()
}

// MatchesID reports whether this spec names id, ignoring version.
func (s ToolSpec) MatchesID(id ToolId) bool {
	return s.ID == id
}

// Compare orders ToolSpec lexicographically by (ID, Version).
func (s ToolSpec) Compare(other ToolSpec) int {
	if c := s.ID.Compare(other.ID); c != 0 {
		return c
	}
	return s.Version.Compare(other.Version)
}
