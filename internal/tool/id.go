package tool

import (
	"fmt"
	"strings"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
)

// ToolId identifies a tool by its author and name, without a version.
type ToolId struct {
	Author string
	Name   string
}

// ParseToolId parses s as "author/name", trimming whitespace around the
// separator.
func ParseToolId(s string) (ToolId, error) {
	if s == "" {
		return ToolId{}, rokiterrors.NewIdentifierParseError(s, "tool id is empty")
	}

	before, after, ok := strings.Cut(s, "/")
	if !ok {
		return ToolId{}, rokiterrors.NewIdentifierParseError(s, "missing '/' separator")
	}

	before = strings.TrimSpace(before)
	after = strings.TrimSpace(after)

	if isInvalidIdentifier(before) {
		return ToolId{}, rokiterrors.NewIdentifierParseError(s, fmt.Sprintf("author %q is empty or invalid", before))
	}
	if isInvalidIdentifier(after) {
		return ToolId{}, rokiterrors.NewIdentifierParseError(s, fmt.Sprintf("name %q is empty or invalid", after))
	}

	return ToolId{Author: before, Name: after}, nil
}

// String renders the ToolId as "author/name".
func (id ToolId) String() string {
	return id.Author + "/" + id.Name
}

// Compare orders ToolId lexicographically on (Author, Name), matching the
// total order Home's trust/install stores sort by.
func (id ToolId) Compare(other ToolId) int {
	if c := strings.Compare(id.Author, other.Author); c != 0 {
		return c
	}
	return strings.Compare(id.Name, other.Name)
}

// IntoSpec combines this ToolId with version into a ToolSpec.
func (id ToolId) IntoSpec(version Version) ToolSpec {
	return ToolSpec{ID: id, Version: version}
}

// IntoAlias converts this ToolId's name into an Alias, discarding Author.
// The result is not validated: a name that's valid as part of a ToolId can
// still be an invalid Alias (it may contain whitespace or be "rokit"), so
// the caller is responsible for checking it.
func (id ToolId) IntoAlias() Alias {
	return Alias{name: id.Name}
}
