package tool

import (
	"strings"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
)

// ReservedAliasName is the dispatcher's own canonical name. An Alias equal
// to this (case-insensitively) would make `rokit` itself ambiguous with a
// linked tool executable, so it's rejected at parse time.
const ReservedAliasName = "rokit"

// Alias is a short name a tool is referred to by in a manifest, and the name
// its linked executable is installed under.
type Alias struct {
	name string
}

// Name returns the alias's string form.
func (a Alias) Name() string {
	return a.name
}

// String implements fmt.Stringer.
func (a Alias) String() string {
	return a.name
}

// ParseAlias parses s as an Alias.
func ParseAlias(s string) (Alias, error) {
	if s == "" {
		return Alias{}, rokiterrors.NewIdentifierParseError(s, "alias is empty")
	}
	if isInvalidIdentifier(s) {
		return Alias{}, rokiterrors.NewIdentifierParseError(s, "alias is invalid")
	}
	if strings.ContainsFunc(s, isWhitespace) {
		return Alias{}, rokiterrors.NewIdentifierParseError(s, "alias contains whitespace")
	}
	if strings.EqualFold(s, ReservedAliasName) {
		return Alias{}, rokiterrors.NewIdentifierParseError(s, "alias is reserved for rokit itself")
	}
	return Alias{name: s}, nil
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
