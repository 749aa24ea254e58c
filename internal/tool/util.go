package tool

import "strings"

// isInvalidIdentifier reports whether s cannot be used as an Alias, or as
// the author/name half of a ToolId, or as the version half of a ToolSpec
// string before it's parsed as a Version.
func isInvalidIdentifier(s string) bool {
	if s == "" {
		return true
	}
	if strings.TrimSpace(s) == "" {
		return true
	}
	return strings.ContainsAny(s, ":/@")
}
