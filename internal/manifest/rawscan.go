package manifest

import (
	"strings"

	"github.com/rojo-rbx/rokit/internal/tool"
)

// leadingCommentBlock returns the contiguous run of comment and blank lines
// at the very start of a TOML document, verbatim. go-toml/v2 has no
// round-trip mode that keeps comments, so any header banner a human wrote
// above "[tools]" has to be captured from the raw text and reattached on
// Save.
func leadingCommentBlock(data string) string {
	lines := strings.SplitAfter(data, "\n")
	var out strings.Builder
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			out.WriteString(line)
			continue
		}
		break
	}
	return out.String()
}

// orderedKeysUnderTable does a best-effort raw-text scan for the "key ="
// lines appearing directly under the named TOML table, in file order. It
// exists only to preserve the human's original entry order across
// Load/Save, since go-toml/v2 decodes tables into plain Go maps and loses
// order. A manifest that fails to scan cleanly just falls back to
// whatever order the caller picks (see nativeManifest.orderedAliases).
func orderedKeysUnderTable(data, table string) []tool.Alias {
	lines := strings.Split(data, "\n")
	inTable := false
	var out []tool.Alias
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "["):
			inTable = line == "["+table+"]"
			continue
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case !inTable:
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		key = strings.Trim(key, `"'`)
		if alias, err := tool.ParseAlias(key); err == nil {
			out = append(out, alias)
		}
	}
	return out
}
