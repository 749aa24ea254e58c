// Package manifest reads and writes the per-project and per-user files that
// bind an Alias to a ToolSpec. Three on-disk schemas are supported; callers
// work against the uniform Manifest interface regardless of which one a
// given file turned out to be.
package manifest

import (
	"os"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/tool"
)

// Kind identifies which of the three closed schemas a Manifest was parsed
// as. Discovery needs to enumerate candidate filenames deterministically,
// so this is a closed set, not an open plugin registry.
type Kind int

const (
	// Native is rokit's own schema: alias -> "author/name@version" string.
	Native Kind = iota
	// LegacyA is the Aftman-style schema: alias -> string or inline table
	// ({ version = "…", github = "…" }).
	LegacyA
	// LegacyB is the Foreman-style schema: alias -> strict
	// "author/name@version" string, same value shape as Native but a
	// distinct historical file.
	LegacyB
)

// FileNames returns, per Kind in the discovery precedence order, the
// filename a manifest of that kind is read from and saved to.
var FileNames = []string{
	Native:  "rokit.toml",
	LegacyA: "aftman.toml",
	LegacyB: "foreman.toml",
}

// Manifest is a mapping from Alias to ToolSpec, loaded from one of the three
// schemas, plus any free-form header comment preceding the tools table.
type Manifest interface {
	// Kind reports which schema this manifest was parsed as.
	Kind() Kind

	// Has reports whether alias is bound in this manifest.
	Has(alias tool.Alias) bool

	// Get returns the spec bound to alias, if any.
	Get(alias tool.Alias) (tool.ToolSpec, bool)

	// Add binds alias to spec, failing if alias is already present.
	Add(alias tool.Alias, spec tool.ToolSpec) error

	// Update rebinds an already-present alias to a new spec.
	Update(alias tool.Alias, spec tool.ToolSpec) error

	// Remove unbinds alias, failing if it isn't present.
	Remove(alias tool.Alias) error

	// ToolSpecs returns every (alias, spec) pair bound in this manifest.
	ToolSpecs() map[tool.Alias]tool.ToolSpec

	// Save serializes the manifest back to path, preserving key order and
	// (for Native) a leading header comment block.
	Save(path string) error
}

// Load reads and parses the manifest at path, inferring its Kind from the
// filename (see FileNames).
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rokiterrors.NewIoError(path, err)
	}
	return parseByFileName(path, data)
}

func parseByFileName(path string, data []byte) (Manifest, error) {
	name := baseName(path)
	switch name {
	case FileNames[LegacyA]:
		return parseLegacyA(path, data)
	case FileNames[LegacyB]:
		return parseLegacyB(path, data)
	default:
		return parseNative(path, data)
	}
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
