package manifest

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/tool"
)

// nativeDocument is the on-disk shape of rokit.toml: a single [tools] table
// mapping alias to a strict "author/name@version" string.
type nativeDocument struct {
	Tools map[string]string `toml:"tools"`
}

type nativeManifest struct {
	header string
	order  []tool.Alias
	specs  map[tool.Alias]tool.ToolSpec
}

func parseNative(path string, data []byte) (Manifest, error) {
	var doc nativeDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, rokiterrors.NewManifestParseError(path, err)
	}

	order := orderedKeysUnderTable(string(data), "tools")
	specs := make(map[tool.Alias]tool.ToolSpec, len(doc.Tools))
	for rawAlias, rawSpec := range doc.Tools {
		alias, err := tool.ParseAlias(rawAlias)
		if err != nil {
			return nil, rokiterrors.NewManifestParseError(path, err)
		}
		spec, err := tool.ParseToolSpec(rawSpec)
		if err != nil {
			return nil, rokiterrors.NewManifestParseError(path, err)
		}
		specs[alias] = spec
	}
	if order == nil {
		order = make([]tool.Alias, 0, len(specs))
		for a := range specs {
			order = append(order, a)
		}
	}

	return &nativeManifest{
		header: leadingCommentBlock(string(data)),
		order:  order,
		specs:  specs,
	}, nil
}

// NewNativeManifest returns an empty, freshly initialized rokit.toml
// manifest, for use by `rokit init`.
func NewNativeManifest() Manifest {
	return &nativeManifest{specs: make(map[tool.Alias]tool.ToolSpec)}
}

func (m *nativeManifest) Kind() Kind { return Native }

func (m *nativeManifest) Has(alias tool.Alias) bool {
	_, ok := m.specs[alias]
	return ok
}

func (m *nativeManifest) Get(alias tool.Alias) (tool.ToolSpec, bool) {
	spec, ok := m.specs[alias]
	return spec, ok
}

func (m *nativeManifest) Add(alias tool.Alias, spec tool.ToolSpec) error {
	if m.Has(alias) {
		return rokiterrors.New(rokiterrors.CategoryParse, "alias is already bound in this manifest").
			WithDetail("alias", alias.String()).
			WithHint("Use 'rokit update' to change its version, or remove it first.")
	}
	if m.specs == nil {
		m.specs = make(map[tool.Alias]tool.ToolSpec)
	}
	m.specs[alias] = spec
	m.order = append(m.order, alias)
	return nil
}

func (m *nativeManifest) Update(alias tool.Alias, spec tool.ToolSpec) error {
	if !m.Has(alias) {
		return rokiterrors.NewAliasNotBoundError(alias.String())
	}
	m.specs[alias] = spec
	return nil
}

func (m *nativeManifest) Remove(alias tool.Alias) error {
	if !m.Has(alias) {
		return rokiterrors.NewAliasNotBoundError(alias.String())
	}
	delete(m.specs, alias)
	for i, a := range m.order {
		if a == alias {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *nativeManifest) ToolSpecs() map[tool.Alias]tool.ToolSpec {
	out := make(map[tool.Alias]tool.ToolSpec, len(m.specs))
	for k, v := range m.specs {
		out[k] = v
	}
	return out
}

func (m *nativeManifest) Save(path string) error {
	var buf bytes.Buffer
	if m.header != "" {
		buf.WriteString(m.header)
		if !strings.HasSuffix(m.header, "\n") {
			buf.WriteByte('\n')
		}
	}
	buf.WriteString("[tools]\n")
	for _, alias := range m.orderedAliases() {
		spec := m.specs[alias]
		fmt.Fprintf(&buf, "%s = %q\n", alias.String(), spec.String())
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return rokiterrors.NewIoError(path, err)
	}
	return nil
}

// orderedAliases returns every bound alias, with aliases seen in the
// original file first (in file order) followed by any newly added aliases
// in insertion order. This is how Save preserves a human's existing layout
// instead of dumping entries in Go's randomized map order.
func (m *nativeManifest) orderedAliases() []tool.Alias {
	seen := make(map[tool.Alias]bool, len(m.order))
	out := make([]tool.Alias, 0, len(m.specs))
	for _, a := range m.order {
		if _, ok := m.specs[a]; ok && !seen[a] {
			out = append(out, a)
			seen[a] = true
		}
	}
	for a := range m.specs {
		if !seen[a] {
			out = append(out, a)
			seen[a] = true
		}
	}
	return out
}
