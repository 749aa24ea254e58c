package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/tool"
)

// legacyBDocument is the Foreman-style schema: same value shape as native
// (a bare "author/name@version" string per alias), but a distinct,
// historical filename that discovery still has to recognize.
type legacyBDocument struct {
	Tools map[string]string `toml:"tools"`
}

type legacyBManifest struct {
	order []tool.Alias
	specs map[tool.Alias]tool.ToolSpec
}

func parseLegacyB(path string, data []byte) (Manifest, error) {
	var doc legacyBDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, rokiterrors.NewManifestParseError(path, err)
	}

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

	order := orderedKeysUnderTable(string(data), "tools")
	if order == nil {
		for a := range specs {
			order = append(order, a)
		}
	}

	return &legacyBManifest{order: order, specs: specs}, nil
}

func (m *legacyBManifest) Kind() Kind { return LegacyB }

func (m *legacyBManifest) Has(alias tool.Alias) bool {
	_, ok := m.specs[alias]
	return ok
}

func (m *legacyBManifest) Get(alias tool.Alias) (tool.ToolSpec, bool) {
	spec, ok := m.specs[alias]
	return spec, ok
}

func (m *legacyBManifest) Add(alias tool.Alias, spec tool.ToolSpec) error {
	if m.Has(alias) {
		return rokiterrors.New(rokiterrors.CategoryParse, "alias is already bound in this manifest").
			WithDetail("alias", alias.String())
	}
	if m.specs == nil {
		m.specs = make(map[tool.Alias]tool.ToolSpec)
	}
	m.specs[alias] = spec
	m.order = append(m.order, alias)
	return nil
}

func (m *legacyBManifest) Update(alias tool.Alias, spec tool.ToolSpec) error {
	if !m.Has(alias) {
		return rokiterrors.NewAliasNotBoundError(alias.String())
	}
	m.specs[alias] = spec
	return nil
}

func (m *legacyBManifest) Remove(alias tool.Alias) error {
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

func (m *legacyBManifest) ToolSpecs() map[tool.Alias]tool.ToolSpec {
	out := make(map[tool.Alias]tool.ToolSpec, len(m.specs))
	for k, v := range m.specs {
		out[k] = v
	}
	return out
}

func (m *legacyBManifest) Save(path string) error {
	var out []byte
	out = append(out, "[tools]\n"...)
	seen := make(map[tool.Alias]bool, len(m.specs))
	for _, alias := range m.order {
		spec, ok := m.specs[alias]
		if !ok || seen[alias] {
			continue
		}
		seen[alias] = true
		out = append(out, []byte(fmt.Sprintf("%s = %q\n", alias.String(), spec.String()))...)
	}
	for alias, spec := range m.specs {
		if seen[alias] {
			continue
		}
		out = append(out, []byte(fmt.Sprintf("%s = %q\n", alias.String(), spec.String()))...)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return rokiterrors.NewIoError(path, err)
	}
	return nil
}
