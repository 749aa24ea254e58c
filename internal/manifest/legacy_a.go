package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/tool"
)

// legacyAEntry is the Aftman-style value shape: either a bare
// "author/name@version" string, or an inline table naming the version and
// provider separately ({ version = "1.0.0", github = "author/name" }) or,
// for a tool hosted on some other provider, ({ version = "1.0.0",
// source = "..." }). Aftman supported pluggable sources beyond GitHub;
// rokit only speaks GitHub, so an entry naming a non-github source is
// recognized (to avoid misparsing it as malformed) but carries no
// resolvable id and is dropped by the caller.
type legacyAEntry struct {
	Version string `toml:"version"`
	GitHub  string `toml:"github"`
	Source  string `toml:"source"`
}

func (e *legacyAEntry) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		e.Version = v
		return nil
	case map[string]any:
		if gh, ok := v["github"].(string); ok {
			e.GitHub = gh
		}
		if src, ok := v["source"].(string); ok {
			e.Source = src
		}
		if ver, ok := v["version"].(string); ok {
			e.Version = ver
		}
		return nil
	default:
		return fmt.Errorf("unsupported aftman tool entry shape %T", value)
	}
}

// unresolvable reports whether e names a provider other than GitHub, which
// rokit has no way to install from.
func (e legacyAEntry) unresolvable() bool {
	return e.GitHub == "" && e.Source != ""
}

// stripVersionPrefix drops a leading "="/"^" from an Aftman version
// requirement. Aftman's caret ranges have no equivalent in rokit's
// exact-version model, so the prefix is discarded and the version parsed
// as an exact pin; an entry is already being silently best-effort-read at
// this point, same as Aftman itself pinning to the requirement's base
// version.
func stripVersionPrefix(version string) string {
	return strings.TrimLeft(version, "=^")
}

// stripSpecVersionPrefix applies stripVersionPrefix to the version half of
// a bare "author/name@version" string, leaving the identifier half alone.
func stripSpecVersionPrefix(spec string) string {
	id, version, ok := strings.Cut(spec, "@")
	if !ok {
		return spec
	}
	return id + "@" + stripVersionPrefix(version)
}

type legacyADocument struct {
	Tools map[string]any `toml:"tools"`
}

type legacyAManifest struct {
	order []tool.Alias
	specs map[tool.Alias]tool.ToolSpec
}

func parseLegacyA(path string, data []byte) (Manifest, error) {
	var doc legacyADocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, rokiterrors.NewManifestParseError(path, err)
	}

	specs := make(map[tool.Alias]tool.ToolSpec, len(doc.Tools))
	for rawAlias, rawEntry := range doc.Tools {
		// A malformed entry is dropped rather than failing the whole
		// manifest load: one bad pin shouldn't block every other tool in
		// it from resolving.
		alias, err := tool.ParseAlias(rawAlias)
		if err != nil {
			continue
		}
		var entry legacyAEntry
		if err := entry.UnmarshalTOML(rawEntry); err != nil {
			continue
		}

		if entry.unresolvable() {
			// A source rokit doesn't speak (anything but GitHub); ignore
			// the entry rather than treating it as malformed.
			continue
		}

		id := entry.GitHub
		if id == "" {
			// Bare-string form embeds the whole "author/name@version"
			// value, same shape as the native schema.
			spec, err := tool.ParseToolSpec(stripSpecVersionPrefix(entry.Version))
			if err != nil {
				continue
			}
			specs[alias] = spec
			continue
		}

		spec, err := tool.ParseToolSpec(fmt.Sprintf("%s@%s", id, stripVersionPrefix(entry.Version)))
		if err != nil {
			continue
		}
		specs[alias] = spec
	}

	order := orderedKeysUnderTable(string(data), "tools")
	if order == nil {
		for a := range specs {
			order = append(order, a)
		}
	}

	return &legacyAManifest{order: order, specs: specs}, nil
}

func (m *legacyAManifest) Kind() Kind { return LegacyA }

func (m *legacyAManifest) Has(alias tool.Alias) bool {
	_, ok := m.specs[alias]
	return ok
}

func (m *legacyAManifest) Get(alias tool.Alias) (tool.ToolSpec, bool) {
	spec, ok := m.specs[alias]
	return spec, ok
}

func (m *legacyAManifest) Add(alias tool.Alias, spec tool.ToolSpec) error {
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

func (m *legacyAManifest) Update(alias tool.Alias, spec tool.ToolSpec) error {
	if !m.Has(alias) {
		return rokiterrors.NewAliasNotBoundError(alias.String())
	}
	m.specs[alias] = spec
	return nil
}

func (m *legacyAManifest) Remove(alias tool.Alias) error {
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

func (m *legacyAManifest) ToolSpecs() map[tool.Alias]tool.ToolSpec {
	out := make(map[tool.Alias]tool.ToolSpec, len(m.specs))
	for k, v := range m.specs {
		out[k] = v
	}
	return out
}

// Save always writes the simpler bare-string form, same as the native
// schema. Aftman's inline-table form only matters for parsing manifests a
// human already wrote; rokit never needs to produce it.
func (m *legacyAManifest) Save(path string) error {
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
