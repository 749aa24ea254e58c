// Package discovery walks from a working directory up to the filesystem
// root, and then the user's home directory, looking for tool manifests —
// the same ancestor-chain search a version manager or linter config loader
// uses to find the nearest applicable config file.
package discovery

import (
	"os"
	"path/filepath"

	"github.com/rojo-rbx/rokit/internal/manifest"
	"github.com/rojo-rbx/rokit/internal/tool"
)

// candidate is one manifest path discovery considers, annotated with its
// distance (in directories) from the starting cwd. Depth lets callers that
// merge multiple manifests report where a binding came from.
type candidate struct {
	path  string
	depth int
}

// candidatePaths returns every manifest path discovery should check, in
// precedence order (earlier entries win): for each directory from cwd up
// to the filesystem root, the three schema filenames in manifest.FileNames
// order; then, unless skipHome, the same filenames under home. rokitOnly
// restricts the scan to the native rokit.toml schema only.
func candidatePaths(cwd, home string, rokitOnly, skipHome bool) []candidate {
	names := manifest.FileNames
	if rokitOnly {
		names = names[:1]
	}

	var out []candidate
	dir := filepath.Clean(cwd)
	depth := 0
	for {
		for _, name := range names {
			out = append(out, candidate{path: filepath.Join(dir, name), depth: depth})
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
		depth++
	}

	if !skipHome && home != "" {
		for _, name := range names {
			out = append(out, candidate{path: filepath.Join(home, name), depth: depth + 1})
		}
	}

	return out
}

// ManifestEntry is one manifest discovery actually found and parsed on
// disk, along with its directory depth relative to the search's starting
// cwd (0 = cwd itself, increasing per ancestor, home always deepest).
type ManifestEntry struct {
	Path     string
	Depth    int
	Manifest manifest.Manifest
}

// DiscoverAllManifests reads and parses every manifest that exists along
// the search path, in precedence order. Used by the install pipeline to
// gather the full (alias, spec) set across every applicable manifest.
func DiscoverAllManifests(cwd, home string, rokitOnly, skipHome bool) ([]ManifestEntry, error) {
	var out []ManifestEntry
	for _, c := range candidatePaths(cwd, home, rokitOnly, skipHome) {
		if _, err := os.Stat(c.path); err != nil {
			continue
		}
		m, err := manifest.Load(c.path)
		if err != nil {
			return nil, err
		}
		out = append(out, ManifestEntry{Path: c.path, Depth: c.depth, Manifest: m})
	}
	return out, nil
}

// DiscoverToolSpec scans the search path in precedence order and returns
// the first spec bound to alias, stopping at the first manifest that binds
// it. It does the minimum I/O needed for the dispatch fast path: unlike
// DiscoverAllManifests it doesn't keep reading once a match is found.
func DiscoverToolSpec(cwd, home string, alias tool.Alias, rokitOnly, skipHome bool) (tool.ToolSpec, bool, error) {
	for _, c := range candidatePaths(cwd, home, rokitOnly, skipHome) {
		if _, err := os.Stat(c.path); err != nil {
			continue
		}
		m, err := manifest.Load(c.path)
		if err != nil {
			return tool.ToolSpec{}, false, err
		}
		if spec, ok := m.Get(alias); ok {
			return spec, true, nil
		}
	}
	return tool.ToolSpec{}, false, nil
}

// CollectAliasSpecs merges every manifest's bindings into a single
// (alias -> spec) set, in entries' precedence order: the first manifest
// to bind a given alias wins, matching "earlier paths win" discovery
// semantics when the same alias is bound by more than one manifest on the
// search path.
func CollectAliasSpecs(entries []ManifestEntry) map[tool.Alias]tool.ToolSpec {
	out := make(map[tool.Alias]tool.ToolSpec)
	for _, e := range entries {
		for alias, spec := range e.Manifest.ToolSpecs() {
			if _, ok := out[alias]; ok {
				continue
			}
			out[alias] = spec
		}
	}
	return out
}
