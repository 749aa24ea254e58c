package home

import (
	"sort"
	"strings"
	"sync"

	"github.com/rojo-rbx/rokit/internal/tool"
)

// InstallStore is the durable record of ToolSpecs rokit has successfully
// installed. Its presence for a spec is the install pipeline's fast-path
// skip condition (§4.I step 3) and implies the spec's binary exists at its
// content-addressed path.
type InstallStore struct {
	mu    sync.Mutex
	specs map[tool.ToolSpec]bool
}

// NewInstallStore returns an empty InstallStore.
func NewInstallStore() *InstallStore {
	return &InstallStore{specs: make(map[tool.ToolSpec]bool)}
}

// Add records spec as installed, reporting whether it was newly added.
func (s *InstallStore) Add(spec tool.ToolSpec) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.specs == nil {
		s.specs = make(map[tool.ToolSpec]bool)
	}
	if s.specs[spec] {
		return false
	}
	s.specs[spec] = true
	return true
}

// Remove deletes spec's install record, reporting whether it had one.
func (s *InstallStore) Remove(spec tool.ToolSpec) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.specs[spec] {
		return false
	}
	delete(s.specs, spec)
	return true
}

// Contains reports whether spec is recorded as installed.
func (s *InstallStore) Contains(spec tool.ToolSpec) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.specs[spec]
}

// All returns every installed spec, sorted ascending by (ID, Version).
func (s *InstallStore) All() []tool.ToolSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tool.ToolSpec, 0, len(s.specs))
	for spec := range s.specs {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// parseLegacyInstallText parses the historical one-ToolSpec-per-line
// install file, discarding unparseable lines the same way
// parseLegacyTrustText does.
func parseLegacyInstallText(data []byte) []tool.ToolSpec {
	var out []tool.ToolSpec
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if spec, err := tool.ParseToolSpec(line); err == nil {
			out = append(out, spec)
		}
	}
	return out
}
