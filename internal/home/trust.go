package home

import (
	"sort"
	"strings"
	"sync"

	"github.com/rojo-rbx/rokit/internal/tool"
)

// TrustStore is the durable record of ToolIds the user has explicitly
// approved for installation. The install pipeline's trust gate (§4.I)
// consults it before ever downloading anything for a tool it hasn't seen.
type TrustStore struct {
	mu  sync.Mutex
	ids map[tool.ToolId]bool
}

// NewTrustStore returns an empty TrustStore.
func NewTrustStore() *TrustStore {
	return &TrustStore{ids: make(map[tool.ToolId]bool)}
}

// Add records id as trusted, reporting whether it was newly added.
func (s *TrustStore) Add(id tool.ToolId) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		s.ids = make(map[tool.ToolId]bool)
	}
	if s.ids[id] {
		return false
	}
	s.ids[id] = true
	return true
}

// Remove revokes id's trust, reporting whether it had been trusted.
func (s *TrustStore) Remove(id tool.ToolId) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ids[id] {
		return false
	}
	delete(s.ids, id)
	return true
}

// Contains reports whether id is currently trusted.
func (s *TrustStore) Contains(id tool.ToolId) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[id]
}

// All returns every trusted id, sorted ascending by (Author, Name).
func (s *TrustStore) All() []tool.ToolId {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tool.ToolId, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// parseLegacyTrustText parses the historical one-ToolId-per-line trust
// file. An unparseable line is silently discarded: a corrupted trust file
// degrades to "nothing trusted yet" (the user gets re-prompted on next
// install), never to a load failure.
func parseLegacyTrustText(data []byte) []tool.ToolId {
	var out []tool.ToolId
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if id, err := tool.ParseToolId(line); err == nil {
			out = append(out, id)
		}
	}
	return out
}
