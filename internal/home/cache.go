package home

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/tool"
)

// toolCacheDocument is tool-storage/cache.json's on-disk shape: the trust
// and install sets combined into one JSON object, both arrays sorted.
type toolCacheDocument struct {
	Trusted   []string `json:"trusted"`
	Installed []string `json:"installed"`
}

// loadToolCache reads path's combined JSON record. A missing file isn't an
// error: both sets simply start out empty, the normal state for a brand
// new Home.
func loadToolCache(path string) (*TrustStore, *InstallStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTrustStore(), NewInstallStore(), nil
		}
		return nil, nil, rokiterrors.NewIoError(path, err)
	}

	var doc toolCacheDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, rokiterrors.Wrap(rokiterrors.CategoryParse, "failed to parse tool cache", err)
	}

	trust := NewTrustStore()
	for _, raw := range doc.Trusted {
		if id, err := tool.ParseToolId(raw); err == nil {
			trust.Add(id)
		}
	}
	install := NewInstallStore()
	for _, raw := range doc.Installed {
		if spec, err := tool.ParseToolSpec(raw); err == nil {
			install.Add(spec)
		}
	}
	return trust, install, nil
}

// saveToolCache atomically writes the combined trust/install record to
// path: a temp file in the same directory, then a rename, so a process
// killed mid-write never leaves a half-written cache.json behind.
func saveToolCache(path string, trust *TrustStore, install *InstallStore) error {
	ids := trust.All()
	trustedStrs := make([]string, len(ids))
	for i, id := range ids {
		trustedStrs[i] = id.String()
	}
	sort.Strings(trustedStrs)

	specs := install.All()
	installedStrs := make([]string, len(specs))
	for i, s := range specs {
		installedStrs[i] = s.String()
	}
	sort.Strings(installedStrs)

	data, err := json.MarshalIndent(toolCacheDocument{Trusted: trustedStrs, Installed: installedStrs}, "", "  ")
	if err != nil {
		return rokiterrors.Wrap(rokiterrors.CategoryIo, "failed to serialize tool cache", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return rokiterrors.NewIoError(dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".cache-*.json.tmp")
	if err != nil {
		return rokiterrors.NewIoError(path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return rokiterrors.NewIoError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return rokiterrors.NewIoError(path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return rokiterrors.NewIoError(path, err)
	}
	return nil
}
