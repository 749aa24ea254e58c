package home

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojo-rbx/rokit/internal/config"
	"github.com/rojo-rbx/rokit/internal/tool"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Home: t.TempDir()}
}

func mustID(t *testing.T, s string) tool.ToolId {
	t.Helper()
	id, err := tool.ParseToolId(s)
	require.NoError(t, err)
	return id
}

func mustSpec(t *testing.T, s string) tool.ToolSpec {
	t.Helper()
	spec, err := tool.ParseToolSpec(s)
	require.NoError(t, err)
	return spec
}

func mustAlias(t *testing.T, s string) tool.Alias {
	t.Helper()
	alias, err := tool.ParseAlias(s)
	require.NoError(t, err)
	return alias
}

func TestLoadEmptyHomeStartsWithEmptyStores(t *testing.T) {
	cfg := testConfig(t)

	h, err := Load(cfg)
	require.NoError(t, err)
	defer h.Close()

	assert.Empty(t, h.Trust.All())
	assert.Empty(t, h.Install.All())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	cfg := testConfig(t)

	h, err := Load(cfg)
	require.NoError(t, err)

	id := mustID(t, "roblox/lune")
	spec := mustSpec(t, "roblox/lune@0.8.9")
	h.Trust.Add(id)
	h.Install.Add(spec)
	h.MarkDirty()
	require.NoError(t, h.Save())
	require.NoError(t, h.Close())

	h2, err := Load(cfg)
	require.NoError(t, err)
	defer h2.Close()

	assert.True(t, h2.Trust.Contains(id))
	assert.True(t, h2.Install.Contains(spec))
}

func TestLoadFallsBackToLegacyTextFiles(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, os.WriteFile(cfg.LegacyTrustPath(), []byte("roblox/lune\n"), 0o644))
	require.NoError(t, os.WriteFile(cfg.LegacyInstallPath(), []byte("roblox/lune@0.8.9\n"), 0o644))

	h, err := Load(cfg)
	require.NoError(t, err)
	defer h.Close()

	assert.True(t, h.Trust.Contains(mustID(t, "roblox/lune")))
	assert.True(t, h.Install.Contains(mustSpec(t, "roblox/lune@0.8.9")))
}

func TestLoadIgnoresLegacyFilesOnceCacheExists(t *testing.T) {
	cfg := testConfig(t)

	h, err := Load(cfg)
	require.NoError(t, err)
	h.MarkDirty()
	require.NoError(t, h.Save())
	require.NoError(t, h.Close())

	// A legacy file appearing after cache.json already exists must not be
	// consulted: cache.json is authoritative from that point on.
	require.NoError(t, os.WriteFile(cfg.LegacyTrustPath(), []byte("roblox/lune\n"), 0o644))

	h2, err := Load(cfg)
	require.NoError(t, err)
	defer h2.Close()

	assert.False(t, h2.Trust.Contains(mustID(t, "roblox/lune")))
}

func TestTryLoadFailsWhileLockHeld(t *testing.T) {
	cfg := testConfig(t)

	h, err := Load(cfg)
	require.NoError(t, err)
	defer h.Close()

	_, ok, err := TryLoad(cfg)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToolStoragePaths(t *testing.T) {
	cfg := testConfig(t)
	storage := NewToolStorage(cfg)
	spec := mustSpec(t, "roblox/lune@0.8.9")

	assert.Equal(t, filepath.Join(cfg.Home, "tool-storage", "roblox", "lune", "0.8.9"), storage.ToolDir(spec))

	require.NoError(t, storage.ReplaceToolContents(spec, []byte("#!/bin/sh\necho hi\n")))
	data, err := os.ReadFile(storage.ToolPath(spec))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho hi\n", string(data))
}

func TestReplaceSelfBytesWritesStampedCopy(t *testing.T) {
	cfg := testConfig(t)
	storage := NewToolStorage(cfg)

	require.NoError(t, storage.ReplaceSelfBytes([]byte("fake-dispatcher-v2"), "2.0.0"))

	data, err := os.ReadFile(storage.SelfLinkPath())
	require.NoError(t, err)
	version, ok := ParseLinkTrailer(data)
	require.True(t, ok)
	assert.Equal(t, "2.0.0", version)
}

func TestExistingAliasesExcludesSelfAndUnmanagedFallbacks(t *testing.T) {
	cfg := testConfig(t)
	storage := NewToolStorage(cfg)

	require.NoError(t, os.MkdirAll(storage.BinDir(), 0o755))
	for _, name := range []string{"rokit", "lune", "stylua", "foo-unmanaged"} {
		require.NoError(t, os.WriteFile(filepath.Join(storage.BinDir(), name), []byte("x"), 0o755))
	}

	aliases, err := storage.ExistingAliases()
	require.NoError(t, err)

	names := make([]string, len(aliases))
	for i, a := range aliases {
		names[i] = a.Name()
	}
	assert.ElementsMatch(t, []string{"lune", "stylua"}, names)
}

func TestExistingAliasesOnMissingBinDirIsEmpty(t *testing.T) {
	cfg := testConfig(t)
	storage := NewToolStorage(cfg)

	aliases, err := storage.ExistingAliases()
	require.NoError(t, err)
	assert.Empty(t, aliases)
}

func TestCreateToolLinkSymlinksToCanonicalSelfLink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX symlink behavior")
	}
	cfg := testConfig(t)
	storage := NewToolStorage(cfg)

	require.NoError(t, storage.CreateToolLink(mustAlias(t, "lune"), "1.0.0"))

	linkPath := filepath.Join(storage.BinDir(), "lune")
	fi, err := os.Lstat(linkPath)
	require.NoError(t, err)
	require.True(t, fi.Mode()&os.ModeSymlink != 0)

	target, err := os.Readlink(linkPath)
	require.NoError(t, err)
	assert.Equal(t, storage.SelfLinkPath(), target)
}

func TestLinkTrailerRoundTrips(t *testing.T) {
	payload := []byte("fake-dispatcher-bytes")
	stamped := stampLinkTrailer(payload, "1.4.0")

	version, ok := ParseLinkTrailer(stamped)
	require.True(t, ok)
	assert.Equal(t, "1.4.0", version)

	_, ok = ParseLinkTrailer(payload)
	assert.False(t, ok)
}
