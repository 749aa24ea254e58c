package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojo-rbx/rokit/internal/tool"
)

func mustAlias(t *testing.T, s string) tool.Alias {
	t.Helper()
	a, err := tool.ParseAlias(s)
	require.NoError(t, err)
	return a
}

func mustSpec(t *testing.T, s string) tool.ToolSpec {
	t.Helper()
	spec, err := tool.ParseToolSpec(s)
	require.NoError(t, err)
	return spec
}

func TestLoad_NativeSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rokit.toml")
	writeFile(t, path, "# pinned toolchain\n[tools]\nfoo = \"author/foo@1.2.3\"\n")

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Native, m.Kind())

	spec, ok := m.Get(mustAlias(t, "foo"))
	require.True(t, ok)
	assert.Equal(t, mustSpec(t, "author/foo@1.2.3"), spec)
}

func TestLoad_LegacyASchema_BareString(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aftman.toml")
	writeFile(t, path, "[tools]\nfoo = \"author/foo@1.2.3\"\n")

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LegacyA, m.Kind())

	spec, ok := m.Get(mustAlias(t, "foo"))
	require.True(t, ok)
	assert.Equal(t, mustSpec(t, "author/foo@1.2.3"), spec)
}

func TestLoad_LegacyASchema_InlineTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aftman.toml")
	writeFile(t, path, "[tools]\nfoo = { github = \"author/foo\", version = \"1.2.3\" }\n")

	m, err := Load(path)
	require.NoError(t, err)

	spec, ok := m.Get(mustAlias(t, "foo"))
	require.True(t, ok)
	assert.Equal(t, mustSpec(t, "author/foo@1.2.3"), spec)
}

func TestLoad_LegacyASchema_VersionPrefixIsStripped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aftman.toml")
	writeFile(t, path, "[tools]\nbare = \"author/foo@^1.2.3\"\ntable = { github = \"author/bar\", version = \"=2.0.0\" }\n")

	m, err := Load(path)
	require.NoError(t, err)

	spec, ok := m.Get(mustAlias(t, "bare"))
	require.True(t, ok)
	assert.Equal(t, mustSpec(t, "author/foo@1.2.3"), spec)

	spec, ok = m.Get(mustAlias(t, "table"))
	require.True(t, ok)
	assert.Equal(t, mustSpec(t, "author/bar@2.0.0"), spec)
}

func TestLoad_LegacyASchema_NonGitHubSourceIsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aftman.toml")
	writeFile(t, path, "[tools]\nfoo = { source = \"gitlab.com/author/foo\", version = \"1.2.3\" }\nbar = \"author/bar@1.0.0\"\n")

	m, err := Load(path)
	require.NoError(t, err)

	assert.False(t, m.Has(mustAlias(t, "foo")))
	_, ok := m.Get(mustAlias(t, "bar"))
	assert.True(t, ok)
}

func TestLoad_LegacyASchema_MalformedEntryIsDroppedNotFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aftman.toml")
	writeFile(t, path, "[tools]\nbroken = \"not-a-valid-spec\"\ngood = \"author/good@1.0.0\"\n")

	m, err := Load(path)
	require.NoError(t, err)

	assert.False(t, m.Has(mustAlias(t, "broken")))
	_, ok := m.Get(mustAlias(t, "good"))
	assert.True(t, ok)
}

func TestLoad_LegacyBSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foreman.toml")
	writeFile(t, path, "[tools]\nfoo = \"author/foo@1.2.3\"\n")

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LegacyB, m.Kind())
}

func TestNativeManifest_AddUpdateRemove(t *testing.T) {
	m := NewNativeManifest()
	foo := mustAlias(t, "foo")

	require.NoError(t, m.Add(foo, mustSpec(t, "author/foo@1.0.0")))
	assert.Error(t, m.Add(foo, mustSpec(t, "author/foo@1.0.0")), "re-adding a bound alias is an error")

	require.NoError(t, m.Update(foo, mustSpec(t, "author/foo@2.0.0")))
	spec, ok := m.Get(foo)
	require.True(t, ok)
	assert.Equal(t, "2.0.0", spec.Version.String())

	require.NoError(t, m.Remove(foo))
	assert.False(t, m.Has(foo))
	assert.Error(t, m.Remove(foo), "removing an unbound alias is an error")
}

func TestNativeManifest_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rokit.toml")
	writeFile(t, path, "# banner\n[tools]\nfoo = \"author/foo@1.0.0\"\n")

	m, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, m.Add(mustAlias(t, "bar"), mustSpec(t, "author/bar@2.0.0")))
	require.NoError(t, m.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, reloaded.ToolSpecs(), 2)

	data := readFile(t, path)
	assert.Contains(t, data, "# banner", "leading comment header survives a save")
}

func TestAuthManifest_MissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadAuthManifest(filepath.Join(dir, "auth.toml"))
	require.NoError(t, err)

	_, ok := m.Token("github")
	assert.False(t, ok)
}

func TestAuthManifest_SetSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.toml")

	m, err := LoadAuthManifest(path)
	require.NoError(t, err)
	m.SetToken("github", "ghp_abc123")
	require.NoError(t, m.Save(path))

	reloaded, err := LoadAuthManifest(path)
	require.NoError(t, err)
	token, ok := reloaded.Token("github")
	require.True(t, ok)
	assert.Equal(t, "ghp_abc123", token)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
