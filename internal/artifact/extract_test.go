package artifact

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojo-rbx/rokit/internal/tool"
)

func testSpec(t *testing.T) tool.ToolSpec {
	t.Helper()
	spec, err := tool.ParseToolSpec("author/mytool@1.0.0")
	require.NoError(t, err)
	return spec
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func buildTarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for name, content := range files {
		hdr := &tar.Header{Name: name, Mode: 0755, Size: int64(len(content))}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func TestExtract_Zip_ExactMatch(t *testing.T) {
	data := buildZip(t, map[string]string{
		"README.md": "docs",
		"mytool":    "binary-contents",
	})
	a := Artifact{Format: Zip, DisplayName: "mytool.zip", Spec: testSpec(t)}

	out, err := Extract(a, data)
	require.NoError(t, err)
	assert.Equal(t, "binary-contents", string(out))
}

func TestExtract_TarGz_NestedDir(t *testing.T) {
	data := buildTarGz(t, map[string]string{
		"mytool-1.0.0/README.md": "docs",
		"mytool-1.0.0/mytool":    "binary-contents",
	})
	a := Artifact{Format: TarGz, DisplayName: "mytool.tar.gz", Spec: testSpec(t)}

	out, err := Extract(a, data)
	require.NoError(t, err)
	assert.Equal(t, "binary-contents", string(out))
}

func TestExtract_Gz_RawBinary(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte("raw-binary"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	a := Artifact{Format: Gz, DisplayName: "mytool-linux-amd64.gz", Spec: testSpec(t)}
	out, err := Extract(a, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "raw-binary", string(out))
}

func TestExtract_FileMissing(t *testing.T) {
	data := buildZip(t, map[string]string{"README.md": "docs"})
	a := Artifact{Format: Zip, DisplayName: "mytool.zip", Spec: testSpec(t)}

	_, err := Extract(a, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mytool")
}

func TestExtract_UnknownFormat(t *testing.T) {
	a := Artifact{Format: FormatNone, DisplayName: "mytool", Spec: testSpec(t)}
	_, err := Extract(a, []byte("anything"))
	require.Error(t, err)
}
