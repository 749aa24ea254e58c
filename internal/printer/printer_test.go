package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint_Table(t *testing.T) {
	rows := []ToolRow{
		{Alias: "foo", ID: "author/foo", Version: "1.0.0", Installed: true},
		{Alias: "bar", ID: "author/bar", Version: "2.0.0", Installed: false},
	}
	SortToolRows(rows)

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, rows, ToolHeaders(false), false, false))

	out := buf.String()
	assert.Contains(t, out, "ALIAS")
	assert.Contains(t, out, "bar")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "installed")
}

func TestPrint_JSON(t *testing.T) {
	rows := []ToolRow{{Alias: "foo", ID: "author/foo", Version: "1.0.0", Installed: true}}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, rows, ToolHeaders(false), false, true))

	var decoded []ToolRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rows, decoded)
}

func TestPrint_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, []ToolRow{}, ToolHeaders(false), false, false))
	assert.Contains(t, buf.String(), "No tools installed.")
}

func TestSortToolRows(t *testing.T) {
	rows := []ToolRow{{Alias: "zeta"}, {Alias: "alpha"}, {Alias: "mid"}}
	SortToolRows(rows)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, []string{rows[0].Alias, rows[1].Alias, rows[2].Alias})
}

func TestPrintSystemInfo_Table(t *testing.T) {
	var buf bytes.Buffer
	info := SystemInfo{OS: "linux", Arch: "x64", Home: "/home/user/.rokit", BinDir: "/home/user/.rokit/bin", InPath: true, RokitVer: "1.0.0"}
	require.NoError(t, PrintSystemInfo(&buf, info, false))

	out := buf.String()
	assert.Contains(t, out, "linux")
	assert.Contains(t, out, "x64")
}

func TestPrintSystemInfo_JSON(t *testing.T) {
	var buf bytes.Buffer
	info := SystemInfo{OS: "linux", Arch: "x64"}
	require.NoError(t, PrintSystemInfo(&buf, info, true))

	var decoded SystemInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, info, decoded)
}
