package envpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistsInPath(t *testing.T) {
	home := "/home/user/.rokit"
	t.Setenv("PATH", "/usr/bin:/home/user/.rokit/bin:/usr/local/bin")
	assert.True(t, ExistsInPath(home))

	t.Setenv("PATH", "/usr/bin:/usr/local/bin")
	assert.False(t, ExistsInPath(home))
}

func TestParseShellType(t *testing.T) {
	tests := []struct {
		in   string
		want ShellType
	}{
		{"bash", ShellPosix},
		{"zsh", ShellPosix},
		{"sh", ShellPosix},
		{"", ShellPosix},
		{"fish", ShellFish},
	}
	for _, tt := range tests {
		got, err := ParseShellType(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseShellType("nushell")
	assert.Error(t, err)
}

func TestGenerateScript_POSIX(t *testing.T) {
	script := GenerateScript("/home/user/.rokit", NewFormatter(ShellPosix))
	assert.Contains(t, script, "export PATH=")
	assert.Contains(t, script, "bin")
}

func TestGenerateScript_Fish(t *testing.T) {
	script := GenerateScript("/home/user/.rokit", NewFormatter(ShellFish))
	assert.Contains(t, script, "fish_add_path")
}

func TestWriteEnvScript_IdempotentWhenUnchanged(t *testing.T) {
	home := t.TempDir()

	changed, err := writeEnvScript(home, "/bin/bash")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = writeEnvScript(home, "/bin/bash")
	require.NoError(t, err)
	assert.False(t, changed, "writing the same script content again reports no change")

	data, err := os.ReadFile(filepath.Join(home, "env.sh"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "export PATH=")
}
