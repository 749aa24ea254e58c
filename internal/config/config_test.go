package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_HonorsRokitRoot(t *testing.T) {
	t.Setenv("ROKIT_ROOT", "/tmp/custom-root")
	t.Setenv("ROKIT_NO_SYMLINKS", "")
	t.Setenv("SHELL", "/bin/bash")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-root", cfg.Home)
	assert.Equal(t, filepath.Join("/tmp/custom-root", "bin"), cfg.BinDir())
	assert.False(t, cfg.NoSymlinks)
}

func TestLoad_DefaultsUnderUserHome(t *testing.T) {
	t.Setenv("ROKIT_ROOT", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultHomeDirName), cfg.Home)
}

func TestLoad_NoSymlinksEnvVar(t *testing.T) {
	t.Setenv("ROKIT_ROOT", "/tmp/root")
	t.Setenv("ROKIT_NO_SYMLINKS", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.NoSymlinks)
}

func TestEnvScriptPath_FishVsPosix(t *testing.T) {
	cfg := &Config{Home: "/tmp/root", Shell: "/usr/bin/fish"}
	assert.Equal(t, filepath.Join("/tmp/root", "env.fish"), cfg.EnvScriptPath())

	cfg.Shell = "/bin/zsh"
	assert.Equal(t, filepath.Join("/tmp/root", "env.sh"), cfg.EnvScriptPath())
}
