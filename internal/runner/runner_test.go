package runner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojo-rbx/rokit/internal/config"
	"github.com/rojo-rbx/rokit/internal/home"
)

func TestRoleFromArgv0(t *testing.T) {
	cases := []struct {
		argv0     string
		wantCLI   bool
		wantAlias string
	}{
		{"/usr/local/bin/rokit", true, ""},
		{"rokit.exe", true, ""},
		{"ROKIT", true, ""},
		{"/home/user/.rokit/bin/lune", false, "lune"},
		{"stylua.exe", false, "stylua"},
	}
	for _, c := range cases {
		isCLI, alias := RoleFromArgv0(c.argv0)
		assert.Equal(t, c.wantCLI, isCLI, c.argv0)
		assert.Equal(t, c.wantAlias, alias, c.argv0)
	}
}

func TestDispatchFailsForUnboundAlias(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell fixture")
	}
	cfg := &config.Config{Home: t.TempDir()}
	h, err := home.Load(cfg)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	_, err = Dispatch(context.Background(), cfg, t.TempDir(), "nosuchtool", nil)
	assert.Error(t, err)
}

func TestDispatchRunsUnmanagedFallback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell fixture")
	}
	cfg := &config.Config{Home: t.TempDir()}
	h, err := home.Load(cfg)
	require.NoError(t, err)
	binDir := h.Storage.BinDir()
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	script := filepath.Join(binDir, "greet-unmanaged")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 7\n"), 0o755))
	require.NoError(t, h.Close())

	code, err := Dispatch(context.Background(), cfg, t.TempDir(), "greet", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestDispatchKillsChildOnSignalInsteadOfWaiting(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix signal semantics")
	}
	cfg := &config.Config{Home: t.TempDir()}
	h, err := home.Load(cfg)
	require.NoError(t, err)
	binDir := h.Storage.BinDir()
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	// Traps SIGTERM and ignores it, so the only way the process ends is by
	// being killed outright rather than left to exit on its own terms.
	script := filepath.Join(binDir, "stubborn-unmanaged")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ntrap '' TERM\nsleep 5\n"), 0o755))
	require.NoError(t, h.Close())

	go func() {
		time.Sleep(200 * time.Millisecond)
		_ = syscall.Kill(os.Getpid(), syscall.SIGTERM)
	}()

	start := time.Now()
	code, err := Dispatch(context.Background(), cfg, t.TempDir(), "stubborn", nil)
	require.NoError(t, err)
	assert.Equal(t, 128+int(syscall.SIGTERM), code)
	assert.Less(t, time.Since(start), 4*time.Second, "child must be killed rather than left to sleep out")
}
