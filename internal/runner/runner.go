// Package runner implements the multicall dispatcher: deciding whether the
// running process should act as the rokit CLI or forward to a linked tool,
// and, in the latter case, running that tool as a child process.
package runner

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rojo-rbx/rokit/internal/artifact"
	"github.com/rojo-rbx/rokit/internal/config"
	"github.com/rojo-rbx/rokit/internal/discovery"
	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/home"
	"github.com/rojo-rbx/rokit/internal/tool"
)

// RoleFromArgv0 decides whether the running process should act as the CLI
// or forward to a linked tool, from argv0's basename with any executable
// extension stripped case-insensitively. isCLI is true when the stripped
// name is rokit's own reserved alias.
func RoleFromArgv0(argv0 string) (isCLI bool, aliasName string) {
	base := filepath.Base(argv0)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".exe") {
		base = strings.TrimSuffix(base, ext)
	}
	if strings.EqualFold(base, tool.ReservedAliasName) {
		return true, ""
	}
	return false, base
}

// Dispatch resolves aliasName to an installed tool and runs it as a child
// process, forwarding argv, stdio, and signals, and propagating its exit
// code (or 128+signal if a signal terminated the child).
func Dispatch(ctx context.Context, cfg *config.Config, cwd string, aliasName string, argv []string) (int, error) {
	alias, err := tool.ParseAlias(aliasName)
	if err != nil {
		return 1, err
	}

	h, err := home.Load(cfg)
	if err != nil {
		return 1, err
	}
	defer h.Close()

	target, err := resolveTarget(h, cwd, alias)
	if err != nil {
		return 1, err
	}

	return runChild(ctx, target, argv)
}

func resolveTarget(h *home.Home, cwd string, alias tool.Alias) (string, error) {
	spec, found, err := discovery.DiscoverToolSpec(cwd, h.Config.Home, alias, false, false)
	if err != nil {
		return "", err
	}
	if found {
		return h.Storage.ToolPath(spec), nil
	}

	fallback := filepath.Join(h.Storage.BinDir(), alias.Name()+"-unmanaged"+artifact.HostExeSuffix())
	if _, statErr := os.Stat(fallback); statErr == nil {
		return fallback, nil
	}
	return "", rokiterrors.NewAliasNotBoundError(alias.Name())
}

// runChild starts target as a child process, forwards argv and stdio
// directly, kills it on ctx cancellation, and on receiving a terminating
// signal for the platform (see runner_unix.go/runner_windows.go) kills the
// child and exits with 128+signal immediately rather than waiting to see
// how the child itself reacts to it.
func runChild(ctx context.Context, target string, argv []string) (int, error) {
	cmd := exec.Command(target, argv...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return 1, rokiterrors.NewSpawnError(target, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, forwardedSignals()...)
	defer signal.Stop(sigCh)

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	for {
		select {
		case sig := <-sigCh:
			n, ok := signalNumber(sig)
			_ = cmd.Process.Kill()
			<-waitCh
			if !ok {
				return 1, nil
			}
			return 128 + n, nil
		case werr := <-waitCh:
			return exitCodeFor(cmd, werr)
		case <-ctx.Done():
			_ = cmd.Process.Kill()
			<-waitCh
			return 1, ctx.Err()
		}
	}
}

func exitCodeFor(cmd *exec.Cmd, err error) (int, error) {
	if err == nil {
		return cmd.ProcessState.ExitCode(), nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if n, ok := terminatingSignal(exitErr); ok {
			return 128 + n, nil
		}
		return exitErr.ExitCode(), nil
	}
	return 1, err
}
