// Package launcher detects whether rokit was started from an interactive
// terminal or double-clicked from a file manager / Start menu shortcut, so
// `self-install` can tailor its instructions instead of assuming the user
// already has a shell open that will pick up a freshly written env script.
package launcher

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Context describes how the current process was launched.
type Context int

const (
	// Terminal means stdout is attached to an interactive terminal: the
	// user ran rokit from a shell and will see printed output directly.
	Terminal Context = iota
	// Detached means stdout is not a terminal: rokit was likely launched
	// by double-clicking it, or from a GUI shortcut with no console.
	Detached
)

// Detect inspects the process's standard streams to classify how rokit
// was launched.
func Detect() Context {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return Terminal
	}
	return Detached
}

// FirstRunHint returns the message self-install should print for ctx,
// telling a double-click launch to open a terminal instead of assuming
// the user is already sitting in a shell that will source the env script.
func FirstRunHint(ctx Context, envScriptPath string) string {
	if ctx == Terminal {
		return "Restart your shell, or run:\n  source " + envScriptPath
	}
	return "rokit was launched without a terminal attached.\n" +
		"Open a terminal and run 'rokit self-install' again, then restart your shell."
}
