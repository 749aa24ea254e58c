// Package envpath manages getting Home's bin directory onto the user's
// PATH: generating a POSIX env script to source, or mutating the Windows
// per-user registry PATH value directly.
package envpath

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
)

// binTail is the platform-appropriate suffix ExistsInPath looks for at the
// end of each PATH entry.
func binTail() string {
	if runtime.GOOS == "windows" {
		return "\\bin"
	}
	return "/bin"
}

// ExistsInPath reports whether any entry of the current process's PATH is
// home's bin directory or ends in "<home dir name>/bin" (e.g. ".rokit/bin").
func ExistsInPath(home string) bool {
	want := filepath.Clean(filepath.Join(home, "bin"))
	tail := string(filepath.Separator) + filepath.Base(filepath.Clean(home)) + binTail()
	for _, entry := range splitPath(os.Getenv("PATH")) {
		if entry == "" {
			continue
		}
		cleaned := filepath.Clean(entry)
		if cleaned == want || strings.HasSuffix(cleaned, tail) {
			return true
		}
	}
	return false
}

func splitPath(path string) []string {
	sep := ":"
	if runtime.GOOS == "windows" {
		sep = ";"
	}
	return strings.Split(path, sep)
}

// AddToPath makes Home's bin directory reachable from new shells. On POSIX
// it writes (or rewrites) an env script under Home and reports whether the
// script content changed; actually sourcing it from the user's shell
// profile is left to the user (or to `rokit self-install`'s printed
// instructions). On Windows it mutates HKCU\Environment directly and
// reports whether the registry value changed.
func AddToPath(home, shell string) (changed bool, err error) {
	if runtime.GOOS == "windows" {
		return addToPathWindows(home)
	}
	return writeEnvScript(home, shell)
}

func writeEnvScript(home, shell string) (bool, error) {
	st, err := ParseShellType(filepath.Base(shell))
	if err != nil {
		st = ShellPosix
	}
	f := NewFormatter(st)

	script := GenerateScript(home, f)
	path := filepath.Join(home, "env"+f.Ext())

	existing, readErr := os.ReadFile(path)
	if readErr == nil && string(existing) == script {
		return false, nil
	}

	if err := os.MkdirAll(home, 0o755); err != nil {
		return false, rokiterrors.NewIoError(home, err)
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return false, rokiterrors.NewIoError(path, err)
	}
	return true, nil
}

// GenerateScript renders the full contents of the env script that, once
// sourced, prepends Home's bin directory to PATH.
func GenerateScript(home string, f Formatter) string {
	bin := toShellPath(home, filepath.Join(home, "bin"))
	var b strings.Builder
	b.WriteString("# generated by rokit; do not edit by hand\n")
	b.WriteString(f.ExportPath([]string{bin}))
	b.WriteString("\n")
	return b.String()
}

// toShellPath rewrites an absolute path under $HOME to a "$HOME/..." form
// so the generated script stays portable if Home is the default location
// under the user's home directory.
func toShellPath(home, p string) string {
	userHome, err := os.UserHomeDir()
	if err != nil || userHome == "" {
		return p
	}
	if p == userHome {
		return shellHome
	}
	if rest, ok := strings.CutPrefix(p, userHome+string(filepath.Separator)); ok {
		return shellHome + "/" + filepath.ToSlash(rest)
	}
	return p
}
