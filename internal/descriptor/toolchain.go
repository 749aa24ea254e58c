package descriptor

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Toolchain identifies the C runtime / linker environment a binary was built
// against. Declaration order doubles as preference order when two artifacts
// otherwise tie on OS and Arch.
type Toolchain int

const (
	Msvc Toolchain = iota
	Gnu
	Musl
)

var toolchainKeywords = []struct {
	toolchain Toolchain
	keywords  []string
}{
	{Msvc, []string{"msvc"}},
	{Gnu, []string{"gnu"}},
	{Musl, []string{"musl"}},
}

// CurrentToolchain returns the Toolchain of the host running this process,
// or false if the concept doesn't apply (macOS binaries aren't tagged with
// one of these three toolchains).
//
// Go binaries aren't compiled against a selectable libc the way Rust's
// target-triple is, so unlike arch/OS detection this is a best-effort
// heuristic rather than a compile-time constant: on Linux it distinguishes
// glibc from musl by checking for musl's loader, on Windows it's always
// Msvc (cgo-free Go binaries don't actually link msvcrt, but this keeps
// self-install asset matching working against Rokit's own release assets),
// and on macOS there's no keyword to report.
func CurrentToolchain() (Toolchain, bool) {
	switch runtime.GOOS {
	case "windows":
		return Msvc, true
	case "linux":
		if isMuslHost() {
			return Musl, true
		}
		return Gnu, true
	default:
		return 0, false
	}
}

func isMuslHost() bool {
	matches, err := filepath.Glob("/lib/ld-musl-*.so.1")
	if err == nil && len(matches) > 0 {
		return true
	}
	if _, err := os.Stat("/etc/alpine-release"); err == nil {
		return true
	}
	return false
}

// DetectToolchain scans searchString for toolchain keywords, in table order.
func DetectToolchain(searchString string) (Toolchain, bool) {
	lower := strings.ToLower(searchString)
	for _, entry := range toolchainKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.toolchain, true
			}
		}
	}
	return 0, false
}

func (t Toolchain) String() string {
	switch t {
	case Msvc:
		return "msvc"
	case Gnu:
		return "gnu"
	case Musl:
		return "musl"
	default:
		return "unknown"
	}
}
