// Package descriptor identifies the operating system, architecture, and
// toolchain of a system — either the current host, or a target system named
// by a release asset's filename or an extracted executable's header.
package descriptor

import (
	"fmt"
	"strings"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
)

// Descriptor describes a system: its operating system, architecture, and
// (optionally) the toolchain it was built against. It's used to check
// whether an artifact can run on the current host.
type Descriptor struct {
	OS        OS
	Arch      Arch
	Toolchain Toolchain
	hasToolchain bool
}

// Current returns the Descriptor for the host running this process.
func Current() Descriptor {
	toolchain, ok := CurrentToolchain()
	return Descriptor{
		OS:           CurrentOS(),
		Arch:         CurrentArch(),
		Toolchain:    toolchain,
		hasToolchain: ok,
	}
}

// HasToolchain reports whether this Descriptor carries toolchain
// information, as opposed to it being unknown or inapplicable.
func (d Descriptor) HasToolchain() bool {
	return d.hasToolchain
}

// Detect identifies a Descriptor by scanning searchString for OS, Arch, and
// Toolchain keywords. An OS keyword must be present; Arch and Toolchain are
// optional, with Arch defaulting to DefaultArch when absent.
func Detect(searchString string) (Descriptor, bool) {
	os, ok := DetectOS(searchString)
	if !ok {
		return Descriptor{}, false
	}

	arch, ok := DetectArch(searchString)
	if !ok {
		arch = DefaultArch
	}

	toolchain, hasToolchain := DetectToolchain(searchString)

	return Descriptor{
		OS:           os,
		Arch:         arch,
		Toolchain:    toolchain,
		hasToolchain: hasToolchain,
	}, true
}

// Parse is like Detect, but returns an error identifying the unparseable
// text instead of a bool, for use at CLI and manifest boundaries.
func Parse(searchString string) (Descriptor, error) {
	d, ok := Detect(searchString)
	if !ok {
		return Descriptor{}, rokiterrors.NewIdentifierParseError(searchString, "unknown or missing operating system")
	}
	return d, nil
}

// IsCompatibleWith reports whether an artifact described by other can run on
// a host described by d. The operating system must always match exactly;
// three architecture pairs are accepted as emulation-compatible on top of an
// exact arch match: 64-bit Windows and Linux can both run 32-bit x86
// binaries, and Apple Silicon macOS can run Intel x64 binaries via Rosetta.
func (d Descriptor) IsCompatibleWith(other Descriptor) bool {
	if d.OS != other.OS {
		return false
	}
	if d.Arch == other.Arch {
		return true
	}
	switch {
	case d.OS == Windows && d.Arch == X64 && other.Arch == X86:
		return true
	case d.OS == Linux && d.Arch == X64 && other.Arch == X86:
		return true
	case d.OS == MacOS && d.Arch == Arm64 && other.Arch == X64:
		return true
	default:
		return false
	}
}

// ComparePreferredCompat orders a and b by how preferable they are as
// install candidates for a host described by d. Exact OS+Arch matches to d
// sort before emulated matches; among non-exact matches, more-preferred
// architectures (per Arch's declaration order) sort first, then more
// preferred toolchains, with OS as a final tiebreak. It does not verify that
// a or b are compatible with d at all — callers should filter with
// IsCompatibleWith first.
func (d Descriptor) ComparePreferredCompat(a, b Descriptor) int {
	aExact := a.OS == d.OS && a.Arch == d.Arch
	bExact := b.OS == d.OS && b.Arch == d.Arch
	if aExact && !bExact {
		return -1
	}
	if !aExact && bExact {
		return 1
	}

	if a.Arch != b.Arch {
		return int(a.Arch) - int(b.Arch)
	}

	if cmp := compareToolchain(a, b); cmp != 0 {
		return cmp
	}

	return int(a.OS) - int(b.OS)
}

// compareToolchain orders by Option<Toolchain>-like semantics: an absent
// toolchain sorts before a present one, matching the "no preference beats a
// wrong preference" ordering used by the toolchain keyword tables.
func compareToolchain(a, b Descriptor) int {
	if a.hasToolchain != b.hasToolchain {
		if !a.hasToolchain {
			return -1
		}
		return 1
	}
	if !a.hasToolchain {
		return 0
	}
	return int(a.Toolchain) - int(b.Toolchain)
}

// String renders the Descriptor as "os-arch" or "os-arch-toolchain".
func (d Descriptor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s-%s", d.OS, d.Arch)
	if d.hasToolchain {
		fmt.Fprintf(&sb, "-%s", d.Toolchain)
	}
	return sb.String()
}
