package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojo-rbx/rokit/internal/artifact"
	"github.com/rojo-rbx/rokit/internal/descriptor"
	"github.com/rojo-rbx/rokit/internal/tool"
)

func makeArtifacts(t *testing.T, spec tool.ToolSpec, names ...string) []artifact.Artifact {
	t.Helper()
	out := make([]artifact.Artifact, len(names))
	for i, n := range names {
		out[i] = artifact.Artifact{DisplayName: n, Format: artifact.FormatFromFilename(n), Spec: spec}
	}
	return out
}

func TestSortBySystemCompatibility_SpecificityRanking(t *testing.T) {
	spec, err := tool.ParseToolSpec("author/tool@1.0.0")
	require.NoError(t, err)

	artifacts := makeArtifacts(t, spec,
		"tool-1.0.0-x86_64-linux.tar.gz",
		"tool-light-1.0.0-x86_64-linux.tar.gz",
		"tool-1.0.0-aarch64-linux.tar.gz",
	)

	host := descriptor.Descriptor{OS: descriptor.Linux, Arch: descriptor.X64}
	ranked := SortBySystemCompatibility(host, artifacts, "tool")

	require.Len(t, ranked, 2, "the arm64 artifact is incompatible with an x64 host")
	assert.Equal(t, "tool-1.0.0-x86_64-linux.tar.gz", ranked[0].DisplayName)
	assert.Equal(t, "tool-light-1.0.0-x86_64-linux.tar.gz", ranked[1].DisplayName)
}

func TestSortBySystemCompatibility_ExactBeatsEmulated(t *testing.T) {
	spec, err := tool.ParseToolSpec("author/tool@1.0.0")
	require.NoError(t, err)

	artifacts := makeArtifacts(t, spec,
		"tool-1.0.0-x86-windows.zip",
		"tool-1.0.0-x64-windows.zip",
	)

	host := descriptor.Descriptor{OS: descriptor.Windows, Arch: descriptor.X64}
	ranked := SortBySystemCompatibility(host, artifacts, "tool")

	require.Len(t, ranked, 2)
	assert.Equal(t, "tool-1.0.0-x64-windows.zip", ranked[0].DisplayName, "exact match beats x86-on-x64 emulation")
}

func TestFindPartiallyCompatibleFallback(t *testing.T) {
	spec, err := tool.ParseToolSpec("author/tool@1.0.0")
	require.NoError(t, err)

	artifacts := makeArtifacts(t, spec, "tool-1.0.0-arm64-linux.tar.gz")
	host := descriptor.Descriptor{OS: descriptor.Linux, Arch: descriptor.X64}

	most, ok := FindMostCompatibleArtifact(host, artifacts, "tool")
	assert.True(t, ok, "with no exact match, the OS-only fallback is used")
	assert.Equal(t, "tool-1.0.0-arm64-linux.tar.gz", most.DisplayName)

	fallback, ok := FindPartiallyCompatibleFallback(host, artifacts, "tool")
	require.True(t, ok)
	assert.Equal(t, "tool-1.0.0-arm64-linux.tar.gz", fallback.DisplayName)
}

func TestSortBySystemCompatibility_DropsUnparseableNames(t *testing.T) {
	spec, err := tool.ParseToolSpec("author/tool@1.0.0")
	require.NoError(t, err)

	artifacts := makeArtifacts(t, spec, "checksums.txt", "tool-1.0.0-x86_64-linux.tar.gz")
	host := descriptor.Descriptor{OS: descriptor.Linux, Arch: descriptor.X64}

	ranked := SortBySystemCompatibility(host, artifacts, "tool")
	require.Len(t, ranked, 1)
	assert.Equal(t, "tool-1.0.0-x86_64-linux.tar.gz", ranked[0].DisplayName)
}
