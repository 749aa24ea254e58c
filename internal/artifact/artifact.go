// Package artifact models a downloadable release asset and the extraction
// step that turns its bytes into a runnable tool executable.
package artifact

import (
	"github.com/rojo-rbx/rokit/internal/tool"
)

// Format identifies the compression/archive container a display name
// implies. The declared order doubles as the tie-break preference order
// used by the selector when two candidates are otherwise equally ranked:
// TarGz < Tar < Zip < Gz < FormatNone.
type Format int

const (
	TarGz Format = iota
	Tar
	Zip
	Gz
	FormatNone
)

func (f Format) String() string {
	switch f {
	case TarGz:
		return "tar.gz"
	case Tar:
		return "tar"
	case Zip:
		return "zip"
	case Gz:
		return "gz"
	default:
		return "unknown"
	}
}

// Artifact is one downloadable release asset for a single tool spec.
type Artifact struct {
	// Provider names the ArtifactProvider this artifact came from, e.g. "github".
	Provider string

	// Format is the artifact's container format, derived from DisplayName.
	Format Format

	// ID is the provider-opaque identifier used to fetch the asset bytes
	// (a GitHub release asset id, for the reference provider).
	ID string

	// URL is the direct download URL, when the provider exposes one.
	URL string

	// DisplayName is the asset's filename, as advertised by the provider.
	DisplayName string

	// Spec is the tool and version this artifact is a candidate for.
	Spec tool.ToolSpec
}

// Release is a single version's set of downloadable artifacts.
type Release struct {
	// Changelog is the release's free-form notes, if the provider has any.
	Changelog string

	// Artifacts are the release's assets, in the order the provider listed them.
	Artifacts []Artifact
}
