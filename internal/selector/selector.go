// Package selector ranks a release's artifacts by compatibility with a host
// descriptor and picks the best candidate to install.
package selector

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/rojo-rbx/rokit/internal/artifact"
	"github.com/rojo-rbx/rokit/internal/descriptor"
)

// candidate pairs an artifact with the Descriptor parsed from its display name.
type candidate struct {
	artifact   artifact.Artifact
	descriptor descriptor.Descriptor
}

// SortBySystemCompatibility returns, in preference order, every artifact
// from release whose parsed Descriptor is exactly compatible with host.
// Artifacts whose display name doesn't parse into a Descriptor are dropped.
func SortBySystemCompatibility(host descriptor.Descriptor, artifacts []artifact.Artifact, toolName string) []artifact.Artifact {
	return rank(host, artifacts, toolName, false)
}

// FindPartiallyCompatibleFallback returns the single best artifact whose OS
// matches host even if its architecture doesn't, or false if none exist.
// FindMostCompatibleArtifact falls back to it when no exact match is found,
// e.g. to run an x86 binary through emulation on an unsupported arch.
func FindPartiallyCompatibleFallback(host descriptor.Descriptor, artifacts []artifact.Artifact, toolName string) (artifact.Artifact, bool) {
	ranked := rank(host, artifacts, toolName, true)
	if len(ranked) == 0 {
		return artifact.Artifact{}, false
	}
	return ranked[0], true
}

// FindMostCompatibleArtifact picks the single best artifact for host: an
// exact compatibility match if one exists, else the best OS-only fallback
// match, else false.
func FindMostCompatibleArtifact(host descriptor.Descriptor, artifacts []artifact.Artifact, toolName string) (artifact.Artifact, bool) {
	exact := SortBySystemCompatibility(host, artifacts, toolName)
	if len(exact) > 0 {
		return exact[0], true
	}
	return FindPartiallyCompatibleFallback(host, artifacts, toolName)
}

func rank(host descriptor.Descriptor, artifacts []artifact.Artifact, toolName string, allowFallback bool) []artifact.Artifact {
	candidates := make([]candidate, 0, len(artifacts))
	for _, a := range artifacts {
		d, ok := descriptor.Detect(a.DisplayName)
		if !ok {
			continue
		}
		if host.IsCompatibleWith(d) {
			candidates = append(candidates, candidate{artifact: a, descriptor: d})
			continue
		}
		if allowFallback && host.OS == d.OS {
			candidates = append(candidates, candidate{artifact: a, descriptor: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if c := host.ComparePreferredCompat(ci.descriptor, cj.descriptor); c != 0 {
			return c < 0
		}
		if c := specificityScore(ci.artifact.DisplayName, toolName) - specificityScore(cj.artifact.DisplayName, toolName); c != 0 {
			return c < 0
		}
		return ci.artifact.Format < cj.artifact.Format
	})

	out := make([]artifact.Artifact, len(candidates))
	for i, c := range candidates {
		out[i] = c.artifact
	}
	return out
}

// specificityScore scores how well displayName's non-platform tokens match
// toolName's tokens: lower is a better (more specific) match. This is what
// ranks "tool-1.0.0-linux-x86_64.tar.gz" ahead of
// "tool-light-1.0.0-linux-x86_64.tar.gz" for a tool literally named "tool".
func specificityScore(displayName, toolName string) int {
	nameTokens := tokenize(toolName)
	assetTokens := filterPlatformTokens(tokenize(displayName))

	score := abs(len(assetTokens) - len(nameTokens))
	n := len(assetTokens)
	if len(nameTokens) < n {
		n = len(nameTokens)
	}
	for i := 0; i < n; i++ {
		if !strings.EqualFold(assetTokens[i], nameTokens[i]) {
			score++
		}
	}
	return score
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	})
}

// filterPlatformTokens drops tokens that are OS keywords, Arch keywords,
// parseable as (optionally v-prefixed) semver, or entirely numeric — the
// residue is what's left to compare against the tool's own name tokens.
func filterPlatformTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if isPlatformToken(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func isPlatformToken(t string) bool {
	if _, ok := descriptor.DetectOS(t); ok {
		return true
	}
	if _, ok := descriptor.DetectArch(t); ok {
		return true
	}
	if isNumeric(t) {
		return true
	}
	versionCandidate := strings.TrimPrefix(strings.ToLower(t), "v")
	if _, err := semver.NewVersion(versionCandidate); err == nil {
		return true
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
