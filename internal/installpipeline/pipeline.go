// Package installpipeline runs the concurrent, trust-gated install of a
// batch of tool specs: dedup, trust gate, per-spec fetch/extract/place, and
// a link-repair pass, mirroring the teacher's own goroutine+errgroup fan-out
// over its declarative resource graph.
package installpipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rojo-rbx/rokit/internal/artifact"
	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/descriptor"
	"github.com/rojo-rbx/rokit/internal/home"
	"github.com/rojo-rbx/rokit/internal/selector"
	"github.com/rojo-rbx/rokit/internal/tool"
)

// Provider is the capability set the pipeline needs from a release
// provider; internal/github.Provider satisfies it.
type Provider interface {
	ReleaseBySpec(ctx context.Context, spec tool.ToolSpec) (artifact.Release, error)
	DownloadArtifact(ctx context.Context, a artifact.Artifact) ([]byte, error)
}

// TrustPrompter asks the user whether to trust each of ids, returning the
// subset approved. It is never called for already-trusted ids.
type TrustPrompter func(ids []tool.ToolId) []tool.ToolId

// Options are the run's policy flags.
type Options struct {
	// NoTrustCheck skips the trust gate entirely; every requested spec is
	// treated as pre-approved.
	NoTrustCheck bool

	// Force re-downloads and reinstalls even specs already recorded in the
	// install store.
	Force bool

	// Concurrency bounds the number of specs installed in parallel. Zero
	// means a sane default.
	Concurrency int

	// RokitVersion is stamped into any copied (non-symlink) dispatcher link.
	RokitVersion string

	// OnStart and OnFinish, when set, are called as each spec's install
	// begins and ends, purely for progress reporting (e.g. the CLI's mpb
	// bars); the pipeline's own control flow never depends on them.
	OnStart  func(spec tool.ToolSpec)
	OnFinish func(result Result)
}

const defaultConcurrency = 4

// Request is one (alias, spec) pair to install, as discovered from one or
// many manifests.
type Request struct {
	Alias tool.Alias
	Spec  tool.ToolSpec
}

// Result is one spec's outcome.
type Result struct {
	Spec      tool.ToolSpec
	Installed bool
	Err       error
}

// Run executes the full pipeline against h and returns one Result per
// distinct spec requested. A spec's failure never aborts the others; Run
// itself only returns an error for something that makes the whole run
// meaningless (e.g. failing to persist the trust/install stores).
func Run(ctx context.Context, h *home.Home, provider Provider, requests []Request, opts Options, prompt TrustPrompter) ([]Result, error) {
	specs, aliasesBySpec := dedupeRequests(requests)

	trusted, declined := trustGate(h, specs, opts, prompt)

	results := make([]Result, 0, len(specs))
	for _, spec := range declined {
		results = append(results, Result{Spec: spec, Installed: false})
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, spec := range trusted {
		spec := spec
		g.Go(func() error {
			if opts.OnStart != nil {
				opts.OnStart(spec)
			}
			installed, err := installOne(gctx, h, provider, spec, opts)
			result := Result{Spec: spec, Installed: installed, Err: err}
			if opts.OnFinish != nil {
				opts.OnFinish(result)
			}
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	// Errors are aggregated per-Result above; errgroup.Wait only surfaces a
	// failure if one of the goroutines itself returned a non-nil error,
	// which installOne never does (it reports failure through Result.Err
	// instead), so the run never short-circuits on one spec's failure.
	_ = g.Wait()

	if err := relinkAliases(h, aliasesBySpec, opts.RokitVersion); err != nil {
		return results, err
	}

	h.MarkDirty()
	if err := h.Save(); err != nil {
		return results, err
	}

	return results, nil
}

func dedupeRequests(requests []Request) ([]tool.ToolSpec, map[tool.ToolSpec][]tool.Alias) {
	seen := make(map[tool.ToolSpec]bool)
	var specs []tool.ToolSpec
	aliases := make(map[tool.ToolSpec][]tool.Alias)

	for _, r := range requests {
		if !seen[r.Spec] {
			seen[r.Spec] = true
			specs = append(specs, r.Spec)
		}
		already := false
		for _, a := range aliases[r.Spec] {
			if a == r.Alias {
				already = true
				break
			}
		}
		if !already {
			aliases[r.Spec] = append(aliases[r.Spec], r.Alias)
		}
	}
	return specs, aliases
}

// trustGate partitions specs into those cleared to install this run and
// those declined by the user. Approved new ids are recorded as trusted
// immediately so a later spec for the same id in this batch doesn't
// re-prompt.
func trustGate(h *home.Home, specs []tool.ToolSpec, opts Options, prompt TrustPrompter) (trusted []tool.ToolSpec, declined []tool.ToolSpec) {
	if opts.NoTrustCheck {
		return specs, nil
	}

	var untrustedIDs []tool.ToolId
	seenID := make(map[tool.ToolId]bool)
	for _, spec := range specs {
		if h.Trust.Contains(spec.ID) {
			continue
		}
		if !seenID[spec.ID] {
			seenID[spec.ID] = true
			untrustedIDs = append(untrustedIDs, spec.ID)
		}
	}

	approved := make(map[tool.ToolId]bool)
	if len(untrustedIDs) > 0 && prompt != nil {
		for _, id := range prompt(untrustedIDs) {
			approved[id] = true
			if h.Trust.Add(id) {
				h.MarkDirty()
			}
		}
	}

	for _, spec := range specs {
		if h.Trust.Contains(spec.ID) || approved[spec.ID] {
			trusted = append(trusted, spec)
		} else {
			declined = append(declined, spec)
		}
	}
	return trusted, declined
}

func installOne(ctx context.Context, h *home.Home, provider Provider, spec tool.ToolSpec, opts Options) (bool, error) {
	if !opts.Force && h.Install.Contains(spec) {
		return false, nil
	}

	release, err := provider.ReleaseBySpec(ctx, spec)
	if err != nil {
		return false, err
	}

	host := descriptor.Current()
	chosen, ok := selector.FindMostCompatibleArtifact(host, release.Artifacts, spec.ID.Name)
	if !ok {
		return false, rokiterrors.NewArtifactNotFoundError(spec.String())
	}

	data, err := provider.DownloadArtifact(ctx, chosen)
	if err != nil {
		return false, err
	}

	payload, err := artifact.Extract(chosen, data)
	if err != nil {
		return false, err
	}

	if err := h.Storage.ReplaceToolContents(spec, payload); err != nil {
		return false, err
	}

	h.Install.Add(spec)
	return true, nil
}

// relinkAliases creates or repairs every requested alias's dispatcher entry
// point, even for specs that were already installed, so a missing/corrupt
// link is always fixed.
func relinkAliases(h *home.Home, aliasesBySpec map[tool.ToolSpec][]tool.Alias, rokitVersion string) error {
	seen := make(map[tool.Alias]bool)
	for _, aliases := range aliasesBySpec {
		for _, alias := range aliases {
			if seen[alias] {
				continue
			}
			seen[alias] = true
			if err := h.Storage.CreateToolLink(alias, rokitVersion); err != nil {
				return fmt.Errorf("linking %s: %w", alias, err)
			}
		}
	}
	return nil
}
