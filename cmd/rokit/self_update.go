package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/artifact"
	"github.com/rojo-rbx/rokit/internal/descriptor"
	"github.com/rojo-rbx/rokit/internal/selector"
	"github.com/rojo-rbx/rokit/internal/tool"
)

// selfToolID identifies rokit's own repository to the provider, the same
// way any other tool id would be resolved, so self-update reuses the exact
// release-fetch and artifact-selection path every other install does.
var selfToolID = tool.ToolId{Author: "rojo-rbx", Name: "rokit"}

var selfUpdateCmd = &cobra.Command{
	Use:   "self-update",
	Short: "Update rokit's own installed copy to the latest release",
	Long: `Self-update fetches rokit's own latest release, replaces Home's
canonical bin/rokit copy, and refreshes every existing alias's dispatcher
entry point (a real symlink needs no refresh; a stamped copy is
rewritten so it stops pointing at stale metadata).`,
	Args: cobra.NoArgs,
	RunE: runSelfUpdate,
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := loadHome(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	provider, err := newDefaultProvider()
	if err != nil {
		return err
	}

	release, err := provider.LatestRelease(cmd.Context(), selfToolID)
	if err != nil {
		return err
	}

	host := descriptor.Current()
	a, ok := selector.FindMostCompatibleArtifact(host, release.Artifacts, selfToolID.Name)
	if !ok {
		return fmt.Errorf("no rokit release artifact compatible with %s", host)
	}

	data, err := provider.DownloadArtifact(cmd.Context(), a)
	if err != nil {
		return err
	}
	binary, err := artifact.Extract(a, data)
	if err != nil {
		return err
	}

	newVersion := a.Spec.Version.String()
	if err := h.Storage.ReplaceSelfBytes(binary, newVersion); err != nil {
		return err
	}

	aliases, err := h.Storage.ExistingAliases()
	if err != nil {
		return err
	}
	if _, _, err := h.Storage.RecreateAllLinks(aliases, newVersion); err != nil {
		return err
	}

	cmd.Printf("Updated rokit to %s\n", newVersion)
	return nil
}
