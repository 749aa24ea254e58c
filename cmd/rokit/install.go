package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/discovery"
	"github.com/rojo-rbx/rokit/internal/installpipeline"
	"github.com/rojo-rbx/rokit/internal/tool"
)

var (
	installNoTrustCheck bool
	installForce        bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install every tool bound across the applicable manifests",
	Long: `Install walks from the current directory up to the filesystem
root and then the home-dir manifest, collects every bound alias, and
installs each one's pinned tool version: prompting to trust any
author/name pair not already trusted, downloading and extracting the
matching artifact, and (re)creating each alias's dispatcher link.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installNoTrustCheck, "no-trust-check", false, "Install without prompting to trust new tools")
	installCmd.Flags().BoolVar(&installForce, "force", false, "Reinstall even tools already recorded as installed")
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := loadHome(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	entries, err := discovery.DiscoverAllManifests(cwd, cfg.Home, false, false)
	if err != nil {
		return err
	}
	specs := discovery.CollectAliasSpecs(entries)
	if len(specs) == 0 {
		cmd.Println("No tools bound in any manifest")
		return nil
	}

	requests := make([]installpipeline.Request, 0, len(specs))
	for alias, spec := range specs {
		requests = append(requests, installpipeline.Request{Alias: alias, Spec: spec})
	}

	provider, err := newDefaultProvider()
	if err != nil {
		return err
	}

	progress := newInstallProgress(cmd.OutOrStdout())
	opts := installpipeline.Options{
		NoTrustCheck: installNoTrustCheck,
		Force:        installForce,
		RokitVersion: version,
		OnStart:      progress.onStart,
		OnFinish: func(r installpipeline.Result) {
			progress.onFinish(r.Spec, r.Installed, r.Err)
		},
	}

	results, err := installpipeline.Run(cmd.Context(), h, provider, requests, opts, promptTrust)
	progress.wait()
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %v\n", r.Spec, r.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d tool(s) failed to install", failed)
	}
	return nil
}

// promptTrust asks, once per author/name pair, whether the user trusts it
// to run arbitrary downloaded code, returning the subset approved.
func promptTrust(ids []tool.ToolId) []tool.ToolId {
	reader := bufio.NewReader(os.Stdin)
	var approved []tool.ToolId
	for _, id := range ids {
		fmt.Fprintf(os.Stderr, "This manifest wants to run code from %s, which you haven't trusted before.\n", id)
		fmt.Fprintf(os.Stderr, "Trust %s? [y/N] ", id)
		line, _ := reader.ReadString('\n')
		if strings.EqualFold(strings.TrimSpace(line), "y") {
			approved = append(approved, id)
		}
	}
	return approved
}
