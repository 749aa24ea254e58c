package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/github"
	"github.com/rojo-rbx/rokit/internal/manifest"
	"github.com/rojo-rbx/rokit/internal/tool"
)

var addGlobal bool

var addCmd = &cobra.Command{
	Use:   "add <author/name>[@version] [alias]",
	Short: "Add a tool to a manifest, pinning its version",
	Long: `Add binds an alias to a tool at an exact version in the nearest
rokit.toml (or the home-dir manifest with --global). If no version is
given, the tool's latest release is resolved and pinned. If no alias is
given, the tool's own name is used.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addGlobal, "global", false, "Add to the home-dir manifest instead of the nearest ancestor")
}

func runAdd(cmd *cobra.Command, args []string) error {
	id, version, err := parseIDAndVersion(args[0])
	if err != nil {
		return err
	}

	aliasName := id.Name
	if len(args) > 1 {
		aliasName = args[1]
	}
	alias, err := tool.ParseAlias(aliasName)
	if err != nil {
		return err
	}

	spec := tool.ToolSpec{ID: id, Version: version}
	if version == (tool.Version{}) {
		resolved, err := resolveLatest(cmd.Context(), id)
		if err != nil {
			return err
		}
		spec = resolved
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	path, err := targetManifestPath(cfg, cwd, addGlobal)
	if err != nil {
		return err
	}

	m, err := loadOrCreateManifest(path)
	if err != nil {
		return err
	}
	if m.Has(alias) {
		if err := m.Update(alias, spec); err != nil {
			return err
		}
	} else if err := m.Add(alias, spec); err != nil {
		return err
	}
	if err := m.Save(path); err != nil {
		return err
	}

	cmd.Printf("Added %s = %q to %s\n", alias, spec.String(), path)
	return nil
}

// parseIDAndVersion splits "author/name" or "author/name@version" and
// returns the zero Version when none was given, signaling the caller to
// resolve the tool's latest release instead.
func parseIDAndVersion(s string) (tool.ToolId, tool.Version, error) {
	spec, err := tool.ParseToolSpec(s)
	if err == nil {
		return spec.ID, spec.Version, nil
	}
	id, idErr := tool.ParseToolId(s)
	if idErr != nil {
		return tool.ToolId{}, tool.Version{}, err
	}
	return id, tool.Version{}, nil
}

func resolveLatest(ctx context.Context, id tool.ToolId) (tool.ToolSpec, error) {
	provider, err := newDefaultProvider()
	if err != nil {
		return tool.ToolSpec{}, err
	}
	release, err := provider.LatestRelease(ctx, id)
	if err != nil {
		return tool.ToolSpec{}, err
	}
	if len(release.Artifacts) == 0 {
		return tool.ToolSpec{}, fmt.Errorf("no release artifacts found for %s", id)
	}
	return release.Artifacts[0].Spec, nil
}

// newDefaultProvider builds a GitHub provider using the stored auth
// token, if any.
func newDefaultProvider() (*github.Provider, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	authManifest, err := manifest.LoadAuthManifest(cfg.AuthManifestPath())
	if err != nil {
		return nil, err
	}
	token, _ := authManifest.Token(github.ProviderName)
	return github.NewProvider(token)
}
