package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/tool"
)

var updateGlobal bool

var updateCmd = &cobra.Command{
	Use:   "update <alias> [author/name@version]",
	Short: "Change an already-bound alias's pinned version",
	Long: `Update rebinds an alias already present in a manifest to a new
tool spec. With no spec given, the alias's current tool's latest release
is resolved and pinned.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateGlobal, "global", false, "Update the home-dir manifest instead of the nearest ancestor")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	alias, err := tool.ParseAlias(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	path, err := targetManifestPath(cfg, cwd, updateGlobal)
	if err != nil {
		return err
	}
	m, err := loadOrCreateManifest(path)
	if err != nil {
		return err
	}

	current, ok := m.Get(alias)
	if !ok {
		return rokitAliasNotBound(alias.Name())
	}

	var spec tool.ToolSpec
	if len(args) > 1 {
		spec, err = tool.ParseToolSpec(args[1])
		if err != nil {
			return err
		}
	} else {
		spec, err = resolveLatest(cmd.Context(), current.ID)
		if err != nil {
			return err
		}
	}

	if err := m.Update(alias, spec); err != nil {
		return err
	}
	if err := m.Save(path); err != nil {
		return err
	}

	cmd.Printf("Updated %s: %s -> %s in %s\n", alias, current.Version.String(), spec.Version.String(), path)
	return nil
}
