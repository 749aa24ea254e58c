package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/tool"
)

var removeGlobal bool

var removeCmd = &cobra.Command{
	Use:     "remove <alias>",
	Aliases: []string{"uninstall"},
	Short:   "Unbind an alias from a manifest",
	Long: `Remove unbinds alias from the nearest rokit.toml (or the home-dir
manifest with --global), failing if that manifest does not bind alias. The
tool's installed binary, if any, is
left on disk; only the manifest entry is removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&removeGlobal, "global", false, "Remove from the home-dir manifest instead of the nearest ancestor")
}

func runRemove(cmd *cobra.Command, args []string) error {
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
	path, err := targetManifestPath(cfg, cwd, removeGlobal)
	if err != nil {
		return err
	}
	m, err := loadOrCreateManifest(path)
	if err != nil {
		return err
	}

	if err := m.Remove(alias); err != nil {
		return err
	}
	if err := m.Save(path); err != nil {
		return err
	}

	cmd.Printf("Removed %s from %s\n", alias, path)
	return nil
}
