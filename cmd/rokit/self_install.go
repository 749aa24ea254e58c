package main

import (
	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/envpath"
	"github.com/rojo-rbx/rokit/internal/launcher"
)

var selfInstallCmd = &cobra.Command{
	Use:   "self-install",
	Short: "Place rokit's own dispatcher copy under Home and offer to add it to PATH",
	Long: `Self-install writes rokit's own canonical copy to Home's bin
directory (the target every alias link ultimately resolves to) and, on
POSIX, writes an env script Home's bin directory can be sourced from; on
Windows it updates the per-user PATH registry value directly.`,
	Args: cobra.NoArgs,
	RunE: runSelfInstall,
}

func runSelfInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := loadHome(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	existed, changed, err := h.Storage.EnsureSelfLink(version)
	if err != nil {
		return err
	}
	if !existed {
		cmd.Printf("Installed rokit to %s\n", h.Storage.SelfLinkPath())
	} else if changed {
		cmd.Printf("Updated rokit at %s\n", h.Storage.SelfLinkPath())
	}

	pathChanged, err := envpath.AddToPath(cfg.Home, cfg.Shell)
	if err != nil {
		return err
	}
	if pathChanged {
		cmd.Printf("Added %s to PATH\n", cfg.BinDir())
	}

	if !envpath.ExistsInPath(cfg.Home) {
		ctx := launcher.Detect()
		cmd.Println(launcher.FirstRunHint(ctx, cfg.EnvScriptPath()))
	}

	return nil
}
