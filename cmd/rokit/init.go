package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/manifest"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty rokit.toml in the current directory",
	Long: `Init writes a fresh rokit.toml in the current directory, ready for
"rokit add" to populate. It refuses to overwrite an existing manifest.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	path := filepath.Join(cwd, manifest.FileNames[manifest.Native])

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	m := manifest.NewNativeManifest()
	if err := m.Save(path); err != nil {
		return err
	}

	cmd.Printf("Created %s\n", path)
	return nil
}
