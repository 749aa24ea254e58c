package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/discovery"
	"github.com/rojo-rbx/rokit/internal/printer"
)

var listWide bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every alias bound across the applicable manifests",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listWide, "wide", false, "Show each row's source manifest and bin path")
}

func runList(cmd *cobra.Command, args []string) error {
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

	var rows []printer.ToolRow
	for _, e := range entries {
		for alias, spec := range e.Manifest.ToolSpecs() {
			rows = append(rows, printer.ToolRow{
				Alias:     alias.Name(),
				ID:        spec.ID.String(),
				Version:   spec.Version.String(),
				Source:    e.Path,
				Installed: h.Install.Contains(spec),
				BinPath:   h.Storage.ToolPath(spec),
			})
		}
	}
	printer.SortToolRows(rows)

	return printer.Print(cmd.OutOrStdout(), rows, printer.ToolHeaders(listWide), listWide, jsonOut)
}
