package main

import (
	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/descriptor"
	"github.com/rojo-rbx/rokit/internal/envpath"
	"github.com/rojo-rbx/rokit/internal/printer"
)

var systemInfoCmd = &cobra.Command{
	Use:   "system-info",
	Short: "Print the detected platform descriptor and rokit's home layout",
	Args:  cobra.NoArgs,
	RunE:  runSystemInfo,
}

func runSystemInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d := descriptor.Current()
	info := printer.SystemInfo{
		OS:       d.OS.String(),
		Arch:     d.Arch.String(),
		Home:     cfg.Home,
		BinDir:   cfg.BinDir(),
		InPath:   envpath.ExistsInPath(cfg.Home),
		RokitVer: version,
	}
	if d.HasToolchain() {
		info.Toolchain = d.Toolchain.String()
	}

	return printer.PrintSystemInfo(cmd.OutOrStdout(), info, jsonOut)
}
