package main

import (
	"github.com/spf13/cobra"
)

var (
	noColor bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "rokit",
	Short: "A simple toolchain manager for Roblox projects",
	Long: `Rokit installs, pins, and runs command-line tools per project.

Add a tool to a project's manifest with "rokit add", then "rokit install"
to fetch everything it needs. Installed tools are run directly by their
alias, e.g. "stylua --check .", once rokit's bin directory is on PATH.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output machine-readable JSON where supported")

	rootCmd.AddCommand(
		addCmd,
		installCmd,
		updateCmd,
		removeCmd,
		listCmd,
		trustCmd,
		authenticateCmd,
		selfInstallCmd,
		selfUpdateCmd,
		systemInfoCmd,
		initCmd,
		versionCmd,
	)
}
