package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print rokit's own version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Printf("rokit %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
		return nil
	},
}
