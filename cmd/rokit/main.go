package main

import (
	"context"
	"fmt"
	"os"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/config"
	"github.com/rojo-rbx/rokit/internal/runner"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	isCLI, alias := runner.RoleFromArgv0(os.Args[0])
	if !isCLI {
		os.Exit(dispatch(alias, os.Args[1:]))
	}

	if err := rootCmd.Execute(); err != nil {
		printErr(err)
		os.Exit(1)
	}
}

// dispatch runs in multicall mode: os.Args[0] named an alias, not rokit
// itself, so the whole invocation forwards to the linked tool.
func dispatch(alias string, args []string) int {
	cfg, err := config.Load()
	if err != nil {
		printErr(err)
		return 1
	}
	cwd, err := os.Getwd()
	if err != nil {
		printErr(err)
		return 1
	}

	code, err := runner.Dispatch(context.Background(), cfg, cwd, alias, args)
	if err != nil {
		printErr(err)
		return 1
	}
	return code
}

func printErr(err error) {
	f := rokiterrors.NewFormatter(os.Stderr, noColor)
	if rendered := f.Format(err); rendered != "" {
		fmt.Fprint(os.Stderr, rendered)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
