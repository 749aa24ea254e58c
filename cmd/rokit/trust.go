package main

import (
	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/printer"
	"github.com/rojo-rbx/rokit/internal/tool"
)

var trustCmd = &cobra.Command{
	Use:   "trust <author/name>",
	Short: "Manage the set of tool authors approved to run arbitrary code",
	Long: `Trust explicitly approves author/name to be installed without the
interactive prompt install would otherwise show the first time it's seen.
With no subcommand, trust approves the given id directly; use "trust list"
to see everything currently trusted and "trust remove" (or "untrust") to
revoke approval.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrustAdd,
}

var trustListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every currently trusted author/name",
	Args:  cobra.NoArgs,
	RunE:  runTrustList,
}

var trustRemoveCmd = &cobra.Command{
	Use:     "remove <author/name>",
	Aliases: []string{"untrust"},
	Short:   "Revoke trust for an author/name",
	Args:    cobra.ExactArgs(1),
	RunE:    runTrustRemove,
}

func init() {
	trustCmd.AddCommand(trustListCmd, trustRemoveCmd)
}

func runTrustAdd(cmd *cobra.Command, args []string) error {
	id, err := tool.ParseToolId(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := loadHome(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	if h.Trust.Add(id) {
		h.MarkDirty()
		if err := h.Save(); err != nil {
			return err
		}
		cmd.Printf("Trusted %s\n", id)
	} else {
		cmd.Printf("%s is already trusted\n", id)
	}
	return nil
}

func runTrustRemove(cmd *cobra.Command, args []string) error {
	id, err := tool.ParseToolId(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := loadHome(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	if !h.Trust.Remove(id) {
		return rokitTrustNotFound(id.String())
	}
	h.MarkDirty()
	if err := h.Save(); err != nil {
		return err
	}
	cmd.Printf("Untrusted %s\n", id)
	return nil
}

func runTrustList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := loadHome(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	var rows []printer.TrustRow
	for _, id := range h.Trust.All() {
		rows = append(rows, printer.TrustRow{
			ID:     id.String(),
			Source: cfg.ToolCachePath(),
			Author: id.Author,
			Name:   id.Name,
		})
	}
	printer.SortTrustRows(rows)

	return printer.Print(cmd.OutOrStdout(), rows, printer.TrustHeaders(false), false, jsonOut)
}
