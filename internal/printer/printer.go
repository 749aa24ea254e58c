// Package printer renders rokit's tabular CLI output (`list`,
// `system-info`, `trust list`), in both a human tabwriter-aligned table
// and machine-readable JSON.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// Row is anything that can be rendered as one line of table output and one
// entry of a JSON array.
type Row interface {
	// Columns returns this row's cell values, in Headers order.
	Columns(wide bool) []string
}

// Print writes rows as a table (or, if jsonOut, as an indented JSON array)
// to w. headers is used only for the table form.
func Print[T Row](w io.Writer, rows []T, headers []string, wide, jsonOut bool) error {
	if jsonOut {
		return printJSON(w, rows)
	}
	printTable(w, rows, headers, wide)
	return nil
}

func printTable[T Row](w io.Writer, rows []T, headers []string, wide bool) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No tools installed.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r.Columns(wide), "\t"))
	}
	tw.Flush()
}

func printJSON[T any](w io.Writer, rows []T) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// ToolRow is one line of `rokit list` output: an alias bound to a spec,
// annotated with where it came from and whether it's actually installed.
type ToolRow struct {
	Alias     string `json:"alias"`
	ID        string `json:"id"`
	Version   string `json:"version"`
	Source    string `json:"source"`
	Installed bool   `json:"installed"`
	BinPath   string `json:"binPath,omitempty"`
}

func (r ToolRow) Columns(wide bool) []string {
	status := "missing"
	if r.Installed {
		status = "installed"
	}
	cols := []string{r.Alias, r.ID, r.Version, status}
	if wide {
		cols = append(cols, r.Source, r.BinPath)
	}
	return cols
}

// ToolHeaders returns the `rokit list` table's column headers.
func ToolHeaders(wide bool) []string {
	h := []string{"ALIAS", "TOOL", "VERSION", "STATUS"}
	if wide {
		h = append(h, "SOURCE", "BIN_PATH")
	}
	return h
}

// SortToolRows sorts rows alphabetically by alias, for deterministic
// output regardless of map iteration order upstream.
func SortToolRows(rows []ToolRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Alias < rows[j].Alias })
}

// TrustRow is one line of `rokit trust list` output.
type TrustRow struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Author string `json:"author"`
	Name   string `json:"name"`
}

func (r TrustRow) Columns(bool) []string {
	return []string{r.ID, r.Source}
}

// TrustHeaders returns the `rokit trust list` table's column headers.
func TrustHeaders(bool) []string {
	return []string{"TOOL", "SOURCE"}
}

// SortTrustRows sorts rows alphabetically by tool id.
func SortTrustRows(rows []TrustRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}

// SystemInfo is the payload for `rokit system-info`.
type SystemInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Toolchain string `json:"toolchain,omitempty"`
	Home      string `json:"home"`
	BinDir    string `json:"binDir"`
	InPath    bool   `json:"inPath"`
	RokitVer  string `json:"rokitVersion"`
}

// PrintSystemInfo writes info as a key/value table or JSON.
func PrintSystemInfo(w io.Writer, info SystemInfo, jsonOut bool) error {
	if jsonOut {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "rokit\t%s\n", info.RokitVer)
	fmt.Fprintf(tw, "os\t%s\n", info.OS)
	fmt.Fprintf(tw, "arch\t%s\n", info.Arch)
	if info.Toolchain != "" {
		fmt.Fprintf(tw, "toolchain\t%s\n", info.Toolchain)
	}
	fmt.Fprintf(tw, "home\t%s\n", info.Home)
	fmt.Fprintf(tw, "bin dir\t%s\n", info.BinDir)
	fmt.Fprintf(tw, "bin dir on PATH\t%t\n", info.InPath)
	return tw.Flush()
}
