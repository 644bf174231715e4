package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows every registered board with its size, palette and special tiles.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	rows := tui.BoardRows(flagConfig)

	if len(rows) == 0 {
		fmt.Fprintln(out, "No boards available.")
		return
	}

	fmt.Fprintln(out, "Available boards:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, r := range rows {
		maxIDLen = max(maxIDLen, len(r.ID))
		maxTitleLen = max(maxTitleLen, len(r.Title))
	}

	fmt.Fprintf(out, "  %-*s  %-*s  %-5s  %6s  %5s  %5s\n",
		maxIDLen, "ID", maxTitleLen, "Title", "Size", "Colors", "Rocks", "Glass")
	fmt.Fprintf(out, "  %-*s  %-*s  %-5s  %6s  %5s  %5s\n",
		maxIDLen, "--", maxTitleLen, "-----", "----", "------", "-----", "-----")
	for _, r := range rows {
		fmt.Fprintf(out, "  %-*s  %-*s  %-5s  %6d  %5d  %5d\n",
			maxIDLen, r.ID, maxTitleLen, r.Title, r.Size, r.Pieces, r.Obstacles, r.Breakable)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'match3 play <id>' to play a board.")
}
