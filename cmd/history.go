package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nexara/nexara/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent prompts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	entries := history.NewManager(store).Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No prompts yet.")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(out, "%2d. %-33s %s (%s)\n", i+1, e.Title, e.Timestamp, humanize.Time(time.UnixMilli(e.ID)))
	}
	return nil
}
