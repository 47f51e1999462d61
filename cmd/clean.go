package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexara/nexara/internal/history"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/prefs"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the prompt history, saved theme, and log files",
	Long: `Deletes the prompt history and the saved theme from the preferences file,
and removes the debug log. Documents indexed by the backend are not touched;
use "nexara clear" for that.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	return runCleanWithReader(cmd.InOrStdin(), cmd.OutOrStdout(), store)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader, out io.Writer, store prefs.Store) error {
	// Gather statistics about what will be cleaned
	entryCount := history.NewManager(store).Len()
	_, hasTheme := store.Get(prefs.KeyTheme)
	_, logErr := os.Stat(logger.DefaultLogPath)
	hasLog := logErr == nil

	// Check if there's anything to clean
	if entryCount == 0 && !hasTheme && !hasLog {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	// Print summary of what will be cleaned
	fmt.Fprintln(out, "This will clean:")
	if entryCount > 0 {
		fmt.Fprintf(out, "  - %d history entr%s\n", entryCount, suffix(entryCount, "y", "ies"))
	}
	if hasTheme {
		fmt.Fprintln(out, "  - The saved theme")
	}
	if hasLog {
		fmt.Fprintf(out, "  - The log file %s\n", logger.DefaultLogPath)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := store.Delete(prefs.KeyHistory); err != nil {
		return fmt.Errorf("error removing history: %w", err)
	}
	if err := store.Delete(prefs.KeyTheme); err != nil {
		return fmt.Errorf("error removing theme: %w", err)
	}

	logger.Close()
	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	// Print results
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	if entryCount > 0 {
		fmt.Fprintf(out, "  - %d history entr%s removed\n", entryCount, suffix(entryCount, "y", "ies"))
	}
	if hasTheme {
		fmt.Fprintln(out, "  - Theme reset to default")
	}
	if logsCleared > 0 {
		fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	}

	return nil
}

func suffix(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
