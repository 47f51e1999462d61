package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexara/nexara/internal/backend"
	perrors "github.com/nexara/nexara/internal/errors"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every indexed document on the backend",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := newClient(cfg).Clear(ctx); err != nil {
		return errors.New(perrors.UserMessage(err, backend.ClearFailedMessage))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Knowledge cleared.")
	return nil
}
