package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexara/nexara/internal/app"
	perrors "github.com/nexara/nexara/internal/errors"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the backend is reachable",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	url := cfg.GetServerURL()
	if err := newClient(cfg).Health(ctx); err != nil {
		return fmt.Errorf("%s: %s (%s)", url, app.StatusUnreachable, perrors.UserMessage(err, "no response"))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", url, app.StatusReady)
	return nil
}
