package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nexara/nexara/internal/backend"
	perrors "github.com/nexara/nexara/internal/errors"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a document to be indexed",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	name := filepath.Base(args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "Processing %s...\n", name)

	result, err := newClient(cfg).Upload(ctx, args[0])
	if err != nil {
		return fmt.Errorf("couldn't process %s: %s", name, perrors.UserMessage(err, backend.UploadFailedMessage))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (Ready)\n", result.FileName)
	if result.Message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	}
	return nil
}
