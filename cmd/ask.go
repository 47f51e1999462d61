package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexara/nexara/internal/backend"
	perrors "github.com/nexara/nexara/internal/errors"
	"github.com/nexara/nexara/internal/history"
)

var attachPath string

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask a question about the indexed documents",
	Long: `Sends one message to the backend and prints the reply.

The message is recorded in the prompt history shown by the TUI. A file can be
sent along with the message using --attach; it is not indexed.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&attachPath, "attach", "a", "", "File to send with the message")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" && attachPath == "" {
		return errors.New("nothing to send: give a message or --attach a file")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}

	history.NewManager(store).Record(message)

	return ask(cmd.Context(), cmd.OutOrStdout(), newClient(cfg), message, attachPath)
}

// ask sends message and prints the reply text.
func ask(ctx context.Context, out io.Writer, client *backend.Client, message, attachment string) error {
	result, err := client.Chat(ctx, message, attachment)
	if err != nil {
		return errors.New(perrors.UserMessage(err, backend.ChatFailedMessage))
	}
	fmt.Fprintln(out, result.Text())
	return nil
}
