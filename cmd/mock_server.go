package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/mockserver"
)

var (
	mockAddr    string
	mockLatency time.Duration
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run an in-memory stand-in for the document-chat backend",
	Long: `Serves /upload, /chat, /clear and /health from memory so the client can be
tried without the real service. Uploaded documents are only remembered by name;
answers list what has been indexed.`,
	Args: cobra.NoArgs,
	RunE: runMockServer,
}

func init() {
	mockServerCmd.Flags().StringVar(&mockAddr, "addr", "localhost:8000", "Address to listen on")
	mockServerCmd.Flags().DurationVar(&mockLatency, "latency", 0, "Delay added to uploads and replies")
	rootCmd.AddCommand(mockServerCmd)
}

func runMockServer(cmd *cobra.Command, args []string) error {
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              mockAddr,
		Handler:           mockserver.New(mockserver.WithLatency(mockLatency)).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Fprintf(cmd.OutOrStdout(), "Mock backend listening on http://%s (Ctrl+C to stop)\n", mockAddr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mock server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mock server shutdown: %w", err)
	}
	return nil
}
