package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/nexara/nexara/internal/app"
	"github.com/nexara/nexara/internal/backend"
	"github.com/nexara/nexara/internal/clipboard"
	"github.com/nexara/nexara/internal/config"
	"github.com/nexara/nexara/internal/logger"
	"github.com/nexara/nexara/internal/prefs"
)

var (
	debugMode             bool
	quietMode             bool
	serverURL             string
	ephemeral             bool
	uploadPaths           []string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "nexara",
	Short: "Chat with your documents from the terminal",
	Long: `Nexara is a terminal client for a document-chat service.
Upload documents to have them indexed, then ask questions about them.
Recent prompts and the colour theme are remembered between runs.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Backend address (overrides config and NEXARA_SERVER_URL)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep config, theme and history in memory only")
	rootCmd.Flags().StringArrayVar(&uploadPaths, "upload", nil, "Upload a document on start (repeatable; only the first is indexed)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("nexara %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("nexara %s\n", version)
}

// loadConfig reads the config file, or starts from defaults in ephemeral
// mode, then applies --server.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if ephemeral {
		cfg = config.Default()
	} else {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	if serverURL != "" {
		cfg.SetServerURL(serverURL)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --server: %w", err)
		}
	}
	return cfg, nil
}

// openStore returns where the theme and history live.
func openStore() (prefs.Store, error) {
	if ephemeral {
		return prefs.NewMemoryStore(), nil
	}
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("error locating preferences: %w", err)
	}
	return prefs.NewFileStore(prefs.DefaultPath(dir)), nil
}

// newClient builds the backend client for cfg.
func newClient(cfg *config.Config) *backend.Client {
	return backend.New(cfg.GetServerURL(),
		backend.WithTimeout(cfg.Timeout()),
		backend.WithUserAgent("nexara/"+version))
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	// Copy falls back to an error flash when this fails
	_ = clipboard.Init()

	m := app.New(cfg, version,
		app.WithStore(store),
		app.WithStartupUploads(uploadPaths),
	)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
