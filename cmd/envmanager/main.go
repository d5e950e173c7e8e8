package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"envmanager/internal/client"
	"envmanager/internal/config"
	"envmanager/internal/envpanel"
	"envmanager/internal/host"
	"envmanager/internal/logging"
	"envmanager/internal/tui"
	"envmanager/internal/view"
)

const version = "0.1.0-dev"

var (
	cfgFile  string
	baseURL  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "envmanager",
	Short: "Inspect the node-editor host's Python, GPU and node environments",
	Long: `envmanager reads the host backend's environment endpoints and shows
the main runtime, detected GPUs and per-node isolated environments.

Configuration is read from (later wins):
  1. /etc/envmanager/config.yaml (or $ENVMANAGER_CONFIG_DIR/config.yaml)
  2. $HOME/.envmanager/config.yaml
  3. --config PATH
  4. ENVMANAGER_URL, ENVMANAGER_LOG_LEVEL
  5. --url, --log-level`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive shell (default)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file to load after the system and user files")
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig applies the flag layer on top of config.Load.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyOverrides(baseURL, logLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newClient(cfg config.Config, logger *logging.Logger) (*client.Client, error) {
	return client.New(cfg.Server.BaseURL, logger,
		client.WithTimeout(cfg.RequestTimeout()),
		client.WithUserAgent("envmanager/"+version),
	)
}

func minLevel(cfg config.Config) logging.Level {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file.
	logger, err := logging.NewFileLogger(minLevel(cfg), cfg.LogFile())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	doc := view.NewDocument()
	dialog := envpanel.NewDialog(doc, c, logger, envpanel.Options{
		Width:            cfg.UI.DialogWidth,
		MaxHeightPercent: cfg.UI.MaxHeightPercent,
	})

	extensions := &host.Registry{}
	extensions.Register(envpanel.Extension(dialog))

	model := tui.NewModel(doc, extensions, logger, tui.Options{
		StateDir: stateDir(),
		Subtitle: "Backend: " + c.BaseURL(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui.run.failed", "Interactive shell exited with error", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// stateDir is the per-user directory next to the user config file.
func stateDir() string {
	userPath := config.UserConfigPath()
	if userPath == "" {
		return ""
	}
	return filepath.Dir(userPath)
}
