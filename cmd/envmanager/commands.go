package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"envmanager/internal/api"
	"envmanager/internal/client"
	"envmanager/internal/config"
	"envmanager/internal/envpanel"
	"envmanager/internal/fsutil"
	"envmanager/internal/logging"
	"envmanager/internal/view"
)

const versionProbeTimeout = 3 * time.Second

var (
	statusJSON bool
	statusSave string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Fetch the environment status once and print it",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print client and backend versions",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Load and validate configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print the raw responses as JSON")
	statusCmd.Flags().StringVar(&statusSave, "save", "", "write a JSON snapshot to this path")
}

// Snapshot is the JSON form of one status fetch.
type Snapshot struct {
	FetchedAt         time.Time                 `json:"fetched_at"`
	BaseURL           string                    `json:"base_url"`
	RequestID         string                    `json:"request_id"`
	Runtime           *api.RuntimeResponse      `json:"runtime,omitempty"`
	RuntimeError      *api.ErrorPayload         `json:"runtime_error,omitempty"`
	Environments      *api.EnvironmentsResponse `json:"environments,omitempty"`
	EnvironmentsError *api.ErrorPayload         `json:"environments_error,omitempty"`
}

func newSnapshot(baseURL, requestID string, status client.Status) Snapshot {
	return Snapshot{
		FetchedAt:         time.Now().UTC(),
		BaseURL:           baseURL,
		RequestID:         requestID,
		Runtime:           status.Runtime.Data,
		RuntimeError:      status.Runtime.Failure,
		Environments:      status.Environments.Data,
		EnvironmentsError: status.Environments.Failure,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.NewLogger(minLevel(cfg))

	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	status, fetchErr := c.FetchStatus(cmd.Context(), requestID)
	out := cmd.OutOrStdout()

	if fetchErr != nil {
		if !statusJSON {
			writeTree(out, cfg, envpanel.NetworkErrorBody(fetchErr))
		}
		return fmt.Errorf("status fetch failed: %w", fetchErr)
	}

	snap := newSnapshot(c.BaseURL(), requestID, status)
	if statusSave != "" {
		if err := saveSnapshot(statusSave, snap, logger); err != nil {
			return err
		}
	}

	if statusJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	writeTree(out, cfg, envpanel.Render(envpanel.InputFromStatus(status)))
	return nil
}

func writeTree(out io.Writer, cfg config.Config, body *view.Node) {
	styles := view.NewRegistry()
	styles.Inject(envpanel.StylesheetName, envpanel.Stylesheet())

	painter := view.NewPlainPainter(styles)
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		painter = view.NewPainter(styles)
	}

	root := view.El("div", envpanel.Header(), body)
	_, _ = fmt.Fprintln(out, painter.Paint(root, cfg.UI.DialogWidth))
}

func saveSnapshot(path string, snap Snapshot, logger *logging.Logger) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := fsutil.AtomicWriteFile(path, data, fsutil.DefaultFilePermissions, logger); err != nil {
		return err
	}
	logger.Info("status.snapshot.saved", "Status snapshot written", map[string]interface{}{
		"path":       path,
		"request_id": snap.RequestID,
	})
	return nil
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "envmanager version %s\n", version)

	cfg, err := loadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(out, "backend: unknown (%v)\n", err)
		return nil
	}
	c, err := newClient(cfg, logging.Discard())
	if err != nil {
		_, _ = fmt.Fprintf(out, "backend: unknown (%v)\n", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), versionProbeTimeout)
	defer cancel()

	backend, err := c.Version(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(out, "backend: unreachable at %s (%v)\n", c.BaseURL(), err)
		return nil
	}
	_, _ = fmt.Fprintf(out, "backend: %s (%s)\n", backend, c.BaseURL())
	return nil
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	var (
		cfg config.Config
		err error
	)
	if len(args) == 1 {
		cfg, err = config.LoadFrom(args[0])
	} else {
		cfg, err = loadConfig()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "✓ Configuration is valid")
	_, _ = fmt.Fprintf(out, "  server.base_url: %s\n", cfg.Server.BaseURL)
	_, _ = fmt.Fprintf(out, "  server.request_timeout_seconds: %d\n", cfg.Server.RequestTimeoutSeconds)
	_, _ = fmt.Fprintf(out, "  ui.dialog_width: %d\n", cfg.UI.DialogWidth)
	_, _ = fmt.Fprintf(out, "  ui.max_height_percent: %d\n", cfg.UI.MaxHeightPercent)
	_, _ = fmt.Fprintf(out, "  logging.level: %s\n", cfg.Logging.Level)
	_, _ = fmt.Fprintf(out, "  logging.file: %s\n", cfg.LogFile())
	return nil
}
