package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/leapstack-labs/waterdash/internal/cli/config"
	"github.com/leapstack-labs/waterdash/internal/ui"
	"github.com/spf13/cobra"
)

// SessionSecretEnv overrides ui.session_secret when set.
const SessionSecretEnv = "WATERDASH_SESSION_SECRET"

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
	Dev       bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the water consumption dashboard",
		Long: `Start a local web server with the interactive dashboard.

The dashboard provides:
- Year and state filters
- Total, average and maximum consumption metrics
- Consumption over years per state
- Share by state, excluding the national total
- Domestic vs non-domestic consumption per year

When --watch is on, edits to a file based source reload the dataset and
push the refreshed dashboard to open browsers.`,
		Example: `  # Start on the default port
  waterdash serve

  # Serve a spreadsheet on a custom port
  waterdash serve --source water.xlsx --port 3000

  # Start without auto-opening the browser
  waterdash serve --no-browser

  # Reload the page when the server restarts during development
  waterdash serve --dev`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload the dataset when the source file changes")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Enable browser hot reload and uncached assets")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	uiCfg, serverCfg := serverConfig(cmd, opts, cmdCtx)
	server := ui.NewServer(serverCfg)

	url := fmt.Sprintf("http://localhost:%d", serverCfg.Port)
	if uiCfg.AutoOpen && !opts.NoBrowser {
		go openBrowser(url)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Starting dashboard on %s\n", url)
	_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// serverConfig merges the ui config section with the serve flags. CLI flags
// override the config file.
func serverConfig(cmd *cobra.Command, opts *ServeOptions, cmdCtx *CommandContext) (*config.UIConfig, ui.Config) {
	uiCfg := cmdCtx.Cfg.GetUIConfig()

	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	dev := uiCfg.Dev
	if cmd.Flags().Changed("dev") {
		dev = opts.Dev
	}

	return uiCfg, ui.Config{
		Engine:        cmdCtx.Engine,
		Port:          port,
		Watch:         watch,
		Dev:           dev,
		SessionSecret: sessionSecret(uiCfg, cmdCtx.Logger),
		Logger:        cmdCtx.Logger,
	}
}

// sessionSecret picks the cookie signing key: environment, then config,
// then a random key that lives as long as the process.
func sessionSecret(uiCfg *config.UIConfig, logger *slog.Logger) string {
	if secret := os.Getenv(SessionSecretEnv); secret != "" {
		return secret
	}
	if uiCfg.SessionSecret != "" {
		return uiCfg.SessionSecret
	}

	key := make([]byte, 32)
	_, _ = rand.Read(key)
	logger.Warn("no session secret configured, using a random key; saved filters are lost on restart",
		"env", SessionSecretEnv)
	return hex.EncodeToString(key)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
