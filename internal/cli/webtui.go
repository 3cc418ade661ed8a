package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trackup/internal/format"
	"trackup/internal/webtui"

	"github.com/spf13/cobra"
)

func newWebTUICmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "webtui",
		Short: "Run the dashboard in your browser (PTY + WebSocket, experimental)",
		Long: strings.TrimSpace(`
Run the terminal dashboard over the web via a server-side PTY and a browser
terminal emulator.

Notes:
- No auth; bind to localhost.
- Each browser tab starts its own dashboard process with its own session id.
`),
		Example: strings.TrimSpace(`
trackup webtui --addr 127.0.0.1:3334
trackup --server http://10.0.0.5:8000 webtui
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr: strings.TrimSpace(addr),
				Args: childArgs(app),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			listenAddr := srv.Addr()
			if listenAddr == "" {
				return writeErr(cmd, errors.New("webtui: missing --addr"))
			}

			_ = writeOut(cmd, app, format.Envelope{
				Data: map[string]any{
					"addr":      listenAddr,
					"server":    app.cfg.Server,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				Hints: []string{"open http://" + listenAddr},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "TrackUp webtui running at http://%s (backend=%s)\n", listenAddr, app.cfg.Server)

			hs := &http.Server{Addr: listenAddr, Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
			go func() {
				<-commandContext(cmd).Done()
				_ = hs.Close()
			}()
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3334", "Bind address (host:port or :port)")
	return cmd
}

// childArgs carries the resolved settings to each dashboard process.
func childArgs(app *App) []string {
	cfg := app.cfg
	args := []string{
		"--server", cfg.Server,
		"--timeout", cfg.Timeout.String(),
		"--log-level", cfg.Log.Level,
		"--log-format", cfg.Log.Format,
	}
	if f := strings.TrimSpace(cfg.Log.File); f != "" {
		args = append(args, "--log-file", f)
	}
	if p := strings.TrimSpace(app.ConfigPath); p != "" {
		args = append(args, "--config", p)
	}
	return args
}
