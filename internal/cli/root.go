package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"trackup/internal/api"
	"trackup/internal/config"
	"trackup/internal/format"
	"trackup/internal/logger"
	"trackup/internal/tui"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	PrettyJSON bool
	Format     string

	cfg *config.Config
}

// flagKeys binds config keys to the flag that overrides them.
var flagKeys = map[string]string{
	"server":      "server",
	"timeout":     "timeout",
	"log.level":   "log-level",
	"log.format":  "log-format",
	"log.file":    "log-file",
	"serve.addr":  "addr",
	"serve.store": "store",
	"serve.db":    "db",
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "trackup",
		Short:        "TrackUp terminal client",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  trackup

  # Scriptable commands
  trackup teams list
  trackup chat send create team Design

  # Member lookup (shortcut for: trackup members show Alice)
  trackup @Alice

  # Run a local backend
  trackup serve --store sqlite
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(app.ConfigPath, cmd.Flags(), flagKeys)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		logger.Init(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.String("server", config.DefaultServer, "Backend base URL")
	pf.Duration("timeout", 60*time.Second, "Per-request timeout")
	pf.String("log-level", "info", "Log level (debug|info|warn|error)")
	pf.String("log-format", "text", "Log format (text|json)")
	pf.String("log-file", "", "Log file used while the dashboard is running (default: "+config.DefaultLogFile()+")")
	pf.StringVar(&app.ConfigPath, "config", "", "Config file (default: "+config.HomeDir()+"/config.yaml)")
	pf.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	pf.StringVar(&app.Format, "format", envOr("TRACKUP_FORMAT", "json"), "Output format ("+strings.Join(format.Formats, "|")+")")

	cmd.AddCommand(newTeamsCmd(app))
	cmd.AddCommand(newMembersCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newChatCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newWebTUICmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	// The terminal belongs to the dashboard; logs go to a file.
	path := strings.TrimSpace(app.cfg.Log.File)
	if path == "" {
		path = config.DefaultLogFile()
	}
	f, err := logger.OpenFile(path)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("open log file: %w", err))
	}
	defer f.Close()
	logger.Init(app.cfg.Log.Level, app.cfg.Log.Format, f)

	userID := newUserID()
	logger.Infof("session %s against %s", userID, app.cfg.Server)
	return tui.Run(tui.Options{
		Backend: client(app),
		UserID:  userID,
		Ctx:     commandContext(cmd),
	})
}

func newUserID() string {
	return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func client(app *App) *api.Client {
	return api.NewClient(app.cfg.Server, app.cfg.Timeout)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
