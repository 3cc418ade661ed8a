package cli

import (
	"strings"

	"trackup/internal/config"
	"trackup/internal/devserver"
	"trackup/internal/logger"
	"trackup/internal/store"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local TrackUp backend",
		Long: strings.TrimSpace(`
Run a local implementation of the TrackUp HTTP API.

Teams, members and tasks live in memory by default, or in a SQLite file with
--store sqlite. Chat messages are handled by built-in commands ("create team
Design", "add Alice to Design", "progress Design", ...). When an OpenAI API key
is configured, anything else is answered by a chat completion.
`),
		Example: strings.TrimSpace(`
trackup serve
trackup serve --addr 127.0.0.1:9000 --store sqlite --db ./trackup.sqlite
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			ctx := commandContext(cmd)

			s, err := store.Open(ctx, cfg.Serve.Store, cfg.Serve.DB)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			var fallback devserver.Completer
			if strings.TrimSpace(cfg.OpenAI.APIKey) != "" {
				fallback = devserver.NewOpenAICompleter(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
				logger.Infof("assistant fallback: %s", cfg.OpenAI.Model)
			}
			srv := devserver.New(devserver.Options{
				Store:     s,
				Assistant: devserver.NewAssistant(s, fallback),
			})
			if err := srv.Run(ctx, cfg.Serve.Addr); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "Listen address")
	cmd.Flags().String("store", store.KindMemory, "Storage backend (memory|sqlite)")
	cmd.Flags().String("db", "", "SQLite database path (default: "+config.HomeDir()+"/trackup.sqlite)")
	return cmd
}
