package cli

import (
	"fmt"
	"strings"

	"trackup/internal/docs"
	"trackup/internal/format"

	"github.com/spf13/cobra"
)

// newDocsCmd prints the embedded help pages. Without a topic it lists them.
func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show help pages for keys, chat and configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, format.Envelope{
					Data:  map[string]any{"topics": docs.Index()},
					Hints: []string{"trackup docs <topic> --raw"},
				})
			}

			name := strings.ToLower(strings.TrimSpace(args[0]))
			body, ok := docs.Get(name)
			if !ok {
				return writeErr(cmd, fmt.Errorf("no help page %q (have: %s)", args[0], strings.Join(docs.Topics(), ", ")))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"topic": name, "markdown": body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the page as plain markdown")
	return cmd
}
