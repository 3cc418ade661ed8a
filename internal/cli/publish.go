package cli

import (
	"fmt"
	"strings"
	"time"

	"trackup/internal/format"
	"trackup/internal/model"
	"trackup/internal/publish"

	"github.com/spf13/cobra"
)

func newTeamsPublishCmd(app *App) *cobra.Command {
	var to string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish <team>",
		Short: "Write a Markdown progress report for a team",
		Long: strings.TrimSpace(`
Fetch a team and every member's tasks, then write a Markdown report.

With --to the report is written to <dir>/teams/<team>.md and the written paths
are printed; otherwise the Markdown goes to stdout.
`),
		Example: strings.TrimSpace(`
trackup teams publish Eng
trackup teams publish "Design Ops" --to ./reports --overwrite
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			c := client(app)
			ctx := commandContext(cmd)

			r, err := c.Teams(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			team, ok := r.Find(name)
			if !ok {
				return writeErr(cmd, errNotFound("team", name))
			}
			details := make(map[string]model.MemberDetail, len(team.Members))
			for _, m := range team.Members {
				d, err := c.Member(ctx, m)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("member %s: %w", m, err))
				}
				details[m] = d
			}

			ropt := publish.RenderOptions{GeneratedAt: time.Now()}
			if strings.TrimSpace(to) == "" {
				md, err := publish.RenderTeamMarkdown(team, details, ropt)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			res, err := publish.WriteTeam(team, details, to, publish.WriteOptions{Overwrite: overwrite, RenderOptions: ropt})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: res})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing report")
	return cmd
}
