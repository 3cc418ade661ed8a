package cli

import (
	"strings"

	"trackup/internal/format"

	"github.com/spf13/cobra"
)

func newMembersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Member commands",
	}
	cmd.AddCommand(newMembersShowCmd(app))
	return cmd
}

func newMembersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a member's task summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimPrefix(strings.TrimSpace(args[0]), "@")
			d, err := client(app).Member(commandContext(cmd), name)
			if err != nil {
				return writeErr(cmd, describe(err, "member", name))
			}
			if d.Name == "" {
				d.Name = name
			}
			return writeOut(cmd, app, format.Envelope{Data: d})
		},
	}
}
