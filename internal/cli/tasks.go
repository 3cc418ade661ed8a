package cli

import (
	"strings"

	"trackup/internal/format"
	"trackup/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	var yes bool
	var member string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long: strings.TrimSpace(`
Delete a task by id.

With --member the member's task summary is re-fetched and printed afterwards;
otherwise the team roster is.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := confirm(cmd, yes, "Delete this task?"); err != nil {
				return writeErr(cmd, err)
			}
			c := client(app)
			ctx := commandContext(cmd)
			delErr := c.DeleteTask(ctx, id)
			if delErr != nil {
				logger.WithFields(logrus.Fields{"task_id": id}).Warnf("delete task: %v", delErr)
				delErr = describe(delErr, "task", id)
			}

			member = strings.TrimSpace(member)
			if member == "" {
				return refreshRoster(cmd, app, c, delErr)
			}
			d, err := c.Member(ctx, member)
			if err != nil {
				if delErr != nil {
					return writeErr(cmd, delErr)
				}
				return writeErr(cmd, describe(err, "member", member))
			}
			if d.Name == "" {
				d.Name = member
			}
			if err := writeOut(cmd, app, format.Envelope{Data: d}); err != nil {
				return writeErr(cmd, err)
			}
			if delErr != nil {
				return writeErr(cmd, delErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&member, "member", "", "Print this member's tasks afterwards")
	return cmd
}
