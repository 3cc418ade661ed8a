package cli

import (
	"fmt"

	"trackup/internal/api"
	"trackup/internal/format"
	"trackup/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newTeamsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Team directory commands",
	}
	cmd.AddCommand(newTeamsListCmd(app))
	cmd.AddCommand(newTeamsDeleteCmd(app))
	cmd.AddCommand(newTeamsRemoveMemberCmd(app))
	cmd.AddCommand(newTeamsPublishCmd(app))
	return cmd
}

func newTeamsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams and their members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := client(app).Teams(commandContext(cmd))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: r})
		},
	}
}

func newTeamsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <team>",
		Short: "Delete a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team := args[0]
			if err := confirm(cmd, yes, fmt.Sprintf("Are you sure you want to delete team %s?", team)); err != nil {
				return writeErr(cmd, err)
			}
			c := client(app)
			ctx := commandContext(cmd)
			err := c.DeleteTeam(ctx, team)
			if err != nil {
				logger.WithFields(logrus.Fields{"team": team}).Warnf("delete team: %v", err)
			}
			return refreshRoster(cmd, app, c, describe(err, "team", team))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newTeamsRemoveMemberCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove-member <team> <member>",
		Short: "Remove a member from a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			team, member := args[0], args[1]
			if err := confirm(cmd, yes, fmt.Sprintf("Remove %s from %s?", member, team)); err != nil {
				return writeErr(cmd, err)
			}
			c := client(app)
			ctx := commandContext(cmd)
			err := c.RemoveMember(ctx, team, member)
			if err != nil {
				logger.WithFields(logrus.Fields{"team": team, "member": member}).Warnf("remove member: %v", err)
			}
			return refreshRoster(cmd, app, c, describe(err, "member", member))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// refreshRoster re-fetches and prints the roster after a mutation, whether or
// not the mutation succeeded, then reports mutErr.
func refreshRoster(cmd *cobra.Command, app *App, c *api.Client, mutErr error) error {
	r, err := c.Teams(commandContext(cmd))
	if err != nil {
		if mutErr != nil {
			return writeErr(cmd, mutErr)
		}
		return writeErr(cmd, err)
	}
	if err := writeOut(cmd, app, format.Envelope{Data: r}); err != nil {
		return writeErr(cmd, err)
	}
	if mutErr != nil {
		return writeErr(cmd, mutErr)
	}
	return nil
}
