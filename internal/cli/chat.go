package cli

import (
	"errors"
	"strings"

	"trackup/internal/format"

	"github.com/spf13/cobra"
)

type chatResult struct {
	Query    string `json:"query"`
	UserID   string `json:"user_id"`
	Response string `json:"response"`
}

func newChatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant",
	}
	cmd.AddCommand(newChatSendCmd(app))
	return cmd
}

func newChatSendCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "send <text...>",
		Short: "Send one message and print the reply",
		Example: strings.TrimSpace(`
trackup chat send create team Design
trackup chat send --user user_42 "progress Design"
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return writeErr(cmd, errors.New("chat: empty message"))
			}
			uid := strings.TrimSpace(userID)
			if uid == "" {
				uid = newUserID()
			}
			reply, err := client(app).Chat(commandContext(cmd), query, uid)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data:  chatResult{Query: query, UserID: uid, Response: reply},
				Hints: []string{"trackup teams list"},
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", envOr("TRACKUP_USER", ""), "User id sent with the message (default: a new random id)")
	return cmd
}
