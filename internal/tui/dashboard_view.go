package tui

import (
	"fmt"
	"strings"

	"trackup/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) dashboardPane(width int) string {
	teams := m.st.Roster.Teams()
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(0, 2)
	stat := func(label string, v string) string {
		return card.Render(styleMuted().Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(v))
	}
	teamsV, membersV := "-", "-"
	if m.st.Roster.Loaded() {
		teamsV = fmt.Sprint(len(teams))
		membersV = fmt.Sprint(teams.MemberCount())
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top, stat("Teams", teamsV), " ", stat("Members", membersV))

	lines := []string{
		styleHeading().Render("Dashboard"),
		"",
		stats,
		"",
		styleMuted().Render("Session ") + m.st.Chat.UserID + styleMuted().Render("  (ctrl+y to copy)"),
		"",
		styleHeading().Render("Latest from " + botLabel),
	}
	if last, ok := m.st.Chat.Transcript.LastFrom(model.SenderBot); ok {
		lines = append(lines, renderMarkdown(last.Text, max(10, width-2)))
	} else {
		lines = append(lines, styleMuted().Render("No conversation yet. Press 2 to talk to TrackUp Buddy."))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) contactPane(width int) string {
	body := lipgloss.NewStyle().Width(max(10, width-2)).Render(
		"TrackUp keeps your teams and their tasks in one place. " +
			"Use TrackUp Buddy to create teams, add members and assign work in plain language.")
	lines := []string{
		styleHeading().Render("Contact"),
		"",
		body,
		"",
		styleMuted().Render("Found a problem? Check the log file passed with --log-file and include it in your report."),
	}
	return strings.Join(lines, "\n")
}
