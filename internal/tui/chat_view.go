package tui

import (
	"strings"

	"trackup/internal/model"
	"trackup/internal/state"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	userLabel       = "You"
	botLabel        = "TrackUp Bot"
	thinkingText    = "Thinking..."
	chatIntroText   = "Ask TrackUp Buddy to create teams, add members, assign tasks or report progress."
	timestampLayout = "15:04"
)

func senderLabel(s model.Sender) string {
	if s == model.SenderUser {
		return userLabel
	}
	return botLabel
}

func avatar(s model.Sender) string {
	st := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if s == model.SenderUser {
		return st.Foreground(colorUserAccent).Render("U")
	}
	return st.Foreground(colorAccent).Render("T")
}

func (m appModel) renderEntry(e state.Entry, width int) string {
	msg := e.Message
	head := avatar(msg.Sender) + lipgloss.NewStyle().Bold(true).Render(senderLabel(msg.Sender))
	if !msg.At.IsZero() {
		head += "  " + styleMuted().Render(msg.At.Format(timestampLayout))
	}
	bodyW := max(10, width-3)
	var body string
	switch {
	case e.Kind == state.EntryLoading:
		body = m.spinner.View() + " " + styleMuted().Render(thinkingText)
	case msg.Sender == model.SenderBot:
		body = renderMarkdown(msg.Text, bodyW)
	default:
		body = lipgloss.NewStyle().Width(bodyW).Render(msg.Text)
	}
	return head + "\n" + indent(body, 3)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = pad + ln
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderTranscript(width int) string {
	entries := m.st.Chat.Transcript.Entries()
	if len(entries) == 0 {
		return styleMuted().Width(max(10, width)).Render(chatIntroText)
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, m.renderEntry(e, width))
	}
	return strings.Join(parts, "\n\n")
}

// refreshChatView re-renders the transcript. bottom scrolls to the newest
// entry, which every append does.
func (m *appModel) refreshChatView(bottom bool) {
	m.chatView.SetContent(m.renderTranscript(m.chatView.Width))
	if bottom {
		m.chatView.GotoBottom()
	}
}

func (m appModel) updateChat(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Send):
		return m, (&m).sendChat(m.chatInput.Value())
	case key.Matches(msg, m.keys.ScrollUp):
		m.chatView.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.chatView.HalfViewDown()
		return m, nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	m.st.Chat.Input = m.chatInput.Value()
	return m, cmd
}

func (m appModel) chatPane(width int) string {
	title := styleHeading().Render("TrackUp Buddy")
	if n := m.st.Chat.Transcript.Pending(); n > 0 {
		title += " " + m.spinner.View()
	}
	send := mark(zoneChatSend, styleButton().Render("Send"))
	m.chatInput.Width = max(10, width-lipgloss.Width(send)-4)
	input := lipgloss.JoinHorizontal(lipgloss.Top, m.chatInput.View(), " ", send)
	return strings.Join([]string{title, "", m.chatView.View(), "", input}, "\n")
}
