package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading…"
	}
	return scanZones(m.render())
}

func (m appModel) render() string {
	switch {
	case m.confirm != nil:
		return placeCentered(m.width, m.height, renderConfirmModal(m.width, *m.confirm))
	case m.jump != nil:
		return placeCentered(m.width, m.height, m.renderJump())
	case m.st.Modal.IsOpen():
		return placeCentered(m.width, m.height, m.renderMemberModal())
	}

	bodyH := max(minBodyH, m.height-headerLines-footerLines)
	mainW := max(minMainW, m.width-sidebarW-1)

	var main string
	switch m.st.Router.Active() {
	case viewChat:
		main = m.chatPane(mainW)
	case viewTeams:
		main = m.teamsPane()
	case viewContact:
		main = m.contactPane(mainW)
	default:
		main = m.dashboardPane(mainW)
	}

	sep := styleMuted().Render(strings.TrimSuffix(strings.Repeat("│\n", bodyH), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(bodyH),
		sep,
		normalizePane(main, mainW, bodyH),
	)
	return strings.Join([]string{m.renderHeader(), body, m.renderFooter()}, "\n")
}

func (m appModel) renderHeader() string {
	title := styleHeading().Render("TrackUp")
	if t, ok := m.st.Router.ActiveTrigger(); ok {
		title += styleMuted().Render(" / " + navLabel(t))
	}
	return fitLine(title, m.width) + "\n"
}

func (m appModel) renderFooter() string {
	mini := m.minibufferText
	h := m.help
	h.ShowAll = false
	helpLine := h.View(m.contextHelp())
	if m.showHelp {
		helpLine = m.help.FullHelpView(m.contextHelp().FullHelp())
	}
	return fitLine(mini, m.width) + "\n" + helpLine
}
