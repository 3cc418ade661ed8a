package tui

import (
	"trackup/internal/logger"
	"trackup/internal/state"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		(&m).resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.st.Chat.Transcript.Pending() > 0 {
			(&m).refreshChatView(false)
		}
		return m, cmd

	case chatReplyMsg:
		return m, (&m).applyChatReply(msg)

	case teamsFetchedMsg:
		(&m).applyTeams(msg)
		return m, nil

	case memberDetailMsg:
		(&m).applyMemberDetail(msg)
		return m, nil

	case mutationDoneMsg:
		return m, (&m).applyMutation(msg)

	case taskDeletedMsg:
		return m, (&m).applyTaskDeleted(msg)

	case clipboardDoneMsg:
		if msg.err != nil {
			logger.Warnf("copy user id: %v", msg.err)
			(&m).showMinibuffer("Copy failed: " + msg.err.Error())
		} else {
			(&m).showMinibuffer("Copied user id")
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m *appModel) resize(w, h int) {
	m.width = w
	m.height = h
	mainW := max(minMainW, w-sidebarW-1)
	bodyH := max(minBodyH, h-headerLines-footerLines)

	m.chatView.Width = mainW
	m.chatView.Height = max(1, bodyH-4)
	m.teamsView.Width = mainW
	m.teamsView.Height = max(1, bodyH-2)
	m.help.Width = w

	m.refreshChatView(true)
	m.refreshTeamsView()
}

// fire activates a nav trigger and re-targets focus for the new view.
func (m *appModel) fire(t state.TriggerID) {
	if !m.st.Router.Fire(t) {
		return
	}
	if m.st.Router.IsActive(viewTeams) {
		m.refreshTeamsView()
	}
	m.syncFocus()
}

func (m *appModel) cycle(delta int) {
	m.st.Router.Cycle(delta)
	m.syncFocus()
}

// navIndexKey maps a view hotkey to its position in the nav list.
func (m appModel) navIndexKey(msg tea.KeyMsg) (int, bool) {
	k := m.keys
	for i, b := range []key.Binding{k.Dashboard, k.Chat, k.Teams, k.Contact} {
		if key.Matches(msg, b) {
			return i, true
		}
	}
	if !m.inputFocused() && key.Matches(msg, k.DigitNav) {
		return int(msg.String()[0] - '1'), true
	}
	return 0, false
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	m.minibufferText = ""

	switch {
	case m.confirm != nil:
		return m.updateConfirm(msg)
	case m.jump != nil:
		return m.updateJump(msg)
	case m.st.Modal.IsOpen():
		return m.updateModal(msg)
	}

	if i, ok := m.navIndexKey(msg); ok {
		bs := m.st.Router.Registry().Bindings()
		if i >= 0 && i < len(bs) {
			(&m).fire(bs[i].Trigger)
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.NextView):
		(&m).cycle(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevView):
		(&m).cycle(-1)
		return m, nil
	case key.Matches(msg, m.keys.CopyID):
		return m, copyUserIDCmd(m.st.Chat.UserID)
	case !m.inputFocused() && key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	switch m.st.Router.Active() {
	case viewChat:
		return m.updateChat(msg)
	case viewTeams:
		return m.updateTeams(msg)
	default:
		if key.Matches(msg, m.keys.Refresh) {
			return m, (&m).startRefresh()
		}
	}
	return m, nil
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		if tea.MouseEvent(msg).IsWheel() && m.confirm == nil && m.jump == nil && !m.st.Modal.IsOpen() {
			var cmd tea.Cmd
			switch m.st.Router.Active() {
			case viewChat:
				m.chatView, cmd = m.chatView.Update(msg)
			case viewTeams:
				m.teamsView, cmd = m.teamsView.Update(msg)
			}
			return m, cmd
		}
		return m, nil
	}

	switch {
	case m.confirm != nil:
		return m.clickConfirm(msg)
	case m.jump != nil:
		return m.clickJump(msg)
	case m.st.Modal.IsOpen():
		return m.clickModal(msg)
	}

	for _, b := range m.st.Router.Registry().Bindings() {
		if inZone(zoneID(zoneNavPrefix, string(b.Trigger)), msg) {
			(&m).fire(b.Trigger)
			return m, nil
		}
	}
	for _, t := range m.st.Roster.Teams() {
		if inZone(zoneID(zoneTeamNav, t.Name), msg) {
			(&m).gotoTeam(t.Name)
			return m, nil
		}
	}

	switch m.st.Router.Active() {
	case viewChat:
		if inZone(zoneChatSend, msg) {
			return m, (&m).sendChat(m.chatInput.Value())
		}
	case viewTeams:
		mm, cmd, _ := m.clickTeams(msg)
		return mm, cmd
	}
	return m, nil
}
