package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// resolveConfirm closes the confirm modal and, when accepted, runs its
// action.
func (m *appModel) resolveConfirm(accept bool) tea.Cmd {
	req := m.confirm
	m.confirm = nil
	m.syncFocus()
	if req == nil || !accept || req.onConfirm == nil {
		return nil
	}
	return req.onConfirm(m)
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.focus = confirmFocusCancel
		} else {
			m.confirm.focus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		return m, (&m).resolveConfirm(m.confirm.focus == confirmFocusConfirm)
	}
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, (&m).resolveConfirm(true)
	case key.Matches(msg, m.keys.Cancel):
		return m, (&m).resolveConfirm(false)
	}
	return m, nil
}

func (m appModel) clickConfirm(msg tea.MouseMsg) (appModel, tea.Cmd) {
	switch {
	case inZone(zoneConfirmYes, msg):
		return m, (&m).resolveConfirm(true)
	case inZone(zoneConfirmNo, msg):
		return m, (&m).resolveConfirm(false)
	}
	return m, nil
}

func renderConfirmModal(width int, req confirmRequest) string {
	btnActive := styleButton().
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	label := req.confirmLabel
	if label == "" {
		label = "OK"
	}
	confirm := styleDangerButton().Render(label)
	cancel := styleButton().Render("Cancel")
	if req.focus == confirmFocusConfirm {
		confirm = btnActive.Render(label)
	} else {
		cancel = btnActive.Render("Cancel")
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top,
		mark(zoneConfirmYes, confirm), " ", mark(zoneConfirmNo, cancel))

	help := styleMuted().Width(modalBodyWidth(width)).Render("tab: focus   enter: select   y: yes   esc/n: cancel")
	content := strings.Join([]string{req.body, "", controls, "", help}, "\n")
	return renderModalBox(width, req.title, content)
}
