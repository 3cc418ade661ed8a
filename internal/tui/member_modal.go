package tui

import (
	"fmt"
	"strings"

	"trackup/internal/state"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *appModel) closeModal() {
	m.st.Modal.Close()
	m.syncFocus()
}

func (m *appModel) confirmDeleteTask(member, id string) {
	m.confirm = &confirmRequest{
		title:        "Delete task",
		body:         "Delete this task?",
		confirmLabel: "Delete",
		onConfirm:    func(m *appModel) tea.Cmd { return m.deleteTaskCmd(member, id) },
	}
	m.syncFocus()
}

// messageFromModal closes the modal and drafts a message to its member.
func (m *appModel) messageFromModal() {
	member := m.st.Modal.Member()
	m.closeModal()
	m.prefill(member)
	m.refreshChatView(false)
}

func (m appModel) updateModal(msg tea.KeyMsg) (appModel, tea.Cmd) {
	k := m.keys
	tasks := m.st.Modal.Tasks()
	switch {
	case key.Matches(msg, k.Cancel):
		(&m).closeModal()
	case key.Matches(msg, k.Message):
		(&m).messageFromModal()
	case key.Matches(msg, k.Up):
		if m.modalTask > 0 {
			m.modalTask--
		}
	case key.Matches(msg, k.Down):
		if m.modalTask < len(tasks)-1 {
			m.modalTask++
		}
	case key.Matches(msg, k.Remove):
		if m.modalTask >= 0 && m.modalTask < len(tasks) {
			(&m).confirmDeleteTask(m.st.Modal.Member(), tasks[m.modalTask].ID)
		}
	}
	return m, nil
}

// clickModal handles a click while the modal is open. Clicks outside the
// modal box dismiss it.
func (m appModel) clickModal(msg tea.MouseMsg) (appModel, tea.Cmd) {
	switch {
	case inZone(zoneModalClose, msg):
		(&m).closeModal()
		return m, nil
	case inZone(zoneModalChat, msg):
		(&m).messageFromModal()
		return m, nil
	}
	for i, t := range m.st.Modal.Tasks() {
		if inZone(zoneID(zoneTaskDelete, t.ID), msg) {
			m.modalTask = i
			(&m).confirmDeleteTask(m.st.Modal.Member(), t.ID)
			return m, nil
		}
	}
	if zoneKnown(zoneModalBox) && !inZone(zoneModalBox, msg) {
		(&m).closeModal()
	}
	return m, nil
}

func (m appModel) renderMemberModal() string {
	md := m.st.Modal
	bodyW := modalBodyWidth(m.width)

	stat := func(label, v string) string {
		return styleMuted().Render(label) + " " + lipgloss.NewStyle().Bold(true).Render(v)
	}
	stats := stat("Completed", md.Completed()) + "    " + stat("Total", md.Total())

	var lines []string
	lines = append(lines, stats, "", styleHeading().Render("Tasks"))
	if body := md.Body(); body != "" {
		st := styleMuted()
		if md.Status() == state.ModalFailed {
			st = styleError()
		}
		lines = append(lines, st.Render(body))
	} else {
		for i, t := range md.Tasks() {
			del := mark(zoneID(zoneTaskDelete, t.ID), styleDangerButton().Render("Delete"))
			status := styleTaskStatus(string(t.Status)).Render(fmt.Sprintf("[%s]", t.Status))
			left := status + " " + t.Title
			if t.Deadline != "" {
				left += styleMuted().Render("  due " + t.Deadline)
			}
			lw := max(0, bodyW-lipgloss.Width(del)-1)
			left = fitLine(left, lw)
			if i == m.modalTask {
				left = styleSelected().Render(left)
			}
			lines = append(lines, left+" "+del)
		}
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top,
		mark(zoneModalChat, styleButton().Render(state.ModalChatLabel)),
		" ",
		mark(zoneModalClose, styleButton().Render("Close")),
	)
	lines = append(lines, "", controls)
	return mark(zoneModalBox, renderModalBox(m.width, md.Member(), strings.Join(lines, "\n")))
}
