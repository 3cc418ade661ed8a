package tui

import (
	"fmt"
	"strings"

	"trackup/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	emptyTeamsText   = "No teams found. Ask TrackUp Buddy to create one!"
	emptyNavText     = "No teams"
	noMembersText    = "No members yet"
	loadingTeamsText = "Loading teams..."
)

func buildRows(r model.Roster) []teamRow {
	var rows []teamRow
	for _, t := range r {
		rows = append(rows, teamRow{kind: rowTeam, team: t.Name})
		for _, mem := range t.Members {
			rows = append(rows, teamRow{kind: rowMember, team: t.Name, member: mem})
		}
	}
	return rows
}

// rebuildRows replaces the rows from the current roster, keeping the
// selection on the same team/member when it still exists.
func (m *appModel) rebuildRows() {
	var prev teamRow
	hadPrev := m.cursor >= 0 && m.cursor < len(m.rows)
	if hadPrev {
		prev = m.rows[m.cursor]
	}
	m.rows = buildRows(m.st.Roster.Teams())
	m.cursor = 0
	if hadPrev {
		for i, r := range m.rows {
			if r == prev {
				m.cursor = i
				break
			}
		}
		if m.cursor == 0 && prev.kind == rowMember {
			if i := m.teamRowIndex(prev.team); i >= 0 {
				m.cursor = i
			}
		}
	}
	m.refreshTeamsView()
}

func (m appModel) selectedRow() (teamRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return teamRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m appModel) teamRowIndex(team string) int {
	for i, r := range m.rows {
		if r.kind == rowTeam && r.team == team {
			return i
		}
	}
	return -1
}

func (m *appModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(len(m.rows)-1, m.cursor+delta))
	m.refreshTeamsView()
}

// stepTeam moves the cursor to the previous/next team header.
func (m *appModel) stepTeam(delta int) {
	if len(m.rows) == 0 {
		return
	}
	for i := m.cursor + delta; i >= 0 && i < len(m.rows); i += delta {
		if m.rows[i].kind == rowTeam {
			m.cursor = i
			break
		}
	}
	m.refreshTeamsView()
}

// gotoTeam is the nav entry action: show the teams view with the team's
// card scrolled into view.
func (m *appModel) gotoTeam(team string) {
	m.st.Router.Switch(viewTeams)
	if i := m.teamRowIndex(team); i >= 0 {
		m.cursor = i
	}
	m.refreshTeamsView()
	if ln, ok := m.teamLine[team]; ok {
		m.teamsView.SetYOffset(ln)
	}
	m.syncFocus()
}

func (m *appModel) confirmRemoveMember(team, member string) {
	m.confirm = &confirmRequest{
		title:        "Remove member",
		body:         fmt.Sprintf("Remove %s from %s?", member, team),
		confirmLabel: "Remove",
		onConfirm:    func(m *appModel) tea.Cmd { return m.removeMemberCmd(team, member) },
	}
	m.syncFocus()
}

func (m *appModel) confirmDeleteTeam(team string) {
	m.confirm = &confirmRequest{
		title:        "Delete team",
		body:         fmt.Sprintf("Are you sure you want to delete team %s?", team),
		confirmLabel: "Delete",
		onConfirm:    func(m *appModel) tea.Cmd { return m.deleteTeamCmd(team) },
	}
	m.syncFocus()
}

func (m appModel) updateTeams(msg tea.KeyMsg) (appModel, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		(&m).moveCursor(-1)
	case key.Matches(msg, k.Down):
		(&m).moveCursor(1)
	case key.Matches(msg, k.PrevTeam):
		(&m).stepTeam(-1)
	case key.Matches(msg, k.NextTeam):
		(&m).stepTeam(1)
	case key.Matches(msg, k.ScrollUp):
		m.teamsView.HalfViewUp()
	case key.Matches(msg, k.ScrollDown):
		m.teamsView.HalfViewDown()
	case key.Matches(msg, k.Refresh):
		return m, (&m).startRefresh()
	case key.Matches(msg, k.Jump):
		(&m).openJump()
	case key.Matches(msg, k.DeleteTeam):
		if r, ok := m.selectedRow(); ok {
			(&m).confirmDeleteTeam(r.team)
		}
	case key.Matches(msg, k.Open):
		if r, ok := m.selectedRow(); ok && r.kind == rowMember {
			return m, (&m).openMember(r.member)
		}
	case key.Matches(msg, k.Message):
		if r, ok := m.selectedRow(); ok && r.kind == rowMember {
			(&m).prefill(r.member)
			m.refreshChatView(false)
		}
	case key.Matches(msg, k.Remove):
		r, ok := m.selectedRow()
		if !ok {
			break
		}
		if r.kind == rowMember {
			(&m).confirmRemoveMember(r.team, r.member)
		} else {
			(&m).confirmDeleteTeam(r.team)
		}
	}
	return m, nil
}

// clickTeams dispatches a left click inside the teams view.
func (m appModel) clickTeams(msg tea.MouseMsg) (appModel, tea.Cmd, bool) {
	for i, r := range m.rows {
		switch r.kind {
		case rowTeam:
			if inZone(zoneID(zoneTeamDelete, r.team), msg) {
				m.cursor = i
				(&m).confirmDeleteTeam(r.team)
				return m, nil, true
			}
		case rowMember:
			switch {
			case inZone(zoneID(zoneMemberName, r.team, r.member), msg):
				m.cursor = i
				return m, (&m).openMember(r.member), true
			case inZone(zoneID(zoneMemberChat, r.team, r.member), msg):
				(&m).prefill(r.member)
				m.refreshChatView(false)
				return m, nil, true
			case inZone(zoneID(zoneMemberDrop, r.team, r.member), msg):
				m.cursor = i
				(&m).confirmRemoveMember(r.team, r.member)
				return m, nil, true
			}
		}
	}
	return m, nil, false
}

// renderTeamsContent renders every team card and records where each team
// header starts.
func (m appModel) renderTeamsContent(width int) (string, map[string]int) {
	lines := map[string]int{}
	if !m.st.Roster.Loaded() {
		return styleMuted().Render(loadingTeamsText), lines
	}
	if m.st.Roster.Empty() {
		return styleMuted().Render(emptyTeamsText), lines
	}
	width = max(width, minMainW)

	var out []string
	row := 0
	for ti, t := range m.st.Roster.Teams() {
		if ti > 0 {
			out = append(out, "")
		}
		lines[t.Name] = len(out)

		del := mark(zoneID(zoneTeamDelete, t.Name), styleDangerButton().Render("Delete Team"))
		head := styleHeading().Render(t.Name) + styleMuted().Render(fmt.Sprintf("  (%d)", len(t.Members)))
		out = append(out, m.renderRowLine(row, head, del, width))
		row++

		if len(t.Members) == 0 {
			out = append(out, "  "+styleMuted().Render(noMembersText))
			continue
		}
		for _, mem := range t.Members {
			name := mark(zoneID(zoneMemberName, t.Name, mem), mem)
			actions := lipgloss.JoinHorizontal(lipgloss.Top,
				mark(zoneID(zoneMemberChat, t.Name, mem), styleButton().Render("Message")),
				" ",
				mark(zoneID(zoneMemberDrop, t.Name, mem), styleDangerButton().Render("Remove")),
			)
			out = append(out, m.renderRowLine(row, "  "+name, actions, width))
			row++
		}
	}
	return strings.Join(out, "\n"), lines
}

// renderRowLine lays out left and right aligned parts on one line, truncating
// the left side first.
func (m appModel) renderRowLine(row int, left, right string, width int) string {
	lw := max(0, width-lipgloss.Width(right)-1)
	left = fitLine(left, lw)
	if row == m.cursor {
		left = styleSelected().Render(left)
	}
	return left + " " + right
}

// refreshTeamsView re-renders the teams viewport and keeps the cursor row
// visible.
func (m *appModel) refreshTeamsView() {
	w := m.teamsView.Width
	content, lines := m.renderTeamsContent(w)
	m.teamLine = lines
	m.teamsView.SetContent(content)

	r, ok := m.selectedRow()
	if !ok {
		return
	}
	ln, ok := lines[r.team]
	if !ok {
		return
	}
	if r.kind == rowMember {
		for i := m.cursor; i >= 0 && m.rows[i].kind != rowTeam; i-- {
			ln++
		}
	}
	h := m.teamsView.Height
	if h <= 0 {
		return
	}
	if ln < m.teamsView.YOffset {
		m.teamsView.SetYOffset(ln)
	} else if ln >= m.teamsView.YOffset+h {
		m.teamsView.SetYOffset(ln - h + 1)
	}
}

func (m appModel) teamsPane() string {
	title := styleHeading().Render("All Teams")
	if m.st.Roster.InFlight() {
		title += " " + m.spinner.View()
	}
	return title + "\n\n" + m.teamsView.View()
}
