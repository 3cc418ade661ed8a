package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

const jumpMaxResults = 8

// jumpState is the "jump to team" prompt.
type jumpState struct {
	input    textinput.Model
	names    []string
	matches  []fuzzy.Match
	selected int
}

func newJumpState(names []string) *jumpState {
	in := textinput.New()
	in.Prompt = "team: "
	in.Placeholder = "type to filter"
	in.Focus()
	j := &jumpState{input: in, names: names}
	j.filter()
	return j
}

func (j *jumpState) filter() {
	q := strings.TrimSpace(j.input.Value())
	j.selected = 0
	if q == "" {
		j.matches = make([]fuzzy.Match, len(j.names))
		for i, n := range j.names {
			j.matches[i] = fuzzy.Match{Str: n, Index: i}
		}
		return
	}
	j.matches = fuzzy.Find(q, j.names)
}

func (j *jumpState) current() (string, bool) {
	if j.selected < 0 || j.selected >= len(j.matches) {
		return "", false
	}
	return j.names[j.matches[j.selected].Index], true
}

func (m *appModel) openJump() {
	teams := m.st.Roster.Teams()
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	m.jump = newJumpState(names)
	m.syncFocus()
}

func (m appModel) updateJump(msg tea.KeyMsg) (appModel, tea.Cmd) {
	j := m.jump
	switch msg.String() {
	case "esc", "ctrl+g":
		m.jump = nil
		(&m).syncFocus()
		return m, nil
	case "enter":
		name, ok := j.current()
		m.jump = nil
		if ok {
			(&m).gotoTeam(name)
		} else {
			(&m).syncFocus()
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "ctrl+p"))):
		if j.selected > 0 {
			j.selected--
		}
		return m, nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "ctrl+n"))):
		if j.selected < min(len(j.matches), jumpMaxResults)-1 {
			j.selected++
		}
		return m, nil
	}
	var cmd tea.Cmd
	j.input, cmd = j.input.Update(msg)
	j.filter()
	return m, cmd
}

func (m appModel) clickJump(msg tea.MouseMsg) (appModel, tea.Cmd) {
	for i, mt := range m.jump.matches {
		if i >= jumpMaxResults {
			break
		}
		if inZone(zoneID(zoneJumpPrefix, mt.Str), msg) {
			name := m.jump.names[mt.Index]
			m.jump = nil
			(&m).gotoTeam(name)
			return m, nil
		}
	}
	return m, nil
}

func (m appModel) renderJump() string {
	j := m.jump
	lines := []string{j.input.View(), ""}
	if len(j.matches) == 0 {
		lines = append(lines, styleMuted().Render("No matching teams"))
	}
	for i, mt := range j.matches {
		if i >= jumpMaxResults {
			lines = append(lines, styleMuted().Render("…"))
			break
		}
		ln := fitLine(mt.Str, modalBodyWidth(m.width))
		if i == j.selected {
			ln = styleSelected().Render(ln)
		}
		lines = append(lines, mark(zoneID(zoneJumpPrefix, mt.Str), ln))
	}
	return renderModalBox(m.width, "Jump to team", strings.Join(lines, "\n"))
}
