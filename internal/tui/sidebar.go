package tui

import (
	"strings"

	"trackup/internal/state"
)

var navLabels = map[state.TriggerID]string{
	state.NavDashboard: "Dashboard",
	state.NavBuddy:     "TrackUp Buddy",
	state.NavAllTeams:  "All Teams",
	state.NavContact:   "Contact",
}

func navLabel(t state.TriggerID) string {
	if l, ok := navLabels[t]; ok {
		return l
	}
	return string(t)
}

func (m appModel) renderSidebar(height int) string {
	w := sidebarW - 1
	var lines []string
	lines = append(lines, styleHeading().Render("TrackUp"), "")
	for i, b := range m.st.Router.Registry().Bindings() {
		label := fitLine(" "+string(rune('1'+i))+" "+navLabel(b.Trigger), w)
		if m.st.Router.IsTriggerActive(b.Trigger) {
			label = styleSelected().Render(label)
		}
		lines = append(lines, mark(zoneID(zoneNavPrefix, string(b.Trigger)), label))
	}

	lines = append(lines, "", styleMuted().Render(" TEAMS"))
	switch {
	case !m.st.Roster.Loaded():
		lines = append(lines, styleMuted().Render(" "+loadingTeamsText))
	case m.st.Roster.Empty():
		lines = append(lines, styleMuted().Render(" "+emptyNavText))
	default:
		for _, t := range m.st.Roster.Teams() {
			lines = append(lines, mark(zoneID(zoneTeamNav, t.Name), fitLine(" # "+t.Name, w)))
		}
	}
	return normalizePane(strings.Join(lines, "\n"), w, height)
}
