package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Zone ids. Compound ids join parts with zoneSep; names are free text, so
// member zones are looked up by iterating the roster rather than parsing.
const (
	zoneSep        = "\x1f"
	zoneNavPrefix  = "nav"
	zoneTeamNav    = "teamnav"
	zoneMemberName = "member"
	zoneMemberChat = "member-chat"
	zoneMemberDrop = "member-remove"
	zoneTeamDelete = "team-delete"
	zoneModalBox   = "modal-box"
	zoneModalChat  = "modal-chat"
	zoneModalClose = "modal-close"
	zoneTaskDelete = "task-delete"
	zoneConfirmYes = "confirm-yes"
	zoneConfirmNo  = "confirm-no"
	zoneChatSend   = "chat-send"
	zoneJumpPrefix = "jump"
)

func zoneID(parts ...string) string { return strings.Join(parts, zoneSep) }

func mark(id, s string) string {
	if zone.DefaultManager == nil {
		return s
	}
	return zone.Mark(id, s)
}

func scanZones(s string) string {
	if zone.DefaultManager == nil {
		return s
	}
	return zone.Scan(s)
}

func inZone(id string, msg tea.MouseMsg) bool {
	if zone.DefaultManager == nil {
		return false
	}
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

// zoneKnown reports whether id was rendered in the last frame.
func zoneKnown(id string) bool {
	if zone.DefaultManager == nil {
		return false
	}
	z := zone.Get(id)
	return z != nil && !z.IsZero()
}
