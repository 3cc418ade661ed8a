package tui

import (
	"context"

	"trackup/internal/model"
	"trackup/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	viewDashboard = state.ViewDashboard
	viewChat      = state.ViewChat
	viewTeams     = state.ViewTeams
	viewContact   = state.ViewContact
)

// Backend is the slice of the TrackUp HTTP API the UI talks to.
// *api.Client satisfies it.
type Backend interface {
	Chat(ctx context.Context, query, userID string) (string, error)
	Teams(ctx context.Context) (model.Roster, error)
	Member(ctx context.Context, name string) (model.MemberDetail, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteTeam(ctx context.Context, team string) error
	RemoveMember(ctx context.Context, team, member string) error
}

type chatReplyMsg struct {
	pending state.PendingSend
	reply   string
	err     error
}

type teamsFetchedMsg struct {
	seq    uint64
	roster model.Roster
	err    error
}

type memberDetailMsg struct {
	seq    uint64
	member string
	detail model.MemberDetail
	err    error
}

type mutationKind int

const (
	mutationRemoveMember mutationKind = iota
	mutationDeleteTeam
)

func (k mutationKind) String() string {
	switch k {
	case mutationRemoveMember:
		return "remove member"
	case mutationDeleteTeam:
		return "delete team"
	default:
		return "mutation"
	}
}

type mutationDoneMsg struct {
	kind   mutationKind
	team   string
	member string
	err    error
}

type taskDeletedMsg struct {
	member string
	taskID string
	err    error
}

type clipboardDoneMsg struct{ err error }

type rowKind int

const (
	rowTeam rowKind = iota
	rowMember
)

// teamRow is one selectable line of the teams view. Member rows carry
// their team so actions know where to send the delete.
type teamRow struct {
	kind   rowKind
	team   string
	member string
}

type confirmFocus int

const (
	confirmFocusConfirm confirmFocus = iota
	confirmFocusCancel
)

// confirmRequest is a pending destructive action. Nothing is sent until the
// user accepts.
type confirmRequest struct {
	title        string
	body         string
	confirmLabel string
	focus        confirmFocus
	onConfirm    func(m *appModel) tea.Cmd
}
