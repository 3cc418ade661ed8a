package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"trackup/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

var errBoom = errors.New("boom")

type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	roster    model.Roster
	teamsErr  error
	chatReply string
	chatErr   error
	chatUsers []string
	members   map[string]model.MemberDetail
	memberErr error
	deleteErr error
}

func (f *fakeBackend) record(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) Chat(_ context.Context, query, userID string) (string, error) {
	f.record("POST /chat " + query)
	f.mu.Lock()
	f.chatUsers = append(f.chatUsers, userID)
	f.mu.Unlock()
	return f.chatReply, f.chatErr
}

func (f *fakeBackend) Teams(context.Context) (model.Roster, error) {
	f.record("GET /api/teams")
	if f.teamsErr != nil {
		return nil, f.teamsErr
	}
	return f.roster, nil
}

func (f *fakeBackend) Member(_ context.Context, name string) (model.MemberDetail, error) {
	f.record("GET /api/member/" + name)
	if f.memberErr != nil {
		return model.MemberDetail{}, f.memberErr
	}
	d, ok := f.members[name]
	if !ok {
		return model.MemberDetail{Tasks: []model.Task{}}, nil
	}
	return d, nil
}

func (f *fakeBackend) DeleteTask(_ context.Context, id string) error {
	f.record("DELETE /api/tasks/" + id)
	return f.deleteErr
}

func (f *fakeBackend) DeleteTeam(_ context.Context, team string) error {
	f.record("DELETE /api/teams/" + team)
	return f.deleteErr
}

func (f *fakeBackend) RemoveMember(_ context.Context, team, member string) error {
	f.record(fmt.Sprintf("DELETE /api/teams/%s/members/%s", team, member))
	return f.deleteErr
}

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T, b *fakeBackend) appModel {
	t.Helper()
	m := newAppModel(Options{
		Backend: b,
		UserID:  "user_test",
		Now:     func() time.Time { return fixedNow },
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return drain(t, m, m.initCmd)
}

func update(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

// press sends one key and returns the model plus the command it produced.
func press(t *testing.T, m appModel, k string) (appModel, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "f1":
		msg = tea.KeyMsg{Type: tea.KeyF1}
	case "f3":
		msg = tea.KeyMsg{Type: tea.KeyF3}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(appModel), cmd
}

// drain runs cmd synchronously and feeds the app messages it yields back
// into Update until nothing is left. Timer driven messages are dropped.
func drain(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("drain: too many steps")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case chatReplyMsg, teamsFetchedMsg, memberDetailMsg, mutationDoneMsg, taskDeletedMsg:
			next, nc := m.Update(msg)
			m = next.(appModel)
			queue = append(queue, nc)
		}
	}
	return m
}

func engRoster() model.Roster {
	return model.Roster{
		{Name: "Eng", Members: []string{"Alice", "Bob"}},
		{Name: "Ops", Members: []string{}},
	}
}

func equalCalls(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls: got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls: got %q, want %q", got, want)
		}
	}
}
