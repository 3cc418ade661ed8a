package tui

import (
	"testing"
	"time"

	"trackup/internal/model"
	"trackup/internal/state"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// withZones installs the global zone manager for one test. It must run
// before the model renders anything, since marks are baked into cached
// viewport content.
func withZones(t *testing.T) {
	t.Helper()
	zone.NewGlobal()
	t.Cleanup(func() {
		zone.Close()
		zone.DefaultManager = nil
	})
}

// layout renders a frame and waits for the zone worker to record ids.
func layout(t *testing.T, m appModel, ids ...string) {
	t.Helper()
	for _, id := range ids {
		zone.Clear(id)
	}
	_ = m.View()
	deadline := time.Now().Add(2 * time.Second)
	for _, id := range ids {
		for zone.Get(id).IsZero() {
			if time.Now().After(deadline) {
				t.Fatalf("zone %q never rendered", id)
			}
			time.Sleep(time.Millisecond)
		}
	}
}

func clickAt(m appModel, x, y int) (appModel, tea.Cmd) {
	next, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return next.(appModel), cmd
}

// click renders m and presses the top left cell of zone id.
func click(t *testing.T, m appModel, id string) (appModel, tea.Cmd) {
	t.Helper()
	layout(t, m, id)
	z := zone.Get(id)
	return clickAt(m, z.StartX, z.StartY)
}

func TestMouse_NavSwitchesView(t *testing.T) {
	withZones(t)
	b := &fakeBackend{roster: engRoster()}
	m := newTestModel(t, b)

	m, _ = click(t, m, zoneID(zoneNavPrefix, string(state.NavAllTeams)))
	if !m.st.Router.IsActive(viewTeams) {
		t.Fatalf("active view: got %s, want teams", m.st.Router.Active())
	}
	m, _ = click(t, m, zoneID(zoneNavPrefix, string(state.NavBuddy)))
	if !m.st.Router.IsActive(viewChat) {
		t.Fatalf("active view: got %s, want chat", m.st.Router.Active())
	}
}

func TestMouse_TeamNavSelectsTeam(t *testing.T) {
	withZones(t)
	b := &fakeBackend{roster: engRoster()}
	m := newTestModel(t, b)

	m, _ = click(t, m, zoneID(zoneTeamNav, "Ops"))
	if !m.st.Router.IsActive(viewTeams) {
		t.Fatalf("team nav should open the teams view")
	}
	r, ok := m.selectedRow()
	if !ok || r.kind != rowTeam || r.team != "Ops" {
		t.Fatalf("selected: %#v", r)
	}
}

func TestMouse_MemberNameOpensModal(t *testing.T) {
	withZones(t)
	b := &fakeBackend{
		roster:  engRoster(),
		members: map[string]model.MemberDetail{"Alice": {CompletedTasks: 1, TotalTasks: 2, Tasks: []model.Task{}}},
	}
	m := newTestModel(t, b)
	m, _ = press(t, m, "3")

	m, cmd := click(t, m, zoneID(zoneMemberName, "Eng", "Alice"))
	if !m.st.Modal.IsOpen() || m.st.Modal.Member() != "Alice" {
		t.Fatalf("modal: open=%v member=%q", m.st.Modal.IsOpen(), m.st.Modal.Member())
	}
	m = drain(t, m, cmd)
	equalCalls(t, b.Calls(), "GET /api/teams", "GET /api/member/Alice")
	if m.st.Modal.Status() != state.ModalLoaded {
		t.Fatalf("modal status: %v", m.st.Modal.Status())
	}
}

func TestMouse_ModalBackdrop(t *testing.T) {
	withZones(t)
	b := &fakeBackend{roster: engRoster()}
	m := newTestModel(t, b)
	m = drain(t, m, (&m).openMember("Bob"))

	layout(t, m, zoneModalBox)
	box := zone.Get(zoneModalBox)
	if box.StartX == 0 || box.StartY == 0 {
		t.Fatalf("modal box touches the corner: %+v", box)
	}

	m, _ = clickAt(m, box.StartX+1, box.StartY+1)
	if !m.st.Modal.IsOpen() {
		t.Fatalf("click inside the box closed the modal")
	}

	layout(t, m, zoneModalBox)
	m, _ = clickAt(m, 0, 0)
	if m.st.Modal.IsOpen() {
		t.Fatalf("click outside the box should close the modal")
	}
}

func TestMouse_ModalButtons(t *testing.T) {
	withZones(t)
	b := &fakeBackend{roster: engRoster()}
	m := newTestModel(t, b)

	m = drain(t, m, (&m).openMember("Bob"))
	m, _ = click(t, m, zoneModalClose)
	if m.st.Modal.IsOpen() {
		t.Fatalf("close button should close the modal")
	}

	m = drain(t, m, (&m).openMember("Bob"))
	m, _ = click(t, m, zoneModalChat)
	if m.st.Modal.IsOpen() || !m.st.Router.IsActive(viewChat) {
		t.Fatalf("message button should close the modal and show chat")
	}
	if m.chatInput.Value() != "Message for Bob: " {
		t.Fatalf("input: %q", m.chatInput.Value())
	}
}

func TestMouse_TaskDeleteButtonAsksFirst(t *testing.T) {
	withZones(t)
	b := &fakeBackend{
		roster: engRoster(),
		members: map[string]model.MemberDetail{
			"Bob": {TotalTasks: 1, Tasks: []model.Task{{ID: "task_7", Title: "Fix", Status: model.TaskPending}}},
		},
	}
	m := newTestModel(t, b)
	m = drain(t, m, (&m).openMember("Bob"))

	m, _ = click(t, m, zoneID(zoneTaskDelete, "task_7"))
	if m.confirm == nil || m.confirm.body != "Delete this task?" {
		t.Fatalf("prompt: %#v", m.confirm)
	}
	m, cmd := click(t, m, zoneConfirmYes)
	m = drain(t, m, cmd)
	equalCalls(t, b.Calls(), "GET /api/teams", "GET /api/member/Bob", "DELETE /api/tasks/task_7", "GET /api/member/Bob")
}

func TestMouse_MessageButtonPrefills(t *testing.T) {
	withZones(t)
	b := &fakeBackend{roster: engRoster()}
	m := newTestModel(t, b)
	m, _ = press(t, m, "3")

	m, cmd := click(t, m, zoneID(zoneMemberChat, "Eng", "Alice"))
	if cmd != nil {
		t.Fatalf("prefill must not send")
	}
	if !m.st.Router.IsActive(viewChat) || m.chatInput.Value() != "Message for Alice: " {
		t.Fatalf("prefill: view=%s input=%q", m.st.Router.Active(), m.chatInput.Value())
	}
	equalCalls(t, b.Calls(), "GET /api/teams")
}

func TestMouse_RemoveConfirmed(t *testing.T) {
	withZones(t)
	b := &fakeBackend{roster: engRoster()}
	m := newTestModel(t, b)
	m, _ = press(t, m, "3")

	m, _ = click(t, m, zoneID(zoneMemberDrop, "Eng", "Bob"))
	if m.confirm == nil || m.confirm.body != "Remove Bob from Eng?" {
		t.Fatalf("prompt: %#v", m.confirm)
	}
	m, cmd := click(t, m, zoneConfirmYes)
	if m.confirm != nil {
		t.Fatalf("confirm should close")
	}
	m = drain(t, m, cmd)
	equalCalls(t, b.Calls(), "GET /api/teams", "DELETE /api/teams/Eng/members/Bob", "GET /api/teams")
}

func TestMouse_RemoveCancelled(t *testing.T) {
	withZones(t)
	b := &fakeBackend{roster: engRoster()}
	m := newTestModel(t, b)
	m, _ = press(t, m, "3")

	m, _ = click(t, m, zoneID(zoneMemberDrop, "Eng", "Bob"))
	m, cmd := click(t, m, zoneConfirmNo)
	m = drain(t, m, cmd)
	if m.confirm != nil {
		t.Fatalf("confirm should close")
	}
	equalCalls(t, b.Calls(), "GET /api/teams")
}

func TestMouse_DeleteTeamButton(t *testing.T) {
	withZones(t)
	b := &fakeBackend{roster: engRoster()}
	m := newTestModel(t, b)
	m, _ = press(t, m, "3")

	m, _ = click(t, m, zoneID(zoneTeamDelete, "Ops"))
	if m.confirm == nil {
		t.Fatalf("expected delete team prompt")
	}
	m, cmd := click(t, m, zoneConfirmYes)
	_ = drain(t, m, cmd)
	equalCalls(t, b.Calls(), "GET /api/teams", "DELETE /api/teams/Ops", "GET /api/teams")
}

func TestMouse_WithoutZonesIsInert(t *testing.T) {
	b := &fakeBackend{roster: engRoster()}
	m := newTestModel(t, b)
	m, cmd := clickAt(m, 1, 3)
	if cmd != nil || !m.st.Router.IsActive(viewDashboard) {
		t.Fatalf("click without a zone manager should do nothing")
	}
}
