package state

import (
	"errors"
	"testing"

	"trackup/internal/model"
)

func TestRoster_LateOlderResponseIsDiscarded(t *testing.T) {
	var r RosterState
	r1 := r.BeginRefresh()
	r2 := r.BeginRefresh()

	snap2 := model.Roster{{Name: "Eng", Members: []string{"Alice"}}}
	snap1 := model.Roster{{Name: "Eng", Members: []string{"Alice", "Bob"}}}

	if !r.Apply(r2, snap2) {
		t.Fatalf("expected R2 to apply")
	}
	if r.Apply(r1, snap1) {
		t.Fatalf("expected late R1 to be discarded")
	}
	eng, _ := r.Teams().Find("Eng")
	if len(eng.Members) != 1 {
		t.Fatalf("expected R2 snapshot to remain, got %v", eng.Members)
	}
}

func TestRoster_InOrderResponsesBothApply(t *testing.T) {
	var r RosterState
	r1 := r.BeginRefresh()
	r2 := r.BeginRefresh()
	if !r.Apply(r1, model.Roster{{Name: "A"}}) {
		t.Fatalf("expected R1 to apply")
	}
	if !r.Apply(r2, model.Roster{{Name: "B"}}) {
		t.Fatalf("expected R2 to apply")
	}
	if r.Teams()[0].Name != "B" {
		t.Fatalf("expected latest snapshot, got %v", r.Teams())
	}
	if r.InFlight() {
		t.Fatalf("expected nothing in flight")
	}
}

func TestRoster_WholesaleReplace(t *testing.T) {
	var r RosterState
	r.Apply(r.BeginRefresh(), model.Roster{{Name: "A"}, {Name: "B"}})
	r.Apply(r.BeginRefresh(), model.Roster{{Name: "C"}})
	if len(r.Teams()) != 1 || r.Teams()[0].Name != "C" {
		t.Fatalf("expected wholesale replace, got %v", r.Teams())
	}
	r.Apply(r.BeginRefresh(), nil)
	if !r.Empty() || !r.Loaded() {
		t.Fatalf("expected loaded empty roster")
	}
}

func TestRoster_UnissuedSequenceRejected(t *testing.T) {
	var r RosterState
	if r.Apply(5, model.Roster{{Name: "X"}}) {
		t.Fatalf("expected never-issued sequence to be rejected")
	}
}

func TestModal_OpenShowsPlaceholders(t *testing.T) {
	var m ModalSession
	m.Open("Alice")
	if !m.IsOpen() || m.Member() != "Alice" {
		t.Fatalf("expected open for Alice")
	}
	if m.Completed() != Placeholder || m.Total() != Placeholder || m.Body() != LoadingText {
		t.Fatalf("unexpected placeholders: %q %q %q", m.Completed(), m.Total(), m.Body())
	}
}

func TestModal_ZeroTasksShowsEmptyStateAndCounts(t *testing.T) {
	var m ModalSession
	seq := m.Open("Alice")
	if !m.Apply(seq, "Alice", model.MemberDetail{CompletedTasks: 0, TotalTasks: 0}) {
		t.Fatalf("expected apply")
	}
	if m.Body() != NoTasksText {
		t.Fatalf("body=%q", m.Body())
	}
	if m.Completed() != "0" || m.Total() != "0" {
		t.Fatalf("counts=%q/%q", m.Completed(), m.Total())
	}
}

func TestModal_FailureKeepsPlaceholderCounts(t *testing.T) {
	var m ModalSession
	seq := m.Open("Alice")
	m.Fail(seq, "Alice", errors.New("boom"))
	if m.Body() != LoadErrorText {
		t.Fatalf("body=%q", m.Body())
	}
	if m.Completed() != Placeholder || m.Total() != Placeholder {
		t.Fatalf("counts should stay placeholders")
	}
}

func TestModal_SupersededSessionResponseDropped(t *testing.T) {
	var m ModalSession
	old := m.Open("Alice")
	cur := m.Open("Bob")
	if m.Apply(old, "Alice", model.MemberDetail{TotalTasks: 3}) {
		t.Fatalf("expected Alice response to be dropped")
	}
	if !m.Apply(cur, "Bob", model.MemberDetail{TotalTasks: 1, Tasks: []model.Task{{ID: "t1", Title: "x"}}}) {
		t.Fatalf("expected Bob response to apply")
	}
	if m.Total() != "1" || len(m.Tasks()) != 1 {
		t.Fatalf("unexpected state total=%s tasks=%d", m.Total(), len(m.Tasks()))
	}
}

func TestModal_ClosedSessionIgnoresResponse(t *testing.T) {
	var m ModalSession
	seq := m.Open("Alice")
	m.Close()
	if m.Apply(seq, "Alice", model.MemberDetail{}) {
		t.Fatalf("expected closed modal to ignore response")
	}
}

func TestRoster_FailedRefreshSettles(t *testing.T) {
	var r RosterState
	seq := r.BeginRefresh()
	if !r.InFlight() {
		t.Fatalf("expected refresh in flight")
	}
	r.Fail(seq)
	if r.InFlight() {
		t.Fatalf("expected failed refresh to settle")
	}
	if r.Loaded() {
		t.Fatalf("failed refresh must not mark the roster loaded")
	}
}

func TestRoster_NewerFailureKeepsOlderSuccess(t *testing.T) {
	var r RosterState
	r1 := r.BeginRefresh()
	r2 := r.BeginRefresh()

	r.Fail(r2)
	if !r.InFlight() {
		t.Fatalf("expected R1 still in flight after R2 failed")
	}
	if !r.Apply(r1, model.Roster{{Name: "Eng"}}) {
		t.Fatalf("expected R1 to apply after R2 failed")
	}
	if r.InFlight() {
		t.Fatalf("expected nothing in flight once both settled")
	}
	if r.Applied() != r1 || r.Teams()[0].Name != "Eng" {
		t.Fatalf("expected R1 snapshot applied, got seq %d %v", r.Applied(), r.Teams())
	}
}

func TestRoster_StaleResponseStillSettles(t *testing.T) {
	var r RosterState
	r1 := r.BeginRefresh()
	r2 := r.BeginRefresh()
	r.Apply(r2, model.Roster{{Name: "B"}})
	if !r.InFlight() {
		t.Fatalf("expected R1 still in flight")
	}
	if r.Apply(r1, model.Roster{{Name: "A"}}) {
		t.Fatalf("expected late R1 to be discarded")
	}
	if r.InFlight() {
		t.Fatalf("expected discarded response to settle")
	}
}
