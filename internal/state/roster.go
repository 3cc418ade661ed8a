package state

import "trackup/internal/model"

// RosterState is the last applied roster snapshot. Each refresh is numbered;
// a response is applied only if it is newer than the last one applied, so
// the displayed roster never goes back in time.
type RosterState struct {
	teams   model.Roster
	loaded  bool
	issued  uint64
	applied uint64
	// pending holds the sequences whose response has not come back yet.
	pending map[uint64]struct{}
}

// BeginRefresh reserves the sequence number for a new fetch.
func (r *RosterState) BeginRefresh() uint64 {
	r.issued++
	if r.pending == nil {
		r.pending = make(map[uint64]struct{})
	}
	r.pending[r.issued] = struct{}{}
	return r.issued
}

// Apply replaces the roster wholesale. Stale responses return false.
func (r *RosterState) Apply(seq uint64, teams model.Roster) bool {
	if seq > r.issued {
		return false
	}
	r.settle(seq)
	if seq <= r.applied {
		return false
	}
	if teams == nil {
		teams = model.Roster{}
	}
	r.teams = teams
	r.applied = seq
	r.loaded = true
	return true
}

// Fail settles seq without touching the roster.
func (r *RosterState) Fail(seq uint64) {
	if seq > r.issued {
		return
	}
	r.settle(seq)
}

func (r *RosterState) settle(seq uint64) { delete(r.pending, seq) }

func (r RosterState) Teams() model.Roster { return r.teams }

func (r RosterState) Loaded() bool { return r.loaded }

func (r RosterState) Empty() bool { return len(r.teams) == 0 }

func (r RosterState) Issued() uint64 { return r.issued }

func (r RosterState) Applied() uint64 { return r.applied }

func (r RosterState) InFlight() bool { return len(r.pending) > 0 }
