// Package state holds the client-side view model: which view is active, the
// chat transcript, the last applied roster and the member modal session.
//
// Every transition is a plain method on an in-memory value; nothing here does
// I/O. Responses from the backend are applied through sequence-checked methods
// so late answers to superseded requests are dropped.
package state

import "fmt"

type ViewID string

const (
	ViewDashboard ViewID = "dashboard"
	ViewChat      ViewID = "chat"
	ViewTeams     ViewID = "teams"
	ViewContact   ViewID = "contact"
)

type TriggerID string

const (
	NavDashboard TriggerID = "nav-dashboard"
	NavBuddy     TriggerID = "nav-buddy"
	NavAllTeams  TriggerID = "nav-all-teams"
	NavContact   TriggerID = "nav-contact"
)

type Binding struct {
	Trigger TriggerID
	View    ViewID
}

// Registry is the immutable trigger <-> view mapping. When several triggers map
// to one view, the first registered is the view's trigger.
type Registry struct {
	bindings  []Binding
	views     []ViewID
	toView    map[TriggerID]ViewID
	toTrigger map[ViewID]TriggerID
}

func NewRegistry(bindings ...Binding) (Registry, error) {
	r := Registry{
		toView:    map[TriggerID]ViewID{},
		toTrigger: map[ViewID]TriggerID{},
	}
	for _, b := range bindings {
		if b.Trigger == "" || b.View == "" {
			return Registry{}, fmt.Errorf("invalid binding %q -> %q", b.Trigger, b.View)
		}
		if _, dup := r.toView[b.Trigger]; dup {
			return Registry{}, fmt.Errorf("duplicate trigger %q", b.Trigger)
		}
		r.toView[b.Trigger] = b.View
		if _, seen := r.toTrigger[b.View]; !seen {
			r.toTrigger[b.View] = b.Trigger
			r.views = append(r.views, b.View)
		}
		r.bindings = append(r.bindings, b)
	}
	return r, nil
}

// DefaultRegistry is the dashboard's four top-level panels.
func DefaultRegistry() Registry {
	r, err := NewRegistry(
		Binding{Trigger: NavDashboard, View: ViewDashboard},
		Binding{Trigger: NavBuddy, View: ViewChat},
		Binding{Trigger: NavAllTeams, View: ViewTeams},
		Binding{Trigger: NavContact, View: ViewContact},
	)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Registry) ViewFor(t TriggerID) (ViewID, bool) {
	v, ok := r.toView[t]
	return v, ok
}

func (r Registry) TriggerFor(v ViewID) (TriggerID, bool) {
	t, ok := r.toTrigger[v]
	return t, ok
}

func (r Registry) Has(v ViewID) bool {
	_, ok := r.toTrigger[v]
	return ok
}

// Views returns views in first-registration order.
func (r Registry) Views() []ViewID {
	return append([]ViewID(nil), r.views...)
}

func (r Registry) Bindings() []Binding {
	return append([]Binding(nil), r.bindings...)
}

// Router owns the single active view.
type Router struct {
	reg    Registry
	active ViewID
}

func NewRouter(reg Registry, initial ViewID) Router {
	if !reg.Has(initial) && len(reg.views) > 0 {
		initial = reg.views[0]
	}
	return Router{reg: reg, active: initial}
}

func (r Router) Registry() Registry { return r.reg }

func (r Router) Active() ViewID { return r.active }

func (r Router) IsActive(v ViewID) bool { return r.active == v }

// ActiveTrigger is the trigger marked active for the current view.
func (r Router) ActiveTrigger() (TriggerID, bool) {
	return r.reg.TriggerFor(r.active)
}

// IsTriggerActive reports whether t is the marked trigger. Only the first
// registered trigger of the active view is marked.
func (r Router) IsTriggerActive(t TriggerID) bool {
	at, ok := r.ActiveTrigger()
	return ok && at == t
}

// Switch activates v. Unknown views leave the router unchanged.
func (r *Router) Switch(v ViewID) bool {
	if !r.reg.Has(v) {
		return false
	}
	r.active = v
	return true
}

// Fire switches to the view bound to trigger t.
func (r *Router) Fire(t TriggerID) bool {
	v, ok := r.reg.ViewFor(t)
	if !ok {
		return false
	}
	return r.Switch(v)
}

// Cycle moves delta views forward (negative: backward) in registration order.
func (r *Router) Cycle(delta int) ViewID {
	n := len(r.reg.views)
	if n == 0 {
		return r.active
	}
	idx := 0
	for i, v := range r.reg.views {
		if v == r.active {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%n + n) % n
	r.active = r.reg.views[idx]
	return r.active
}
