package state

import (
	"strconv"

	"trackup/internal/model"
)

const (
	Placeholder    = "-"
	LoadingText    = "Loading..."
	NoTasksText    = "No tasks assigned."
	LoadErrorText  = "Error loading details."
	ModalChatLabel = "Message"
)

type ModalStatus int

const (
	ModalLoading ModalStatus = iota
	ModalLoaded
	ModalFailed
)

// ModalSession backs the member detail popup. There is at most one; opening
// again starts a new session and responses for older ones are ignored.
type ModalSession struct {
	open   bool
	member string
	seq    uint64
	status ModalStatus
	detail model.MemberDetail
	err    string
}

// Open shows the modal with placeholders and returns the session sequence the
// detail fetch must carry.
func (m *ModalSession) Open(member string) uint64 {
	m.seq++
	m.open = true
	m.member = member
	m.status = ModalLoading
	m.detail = model.MemberDetail{}
	m.err = ""
	return m.seq
}

func (m *ModalSession) Close() {
	m.open = false
}

func (m *ModalSession) current(seq uint64, member string) bool {
	return m.open && seq == m.seq && member == m.member
}

func (m *ModalSession) Apply(seq uint64, member string, d model.MemberDetail) bool {
	if !m.current(seq, member) {
		return false
	}
	if d.Tasks == nil {
		d.Tasks = []model.Task{}
	}
	m.detail = d
	m.status = ModalLoaded
	m.err = ""
	return true
}

func (m *ModalSession) Fail(seq uint64, member string, err error) bool {
	if !m.current(seq, member) {
		return false
	}
	m.status = ModalFailed
	if err != nil {
		m.err = err.Error()
	}
	return true
}

func (m ModalSession) IsOpen() bool { return m.open }

func (m ModalSession) Member() string { return m.member }

func (m ModalSession) Seq() uint64 { return m.seq }

func (m ModalSession) Status() ModalStatus { return m.status }

func (m ModalSession) Err() string { return m.err }

func (m ModalSession) Tasks() []model.Task {
	if m.status != ModalLoaded {
		return nil
	}
	return m.detail.Tasks
}

func (m ModalSession) Completed() string {
	if m.status != ModalLoaded {
		return Placeholder
	}
	return strconv.Itoa(m.detail.CompletedTasks)
}

func (m ModalSession) Total() string {
	if m.status != ModalLoaded {
		return Placeholder
	}
	return strconv.Itoa(m.detail.TotalTasks)
}

// Body is the single-line stand-in shown instead of a task list, or "" when
// tasks should be listed.
func (m ModalSession) Body() string {
	switch m.status {
	case ModalLoading:
		return LoadingText
	case ModalFailed:
		return LoadErrorText
	}
	if len(m.detail.Tasks) == 0 {
		return NoTasksText
	}
	return ""
}
