package tui

import (
	"trackup/internal/logger"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// startRefresh issues a roster fetch tagged with a fresh sequence number.
func (m *appModel) startRefresh() tea.Cmd {
	seq := m.st.Roster.BeginRefresh()
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		r, err := b.Teams(ctx)
		return teamsFetchedMsg{seq: seq, roster: r, err: err}
	}
}

// sendChat runs the synchronous half of a send and returns the request.
// Blank input returns nil and changes nothing.
func (m *appModel) sendChat(text string) tea.Cmd {
	p, ok := m.st.Chat.Begin(text, m.now())
	if !ok {
		return nil
	}
	m.chatInput.SetValue(m.st.Chat.Input)
	m.refreshChatView(true)
	b, ctx, uid := m.backend, m.ctx, m.st.Chat.UserID
	return func() tea.Msg {
		reply, err := b.Chat(ctx, p.Query, uid)
		return chatReplyMsg{pending: p, reply: reply, err: err}
	}
}

// prefill drafts a message to member in the chat view without sending it.
func (m *appModel) prefill(member string) {
	m.st.Prefill(member)
	m.chatInput.SetValue(m.st.Chat.Input)
	m.chatInput.CursorEnd()
	m.syncFocus()
}

// openMember shows the detail modal in its loading state and fetches.
func (m *appModel) openMember(member string) tea.Cmd {
	seq := m.st.Modal.Open(member)
	m.modalTask = 0
	m.syncFocus()
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		d, err := b.Member(ctx, member)
		return memberDetailMsg{seq: seq, member: member, detail: d, err: err}
	}
}

func (m *appModel) removeMemberCmd(team, member string) tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		err := b.RemoveMember(ctx, team, member)
		return mutationDoneMsg{kind: mutationRemoveMember, team: team, member: member, err: err}
	}
}

func (m *appModel) deleteTeamCmd(team string) tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		err := b.DeleteTeam(ctx, team)
		return mutationDoneMsg{kind: mutationDeleteTeam, team: team, err: err}
	}
}

func (m *appModel) deleteTaskCmd(member, id string) tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		err := b.DeleteTask(ctx, id)
		return taskDeletedMsg{member: member, taskID: id, err: err}
	}
}

func copyUserIDCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return clipboardDoneMsg{err: clipboard.WriteAll(id)}
	}
}

func (m *appModel) applyChatReply(msg chatReplyMsg) tea.Cmd {
	now := m.now()
	if msg.err != nil {
		logger.WithFields(logrus.Fields{"query": msg.pending.Query}).Warnf("chat request failed: %v", msg.err)
		m.st.Chat.Fail(msg.pending, now)
		m.refreshChatView(true)
		return nil
	}
	m.st.Chat.Resolve(msg.pending, msg.reply, now)
	m.refreshChatView(true)
	// The assistant may have changed teams.
	return m.startRefresh()
}

func (m *appModel) applyTeams(msg teamsFetchedMsg) {
	if msg.err != nil {
		m.st.Roster.Fail(msg.seq)
		logger.WithFields(logrus.Fields{"seq": msg.seq}).Warnf("fetch teams failed: %v", msg.err)
		return
	}
	if !m.st.Roster.Apply(msg.seq, msg.roster) {
		logger.WithFields(logrus.Fields{"seq": msg.seq, "applied": m.st.Roster.Applied()}).Debugf("dropping stale roster")
		return
	}
	m.rebuildRows()
}

func (m *appModel) applyMemberDetail(msg memberDetailMsg) {
	if msg.err != nil {
		if m.st.Modal.Fail(msg.seq, msg.member, msg.err) {
			logger.WithFields(logrus.Fields{"member": msg.member}).Warnf("fetch member details failed: %v", msg.err)
		}
		return
	}
	if m.st.Modal.Apply(msg.seq, msg.member, msg.detail) {
		if n := len(m.st.Modal.Tasks()); m.modalTask >= n {
			m.modalTask = max(0, n-1)
		}
	}
}

// applyMutation logs a failed delete and always re-fetches the roster, so the
// view reflects the server whatever the outcome.
func (m *appModel) applyMutation(msg mutationDoneMsg) tea.Cmd {
	if msg.err != nil {
		logger.WithFields(logrus.Fields{"team": msg.team, "member": msg.member}).Warnf("%s failed: %v", msg.kind, msg.err)
		m.showMinibuffer("Could not " + msg.kind.String() + ": " + msg.err.Error())
	}
	return m.startRefresh()
}

func (m *appModel) applyTaskDeleted(msg taskDeletedMsg) tea.Cmd {
	if msg.err != nil {
		logger.WithFields(logrus.Fields{"task": msg.taskID, "member": msg.member}).Warnf("delete task failed: %v", msg.err)
		m.showMinibuffer("Could not delete task: " + msg.err.Error())
	}
	if !m.st.Modal.IsOpen() || m.st.Modal.Member() != msg.member {
		logger.WithFields(logrus.Fields{"task": msg.taskID, "member": msg.member}).Debugf("modal moved on; not reopening")
		return nil
	}
	return m.openMember(msg.member)
}
