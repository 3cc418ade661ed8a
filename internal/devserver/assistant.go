package devserver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"trackup/internal/logger"
	"trackup/internal/model"
	"trackup/internal/store"

	"github.com/sirupsen/logrus"
)

const helpReply = `I can help you manage teams and tasks. Try:
- create team Design
- add Alice to Design
- remove Alice from Design
- delete team Design
- assign Draft the roadmap to Alice by 2024-06-01
- delete task task_1
- progress Design
- list teams`

// Completer answers free text the rule set does not understand.
type Completer interface {
	Complete(ctx context.Context, userID, text string) (string, error)
}

// Assistant turns chat queries into store operations and a textual reply.
// Failures become replies; Reply never returns an error.
type Assistant struct {
	store    store.Store
	fallback Completer
	intents  []intent
}

type intent struct {
	name string
	re   *regexp.Regexp
	run  func(a *Assistant, ctx context.Context, m []string) string
}

func NewAssistant(s store.Store, fallback Completer) *Assistant {
	return &Assistant{store: s, fallback: fallback, intents: defaultIntents()}
}

func defaultIntents() []intent {
	return []intent{
		{"help", regexp.MustCompile(`(?i)^(help|\?)$`), func(*Assistant, context.Context, []string) string {
			return helpReply
		}},
		{"list teams", regexp.MustCompile(`(?i)^(?:list|show)(?:\s+all)?\s+teams$`), (*Assistant).listTeams},
		{"delete team", regexp.MustCompile(`(?i)^delete\s+team\s+(.+)$`), (*Assistant).deleteTeam},
		{"create team", regexp.MustCompile(`(?i)^(?:create|make|new)\s+(?:a\s+)?team\s+(?:called\s+|named\s+)?(.+)$`), (*Assistant).createTeam},
		{"delete task", regexp.MustCompile(`(?i)^delete\s+task\s+(\S+)$`), (*Assistant).deleteTask},
		{"assign task", regexp.MustCompile(`(?i)^assign\s+(.+?)\s+to\s+(\S+)(?:\s+by\s+(.+))?$`), (*Assistant).assignTask},
		{"add member", regexp.MustCompile(`(?i)^add\s+(.+?)\s+to\s+(?:team\s+)?(.+)$`), (*Assistant).addMember},
		{"remove member", regexp.MustCompile(`(?i)^remove\s+(.+?)\s+from\s+(?:team\s+)?(.+)$`), (*Assistant).removeMember},
		{"progress", regexp.MustCompile(`(?i)^(?:check\s+)?progress\s+(?:of\s+|for\s+)?(?:team\s+)?(.+)$`), (*Assistant).progress},
	}
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `'"`)
}

func (a *Assistant) Reply(ctx context.Context, userID, query string) string {
	q := strings.TrimSpace(query)
	for _, in := range a.intents {
		m := in.re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		logger.WithFields(logrus.Fields{"user_id": userID, "intent": in.name}).Debugf("assistant intent")
		return in.run(a, ctx, m)
	}
	if a.fallback == nil {
		return helpReply
	}
	reply, err := a.fallback.Complete(ctx, userID, q)
	if err != nil {
		logger.WithFields(logrus.Fields{"user_id": userID}).Warnf("completion failed: %v", err)
		return completionErrorReply(err)
	}
	return reply
}

func (a *Assistant) listTeams(ctx context.Context, _ []string) string {
	r, err := a.store.Teams(ctx)
	if err != nil {
		return errorReply(err)
	}
	if len(r) == 0 {
		return "There are no teams yet."
	}
	var b strings.Builder
	for _, t := range r {
		members := "no members"
		if len(t.Members) > 0 {
			members = strings.Join(t.Members, ", ")
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", t.Name, members)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *Assistant) createTeam(ctx context.Context, m []string) string {
	name := unquote(m[1])
	switch err := a.store.CreateTeam(ctx, name); {
	case errors.Is(err, store.ErrTeamExists):
		return fmt.Sprintf("Team '%s' already exists.", name)
	case err != nil:
		return errorReply(err)
	}
	return fmt.Sprintf("Team '%s' created successfully.", name)
}

func (a *Assistant) deleteTeam(ctx context.Context, m []string) string {
	name := unquote(m[1])
	switch err := a.store.DeleteTeam(ctx, name); {
	case errors.Is(err, store.ErrTeamNotFound):
		return fmt.Sprintf("Team '%s' not found.", name)
	case err != nil:
		return errorReply(err)
	}
	return fmt.Sprintf("Team '%s' deleted.", name)
}

func (a *Assistant) addMember(ctx context.Context, m []string) string {
	member, team := unquote(m[1]), unquote(m[2])
	switch err := a.store.AddMember(ctx, team, member); {
	case errors.Is(err, store.ErrTeamNotFound):
		return fmt.Sprintf("Team '%s' does not exist.", team)
	case errors.Is(err, store.ErrMemberExists):
		return fmt.Sprintf("User '%s' is already in team '%s'.", member, team)
	case err != nil:
		return errorReply(err)
	}
	return fmt.Sprintf("User '%s' added to team '%s'.", member, team)
}

func (a *Assistant) removeMember(ctx context.Context, m []string) string {
	member, team := unquote(m[1]), unquote(m[2])
	switch err := a.store.RemoveMember(ctx, team, member); {
	case errors.Is(err, store.ErrTeamNotFound), errors.Is(err, store.ErrMemberNotFound):
		return "Member or team not found."
	case err != nil:
		return errorReply(err)
	}
	return fmt.Sprintf("User '%s' removed from '%s'.", member, team)
}

func (a *Assistant) assignTask(ctx context.Context, m []string) string {
	t, err := a.store.AddTask(ctx, model.Task{
		Title:    unquote(m[1]),
		Assignee: unquote(m[2]),
		Deadline: unquote(m[3]),
		Status:   model.TaskPending,
	})
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("Task '%s' added with ID: %s", t.Title, t.ID)
}

func (a *Assistant) deleteTask(ctx context.Context, m []string) string {
	id := unquote(m[1])
	switch err := a.store.DeleteTask(ctx, id); {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found."
	case err != nil:
		return errorReply(err)
	}
	return fmt.Sprintf("Task %s deleted.", id)
}

// progress reports each member's task completion for a team.
func (a *Assistant) progress(ctx context.Context, m []string) string {
	name := unquote(m[1])
	r, err := a.store.Teams(ctx)
	if err != nil {
		return errorReply(err)
	}
	team, ok := r.Find(name)
	if !ok {
		return fmt.Sprintf("Team '%s' not found.", name)
	}
	if len(team.Members) == 0 {
		return fmt.Sprintf("Team '%s' has no members.", name)
	}
	var lines []string
	for _, member := range team.Members {
		tasks, err := a.store.Tasks(ctx, member)
		if err != nil {
			return errorReply(err)
		}
		if len(tasks) == 0 {
			lines = append(lines, fmt.Sprintf("**%s**: No tasks assigned (0/0)", member))
			continue
		}
		lines = append(lines, fmt.Sprintf("**%s**: %d/%d tasks completed", member, completedCount(tasks), len(tasks)))
		for _, t := range tasks {
			icon := "⏳"
			if t.Status == model.TaskCompleted {
				icon = "✅"
			}
			lines = append(lines, fmt.Sprintf("- %s (%s %s)", t.Title, icon, t.Status))
		}
	}
	return strings.Join(lines, "\n")
}

func completedCount(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == model.TaskCompleted {
			n++
		}
	}
	return n
}

func errorReply(err error) string {
	return "Sorry, I encountered an error: " + err.Error()
}
