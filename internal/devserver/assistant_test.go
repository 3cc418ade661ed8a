package devserver

import (
	"context"
	"errors"
	"testing"

	"trackup/internal/model"
	"trackup/internal/store"

	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply string
	err   error
	calls []string
}

func (s *stubCompleter) Complete(_ context.Context, userID, text string) (string, error) {
	s.calls = append(s.calls, userID+": "+text)
	return s.reply, s.err
}

func TestAssistant_TeamLifecycle(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	a := NewAssistant(s, nil)

	require.Equal(t, "There are no teams yet.", a.Reply(ctx, "u1", "list teams"))
	require.Equal(t, "Team 'Eng' created successfully.", a.Reply(ctx, "u1", "create team Eng"))
	require.Equal(t, "Team 'Eng' already exists.", a.Reply(ctx, "u1", "create team Eng"))
	require.Equal(t, "User 'Bob' added to team 'Eng'.", a.Reply(ctx, "u1", "add Bob to Eng"))
	require.Equal(t, "User 'Bob' is already in team 'Eng'.", a.Reply(ctx, "u1", "add Bob to team Eng"))
	require.Equal(t, "Team 'Ops' does not exist.", a.Reply(ctx, "u1", "add Bob to Ops"))
	require.Equal(t, "- **Eng**: Bob", a.Reply(ctx, "u1", "show teams"))

	require.Equal(t, "User 'Bob' removed from 'Eng'.", a.Reply(ctx, "u1", "remove Bob from Eng"))
	require.Equal(t, "Member or team not found.", a.Reply(ctx, "u1", "remove Bob from Eng"))
	require.Equal(t, "Team 'Eng' deleted.", a.Reply(ctx, "u1", "delete team Eng"))
	require.Equal(t, "Team 'Eng' not found.", a.Reply(ctx, "u1", "delete team Eng"))

	r, err := s.Teams(ctx)
	require.NoError(t, err)
	require.Empty(t, r)
}

func TestAssistant_TasksAndProgress(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	a := NewAssistant(s, nil)
	a.Reply(ctx, "u1", "create team Eng")
	a.Reply(ctx, "u1", "add Bob to Eng")
	a.Reply(ctx, "u1", "add Carol to Eng")

	require.Equal(t, "Task 'Write docs' added with ID: task_1", a.Reply(ctx, "u1", "assign Write docs to Bob by 2024-06-01"))
	require.Equal(t, "Task 'Ship it' added with ID: task_2", a.Reply(ctx, "u1", "assign Ship it to Bob"))

	tasks, err := s.Tasks(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "2024-06-01", tasks[0].Deadline)
	require.Equal(t, model.TaskPending, tasks[1].Status)

	require.Equal(t,
		"**Bob**: 0/2 tasks completed\n- Write docs (⏳ pending)\n- Ship it (⏳ pending)\n**Carol**: No tasks assigned (0/0)",
		a.Reply(ctx, "u1", "progress Eng"))
	require.Equal(t, "Team 'Ops' not found.", a.Reply(ctx, "u1", "progress of team Ops"))

	require.Equal(t, "Task task_1 deleted.", a.Reply(ctx, "u1", "delete task task_1"))
	require.Equal(t, "Task not found.", a.Reply(ctx, "u1", "delete task task_1"))
}

func TestAssistant_FallbackAndHelp(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, helpReply, NewAssistant(store.NewMemory(), nil).Reply(ctx, "u1", "what's up?"))
	require.Equal(t, helpReply, NewAssistant(store.NewMemory(), nil).Reply(ctx, "u1", "help"))

	c := &stubCompleter{reply: "Hello from the model"}
	a := NewAssistant(store.NewMemory(), c)
	require.Equal(t, "Hello from the model", a.Reply(ctx, "u1", "  what's up?  "))
	require.Equal(t, []string{"u1: what's up?"}, c.calls)

	// Recognised intents never reach the completer.
	a.Reply(ctx, "u1", "create team Eng")
	require.Len(t, c.calls, 1)

	c.err = errors.New("boom")
	require.Equal(t, "Sorry, I encountered an error: boom", a.Reply(ctx, "u1", "anything"))
}
