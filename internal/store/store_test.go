package store

import (
	"context"
	"path/filepath"
	"testing"

	"trackup/internal/model"

	"github.com/stretchr/testify/require"
)

func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemory())
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "trackup.sqlite"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		fn(t, s)
	})
}

func TestStore_TeamsKeepInsertionOrder(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, name := range []string{"Zeta", "Alpha", "Eng"} {
			require.NoError(t, s.CreateTeam(ctx, name))
		}
		require.NoError(t, s.AddMember(ctx, "Eng", "Bob"))
		require.NoError(t, s.AddMember(ctx, "Eng", "Alice"))

		r, err := s.Teams(ctx)
		require.NoError(t, err)
		require.Equal(t, model.Roster{
			{Name: "Zeta", Members: []string{}},
			{Name: "Alpha", Members: []string{}},
			{Name: "Eng", Members: []string{"Bob", "Alice"}},
		}, r)
	})
}

func TestStore_TeamErrors(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.ErrorIs(t, s.CreateTeam(ctx, "  "), ErrInvalidName)
		require.NoError(t, s.CreateTeam(ctx, "Eng"))
		require.ErrorIs(t, s.CreateTeam(ctx, "Eng"), ErrTeamExists)
		require.ErrorIs(t, s.AddMember(ctx, "Ops", "Bob"), ErrTeamNotFound)
		require.NoError(t, s.AddMember(ctx, "Eng", "Bob"))
		require.ErrorIs(t, s.AddMember(ctx, "Eng", "Bob"), ErrMemberExists)
		require.ErrorIs(t, s.RemoveMember(ctx, "Eng", "Carol"), ErrMemberNotFound)
		require.ErrorIs(t, s.RemoveMember(ctx, "Ops", "Bob"), ErrTeamNotFound)
		require.ErrorIs(t, s.DeleteTeam(ctx, "Ops"), ErrTeamNotFound)
	})
}

func TestStore_RemoveMemberAndDeleteTeam(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.CreateTeam(ctx, "Eng"))
		require.NoError(t, s.AddMember(ctx, "Eng", "Alice"))
		require.NoError(t, s.AddMember(ctx, "Eng", "Bob"))
		require.NoError(t, s.RemoveMember(ctx, "Eng", "Alice"))

		r, err := s.Teams(ctx)
		require.NoError(t, err)
		require.Equal(t, model.Roster{{Name: "Eng", Members: []string{"Bob"}}}, r)

		require.NoError(t, s.DeleteTeam(ctx, "Eng"))
		r, err = s.Teams(ctx)
		require.NoError(t, err)
		require.Empty(t, r)

		// Re-creating a deleted team starts without the old members.
		require.NoError(t, s.CreateTeam(ctx, "Eng"))
		r, err = s.Teams(ctx)
		require.NoError(t, err)
		require.Equal(t, model.Roster{{Name: "Eng", Members: []string{}}}, r)
	})
}

func TestStore_Tasks(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		t1, err := s.AddTask(ctx, model.Task{Title: "Ship", Assignee: "Bob", Status: model.TaskCompleted})
		require.NoError(t, err)
		require.Equal(t, "task_1", t1.ID)
		t2, err := s.AddTask(ctx, model.Task{Title: "Docs", Assignee: "bob", Deadline: "2024-06-01"})
		require.NoError(t, err)
		require.Equal(t, "task_2", t2.ID)
		require.Equal(t, model.TaskPending, t2.Status)
		_, err = s.AddTask(ctx, model.Task{Title: "Other", Assignee: "Alice"})
		require.NoError(t, err)
		_, err = s.AddTask(ctx, model.Task{Title: " "})
		require.ErrorIs(t, err, ErrInvalidName)

		bob, err := s.Tasks(ctx, "BOB")
		require.NoError(t, err)
		require.Len(t, bob, 2)
		require.Equal(t, "Ship", bob[0].Title)

		all, err := s.Tasks(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 3)

		require.NoError(t, s.DeleteTask(ctx, "task_1"))
		require.ErrorIs(t, s.DeleteTask(ctx, "task_1"), ErrTaskNotFound)
		bob, err = s.Tasks(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, bob, 1)

		none, err := s.Tasks(ctx, "nobody")
		require.NoError(t, err)
		require.NotNil(t, none)
		require.Empty(t, none)
	})
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open(context.Background(), "postgres", "")
	require.Error(t, err)
	s, err := Open(context.Background(), "", "")
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)
}
