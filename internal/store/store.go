// Package store persists the reference backend's teams, members and tasks.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trackup/internal/model"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrTeamExists     = errors.New("team already exists")
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberExists   = errors.New("member already in team")
	ErrTaskNotFound   = errors.New("task not found")
	ErrInvalidName    = errors.New("name must not be empty")
)

// Store is the reference backend's storage. Teams and members keep insertion
// order; task ids are "task_<n>".
type Store interface {
	Teams(ctx context.Context) (model.Roster, error)
	CreateTeam(ctx context.Context, name string) error
	DeleteTeam(ctx context.Context, name string) error
	AddMember(ctx context.Context, team, member string) error
	RemoveMember(ctx context.Context, team, member string) error

	AddTask(ctx context.Context, t model.Task) (model.Task, error)
	// Tasks lists tasks assigned to assignee (case-insensitive), or all tasks
	// when assignee is empty.
	Tasks(ctx context.Context, assignee string) ([]model.Task, error)
	DeleteTask(ctx context.Context, id string) error

	Close() error
}

const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

// Open returns a store of the given kind. path is only used by sqlite.
func Open(ctx context.Context, kind, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindMemory:
		return NewMemory(), nil
	case KindSQLite:
		s, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store: %s", kind)
	}
}

func cleanName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidName
	}
	return s, nil
}

func taskID(n int64) string {
	return fmt.Sprintf("task_%d", n)
}

func normalizeTask(t model.Task) (model.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return t, fmt.Errorf("task title: %w", ErrInvalidName)
	}
	t.Assignee = strings.TrimSpace(t.Assignee)
	t.Deadline = strings.TrimSpace(t.Deadline)
	if t.Status == "" {
		t.Status = model.TaskPending
	}
	return t, nil
}
