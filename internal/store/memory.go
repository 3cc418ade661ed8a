package store

import (
	"context"
	"strings"
	"sync"

	"trackup/internal/model"
)

type MemoryStore struct {
	mu       sync.RWMutex
	teams    []model.Team
	tasks    []model.Task
	nextTask int64
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) teamIndex(name string) int {
	for i, t := range m.teams {
		if t.Name == name {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) Teams(context.Context) (model.Roster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(model.Roster, 0, len(m.teams))
	for _, t := range m.teams {
		out = append(out, model.Team{Name: t.Name, Members: append([]string{}, t.Members...)})
	}
	return out, nil
}

func (m *MemoryStore) CreateTeam(_ context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.teamIndex(name) >= 0 {
		return ErrTeamExists
	}
	m.teams = append(m.teams, model.Team{Name: name, Members: []string{}})
	return nil
}

func (m *MemoryStore) DeleteTeam(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.teamIndex(name)
	if i < 0 {
		return ErrTeamNotFound
	}
	m.teams = append(m.teams[:i], m.teams[i+1:]...)
	return nil
}

func (m *MemoryStore) AddMember(_ context.Context, team, member string) error {
	member, err := cleanName(member)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.teamIndex(team)
	if i < 0 {
		return ErrTeamNotFound
	}
	for _, mem := range m.teams[i].Members {
		if mem == member {
			return ErrMemberExists
		}
	}
	m.teams[i].Members = append(m.teams[i].Members, member)
	return nil
}

func (m *MemoryStore) RemoveMember(_ context.Context, team, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.teamIndex(team)
	if i < 0 {
		return ErrTeamNotFound
	}
	members := m.teams[i].Members
	for j, mem := range members {
		if mem == member {
			m.teams[i].Members = append(members[:j:j], members[j+1:]...)
			return nil
		}
	}
	return ErrMemberNotFound
}

func (m *MemoryStore) AddTask(_ context.Context, t model.Task) (model.Task, error) {
	t, err := normalizeTask(t)
	if err != nil {
		return model.Task{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTask++
	t.ID = taskID(m.nextTask)
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *MemoryStore) Tasks(_ context.Context, assignee string) ([]model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []model.Task{}
	for _, t := range m.tasks {
		if assignee == "" || strings.EqualFold(t.Assignee, assignee) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MemoryStore) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}
