package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type ChatMessage struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

type Task struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Status   TaskStatus `json:"status"`
	Assignee string     `json:"assignee,omitempty"`
	Deadline string     `json:"deadline,omitempty"`
}

type MemberDetail struct {
	Name           string `json:"name,omitempty"`
	CompletedTasks int    `json:"completed_tasks"`
	TotalTasks     int    `json:"total_tasks"`
	Tasks          []Task `json:"tasks"`
}

type Team struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Roster is the full team -> members mapping. On the wire it is a JSON object
// keyed by team name; key order is preserved so teams render in server order.
type Roster []Team

func (r Roster) index(name string) int {
	for i, t := range r {
		if t.Name == name {
			return i
		}
	}
	return -1
}

func (r Roster) Find(name string) (Team, bool) {
	if i := r.index(name); i >= 0 {
		return r[i], true
	}
	return Team{}, false
}

func (r Roster) MemberCount() int {
	n := 0
	for _, t := range r {
		n += len(t.Members)
	}
	return n
}

func (r Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		members := t.Members
		if members == nil {
			members = []string{}
		}
		v, err := json.Marshal(members)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Roster) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("roster: expected object, got %v", tok)
	}
	out := Roster{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := kt.(string)
		if !ok {
			return fmt.Errorf("roster: expected team name, got %v", kt)
		}
		var members []string
		if err := dec.Decode(&members); err != nil {
			return fmt.Errorf("roster: team %q: %w", name, err)
		}
		if members == nil {
			members = []string{}
		}
		// A repeated name keeps its first position and takes the last value.
		if i := out.index(name); i >= 0 {
			out[i].Members = members
			continue
		}
		out = append(out, Team{Name: name, Members: members})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}
