package state

import (
	"time"

	"trackup/internal/model"
)

type EntryID uint64

type EntryKind int

const (
	EntryMessage EntryKind = iota
	EntryLoading
)

type Entry struct {
	ID      EntryID
	Kind    EntryKind
	Message model.ChatMessage
}

// Transcript is append-only except for removal of loading placeholders.
type Transcript struct {
	entries []Entry
	nextID  EntryID
}

func (t *Transcript) newID() EntryID {
	t.nextID++
	return t.nextID
}

func (t *Transcript) Append(sender model.Sender, text string, at time.Time) EntryID {
	id := t.newID()
	t.entries = append(t.entries, Entry{
		ID:      id,
		Kind:    EntryMessage,
		Message: model.ChatMessage{Sender: sender, Text: text, At: at},
	})
	return id
}

func (t *Transcript) AddLoading(at time.Time) EntryID {
	id := t.newID()
	t.entries = append(t.entries, Entry{
		ID:      id,
		Kind:    EntryLoading,
		Message: model.ChatMessage{Sender: model.SenderBot, At: at},
	})
	return id
}

// RemoveLoading drops the placeholder with the given id. Regular messages are
// never removed.
func (t *Transcript) RemoveLoading(id EntryID) bool {
	for i, e := range t.entries {
		if e.ID != id {
			continue
		}
		if e.Kind != EntryLoading {
			return false
		}
		out := make([]Entry, 0, len(t.entries)-1)
		out = append(out, t.entries[:i]...)
		out = append(out, t.entries[i+1:]...)
		t.entries = out
		return true
	}
	return false
}

func (t Transcript) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

func (t Transcript) Messages() []model.ChatMessage {
	var out []model.ChatMessage
	for _, e := range t.entries {
		if e.Kind == EntryMessage {
			out = append(out, e.Message)
		}
	}
	return out
}

func (t Transcript) Len() int { return len(t.entries) }

func (t Transcript) Pending() int {
	n := 0
	for _, e := range t.entries {
		if e.Kind == EntryLoading {
			n++
		}
	}
	return n
}

// LastFrom returns the newest message sent by s.
func (t Transcript) LastFrom(s model.Sender) (model.ChatMessage, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if e.Kind == EntryMessage && e.Message.Sender == s {
			return e.Message, true
		}
	}
	return model.ChatMessage{}, false
}
