package state

import (
	"fmt"
	"strings"
	"time"

	"trackup/internal/model"
)

const FallbackReply = "Sorry, something went wrong."

func PrefillText(member string) string {
	return fmt.Sprintf("Message for %s: ", member)
}

// PendingSend is one in-flight chat request. Each send owns its loading entry.
type PendingSend struct {
	Query     string
	LoadingID EntryID
}

type ChatSession struct {
	UserID     string
	Input      string
	Transcript Transcript
}

func NewChatSession(userID string) ChatSession {
	return ChatSession{UserID: userID}
}

// Begin runs the synchronous part of a send: append the user message, clear
// the input, show a loading entry. ok is false for blank text, in which case
// nothing changed and no request must be issued.
func (c *ChatSession) Begin(text string, now time.Time) (PendingSend, bool) {
	q := strings.TrimSpace(text)
	if q == "" {
		return PendingSend{}, false
	}
	c.Transcript.Append(model.SenderUser, q, now)
	c.Input = ""
	id := c.Transcript.AddLoading(now)
	return PendingSend{Query: q, LoadingID: id}, true
}

func (c *ChatSession) Resolve(p PendingSend, reply string, now time.Time) {
	c.Transcript.RemoveLoading(p.LoadingID)
	c.Transcript.Append(model.SenderBot, reply, now)
}

func (c *ChatSession) Fail(p PendingSend, now time.Time) {
	c.Transcript.RemoveLoading(p.LoadingID)
	c.Transcript.Append(model.SenderBot, FallbackReply, now)
}
