// Package chatlog holds the message log for the active conversation:
// an append-only sequence plus a star flag per message. The session
// engine is the sole writer.
package chatlog

import (
	"strings"
	"time"

	"github.com/jmorelli/confab/internal/domain"
	"github.com/jmorelli/confab/internal/ident"
)

// Log is an ordered, append-only message log. It is not safe for
// concurrent use; all access is serialized by the engine.
type Log struct {
	messages []domain.Message
}

// New creates an empty log.
func New() *Log {
	return &Log{}
}

// Append creates a message with a fresh id and the current timestamp and
// adds it to the end of the log. Content that is empty after trimming is
// rejected and no message is produced.
func (l *Log) Append(role domain.MessageRole, content string) (domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, domain.ErrEmptyMessage
	}

	msg := domain.Message{
		ID:        ident.NewID(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	l.messages = append(l.messages, msg)
	return msg, nil
}

// ToggleStar flips the starred flag on the message with the given id.
// An absent id is a no-op, reported by the return value.
func (l *Log) ToggleStar(id string) bool {
	for i := range l.messages {
		if l.messages[i].ID == id {
			l.messages[i].Starred = !l.messages[i].Starred
			return true
		}
	}
	return false
}

// Reset clears the log. Used when starting a new conversation.
func (l *Log) Reset() {
	l.messages = nil
}

// Len returns the number of messages.
func (l *Log) Len() int {
	return len(l.messages)
}

// Messages returns a copy of the log in creation order.
func (l *Log) Messages() []domain.Message {
	out := make([]domain.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Last returns the most recent message, if any.
func (l *Log) Last() (domain.Message, bool) {
	if len(l.messages) == 0 {
		return domain.Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}

// LastUserContent returns the content of the most recent user-role
// message, searching from the end of the log backward.
func (l *Log) LastUserContent() (string, bool) {
	for i := len(l.messages) - 1; i >= 0; i-- {
		if l.messages[i].Role == domain.RoleUser {
			return l.messages[i].Content, true
		}
	}
	return "", false
}

// FirstUserContent returns the content of the earliest user-role message.
// Session titles derive from it.
func (l *Log) FirstUserContent() (string, bool) {
	for i := range l.messages {
		if l.messages[i].Role == domain.RoleUser {
			return l.messages[i].Content, true
		}
	}
	return "", false
}
