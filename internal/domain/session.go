package domain

import "time"

// ConversationSession is the persisted summary record for a conversation.
// Title, Preview and MessageCount are denormalized from the message log;
// the engine's recompute step is their single writer.
type ConversationSession struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Preview      string    `json:"preview"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
	Starred      bool      `json:"starred"`
	Archived     bool      `json:"archived"`
	OwnerID      string    `json:"owner_id"`
}
