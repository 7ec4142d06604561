package core

import (
	"time"

	"github.com/google/uuid"
)

// Message is one inbound chat message. It is immutable once received.
type Message struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// NewMessage creates a Message with a fresh id and UTC arrival timestamp.
func NewMessage(text, sessionID, userID string) Message {
	return Message{
		ID:         NewID(),
		Text:       text,
		SessionID:  sessionID,
		UserID:     userID,
		ReceivedAt: time.Now().UTC(),
	}
}

// NewID returns a new random identifier for messages and turns.
func NewID() string { return uuid.NewString() }
