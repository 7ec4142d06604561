package core

import "time"

// Turn pairs an inbound message with the intent result it produced.
type Turn struct {
	Message Message      `json:"message"`
	Result  IntentResult `json:"result"`
}

// Session is the bounded conversational state scoped to one ongoing user
// interaction. It is owned exclusively by the session store; callers receive
// clones and mutate only through the store interface.
type Session struct {
	ID                  string    `json:"id"`
	History             []Turn    `json:"history"`
	AccumulatedEntities Entities  `json:"accumulated_entities"`
	LastIntent          Intent    `json:"last_intent"`
	CreatedAt           time.Time `json:"created_at"`
	ExpiresAt           time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry deadline.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	clone := &Session{
		ID:                  s.ID,
		History:             make([]Turn, len(s.History)),
		AccumulatedEntities: s.AccumulatedEntities.Clone(),
		LastIntent:          s.LastIntent,
		CreatedAt:           s.CreatedAt,
		ExpiresAt:           s.ExpiresAt,
	}
	copy(clone.History, s.History)
	return clone
}

// SessionStore manages per-session conversational state. Load creates a fresh
// session when the id is unknown or the stored session has expired. Append
// records a completed turn: it pushes onto the bounded history (FIFO eviction
// beyond the cap), merges the turn's entities into the accumulated set,
// updates the last intent and refreshes the expiry deadline.
//
// Acquire serializes turns for a single session: the returned release func
// must be called once the turn is fully applied. Turns for different sessions
// proceed in parallel.
type SessionStore interface {
	Load(sessionID string) (*Session, error)
	Append(sessionID string, msg Message, result IntentResult) (*Session, error)
	Expire(sessionID string) error
	Acquire(sessionID string) (release func())
}
