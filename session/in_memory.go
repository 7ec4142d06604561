package session

import (
	"sync"
	"time"

	"github.com/pulsepixeltech/chatcore/core"
)

// Options configures the in-memory session store.
type Options struct {
	// TTL is the idle lifetime of a session. Every appended turn pushes
	// the expiry deadline forward by this much.
	TTL time.Duration
	// HistoryLimit caps the number of retained turns per session. The
	// oldest turn is evicted first once the cap is reached.
	HistoryLimit int
	// Clock overrides the time source, primarily for tests.
	Clock func() time.Time
}

// InMemoryStore is a thread-safe in-memory core.SessionStore. Sessions are
// created lazily on first Load and replaced by a fresh session under the same
// id once expired. All returned sessions are clones; internal state is never
// shared with callers.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	ttl          time.Duration
	historyLimit int
	now          func() time.Time
}

var _ core.SessionStore = (*InMemoryStore)(nil)

// NewInMemoryStore creates an in-memory session store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{
		TTL:          30 * time.Minute,
		HistoryLimit: 10,
		Clock:        time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 10
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &InMemoryStore{
		sessions:     make(map[string]*core.Session),
		locks:        make(map[string]*sync.Mutex),
		ttl:          opts.TTL,
		historyLimit: opts.HistoryLimit,
		now:          opts.Clock,
	}
}

// Load implements core.SessionStore. An unknown or expired id yields a fresh
// empty session under the same id; expiry is indistinguishable from absence.
func (s *InMemoryStore) Load(sessionID string) (*core.Session, error) {
	now := s.now()

	s.mu.RLock()
	existing, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if ok && !existing.Expired(now) {
		return existing.Clone(), nil
	}

	fresh := s.newSession(sessionID, now)

	s.mu.Lock()
	// Re-check under the write lock; another goroutine may have created
	// the session between the two lock acquisitions.
	if current, ok := s.sessions[sessionID]; ok && !current.Expired(now) {
		s.mu.Unlock()
		return current.Clone(), nil
	}
	s.sessions[sessionID] = fresh
	s.mu.Unlock()

	return fresh.Clone(), nil
}

// Append implements core.SessionStore. It records the completed turn, merges
// the turn's entities into the accumulated set, updates the last intent and
// refreshes the expiry deadline. The updated session clone is returned.
func (s *InMemoryStore) Append(sessionID string, msg core.Message, result core.IntentResult) (*core.Session, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.Expired(now) {
		sess = s.newSession(sessionID, now)
		s.sessions[sessionID] = sess
	}

	sess.History = append(sess.History, core.Turn{Message: msg, Result: result})
	if len(sess.History) > s.historyLimit {
		sess.History = sess.History[len(sess.History)-s.historyLimit:]
	}
	sess.AccumulatedEntities = sess.AccumulatedEntities.Merge(result.Entities)
	if result.Intent != core.IntentUnknown {
		sess.LastIntent = result.Intent
	}
	sess.ExpiresAt = now.Add(s.ttl)

	return sess.Clone(), nil
}

// Expire implements core.SessionStore by dropping the session immediately.
func (s *InMemoryStore) Expire(sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// Acquire implements core.SessionStore with one lazily created mutex per
// session id. Lock entries are retained for the store's lifetime; session
// id cardinality is bounded by the active user population.
func (s *InMemoryStore) Acquire(sessionID string) (release func()) {
	s.lockMu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	s.lockMu.Unlock()

	l.Lock()
	return l.Unlock
}

// Len returns the number of stored sessions, including expired ones not yet
// replaced.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes every expired session and returns the count removed. Callers
// may run it periodically to reclaim memory from abandoned conversations.
func (s *InMemoryStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *InMemoryStore) newSession(sessionID string, now time.Time) *core.Session {
	return &core.Session{
		ID:        sessionID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
}
