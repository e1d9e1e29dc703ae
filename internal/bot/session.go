package bot

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/bugs"
)

// State names one step of the bug-report conversation
type State int

const (
	StateNone State = iota
	StateDescription
	StateScreenshots
	StateEnvironment
	StatePriority
	StateConsoleLogs
	StateTags
	StateConfirm
)

var stateNames = map[State]string{
	StateNone:        "none",
	StateDescription: "awaiting_description",
	StateScreenshots: "awaiting_screenshots",
	StateEnvironment: "awaiting_environment",
	StatePriority:    "awaiting_priority",
	StateConsoleLogs: "awaiting_console_logs",
	StateTags:        "awaiting_tags",
	StateConfirm:     "awaiting_confirm",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Session is one user's in-progress conversation: the current state
// and the draft being filled in. Owned exclusively by that user's
// events; the store serializes access per user.
type Session struct {
	State     State
	Draft     *bugs.Draft
	UpdatedAt time.Time
}

// SessionStore owns all conversation sessions, keyed by user ID.
// Sessions expire after the configured TTL; eviction happens lazily on
// access and on a periodic sweep.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a session store with the given TTL. A TTL of
// zero disables expiry.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
		ttl:      ttl,
		now:      time.Now,
	}
}

// UserLock returns the mutex serializing all event handling for one
// user. Locks are never evicted; there is one tiny mutex per user ever
// seen.
func (s *SessionStore) UserLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// Get returns the user's active session, evicting it first if expired
func (s *SessionStore) Get(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	if s.expired(session) {
		delete(s.sessions, userID)
		log.WithField("user_id", userID).Info("Evicted expired conversation session")
		return nil, false
	}
	return session, true
}

// Start creates a fresh session for the user, overwriting any prior
// in-progress draft. Returns whether a live draft was discarded.
func (s *SessionStore) Start(userID int64, reporter bugs.Reporter) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior, hadPrior := s.sessions[userID]
	discarded := hadPrior && !s.expired(prior)

	session := &Session{
		State:     StateDescription,
		Draft:     bugs.NewDraft(reporter),
		UpdatedAt: s.now(),
	}
	s.sessions[userID] = session
	return session, discarded
}

// Touch refreshes the session's activity timestamp
func (s *SessionStore) Touch(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[userID]; ok {
		session.UpdatedAt = s.now()
	}
}

// End discards the user's session and draft
func (s *SessionStore) End(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts every expired session and returns how many were removed
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, userID)
			evicted++
		}
	}
	return evicted
}

// StartSweeper runs periodic sweeps until the context is cancelled
func (s *SessionStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if evicted := s.Sweep(); evicted > 0 {
					log.WithField("count", evicted).Info("Swept expired conversation sessions")
				}
			}
		}
	}()
}

func (s *SessionStore) expired(session *Session) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(session.UpdatedAt) > s.ttl
}
