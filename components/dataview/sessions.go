package dataview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown or closed.
var ErrSessionNotFound = errors.New("dataview: session not found")

// Session owns one View. Operations on a session run one at a time.
type Session struct {
	ID        string
	TableCode string
	ViewerID  string
	CreatedAt time.Time

	mu   sync.Mutex
	view *View
}

// NewSession wraps a view into a session.
func NewSession(id, tableCode, viewerID string, view *View) *Session {
	if view == nil {
		view = NewView(DefaultPageSize)
	}
	return &Session{
		ID:        id,
		TableCode: tableCode,
		ViewerID:  viewerID,
		CreatedAt: time.Now().UTC(),
		view:      view,
	}
}

// Do runs fn with exclusive access to the session view.
func (s *Session) Do(fn func(v *View) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.view)
}

const (
	// DefaultSessionIdleTTL drops sessions nobody has touched for this long.
	DefaultSessionIdleTTL = 30 * time.Minute
	// DefaultMaxSessions caps the sessions held by an InMemorySessionStore.
	DefaultMaxSessions = 1024
)

// SessionStoreOption configures an InMemorySessionStore.
type SessionStoreOption func(*InMemorySessionStore)

// WithIdleTTL sets how long an untouched session survives. Zero or negative
// keeps sessions until they are deleted or evicted by the cap.
func WithIdleTTL(ttl time.Duration) SessionStoreOption {
	return func(s *InMemorySessionStore) { s.idleTTL = ttl }
}

// WithMaxSessions caps the store; the least recently used session is evicted
// to make room. Zero or negative removes the cap.
func WithMaxSessions(n int) SessionStoreOption {
	return func(s *InMemorySessionStore) { s.maxSessions = n }
}

// WithSessionClock overrides the clock used for idle tracking.
func WithSessionClock(now func() time.Time) SessionStoreOption {
	return func(s *InMemorySessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

type storedSession struct {
	session  *Session
	lastSeen time.Time
}

// InMemorySessionStore is the default concurrency-safe session store.
// Sessions idle longer than the TTL are swept on Create and rejected on Get.
type InMemorySessionStore struct {
	mu          sync.Mutex
	data        map[string]*storedSession
	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time
}

// NewInMemorySessionStore creates an empty store.
func NewInMemorySessionStore(opts ...SessionStoreOption) *InMemorySessionStore {
	s := &InMemorySessionStore{
		data:        make(map[string]*storedSession),
		idleTTL:     DefaultSessionIdleTTL,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new session.
func (s *InMemorySessionStore) Create(_ context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("dataview: session id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	if _, exists := s.data[session.ID]; exists {
		return fmt.Errorf("dataview: session %s already exists", session.ID)
	}
	if s.maxSessions > 0 {
		for len(s.data) >= s.maxSessions {
			s.evictOldestLocked()
		}
	}
	s.data[session.ID] = &storedSession{session: session, lastSeen: now}
	return nil
}

// Get returns the session stored under id and marks it as used.
func (s *InMemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.data[id]
	now := s.now()
	if ok && s.expired(entry, now) {
		delete(s.data, id)
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	entry.lastSeen = now
	return entry.session, nil
}

// Delete drops a session. Unknown ids are ignored.
func (s *InMemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// Len reports the number of open sessions.
func (s *InMemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *InMemorySessionStore) expired(entry *storedSession, now time.Time) bool {
	return s.idleTTL > 0 && now.Sub(entry.lastSeen) > s.idleTTL
}

func (s *InMemorySessionStore) sweepLocked(now time.Time) {
	for id, entry := range s.data {
		if s.expired(entry, now) {
			delete(s.data, id)
		}
	}
}

func (s *InMemorySessionStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, entry := range s.data {
		if oldestID == "" || entry.lastSeen.Before(oldest) {
			oldestID, oldest = id, entry.lastSeen
		}
	}
	delete(s.data, oldestID)
}
