package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"csaweb/internal/model"
)

// Session is the typed replacement for the token/user pair the browser used
// to keep in local storage.
type Session struct {
	Token     string
	User      model.User
	ExpiresAt time.Time
}

type EventKind string

const (
	EventLogin  EventKind = "login"
	EventLogout EventKind = "logout"
)

// Event is broadcast to subscribers whenever a session is created or
// destroyed, replacing the ad hoc auth-change DOM event of the original UI.
type Event struct {
	Kind EventKind  `json:"kind"`
	User model.User `json:"user"`
}

type Store struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]Session
	subs     map[int]chan Event
	nextSub  int
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]Session),
		subs:     make(map[int]chan Event),
	}
}

// Create stores a new session and returns its id.
func (s *Store) Create(token string, user model.User) string {
	id := newSessionID()

	s.mu.Lock()
	s.sessions[id] = Session{
		Token:     token,
		User:      user,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventLogin, User: user})
	return id
}

// Get returns the session for id, or false if it is unknown or expired.
// Expired sessions are dropped lazily on access.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return Session{}, false
	}
	return sess, true
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if ok {
		s.notify(Event{Kind: EventLogout, User: sess.User})
	}
}

// Subscribe registers a listener for auth-change events. The returned cancel
// function must be called to release the subscription.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// notify never blocks; a subscriber that stopped draining just misses events.
func (s *Store) notify(e Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func newSessionID() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
