package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobboard/internal/wizard"
)

// SessionCookie names the cookie that scopes a wizard to one browser session.
const SessionCookie = "signup_session"

// ControllerFactory builds the controller of a tab session.
type ControllerFactory func(sessionID string) *wizard.Controller

type session struct {
	mu       sync.Mutex
	ctrl     *wizard.Controller
	lastSeen time.Time
}

// Sessions holds the live controller of every tab session. Events of one
// session run one at a time; different sessions run in parallel.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*session
	factory ControllerFactory
	clock   func() time.Time
}

func NewSessions(factory ControllerFactory) *Sessions {
	return &Sessions{
		entries: make(map[string]*session),
		factory: factory,
		clock:   time.Now,
	}
}

// Mount replaces the session's controller with a fresh one restored from
// its stored snapshot, then runs fn on it.
func (s *Sessions) Mount(ctx context.Context, id string, fn func(*wizard.Controller)) {
	entry := s.entry(id)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.ctrl = s.factory(id)
	entry.ctrl.Mount(ctx)
	fn(entry.ctrl)
}

// Do runs fn on the session's controller, mounting one first if the session
// has none in memory yet.
func (s *Sessions) Do(ctx context.Context, id string, fn func(*wizard.Controller)) {
	entry := s.entry(id)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.ctrl == nil {
		entry.ctrl = s.factory(id)
		entry.ctrl.Mount(ctx)
	}
	fn(entry.ctrl)
}

func (s *Sessions) entry(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		entry = &session{}
		s.entries[id] = entry
	}
	entry.lastSeen = s.clock()
	return entry
}

// Len returns the number of sessions held in memory.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Purge drops controllers idle since before cutoff. A later request for the
// session mounts a new controller from the stored snapshot.
func (s *Sessions) Purge(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}

// sessionID returns the tab session of the request, issuing a new cookie
// when the request has none or carries a malformed one.
func sessionID(c *gin.Context, secure bool) string {
	if value, err := c.Cookie(SessionCookie); err == nil {
		value = strings.TrimSpace(value)
		if _, err := uuid.Parse(value); err == nil {
			return value
		}
	}

	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	// No Max-Age: the cookie ends with the browser session.
	c.SetCookie(SessionCookie, id, 0, "/", "", secure, true)
	return id
}
