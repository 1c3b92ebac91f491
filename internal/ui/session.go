package ui

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/trafylabs/academy-api/internal/ui/nav"
	"github.com/trafylabs/academy-api/internal/ui/notice"
)

// Session is the server-held UI state for one visitor: the navigation
// overlay machine, the transient notice surface, and an in-flight guard
// that keeps rapid repeated form submits from overlapping.
type Session struct {
	Nav     *nav.Menu
	Notices *notice.Controller

	lastSeen atomic.Int64
	inflight atomic.Bool
}

func newSession() *Session {
	s := &Session{
		Nav:     nav.NewMenu(nav.NopWatcher{}, nil),
		Notices: notice.NewController(),
	}
	s.touch()
	return s
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// BeginSubmit claims the submit slot; it returns false while an earlier
// submission is still in flight.
func (s *Session) BeginSubmit() bool {
	return s.inflight.CompareAndSwap(false, true)
}

func (s *Session) EndSubmit() {
	s.inflight.Store(false)
}

// Registry hands out UI sessions keyed by the visitor's session id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Get returns the session for sid, creating it on first use.
func (r *Registry) Get(sid string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sid]
	if !ok {
		s = newSession()
		r.sessions[sid] = s
	}
	s.touch()
	return s
}

// Prune drops sessions idle for longer than maxAge.
func (r *Registry) Prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for sid, s := range r.sessions {
		if s.lastSeen.Load() < cutoff {
			delete(r.sessions, sid)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
