package session

import (
	"sync"

	"github.com/trafylabs/academy-api/internal/domain/identity"
)

// Snapshot is the immutable view handed to consumers. Loading is true only
// until the provider delivers its first notification; a nil Identity with
// Loading false is the authoritative logged-out state.
type Snapshot struct {
	Identity *identity.Identity
	Loading  bool
}

func (s Snapshot) LoggedOut() bool {
	return s.Identity == nil && !s.Loading
}

// Store is the process-wide record of the current authenticated identity.
// It is written only by the provider's change stream; UI code reads
// snapshots and subscribes, never writes.
type Store struct {
	mu          sync.RWMutex
	current     *identity.Identity
	loading     bool
	started     bool
	unsubscribe func()
	subs        map[int]func(Snapshot)
	nextSubID   int
}

func NewStore() *Store {
	return &Store{
		loading: true,
		subs:    make(map[int]func(Snapshot)),
	}
}

// Start attaches the store to the provider's change stream. Calling Start
// twice is a no-op.
func (s *Store) Start(provider identity.Provider) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.unsubscribe = provider.Subscribe(s.onChange)
}

// Stop detaches from the change stream. Snapshot remains readable with the
// last observed value.
func (s *Store) Stop() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.started = false
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Identity: s.current, Loading: s.loading}
}

// Subscribe registers fn for every snapshot change. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// onChange is the single writer. Loading latches false on the first
// notification and never flips back for the life of the store.
func (s *Store) onChange(id *identity.Identity) {
	s.mu.Lock()
	s.current = id
	s.loading = false
	snap := Snapshot{Identity: s.current, Loading: s.loading}
	listeners := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
