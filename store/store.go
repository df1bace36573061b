package store

import (
	"log/slog"
	"slices"
	"sync"
)

// Store holds the current AppState and notifies listeners of every
// transition. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	state     *AppState
	listeners []*subscription
}

type subscription struct {
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithInitialState seeds the store, for example from a snapshot cache.
func WithInitialState(state *AppState) Option {
	return func(s *Store) {
		if state != nil {
			s.state = state
		}
	}
}

// New creates a store holding the empty state unless an option overrides it.
func New(opts ...Option) *Store {
	s := &Store{state: InitialState()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetState returns the current snapshot. Callers must treat it as read-only.
func (s *Store) GetState() *AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces action into the current state and then calls every
// listener registered at that moment, in subscription order, with the new
// state. Listeners run outside the lock and may dispatch themselves.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, action)
	s.state = next
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if action != nil {
		slog.Debug("store dispatch", "action", action.Type(), "changed", prev != next, "tasks", len(next.Tasks))
	}

	for _, sub := range listeners {
		sub.fn(next)
	}
}

// Subscribe registers listener for future dispatches. The returned function
// removes it; calling it more than once has no further effect.
func (s *Store) Subscribe(listener Listener) func() {
	sub := &subscription{fn: listener}

	s.mu.Lock()
	s.listeners = append(s.listeners, sub)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.listeners = slices.DeleteFunc(s.listeners, func(x *subscription) bool { return x == sub })
		})
	}
}
