package store

import "sync"

// Store is the single source of truth for the running client. It is
// constructed once at startup and passed by reference; reduction is atomic
// with respect to any other reduction.
type Store struct {
	mu    sync.Mutex
	state State
	subs  []chan struct{}
}

// New creates a store holding the initial state tree.
func New() *Store {
	return &Store{state: Initial()}
}

// Dispatch reduces the event into the tree and signals subscribers.
func (s *Store) Dispatch(event Event) {
	s.mu.Lock()
	s.state = Reduce(s.state, event)
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default: // subscriber already has a pending signal
		}
	}
}

// State returns a snapshot of the tree.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a coalescing change signal: one buffered notification
// per burst of dispatches. Consumers read the snapshot via State.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}
