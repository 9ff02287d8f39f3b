package session

import (
	"context"
	"sync"
)

// Transition is published to subscribers after every dispatched action.
type Transition struct {
	Action Action
	Before State
	After  State
}

// Changed reports whether the action altered the state.
func (t Transition) Changed() bool {
	return t.Before != t.After
}

// Store owns the session State. Dispatch applies actions one at a time.
type Store struct {
	mu         sync.RWMutex
	state      State
	subs       map[*Subscription]struct{}
	bufferSize int
	closed     bool
}

// NewStore creates a store seeded with token. bufferSize is the per-subscriber
// channel capacity, at least 1.
func NewStore(token string, bufferSize int) *Store {
	return &Store{
		state:      State{Token: token},
		subs:       make(map[*Subscription]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

// Dispatch applies a and returns the resulting state.
func (s *Store) Dispatch(a Action) State {
	next, _ := s.dispatchIf(a, nil)
	return next
}

// dispatchIf applies a only when guard accepts the current state.
func (s *Store) dispatchIf(a Action, guard func(State) bool) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if guard != nil && !guard(s.state) {
		return s.state, false
	}
	t := Transition{Action: a, Before: s.state, After: Reduce(s.state, a)}
	s.state = t.After

	for sub := range s.subs {
		// slow subscribers miss transitions rather than stall dispatch
		select {
		case sub.ch <- t:
		default:
		}
	}
	return t.After, true
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the current token, or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Subscribe returns a subscription receiving every later transition. It is
// closed when ctx is done, when Close is called on it, or when the store closes.
func (s *Store) Subscribe(ctx context.Context) *Subscription {
	sub := &Subscription{store: s, ch: make(chan Transition, s.bufferSize)}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(sub.ch)
		return sub
	}
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			sub.Close()
		}()
	}
	return sub
}

// Close closes every subscription. Dispatch keeps working afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for sub := range s.subs {
		close(sub.ch)
	}
	clear(s.subs)
}

func (s *Store) unsubscribe(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub]; ok {
		delete(s.subs, sub)
		close(sub.ch)
	}
}

// Subscription delivers state transitions.
type Subscription struct {
	store *Store
	ch    chan Transition
}

// Updates returns the transition channel. It is closed when the subscription ends.
func (s *Subscription) Updates() <-chan Transition {
	return s.ch
}

// Close ends the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.store.unsubscribe(s)
}
