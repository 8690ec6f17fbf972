package api

import (
	"sync"
	"time"
)

const oauthStateTTL = 10 * time.Minute

// stateStore remembers OAuth state values handed out by /auth/google until
// the callback consumes them.
type stateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	now    func() time.Time
}

func newStateStore() *stateStore {
	return &stateStore{
		states: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (s *stateStore) Put(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.states {
		if now.After(exp) {
			delete(s.states, k)
		}
	}
	s.states[state] = now.Add(oauthStateTTL)
}

// Take reports whether state was issued and is still fresh. A state is
// accepted at most once.
func (s *stateStore) Take(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return !s.now().After(exp)
}
