package cart

import (
	"context"
	"sync"
	"time"
)

// entry is one session's cart. dead is set under mu once the entry has left
// the map; an Update that locks a dead entry starts over on the current one.
type entry struct {
	mu        sync.Mutex
	state     State
	lastSeen  time.Time
	committed bool
	dead      bool
}

// MemSessionStore keeps carts in process memory. Commands for one session
// run one at a time; different sessions proceed independently.
type MemSessionStore struct {
	mu  sync.Mutex
	m   map[string]*entry
	now func() time.Time
}

func NewMemSessionStore() *MemSessionStore {
	return &MemSessionStore{
		m:   make(map[string]*entry),
		now: time.Now,
	}
}

// Get returns an empty State for sessions that have not committed a command yet.
func (s *MemSessionStore) Get(_ context.Context, sessionID string) (State, error) {
	s.mu.Lock()
	e, ok := s.m[sessionID]
	s.mu.Unlock()
	if !ok {
		return State{}, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dead {
		return State{}, nil
	}
	e.lastSeen = s.now()
	return e.state, nil
}

// Update runs fn against the session's current state and stores the result.
// A session that has never had a successful command is not kept on error.
func (s *MemSessionStore) Update(ctx context.Context, sessionID string, fn func(State) (State, error)) (State, error) {
	for {
		if err := ctx.Err(); err != nil {
			return State{}, err
		}

		e := s.entry(sessionID)
		e.mu.Lock()
		if e.dead {
			e.mu.Unlock()
			continue
		}

		next, err := fn(e.state)
		if err != nil {
			if !e.committed {
				s.drop(sessionID, e)
			}
			prev := e.state
			e.mu.Unlock()
			return prev, err
		}

		e.state = next
		e.lastSeen = s.now()
		e.committed = true
		e.mu.Unlock()
		return next, nil
	}
}

func (s *MemSessionStore) entry(id string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[id]
	if !ok {
		e = &entry{lastSeen: s.now()}
		s.m[id] = e
	}
	return e
}

// drop removes e if it is still the current entry for id. Caller holds e.mu.
func (s *MemSessionStore) drop(id string, e *entry) {
	s.mu.Lock()
	if s.m[id] == e {
		delete(s.m, id)
	}
	s.mu.Unlock()
	e.dead = true
}

func (s *MemSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	e, ok := s.m[sessionID]
	delete(s.m, sessionID)
	s.mu.Unlock()
	if !ok {
		return nil
	}

	e.mu.Lock()
	e.dead = true
	e.mu.Unlock()
	return nil
}

// Sweep drops committed sessions idle for longer than idle and reports how
// many went. Sessions with a command in flight are skipped.
func (s *MemSessionStore) Sweep(_ context.Context, idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.m {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastSeen.Before(cutoff) {
			delete(s.m, id)
			e.dead = true
			n++
		}
		e.mu.Unlock()
	}
	return n
}

func (s *MemSessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
