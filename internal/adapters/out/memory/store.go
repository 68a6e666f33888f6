// Package memory is an in-process implementation of the ports repositories
// and unit of work. Units of work are serialized by a single lock held from
// Begin until Commit or Rollback, and stage their writes on a copy of the
// data that replaces the shared state on Commit.
//
// It backs STORE=memory for local runs and the lifecycle tests that do not
// need a database.
package memory

import (
	"maps"
	"sync"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/domain/model/user"
)

type state struct {
	users      map[kernel.UUID]user.Snapshot
	donations  map[kernel.UUID]donation.Snapshot
	requests   map[kernel.UUID]request.Snapshot
	deliveries map[kernel.UUID]delivery.Snapshot
}

func newState() *state {
	return &state{
		users:      make(map[kernel.UUID]user.Snapshot),
		donations:  make(map[kernel.UUID]donation.Snapshot),
		requests:   make(map[kernel.UUID]request.Snapshot),
		deliveries: make(map[kernel.UUID]delivery.Snapshot),
	}
}

func (s *state) clone() *state {
	return &state{
		users:      maps.Clone(s.users),
		donations:  maps.Clone(s.donations),
		requests:   maps.Clone(s.requests),
		deliveries: maps.Clone(s.deliveries),
	}
}

// Store holds the committed state shared by every unit of work.
type Store struct {
	txLock sync.Mutex
	mu     sync.RWMutex
	data   *state
}

func NewStore() *Store {
	return &Store{data: newState()}
}

// view runs fn against committed state outside any unit of work.
func (s *Store) view(fn func(*state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// write runs fn against committed state outside any unit of work. It waits
// for running units of work so it never interleaves with one.
func (s *Store) write(fn func(*state) error) error {
	s.txLock.Lock()
	defer s.txLock.Unlock()

	staged := s.snapshot()
	if err := fn(staged); err != nil {
		return err
	}
	s.publish(staged)
	return nil
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

func (s *Store) publish(staged *state) {
	s.mu.Lock()
	s.data = staged
	s.mu.Unlock()
}
