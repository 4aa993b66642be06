// Package directory keeps an in-memory snapshot of the facility fleet, fed by
// retained MQTT status messages published by operators. The engine only ever
// sees immutable copies taken from this store.
package directory

import (
	"sort"
	"sync"

	"github.com/voltwise/stationmatch/core/model"
)

// Store is the facility snapshot source consumed by the API layer.
type Store interface {
	Upsert(f model.Facility)
	Remove(id string)
	Get(id string) (model.Facility, bool)
	Snapshot() []model.Facility
	Len() int
}

// MemoryStore is the default Store implementation.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.Facility
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]model.Facility{}}
}

// Upsert inserts or replaces a facility snapshot.
func (s *MemoryStore) Upsert(f model.Facility) {
	s.mu.Lock()
	s.data[f.ID] = f
	s.mu.Unlock()
}

// Remove deletes a facility, typically after a decommission message.
func (s *MemoryStore) Remove(id string) {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
}

// Get returns the facility with the given id.
func (s *MemoryStore) Get(id string) (model.Facility, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.data[id]
	return f, ok
}

// Snapshot returns all known facilities ordered by id.
func (s *MemoryStore) Snapshot() []model.Facility {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Facility, 0, len(s.data))
	for _, f := range s.data {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of known facilities.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
