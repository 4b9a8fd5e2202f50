package entity

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// MemoryStore keeps entities in process memory. It satisfies Loader and
// Searcher and is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	entities map[string]map[string]Entity
	order    map[string][]string
}

var (
	_ Loader   = (*MemoryStore)(nil)
	_ Searcher = (*MemoryStore)(nil)
)

// NewMemoryStore creates a store seeded with the provided entities.
func NewMemoryStore(seed ...Entity) *MemoryStore {
	store := &MemoryStore{
		entities: make(map[string]map[string]Entity),
		order:    make(map[string][]string),
	}
	for _, e := range seed {
		_ = store.Put(e)
	}
	return store
}

// Put inserts or replaces an entity. Replacing keeps the original position.
func (s *MemoryStore) Put(e Entity) error {
	if e == nil {
		return errors.New("entity: entity is required")
	}
	entityType, id := e.EntityType(), e.ID()
	if entityType == "" || id == "" {
		return errors.New("entity: entity type and id are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.entities[entityType]
	if !ok {
		byID = make(map[string]Entity)
		s.entities[entityType] = byID
	}
	if _, exists := byID[id]; !exists {
		s.order[entityType] = append(s.order[entityType], id)
	}
	byID[id] = e
	return nil
}

// Delete removes an entity. Deleting an unknown entity is a no-op.
func (s *MemoryStore) Delete(entityType, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.entities[entityType]
	if !ok {
		return
	}
	if _, exists := byID[id]; !exists {
		return
	}
	delete(byID, id)
	ids := s.order[entityType]
	for i, candidate := range ids {
		if candidate == id {
			s.order[entityType] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

func (s *MemoryStore) Load(ctx context.Context, entityType, id string) (Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[entityType][id]
	if !ok {
		return nil, nil
	}
	return e, nil
}

func (s *MemoryStore) Search(ctx context.Context, entityType, query string, limit int) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entity
	for _, id := range s.order[entityType] {
		e := s.entities[entityType][id]
		if needle != "" && !strings.Contains(strings.ToLower(e.Label()), needle) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
