package placement

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps placements in process memory.
type MemoryStore struct {
	mu         sync.RWMutex
	placements map[string]Placement
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{placements: make(map[string]Placement)}
}

func (s *MemoryStore) Save(ctx context.Context, p Placement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.ID == "" {
		return fmt.Errorf("placement: id is required")
	}
	p.Configuration = p.Configuration.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.placements[p.ID] = p
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Placement, error) {
	if err := ctx.Err(); err != nil {
		return Placement{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.placements[id]
	if !ok {
		return Placement{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	p.Configuration = p.Configuration.Clone()
	return p, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.placements[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(s.placements, id)
	return nil
}

func (s *MemoryStore) ListRegion(ctx context.Context, region string) ([]Placement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	var out []Placement
	for _, p := range s.placements {
		if p.Region == region {
			p.Configuration = p.Configuration.Clone()
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	SortForRender(out)
	return out, nil
}

func (s *MemoryStore) Regions(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	seen := make(map[string]struct{})
	for _, p := range s.placements {
		seen[p.Region] = struct{}{}
	}
	s.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for region := range seen {
		out = append(out, region)
	}
	sort.Strings(out)
	return out, nil
}
