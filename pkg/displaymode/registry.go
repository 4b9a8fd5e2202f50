// Package displaymode exposes the named view modes an entity type can be
// rendered with, plus the projection block forms use to build option lists.
package displaymode

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// ViewMode describes a host-defined layout for rendering an entity.
type ViewMode struct {
	Key        string `json:"key" yaml:"key"`
	Label      string `json:"label" yaml:"label"`
	EntityType string `json:"entityType,omitempty" yaml:"entityType,omitempty"`
}

// Registry enumerates the view modes available for an entity type in the
// order the host defines them.
type Registry interface {
	ViewModes(ctx context.Context, entityType string) ([]ViewMode, error)
}

// Static is an in-memory Registry. The zero value is not usable; construct it
// with NewStatic, Default or LoadFS.
type Static struct {
	mu    sync.RWMutex
	modes map[string][]ViewMode
}

var _ Registry = (*Static)(nil)

// NewStatic creates an empty registry.
func NewStatic() *Static {
	return &Static{modes: make(map[string][]ViewMode)}
}

// Default returns a registry holding the stock node view modes.
func Default() *Static {
	reg := NewStatic()
	_ = reg.Add("node",
		ViewMode{Key: "full", Label: "Full content"},
		ViewMode{Key: "rss", Label: "RSS"},
		ViewMode{Key: "search_index", Label: "Search index"},
		ViewMode{Key: "search_result", Label: "Search result highlighting input"},
		ViewMode{Key: "teaser", Label: "Teaser"},
	)
	return reg
}

// Add appends view modes for an entity type. Keys must be unique per entity
// type; a blank label falls back to the key.
func (s *Static) Add(entityType string, modes ...ViewMode) error {
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return fmt.Errorf("displaymode: entity type is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.modes[entityType]
	seen := make(map[string]struct{}, len(existing)+len(modes))
	for _, mode := range existing {
		seen[mode.Key] = struct{}{}
	}
	for _, mode := range modes {
		key := strings.TrimSpace(mode.Key)
		if key == "" {
			return fmt.Errorf("displaymode: %s view mode key is required", entityType)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("displaymode: duplicate view mode %q for %s", key, entityType)
		}
		seen[key] = struct{}{}
		mode.Key = key
		mode.EntityType = entityType
		if strings.TrimSpace(mode.Label) == "" {
			mode.Label = key
		}
		existing = append(existing, mode)
	}
	s.modes[entityType] = existing
	return nil
}

func (s *Static) ViewModes(ctx context.Context, entityType string) ([]ViewMode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	modes := s.modes[entityType]
	if len(modes) == 0 {
		return nil, nil
	}
	return append([]ViewMode(nil), modes...), nil
}
