package block

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrPluginNotFound is returned by Get for unknown plugin ids.
var ErrPluginNotFound = errors.New("block: plugin not found")

// Catalog stores plugins by descriptor id. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{plugins: make(map[string]Plugin)}
}

// Register adds a plugin under its descriptor id. Duplicate ids return an
// error.
func (c *Catalog) Register(plugin Plugin) error {
	if plugin == nil {
		return fmt.Errorf("block: plugin is required")
	}
	id := plugin.Descriptor().ID
	if id == "" {
		return fmt.Errorf("block: plugin id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.plugins[id]; exists {
		return fmt.Errorf("block: plugin %q already registered", id)
	}
	c.plugins[id] = plugin
	return nil
}

// MustRegister panics on registration failure.
func (c *Catalog) MustRegister(plugin Plugin) {
	if err := c.Register(plugin); err != nil {
		panic(err)
	}
}

// Get retrieves a plugin by id.
func (c *Catalog) Get(id string) (Plugin, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	plugin, ok := c.plugins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPluginNotFound, id)
	}
	return plugin, nil
}

// Has reports whether a plugin is registered.
func (c *Catalog) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.plugins[id]
	return ok
}

// List returns the registered ids sorted.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.plugins))
	for id := range c.plugins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Descriptors returns the descriptor of every plugin, ordered by category
// then admin label.
func (c *Catalog) Descriptors() []Descriptor {
	c.mu.RLock()
	out := make([]Descriptor, 0, len(c.plugins))
	for _, plugin := range c.plugins {
		out = append(out, plugin.Descriptor())
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].AdminLabel != out[j].AdminLabel {
			return out[i].AdminLabel < out[j].AdminLabel
		}
		return out[i].ID < out[j].ID
	})
	return out
}
