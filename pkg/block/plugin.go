// Package block defines the contract block plugins implement and the catalog
// the host uses to find them. A plugin is a configuration and render unit: it
// supplies defaults for a new block instance, describes its admin form,
// derives new configuration from a submitted form and builds output from the
// stored configuration. Plugins hold no per-instance state; configuration is
// passed in on every call and persisted by the host.
package block

import (
	"context"

	"github.com/goliatone/go-nodeblock/pkg/model"
	"github.com/goliatone/go-nodeblock/pkg/view"
)

// Descriptor is the static registration metadata of a plugin.
type Descriptor struct {
	ID         string `json:"id"`
	AdminLabel string `json:"adminLabel"`
	Category   string `json:"category"`
}

// Configuration is the opaque key/value state stored per block instance.
type Configuration map[string]string

// Get returns the value for key, or "" when unset.
func (c Configuration) Get(key string) string {
	return c[key]
}

// Clone returns an independent copy. Cloning nil yields an empty map.
func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	for key, value := range c {
		out[key] = value
	}
	return out
}

// Plugin is implemented by every block type.
type Plugin interface {
	Descriptor() Descriptor
	// DefaultConfiguration returns a fresh configuration for a newly placed
	// instance. Each call returns a new map.
	DefaultConfiguration() Configuration
	// Form describes the admin form for the given configuration.
	Form(ctx context.Context, cfg Configuration, state *FormState) (model.FormModel, error)
	// Submit returns the configuration derived from the submitted form
	// state. cfg is not modified.
	Submit(ctx context.Context, cfg Configuration, state *FormState) (Configuration, error)
	// Build renders the block for the given configuration.
	Build(ctx context.Context, cfg Configuration) (Output, error)
}

// Output is what a block build produces: either raw markup or a view
// fragment. The zero value is the empty output.
type Output struct {
	Markup   string        `json:"markup,omitempty"`
	Fragment view.Fragment `json:"fragment,omitzero"`
}

// IsEmpty reports whether the output renders nothing.
func (o Output) IsEmpty() bool {
	return o.Markup == "" && o.Fragment.IsZero()
}

// HTML returns the markup to place in the page.
func (o Output) HTML() string {
	if o.Markup != "" {
		return o.Markup
	}
	return o.Fragment.Markup
}
