package displaymode

import (
	"context"
	"fmt"
)

// Option pairs a view mode key with its human readable label.
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Options keeps the registry order of the projected view modes.
type Options []Option

// Map returns the key to label mapping.
func (o Options) Map() map[string]string {
	out := make(map[string]string, len(o))
	for _, option := range o {
		out[option.Key] = option.Label
	}
	return out
}

// Keys lists the option keys in order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, option := range o {
		keys = append(keys, option.Key)
	}
	return keys
}

// List queries the registry and projects each view mode onto its label.
func List(ctx context.Context, registry Registry, entityType string) (Options, error) {
	if registry == nil {
		return nil, fmt.Errorf("displaymode: registry is required")
	}
	modes, err := registry.ViewModes(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("displaymode: list %s view modes: %w", entityType, err)
	}
	out := make(Options, 0, len(modes))
	for _, mode := range modes {
		out = append(out, Option{Key: mode.Key, Label: mode.Label})
	}
	return out, nil
}
