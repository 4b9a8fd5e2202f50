// Package widgets decides which control a renderer uses for a form field.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-nodeblock/pkg/model"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. An
// empty registry only honours explicit hints.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Field.Widget and the "widget"
// metadata hint are honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate sets Field.Widget on every field of form that lacks one. The
// fields slice is replaced, so the caller's model is left untouched.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil || len(form.Fields) == 0 {
		return nil
	}
	decorated := make([]model.Field, len(form.Fields))
	for idx, field := range form.Fields {
		if widget, ok := r.Resolve(field); ok {
			field.Widget = widget
		}
		decorated[idx] = field
	}
	form.Fields = decorated
	return nil
}

func explicitWidget(field model.Field) string {
	if widget := strings.TrimSpace(field.Widget); widget != "" {
		return widget
	}
	if field.Metadata != nil {
		return strings.TrimSpace(field.Metadata["widget"])
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	r.Register(model.WidgetEntityAutocomplete, 90, func(field model.Field) bool {
		return strings.TrimSpace(field.Metadata[model.MetadataTargetType]) != ""
	})

	r.Register(model.WidgetSelect, 70, func(field model.Field) bool {
		return len(field.Options) > 0
	})
}
