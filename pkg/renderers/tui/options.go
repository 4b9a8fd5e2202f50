package tui

import "github.com/goliatone/go-nodeblock/pkg/entity"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits a JSON object of field name to value.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded
	// payloads, ready for block.DecodeForm.
	OutputFormatFormURLEncoded OutputFormat = "form"
)

// DefaultSearchLimit caps the suggestions offered for autocomplete fields.
const DefaultSearchLimit = 10

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSearcher lets entity autocomplete fields offer matching entities after
// the user types a search term. Without it the typed text is kept as is.
func WithSearcher(searcher entity.Searcher) Option {
	return func(r *Renderer) {
		r.searcher = searcher
	}
}

// WithSearchLimit overrides DefaultSearchLimit.
func WithSearchLimit(limit int) Option {
	return func(r *Renderer) {
		if limit > 0 {
			r.searchLimit = limit
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
