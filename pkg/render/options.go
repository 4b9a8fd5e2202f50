package render

// RenderOptions carry per-request data renderers use without mutating the
// form model.
type RenderOptions struct {
	// Action is the URL the form posts to. Empty posts back to the current
	// page.
	Action string
	// Values pre-populate controls by field name and win over field
	// defaults. Used to re-display a submitted form.
	Values map[string]string
	// Errors surfaces messages keyed by field name; the empty key holds
	// form-level messages.
	Errors map[string][]string
	// HiddenFields are emitted as hidden inputs in sorted order.
	HiddenFields map[string]string
	// AutocompleteURL is the base path of the suggestions endpoint. The
	// target type is appended as a path segment.
	AutocompleteURL string
	// SubmitLabel overrides the submit button text.
	SubmitLabel string
}
