package block

import (
	"net/url"

	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/model"
)

// FormState carries submitted form values after element processing.
type FormState struct {
	values map[string]string
}

// NewFormState wraps already processed values.
func NewFormState(values map[string]string) *FormState {
	state := &FormState{values: make(map[string]string, len(values))}
	for key, value := range values {
		state.values[key] = value
	}
	return state
}

// Value returns the submitted value for name, or "" when absent. A nil
// state has no values.
func (s *FormState) Value(name string) string {
	if s == nil {
		return ""
	}
	return s.values[name]
}

// SetValue overrides a single value.
func (s *FormState) SetValue(name, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[name] = value
}

// Values returns a copy of every value.
func (s *FormState) Values() map[string]string {
	if s == nil {
		return nil
	}
	out := make(map[string]string, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// DecodeForm builds the form state for form from raw request values. Only
// fields declared by the form are read. Entity autocomplete inputs are
// reduced to the referenced identifier ("Title (42)" becomes "42"); every
// other value is taken as submitted.
func DecodeForm(form model.FormModel, raw url.Values) *FormState {
	state := &FormState{values: make(map[string]string, len(form.Fields))}
	for _, field := range form.Fields {
		value := raw.Get(field.Name)
		if field.ResolvedWidget() == model.WidgetEntityAutocomplete {
			value = entity.ParseAutocompleteInput(value)
		}
		state.values[field.Name] = value
	}
	return state
}
