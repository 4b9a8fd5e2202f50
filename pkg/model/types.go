package model

import (
	"fmt"
	"strings"
)

// FieldType is the value kind a field submits.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeBoolean FieldType = "boolean"
)

// Widget identifiers understood by the bundled renderers.
const (
	WidgetTextfield          = "textfield"
	WidgetEntityAutocomplete = "entity_autocomplete"
	WidgetRadios             = "radios"
	WidgetSelect             = "select"
)

// Metadata keys shared between plugins and renderers.
const (
	MetadataTargetType      = "target_type"
	MetadataDefaultEntityID = "default_entity_id"
)

// Option is a single choice offered by radios or select widgets.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual control inside a configuration form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Widget      string            `json:"widget,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the field with the given name.
func (f FormModel) Field(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// ResolvedWidget returns the explicit widget or a default derived from the
// field shape.
func (f Field) ResolvedWidget() string {
	if widget := strings.TrimSpace(f.Widget); widget != "" {
		return widget
	}
	if len(f.Options) > 0 {
		return WidgetSelect
	}
	return WidgetTextfield
}

// DefaultString renders the default value as a string; nil becomes "".
func (f Field) DefaultString() string {
	switch v := f.Default.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
