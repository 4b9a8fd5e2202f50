package render

import (
	"fmt"
	"sort"
	"strings"
)

// Reserved hidden field names emitted with block configuration forms.
const (
	FieldFormID    = "form_id"
	FieldCSRFToken = "form_token"
)

// HiddenField is a hidden input emitted alongside the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// FormID identifies which form a submission belongs to.
func FormID(id string) HiddenField {
	return Hidden(FieldFormID, id)
}

// CSRFToken carries a token the host verifies on submit.
func CSRFToken(token string) HiddenField {
	return Hidden(FieldCSRFToken, token)
}

// MergeHiddenFields returns a copy of base with fields applied. Blank names
// are dropped; later fields win.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name != "" {
			out[field.Name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields orders hidden fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, HiddenField{Name: name, Value: value})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
