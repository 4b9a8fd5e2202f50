package entity

import (
	"fmt"
	"regexp"
	"strings"
)

var autocompleteSuffix = regexp.MustCompile(`^.*\(([^()\s]+)\)\s*$`)

// AutocompleteValue formats an entity the way autocomplete inputs display a
// selection: "Label (id)".
func AutocompleteValue(e Entity) string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", e.Label(), e.ID())
}

// ParseAutocompleteInput extracts the identifier from an autocomplete
// submission. "Launch Announcement (42)" yields "42". Input without the
// trailing parenthesised identifier, including a bare id, is returned as is.
func ParseAutocompleteInput(input string) string {
	if !strings.HasSuffix(strings.TrimSpace(input), ")") {
		return input
	}
	match := autocompleteSuffix.FindStringSubmatch(input)
	if len(match) != 2 {
		return input
	}
	return match[1]
}
