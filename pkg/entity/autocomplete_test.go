package entity_test

import (
	"testing"

	"github.com/goliatone/go-nodeblock/pkg/entity"
)

func TestParseAutocompleteInput(t *testing.T) {
	cases := map[string]string{
		"Launch Announcement (42)": "42",
		"Nested (draft) title (7)": "7",
		"42":                       "42",
		"":                         "",
		"No identifier":            "No identifier",
		"Spaces ( 42 )":            "Spaces ( 42 )",
	}
	for input, want := range cases {
		if got := entity.ParseAutocompleteInput(input); got != want {
			t.Errorf("ParseAutocompleteInput(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestAutocompleteValue(t *testing.T) {
	node := &entity.Node{NodeID: "42", Title: "Launch Announcement"}
	if got := entity.AutocompleteValue(node); got != "Launch Announcement (42)" {
		t.Fatalf("unexpected autocomplete value %q", got)
	}
	if got := entity.ParseAutocompleteInput(entity.AutocompleteValue(node)); got != "42" {
		t.Fatalf("autocomplete value did not parse back to id, got %q", got)
	}
	if got := entity.AutocompleteValue(nil); got != "" {
		t.Fatalf("expected empty value for nil entity, got %q", got)
	}
}
