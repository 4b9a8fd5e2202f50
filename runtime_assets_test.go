package nodeblock

import (
	"io/fs"
	"strings"
	"testing"
)

func TestRuntimeAssetsFSContainsAutocompleteRuntime(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), RuntimeScript)
	if err != nil {
		t.Fatalf("expected runtime bundle to be readable: %v", err)
	}
	if !strings.Contains(string(data), "data-autocomplete-path") {
		t.Fatalf("expected runtime to bind autocomplete inputs")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	if _, err := fs.Stat(ViewTemplates(), "node.tpl"); err != nil {
		t.Fatalf("expected node view template: %v", err)
	}
}
