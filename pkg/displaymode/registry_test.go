package displaymode_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-nodeblock/pkg/displaymode"
)

func TestList_ProjectsLabelsInRegistryOrder(t *testing.T) {
	reg := displaymode.NewStatic()
	if err := reg.Add("node",
		displaymode.ViewMode{Key: "teaser", Label: "Teaser"},
		displaymode.ViewMode{Key: "full", Label: "Full content"},
	); err != nil {
		t.Fatalf("add: %v", err)
	}

	options, err := displaymode.List(context.Background(), reg, "node")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	wantMap := map[string]string{"teaser": "Teaser", "full": "Full content"}
	if diff := cmp.Diff(wantMap, options.Map()); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"teaser", "full"}, options.Keys()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_StockNodeModes(t *testing.T) {
	options, err := displaymode.List(context.Background(), displaymode.Default(), "node")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"full", "rss", "search_index", "search_result", "teaser"}
	if diff := cmp.Diff(want, options.Keys()); diff != "" {
		t.Fatalf("stock node modes mismatch (-want +got):\n%s", diff)
	}
	if got := options.Map()["full"]; got != "Full content" {
		t.Fatalf("unexpected full label %q", got)
	}
}

func TestList_UnknownEntityTypeIsEmpty(t *testing.T) {
	options, err := displaymode.List(context.Background(), displaymode.Default(), "taxonomy_term")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(options) != 0 {
		t.Fatalf("expected no options, got %v", options)
	}
}

func TestList_WrapsRegistryErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := displaymode.List(context.Background(), failingRegistry{err: boom}, "node")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped registry error, got %v", err)
	}
}

func TestStatic_AddRejectsDuplicates(t *testing.T) {
	reg := displaymode.NewStatic()
	if err := reg.Add("node", displaymode.ViewMode{Key: "teaser"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	err := reg.Add("node", displaymode.ViewMode{Key: "teaser", Label: "Again"})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	modes, _ := reg.ViewModes(context.Background(), "node")
	if len(modes) != 1 || modes[0].Label != "teaser" {
		t.Fatalf("expected label to default to key, got %+v", modes)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"modes/node.yaml": {Data: []byte(`viewModes:
  node:
    - key: teaser
      label: Teaser
    - key: full
      label: Full content
`)},
		"modes/taxonomy.json": {Data: []byte(`{"viewModes":{"taxonomy_term":[{"key":"full","label":"Taxonomy term page"}]}}`)},
		"modes/README.md":     {Data: []byte("ignored")},
	}

	reg, err := displaymode.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	nodeModes, err := reg.ViewModes(context.Background(), "node")
	if err != nil {
		t.Fatalf("view modes: %v", err)
	}
	want := []displaymode.ViewMode{
		{Key: "teaser", Label: "Teaser", EntityType: "node"},
		{Key: "full", Label: "Full content", EntityType: "node"},
	}
	if diff := cmp.Diff(want, nodeModes); diff != "" {
		t.Fatalf("node modes mismatch (-want +got):\n%s", diff)
	}

	termModes, _ := reg.ViewModes(context.Background(), "taxonomy_term")
	if len(termModes) != 1 || termModes[0].Label != "Taxonomy term page" {
		t.Fatalf("unexpected taxonomy modes %+v", termModes)
	}
}

func TestLoadFS_RejectsEmptyFiles(t *testing.T) {
	_, err := displaymode.LoadFS(fstest.MapFS{"empty.yml": {Data: []byte("  \n")}})
	if err == nil {
		t.Fatalf("expected error for empty file")
	}
}

type failingRegistry struct{ err error }

func (f failingRegistry) ViewModes(context.Context, string) ([]displaymode.ViewMode, error) {
	return nil, f.err
}
