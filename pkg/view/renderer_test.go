package view_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/view"
)

func TestBuilder_ViewWithEmbeddedTemplates(t *testing.T) {
	builder, err := view.NewBuilder()
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	node := &entity.Node{NodeID: "7", Type: "article", Title: "Seven", Body: "<p>Body</p>"}

	fragment, err := builder.View(context.Background(), node, "full")
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if fragment.EntityType != "node" || fragment.EntityID != "7" || fragment.ViewMode != "full" {
		t.Fatalf("unexpected fragment identity %+v", fragment)
	}
	if diff := cmp.Diff([]string{"node:7"}, fragment.CacheTags); diff != "" {
		t.Fatalf("cache tags mismatch (-want +got):\n%s", diff)
	}
	for _, want := range []string{`node--view-mode-full`, `<h1 class="node__title">Seven</h1>`, `<p>Body</p>`, `data-node-id="7"`} {
		if !strings.Contains(fragment.Markup, want) {
			t.Fatalf("expected markup to contain %q, got:\n%s", want, fragment.Markup)
		}
	}
}

func TestBuilder_EmptyModeFallsBackToDefault(t *testing.T) {
	builder, err := view.NewBuilder()
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	fragment, err := builder.View(context.Background(), &entity.Node{NodeID: "1", Title: "One"}, "")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if fragment.ViewMode != view.DefaultMode {
		t.Fatalf("expected default mode, got %q", fragment.ViewMode)
	}
	if !strings.Contains(fragment.Markup, "node--view-mode-default") {
		t.Fatalf("expected generic template, got:\n%s", fragment.Markup)
	}
}

func TestBuilder_SuggestionOrder(t *testing.T) {
	builder, err := view.NewBuilder(view.WithTemplatesFS(fstest.MapFS{
		"node.tpl":                 {Data: []byte("generic")},
		"node--article.tpl":        {Data: []byte("bundle")},
		"node--teaser.tpl":         {Data: []byte("mode")},
		"node--article--rss.tpl":   {Data: []byte("bundle+mode")},
		"themes/acme/teaser.tpl":   {Data: []byte("theme")},
		"themes/acme/dark/rss.tpl": {Data: []byte("dark")},
	}))
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	article := &entity.Node{NodeID: "1", Type: "article", Title: "A"}
	page := &entity.Node{NodeID: "2", Type: "page", Title: "P"}

	cases := []struct {
		node entity.Entity
		mode string
		want string
	}{
		{article, "rss", "bundle+mode"},
		{article, "teaser", "mode"},
		{article, "full", "bundle"},
		{page, "full", "generic"},
	}
	for _, tc := range cases {
		fragment, err := builder.View(context.Background(), tc.node, tc.mode)
		if err != nil {
			t.Fatalf("view %s/%s: %v", tc.node.ID(), tc.mode, err)
		}
		if fragment.Markup != tc.want {
			t.Errorf("view %s/%s = %q, want %q", tc.node.ID(), tc.mode, fragment.Markup, tc.want)
		}
	}
}

func TestBuilder_ThemeOverrides(t *testing.T) {
	templates := fstest.MapFS{
		"node.tpl":                 {Data: []byte("generic")},
		"themes/acme/teaser.tpl":   {Data: []byte("theme teaser")},
		"themes/acme/dark/rss.tpl": {Data: []byte("dark rss")},
	}
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Templates: map[string]string{
			"node.teaser": "themes/acme/teaser.tpl",
		},
		Variants: map[string]theme.Variant{
			"dark": {Templates: map[string]string{"node.rss": "themes/acme/dark/rss"}},
		},
	}

	builder, err := view.NewBuilder(view.WithTemplatesFS(templates), view.WithTheme(manifest, "dark"))
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	node := &entity.Node{NodeID: "3", Title: "Three"}

	for mode, want := range map[string]string{"teaser": "theme teaser", "rss": "dark rss", "full": "generic"} {
		fragment, err := builder.View(context.Background(), node, mode)
		if err != nil {
			t.Fatalf("view %s: %v", mode, err)
		}
		if fragment.Markup != want {
			t.Errorf("mode %s rendered %q, want %q", mode, fragment.Markup, want)
		}
	}
}

func TestBuilder_NoTemplate(t *testing.T) {
	builder, err := view.NewBuilder(view.WithTemplatesFS(fstest.MapFS{"other.tpl": {Data: []byte("x")}}))
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	_, err = builder.View(context.Background(), &entity.Node{NodeID: "1"}, "full")
	if err == nil || !strings.Contains(err.Error(), "no template") {
		t.Fatalf("expected missing template error, got %v", err)
	}
}

func TestLoadThemeManifest(t *testing.T) {
	fsys := fstest.MapFS{"theme.yaml": {Data: []byte(`name: acme
version: 1.0.0
templates:
  node.teaser: themes/acme/teaser.tpl
variants:
  dark:
    templates:
      node.rss: themes/acme/dark/rss.tpl
`)}}

	manifest, err := view.LoadThemeManifest(fsys, "theme.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if manifest.Name != "acme" || manifest.Templates["node.teaser"] != "themes/acme/teaser.tpl" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
	if manifest.Variants["dark"].Templates["node.rss"] != "themes/acme/dark/rss.tpl" {
		t.Fatalf("variant templates not loaded: %+v", manifest.Variants)
	}

	if _, err := view.LoadThemeManifest(fstest.MapFS{"bad.yaml": {Data: []byte("version: 1")}}, "bad.yaml"); err == nil {
		t.Fatalf("expected error for manifest without name")
	}
}
