package app

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-nodeblock/pkg/entity"
)

func TestImportNodes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryNodes()

	count, err := ImportNodes(ctx, store, strings.NewReader(seedYAML))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 nodes, got %d", count)
	}
	loaded, err := store.Load(ctx, entity.TypeNode, "42")
	if err != nil || loaded == nil {
		t.Fatalf("load: %v %v", loaded, err)
	}
	if loaded.Label() != "Launch Announcement" {
		t.Fatalf("unexpected label %q", loaded.Label())
	}
}

func TestImportNodes_JSON(t *testing.T) {
	store := NewMemoryNodes()
	count, err := ImportNodes(context.Background(), store, strings.NewReader(`{"nodes":[{"id":"1","type":"page","title":"One"}]}`))
	if err != nil || count != 1 {
		t.Fatalf("import json: %d %v", count, err)
	}
}

func TestImportNodes_Errors(t *testing.T) {
	ctx := context.Background()
	if count, err := ImportNodes(ctx, NewMemoryNodes(), strings.NewReader("  \n")); err != nil || count != 0 {
		t.Fatalf("empty input: %d %v", count, err)
	}
	if _, err := ImportNodes(ctx, NewMemoryNodes(), strings.NewReader("nodes:\n  - title: No id\n")); err == nil {
		t.Fatalf("expected error for node without id")
	}
	if _, err := ImportNodes(ctx, NewMemoryNodes(), strings.NewReader("nodes: [")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := ImportNodesFile(ctx, NewMemoryNodes(), "does-not-exist.yaml"); err == nil {
		t.Fatalf("expected open error")
	}
}
