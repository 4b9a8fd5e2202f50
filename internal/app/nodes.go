package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/storage/sqlite"
)

// NodeStore is the node storage the plugins read and the importer writes.
type NodeStore interface {
	entity.Loader
	entity.Searcher
	Put(ctx context.Context, node *entity.Node) error
}

var (
	_ NodeStore = (*sqlite.NodeStore)(nil)
	_ NodeStore = (*MemoryNodes)(nil)
)

// MemoryNodes adapts entity.MemoryStore to NodeStore.
type MemoryNodes struct {
	store *entity.MemoryStore
}

func NewMemoryNodes(seed ...*entity.Node) *MemoryNodes {
	store := entity.NewMemoryStore()
	for _, node := range seed {
		_ = store.Put(node)
	}
	return &MemoryNodes{store: store}
}

func (m *MemoryNodes) Load(ctx context.Context, entityType, id string) (entity.Entity, error) {
	return m.store.Load(ctx, entityType, id)
}

func (m *MemoryNodes) Search(ctx context.Context, entityType, query string, limit int) ([]entity.Entity, error) {
	return m.store.Search(ctx, entityType, query, limit)
}

func (m *MemoryNodes) Put(ctx context.Context, node *entity.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.store.Put(node)
}

type nodesFile struct {
	Nodes []*entity.Node `yaml:"nodes"`
}

// ImportNodes reads a YAML or JSON document of the form
//
//	nodes:
//	  - {id: "42", type: article, title: Launch Announcement}
//
// and writes every node to store. It returns the number of nodes written.
func ImportNodes(ctx context.Context, store NodeStore, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("app: read nodes: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return 0, nil
	}
	var doc nodesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("app: parse nodes: %w", err)
	}

	for i, node := range doc.Nodes {
		if node == nil || strings.TrimSpace(node.NodeID) == "" {
			return i, fmt.Errorf("app: node %d has no id", i)
		}
		if err := store.Put(ctx, node); err != nil {
			return i, fmt.Errorf("app: store node %s: %w", node.NodeID, err)
		}
	}
	return len(doc.Nodes), nil
}

// ImportNodesFile is ImportNodes over the file at path.
func ImportNodesFile(ctx context.Context, store NodeStore, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("app: open nodes file: %w", err)
	}
	defer f.Close()
	return ImportNodes(ctx, store, f)
}
