package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-nodeblock/pkg/entity"
)

// NodeStore loads and searches nodes stored in the nodes table.
type NodeStore struct {
	DB *sql.DB
}

var (
	_ entity.Loader   = (*NodeStore)(nil)
	_ entity.Searcher = (*NodeStore)(nil)
)

// NewNodeStore wraps an open, migrated database.
func NewNodeStore(db *sql.DB) *NodeStore {
	return &NodeStore{DB: db}
}

// Put inserts or replaces a node. Replacing keeps its search position.
func (s *NodeStore) Put(ctx context.Context, node *entity.Node) error {
	if node == nil || node.NodeID == "" {
		return errors.New("sqlite: node id is required")
	}
	fields := node.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("sqlite: encode fields of node %q: %w", node.NodeID, err)
	}

	query := `
	INSERT INTO nodes (id, bundle, title, body, fields)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		bundle = excluded.bundle,
		title = excluded.title,
		body = excluded.body,
		fields = excluded.fields
	`
	if _, err := s.DB.ExecContext(ctx, query, node.NodeID, node.Type, node.Title, node.Body, string(encoded)); err != nil {
		return fmt.Errorf("sqlite: put node %q: %w", node.NodeID, err)
	}
	return nil
}

// Delete removes a node. Unknown ids are a no-op.
func (s *NodeStore) Delete(ctx context.Context, id string) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM nodes WHERE id = ?", id); err != nil {
		return fmt.Errorf("sqlite: delete node %q: %w", id, err)
	}
	return nil
}

// Load returns (nil, nil) for unknown ids and for entity types other than
// nodes.
func (s *NodeStore) Load(ctx context.Context, entityType, id string) (entity.Entity, error) {
	if entityType != entity.TypeNode || id == "" {
		return nil, nil
	}
	row := s.DB.QueryRowContext(ctx, "SELECT id, bundle, title, body, fields FROM nodes WHERE id = ?", id)
	node, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load node %q: %w", id, err)
	}
	return node, nil
}

// Search matches titles case-insensitively and returns nodes in insertion
// order.
func (s *NodeStore) Search(ctx context.Context, entityType, query string, limit int) ([]entity.Entity, error) {
	if entityType != entity.TypeNode {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1
	}
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, bundle, title, body, fields FROM nodes WHERE title LIKE ? ESCAPE '\' ORDER BY rowid LIMIT ?`,
		pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: search nodes: %w", err)
	}
	defer rows.Close()

	var out []entity.Entity
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan node: %w", err)
		}
		out = append(out, node)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNode(row scanner) (*entity.Node, error) {
	var (
		node   entity.Node
		fields string
	)
	if err := row.Scan(&node.NodeID, &node.Type, &node.Title, &node.Body, &fields); err != nil {
		return nil, err
	}
	if fields != "" && fields != "{}" {
		if err := json.Unmarshal([]byte(fields), &node.Fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
	}
	return &node, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
