package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/placement"
)

// PlacementStore implements placement.Store on the block_placements table.
type PlacementStore struct {
	DB *sql.DB
}

var _ placement.Store = (*PlacementStore)(nil)

// NewPlacementStore wraps an open, migrated database.
func NewPlacementStore(db *sql.DB) *PlacementStore {
	return &PlacementStore{DB: db}
}

func (s *PlacementStore) Save(ctx context.Context, p placement.Placement) error {
	if p.ID == "" {
		return errors.New("sqlite: placement id is required")
	}
	cfg := p.Configuration
	if cfg == nil {
		cfg = block.Configuration{}
	}
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("sqlite: encode configuration of %q: %w", p.ID, err)
	}

	query := `
	INSERT INTO block_placements (id, plugin_id, region, weight, configuration, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		plugin_id = excluded.plugin_id,
		region = excluded.region,
		weight = excluded.weight,
		configuration = excluded.configuration,
		updated_at = excluded.updated_at
	`
	_, err = s.DB.ExecContext(ctx, query,
		p.ID, p.PluginID, p.Region, p.Weight, string(encoded),
		p.CreatedAt.UTC().Format(time.RFC3339Nano), p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save placement %q: %w", p.ID, err)
	}
	return nil
}

func (s *PlacementStore) Get(ctx context.Context, id string) (placement.Placement, error) {
	row := s.DB.QueryRowContext(ctx, `
	SELECT id, plugin_id, region, weight, configuration, created_at, updated_at
	FROM block_placements WHERE id = ?`, id)
	p, err := scanPlacement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return placement.Placement{}, fmt.Errorf("%w: %q", placement.ErrNotFound, id)
	}
	if err != nil {
		return placement.Placement{}, fmt.Errorf("sqlite: get placement %q: %w", id, err)
	}
	return p, nil
}

func (s *PlacementStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM block_placements WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("sqlite: delete placement %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete placement %q: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", placement.ErrNotFound, id)
	}
	return nil
}

func (s *PlacementStore) ListRegion(ctx context.Context, region string) ([]placement.Placement, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, plugin_id, region, weight, configuration, created_at, updated_at
	FROM block_placements WHERE region = ?`, region)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list region %q: %w", region, err)
	}
	defer rows.Close()

	var out []placement.Placement
	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan placement: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	placement.SortForRender(out)
	return out, nil
}

func (s *PlacementStore) Regions(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT DISTINCT region FROM block_placements ORDER BY region")
	if err != nil {
		return nil, fmt.Errorf("sqlite: list regions: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var region string
		if err := rows.Scan(&region); err != nil {
			return nil, err
		}
		out = append(out, region)
	}
	return out, rows.Err()
}

func scanPlacement(row scanner) (placement.Placement, error) {
	var (
		p                    placement.Placement
		cfg                  string
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &p.PluginID, &p.Region, &p.Weight, &cfg, &createdAt, &updatedAt); err != nil {
		return placement.Placement{}, err
	}
	p.Configuration = block.Configuration{}
	if err := json.Unmarshal([]byte(cfg), &p.Configuration); err != nil {
		return placement.Placement{}, fmt.Errorf("decode configuration: %w", err)
	}
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return placement.Placement{}, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return placement.Placement{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return p, nil
}
