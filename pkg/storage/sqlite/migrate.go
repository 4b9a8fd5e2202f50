package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id TEXT PRIMARY KEY,
	bundle TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	fields TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_nodes_title ON nodes(title);

CREATE TABLE IF NOT EXISTS block_placements (
	id TEXT PRIMARY KEY,
	plugin_id TEXT NOT NULL,
	region TEXT NOT NULL,
	weight INTEGER NOT NULL DEFAULT 0,
	configuration TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_block_placements_region ON block_placements(region, weight);
`

// Migrate brings the schema up to date. It is tracked with PRAGMA
// user_version and safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("sqlite: set schema version: %w", err)
	}
	return tx.Commit()
}

// OpenAndMigrate opens dbPath with DefaultConfig and migrates it.
func OpenAndMigrate(ctx context.Context, dbPath string) (*sql.DB, error) {
	db, err := Open(dbPath, DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
