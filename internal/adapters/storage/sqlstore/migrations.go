package sqlstore

import (
	"context"
	"fmt"
	"time"
)

type migration struct {
	version    int
	statements []string
}

// Tipos comunes a Postgres y SQLite. Los timestamps se guardan en UTC.
var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS clients (
				id BIGINT PRIMARY KEY,
				name VARCHAR(100) NOT NULL,
				phone VARCHAR(15) NOT NULL,
				email VARCHAR(254) NOT NULL,
				address VARCHAR(100) NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS pets (
				id BIGINT PRIMARY KEY,
				name TEXT NOT NULL,
				breed TEXT NOT NULL,
				birthday DATE NOT NULL,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS medicines (
				id BIGINT PRIMARY KEY,
				name VARCHAR(100) NOT NULL,
				description TEXT NOT NULL,
				dose INTEGER NOT NULL,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS products (
				id BIGINT PRIMARY KEY,
				name TEXT NOT NULL,
				type TEXT NOT NULL,
				price DOUBLE PRECISION NOT NULL,
				stock INTEGER NOT NULL,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
		},
	},
}

// Migrate aplica las migraciones pendientes. Es idempotente.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	_, err := db.exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: create schema_version table: %w", err)
	}

	var current int
	if err := db.queryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return 0, fmt.Errorf("sqlstore: get current schema version: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	applied := 0
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		for _, stmt := range m.statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return 0, fmt.Errorf("sqlstore: apply migration %d: %w", m.version, err)
			}
		}
		if _, err := tx.ExecContext(ctx, db.rebind("INSERT INTO schema_version (version, applied_at) VALUES (?, ?)"),
			m.version, time.Now().UTC()); err != nil {
			return 0, fmt.Errorf("sqlstore: record migration %d: %w", m.version, err)
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlstore: commit migrations: %w", err)
	}
	return applied, nil
}
