// Package database implements the domain repositories on SQLite.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

// Connect opens the SQLite database at path with foreign keys enforced.
func Connect(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; more connections just contend.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// RunMigrations creates the schema idempotently.
func (db *DB) RunMigrations() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS vehicles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			sort INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS places (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			sort INTEGER NOT NULL DEFAULT 0,
			vehicle_id INTEGER NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_places_vehicle_id ON places(vehicle_id)`,
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 1,
			note TEXT NOT NULL DEFAULT '',
			sort INTEGER NOT NULL DEFAULT 0,
			photo_path TEXT NOT NULL DEFAULT '',
			place_id INTEGER NOT NULL REFERENCES places(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_place_id ON items(place_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_name ON items(name)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	slog.Info("Database migrations completed")
	return nil
}
