// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists lookup results and the geocode cache in
// SQLite, and computes repeat-lookup deltas against prior lookups. The
// store handle is constructed by the process entry point and injected;
// there is no package-level state.
package history

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/openplates/platewatch/pkg/types"
)

// Store manages the lookup history SQLite database.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens or creates the database at cfg.DBPath and bootstraps the
// schema.
func Open(cfg types.StorageConfig, log zerolog.Logger) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = "platewatch.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS plate_lookups (
			id TEXT PRIMARY KEY,
			plate TEXT NOT NULL,
			state TEXT NOT NULL,
			plate_types TEXT NOT NULL DEFAULT '',
			ticket_count INTEGER NOT NULL,
			countable INTEGER NOT NULL DEFAULT 1,
			message_id TEXT NOT NULL DEFAULT '',
			source_channel TEXT NOT NULL DEFAULT '',
			requester_id TEXT NOT NULL DEFAULT '',
			abatement_eligible INTEGER NOT NULL DEFAULT 0,
			seizure_eligible INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plate_lookups_vehicle
			ON plate_lookups(plate, state, plate_types, created_at)`,
		`CREATE TABLE IF NOT EXISTS geocodes (
			lookup_string TEXT PRIMARY KEY,
			borough TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS campaigns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashtag TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS campaign_vehicles (
			campaign_id INTEGER NOT NULL REFERENCES campaigns(id),
			plate TEXT NOT NULL,
			state TEXT NOT NULL,
			plate_types TEXT NOT NULL DEFAULT '',
			ticket_count INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (campaign_id, plate, state, plate_types)
		)`,
		`CREATE TABLE IF NOT EXISTS failed_lookups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			original_text TEXT NOT NULL,
			requester_id TEXT NOT NULL DEFAULT '',
			source_channel TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}
