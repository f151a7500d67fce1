// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CachedBorough looks a normalized geocode query string up in the cache.
func (s *Store) CachedBorough(ctx context.Context, lookupString string) (string, bool, error) {
	var borough string
	err := s.db.QueryRowContext(ctx,
		`SELECT borough FROM geocodes WHERE lookup_string = ?`,
		lookupString,
	).Scan(&borough)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying geocode cache: %w", err)
	}
	return borough, true, nil
}

// SaveGeocode persists a successful geocode result. Concurrent lookups
// for the same key may race to insert; the upsert makes the duplicate
// write harmless.
func (s *Store) SaveGeocode(ctx context.Context, lookupString, borough string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO geocodes (lookup_string, borough, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(lookup_string) DO UPDATE SET borough = excluded.borough`,
		lookupString, borough, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("saving geocode: %w", err)
	}
	return nil
}
