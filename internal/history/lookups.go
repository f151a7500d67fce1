// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openplates/platewatch/pkg/types"
)

// timeLayout keeps fixed-width fractional seconds so stored timestamps
// sort lexicographically in created_at order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Camera streak thresholds under the two statutory programs. A lookup's
// eligibility flags are persisted for downstream reporting jobs and never
// read back by the pipeline itself.
const (
	AbatementThreshold = 15
	SeizureThreshold   = 25
)

// EligibilityFlags computes the two independent statutory flags from a
// camera streak. A nil streak is eligible for neither.
func EligibilityFlags(streak *types.StreakWindow) (abatement, seizure bool) {
	if streak == nil {
		return false, false
	}
	return streak.Count >= AbatementThreshold, streak.Count >= SeizureThreshold
}

// InsertLookup writes one lookup row. A blank ID gets a fresh UUID and a
// zero CreatedAt gets the current time; both are filled in on the passed
// struct. Rows are insert-only: nothing updates them afterwards.
func (s *Store) InsertLookup(ctx context.Context, lookup *types.StoredLookup) error {
	if lookup.ID == "" {
		lookup.ID = uuid.NewString()
	}
	if lookup.CreatedAt.IsZero() {
		lookup.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO plate_lookups
			(id, plate, state, plate_types, ticket_count, countable,
			 message_id, source_channel, requester_id,
			 abatement_eligible, seizure_eligible, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lookup.ID, lookup.Plate, lookup.State, lookup.PlateTypes,
		lookup.TicketCount, lookup.Countable,
		lookup.MessageID, lookup.SourceChannel, lookup.RequesterID,
		lookup.AbatementEligible, lookup.SeizureEligible,
		lookup.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting lookup: %w", err)
	}

	s.log.Debug().
		Str("lookup_id", lookup.ID).
		Str("plate", lookup.Plate).
		Str("state", lookup.State).
		Int("ticket_count", lookup.TicketCount).
		Msg("stored plate lookup")
	return nil
}

// LatestCountable returns the most recent countable lookup for the exact
// plate+state+types identity, or nil when the vehicle has never been
// queried.
func (s *Store) LatestCountable(ctx context.Context, plate, state, plateTypes string) (*types.StoredLookup, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, plate, state, plate_types, ticket_count, countable,
			message_id, source_channel, requester_id,
			abatement_eligible, seizure_eligible, created_at
		 FROM plate_lookups
		 WHERE plate = ? AND state = ? AND plate_types = ? AND countable = 1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		plate, state, plateTypes,
	)
	lookup, err := scanLookup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest lookup: %w", err)
	}
	return lookup, nil
}

// CountableLookups returns how many countable lookups exist for the
// vehicle, the basis of the "has been queried N times" summary line.
func (s *Store) CountableLookups(ctx context.Context, plate, state, plateTypes string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM plate_lookups
		 WHERE plate = ? AND state = ? AND plate_types = ? AND countable = 1`,
		plate, state, plateTypes,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting lookups: %w", err)
	}
	return n, nil
}

// RecordFailure writes a failed lookup for offline follow-up.
func (s *Store) RecordFailure(ctx context.Context, originalText, requesterID, sourceChannel, errMsg string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO failed_lookups
			(original_text, requester_id, source_channel, error, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		originalText, requesterID, sourceChannel, errMsg,
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording failed lookup: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLookup(row rowScanner) (*types.StoredLookup, error) {
	var (
		lookup    types.StoredLookup
		createdAt string
	)
	err := row.Scan(
		&lookup.ID, &lookup.Plate, &lookup.State, &lookup.PlateTypes,
		&lookup.TicketCount, &lookup.Countable,
		&lookup.MessageID, &lookup.SourceChannel, &lookup.RequesterID,
		&lookup.AbatementEligible, &lookup.SeizureEligible,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	lookup.CreatedAt = t
	return &lookup, nil
}
