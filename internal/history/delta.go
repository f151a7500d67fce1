// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/openplates/platewatch/pkg/types"
)

// minDeltaInterval is the minimum age of the prior lookup before a
// "since last queried" narrative is produced. Back-to-back queries for
// the same plate stay quiet.
const minDeltaInterval = 5 * time.Minute

// LinkChecker verifies that the post a prior lookup responded to still
// exists. Implementations are best effort: any failure means no link.
type LinkChecker interface {
	Exists(ctx context.Context, messageID, sourceChannel string) bool
}

// Delta describes the change since the vehicle's prior countable lookup.
type Delta struct {
	NewViolations int
	Previous      types.StoredLookup

	// IncludeLink is set when the prior lookup's originating post was
	// confirmed to still exist.
	IncludeLink bool
}

// ComputeDelta compares a fresh total against the vehicle's most recent
// countable lookup. Returns nil when there is no prior lookup, when
// nothing new was found, or when the prior lookup is too recent. The
// link check is consulted only for an otherwise-reportable delta.
func (s *Store) ComputeDelta(ctx context.Context, q types.PlateQuery, totalCount int, now time.Time, links LinkChecker) (*Delta, error) {
	previous, err := s.LatestCountable(ctx, q.Plate, q.State, q.PlateTypes)
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return nil, nil
	}

	newViolations := totalCount - previous.TicketCount
	if newViolations <= 0 || now.Sub(previous.CreatedAt) < minDeltaInterval {
		return nil, nil
	}

	delta := &Delta{NewViolations: newViolations, Previous: *previous}
	if previous.MessageID != "" && links != nil {
		delta.IncludeLink = links.Exists(ctx, previous.MessageID, previous.SourceChannel)
	}
	return delta, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
