// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Placeholder labels applied after merge for records still missing a field.
const (
	NoViolationDescription = "No Violation Description Available"
	NoBorough              = "No Borough Available"
	NoYear                 = "No Year Available"
)

// CountEntry is one labelled group count in an aggregate breakdown.
type CountEntry struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// StreakWindow is the densest rolling 365-day span of camera violations.
// Absent (nil) when the vehicle has no camera violations.
type StreakWindow struct {
	Count int       `json:"count" yaml:"count"`
	Start time.Time `json:"window_start" yaml:"window_start"`
	End   time.Time `json:"window_end" yaml:"window_end"`
}

// AggregateResult is the full violation history for one vehicle, recomputed
// from scratch on every query.
type AggregateResult struct {
	Plate      string `json:"plate" yaml:"plate"`
	State      string `json:"state" yaml:"state"`
	PlateTypes string `json:"plate_types,omitempty" yaml:"plate_types,omitempty"`

	TotalCount   int           `json:"total_count" yaml:"total_count"`
	ByViolation  []CountEntry  `json:"by_violation" yaml:"by_violation"`
	ByYear       []CountEntry  `json:"by_year" yaml:"by_year"`
	ByBorough    []CountEntry  `json:"by_borough" yaml:"by_borough"`
	Fines        FineBreakdown `json:"fines" yaml:"fines"`
	CameraStreak *StreakWindow `json:"camera_streak,omitempty" yaml:"camera_streak,omitempty"`
}

// StoredLookup is one persisted row of lookup history. Rows are written
// once per successful query and never mutated afterwards except by backfill
// jobs; the delta calculator only reads them.
type StoredLookup struct {
	ID          string
	Plate       string
	State       string
	PlateTypes  string
	TicketCount int

	// Countable marks the row as eligible to affect frequency and delta
	// calculations. Administrative and backfill rows are not countable.
	Countable bool

	// MessageID links back to the originating post on the source channel,
	// when one exists.
	MessageID     string
	SourceChannel string
	RequesterID   string

	// Camera streak eligibility under the two statutory thresholds.
	// Write-only outputs for downstream reporting jobs.
	AbatementEligible bool
	SeizureEligible   bool

	CreatedAt time.Time
}

// CampaignSummary is the aggregate for one matched advocacy campaign.
type CampaignSummary struct {
	Hashtag      string
	VehicleCount int
	TicketCount  int
}

// Response is the outbound structure handed to the transport layer, which
// owns posting and pagination by platform primitive.
type Response struct {
	Parts    [][]string `json:"response_parts"`
	Success  bool       `json:"success"`
	HadError bool       `json:"had_error"`
}
