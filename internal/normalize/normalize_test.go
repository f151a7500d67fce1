// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplates/platewatch/pkg/types"
)

func testNormalizer(resolver BoroughResolver) *Normalizer {
	return New(resolver, zerolog.Nop())
}

// --- violationName ---

func TestViolationName(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		description string
		want        string
		wantNil     bool
	}{
		{"fiscal year code", "21", "", "No Parking - Street Cleaning", false},
		{"zero-padded code", "021", "", "No Parking - Street Cleaning", false},
		{"camera code", "36", "", "School Zone Speed Camera Violation", false},
		{"current description", "", "PHTO SCHOOL ZN SPEED VIOLATION", "School Zone Speed Camera Violation", false},
		{"description case-insensitive", "", "fire hydrant", "Fire Hydrant", false},
		{"unknown description strips code prefix", "", "95-Unknown Street Rule", "Unknown Street Rule", false},
		{"unknown description kept as-is", "", "Some New Violation", "Some New Violation", false},
		{"nothing usable", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := violationName(tt.code, tt.description)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

// --- dates ---

func TestRecord_DateParsing(t *testing.T) {
	n := testNormalizer(nil)

	fiscal := n.Record(context.Background(), types.RawViolationRecord{
		Source:        types.SourceFiscalYear,
		SummonsNumber: "1",
		IssueDate:     "2023-01-15T00:00:00.000",
	})
	require.True(t, fiscal.HasDate)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), fiscal.IssueDate)

	current := n.Record(context.Background(), types.RawViolationRecord{
		Source:        types.SourceOpenParkingCamera,
		SummonsNumber: "2",
		IssueDate:     "06/27/2023",
	})
	require.True(t, current.HasDate)
	assert.Equal(t, time.Date(2023, 6, 27, 0, 0, 0, 0, time.UTC), current.IssueDate)

	bad := n.Record(context.Background(), types.RawViolationRecord{
		Source:        types.SourceOpenParkingCamera,
		SummonsNumber: "3",
		IssueDate:     "not a date",
	})
	assert.False(t, bad.HasDate, "parse failure leaves the record dateless, never fails it")
}

// --- borough cascade ---

type staticResolver struct {
	borough string
	err     error
	calls   int
}

func (r *staticResolver) Resolve(_ context.Context, street, crossStreet string) (string, error) {
	r.calls++
	return r.borough, r.err
}

func TestRecord_BoroughCascade(t *testing.T) {
	t.Run("precinct wins", func(t *testing.T) {
		resolver := &staticResolver{borough: BoroughQueens}
		n := testNormalizer(resolver)
		rec := n.Record(context.Background(), types.RawViolationRecord{
			SummonsNumber:     "1",
			ViolationPrecinct: "73",
			ViolationCounty:   "NY",
			StreetName:        "Main St",
		})
		require.NotNil(t, rec.Borough)
		assert.Equal(t, BoroughBrooklyn, *rec.Borough)
		assert.Zero(t, resolver.calls)
	})

	t.Run("county when precinct missing", func(t *testing.T) {
		n := testNormalizer(nil)
		rec := n.Record(context.Background(), types.RawViolationRecord{
			SummonsNumber:   "2",
			ViolationCounty: "K",
		})
		require.NotNil(t, rec.Borough)
		assert.Equal(t, BoroughBrooklyn, *rec.Borough)
	})

	t.Run("geocode as last resort", func(t *testing.T) {
		resolver := &staticResolver{borough: BoroughQueens}
		n := testNormalizer(resolver)
		rec := n.Record(context.Background(), types.RawViolationRecord{
			SummonsNumber: "3",
			StreetName:    "Queens Blvd",
		})
		require.NotNil(t, rec.Borough)
		assert.Equal(t, BoroughQueens, *rec.Borough)
		assert.Equal(t, 1, resolver.calls)
	})

	t.Run("geocode failure leaves borough unset", func(t *testing.T) {
		resolver := &staticResolver{err: errors.New("boom")}
		n := testNormalizer(resolver)
		rec := n.Record(context.Background(), types.RawViolationRecord{
			SummonsNumber: "4",
			StreetName:    "Queens Blvd",
		})
		assert.Nil(t, rec.Borough)
	})

	t.Run("precinct zero never resolves", func(t *testing.T) {
		n := testNormalizer(nil)
		rec := n.Record(context.Background(), types.RawViolationRecord{
			SummonsNumber:     "5",
			ViolationPrecinct: "0",
		})
		assert.Nil(t, rec.Borough)
	})
}

func TestBoroughFromPrecinct(t *testing.T) {
	tests := []struct {
		precinct string
		want     string
		ok       bool
	}{
		{"1", BoroughManhattan, true},
		{"34", BoroughManhattan, true},
		{"40", BoroughBronx, true},
		{"94", BoroughBrooklyn, true},
		{"114", BoroughQueens, true},
		{"120", BoroughStatenIsland, true},
		{"35", "", false},
		{"999", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := boroughFromPrecinct(tt.precinct)
		assert.Equal(t, tt.ok, ok, "precinct %q", tt.precinct)
		assert.Equal(t, tt.want, got, "precinct %q", tt.precinct)
	}
}

// --- fines ---

func TestRecord_FineBuckets(t *testing.T) {
	n := testNormalizer(nil)
	rec := n.Record(context.Background(), types.RawViolationRecord{
		SummonsNumber:   "1",
		FineAmount:      "50",
		PenaltyAmount:   "10",
		InterestAmount:  "2.50",
		ReductionAmount: "5",
		PaymentAmount:   "57.50",
		AmountDue:       "0",
	})
	assert.Equal(t, types.FineBreakdown{
		Fined:       62.50,
		Reduced:     5,
		Paid:        57.50,
		Outstanding: 0,
	}, rec.Fines)
}

func TestRecord_UnparseableMoneySkipped(t *testing.T) {
	n := testNormalizer(nil)
	rec := n.Record(context.Background(), types.RawViolationRecord{
		SummonsNumber: "1",
		FineAmount:    "fifty bucks",
		PaymentAmount: "$25.00",
	})
	assert.Equal(t, 0.0, rec.Fines.Fined, "bad value skipped, not fatal")
	assert.Equal(t, 25.0, rec.Fines.Paid, "leading dollar sign tolerated")
}
