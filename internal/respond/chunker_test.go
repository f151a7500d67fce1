// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package respond

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplates/platewatch/pkg/types"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0.00"},
		{75, "75.00"},
		{115.25, "115.25"},
		{1234.5, "1,234.50"},
		{1234567.89, "1,234,567.89"},
		{-980.2, "-980.20"},
	}
	for _, tt := range tests {
		if got := money(tt.amount); got != tt.want {
			t.Errorf("money(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestCountLines_ColumnWidth(t *testing.T) {
	lines := countLines([]types.CountEntry{
		{Label: "School Zone Speed Camera Violation", Count: 13},
		{Label: "No Standing - Day/Time Limits", Count: 4},
	})
	require.Len(t, lines, 2)
	// Widest count has 2 digits, so the column is 2*2+1 = 5 wide.
	assert.Equal(t, "13   | School Zone Speed Camera Violation\n", lines[0])
	assert.Equal(t, "4    | No Standing - Day/Time Limits\n", lines[1])
}

func TestNoTicketsMessage(t *testing.T) {
	assert.Equal(t, "I couldn't find any tickets for NY:ABC1234.",
		NoTicketsMessage("ABC1234", "NY"))
}

func TestBuild_NoTickets(t *testing.T) {
	chunks := New("@reply").Build(Input{
		Aggregate: types.AggregateResult{Plate: "ABC1234", State: "NY"},
	})
	require.Len(t, chunks, 1)
	assert.Equal(t, "I couldn't find any tickets for NY:ABC1234.", chunks[0])
}

func TestBuild_SummaryFirstChunk(t *testing.T) {
	chunks := New("").Build(Input{
		Aggregate: types.AggregateResult{
			Plate: "ABC1234", State: "NY", TotalCount: 7,
			ByViolation: []types.CountEntry{
				{Label: "School Zone Speed Camera Violation", Count: 5},
				{Label: "Failure to Stop at Red Light", Count: 2},
			},
			ByYear: []types.CountEntry{{Label: "2025", Count: 7}},
		},
		QueryCount: 3,
	})
	require.NotEmpty(t, chunks)

	first := chunks[0]
	assert.Contains(t, first, "#NY_ABC1234 has been queried 3 times.")
	assert.Contains(t, first, "Total parking and camera violation tickets: 7")
	assert.Contains(t, first, "5  | School Zone Speed Camera Violation")
	assert.Contains(t, first, "2  | Failure to Stop at Red Light")

	assert.Contains(t, chunks[1], "Violations by year for #NY_ABC1234:")
	assert.Contains(t, chunks[1], "7  | 2025")
}

func TestBuild_DeltaNarrative(t *testing.T) {
	in := Input{
		Aggregate: types.AggregateResult{
			Plate: "ABC1234", State: "NY", TotalCount: 10,
			ByViolation: []types.CountEntry{{Label: "No Parking - Street Cleaning", Count: 10}},
		},
		QueryCount: 2,
		Delta: &Delta{
			NewViolations: 3,
			PreviousAt:    time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
		},
	}
	chunks := New("").Build(in)
	assert.Contains(t, chunks[0],
		"Since the last lookup on January 15, 2026, this vehicle has received 3 new tickets.")
	assert.NotContains(t, chunks[0], "Previous results:")

	in.Delta.PreviousLink = "https://example.com/status/42"
	chunks = New("").Build(in)
	assert.Contains(t, chunks[0], "Previous results: https://example.com/status/42")
}

func TestBuild_CampaignChunksPrepended(t *testing.T) {
	chunks := New("").Build(Input{
		Aggregate: types.AggregateResult{
			Plate: "ABC1234", State: "NY", TotalCount: 2,
			ByViolation: []types.CountEntry{{Label: "Bus Lane Camera Violation", Count: 2}},
		},
		Campaigns: []types.CampaignSummary{
			{Hashtag: "fixqueensblvd", VehicleCount: 12, TicketCount: 340},
		},
	})
	require.NotEmpty(t, chunks)
	assert.Equal(t,
		"12 vehicles in #fixqueensblvd have been queried, with 340 tickets between them.",
		chunks[0])
}

func TestBuild_FinesAndStreak(t *testing.T) {
	chunks := New("").Build(Input{
		Aggregate: types.AggregateResult{
			Plate: "ABC1234", State: "NY", TotalCount: 13,
			ByViolation: []types.CountEntry{{Label: "School Zone Speed Camera Violation", Count: 13}},
			Fines:       types.FineBreakdown{Fined: 650, Paid: 500, Outstanding: 150},
			CameraStreak: &types.StreakWindow{
				Count: 13,
				Start: time.Date(2016, 9, 8, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2017, 6, 27, 0, 0, 0, 0, time.UTC),
			},
		},
	})

	joined := strings.Join(chunks, "\n")
	assert.Contains(t, joined, "Known fines for #NY_ABC1234:")
	assert.Contains(t, joined, "$650.00")
	assert.Contains(t, joined, "| Fined")
	assert.Contains(t, joined, "| Outstanding")
	assert.Contains(t, joined,
		"This vehicle received 13 camera violations between September 8, 2016 and June 27, 2017")
}

func TestBuild_FinesOmittedWhenZero(t *testing.T) {
	chunks := New("").Build(Input{
		Aggregate: types.AggregateResult{
			Plate: "ABC1234", State: "NY", TotalCount: 1,
			ByViolation: []types.CountEntry{{Label: "No Parking - Street Cleaning", Count: 1}},
		},
	})
	assert.NotContains(t, strings.Join(chunks, "\n"), "Known fines")
}

// Every chunk fits under the ceiling with the mention prefix applied, and
// stripping headers reproduces every item exactly once in input order.
func TestBuild_OverflowProperties(t *testing.T) {
	mention := "@platewatchbot"

	var violations []types.CountEntry
	for i := 0; i < 40; i++ {
		violations = append(violations, types.CountEntry{
			Label: fmt.Sprintf("Violation Category Number %d With A Fairly Long Name", i),
			Count: 40 - i,
		})
	}
	years := []types.CountEntry{
		{Label: "2023", Count: 11}, {Label: "2024", Count: 17},
		{Label: "2025", Count: 12}, {Label: types.NoYear, Count: 3},
	}
	boroughs := []types.CountEntry{
		{Label: "Queens", Count: 25}, {Label: "Brooklyn", Count: 18},
	}

	chunks := New(mention).Build(Input{
		Aggregate: types.AggregateResult{
			Plate: "ABC1234", State: "NY", TotalCount: 43,
			ByViolation: violations,
			ByYear:      years,
			ByBorough:   boroughs,
		},
	})
	require.Greater(t, len(chunks), 3, "40 long labels must overflow more than once")

	var items []string
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(mention)+1+len(chunk), MaxLength, "chunk over budget: %q", chunk)
		for _, line := range strings.Split(chunk, "\n") {
			if idx := strings.Index(line, "| "); idx >= 0 {
				items = append(items, line[idx+2:])
			}
		}
	}

	var want []string
	for _, e := range violations {
		want = append(want, e.Label)
	}
	for _, e := range years {
		want = append(want, e.Label)
	}
	for _, e := range boroughs {
		want = append(want, e.Label)
	}
	assert.Equal(t, want, items, "items must appear exactly once, in order")
}
