// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplates/platewatch/pkg/types"
)

type stubLinkChecker struct {
	exists bool
	calls  int
}

func (c *stubLinkChecker) Exists(ctx context.Context, messageID, sourceChannel string) bool {
	c.calls++
	return c.exists
}

func TestComputeDelta(t *testing.T) {
	query := types.PlateQuery{Plate: "ABC1234", State: "NY"}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, s *Store, count int, age time.Duration, messageID string) {
		t.Helper()
		require.NoError(t, s.InsertLookup(context.Background(), &types.StoredLookup{
			Plate: "ABC1234", State: "NY", TicketCount: count, Countable: true,
			MessageID: messageID, SourceChannel: "api", CreatedAt: now.Add(-age),
		}))
	}

	t.Run("no prior lookup", func(t *testing.T) {
		s := testStore(t)
		delta, err := s.ComputeDelta(context.Background(), query, 10, now, nil)
		require.NoError(t, err)
		assert.Nil(t, delta)
	})

	t.Run("nothing new", func(t *testing.T) {
		s := testStore(t)
		seed(t, s, 10, time.Hour, "")
		delta, err := s.ComputeDelta(context.Background(), query, 10, now, nil)
		require.NoError(t, err)
		assert.Nil(t, delta)
	})

	t.Run("count went down", func(t *testing.T) {
		s := testStore(t)
		seed(t, s, 10, time.Hour, "")
		delta, err := s.ComputeDelta(context.Background(), query, 8, now, nil)
		require.NoError(t, err)
		assert.Nil(t, delta)
	})

	t.Run("prior lookup too recent", func(t *testing.T) {
		s := testStore(t)
		seed(t, s, 10, 2*time.Minute, "")
		delta, err := s.ComputeDelta(context.Background(), query, 12, now, nil)
		require.NoError(t, err)
		assert.Nil(t, delta)
	})

	t.Run("reportable delta", func(t *testing.T) {
		s := testStore(t)
		seed(t, s, 10, time.Hour, "")
		delta, err := s.ComputeDelta(context.Background(), query, 13, now, nil)
		require.NoError(t, err)
		require.NotNil(t, delta)
		assert.Equal(t, 3, delta.NewViolations)
		assert.Equal(t, 10, delta.Previous.TicketCount)
		assert.False(t, delta.IncludeLink)
	})

	t.Run("link confirmed", func(t *testing.T) {
		s := testStore(t)
		seed(t, s, 10, time.Hour, "msg-42")
		links := &stubLinkChecker{exists: true}
		delta, err := s.ComputeDelta(context.Background(), query, 13, now, links)
		require.NoError(t, err)
		require.NotNil(t, delta)
		assert.True(t, delta.IncludeLink)
		assert.Equal(t, 1, links.calls)
	})

	t.Run("link gone", func(t *testing.T) {
		s := testStore(t)
		seed(t, s, 10, time.Hour, "msg-42")
		delta, err := s.ComputeDelta(context.Background(), query, 13, now, &stubLinkChecker{exists: false})
		require.NoError(t, err)
		require.NotNil(t, delta)
		assert.False(t, delta.IncludeLink)
	})

	t.Run("link not consulted for quiet delta", func(t *testing.T) {
		s := testStore(t)
		seed(t, s, 10, time.Hour, "msg-42")
		links := &stubLinkChecker{exists: true}
		delta, err := s.ComputeDelta(context.Background(), query, 10, now, links)
		require.NoError(t, err)
		assert.Nil(t, delta)
		assert.Zero(t, links.calls)
	})
}

func TestEligibilityFlags(t *testing.T) {
	tests := []struct {
		name      string
		streak    *types.StreakWindow
		abatement bool
		seizure   bool
	}{
		{"no streak", nil, false, false},
		{"below both", &types.StreakWindow{Count: 14}, false, false},
		{"at abatement", &types.StreakWindow{Count: 15}, true, false},
		{"between", &types.StreakWindow{Count: 24}, true, false},
		{"at seizure", &types.StreakWindow{Count: 25}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abatement, seizure := EligibilityFlags(tt.streak)
			assert.Equal(t, tt.abatement, abatement)
			assert.Equal(t, tt.seizure, seizure)
		})
	}
}
