// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"sort"
	"strconv"

	"github.com/openplates/platewatch/pkg/types"
)

// Result computes the full aggregate for one vehicle from its merged
// violation set. The aggregate is recomputed from scratch on every query,
// never updated incrementally.
func Result(q types.PlateQuery, set *MergedViolationSet) types.AggregateResult {
	records := set.Records()

	result := types.AggregateResult{
		Plate:      q.Plate,
		State:      q.State,
		PlateTypes: q.PlateTypes,
		TotalCount: len(records),
	}

	violations := newCounter()
	years := newCounter()
	boroughs := newCounter()

	for _, rec := range records {
		violations.add(*rec.ViolationName)

		if rec.HasDate {
			years.add(strconv.Itoa(rec.IssueDate.Year()))
		} else {
			years.add(types.NoYear)
		}

		if rec.Borough != nil {
			boroughs.add(*rec.Borough)
		} else {
			boroughs.add(types.NoBorough)
		}

		result.Fines.Add(rec.Fines)
	}

	result.ByViolation = violations.byCountDesc()
	result.ByYear = years.byLabelAsc()
	result.ByBorough = boroughs.byCountDesc()
	result.CameraStreak = Streak(records)

	return result
}

// counter tallies labels while preserving first-encountered order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// byCountDesc returns entries descending by count, ties broken by
// first-encountered order.
func (c *counter) byCountDesc() []types.CountEntry {
	entries := c.entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// byLabelAsc returns entries ascending by label. The no-year placeholder
// sorts after the numeric year labels.
func (c *counter) byLabelAsc() []types.CountEntry {
	entries := c.entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Label < entries[j].Label
	})
	return entries
}

func (c *counter) entries() []types.CountEntry {
	entries := make([]types.CountEntry, 0, len(c.order))
	for _, label := range c.order {
		entries = append(entries, types.CountEntry{Label: label, Count: c.counts[label]})
	}
	return entries
}
