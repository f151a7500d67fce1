// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate folds normalized records from every source into one
// authoritative violation set and derives the summary statistics: totals,
// per-violation, per-year and per-borough counts, fine buckets and the
// camera violation streak.
package aggregate

import (
	"github.com/openplates/platewatch/pkg/types"
)

// MergedViolationSet maps summons numbers to their merged records while
// remembering first-encountered order, which later breaks aggregation
// ties deterministically.
type MergedViolationSet struct {
	order   []string
	records map[string]types.NormalizedViolationRecord
}

// Merge folds records into a merged set keyed by summons number. Records
// must arrive in source order, current dataset first: when a key repeats,
// the later record's populated fields overlay the earlier record, and a
// field the earlier source set is never erased by a blank in the later one.
func Merge(records []types.NormalizedViolationRecord) *MergedViolationSet {
	set := &MergedViolationSet{records: make(map[string]types.NormalizedViolationRecord)}
	for _, rec := range records {
		if rec.SummonsNumber == "" {
			continue
		}
		existing, ok := set.records[rec.SummonsNumber]
		if !ok {
			set.order = append(set.order, rec.SummonsNumber)
			set.records[rec.SummonsNumber] = rec
			continue
		}
		set.records[rec.SummonsNumber] = overlay(existing, rec)
	}
	return set
}

// overlay produces a new record with later's populated fields over old's.
func overlay(old, later types.NormalizedViolationRecord) types.NormalizedViolationRecord {
	merged := old
	merged.Source = later.Source
	if later.ViolationName != nil {
		merged.ViolationName = later.ViolationName
	}
	if later.HasDate {
		merged.HasDate = true
		merged.IssueDate = later.IssueDate
	}
	if later.Borough != nil {
		merged.Borough = later.Borough
	}
	if later.Fines.Any() {
		merged.Fines = later.Fines
	}
	return merged
}

// Len returns the number of distinct summonses.
func (s *MergedViolationSet) Len() int { return len(s.order) }

// Records returns the merged records in first-encountered order, with the
// placeholder violation name applied to records still missing one after
// the fold. Borough stays nil here; aggregation labels it.
func (s *MergedViolationSet) Records() []types.NormalizedViolationRecord {
	out := make([]types.NormalizedViolationRecord, 0, len(s.order))
	for _, key := range s.order {
		rec := s.records[key]
		if rec.ViolationName == nil {
			name := types.NoViolationDescription
			rec.ViolationName = &name
		}
		out = append(out, rec)
	}
	return out
}
