// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"sort"
	"time"

	"github.com/openplates/platewatch/pkg/types"
)

// cameraViolations is the fixed set of violation names counted toward the
// camera streak.
var cameraViolations = map[string]bool{
	"Failure to Stop at Red Light":       true,
	"School Zone Speed Camera Violation": true,
	"Bus Lane Camera Violation":          true,
}

// IsCameraViolation reports whether name counts toward the camera streak.
func IsCameraViolation(name string) bool {
	return cameraViolations[name]
}

// Streak finds the largest number of camera violations falling within any
// record-anchored rolling-year window [d, d+1y). The result depends only
// on the multiset of dates, not their input order. Returns nil when the
// vehicle has no dated camera violations.
//
// The scan is O(n²) over camera records, fine at per-vehicle volumes of
// tens to low hundreds.
func Streak(records []types.NormalizedViolationRecord) *types.StreakWindow {
	var dates []time.Time
	for _, rec := range records {
		if rec.HasDate && rec.ViolationName != nil && cameraViolations[*rec.ViolationName] {
			dates = append(dates, rec.IssueDate)
		}
	}
	if len(dates) == 0 {
		return nil
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	best := &types.StreakWindow{}
	for i, anchor := range dates {
		limit := anchor.AddDate(1, 0, 0)
		count := 0
		last := anchor
		for _, d := range dates[i:] {
			if !d.Before(limit) {
				break
			}
			count++
			last = d
		}
		if count > best.Count {
			best.Count = count
			best.Start = anchor
			best.End = last
		}
	}
	return best
}
