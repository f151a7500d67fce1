// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures passed between pipeline
// stages: vehicle references, plate queries, violation records, aggregates
// and stage configuration.
package types

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// VehicleReference is one candidate vehicle extracted from free text. A
// reference is immutable once built; invalid references keep the original
// text so the caller can produce a targeted help message.
type VehicleReference struct {
	OriginalText string   `json:"original_text" yaml:"original_text"`
	Plate        string   `json:"plate,omitempty" yaml:"plate,omitempty"`
	State        string   `json:"state,omitempty" yaml:"state,omitempty"`
	PlateTypes   []string `json:"plate_types,omitempty" yaml:"plate_types,omitempty"`
	Valid        bool     `json:"valid" yaml:"valid"`
}

// Identity returns the plate+state key used to deduplicate references.
// Plate types are part of the identity: a typed reference for the same
// plate is kept alongside a typeless one, not discarded.
func (v VehicleReference) Identity() string {
	return NormalizePlate(v.Plate) + ":" + strings.ToUpper(v.State) + ":" + NormalizePlateTypes(v.PlateTypes)
}

// PlateQuery is the normalized input to the source query layer.
type PlateQuery struct {
	Plate       string    `json:"plate" yaml:"plate"`
	State       string    `json:"state" yaml:"state"`
	PlateTypes  string    `json:"plate_types,omitempty" yaml:"plate_types,omitempty"`
	AsOf        time.Time `json:"as_of" yaml:"as_of"`
	RequesterID string    `json:"requester_id,omitempty" yaml:"requester_id,omitempty"`
}

// NewPlateQuery builds a normalized PlateQuery from a valid reference.
// Normalization is idempotent: building a query from an already-normalized
// reference yields the same plate, state and type list.
func NewPlateQuery(ref VehicleReference, asOf time.Time, requesterID string) PlateQuery {
	return PlateQuery{
		Plate:       NormalizePlate(ref.Plate),
		State:       strings.ToUpper(strings.TrimSpace(ref.State)),
		PlateTypes:  NormalizePlateTypes(ref.PlateTypes),
		AsOf:        asOf,
		RequesterID: requesterID,
	}
}

// TypeList splits the normalized comma-joined type set back into a slice.
// Returns nil when no types are present.
func (q PlateQuery) TypeList() []string {
	if q.PlateTypes == "" {
		return nil
	}
	return strings.Split(q.PlateTypes, ",")
}

// NormalizePlate upper-cases the plate and strips every non-alphanumeric
// character.
func NormalizePlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(plate) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePlateTypes upper-cases, de-duplicates and sorts the type codes,
// then joins them with commas. Empty components are dropped.
func NormalizePlateTypes(codes []string) string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}
