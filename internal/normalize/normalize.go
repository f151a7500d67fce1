// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts raw per-source violation records into the
// single shape the merge and aggregation engine consumes: humanized
// violation names, parsed dates, resolved boroughs and categorized fines.
// Normalization anomalies are never fatal; a field that cannot be resolved
// is left unset for merge to fill in from another source.
package normalize

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openplates/platewatch/pkg/types"
)

// Date layouts per source family.
const (
	fiscalYearDateLayout = "2006-01-02T15:04:05.000"
	currentDateLayout    = "01/02/2006"
)

// BoroughResolver is the external geocoding collaborator, consulted only
// when neither precinct nor county resolves a record's borough.
type BoroughResolver interface {
	Resolve(ctx context.Context, street, crossStreet string) (string, error)
}

// Normalizer cleans up raw records field by field.
type Normalizer struct {
	boroughs BoroughResolver
	log      zerolog.Logger
}

// New builds a Normalizer. resolver may be nil, which disables the
// geocoding step of the borough cascade.
func New(resolver BoroughResolver, log zerolog.Logger) *Normalizer {
	return &Normalizer{boroughs: resolver, log: log}
}

// Record normalizes one raw record from its originating source.
func (n *Normalizer) Record(ctx context.Context, raw types.RawViolationRecord) types.NormalizedViolationRecord {
	rec := types.NormalizedViolationRecord{
		SummonsNumber: raw.SummonsNumber,
		Source:        raw.Source,
		ViolationName: violationName(raw.ViolationCode, raw.ViolationDescription),
		Fines:         n.fines(raw),
	}

	if t, ok := n.issueDate(raw); ok {
		rec.HasDate = true
		rec.IssueDate = t
	}

	if b, ok := n.borough(ctx, raw); ok {
		rec.Borough = &b
	}

	return rec
}

// issueDate parses the source-specific date layout. Parse failure leaves
// the record dateless rather than failing it.
func (n *Normalizer) issueDate(raw types.RawViolationRecord) (time.Time, bool) {
	v := strings.TrimSpace(raw.IssueDate)
	if v == "" {
		return time.Time{}, false
	}

	layouts := []string{currentDateLayout, fiscalYearDateLayout}
	if raw.Source == types.SourceFiscalYear {
		layouts = []string{fiscalYearDateLayout, currentDateLayout}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}

	n.log.Debug().
		Str("summons_number", raw.SummonsNumber).
		Str("issue_date", v).
		Msg("unparseable issue date")
	return time.Time{}, false
}

// borough runs the resolution cascade: precinct table, county table, then
// the geocoding collaborator when the record carries a street name.
func (n *Normalizer) borough(ctx context.Context, raw types.RawViolationRecord) (string, bool) {
	if b, ok := boroughFromPrecinct(raw.ViolationPrecinct); ok {
		return b, true
	}
	if b, ok := boroughFromCounty(raw.ViolationCounty); ok {
		return b, true
	}

	street := strings.TrimSpace(raw.StreetName)
	if street == "" || n.boroughs == nil {
		return "", false
	}
	b, err := n.boroughs.Resolve(ctx, street, strings.TrimSpace(raw.IntersectingStreet))
	if err != nil {
		n.log.Debug().
			Err(err).
			Str("summons_number", raw.SummonsNumber).
			Str("street", street).
			Msg("geocode lookup failed")
		return "", false
	}
	return b, b != ""
}

// fineBucket identifies one of the four monetary categories.
type fineBucket int

const (
	bucketFined fineBucket = iota
	bucketReduced
	bucketPaid
	bucketOutstanding
)

// fineFields fixes which raw monetary field feeds which bucket.
var fineFields = []struct {
	name   string
	value  func(types.RawViolationRecord) string
	bucket fineBucket
}{
	{"fine_amount", func(r types.RawViolationRecord) string { return r.FineAmount }, bucketFined},
	{"penalty_amount", func(r types.RawViolationRecord) string { return r.PenaltyAmount }, bucketFined},
	{"interest_amount", func(r types.RawViolationRecord) string { return r.InterestAmount }, bucketFined},
	{"reduction_amount", func(r types.RawViolationRecord) string { return r.ReductionAmount }, bucketReduced},
	{"payment_amount", func(r types.RawViolationRecord) string { return r.PaymentAmount }, bucketPaid},
	{"amount_due", func(r types.RawViolationRecord) string { return r.AmountDue }, bucketOutstanding},
}

// fines walks the fixed monetary field set, summing each into its bucket.
// Unparseable values are logged and skipped.
func (n *Normalizer) fines(raw types.RawViolationRecord) types.FineBreakdown {
	var fb types.FineBreakdown
	for _, f := range fineFields {
		v := strings.TrimSpace(f.value(raw))
		if v == "" {
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimPrefix(v, "$"), 64)
		if err != nil {
			n.log.Warn().
				Str("summons_number", raw.SummonsNumber).
				Str("field", f.name).
				Str("value", v).
				Msg("unparseable monetary value")
			continue
		}
		switch f.bucket {
		case bucketFined:
			fb.Fined += amount
		case bucketReduced:
			fb.Reduced += amount
		case bucketPaid:
			fb.Paid += amount
		case bucketOutstanding:
			fb.Outstanding += amount
		}
	}
	return fb
}
