// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Violation record sources. Fiscal-year data is authoritative: when the
// same summons number appears in both sources, the fiscal-year record's
// non-empty fields overlay the current-dataset record during merge.
const (
	SourceOpenParkingCamera = "open_parking_and_camera_violations"
	SourceFiscalYear        = "fiscal_year_parking_violations"
)

// RawViolationRecord is one row from one data source before normalization.
// Field names mirror the Socrata column names; each source family populates
// a different subset.
type RawViolationRecord struct {
	Source        string `json:"source"`
	SummonsNumber string `json:"summons_number"`

	// Violation naming. Fiscal-year rows carry a numeric code, the
	// current dataset carries a free-text description.
	ViolationCode        string `json:"violation_code,omitempty"`
	ViolationDescription string `json:"violation,omitempty"`

	// Dates. IssueDate layout differs per source; ViolationTime is
	// unused by aggregation but kept for completeness.
	IssueDate     string `json:"issue_date,omitempty"`
	ViolationTime string `json:"violation_time,omitempty"`

	// Location fields for the borough resolution cascade.
	ViolationPrecinct  string `json:"violation_precinct,omitempty"`
	ViolationCounty    string `json:"county,omitempty"`
	StreetName         string `json:"street_name,omitempty"`
	IntersectingStreet string `json:"intersecting_street,omitempty"`

	// Monetary fields (current dataset only).
	FineAmount      string `json:"fine_amount,omitempty"`
	PenaltyAmount   string `json:"penalty_amount,omitempty"`
	InterestAmount  string `json:"interest_amount,omitempty"`
	ReductionAmount string `json:"reduction_amount,omitempty"`
	PaymentAmount   string `json:"payment_amount,omitempty"`
	AmountDue       string `json:"amount_due,omitempty"`
}

// NormalizedViolationRecord is the shape every source converges to. A nil
// ViolationName or Borough means the source had nothing usable; merge may
// still fill it from another source before aggregation applies placeholders.
type NormalizedViolationRecord struct {
	SummonsNumber string
	Source        string
	ViolationName *string
	HasDate       bool
	IssueDate     time.Time
	Borough       *string
	Fines         FineBreakdown
}

// FineBreakdown holds the four monetary buckets. Sources do not guarantee
// fined >= reduced; downstream code must not assume it.
type FineBreakdown struct {
	Fined       float64 `json:"fined" yaml:"fined"`
	Reduced     float64 `json:"reduced" yaml:"reduced"`
	Paid        float64 `json:"paid" yaml:"paid"`
	Outstanding float64 `json:"outstanding" yaml:"outstanding"`
}

// Add accumulates another breakdown into this one.
func (f *FineBreakdown) Add(other FineBreakdown) {
	f.Fined += other.Fined
	f.Reduced += other.Reduced
	f.Paid += other.Paid
	f.Outstanding += other.Outstanding
}

// Any reports whether any bucket is non-zero.
func (f FineBreakdown) Any() bool {
	return f.Fined != 0 || f.Reduced != 0 || f.Paid != 0 || f.Outstanding != 0
}
