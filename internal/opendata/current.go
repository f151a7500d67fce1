// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package opendata

import (
	"context"

	"github.com/openplates/platewatch/pkg/types"
)

// currentResourceID is the Open Parking and Camera Violations dataset.
// It carries every open summons regardless of issue year, with monetary
// fields the fiscal-year datasets lack.
const currentResourceID = "nc67-uf89"

// CurrentDataset queries the Open Parking and Camera Violations dataset.
type CurrentDataset struct {
	client *Client
}

// Name returns the dataset identifier.
func (d *CurrentDataset) Name() string { return "open_parking_and_camera_violations" }

// opcvRow mirrors the dataset's column names.
type opcvRow struct {
	SummonsNumber   string `json:"summons_number"`
	Plate           string `json:"plate"`
	State           string `json:"state"`
	LicenseType     string `json:"license_type"`
	IssueDate       string `json:"issue_date"`
	Violation       string `json:"violation"`
	ViolationTime   string `json:"violation_time"`
	Precinct        string `json:"precinct"`
	County          string `json:"county"`
	FineAmount      string `json:"fine_amount"`
	PenaltyAmount   string `json:"penalty_amount"`
	InterestAmount  string `json:"interest_amount"`
	ReductionAmount string `json:"reduction_amount"`
	PaymentAmount   string `json:"payment_amount"`
	AmountDue       string `json:"amount_due"`
}

// Fetch queries the dataset for one plate.
func (d *CurrentDataset) Fetch(ctx context.Context, q types.PlateQuery) ([]types.RawViolationRecord, error) {
	where := soqlAnd(
		soqlEq("plate", q.Plate),
		soqlEq("state", q.State),
		typeConstraint("license_type", q),
	)
	query := buildURL(d.client.base+currentResourceID+".json", d.client.queryParams(where))

	var rows []opcvRow
	if err := d.client.getJSON(ctx, d.Name(), query, &rows); err != nil {
		return nil, err
	}

	records := make([]types.RawViolationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, types.RawViolationRecord{
			Source:               types.SourceOpenParkingCamera,
			SummonsNumber:        row.SummonsNumber,
			ViolationDescription: row.Violation,
			IssueDate:            row.IssueDate,
			ViolationTime:        row.ViolationTime,
			ViolationPrecinct:    row.Precinct,
			ViolationCounty:      row.County,
			FineAmount:           row.FineAmount,
			PenaltyAmount:        row.PenaltyAmount,
			InterestAmount:       row.InterestAmount,
			ReductionAmount:      row.ReductionAmount,
			PaymentAmount:        row.PaymentAmount,
			AmountDue:            row.AmountDue,
		})
	}
	return records, nil
}

// typeConstraint renders the server-side plate type filter, a logical OR
// across the comma-separated codes. Empty when the query has no types.
func typeConstraint(field string, q types.PlateQuery) string {
	typeList := q.TypeList()
	if len(typeList) == 0 {
		return ""
	}
	return soqlIn(field, typeList)
}
