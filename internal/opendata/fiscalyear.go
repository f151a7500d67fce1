// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package opendata

import (
	"context"
	"fmt"

	"github.com/openplates/platewatch/pkg/types"
)

// fiscalYearDatasets maps each historical fiscal year to its resource id.
// Each year is a distinct endpoint with an identical schema.
var fiscalYearDatasets = map[int]string{
	2019: "faiq-9dfq",
	2020: "p7t3-5i9s",
	2021: "kvfd-bves",
	2022: "7mxj-7a6y",
	2023: "869v-vr48",
	2024: "pvqr-7yc4",
}

// FiscalYearDataset queries one year-partitioned Parking Violations
// Issued dataset.
type FiscalYearDataset struct {
	client     *Client
	Year       int
	ResourceID string
}

// Name returns the dataset identifier.
func (d *FiscalYearDataset) Name() string {
	return fmt.Sprintf("fiscal_year_%d_parking_violations", d.Year)
}

// fiscalYearRow mirrors the dataset's column names.
type fiscalYearRow struct {
	SummonsNumber      string `json:"summons_number"`
	PlateID            string `json:"plate_id"`
	RegistrationState  string `json:"registration_state"`
	PlateType          string `json:"plate_type"`
	IssueDate          string `json:"issue_date"`
	ViolationCode      string `json:"violation_code"`
	ViolationPrecinct  string `json:"violation_precinct"`
	ViolationCounty    string `json:"violation_county"`
	StreetName         string `json:"street_name"`
	IntersectingStreet string `json:"intersecting_street"`
}

// Fetch queries the dataset for one plate.
func (d *FiscalYearDataset) Fetch(ctx context.Context, q types.PlateQuery) ([]types.RawViolationRecord, error) {
	where := soqlAnd(
		soqlEq("plate_id", q.Plate),
		soqlEq("registration_state", q.State),
		typeConstraint("plate_type", q),
	)
	query := buildURL(d.client.base+d.ResourceID+".json", d.client.queryParams(where))

	var rows []fiscalYearRow
	if err := d.client.getJSON(ctx, d.Name(), query, &rows); err != nil {
		return nil, err
	}

	records := make([]types.RawViolationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, types.RawViolationRecord{
			Source:             types.SourceFiscalYear,
			SummonsNumber:      row.SummonsNumber,
			ViolationCode:      row.ViolationCode,
			IssueDate:          row.IssueDate,
			ViolationPrecinct:  row.ViolationPrecinct,
			ViolationCounty:    row.ViolationCounty,
			StreetName:         row.StreetName,
			IntersectingStreet: row.IntersectingStreet,
		})
	}
	return records, nil
}
