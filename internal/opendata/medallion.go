// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package opendata

import (
	"context"
	"regexp"
	"sort"

	"github.com/openplates/platewatch/pkg/types"
)

// medallionResourceID is the Medallion Drivers - Active dataset, which maps
// taxi medallion license numbers to current DMV plates.
const medallionResourceID = "rhe8-mgbb"

// medallionPattern matches the strict medallion shape: digit, letter, two
// digits (e.g. "5Y12"). Only plates of this shape trigger the resolver.
var medallionPattern = regexp.MustCompile(`^\d[A-Z]\d{2}$`)

// IsMedallion reports whether the normalized plate has the medallion shape.
func IsMedallion(plate string) bool {
	return medallionPattern.MatchString(plate)
}

type medallionRow struct {
	DMVLicensePlateNumber string `json:"dmv_license_plate_number"`
}

// ResolveMedallion translates a medallion license number into the DMV
// plate used by the violation datasets. For non-medallion plates, or when
// the resolver finds nothing, the query is returned unchanged. When the
// dataset returns several plates the lexicographically-last one wins, the
// most recently issued in DMV numbering.
func (c *Client) ResolveMedallion(ctx context.Context, q types.PlateQuery) (types.PlateQuery, error) {
	if !IsMedallion(q.Plate) {
		return q, nil
	}

	params := c.queryParams(soqlEq("license_number", q.Plate))
	params.Set("$select", "dmv_license_plate_number")
	params.Set("$group", "dmv_license_plate_number")
	params.Set("$order", "dmv_license_plate_number")
	query := buildURL(c.base+medallionResourceID+".json", params)

	var rows []medallionRow
	if err := c.getJSON(ctx, "medallion_drivers_active", query, &rows); err != nil {
		return q, err
	}

	var plates []string
	for _, row := range rows {
		if row.DMVLicensePlateNumber != "" {
			plates = append(plates, types.NormalizePlate(row.DMVLicensePlateNumber))
		}
	}
	if len(plates) == 0 {
		return q, nil
	}

	sort.Strings(plates)
	q.Plate = plates[len(plates)-1]
	return q, nil
}
