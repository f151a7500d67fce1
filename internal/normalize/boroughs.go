// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strconv"
	"strings"
)

// Borough names as rendered in aggregates.
const (
	BoroughManhattan    = "Manhattan"
	BoroughBronx        = "The Bronx"
	BoroughBrooklyn     = "Brooklyn"
	BoroughQueens       = "Queens"
	BoroughStatenIsland = "Staten Island"
)

// precinctBoroughs maps NYPD precinct number ranges to boroughs.
type precinctRange struct {
	low, high int
	borough   string
}

var precinctBoroughs = []precinctRange{
	{1, 34, BoroughManhattan},
	{40, 52, BoroughBronx},
	{60, 94, BoroughBrooklyn},
	{100, 115, BoroughQueens},
	{120, 123, BoroughStatenIsland},
}

// countyBoroughs maps the county spellings observed across the datasets
// to boroughs.
var countyBoroughs = map[string]string{
	"MAN":      BoroughManhattan,
	"MH":       BoroughManhattan,
	"MN":       BoroughManhattan,
	"NEWY":     BoroughManhattan,
	"NEW Y":    BoroughManhattan,
	"NY":       BoroughManhattan,
	"BRONX":    BoroughBronx,
	"BX":       BoroughBronx,
	"BK":       BoroughBrooklyn,
	"K":        BoroughBrooklyn,
	"KING":     BoroughBrooklyn,
	"KINGS":    BoroughBrooklyn,
	"Q":        BoroughQueens,
	"QN":       BoroughQueens,
	"QNS":      BoroughQueens,
	"QUEEN":    BoroughQueens,
	"R":        BoroughStatenIsland,
	"RICH":     BoroughStatenIsland,
	"RICHMOND": BoroughStatenIsland,
	"ST":       BoroughStatenIsland,
}

// boroughFromPrecinct resolves a precinct string to a borough. Precinct 0
// means "unknown" in the datasets and never resolves.
func boroughFromPrecinct(precinct string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(precinct))
	if err != nil || n <= 0 {
		return "", false
	}
	for _, r := range precinctBoroughs {
		if n >= r.low && n <= r.high {
			return r.borough, true
		}
	}
	return "", false
}

// boroughFromCounty resolves a county code to a borough.
func boroughFromCounty(county string) (string, bool) {
	b, ok := countyBoroughs[strings.ToUpper(strings.TrimSpace(county))]
	return b, ok
}
