// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

// stateAbbreviations is the closed set of registration regions accepted as
// a plate's state: US states and DC, US territories, Canadian provinces and
// territories, plus the non-standard codes the violation datasets use
// (99 unknown, DP diplomat, FO foreign, GV government, MX Mexico, NF
// Newfoundland legacy).
var stateAbbreviations = map[string]bool{
	"99": true, "AB": true, "AK": true, "AL": true, "AR": true,
	"AZ": true, "BC": true, "CA": true, "CO": true, "CT": true,
	"DC": true, "DE": true, "DP": true, "FL": true, "FM": true,
	"FO": true, "GA": true, "GU": true, "GV": true, "HI": true,
	"IA": true, "ID": true, "IL": true, "IN": true, "KS": true,
	"KY": true, "LA": true, "MA": true, "MB": true, "MD": true,
	"ME": true, "MI": true, "MN": true, "MO": true, "MP": true,
	"MS": true, "MT": true, "MX": true, "NB": true, "NC": true,
	"ND": true, "NE": true, "NF": true, "NH": true, "NJ": true,
	"NM": true, "NS": true, "NT": true, "NV": true, "NY": true,
	"OH": true, "OK": true, "ON": true, "OR": true, "PA": true,
	"PE": true, "PR": true, "PW": true, "QC": true, "RI": true,
	"SC": true, "SD": true, "SK": true, "TN": true, "TX": true,
	"UT": true, "VA": true, "VI": true, "VT": true, "WA": true,
	"WI": true, "WV": true, "WY": true, "YT": true,
}

// IsValidState reports whether abbr (case-insensitive) is a recognized
// state, province or territory code.
func IsValidState(abbr string) bool {
	return stateAbbreviations[upper(abbr)]
}
