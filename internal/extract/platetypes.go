// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "strings"

// plateTypeCodes is the closed set of plate type codes the violation
// datasets recognize (passenger, commercial, medallion, livery, the many
// organizational and legislative series).
var plateTypeCodes = map[string]bool{
	"AGC": true, "AGR": true, "AMB": true, "APP": true, "ARG": true,
	"ATD": true, "ATV": true, "AYG": true, "BOB": true, "BOT": true,
	"CBS": true, "CCK": true, "CHC": true, "CLG": true, "CMB": true,
	"CME": true, "CMH": true, "COM": true, "CSP": true, "DLR": true,
	"FAR": true, "FPW": true, "GAC": true, "GSM": true, "HAC": true,
	"HAM": true, "HIR": true, "HIS": true, "HOU": true, "HSM": true,
	"IRP": true, "ITP": true, "JCA": true, "JCL": true, "JSC": true,
	"JWV": true, "LMA": true, "LMB": true, "LMC": true, "LOC": true,
	"LTR": true, "LUA": true, "MCD": true, "MCL": true, "MED": true,
	"MOT": true, "NLM": true, "NYA": true, "NYC": true, "NYS": true,
	"OMF": true, "OML": true, "OMO": true, "OMR": true, "OMS": true,
	"OMT": true, "OMV": true, "ORC": true, "ORG": true, "ORM": true,
	"PAS": true, "PHS": true, "PPH": true, "PSD": true, "RGC": true,
	"RGL": true, "SCL": true, "SEM": true, "SNO": true, "SOS": true,
	"SPC": true, "SPO": true, "SRF": true, "SRN": true, "STA": true,
	"STG": true, "SUP": true, "THC": true, "TOW": true, "TRA": true,
	"TRC": true, "TRL": true, "USC": true, "USS": true, "VAS": true,
	"VPL": true, "WUG": true,
}

// IsValidPlateType reports whether code (case-insensitive) is a recognized
// plate type code.
func IsValidPlateType(code string) bool {
	return plateTypeCodes[upper(code)]
}

// IsValidPlateTypeList reports whether a comma-separated list of type codes
// contains at least one recognized code. A mixed list of valid and invalid
// components still counts as valid.
func IsValidPlateTypeList(list string) bool {
	for _, part := range strings.Split(list, ",") {
		if IsValidPlateType(strings.TrimSpace(part)) {
			return true
		}
	}
	return false
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
