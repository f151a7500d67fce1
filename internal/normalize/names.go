// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"
)

// Static violation-name translation tables, one per source family. Both
// map raw dataset values onto a single humanized vocabulary so records
// from different sources merge cleanly.

// fiscalYearCodeNames maps the fiscal-year datasets' numeric violation
// codes to humanized names.
var fiscalYearCodeNames = map[string]string{
	"1":  "Failure to Display Bus Permit",
	"2":  "Failure to Display Operator Information",
	"3":  "Unauthorized Passenger Pick-Up",
	"4":  "Bus Parking in Lower Manhattan",
	"5":  "Bus Lane Violation",
	"6":  "Overnight Tractor Trailer Parking",
	"7":  "Failure to Stop at Red Light",
	"8":  "Idling",
	"9":  "Obstructing Traffic or Intersection",
	"10": "No Stopping",
	"11": "No Standing - Hotel Loading",
	"12": "No Standing - Snow Emergency",
	"13": "No Standing - Taxi Stand",
	"14": "No Standing",
	"16": "No Standing - Truck Loading",
	"17": "No Parking - Except Authorized Vehicles",
	"18": "No Standing - Bus Lane",
	"19": "No Standing - Bus Stop",
	"20": "No Parking",
	"21": "No Parking - Street Cleaning",
	"22": "No Parking - Except Hotel Loading",
	"23": "No Parking - Taxi Stand",
	"24": "No Parking - Except Authorized Vehicles",
	"25": "No Standing - Commuter Van Stop",
	"26": "No Standing - For Hire Vehicle Stop",
	"27": "No Parking - Except Disability Permit",
	"28": "Overtime Standing - Diplomat",
	"29": "Altered Intercity Bus Permit",
	"30": "No Stopping/Standing",
	"31": "No Standing - Commercial Meter Zone",
	"32": "Overtime Parking at Missing or Broken Meter",
	"33": "Feeding Meter",
	"35": "Selling or Offering Merchandise From Metered Parking",
	"36": "School Zone Speed Camera Violation",
	"37": "Expired Meter",
	"38": "Failure to Display Meter Receipt",
	"39": "Overtime Parking - Time Limit Posted",
	"40": "Fire Hydrant",
	"42": "Expired Meter - Commercial Meter Zone",
	"43": "Expired Meter - Commercial Meter Zone",
	"44": "Overtime Parking - Commercial Meter Zone",
	"45": "No Stopping - Traffic Lane",
	"46": "Double Parking",
	"47": "Double Parking - Midtown Commercial Zone",
	"48": "Blocking Bike Lane",
	"49": "Stopping or Standing Alongside Vehicle",
	"50": "Blocking Crosswalk",
	"51": "Parked on Sidewalk",
	"52": "Intersection",
	"53": "No Standing - Safety Zone",
	"55": "Overtime Parking in Tunnel or on Elevated Highway",
	"56": "Divided Highway",
	"57": "Blue Zone",
	"58": "Marginal Street or Waterfront",
	"59": "Angle Parking - Commercial Vehicle",
	"60": "Angle Parking",
	"61": "Wrong Way on One-Way Street",
	"62": "Beyond Marked Space",
	"63": "Nighttime Standing or Parking in a Park",
	"64": "No Standing - Consul or Diplomat",
	"65": "Overtime Standing - Consul or Diplomat",
	"66": "Detached Trailer",
	"67": "Blocking Pedestrian Ramp",
	"68": "Not Parallel to Curb",
	"69": "Failure to Display Meter Receipt",
	"70": "Registration Sticker Expired or Missing",
	"71": "Inspection Sticker Expired or Missing",
	"72": "Inspection Sticker Mutilated or Counterfeit",
	"73": "Registration Sticker Mutilated or Counterfeit",
	"74": "Front or Back Plate Missing",
	"75": "Plate Improperly Displayed",
	"76": "Overnight Parking of Tractor Trailer",
	"77": "Parked Bus Outside Bus Stop",
	"78": "Nighttime Parking on Residential Street - Commercial Vehicle",
	"79": "Bus Parking Outside Designated Area",
	"80": "Missing Equipment",
	"81": "No Standing - Except Diplomat",
	"82": "Unaltered Commercial Vehicle",
	"83": "Improper Registration",
	"84": "Platform Lifts in Lowered Position",
	"85": "Storage - Three Hour Commercial",
	"86": "Midtown Parking or Standing - Three Hour Limit",
	"89": "No Standing - Except Trucks in Garment District",
	"91": "Vehicle for Sale (Dealers Only)",
	"92": "Washing or Repairing Vehicle",
	"93": "Repairing Vehicle on Street",
	"96": "Railroad Crossing",
	"98": "Obstructing Driveway",
	"99": "Other",
}

// currentDescriptionNames maps the current dataset's free-text violation
// descriptions to the same humanized vocabulary. "BUS LANE VIOLATION" in
// this dataset is the camera-issued ticket, distinct from the
// officer-issued fiscal-year code 5.
var currentDescriptionNames = map[string]string{
	"ANGLE PARKING":                  "Angle Parking",
	"BEYOND MARKED SPACE":            "Beyond Marked Space",
	"BIKE LANE":                      "Blocking Bike Lane",
	"BLUE ZONE":                      "Blue Zone",
	"BUS LANE VIOLATION":             "Bus Lane Camera Violation",
	"COMML PLATES-UNALTERED VEHICLE": "Unaltered Commercial Vehicle",
	"CROSSWALK":                      "Blocking Crosswalk",
	"DETACHED TRAILER":               "Detached Trailer",
	"DIVIDED HIGHWAY":                "Divided Highway",
	"DOUBLE PARKING":                 "Double Parking",
	"DOUBLE PARKING-MIDTOWN COMML":   "Double Parking - Midtown Commercial Zone",
	"ELEVATED/DIVIDED HIGHWAY/TUNNL": "Overtime Parking in Tunnel or on Elevated Highway",
	"EXPIRED METER":                  "Expired Meter",
	"EXPIRED METER-COMM METER ZONE":  "Expired Meter - Commercial Meter Zone",
	"EXPIRED MUNI METER":             "Expired Meter",
	"EXPIRED MUNI MTR-COMM MTR ZN":   "Expired Meter - Commercial Meter Zone",
	"FAIL TO DISP. MUNI METER RECPT": "Failure to Display Meter Receipt",
	"FAIL TO DSPLY MUNI METER RECPT": "Failure to Display Meter Receipt",
	"FAILURE TO DISPLAY BUS PERMIT":  "Failure to Display Bus Permit",
	"FAILURE TO STOP AT RED LIGHT":   "Failure to Stop at Red Light",
	"FEEDING METER":                  "Feeding Meter",
	"FIRE HYDRANT":                   "Fire Hydrant",
	"FRONT OR BACK PLATE MISSING":    "Front or Back Plate Missing",
	"IDLING":                         "Idling",
	"IMPROPER REGISTRATION":          "Improper Registration",
	"INSP. STICKER-EXPIRED/MISSING":  "Inspection Sticker Expired or Missing",
	"INSP STICKER-MUTILATED/C'FEIT":  "Inspection Sticker Mutilated or Counterfeit",
	"INTERSECTION":                   "Intersection",
	"MARGINAL STREET/WATER FRONT":    "Marginal Street or Waterfront",
	"MIDTOWN PKG OR STD-3HR LIMIT":   "Midtown Parking or Standing - Three Hour Limit",
	"MISSING EQUIPMENT":              "Missing Equipment",
	"NGHT PKG ON RESID STR-COMM VEH": "Nighttime Parking on Residential Street - Commercial Vehicle",
	"NIGHTTIME STD/ PKG IN A PARK":   "Nighttime Standing or Parking in a Park",
	"NO MATCH-PLATE/STICKER":         "No Match - Plate/Reg. Sticker",
	"NO PARKING-DAY/TIME LIMITS":     "No Parking - Day/Time Limits",
	"NO PARKING-EXC. AUTH. VEHICLE":  "No Parking - Except Authorized Vehicles",
	"NO PARKING-EXC. HOTEL LOADING":  "No Parking - Except Hotel Loading",
	"NO PARKING-STREET CLEANING":     "No Parking - Street Cleaning",
	"NO STANDING-BUS LANE":           "No Standing - Bus Lane",
	"NO STANDING-BUS STOP":           "No Standing - Bus Stop",
	"NO STANDING-COMM METER ZONE":    "No Standing - Commercial Meter Zone",
	"NO STANDING-COMMUTER VAN STOP":  "No Standing - Commuter Van Stop",
	"NO STANDING-DAY/TIME LIMITS":    "No Standing - Day/Time Limits",
	"NO STANDING-EXC. AUTH. VEHICLE": "No Standing - Except Authorized Vehicles",
	"NO STANDING-EXC. TRUCK LOADING": "No Standing - Truck Loading",
	"NO STANDING-FOR HIRE VEH STOP":  "No Standing - For Hire Vehicle Stop",
	"NO STANDING-HOTEL LOADING":      "No Standing - Hotel Loading",
	"NO STANDING-SAFETY ZONE":        "No Standing - Safety Zone",
	"NO STANDING-SNOW EMERGENCY":     "No Standing - Snow Emergency",
	"NO STANDING-TAXI STAND":         "No Standing - Taxi Stand",
	"NO STD(EXC TRKS/GMTDST NO-TRK)": "No Standing - Except Trucks in Garment District",
	"NO STOP/STANDNG EXCEPT PAS P/U": "No Stopping/Standing Except Passenger Pick-Up",
	"NO STOPPING-DAY/TIME LIMITS":    "No Stopping - Day/Time Limits",
	"NON-COMPLIANCE W/ POSTED SIGN":  "Non-Compliance with Posted Sign",
	"NOT PARALLEL TO CURB":           "Not Parallel to Curb",
	"OBSTRUCTING DRIVEWAY":           "Obstructing Driveway",
	"OBSTRUCTING TRAFFIC/INTERSECT":  "Obstructing Traffic or Intersection",
	"OT PARKING-MISSING/BROKEN METR": "Overtime Parking at Missing or Broken Meter",
	"OTHER":                          "Other",
	"OVERNIGHT TRACTOR TRAILER PKG":  "Overnight Tractor Trailer Parking",
	"OVERTIME PKG-TIME LIMIT POSTED": "Overtime Parking - Time Limit Posted",
	"OVERTIME STANDING DP":           "Overtime Standing - Diplomat",
	"PEDESTRIAN RAMP":                "Blocking Pedestrian Ramp",
	"PHTO SCHOOL ZN SPEED VIOLATION": "School Zone Speed Camera Violation",
	"PKG IN EXC. OF LIM-COMM MTR ZN": "Overtime Parking - Commercial Meter Zone",
	"PLTFRM LFTS LWRD POS COMM VEH":  "Platform Lifts in Lowered Position",
	"RAILROAD CROSSING":              "Railroad Crossing",
	"REG. STICKER-EXPIRED/MISSING":   "Registration Sticker Expired or Missing",
	"REG STICKER-MUTILATED/C'FEIT":   "Registration Sticker Mutilated or Counterfeit",
	"REMOVE/REPLACE FLAT TIRE":       "Repairing Vehicle on Street",
	"SAFETY ZONE":                    "No Standing - Safety Zone",
	"SELLING/OFFERING MCHNDSE-METER": "Selling or Offering Merchandise From Metered Parking",
	"SIDEWALK":                       "Parked on Sidewalk",
	"STORAGE-3HR COMMERCIAL":         "Storage - Three Hour Commercial",
	"TRAFFIC LANE":                   "No Stopping - Traffic Lane",
	"UNAUTHORIZED PASSENGER PICK-UP": "Unauthorized Passenger Pick-Up",
	"VEH-SALE/WSHNG/RPRNG/DRIVEWAY":  "Washing or Repairing Vehicle",
	"VEHICLE FOR SALE(DEALERS ONLY)": "Vehicle for Sale (Dealers Only)",
	"WASH/REPAIR VEHCL-REPAIR ONLY":  "Repairing Vehicle on Street",
	"WRONG WAY":                      "Wrong Way on One-Way Street",
}

// codePrefixPattern strips a leading numeric code from descriptions like
// "21-No Parking (street cleaning)" when no table entry matches.
var codePrefixPattern = regexp.MustCompile(`^\d+\s*-\s*`)

// violationName resolves a raw code or description to a humanized name.
// Returns nil when the record carries nothing usable, so a later source
// can still fill the name in during merge.
func violationName(code, description string) *string {
	if code != "" {
		code = strings.TrimLeft(strings.TrimSpace(code), "0")
		if name, ok := fiscalYearCodeNames[code]; ok {
			return &name
		}
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}
	if name, ok := currentDescriptionNames[strings.ToUpper(description)]; ok {
		return &name
	}

	// Unknown description: best effort, drop any numeric code prefix.
	fallback := codePrefixPattern.ReplaceAllString(description, "")
	if fallback == "" {
		return nil
	}
	return &fallback
}
