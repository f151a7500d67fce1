// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract parses free-text message tokens into candidate vehicle
// references. Two independent strategies scan (possibly different)
// tokenizations of the same message and their outputs are concatenated;
// the caller deduplicates. Extraction never fails: unparseable input
// yields zero results or an invalid reference carrying the original text.
package extract

import (
	"strings"

	"github.com/openplates/platewatch/pkg/types"
)

// Legacy key-value markers. Tokens starting with these belong to the
// legacy strategy and are rejected by the colon-tuple strategy.
const (
	markerState = "state:"
	markerPlate = "plate:"
	markerTypes = "types:"
)

// References runs both strategies and concatenates their output.
// tokens feeds the colon-tuple strategy, legacyTokens the key-value one;
// channel adapters may hand the same slice to both.
func References(tokens, legacyTokens []string) []types.VehicleReference {
	refs := ColonTuples(tokens)
	if legacy, ok := LegacyKeyValue(legacyTokens); ok {
		refs = append(refs, legacy)
	}
	return refs
}

// ColonTuples scans tokens for 2-to-3-part colon-joined vehicle
// references such as "ny:hme1234" or "ny:t605174c:pas,com". A candidate
// containing "://" or a legacy marker is skipped entirely.
func ColonTuples(tokens []string) []types.VehicleReference {
	var refs []types.VehicleReference
	for _, tok := range tokens {
		if !strings.Contains(tok, ":") || strings.Contains(tok, "://") {
			continue
		}
		lower := strings.ToLower(tok)
		if strings.Contains(lower, markerState) || strings.Contains(lower, markerPlate) {
			continue
		}

		parts := strings.Split(tok, ":")
		if len(parts) < 2 || len(parts) > 3 {
			continue
		}
		if hasEmptyPart(parts) {
			continue
		}

		switch len(parts) {
		case 2:
			refs = append(refs, fromPair(tok, parts[0], parts[1]))
		case 3:
			refs = append(refs, fromTriple(tok, parts))
		}
	}
	return refs
}

// fromPair infers which of the two parts is the state: exactly one part
// must match the state set. If neither or both match, the reference is
// invalid and carries only the original text.
func fromPair(original, a, b string) types.VehicleReference {
	aState, bState := IsValidState(a), IsValidState(b)
	if aState == bState {
		return types.VehicleReference{OriginalText: original}
	}
	state, plate := a, b
	if bState {
		state, plate = b, a
	}
	return types.VehicleReference{
		OriginalText: original,
		Plate:        plate,
		State:        upper(state),
		Valid:        true,
	}
}

// fromTriple assigns the three parts to state, plate and plate types. One
// part must match the state set; of the remaining two, the types slot is
// whichever holds a recognized type list, preferring the trailing part.
// When neither remaining part is a recognized type list, the part next to
// the state becomes a typeless plate and the leftover part is dropped.
// Multiple state-matching parts are tried in order until one leaves an
// assignment with a usable plate.
func fromTriple(original string, parts []string) types.VehicleReference {
	for i, p := range parts {
		if !IsValidState(p) {
			continue
		}
		rest := make([]string, 0, 2)
		for j, q := range parts {
			if j != i {
				rest = append(rest, q)
			}
		}

		var plate, typeList string
		switch {
		case IsValidPlateTypeList(rest[1]):
			plate, typeList = rest[0], rest[1]
		case IsValidPlateTypeList(rest[0]):
			plate, typeList = rest[1], rest[0]
		default:
			plate = rest[0]
			if i == len(parts)-1 {
				plate = rest[1]
			}
		}
		if types.NormalizePlate(plate) == "" {
			continue
		}

		return types.VehicleReference{
			OriginalText: original,
			Plate:        plate,
			State:        upper(p),
			PlateTypes:   splitTypes(typeList),
			Valid:        true,
		}
	}
	return types.VehicleReference{OriginalText: original}
}

// LegacyKeyValue scans tokens for the literal markers "state:", "plate:"
// and "types:" and builds one candidate from whichever keys are present.
// The second return is false when no marker appears at all. The candidate
// is valid only when a recognized state and a non-empty plate were both
// found; otherwise the partial fields are kept so the caller can tell a
// wrong-looking state from a blank plate.
func LegacyKeyValue(tokens []string) (types.VehicleReference, bool) {
	var (
		ref   types.VehicleReference
		found []string
	)
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		switch {
		case strings.HasPrefix(lower, markerState):
			ref.State = upper(tok[len(markerState):])
			found = append(found, tok)
		case strings.HasPrefix(lower, markerPlate):
			ref.Plate = tok[len(markerPlate):]
			found = append(found, tok)
		case strings.HasPrefix(lower, markerTypes):
			ref.PlateTypes = splitTypes(tok[len(markerTypes):])
			found = append(found, tok)
		}
	}
	if len(found) == 0 {
		return types.VehicleReference{}, false
	}

	ref.OriginalText = strings.Join(found, " ")
	ref.Valid = IsValidState(ref.State) && types.NormalizePlate(ref.Plate) != ""
	return ref, true
}

// Deduplicate drops references repeating an earlier plate+state+types
// identity, preserving first-encountered order. A typed reference is a
// different identity from a typeless one for the same plate, so both
// survive.
func Deduplicate(refs []types.VehicleReference) []types.VehicleReference {
	seen := make(map[string]bool)
	out := make([]types.VehicleReference, 0, len(refs))
	for _, r := range refs {
		if !r.Valid {
			out = append(out, r)
			continue
		}
		key := r.Identity()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// Hashtags returns the distinct #-prefixed tokens in first-encountered
// order, lowercased with the marker stripped.
func Hashtags(tokens []string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, tok := range tokens {
		if !strings.HasPrefix(tok, "#") || len(tok) < 2 {
			continue
		}
		tag := strings.ToLower(strings.TrimRight(tok[1:], ".,!?"))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func hasEmptyPart(parts []string) bool {
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return true
		}
	}
	return false
}

func splitTypes(list string) []string {
	var out []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, upper(p))
		}
	}
	return out
}
