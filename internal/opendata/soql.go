// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package opendata

import (
	"net/url"
	"sort"
	"strings"
)

// SoQL clause construction. The dataset APIs are sensitive to the exact
// shape of these strings, so composition is fully deterministic: fixed
// clause order inside $where, url.Values encoding for parameter order.

// soqlQuote wraps a value in single quotes, doubling embedded quotes.
func soqlQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// soqlIn renders a field in('A','B') membership test. Values are sorted
// so the clause is stable regardless of input order.
func soqlIn(field string, values []string) string {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)

	quoted := make([]string, len(sorted))
	for i, v := range sorted {
		quoted[i] = soqlQuote(v)
	}
	return field + " in(" + strings.Join(quoted, ",") + ")"
}

// soqlAnd joins clauses with " and ", skipping empty ones.
func soqlAnd(clauses ...string) string {
	var kept []string
	for _, c := range clauses {
		if c != "" {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, " and ")
}

// soqlEq renders a field = 'value' equality test.
func soqlEq(field, value string) string {
	return field + " = " + soqlQuote(value)
}

// buildURL assembles endpoint?params with deterministic parameter order.
func buildURL(endpoint string, params url.Values) string {
	return endpoint + "?" + params.Encode()
}
