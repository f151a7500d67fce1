// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package opendata

import (
	"testing"

	"github.com/openplates/platewatch/pkg/types"
)

func TestSoqlQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "ABC1234", "'ABC1234'"},
		{"embedded quote", "O'NEIL", "'O''NEIL'"},
		{"empty", "", "''"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := soqlQuote(tt.in); got != tt.want {
				t.Errorf("soqlQuote(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSoqlIn_SortedAndQuoted(t *testing.T) {
	got := soqlIn("plate_type", []string{"PAS", "COM"})
	want := "plate_type in('COM','PAS')"
	if got != want {
		t.Errorf("soqlIn() = %q, want %q", got, want)
	}
}

func TestSoqlAnd_SkipsEmpty(t *testing.T) {
	got := soqlAnd("a = 'x'", "", "b = 'y'")
	want := "a = 'x' and b = 'y'"
	if got != want {
		t.Errorf("soqlAnd() = %q, want %q", got, want)
	}
}

func TestTypeConstraint(t *testing.T) {
	q := types.PlateQuery{Plate: "ABC1234", State: "NY", PlateTypes: "COM,PAS"}
	got := typeConstraint("license_type", q)
	want := "license_type in('COM','PAS')"
	if got != want {
		t.Errorf("typeConstraint() = %q, want %q", got, want)
	}

	if got := typeConstraint("license_type", types.PlateQuery{Plate: "ABC1234"}); got != "" {
		t.Errorf("typeConstraint() without types = %q, want empty", got)
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   FailureClass
	}{
		{301, FailureRedirect},
		{404, FailureClient},
		{500, FailureServer},
		{503, FailureServer},
		{0, FailureUnknown},
		{200, FailureUnknown},
	}
	for _, tt := range tests {
		if got := ClassifyStatus(tt.status); got != tt.want {
			t.Errorf("ClassifyStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestIsMedallion(t *testing.T) {
	tests := []struct {
		plate string
		want  bool
	}{
		{"5Y12", true},
		{"1A00", true},
		{"ABC1234", false},
		{"5y12", false},
		{"55Y12", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsMedallion(tt.plate); got != tt.want {
			t.Errorf("IsMedallion(%q) = %v, want %v", tt.plate, got, tt.want)
		}
	}
}
