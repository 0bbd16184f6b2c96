package utils

import "testing"

func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want IdentifierKind
	}{
		{"N999XY", TailNumber},
		{"n12345", TailNumber},
		{"N1", TailNumber},
		{" N738SP ", TailNumber},
		{"G-ABCD", TailNumber},
		{"VH-ZXA", TailNumber},
		{"UA123", FlightNumber},
		{"ua 123", FlightNumber},
		{"NK456", FlightNumber},
		{"B61234", FlightNumber},
		{"9W404", FlightNumber},
		{"SWA1234", FlightNumber},
		{"12345", Unknown},
		{"N1234567", Unknown},
		{"hello world", Unknown},
		{"", Unknown},
	}
	for _, tc := range tests {
		if got := ClassifyIdentifier(tc.in); got != tc.want {
			t.Errorf("ClassifyIdentifier(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	if got := NormalizeIdentifier(" n 738 sp\t"); got != "N738SP" {
		t.Errorf("NormalizeIdentifier = %q", got)
	}
}
