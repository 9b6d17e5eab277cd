package utils

import "testing"

func TestNormalizeTruckNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{" trk-100 ", "TRK100"},
		{"TRK 100", "TRK100"},
		{"trk100", "TRK100"},
		{"  ", ""},
		{"a-b c-d", "ABCD"},
	}
	for _, tt := range tests {
		if got := NormalizeTruckNumber(tt.raw); got != tt.want {
			t.Errorf("NormalizeTruckNumber(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
