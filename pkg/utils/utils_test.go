package utils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{
			name:  "finite number",
			input: 123.45,
			want:  true,
		},
		{
			name:  "infinity",
			input: math.Inf(1),
			want:  false,
		},
		{
			name:  "negative infinity",
			input: math.Inf(-1),
			want:  false,
		},
		{
			name:  "NaN",
			input: math.NaN(),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsFinite(tt.input)
			if got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToDecimal(t *testing.T) {
	got, err := ToDecimal(7.25)
	if err != nil {
		t.Fatalf("ToDecimal() error = %v", err)
	}
	if !got.Equal(decimal.RequireFromString("7.25")) {
		t.Errorf("ToDecimal() = %s, want 7.25", got)
	}

	if _, err := ToDecimal(math.NaN()); err == nil {
		t.Error("expected error for NaN")
	}
}

func TestFormatLira(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0,00 TL"},
		{"999", "999,00 TL"},
		{"1000", "1.000,00 TL"},
		{"535000", "535.000,00 TL"},
		{"1234567.5", "1.234.567,50 TL"},
		{"-2500.333", "-2.500,33 TL"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FormatLira(decimal.RequireFromString(tt.input))
			if got != tt.want {
				t.Errorf("FormatLira() = %q, want %q", got, tt.want)
			}
		})
	}
}
