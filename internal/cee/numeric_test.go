package cee

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 12.5, 12.5, true},
		{"int", 8, 8, true},
		{"int64", int64(9), 9, true},
		{"string", "150", 150, true},
		{"comma decimal", "12,5", 12.5, true},
		{"padded string", "  33.1  ", 33.1, true},
		{"json number", json.Number("4.2"), 4.2, true},
		{"negative", -5.0, -5, true},
		{"text", "abc", 0, false},
		{"empty string", "", 0, false},
		{"nan", math.NaN(), 0, false},
		{"infinity", math.Inf(-1), 0, false},
		{"nil", nil, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseNumber(tc.in)
			if ok != tc.ok {
				t.Fatalf("parseNumber(%v): ok = %v, expected %v", tc.in, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("parseNumber(%v) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestPositiveNumber_RejectsZeroAndNegative(t *testing.T) {
	for _, in := range []any{0.0, "0", -1.0, "-12,5"} {
		if _, ok := positiveNumber(in); ok {
			t.Fatalf("positiveNumber(%v) should be absent", in)
		}
	}
	if v, ok := positiveNumber("0,5"); !ok || v != 0.5 {
		t.Fatalf("positiveNumber(0,5) = %v/%v", v, ok)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, out float64
	}{
		{33.333333, 33.33},
		{33.336, 33.34},
		{2000, 2000},
		{0.125, 0.13},
		{199.999, 200},
	}
	for _, tc := range cases {
		if got := round2(tc.in); got != tc.out {
			t.Fatalf("round2(%v) = %v, expected %v", tc.in, got, tc.out)
		}
	}
}
