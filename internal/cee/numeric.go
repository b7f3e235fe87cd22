package cee

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// round2 rounds to 2 decimals, half away from zero on value*100. This is the
// currency-display rounding the original pricing rules expect.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// parseNumber converts an untrusted dynamic-parameter value to a finite
// float64. Strings may use a comma decimal separator ("12,5").
func parseNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		if !isFinite(v) {
			return 0, false
		}
		return v, true
	case float32:
		return parseNumber(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		return parseNumberString(v.String())
	case string:
		return parseNumberString(v)
	default:
		return 0, false
	}
}

func parseNumberString(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if cleaned == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || !isFinite(val) {
		return 0, false
	}
	return val, true
}

// positiveNumber parses raw and additionally requires a strictly positive
// value. Zero and negatives count as absent everywhere in the engine.
func positiveNumber(raw any) (float64, bool) {
	val, ok := parseNumber(raw)
	if !ok || val <= 0 {
		return 0, false
	}
	return val, true
}
