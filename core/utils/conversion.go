package utils

import (
	"math"
	"strconv"
	"strings"
)

// ToFloat parses a cell value as a float64.
// It trims surrounding whitespace and rejects empty strings, NaN and Inf.
func ToFloat(val string) (float64, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether the value parses as a finite number.
func IsNumeric(val string) bool {
	_, ok := ToFloat(val)
	return ok
}

// ToNumber converts a numeric cell into the narrowest JSON friendly value.
// Whole numbers become int64, everything else float64.
func ToNumber(val string) (any, bool) {
	f, ok := ToFloat(val)
	if !ok {
		return nil, false
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f), true
	}
	return f, true
}
