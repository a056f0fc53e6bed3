package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
		ok   bool
	}{
		{"Integer", "10", 10, true},
		{"Padded", " 5 ", 5, true},
		{"Decimal", "2.5", 2.5, true},
		{"Negative", "-3", -3, true},
		{"Empty", "", 0, false},
		{"Text", "Gorakhpur", 0, false},
		{"NaN", "NaN", 0, false},
		{"Inf", "Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToNumber(t *testing.T) {
	v, ok := ToNumber("15")
	assert.True(t, ok)
	assert.Equal(t, int64(15), v)

	v, ok = ToNumber("1.5")
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	_, ok = ToNumber("UP")
	assert.False(t, ok)
}
