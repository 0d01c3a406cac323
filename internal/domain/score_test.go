package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  int
		max  int
		want float64
	}{
		{"zero raw", 0, 20, 0},
		{"perfect grammar", 20, 20, 50},
		{"perfect reading writing", 24, 24, 50},
		{"perfect listening", 12, 12, 50},
		{"half grammar", 10, 20, 25},
		{"partial reading writing", 7, 24, 7.0 / 24.0 * 50.0},
		{"zero max degrades to zero", 5, 0, 0},
		{"negative max degrades to zero", 5, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Normalize(tt.raw, tt.max), 1e-9)
		})
	}
}

func TestNormalizeMonotonic(t *testing.T) {
	prev := -1.0
	for raw := 0; raw <= 24; raw++ {
		got := Normalize(raw, 24)
		assert.Greater(t, got, prev, "raw %d", raw)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, ScaleMax)
		prev = got
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{14.5833333, 14.6},
		{16.666666, 16.7},
		{0, 0},
		{50, 50},
		{12.04, 12.0},
		{12.05, 12.1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round1(tt.in), 1e-9, "Round1(%v)", tt.in)
	}
}
