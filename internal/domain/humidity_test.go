package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func magnus(t, td float64) float64 {
	return 100 * math.Exp((17.625*td)/(243.04+td)-(17.625*t)/(243.04+t))
}

func TestRelativeHumidity(t *testing.T) {
	tests := []struct {
		name string
		air  float64
		dew  float64
	}{
		{"typical", 25, 12},
		{"coolest and most humid", 23, 16},
		{"warmest and driest", 28, 7},
		{"fractional", 24.5, 13.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeHumidity(tt.air, tt.dew)
			assert.Equal(t, math.Round(magnus(tt.air, tt.dew)*100)/100, math.Round(got*100)/100)
			assert.InDelta(t, magnus(tt.air, tt.dew), got, 1e-9)
		})
	}
}

func TestRelativeHumidity_Saturated(t *testing.T) {
	assert.InDelta(t, 100.0, RelativeHumidity(20, 20), 1e-9)
}

func TestRelativeHumidity_NotClamped(t *testing.T) {
	// Dew point above air temperature is supersaturated and stays above 100.
	assert.Greater(t, RelativeHumidity(20, 25), 100.0)
}

func TestRelativeHumidity_MonotonicInDewPoint(t *testing.T) {
	prev := RelativeHumidity(25, MinDewPoint)
	for dew := MinDewPoint + 0.5; dew <= MaxDewPoint; dew += 0.5 {
		cur := RelativeHumidity(25, dew)
		assert.Greater(t, cur, prev)
		prev = cur
	}
}
