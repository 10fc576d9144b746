package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		delta                  float64
	}{
		{name: "same point", lat1: 55.75, lon1: 37.61, lat2: 55.75, lon2: 37.61, want: 0, delta: 1e-9},
		{name: "one degree on the equator", lat1: 0, lon1: 0, lat2: 0, lon2: 1, want: 111.19492664455873, delta: 1e-6},
		{name: "london to paris", lat1: 51.5074, lon1: -0.1278, lat2: 48.8566, lon2: 2.3522, want: 343.5, delta: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2), tt.delta)
		})
	}
}

func TestDistanceKmIsSymmetric(t *testing.T) {
	a := DistanceKm(59.93, 30.33, 55.75, 37.61)
	b := DistanceKm(55.75, 37.61, 59.93, 30.33)
	assert.InDelta(t, a, b, 1e-9)
}
