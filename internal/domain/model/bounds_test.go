package model

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestViewportBounds_ContainsIsInclusive(t *testing.T) {
	b := ViewportBounds{South: 34.60, North: 34.70, West: 135.10, East: 135.30}

	assert.True(t, b.Contains(34.65, 135.20))
	assert.True(t, b.Contains(34.60, 135.10), "南西の角")
	assert.True(t, b.Contains(34.70, 135.30), "北東の角")
	assert.False(t, b.Contains(34.80, 135.20), "北側の外")
	assert.False(t, b.Contains(34.65, 135.31), "東側の外")
	assert.False(t, b.Contains(34.5999, 135.20), "南側の外")
}

func TestViewportBounds_BoundConversion(t *testing.T) {
	b := ViewportBounds{South: 34.6, North: 34.7, West: 135.1, East: 135.3}

	bound := b.ToBound()
	assert.Equal(t, orb.Point{135.1, 34.6}, bound.Min)
	assert.Equal(t, orb.Point{135.3, 34.7}, bound.Max)
	assert.Equal(t, b, NewViewportBoundsFromBound(bound))
}

func TestViewportBounds_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bounds  ViewportBounds
		wantErr bool
	}{
		{"正常", ViewportBounds{South: 34.6, North: 34.7, West: 135.1, East: 135.3}, false},
		{"点（幅ゼロ）", ViewportBounds{South: 34.6, North: 34.6, West: 135.1, East: 135.1}, false},
		{"南北逆転", ViewportBounds{South: 34.7, North: 34.6, West: 135.1, East: 135.3}, true},
		{"東西逆転", ViewportBounds{South: 34.6, North: 34.7, West: 135.3, East: 135.1}, true},
		{"緯度範囲外", ViewportBounds{South: -91, North: 34.7, West: 135.1, East: 135.3}, true},
		{"経度範囲外", ViewportBounds{South: 34.6, North: 34.7, West: 135.1, East: 181}, true},
		{"NaN", ViewportBounds{South: math.NaN(), North: 34.7, West: 135.1, East: 135.3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bounds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestViewportBounds_String(t *testing.T) {
	b := ViewportBounds{South: 1, North: 2, West: 3, East: 4}
	assert.Equal(t, "POLYGON((3 1,4 1,4 2,3 2,3 1))", b.String())
}
