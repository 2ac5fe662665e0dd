package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-geom"
)

func TestBoxAround(t *testing.T) {
	b := BoxAround(GeoPoint{Latitude: 48.5, Longitude: -123.0}, 1.0)

	assert.InDelta(t, 47.5, b.LatMin, 1e-12)
	assert.InDelta(t, 49.5, b.LatMax, 1e-12)
	assert.InDelta(t, -124.0, b.LonMin, 1e-12)
	assert.InDelta(t, -122.0, b.LonMax, 1e-12)
}

func TestBoundingBox_Contains(t *testing.T) {
	b := BoundingBox{LatMin: 47.0, LatMax: 49.0, LonMin: -124.0, LonMax: -122.0}

	tests := []struct {
		name     string
		point    GeoPoint
		expected bool
	}{
		{"inside", GeoPoint{48.0, -123.0}, true},
		{"outside latitude", GeoPoint{50.0, -123.0}, false},
		{"outside longitude", GeoPoint{48.0, -120.0}, false},
		{"on latitude boundary is outside", GeoPoint{49.0, -123.0}, false},
		{"on longitude boundary is outside", GeoPoint{48.0, -124.0}, false},
		{"corner is outside", GeoPoint{47.0, -124.0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, b.Contains(tt.point))
		})
	}
}

func TestBoundingBox_Area(t *testing.T) {
	b := BoundingBox{LatMin: 47.0, LatMax: 49.0, LonMin: -124.0, LonMax: -123.0}
	assert.InDelta(t, 2.0, b.Area(), 1e-12)

	degenerate := BoundingBox{LatMin: 47.0, LatMax: 47.0, LonMin: -124.0, LonMax: -123.0}
	assert.Zero(t, degenerate.Area())
}

func TestGeoPoint_Geom(t *testing.T) {
	g := GeoPoint{Latitude: 48.52, Longitude: -123.15}.Geom()

	assert.Equal(t, geom.XY, g.Layout())
	assert.Equal(t, 4326, g.SRID())
	// go-geom points are (x, y) = (lon, lat).
	assert.InDelta(t, -123.15, g.X(), 1e-12)
	assert.InDelta(t, 48.52, g.Y(), 1e-12)
}
