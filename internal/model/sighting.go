// Package model defines the value types shared by the sighting estimators.
package model

import (
	"time"

	"github.com/twpayne/go-geom"
)

// Sighting is a single recorded observation of the study population.
// Immutable once loaded; every estimator consumes sightings read-only.
type Sighting struct {
	ObservedAt time.Time `json:"observed_at"`
	Pods       string    `json:"pods"` // possibly compound label, e.g. "J" or "JKL"
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
}

// Point returns the sighting's coordinate.
func (s Sighting) Point() GeoPoint {
	return GeoPoint{Latitude: s.Latitude, Longitude: s.Longitude}
}

// GeoPoint is a coordinate in decimal degrees. Value type, no identity.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geom returns the point as a go-geom XY point (lon, lat order), SRID 4326.
func (p GeoPoint) Geom() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}).SetSRID(4326)
}

// BoundingBox is an axis-aligned box in decimal degrees under the flat-earth
// approximation. Non-degenerate boxes satisfy LatMin < LatMax and
// LonMin < LonMax.
type BoundingBox struct {
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
	LonMin float64 `json:"lon_min"`
	LonMax float64 `json:"lon_max"`
}

// BoxAround returns the square of the given half-width centered on p.
func BoxAround(p GeoPoint, halfWidth float64) BoundingBox {
	return BoundingBox{
		LatMin: p.Latitude - halfWidth,
		LatMax: p.Latitude + halfWidth,
		LonMin: p.Longitude - halfWidth,
		LonMax: p.Longitude + halfWidth,
	}
}

// Contains reports whether p lies strictly inside the box. Points on the
// boundary are outside.
func (b BoundingBox) Contains(p GeoPoint) bool {
	return b.LatMin < p.Latitude && p.Latitude < b.LatMax &&
		b.LonMin < p.Longitude && p.Longitude < b.LonMax
}

// Area returns the box area in square degrees.
func (b BoundingBox) Area() float64 {
	return (b.LatMax - b.LatMin) * (b.LonMax - b.LonMin)
}
