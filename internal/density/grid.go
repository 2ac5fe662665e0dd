// Package density bins sightings into a discretized coordinate grid and
// reports the cell with the highest historical count.
package density

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/salish-sea/orcastat/internal/model"
)

// DefaultScale discretizes coordinates to 1/100 of a degree, roughly 1.1 km
// bins at mid-latitudes.
const DefaultScale = 100.0

// ErrNoSightings is returned when no events match the caller's filter. The
// caller should surface it as "no data for that period", not as zero density.
var ErrNoSightings = eris.New("density: no sightings for period")

// ErrInvalidScale rejects a non-positive grid scale. That is a configuration
// bug, not a data condition.
var ErrInvalidScale = eris.New("density: scale must be positive")

// Peak is the grid cell with the maximum sighting count, expressed as the
// cell's real-world coordinate.
type Peak struct {
	Location model.GeoPoint `json:"location"`
	Count    int            `json:"count"`
}

type cell struct {
	lat, lon int
}

// PeakLocation bins the given sightings at the given scale and returns the
// densest cell. Counts are kept in a sparse map; the coordinate range never
// materializes as a dense grid. Ties go to the cell whose maximum count was
// reached first in input order.
func PeakLocation(events []model.Sighting, scale float64) (Peak, error) {
	if scale <= 0 {
		return Peak{}, ErrInvalidScale
	}
	if len(events) == 0 {
		return Peak{}, ErrNoSightings
	}

	counts := make(map[cell]int, len(events))
	var best cell
	bestCount := 0

	for _, e := range events {
		c := cell{
			lat: int(math.Round(e.Latitude * scale)),
			lon: int(math.Round(e.Longitude * scale)),
		}
		counts[c]++
		// Strict > keeps the first cell to reach the running maximum.
		if counts[c] > bestCount {
			bestCount = counts[c]
			best = c
		}
	}

	peak := Peak{
		Location: model.GeoPoint{
			Latitude:  float64(best.lat) / scale,
			Longitude: float64(best.lon) / scale,
		},
		Count: bestCount,
	}

	zap.L().Debug("density peak located",
		zap.Float64("lat", peak.Location.Latitude),
		zap.Float64("lon", peak.Location.Longitude),
		zap.Int("count", peak.Count),
		zap.Int("cells", len(counts)),
	)
	return peak, nil
}
