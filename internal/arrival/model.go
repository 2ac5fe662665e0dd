// Package arrival models the waiting time between sightings as an
// exponential process fitted to the historical record.
package arrival

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/salish-sea/orcastat/internal/model"
)

var (
	// ErrInsufficientData is returned when fewer than two distinct
	// timestamps exist, so no interval can be computed.
	ErrInsufficientData = eris.New("arrival: need at least two distinct sighting times")

	// ErrNegativeWait rejects survival queries for negative waiting times.
	ErrNegativeWait = eris.New("arrival: waiting time must be non-negative")
)

// Model is a fitted exponential inter-arrival distribution. Stateless after
// Fit; survival queries never refit it.
type Model struct {
	MeanHours float64 `json:"mean_hours"`
}

// Fit derives the mean inter-arrival time from the sighting history.
// Multiple sightings at the identical recorded instant count once.
func Fit(events []model.Sighting) (Model, error) {
	seen := make(map[int64]struct{}, len(events))
	hours := make([]float64, 0, len(events))
	for _, e := range events {
		ts := e.ObservedAt.Unix()
		if _, ok := seen[ts]; ok {
			continue
		}
		seen[ts] = struct{}{}
		hours = append(hours, float64(ts)/3600.0)
	}

	if len(hours) < 2 {
		return Model{}, ErrInsufficientData
	}
	sort.Float64s(hours)

	sum := 0.0
	for i := 1; i < len(hours); i++ {
		sum += hours[i] - hours[i-1]
	}
	mean := sum / float64(len(hours)-1)

	zap.L().Debug("inter-arrival model fitted",
		zap.Int("distinct_times", len(hours)),
		zap.Float64("mean_hours", mean),
	)
	return Model{MeanHours: mean}, nil
}

// SurvivalProbability returns P(wait > t hours) under the fitted exponential
// distribution, i.e. exp(-t/mean).
func (m Model) SurvivalProbability(t float64) (float64, error) {
	if t < 0 {
		return 0, ErrNegativeWait
	}
	if m.MeanHours <= 0 {
		return 0, eris.New("arrival: model has no positive mean")
	}
	return math.Exp(-t / m.MeanHours), nil
}
