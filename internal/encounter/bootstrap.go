// Package encounter estimates the local probability of a sighting by
// inflating nearby point observations into small areas and refining the
// analytic area ratio with a Monte Carlo bootstrap.
//
// The analytic weight sums inflated areas without deduplicating overlaps, so
// clustered sightings double-count. That is a modeling approximation the
// method is defined with, not an oversight.
package encounter

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/salish-sea/orcastat/internal/model"
)

// Defaults, in decimal degrees. One degree is roughly 111 km at
// mid-latitudes: the daily range covers how far the subject plausibly roams
// in a day, and the point radius is the visibility footprint of a single
// observation.
const (
	DefaultDailyRange  = 1.0
	DefaultPointRadius = 0.01
	DefaultTrials      = 100000
)

// Config tunes the estimator. Zero values fall back to the defaults above.
type Config struct {
	DailyRange  float64 `yaml:"daily_range" mapstructure:"daily_range"`
	PointRadius float64 `yaml:"point_radius" mapstructure:"point_radius"`
	Trials      int     `yaml:"trials" mapstructure:"trials"`
	Seed        int64   `yaml:"seed" mapstructure:"seed"` // 0 = time-based
}

// Estimator runs the area bootstrap. It owns its random source; a nonzero
// seed makes results reproducible.
type Estimator struct {
	dailyRange  float64
	pointRadius float64
	trials      int
	rng         *rand.Rand
}

// NewEstimator builds an estimator from cfg, applying defaults for unset
// fields.
func NewEstimator(cfg Config) *Estimator {
	if cfg.DailyRange <= 0 {
		cfg.DailyRange = DefaultDailyRange
	}
	if cfg.PointRadius <= 0 {
		cfg.PointRadius = DefaultPointRadius
	}
	if cfg.Trials <= 0 {
		cfg.Trials = DefaultTrials
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Estimator{
		dailyRange:  cfg.DailyRange,
		pointRadius: cfg.PointRadius,
		trials:      cfg.Trials,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Probability estimates the chance of an encounter at candidate given the
// nearby sighting history. It never returns exactly zero: Laplace smoothing
// floors the estimate at 1/(trials+1).
func (e *Estimator) Probability(candidate model.GeoPoint, nearby []model.Sighting) float64 {
	bounds := model.BoxAround(candidate, e.dailyRange)
	sight := model.BoxAround(candidate, e.pointRadius)

	// Re-validate: only events strictly inside the daily-range box count,
	// even when the caller has already pre-filtered.
	eventArea := 0.0
	inBounds := 0
	pointArea := model.BoxAround(model.GeoPoint{}, e.pointRadius).Area()
	for _, s := range nearby {
		if bounds.Contains(s.Point()) {
			eventArea += pointArea
			inBounds++
		}
	}

	// Marginal chance that a uniform point in the daily-range box lands in
	// any inflated sighting square. Areas are summed, not unioned.
	p := 0.0
	if sample := bounds.Area(); sample > 0 {
		p = eventArea / sample
	}

	hits := 0
	for i := 0; i < e.trials; i++ {
		if e.rng.Float64() > p {
			continue
		}
		point := model.GeoPoint{
			Latitude:  bounds.LatMin + e.rng.Float64()*(bounds.LatMax-bounds.LatMin),
			Longitude: bounds.LonMin + e.rng.Float64()*(bounds.LonMax-bounds.LonMin),
		}
		if sight.Contains(point) {
			hits++
		}
	}

	prob := float64(hits+1) / float64(e.trials+1)
	zap.L().Debug("encounter probability estimated",
		zap.Float64("lat", candidate.Latitude),
		zap.Float64("lon", candidate.Longitude),
		zap.Int("nearby", inBounds),
		zap.Float64("analytic_weight", p),
		zap.Int("hits", hits),
		zap.Float64("probability", prob),
	)
	return prob
}

// Trials reports the configured trial count, useful when interpreting the
// smoothing floor 1/(trials+1).
func (e *Estimator) Trials() int { return e.trials }
