// Package pod estimates which sub-population a nearby sighting most likely
// belongs to, using add-one smoothed counts over contemporaneous events.
package pod

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/salish-sea/orcastat/internal/model"
)

// DefaultLabels are the known pods of the study population.
var DefaultLabels = []string{"J", "K", "L"}

// ErrNoPods is returned for an empty label set. That is a configuration bug,
// not a data condition.
var ErrNoPods = eris.New("pod: at least one pod label is required")

// Distribution maps pod label to smoothed probability. Entries sum to 1 and
// every label has probability > 0.
type Distribution map[string]float64

// Classify counts sightings within the daily-range box of candidate by pod
// label and returns the smoothed distribution and its mode.
//
// A sighting's label may be compound ("JKL" names three pods at once); every
// pod contained in the label is credited, while the grand total grows by one
// per sighting regardless of how many pods matched. Ties for the mode go to
// the earlier label in pods order.
func Classify(events []model.Sighting, candidate model.GeoPoint, pods []string, dailyRange float64) (Distribution, string, error) {
	if len(pods) == 0 {
		return nil, "", ErrNoPods
	}
	if dailyRange <= 0 {
		dailyRange = 1.0
	}

	bounds := model.BoxAround(candidate, dailyRange)

	// Laplace add-one smoothing: every pod starts at one, and the total
	// starts at the number of pods.
	counts := make(map[string]int, len(pods))
	for _, p := range pods {
		counts[p] = 1
	}
	total := len(pods)

	for _, e := range events {
		if !bounds.Contains(e.Point()) {
			continue
		}
		total++
		for _, p := range pods {
			if strings.Contains(e.Pods, p) {
				counts[p]++
			}
		}
	}

	dist := make(Distribution, len(pods))
	mode := pods[0]
	for _, p := range pods {
		dist[p] = float64(counts[p]) / float64(total)
		if counts[p] > counts[mode] {
			mode = p
		}
	}

	return dist, mode, nil
}
