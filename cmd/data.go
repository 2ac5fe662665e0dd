package main

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/salish-sea/orcastat/internal/model"
	"github.com/salish-sea/orcastat/internal/sightings"
)

// parseMonth validates a 1-12 month number from a flag or prompt.
func parseMonth(m int) (time.Month, error) {
	if m < 1 || m > 12 {
		return 0, eris.Errorf("month must be 1-12, got %d", m)
	}
	return time.Month(m), nil
}

// monthEvents loads the cleaned dataset and filters it to the given month.
func monthEvents(month time.Month) ([]model.Sighting, error) {
	events, err := sightings.LoadFile(cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	return sightings.FilterMonth(events, month), nil
}
