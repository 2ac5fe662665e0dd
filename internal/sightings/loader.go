// Package sightings loads and filters the sighting event record.
package sightings

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/salish-sea/orcastat/internal/model"
)

// dateLayouts are the accepted date formats, most common first. The archive
// records dates as MM/DD/YY.
var dateLayouts = []string{"01/02/06", "01/02/2006"}

// Load reads sighting rows from r. Each row is
// date, pod label, latitude, longitude; the first row is a header and is
// skipped. A malformed field fails the whole load: silently dropping rows
// would bias the density and classification estimates.
func Load(r io.Reader) ([]model.Sighting, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validated per row below

	var events []model.Sighting
	row := 0
	for {
		row++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "sightings: read row %d", row)
		}
		if row == 1 {
			// header
			continue
		}

		s, err := parseRow(record)
		if err != nil {
			return nil, eris.Wrapf(err, "sightings: row %d", row)
		}
		events = append(events, s)
	}

	zap.L().Debug("sightings loaded", zap.Int("count", len(events)))
	return events, nil
}

// LoadFile opens path and loads it with Load. The path is configuration
// supplied by the caller, never a baked-in constant.
func LoadFile(path string) ([]model.Sighting, error) {
	if path == "" {
		return nil, eris.New("sightings: data path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "sightings: open %s", path)
	}
	defer func() { _ = f.Close() }()

	events, err := Load(f)
	if err != nil {
		return nil, eris.Wrapf(err, "sightings: load %s", path)
	}
	return events, nil
}

func parseRow(record []string) (model.Sighting, error) {
	if len(record) < 4 {
		return model.Sighting{}, eris.Errorf("expected 4 fields, got %d", len(record))
	}

	observedAt, err := parseDate(strings.TrimSpace(record[0]))
	if err != nil {
		return model.Sighting{}, err
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return model.Sighting{}, eris.Wrapf(err, "parse latitude %q", record[2])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return model.Sighting{}, eris.Wrapf(err, "parse longitude %q", record[3])
	}

	return model.Sighting{
		ObservedAt: observedAt,
		Pods:       strings.TrimSpace(record[1]),
		Latitude:   lat,
		Longitude:  lon,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("parse date %q", s)
}

// FilterMonth returns the sightings observed in the given month, in their
// original order.
func FilterMonth(events []model.Sighting, month time.Month) []model.Sighting {
	var out []model.Sighting
	for _, e := range events {
		if e.ObservedAt.Month() == month {
			out = append(out, e)
		}
	}
	return out
}
