package sightings

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `SightDate,Pod,ActLat,ActLong
06/15/97,J,48.52,-123.15
06/15/97,JK,48.60,-123.01
07/02/98,L,48.40,-122.95
`

func TestLoad(t *testing.T) {
	events, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, events, 3)

	first := events[0]
	assert.Equal(t, time.Date(1997, time.June, 15, 0, 0, 0, 0, time.UTC), first.ObservedAt)
	assert.Equal(t, "J", first.Pods)
	assert.InDelta(t, 48.52, first.Latitude, 1e-12)
	assert.InDelta(t, -123.15, first.Longitude, 1e-12)

	assert.Equal(t, "JK", events[1].Pods)
}

func TestLoad_FourDigitYear(t *testing.T) {
	events, err := Load(strings.NewReader("SightDate,Pod,ActLat,ActLong\n06/15/1997,J,48.5,-123.1\n"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1997, events[0].ObservedAt.Year())
}

func TestLoad_MalformedRowsFailWholeLoad(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"bad latitude", "h,h,h,h\n06/15/97,J,north,-123.15\n"},
		{"bad longitude", "h,h,h,h\n06/15/97,J,48.52,west\n"},
		{"bad date", "h,h,h,h\n15 June 1997,J,48.52,-123.15\n"},
		{"short row", "h,h,h,h\n06/15/97,J,48.52\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Load(strings.NewReader(tt.csv))
			assert.Error(t, err)
			assert.Nil(t, events)
		})
	}
}

func TestLoad_ErrorsNameTheOffendingRow(t *testing.T) {
	// A stray quote makes the CSV reader itself fail on the second row.
	_, err := Load(strings.NewReader("SightDate,Pod,ActLat,ActLong\n06/15/97,\"J\"x,48.52,-123.15\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")

	// Field-level failures carry the row number too.
	_, err = Load(strings.NewReader("SightDate,Pod,ActLat,ActLong\n06/15/97,J,48.52,-123.15\n06/16/97,J,north,-123.15\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestLoad_HeaderOnly(t *testing.T) {
	events, err := Load(strings.NewReader("SightDate,Pod,ActLat,ActLong\n"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLoadFile_EmptyPath(t *testing.T) {
	_, err := LoadFile("")
	assert.Error(t, err)
}

func TestFilterMonth(t *testing.T) {
	events, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	june := FilterMonth(events, time.June)
	require.Len(t, june, 2)
	// Original order is preserved.
	assert.Equal(t, "J", june[0].Pods)
	assert.Equal(t, "JK", june[1].Pods)

	assert.Len(t, FilterMonth(events, time.July), 1)
	assert.Empty(t, FilterMonth(events, time.December))
}
