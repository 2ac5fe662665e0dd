package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exploreCSV = `SightDate,Pod,ActLat,ActLong
06/15/97,J,48.52,-123.15
06/16/97,JK,48.52,-123.15
06/17/97,L,48.40,-122.95
07/02/97,K,48.60,-123.00
`

func writeExploreData(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sightings.csv")
	require.NoError(t, os.WriteFile(path, []byte(exploreCSV), 0o644))

	cfg = testConfig()
	cfg.Data.Path = path
}

func TestRunExplore_FullSession(t *testing.T) {
	writeExploreData(t)

	// month 6, keep the computed location, then walk through probability,
	// pod, and a single waiting-time query.
	in := strings.NewReader("6\ny\ny\ny\ny\n0\nn\n")
	var out bytes.Buffer

	require.NoError(t, runExplore(in, &out))

	text := out.String()
	assert.Contains(t, text, "Densest sighting location in June: (48.52, -123.15), 2 historical sightings.")
	assert.Contains(t, text, "Encounter probability here:")
	assert.Contains(t, text, "Most likely pod: J")
	assert.Contains(t, text, "Expected waiting time until the next sighting:")
	assert.Contains(t, text, "You would wait 0.0 or more hours with probability 1.000.")
	assert.Contains(t, text, "Hope you find the whale you are looking for!")
}

func TestRunExplore_RepromptsOnInvalidMonth(t *testing.T) {
	writeExploreData(t)

	// "13" and "soon" are invalid, December has no data; June succeeds.
	// Every other branch is declined.
	in := strings.NewReader("13\nsoon\n12\n6\ny\nn\nn\nn\n")
	var out bytes.Buffer

	require.NoError(t, runExplore(in, &out))

	text := out.String()
	assert.Contains(t, text, "Invalid month.")
	assert.Contains(t, text, "Invalid number.")
	assert.Contains(t, text, "No sightings recorded in December.")
	assert.Contains(t, text, "Densest sighting location in June")
}

func TestRunExplore_CustomLocation(t *testing.T) {
	writeExploreData(t)

	// Decline the computed location and provide coordinates by hand, then
	// ask only for the pod estimate.
	in := strings.NewReader("6\nn\n48.40\n-122.95\nn\ny\nn\n")
	var out bytes.Buffer

	require.NoError(t, runExplore(in, &out))

	assert.Contains(t, out.String(), "Most likely pod:")
}

func TestRunExplore_InputExhausted(t *testing.T) {
	writeExploreData(t)

	// Input ends mid-session; the session exits cleanly.
	in := strings.NewReader("6\n")
	var out bytes.Buffer

	require.NoError(t, runExplore(in, &out))
	assert.Contains(t, out.String(), "Densest sighting location in June")
}
