package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/salish-sea/orcastat/internal/arrival"
	"github.com/salish-sea/orcastat/internal/density"
	"github.com/salish-sea/orcastat/internal/encounter"
	"github.com/salish-sea/orcastat/internal/model"
	"github.com/salish-sea/orcastat/internal/pod"
	"github.com/salish-sea/orcastat/internal/sightings"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactive session: location, probability, pod, and waiting time",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExplore(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)

	// Keep asking until a month has data. Invalid input re-prompts in a
	// plain loop; there is no recursion to grow.
	var month time.Month
	var events []model.Sighting
	for {
		m, ok := promptInt(sc, out, "What month are you looking for a whale? 1-12: ")
		if !ok {
			return nil // input closed
		}
		parsed, err := parseMonth(m)
		if err != nil {
			fmt.Fprintln(out, "Invalid month. Try again please.")
			continue
		}

		filtered, err := monthEvents(parsed)
		if err != nil {
			return err
		}
		if len(filtered) == 0 {
			fmt.Fprintf(out, "No sightings recorded in %s. Try a warmer time of year.\n", parsed)
			continue
		}
		month = parsed
		events = filtered
		break
	}

	peak, err := density.PeakLocation(events, cfg.Density.Scale)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Densest sighting location in %s: (%.2f, %.2f), %d historical sightings.\n",
		month, peak.Location.Latitude, peak.Location.Longitude, peak.Count)

	// The caller may prefer their own coordinates over the computed peak.
	location := peak.Location
	if !promptYes(sc, out, "Use this location? Y/N: ") {
		for {
			lat, ok := promptFloat(sc, out, "Latitude: ")
			if !ok {
				return nil
			}
			lon, ok := promptFloat(sc, out, "Longitude: ")
			if !ok {
				return nil
			}
			location = model.GeoPoint{Latitude: lat, Longitude: lon}
			break
		}
	}

	if promptYes(sc, out, "Continue to encounter probability? Y/N: ") {
		est := encounter.NewEstimator(cfg.Encounter)
		p := est.Probability(location, events)
		fmt.Fprintf(out, "Encounter probability here: %.6f\n", p)
	}

	if promptYes(sc, out, "Continue to most likely pod? Y/N: ") {
		dist, mode, err := pod.Classify(events, location, cfg.Pods.Labels, cfg.Encounter.DailyRange)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Most likely pod: %s (p=%.3f)\n", mode, dist[mode])
		for _, label := range cfg.Pods.Labels {
			fmt.Fprintf(out, "  %s: %.3f\n", label, dist[label])
		}
	}

	if promptYes(sc, out, "Continue to waiting time? Y/N: ") {
		archive, err := sightings.LoadFile(cfg.Data.Archive())
		if err != nil {
			return err
		}
		m, err := arrival.Fit(archive)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Expected waiting time until the next sighting: %.3f hours\n", m.MeanHours)

		for {
			hours, ok := promptFloat(sc, out, "Waiting time to query (hours): ")
			if !ok {
				break
			}
			p, err := m.SurvivalProbability(hours)
			if errors.Is(err, arrival.ErrNegativeWait) {
				fmt.Fprintln(out, "Waiting time must be non-negative. Try again please.")
				continue
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "You would wait %.1f or more hours with probability %.3f.\n", hours, p)
			if !promptYes(sc, out, "Try another time? Y/N: ") {
				break
			}
		}
	}

	fmt.Fprintln(out, "Hope you find the whale you are looking for!")
	return nil
}

// promptYes reads a Y/N answer; anything other than y/Y counts as no,
// including exhausted input.
func promptYes(sc *bufio.Scanner, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	if !sc.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(sc.Text()), "y")
}

// promptInt keeps asking until the line parses as an integer. Returns false
// when input is exhausted.
func promptInt(sc *bufio.Scanner, out io.Writer, prompt string) (int, bool) {
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Fprintln(out, "Invalid number. Try again please.")
			continue
		}
		return n, true
	}
}

// promptFloat keeps asking until the line parses as a float. Returns false
// when input is exhausted.
func promptFloat(sc *bufio.Scanner, out io.Writer, prompt string) (float64, bool) {
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(sc.Text()), 64)
		if err != nil {
			fmt.Fprintln(out, "Invalid number. Try again please.")
			continue
		}
		return f, true
	}
}
