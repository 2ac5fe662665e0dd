package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/salish-sea/orcastat/internal/density"
	"github.com/salish-sea/orcastat/internal/model"
	"github.com/salish-sea/orcastat/internal/sightings"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the densest sighting location for every month",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := sightings.LoadFile(cfg.Data.Path)
		if err != nil {
			return err
		}
		return writeSummary(cmd.Context(), cmd.OutOrStdout(), events)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

// writeSummary prints one row per month: the month's densest cell, or blanks
// for months without data. Peaks are independent per month, so they are
// computed concurrently; each goroutine writes only its own slot, and the
// table is printed after all of them finish, so the output does not depend
// on scheduling.
func writeSummary(ctx context.Context, out io.Writer, events []model.Sighting) error {
	peaks := make([]*density.Peak, 13)
	g, _ := errgroup.WithContext(ctx)
	for m := time.January; m <= time.December; m++ {
		m := m // per-iteration copy: go.mod targets go < 1.22 loop semantics
		g.Go(func() error {
			peak, err := density.PeakLocation(sightings.FilterMonth(events, m), cfg.Density.Scale)
			if errors.Is(err, density.ErrNoSightings) {
				return nil // months without data stay blank
			}
			if err != nil {
				return err
			}
			peaks[m] = &peak
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%-10s %10s %12s %10s\n", "Month", "Latitude", "Longitude", "Sightings")
	for m := time.January; m <= time.December; m++ {
		if peaks[m] == nil {
			fmt.Fprintf(out, "%-10s %10s %12s %10s\n", m, "-", "-", "-")
			continue
		}
		fmt.Fprintf(out, "%-10s %10.2f %12.2f %10d\n",
			m, peaks[m].Location.Latitude, peaks[m].Location.Longitude, peaks[m].Count)
	}
	return nil
}
