package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salish-sea/orcastat/internal/density"
)

var locateMonth int

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Find the historically densest sighting location for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		month, err := parseMonth(locateMonth)
		if err != nil {
			return err
		}

		events, err := monthEvents(month)
		if err != nil {
			return err
		}

		peak, err := density.PeakLocation(events, cfg.Density.Scale)
		if errors.Is(err, density.ErrNoSightings) {
			fmt.Printf("No sightings recorded in %s. Try a warmer time of year.\n", month)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Densest sighting location in %s: (%.2f, %.2f)\n",
			month, peak.Location.Latitude, peak.Location.Longitude)
		fmt.Printf("Historical sightings in that cell: %d\n", peak.Count)
		return nil
	},
}

func init() {
	locateCmd.Flags().IntVar(&locateMonth, "month", 0, "month to search, 1-12")
	_ = locateCmd.MarkFlagRequired("month")
	rootCmd.AddCommand(locateCmd)
}
