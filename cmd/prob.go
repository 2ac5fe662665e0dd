package main

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/salish-sea/orcastat/internal/density"
	"github.com/salish-sea/orcastat/internal/encounter"
	"github.com/salish-sea/orcastat/internal/model"
)

var (
	probMonth int
	probLat   float64
	probLon   float64
)

var probCmd = &cobra.Command{
	Use:   "prob",
	Short: "Estimate the encounter probability at a location for a month",
	Long: `Estimates the probability of encountering the study population at a
location during a month, using an area bootstrap over nearby historical
sightings. Without --lat/--lon, the month's densest location is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		month, err := parseMonth(probMonth)
		if err != nil {
			return err
		}

		latSet := cmd.Flags().Changed("lat")
		lonSet := cmd.Flags().Changed("lon")
		if latSet != lonSet {
			return eris.New("prob: --lat and --lon must be given together")
		}

		events, err := monthEvents(month)
		if err != nil {
			return err
		}

		candidate := model.GeoPoint{Latitude: probLat, Longitude: probLon}
		if !latSet {
			peak, err := density.PeakLocation(events, cfg.Density.Scale)
			if errors.Is(err, density.ErrNoSightings) {
				fmt.Printf("No sightings recorded in %s.\n", month)
				return nil
			}
			if err != nil {
				return err
			}
			candidate = peak.Location
		}

		est := encounter.NewEstimator(cfg.Encounter)
		p := est.Probability(candidate, events)

		fmt.Printf("Encounter probability at (%.2f, %.2f) in %s: %.6f\n",
			candidate.Latitude, candidate.Longitude, month, p)
		return nil
	},
}

func init() {
	probCmd.Flags().IntVar(&probMonth, "month", 0, "month to search, 1-12")
	probCmd.Flags().Float64Var(&probLat, "lat", 0, "candidate latitude (default: month's densest location)")
	probCmd.Flags().Float64Var(&probLon, "lon", 0, "candidate longitude (default: month's densest location)")
	_ = probCmd.MarkFlagRequired("month")
	rootCmd.AddCommand(probCmd)
}
