package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salish-sea/orcastat/internal/arrival"
	"github.com/salish-sea/orcastat/internal/sightings"
)

var waitHours float64

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Estimate the waiting time until the next sighting",
	Long: `Fits an exponential model to the inter-arrival times of the full
sighting archive and reports the expected waiting time, plus the probability
of waiting at least --hours for the next sighting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := sightings.LoadFile(cfg.Data.Archive())
		if err != nil {
			return err
		}

		m, err := arrival.Fit(events)
		if err != nil {
			return err
		}

		fmt.Printf("Expected waiting time until the next sighting: %.3f hours\n", m.MeanHours)

		if cmd.Flags().Changed("hours") {
			p, err := m.SurvivalProbability(waitHours)
			if err != nil {
				return err
			}
			fmt.Printf("Probability of waiting %.1f hours or more: %.3f\n", waitHours, p)
		}
		return nil
	},
}

func init() {
	waitCmd.Flags().Float64Var(&waitHours, "hours", 0, "waiting time to query, in hours")
	rootCmd.AddCommand(waitCmd)
}
