package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salish-sea/orcastat/internal/model"
	"github.com/salish-sea/orcastat/internal/pod"
)

var (
	podMonth int
	podLat   float64
	podLon   float64
)

var podCmd = &cobra.Command{
	Use:   "pod",
	Short: "Find the most likely pod at a location for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		month, err := parseMonth(podMonth)
		if err != nil {
			return err
		}

		events, err := monthEvents(month)
		if err != nil {
			return err
		}

		candidate := model.GeoPoint{Latitude: podLat, Longitude: podLon}
		dist, mode, err := pod.Classify(events, candidate, cfg.Pods.Labels, cfg.Encounter.DailyRange)
		if err != nil {
			return err
		}

		fmt.Printf("Most likely pod at (%.2f, %.2f) in %s: %s (p=%.3f)\n",
			candidate.Latitude, candidate.Longitude, month, mode, dist[mode])
		for _, label := range cfg.Pods.Labels {
			fmt.Printf("  %s: %.3f\n", label, dist[label])
		}
		return nil
	},
}

func init() {
	podCmd.Flags().IntVar(&podMonth, "month", 0, "month to search, 1-12")
	podCmd.Flags().Float64Var(&podLat, "lat", 0, "candidate latitude")
	podCmd.Flags().Float64Var(&podLon, "lon", 0, "candidate longitude")
	_ = podCmd.MarkFlagRequired("month")
	_ = podCmd.MarkFlagRequired("lat")
	_ = podCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(podCmd)
}
