package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/salish-sea/orcastat/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "orcastat",
	Short: "Spatial statistics over the Southern Resident killer whale sighting record",
	Long:  "Estimates peak sighting locations, local encounter probabilities, likely pods, and expected waiting times from the historical SRKW sighting record.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if dataPath != "" {
			cfg.Data.Path = dataPath
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

var dataPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "sighting CSV path (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
