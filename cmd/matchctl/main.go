package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"backtrack/internal/config"
	"backtrack/internal/matching"
)

var (
	configFlag    string
	thresholdFlag int
	rootCmd       = &cobra.Command{
		Use:          "matchctl",
		Short:        "Offline tools for avatar matching and sighting labels",
		SilenceUsage: true,
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Match configuration YAML file")
	rootCmd.PersistentFlags().IntVarP(&thresholdFlag, "threshold", "t", 0, "Match threshold (defaults to the configured one)")

	rootCmd.AddCommand(newScoreCmd(), newValidateCmd(), newFormatCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadMatcher arma el matcher desde --config, o el modelo ponderado por defecto.
func loadMatcher(path string, threshold int) (*matching.Matcher, error) {
	cfg := &config.Config{MatchConfigPath: path, MatchThreshold: threshold}
	mc, err := cfg.MatchConfig()
	if err != nil {
		return nil, err
	}
	return matching.NewMatcher(mc), nil
}
