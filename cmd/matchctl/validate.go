package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"backtrack/internal/config"
	"backtrack/internal/domain"
	"backtrack/internal/matching"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate CONFIG",
		Short: "Validate a match configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), data, thresholdFlag)
		},
	}
}

func runValidate(w io.Writer, data []byte, threshold int) error {
	mc, err := config.ParseMatchConfig(data, threshold)
	if err != nil {
		return err
	}
	if err := mc.Validate(); err != nil {
		return err
	}

	attrs := make([]string, 0, len(mc.Weights))
	for attr := range mc.Weights {
		attrs = append(attrs, string(attr))
	}
	sort.Strings(attrs)
	fmt.Fprintln(w, "ok")
	for _, attr := range attrs {
		fmt.Fprintf(w, "  %-16s %.3f\n", attr, mc.Weights[domain.AvatarAttribute(attr)])
	}
	fmt.Fprintf(w, "  thresholds       excellent=%d good=%d fair=%d\n", mc.Thresholds.Excellent, mc.Thresholds.Good, mc.Thresholds.Fair)
	fmt.Fprintf(w, "  match_threshold  %d\n", matching.ClampThreshold(mc.MatchThreshold))
	fmt.Fprintf(w, "  conditional      %t\n", mc.ConditionalAttributes)
	return nil
}
