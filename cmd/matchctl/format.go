package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"backtrack/internal/domain"
	"backtrack/internal/temporal"
)

func newFormatCmd() *cobra.Command {
	var (
		dateFlag        string
		granularityFlag string
		refFlag         string
		use24h          bool
		noWeekday       bool
	)
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format a sighting time the way the feed shows it",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse(time.RFC3339, dateFlag)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			ref := time.Now()
			if refFlag != "" {
				if ref, err = time.Parse(time.RFC3339, refFlag); err != nil {
					return fmt.Errorf("--ref: %w", err)
				}
			}
			g, err := temporal.ParseGranularity(granularityFlag)
			if err != nil {
				return err
			}
			opts := temporal.FormatOptions{IncludeDayOfWeek: !noWeekday, Use12HourFormat: !use24h}
			return runFormat(cmd.OutOrStdout(), date, g, ref, opts)
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Sighting date (RFC3339)")
	cmd.Flags().StringVarP(&granularityFlag, "granularity", "g", string(domain.GranularitySpecific), "specific|morning|afternoon|evening")
	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference time (RFC3339, defaults to now)")
	cmd.Flags().BoolVar(&use24h, "24h", false, "Use 24-hour clock")
	cmd.Flags().BoolVar(&noWeekday, "no-weekday", false, "Use month and day instead of the weekday within the last week")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func runFormat(w io.Writer, date time.Time, g domain.TimeGranularity, ref time.Time, opts temporal.FormatOptions) error {
	label := temporal.FormatSightingTime(date, g, ref, opts)
	post := domain.Post{SightingDate: &date, CreatedAt: date}
	fmt.Fprintln(w, label)
	if temporal.IsPostDeprioritized(post, ref) {
		fmt.Fprintln(w, "deprioritized: sighting older than 30 days")
	}
	return nil
}
