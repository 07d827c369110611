package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"backtrack/internal/domain"
	"backtrack/internal/matching"
)

type scoreReport struct {
	Result     matching.Result  `json:"result"`
	QuickMatch bool             `json:"quick_match"`
	Primary    matching.Summary `json:"primary"`
	Summary    matching.Summary `json:"summary"`
}

func newScoreCmd() *cobra.Command {
	var detailed bool
	cmd := &cobra.Command{
		Use:   "score TARGET CONSUMER",
		Short: "Score a target avatar against a consumer avatar (JSON or YAML files)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			matcher, err := loadMatcher(configFlag, thresholdFlag)
			if err != nil {
				return err
			}
			target, err := readAvatar(args[0])
			if err != nil {
				return err
			}
			consumer, err := readAvatar(args[1])
			if err != nil {
				return err
			}
			return runScore(cmd.OutOrStdout(), matcher, target, consumer, detailed)
		},
	}
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "Include the per-attribute breakdown")
	return cmd
}

func readAvatar(path string) (domain.AvatarConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.AvatarConfig{}, fmt.Errorf("read avatar: %w", err)
	}
	var avatar domain.AvatarConfig
	if err := yaml.Unmarshal(data, &avatar); err != nil {
		return domain.AvatarConfig{}, fmt.Errorf("parse avatar %s: %w", path, err)
	}
	if err := avatar.Validate(); err != nil {
		return domain.AvatarConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return avatar, nil
}

func runScore(w io.Writer, matcher *matching.Matcher, target, consumer domain.AvatarConfig, detailed bool) error {
	threshold := matcher.Threshold()
	res := matcher.CompareAt(target, consumer, threshold)
	if detailed {
		res = matcher.CompareDetailed(target, consumer, threshold)
	}
	report := scoreReport{
		Result:     res,
		QuickMatch: matching.QuickMatch(target, consumer),
		Primary:    matching.PrimaryMatchCount(target, consumer),
		Summary:    matching.MatchSummary(target, consumer),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
