package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/skilljudge/verdict/internal/history"
	"github.com/skilljudge/verdict/internal/reporting"
)

type reportOptions struct {
	scoresDir string
	skill     string
	last      int
	format    string
	minScore  float64
}

func newReportCommand() *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show saved scorecards with trends and averages",
		Long: `Render saved scorecards, oldest first, with per-dimension bars and trend
arrows, followed by historical averages with a bootstrap confidence interval.

The junit format emits one test suite per scorecard and one test case per
dimension; dimensions scoring 4 or less fail, as does the composite when --min-score is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.scoresDir, "scores-dir", "", "Directory containing saved scorecards")
	cmd.Flags().StringVar(&opts.skill, "skill", "", "Only show scorecards for this skill")
	cmd.Flags().IntVar(&opts.last, "last", 0, "Only show the last N scorecards")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "Output format: text, json or junit")
	cmd.Flags().Float64Var(&opts.minScore, "min-score", 0, "Composite threshold for the junit format")

	return cmd
}

func runReport(cmd *cobra.Command, opts *reportOptions) error {
	if err := checkFormat(opts.format, formatText, formatJSON, formatJUnit); err != nil {
		return err
	}

	cfg, err := loadProjectConfig(cmd.Context())
	if err != nil {
		return err
	}
	if opts.scoresDir != "" {
		cfg.Paths.Scores = opts.scoresDir
	}

	store := history.NewFileStore(cfg.Paths.Scores, slog.Default())
	all, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("loading scorecards: %w", err)
	}
	cards := reporting.Filter(all, opts.skill, opts.last)
	if len(cards) == 0 {
		msg := "No scores found"
		if opts.skill != "" {
			msg += fmt.Sprintf(" for skill '%s'", opts.skill)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s in %s\n", msg, cfg.Paths.Scores)
		return nil
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case formatJSON:
		return reporting.WriteJSON(out, cards)
	case formatJUnit:
		return reporting.WriteJUnitXML(out, cards, opts.minScore)
	default:
		return reporting.WriteText(out, cards)
	}
}
