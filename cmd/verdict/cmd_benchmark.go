package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/skilljudge/verdict/internal/history"
	"github.com/skilljudge/verdict/internal/reporting"
)

type benchmarkOptions struct {
	skill         string
	scoresDir     string
	referencesDir string
	format        string
}

func newBenchmarkCommand() *cobra.Command {
	opts := &benchmarkOptions{}
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Compare a skill's score history against benchmark standards",
		Long: `Compare per-dimension averages of a skill's saved scorecards against the
benchmark standards in <references-dir>/benchmark-standards.md, falling back
to built-in benchmarks. Reports strongest and weakest dimensions and
improvement suggestions for those below benchmark.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.skill, "skill", "", "Skill to benchmark")
	cmd.Flags().StringVar(&opts.scoresDir, "scores-dir", "", "Directory containing saved scorecards")
	cmd.Flags().StringVar(&opts.referencesDir, "references-dir", "", "Directory containing benchmark-standards.md")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "Output format: text or json")
	_ = cmd.MarkFlagRequired("skill")

	return cmd
}

func runBenchmark(cmd *cobra.Command, opts *benchmarkOptions) error {
	if err := checkFormat(opts.format, formatText, formatJSON); err != nil {
		return err
	}

	cfg, err := loadProjectConfig(cmd.Context())
	if err != nil {
		return err
	}
	if opts.scoresDir != "" {
		cfg.Paths.Scores = opts.scoresDir
	}
	if opts.referencesDir != "" {
		cfg.Paths.References = opts.referencesDir
	}

	store := history.NewFileStore(cfg.Paths.Scores, slog.Default())
	cards, err := store.Load(opts.skill)
	if err != nil {
		return fmt.Errorf("loading scorecards: %w", err)
	}
	if len(cards) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No scores found for skill '%s' in %s\n", opts.skill, cfg.Paths.Scores)
		return nil
	}

	std, err := reporting.LoadStandards(cfg.Paths.References)
	if err != nil {
		return err
	}
	cmp := reporting.Compare(opts.skill, cards, std)

	if opts.format == formatJSON {
		return reporting.WriteBenchmarkJSON(cmd.OutOrStdout(), cmp)
	}
	return reporting.WriteBenchmarkText(cmd.OutOrStdout(), cmp)
}
