package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/skilljudge/verdict/internal/history"
	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/orchestration"
	"github.com/skilljudge/verdict/internal/reporting"
)

type scoreOptions struct {
	skill      string
	transcript string
	rubricDir  string
	scoresDir  string
	config     string
	format     string
	minScore   float64
}

func newScoreCommand() *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a skill execution transcript",
		Long: `Score a transcript of a skill execution across seven quality dimensions.

The scorecard is written to the scores directory and printed. Rubric, scores
and weight locations come from flags, then VERDICT_* environment variables,
then .verdict.yaml, then built-in defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.skill, "skill", "", "Name of the skill that produced the transcript")
	cmd.Flags().StringVar(&opts.transcript, "transcript", "", "Path to the transcript file")
	cmd.Flags().StringVar(&opts.rubricDir, "rubric-dir", "", "Directory of rubric markdown files")
	cmd.Flags().StringVar(&opts.scoresDir, "scores-dir", "", "Directory scorecards are written to")
	cmd.Flags().StringVar(&opts.config, "config", "", "Weight configuration file (JSON or YAML)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text or json (default: text on a terminal, json otherwise)")
	cmd.Flags().Float64Var(&opts.minScore, "min-score", 0, "Exit with code 1 when the composite is below this score")
	_ = cmd.MarkFlagRequired("skill")
	_ = cmd.MarkFlagRequired("transcript")

	return cmd
}

func runScore(cmd *cobra.Command, opts *scoreOptions) error {
	format := resolveFormat(opts.format, cmd.OutOrStdout())
	if err := checkFormat(format, formatText, formatJSON); err != nil {
		return err
	}

	cfg, err := loadProjectConfig(cmd.Context())
	if err != nil {
		return err
	}
	if opts.rubricDir != "" {
		cfg.Paths.Rubrics = opts.rubricDir
	}
	if opts.scoresDir != "" {
		cfg.Paths.Scores = opts.scoresDir
	}
	if opts.config != "" {
		cfg.Scoring.Config = opts.config
	}

	logger := slog.Default()
	store := history.NewFileStore(cfg.Paths.Scores, logger)
	builder := orchestration.NewBuilder(newEngine(cfg, logger), store, orchestration.WithLogger(logger))

	res, err := builder.Build(orchestration.Request{
		Skill:          opts.skill,
		TranscriptPath: opts.transcript,
		RubricDir:      cfg.Paths.Rubrics,
	})
	if err != nil {
		return fmt.Errorf("scoring %s: %w", opts.skill, err)
	}
	card := res.Scorecard

	switch format {
	case formatJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(card); err != nil {
			return fmt.Errorf("encoding scorecard: %w", err)
		}
	default:
		prior, err := store.Load(opts.skill)
		if err != nil {
			logger.Warn("score history unavailable for trends", "error", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), reporting.RenderCard(card, excludeRun(prior, card.RunID)))
		fmt.Fprintf(cmd.ErrOrStderr(), "Scorecard written to %s\n", res.Path)
	}

	minScore := opts.minScore
	if !cmd.Flags().Changed("min-score") && cfg.Scoring.MinScore != nil {
		minScore = *cfg.Scoring.MinScore
	}
	if minScore > 0 && card.CompositeScore < minScore {
		return &ThresholdError{Skill: opts.skill, Composite: card.CompositeScore, MinScore: minScore}
	}
	return nil
}

func excludeRun(cards []models.Scorecard, runID string) []models.Scorecard {
	out := make([]models.Scorecard, 0, len(cards))
	for _, c := range cards {
		if c.RunID != runID {
			out = append(out, c)
		}
	}
	return out
}
