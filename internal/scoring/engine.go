// Package scoring turns transcript lines into per-dimension scores, applies
// red-flag and bonus adjustments, and grades the weighted composite.
package scoring

import (
	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/rubric"
)

// Config carries every table the engine consults.
type Config struct {
	Weights models.Weights
	Lexicon Lexicon
	Ladder  []models.GradeTier
}

// DefaultConfig returns the compiled-in weights, lexicon and grade ladder.
func DefaultConfig() Config {
	return Config{
		Weights: models.DefaultWeights(),
		Lexicon: DefaultLexicon(),
		Ladder:  DefaultLadder(),
	}
}

// Input is everything a dimension analyzer may look at.
type Input struct {
	Lines    []string
	Criteria rubric.Criteria
	// History holds the final composites of earlier runs, oldest first.
	History []float64
}

// Engine scores transcripts against a fixed configuration. It holds no
// mutable state and may be shared.
type Engine struct {
	cfg       Config
	analyzers map[models.Dimension]func(Input) models.DimensionResult
}

// NewEngine creates an Engine. Zero-valued config sections fall back to defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.Weights == nil {
		cfg.Weights = models.DefaultWeights()
	}
	if cfg.Lexicon.Errors.Pattern == nil {
		cfg.Lexicon = DefaultLexicon()
	}
	if len(cfg.Ladder) == 0 {
		cfg.Ladder = DefaultLadder()
	}

	e := &Engine{cfg: cfg}
	lex := &e.cfg.Lexicon
	e.analyzers = map[models.Dimension]func(Input) models.DimensionResult{
		models.DimensionCorrectness:   lex.correctness,
		models.DimensionCompleteness:  lex.completeness,
		models.DimensionAdherence:     lex.adherence,
		models.DimensionActionability: lex.actionability,
		models.DimensionEfficiency:    lex.efficiency,
		models.DimensionSafety:        lex.safety,
		models.DimensionConsistency:   lex.consistency,
	}
	return e
}

// Weights returns a copy of the engine's weight table.
func (e *Engine) Weights() models.Weights {
	return e.cfg.Weights.Clone()
}

// Ladder returns the engine's grade ladder.
func (e *Engine) Ladder() []models.GradeTier {
	return append([]models.GradeTier(nil), e.cfg.Ladder...)
}

// Analyze scores a single dimension. Unknown dimensions get a neutral 5.
func (e *Engine) Analyze(dim models.Dimension, in Input) models.DimensionResult {
	analyze, ok := e.analyzers[dim]
	if !ok {
		return models.DimensionResult{Score: 5, Justification: "Unknown dimension: " + string(dim)}
	}
	return analyze(in)
}

// AnalyzeAll scores every dimension in the fixed order.
func (e *Engine) AnalyzeAll(in Input) map[models.Dimension]models.DimensionResult {
	results := make(map[models.Dimension]models.DimensionResult, len(e.analyzers))
	for _, dim := range models.AllDimensions() {
		results[dim] = e.Analyze(dim, in)
	}
	return results
}

// Composite computes the weighted raw composite of results.
func (e *Engine) Composite(results map[models.Dimension]models.DimensionResult) float64 {
	return Composite(results, e.cfg.Weights)
}

// Grade maps a composite onto the engine's ladder.
func (e *Engine) Grade(composite float64) models.GradeTier {
	return AssignGrade(e.cfg.Ladder, composite)
}

// RedFlags reports the red-flag categories present in lines.
func (e *Engine) RedFlags(lines []string) []string {
	return detect(e.cfg.Lexicon.RedFlags, lines)
}

// Bonuses reports the bonus categories present in lines.
func (e *Engine) Bonuses(lines []string) []string {
	return detect(e.cfg.Lexicon.Bonuses, lines)
}
