package orchestration

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/narrative"
	"github.com/skilljudge/verdict/internal/rubric"
	"github.com/skilljudge/verdict/internal/scoring"
	"github.com/skilljudge/verdict/internal/transcript"
)

//go:generate go tool mockgen -source builder.go -destination mock_store_test.go -package orchestration

// ScoreStore is the history the builder reads from and writes to.
type ScoreStore interface {
	Load(skill string) ([]models.Scorecard, error)
	Save(card *models.Scorecard) (string, error)
}

// Request identifies one transcript to score.
type Request struct {
	Skill          string
	TranscriptPath string
	RubricDir      string
}

// Result is a built scorecard and where it was persisted.
type Result struct {
	Scorecard *models.Scorecard
	Path      string
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClock overrides the time source used to stamp scorecards.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// WithIDGenerator overrides the run ID generator.
func WithIDGenerator(newID func() string) BuilderOption {
	return func(b *Builder) {
		b.newID = newID
	}
}

// WithLogger sets the logger that receives degraded-input warnings.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// Builder runs the scoring pipeline for a single transcript and persists
// the resulting scorecard.
type Builder struct {
	engine *scoring.Engine
	store  ScoreStore
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// NewBuilder creates a Builder that scores with engine and persists to store.
func NewBuilder(engine *scoring.Engine, store ScoreStore, opts ...BuilderOption) *Builder {
	b := &Builder{
		engine: engine,
		store:  store,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build scores the transcript named by req, writes the scorecard and returns
// it. Only a missing or unreadable transcript and a failed write are errors;
// every other problem degrades to a default and is logged as a warning.
func (b *Builder) Build(req Request) (*Result, error) {
	lines, err := transcript.Load(req.TranscriptPath)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		b.logger.Warn("transcript is empty", "path", req.TranscriptPath)
	}

	rubricName, rubricText, err := rubric.Resolve(req.RubricDir, req.Skill)
	if err != nil {
		if errors.Is(err, rubric.ErrNotFound) {
			b.logger.Warn("no rubric found, using built-in defaults", "dir", req.RubricDir, "skill", req.Skill)
		} else {
			b.logger.Warn("rubric unreadable, using built-in defaults", "error", err)
		}
	}
	criteria := rubric.ParseCriteria(rubricText)

	history, err := b.store.Load(req.Skill)
	if err != nil {
		b.logger.Warn("score history unavailable, scoring without it", "error", err)
		history = nil
	}

	in := scoring.Input{
		Lines:    lines,
		Criteria: criteria,
		History:  models.Composites(history),
	}
	card := b.assemble(req.Skill, in)
	card.RubricUsed = rubricName

	path, err := b.store.Save(card)
	if err != nil {
		return nil, fmt.Errorf("saving scorecard: %w", err)
	}
	b.logger.Debug("scorecard saved", "path", path, "composite", card.CompositeScore)
	return &Result{Scorecard: card, Path: path}, nil
}

// assemble runs the analyzers, adjustments, grading and narrative.
func (b *Builder) assemble(skill string, in scoring.Input) *models.Scorecard {
	results := b.engine.AnalyzeAll(in)
	raw := b.engine.Composite(results)

	redFlags := b.engine.RedFlags(in.Lines)
	bonuses := b.engine.Bonuses(in.Lines)
	final, adj := scoring.ApplyAdjustments(raw, len(redFlags), len(bonuses))
	grade := b.engine.Grade(final)

	story := narrative.Generate(narrative.Input{
		Skill:      skill,
		Composite:  final,
		Grade:      grade,
		Dimensions: results,
		RedFlags:   redFlags,
		Deduction:  adj.Deduction,
	})

	weights := b.engine.Weights()
	dims := make(map[models.Dimension]models.DimensionScore, len(results))
	for dim, r := range results {
		dims[dim] = models.DimensionScore{
			Score:         r.Score,
			Weight:        weights[dim],
			Weighted:      scoring.Weighted(r.Score, weights[dim]),
			Justification: r.Justification,
		}
	}

	return &models.Scorecard{
		Skill:           skill,
		RunID:           b.newID(),
		Timestamp:       b.now().UTC().Truncate(time.Second),
		RawComposite:    raw,
		Adjustments:     adj,
		CompositeScore:  final,
		Grade:           grade.Grade,
		GradeLabel:      grade.Label,
		Dimensions:      dims,
		RedFlags:        redFlags,
		Bonuses:         bonuses,
		Summary:         story.Summary,
		OneLiner:        story.OneLiner,
		CriticalIssues:  story.CriticalIssues,
		Recommendations: story.Recommendations,
		TranscriptLines: len(in.Lines),
	}
}
