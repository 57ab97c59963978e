package models

import (
	"time"
)

// Dimension names one of the seven fixed quality axes.
type Dimension string

const (
	DimensionCorrectness   Dimension = "correctness"
	DimensionCompleteness  Dimension = "completeness"
	DimensionAdherence     Dimension = "adherence"
	DimensionActionability Dimension = "actionability"
	DimensionEfficiency    Dimension = "efficiency"
	DimensionSafety        Dimension = "safety"
	DimensionConsistency   Dimension = "consistency"
)

// AllDimensions returns the dimensions in their fixed evaluation order.
// The order doubles as the tie-breaker for best/worst selection.
func AllDimensions() []Dimension {
	return []Dimension{
		DimensionCorrectness,
		DimensionCompleteness,
		DimensionAdherence,
		DimensionActionability,
		DimensionEfficiency,
		DimensionSafety,
		DimensionConsistency,
	}
}

// ParseDimension returns the Dimension for name and whether it is known.
func ParseDimension(name string) (Dimension, bool) {
	for _, d := range AllDimensions() {
		if string(d) == name {
			return d, true
		}
	}
	return Dimension(name), false
}

// Weights maps each dimension to its share of the composite score.
type Weights map[Dimension]float64

// DefaultWeights returns the compiled-in weight table.
func DefaultWeights() Weights {
	return Weights{
		DimensionCorrectness:   0.25,
		DimensionCompleteness:  0.20,
		DimensionAdherence:     0.15,
		DimensionActionability: 0.15,
		DimensionEfficiency:    0.10,
		DimensionSafety:        0.10,
		DimensionConsistency:   0.05,
	}
}

// Clone returns an independent copy of w.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Score bounds shared by every analyzer.
const (
	MinScore = 1
	MaxScore = 10
)

// DimensionResult is the outcome of a single dimension analyzer.
type DimensionResult struct {
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

// DimensionScore is a DimensionResult as recorded on a scorecard.
type DimensionScore struct {
	Score         int     `json:"score"`
	Weight        float64 `json:"weight"`
	Weighted      float64 `json:"weighted"`
	Justification string  `json:"justification"`
}

// Adjustments records the red-flag deduction and bonus applied to the raw composite.
type Adjustments struct {
	Deduction float64 `json:"deduction"`
	Bonus     float64 `json:"bonus"`
}

// Scorecard is the persisted result of one scoring run.
type Scorecard struct {
	Skill           string                       `json:"skill"`
	RunID           string                       `json:"run_id,omitempty"`
	Timestamp       time.Time                    `json:"timestamp"`
	RawComposite    float64                      `json:"raw_composite"`
	Adjustments     Adjustments                  `json:"adjustments"`
	CompositeScore  float64                      `json:"composite_score"`
	Grade           string                       `json:"grade"`
	GradeLabel      string                       `json:"grade_label"`
	Dimensions      map[Dimension]DimensionScore `json:"dimensions"`
	RedFlags        []string                     `json:"red_flags"`
	Bonuses         []string                     `json:"bonuses"`
	Summary         string                       `json:"summary"`
	OneLiner        string                       `json:"one_liner"`
	CriticalIssues  []string                     `json:"critical_issues"`
	Recommendations []string                     `json:"recommendations"`
	RubricUsed      string                       `json:"rubric_used"`
	TranscriptLines int                          `json:"transcript_lines"`
}

// DimensionScores returns the per-dimension scores keyed by dimension,
// omitting dimensions the scorecard does not carry.
func (s *Scorecard) DimensionScores() map[Dimension]int {
	out := make(map[Dimension]int, len(s.Dimensions))
	for d, ds := range s.Dimensions {
		out[d] = ds.Score
	}
	return out
}

// HistoryRecord is a scorecard read back from the score store.
type HistoryRecord = Scorecard

// Composites extracts the final composite of each record in order.
func Composites(records []HistoryRecord) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		out = append(out, r.CompositeScore)
	}
	return out
}

// GradeTier is one rung of the grade ladder: composites at or above
// Threshold earn Grade.
type GradeTier struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Grade     string  `yaml:"grade" json:"grade"`
	Label     string  `yaml:"label" json:"label"`
}
