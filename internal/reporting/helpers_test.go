package reporting

import (
	"time"

	"github.com/skilljudge/verdict/internal/models"
)

var baseTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// scorecard builds a card whose dimensions all score uniform except for the
// overrides.
func scorecard(skill string, day int, composite float64, uniform int, overrides map[models.Dimension]int) models.Scorecard {
	weights := models.DefaultWeights()
	dims := make(map[models.Dimension]models.DimensionScore)
	for _, d := range models.AllDimensions() {
		score := uniform
		if v, ok := overrides[d]; ok {
			score = v
		}
		dims[d] = models.DimensionScore{
			Score:         score,
			Weight:        weights[d],
			Weighted:      float64(score) * weights[d],
			Justification: "Baseline " + string(d),
		}
	}
	return models.Scorecard{
		Skill:          skill,
		RunID:          "run-" + skill,
		Timestamp:      baseTime.AddDate(0, 0, day),
		RawComposite:   composite,
		CompositeScore: composite,
		Grade:          "B",
		GradeLabel:     "Good",
		Dimensions:     dims,
		RedFlags:       []string{},
		Bonuses:        []string{},
		OneLiner:       skill + " is solid.",
		RubricUsed:     "default",
	}
}
