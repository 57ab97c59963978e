package scoring

import (
	"errors"
	"fmt"

	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/statistics"
)

// missingScore stands in for a dimension absent from the results.
const missingScore = 5

// DefaultLadder returns the built-in grade ladder, highest threshold first.
func DefaultLadder() []models.GradeTier {
	return []models.GradeTier{
		{Threshold: 9.5, Grade: "A+", Label: "Exceptional"},
		{Threshold: 9.0, Grade: "A", Label: "Excellent"},
		{Threshold: 8.5, Grade: "A-", Label: "Very Good"},
		{Threshold: 8.0, Grade: "B+", Label: "Good"},
		{Threshold: 7.5, Grade: "B", Label: "Above Average"},
		{Threshold: 7.0, Grade: "B-", Label: "Satisfactory"},
		{Threshold: 6.5, Grade: "C+", Label: "Adequate"},
		{Threshold: 6.0, Grade: "C", Label: "Below Average"},
		{Threshold: 5.5, Grade: "C-", Label: "Poor"},
		{Threshold: 4.0, Grade: "D", Label: "Failing"},
		{Threshold: 0.0, Grade: "F", Label: "Unacceptable"},
	}
}

// ValidateLadder checks that thresholds strictly descend and that the last
// tier catches every non-negative composite.
func ValidateLadder(ladder []models.GradeTier) error {
	if len(ladder) == 0 {
		return errors.New("grade ladder is empty")
	}
	for i, tier := range ladder {
		if tier.Grade == "" {
			return fmt.Errorf("grade ladder tier %d has no grade", i)
		}
		if i > 0 && tier.Threshold >= ladder[i-1].Threshold {
			return fmt.Errorf("grade ladder thresholds must descend: %v follows %v",
				tier.Threshold, ladder[i-1].Threshold)
		}
	}
	if last := ladder[len(ladder)-1].Threshold; last > 0 {
		return fmt.Errorf("grade ladder must end at 0, ends at %v", last)
	}
	return nil
}

// AssignGrade returns the first tier whose threshold composite reaches.
// Composites below every threshold get the lowest tier.
func AssignGrade(ladder []models.GradeTier, composite float64) models.GradeTier {
	for _, tier := range ladder {
		if composite >= tier.Threshold {
			return tier
		}
	}
	return ladder[len(ladder)-1]
}

// Composite returns the weighted sum of dimension scores rounded to two
// decimals. A dimension missing from results contributes a neutral score.
func Composite(results map[models.Dimension]models.DimensionResult, weights models.Weights) float64 {
	total := 0.0
	for _, dim := range models.AllDimensions() {
		score := float64(missingScore)
		if r, ok := results[dim]; ok {
			score = float64(r.Score)
		}
		total += score * weights[dim]
	}
	return statistics.Round(total, 2)
}

// Weighted returns a single dimension's rounded contribution to the composite.
func Weighted(score int, weight float64) float64 {
	return statistics.Round(float64(score)*weight, 2)
}
