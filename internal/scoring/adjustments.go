package scoring

import (
	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/statistics"
)

const (
	maxSignals   = 4
	flagPenalty  = 0.5
	maxDeduction = 2.0
	bonusCredit  = 0.25
	maxBonus     = 1.0
)

// detect returns the message of every signal that matches at least one line,
// in signal order, capped at four entries.
func detect(signals []Signal, lines []string) []string {
	found := []string{}
	for _, s := range signals {
		if len(found) == maxSignals {
			break
		}
		for _, line := range lines {
			if s.Pattern.MatchString(line) {
				found = append(found, s.Message)
				break
			}
		}
	}
	return found
}

// ApplyAdjustments deducts for red flags, floors the result at the minimum
// score, then credits bonuses. The returned composite lies in [1, 10].
func ApplyAdjustments(raw float64, flags, bonuses int) (float64, models.Adjustments) {
	adj := models.Adjustments{
		Deduction: min(flagPenalty*float64(flags), maxDeduction),
		Bonus:     min(bonusCredit*float64(bonuses), maxBonus),
	}

	adjusted := max(raw-adj.Deduction, models.MinScore)
	adjusted = statistics.Clamp(adjusted+adj.Bonus, models.MinScore, models.MaxScore)
	return statistics.Round(adjusted, 2), adj
}
