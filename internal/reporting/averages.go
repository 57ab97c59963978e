package reporting

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/statistics"
)

// Averages summarizes a set of scorecards.
type Averages struct {
	Count        int                           `json:"count"`
	CompositeAvg float64                       `json:"composite_avg"`
	CompositeCI  statistics.ConfidenceInterval `json:"composite_ci"`
	Dimensions   map[models.Dimension]float64  `json:"dimensions"`
}

// ComputeAverages averages composites and per-dimension scores over cards,
// rounded to two places. Dimensions with no samples average to zero.
func ComputeAverages(cards []models.Scorecard) Averages {
	return computeAverages(cards, -1)
}

func computeAverages(cards []models.Scorecard, seed int64) Averages {
	composites := models.Composites(cards)
	avg := Averages{
		Count:        len(cards),
		CompositeAvg: statistics.Round(statistics.Mean(composites), 2),
		Dimensions:   make(map[models.Dimension]float64, len(models.AllDimensions())),
	}
	ci := statistics.BootstrapCIWithSeed(composites, 0.95, seed)
	ci.Lower = statistics.Round(ci.Lower, 2)
	ci.Upper = statistics.Round(ci.Upper, 2)
	ci.Mean = statistics.Round(ci.Mean, 2)
	avg.CompositeCI = ci

	for _, d := range models.AllDimensions() {
		avg.Dimensions[d] = statistics.Round(statistics.Mean(dimensionSeries(cards, d)), 2)
	}
	return avg
}

// RenderAverages draws avg as a framed text block.
func RenderAverages(avg Averages) string {
	b := newBox(CardWidth)
	b.line(fmt.Sprintf("HISTORICAL AVERAGES (%d scores)", avg.Count))
	b.divider()
	b.line(fmt.Sprintf("Composite Average: %.2f/10.0  (95%% CI %.2f-%.2f)",
		avg.CompositeAvg, avg.CompositeCI.Lower, avg.CompositeCI.Upper))
	b.line("")
	for _, d := range models.AllDimensions() {
		v := avg.Dimensions[d]
		b.line(fmt.Sprintf("  %s%s  %4.1f/10", runewidth.FillRight(dimensionLabel(d), labelWidth), Bar(v), v))
	}
	return b.String()
}
