package reporting

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/skilljudge/verdict/internal/models"
)

const labelWidth = 15

// RenderCard draws card as a framed text scorecard. prior holds the earlier
// scorecards of the same series, oldest first, and drives the trend arrows.
func RenderCard(card *models.Scorecard, prior []models.Scorecard) string {
	b := newBox(CardWidth)
	b.line("VERDICT SCORECARD -- " + card.Skill)
	b.line(fmt.Sprintf("Grade: %s (%s)  |  Composite: %.2f/10.0  |  %s",
		card.Grade, card.GradeLabel, card.CompositeScore, card.Timestamp.UTC().Format(time.RFC3339)))
	b.divider()

	for _, d := range models.AllDimensions() {
		ds := card.Dimensions[d]
		series := dimensionSeries(prior, d)
		if _, ok := card.Dimensions[d]; ok {
			series = append(series, float64(ds.Score))
		}

		head := fmt.Sprintf("%s%s  %4.1f/10 (w=%.2f) %s ",
			runewidth.FillRight(dimensionLabel(d), labelWidth),
			Bar(float64(ds.Score)), float64(ds.Score), ds.Weight, Trend(series))
		room := CardWidth - 4 - runewidth.StringWidth(head)
		b.line(head + runewidth.Truncate(ds.Justification, max(room, 1), "…"))
	}

	b.divider()
	summary := card.OneLiner
	if summary == "" {
		summary = card.Summary
	}
	b.line("Summary: " + summary)

	if len(card.CriticalIssues) > 0 {
		b.line("")
		b.line("CRITICAL ISSUES:")
		for _, issue := range card.CriticalIssues {
			b.line("  ! " + issue)
		}
	}
	if len(card.Recommendations) > 0 {
		b.line("")
		b.line("RECOMMENDATIONS:")
		for _, rec := range card.Recommendations {
			b.line("  * " + rec)
		}
	}
	return b.String()
}

func dimensionSeries(cards []models.Scorecard, d models.Dimension) []float64 {
	var out []float64
	for _, c := range cards {
		if ds, ok := c.Dimensions[d]; ok {
			out = append(out, float64(ds.Score))
		}
	}
	return out
}
