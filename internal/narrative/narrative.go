// Package narrative turns dimension scores into the human-readable parts of
// a scorecard: one-liner, summary, critical issues and recommendations.
package narrative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skilljudge/verdict/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// CriticalThreshold is the highest score reported as a critical issue.
	CriticalThreshold = 4
	// QualityBar is the score below which a dimension gets a recommendation.
	QualityBar = 8
)

// Composite quality bands.
const (
	bandExcellent  = 9.0
	bandGood       = 7.0
	bandAcceptable = 5.0
)

// recommendations holds the canned advice per dimension.
func recommendations() map[models.Dimension]string {
	return map[models.Dimension]string{
		models.DimensionCorrectness:   "Review output for factual errors and validate against expected behavior",
		models.DimensionCompleteness:  "Ensure all user requirements are addressed; check for skipped items",
		models.DimensionAdherence:     "Re-read skill instructions and verify all constraints are met",
		models.DimensionActionability: "Remove placeholders, ensure output compiles/runs, add missing configs",
		models.DimensionEfficiency:    "Reduce unnecessary tool calls and avoid repeated actions",
		models.DimensionSafety:        "Audit for exposed secrets, destructive commands, and permission issues",
		models.DimensionConsistency:   "Compare with prior executions and maintain quality baselines",
	}
}

// Input is the scored run a narrative is written for.
type Input struct {
	Skill      string
	Composite  float64
	Grade      models.GradeTier
	Dimensions map[models.Dimension]models.DimensionResult
	RedFlags   []string
	Deduction  float64
}

// Narrative is the generated text of a scorecard.
type Narrative struct {
	OneLiner        string
	Summary         string
	CriticalIssues  []string
	Recommendations []string
	Best            models.Dimension
	Worst           models.Dimension
}

// Generate writes the narrative for in.
func Generate(in Input) Narrative {
	ordered := present(in.Dimensions)
	n := Narrative{
		CriticalIssues:  criticalIssues(ordered, in.Dimensions),
		Recommendations: recommend(ordered, in.Dimensions),
	}
	if len(ordered) == 0 {
		n.OneLiner = fmt.Sprintf("%s (%s) -- no dimensions scored", DisplayName(in.Skill), in.Grade.Grade)
		n.Summary = summary(in, nil)
		return n
	}

	n.Best, n.Worst = extremes(ordered, in.Dimensions)
	n.OneLiner = oneLiner(in, n.Best, n.Worst)
	n.Summary = summary(in, n.CriticalIssues)
	return n
}

// DisplayName turns a skill identifier into a title-cased display name.
func DisplayName(skill string) string {
	name := strings.NewReplacer("-", " ", "_", " ").Replace(skill)
	return cases.Title(language.English).String(name)
}

// present returns the scored dimensions in the fixed dimension order.
func present(dims map[models.Dimension]models.DimensionResult) []models.Dimension {
	var out []models.Dimension
	for _, d := range models.AllDimensions() {
		if _, ok := dims[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// extremes picks the best and worst dimension; earlier dimensions win ties.
func extremes(ordered []models.Dimension, dims map[models.Dimension]models.DimensionResult) (best, worst models.Dimension) {
	best, worst = ordered[0], ordered[0]
	for _, d := range ordered[1:] {
		if dims[d].Score > dims[best].Score {
			best = d
		}
		if dims[d].Score < dims[worst].Score {
			worst = d
		}
	}
	return best, worst
}

func oneLiner(in Input, best, worst models.Dimension) string {
	name := DisplayName(in.Skill)
	bestScore := in.Dimensions[best].Score
	worstScore := in.Dimensions[worst].Score

	switch {
	case in.Composite >= bandExcellent:
		return fmt.Sprintf("Excellent %s (%s) -- top marks across all dimensions", name, in.Grade.Grade)
	case in.Composite >= bandGood:
		note := "solid across the board"
		if bestScore >= 9 {
			note = "strong " + string(best)
		}
		if worstScore < 7 {
			note += fmt.Sprintf(", %s could improve", worst)
		}
		return fmt.Sprintf("Good %s (%s) -- %s", name, in.Grade.Grade, note)
	case in.Composite >= bandAcceptable:
		return fmt.Sprintf("Acceptable %s (%s) -- %s needs attention (%d/10)", name, in.Grade.Grade, worst, worstScore)
	default:
		return fmt.Sprintf("Below-par %s (%s) -- critical gaps in %s (%d/10)", name, in.Grade.Grade, worst, worstScore)
	}
}

func summary(in Input, critical []string) string {
	var parts []string
	switch {
	case in.Composite >= bandExcellent:
		parts = append(parts, "Outstanding execution across all dimensions.")
	case in.Composite >= bandGood:
		parts = append(parts, "Solid execution with minor areas for improvement.")
	case in.Composite >= bandAcceptable:
		parts = append(parts, "Meets baseline expectations; several dimensions need attention.")
	default:
		parts = append(parts, "Significant quality issues detected; review recommended.")
	}

	if len(critical) > 0 {
		names := make([]string, 0, len(critical))
		for _, issue := range critical {
			name, _, _ := strings.Cut(issue, ":")
			names = append(names, name)
		}
		parts = append(parts, fmt.Sprintf("Critical issues found in: %s.", strings.Join(names, ", ")))
	}

	if len(in.RedFlags) > 0 {
		parts = append(parts, fmt.Sprintf("%d red flag(s) cost %.2f points.", len(in.RedFlags), in.Deduction))
	}
	return strings.Join(parts, " ")
}

func criticalIssues(ordered []models.Dimension, dims map[models.Dimension]models.DimensionResult) []string {
	issues := []string{}
	for _, d := range ordered {
		if r := dims[d]; r.Score <= CriticalThreshold {
			issues = append(issues, fmt.Sprintf("%s: %s", d, r.Justification))
		}
	}
	return issues
}

// recommend lists advice for every dimension under the quality bar, worst first.
func recommend(ordered []models.Dimension, dims map[models.Dimension]models.DimensionResult) []string {
	weak := make([]models.Dimension, 0, len(ordered))
	for _, d := range ordered {
		if dims[d].Score < QualityBar {
			weak = append(weak, d)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return dims[weak[i]].Score < dims[weak[j]].Score
	})

	advice := recommendations()
	recs := []string{}
	for _, d := range weak {
		if text, ok := advice[d]; ok {
			recs = append(recs, text)
		}
	}
	return recs
}
