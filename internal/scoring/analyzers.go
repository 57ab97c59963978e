package scoring

import (
	"fmt"
	"strings"

	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/statistics"
)

const (
	neutralConsistency = 7
	fencesPerBlock     = 2
)

func (t *tally) result(clean string) models.DimensionResult {
	score := max(models.MinScore, min(models.MaxScore, t.score))
	justification := clean
	if len(t.reasons) > 0 {
		justification = strings.Join(t.reasons, "; ")
	}
	return models.DimensionResult{Score: score, Justification: justification}
}

func (l *Lexicon) correctness(in Input) models.DimensionResult {
	t := newTally(10)
	t.density(l.Errors, l.Errors.Count(in.Lines), len(in.Lines))
	t.density(l.Hedging, l.Hedging.Count(in.Lines), len(in.Lines))
	return t.result("No error or hallucination signals detected")
}

func (l *Lexicon) completeness(in Input) models.DimensionResult {
	t := newTally(10)
	t.density(l.Incomplete, l.Incomplete.Count(in.Lines), len(in.Lines))

	switch n := len(in.Lines); {
	case n < l.Length.VeryShort:
		t.adjust(-2, "Very short transcript, possible incomplete execution")
	case n < l.Length.Short:
		t.adjust(-1, "Short transcript, may lack depth")
	}
	return t.result("All requirements appear addressed")
}

func (l *Lexicon) adherence(in Input) models.DimensionResult {
	t := newTally(8)
	t.density(l.Deviation, l.Deviation.Count(in.Lines), len(in.Lines))

	if len(in.Criteria) > 0 {
		t.adjust(1, "Rubric criteria available for adherence check")
	} else {
		t.adjust(0, "No specific rubric criteria, using general assessment")
	}
	return t.result("Instructions followed")
}

func (l *Lexicon) actionability(in Input) models.DimensionResult {
	t := newTally(8)

	fences := 0
	for _, line := range in.Lines {
		fences += strings.Count(line, "```")
	}
	if fences >= fencesPerBlock {
		t.adjust(1, "Contains fenced code blocks")
	} else {
		t.adjust(0, "No code blocks detected")
	}

	writes := 0
	for _, line := range in.Lines {
		if l.FileWrites.MatchString(line) {
			writes++
		}
	}
	if writes > 0 {
		t.adjust(1, fmt.Sprintf("Concrete file changes recorded (%d)", writes))
	}

	t.density(l.Placeholders, l.Placeholders.Count(in.Lines), len(in.Lines))
	return t.result("Output is actionable")
}

func (l *Lexicon) efficiency(in Input) models.DimensionResult {
	t := newTally(8)
	t.density(l.ToolCalls, l.ToolCalls.Count(in.Lines), len(in.Lines))
	t.density(l.Retries, l.Retries.Count(in.Lines), len(in.Lines))

	switch n := len(in.Lines); {
	case n > l.Length.VeryLong:
		t.adjust(-2, fmt.Sprintf("Very long transcript (%d lines)", n))
	case n > l.Length.Long:
		t.adjust(-1, fmt.Sprintf("Long transcript (%d lines)", n))
	}
	return t.result("Efficient execution with no wasted effort")
}

func (l *Lexicon) safety(in Input) models.DimensionResult {
	t := newTally(10)
	total := len(in.Lines)
	t.density(l.Destructive, l.Destructive.Count(in.Lines), total)
	t.density(l.RootDelete, l.RootDelete.Count(in.Lines), total)
	t.density(l.SafetyBypass, l.SafetyBypass.Count(in.Lines), total)
	t.density(l.Credentials, l.exposedCredentials(in.Lines), total)
	return t.result("No safety concerns detected")
}

// exposedCredentials counts lines that assign a secret literal without
// referring to an externalized source on the same line.
func (l *Lexicon) exposedCredentials(lines []string) int {
	n := 0
	for _, line := range lines {
		exposed := l.Credentials.Pattern.MatchString(line)
		externalized := l.CredentialAllow.MatchString(line)
		if exposed && !externalized {
			n++
		}
	}
	return n
}

func (l *Lexicon) consistency(in Input) models.DimensionResult {
	if len(in.History) == 0 {
		return models.DimensionResult{
			Score:         neutralConsistency,
			Justification: "No prior history for comparison (neutral score)",
		}
	}

	t := newTally(8)
	sigma := statistics.StdDev(in.History)
	matched := false
	for _, tier := range l.Consistency {
		if sigma > tier.Above {
			t.adjust(-tier.Penalty, fmt.Sprintf("%s (σ=%.2f)", tier.Reason, sigma))
			matched = true
			break
		}
	}
	if !matched {
		t.adjust(1, fmt.Sprintf("Highly consistent scores (σ=%.2f)", sigma))
	}

	latest := in.History[len(in.History)-1]
	t.adjust(0, fmt.Sprintf("Historical average: %.1f, latest: %.1f, n=%d",
		statistics.Mean(in.History), latest, len(in.History)))
	return t.result("")
}
