package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/skilljudge/verdict/internal/models"
)

// Report is the JSON form of the score report.
type Report struct {
	Scores   []models.Scorecard `json:"scores"`
	Averages Averages           `json:"averages"`
}

// Filter keeps the cards for skill (all cards when skill is empty) and then
// the last n of them (all when n <= 0). cards must be oldest first.
func Filter(cards []models.Scorecard, skill string, n int) []models.Scorecard {
	var out []models.Scorecard
	for _, c := range cards {
		if skill == "" || c.Skill == skill {
			out = append(out, c)
		}
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// WriteText renders each card, with the earlier cards of the same skill as
// trend history, followed by the averages block when there is more than one
// card.
func WriteText(w io.Writer, cards []models.Scorecard) error {
	parts := make([]string, 0, len(cards)+1)
	for i := range cards {
		parts = append(parts, RenderCard(&cards[i], Filter(cards[:i], cards[i].Skill, 0)))
	}
	if len(cards) > 1 {
		parts = append(parts, RenderAverages(ComputeAverages(cards)))
	}
	if _, err := fmt.Fprintln(w, strings.Join(parts, "\n\n")); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// WriteJSON writes the cards and their averages as indented JSON.
func WriteJSON(w io.Writer, cards []models.Scorecard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Report{Scores: cards, Averages: ComputeAverages(cards)}); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
