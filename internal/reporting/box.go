// Package reporting renders persisted scorecards as text cards, historical
// averages, benchmark comparisons and JUnit XML.
package reporting

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skilljudge/verdict/internal/models"
)

// CardWidth is the outer width of a rendered box, borders included.
const CardWidth = 78

const (
	barWidth = 10
	barFull  = "█"
	barEmpty = "░"
)

// Trend arrows.
const (
	TrendUp     = "↑"
	TrendDown   = "↓"
	TrendStable = "→"
)

// box accumulates the lines of a double-ruled frame of a fixed width.
type box struct {
	width int
	lines []string
}

func newBox(width int) *box {
	b := &box{width: width}
	b.rule("╔", "╗")
	return b
}

func (b *box) rule(left, right string) {
	b.lines = append(b.lines, left+strings.Repeat("═", b.width-2)+right)
}

func (b *box) divider() { b.rule("╠", "╣") }

// line writes content padded to the inner width, truncating with an ellipsis.
func (b *box) line(content string) {
	inner := b.width - 4
	content = runewidth.Truncate(content, inner, "…")
	b.lines = append(b.lines, "║ "+runewidth.FillRight(content, inner)+" ║")
}

func (b *box) String() string {
	b.rule("╚", "╝")
	return strings.Join(b.lines, "\n")
}

// Bar renders a 0-10 score as a ten-cell bar.
func Bar(score float64) string {
	filled := int(score/10*barWidth + 0.5)
	filled = max(0, min(barWidth, filled))
	return strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, barWidth-filled)
}

// Trend compares the first and last of the final three values. A change of
// more than half a point either way is a trend.
func Trend(values []float64) string {
	if len(values) < 2 {
		return TrendStable
	}
	recent := values[max(0, len(values)-3):]
	delta := recent[len(recent)-1] - recent[0]
	switch {
	case delta > 0.5:
		return TrendUp
	case delta < -0.5:
		return TrendDown
	default:
		return TrendStable
	}
}

func dimensionLabel(d models.Dimension) string {
	return cases.Title(language.English).String(string(d))
}
