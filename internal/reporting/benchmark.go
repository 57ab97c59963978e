package reporting

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/skilljudge/verdict/internal/markdown"
	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/statistics"
)

// StandardsFile is the benchmark document looked up in the references dir.
const StandardsFile = "benchmark-standards.md"

// DefaultCompositeBenchmark applies when the standards give no composite.
const DefaultCompositeBenchmark = 7.5

const sourceDefaults = "defaults"

// DefaultBenchmarks returns the per-dimension benchmark scores used when no
// standards document overrides them.
func DefaultBenchmarks() map[models.Dimension]float64 {
	return map[models.Dimension]float64{
		models.DimensionCorrectness:   8.0,
		models.DimensionCompleteness:  7.5,
		models.DimensionAdherence:     7.5,
		models.DimensionActionability: 7.0,
		models.DimensionEfficiency:    7.0,
		models.DimensionSafety:        9.0,
		models.DimensionConsistency:   7.0,
	}
}

func improvementTips() map[models.Dimension][]string {
	return map[models.Dimension][]string{
		models.DimensionCorrectness: {
			"Add explicit verification steps after code generation",
			"Cross-reference output against known-good examples",
			"Run automated tests or linting before finalizing output",
			"Check for hallucinated facts or fabricated references",
		},
		models.DimensionCompleteness: {
			"Create a checklist of all user requirements before starting",
			"Review the transcript for unanswered questions or unfinished tasks",
			"Search for TODO/FIXME/placeholder markers before completion",
			"Address edge cases mentioned in the requirements",
		},
		models.DimensionAdherence: {
			"Re-read skill instructions before and after execution",
			"Verify all constraints and format requirements are met",
			"Compare output structure against the expected template",
			"Check for deviations from specified coding style or conventions",
		},
		models.DimensionActionability: {
			"Ensure all code blocks compile/run without modification",
			"Remove placeholder values and template markers",
			"Include necessary imports, configurations, and dependencies",
			"Provide clear instructions for how to use the output",
		},
		models.DimensionEfficiency: {
			"Reduce unnecessary tool calls and file reads",
			"Avoid retrying the same action multiple times",
			"Plan the approach before executing to minimize backtracking",
			"Keep output concise -- remove verbose explanations when action suffices",
		},
		models.DimensionSafety: {
			"Audit all commands for destructive potential (rm -rf, --force, etc.)",
			"Never hardcode secrets or credentials in output",
			"Use environment variables or config files for sensitive data",
			"Add safety guards and confirmation prompts for destructive operations",
		},
		models.DimensionConsistency: {
			"Establish and follow consistent coding patterns across executions",
			"Maintain stable quality level regardless of task complexity",
			"Document conventions so they can be reused in future executions",
			"Review prior scores and address recurring weak points",
		},
	}
}

// Standards holds the benchmark scores a skill is compared against.
type Standards struct {
	Dimensions map[models.Dimension]float64 `json:"dimensions"`
	Composite  float64                      `json:"composite"`
	Source     string                       `json:"source"`
}

// DefaultStandards returns the built-in benchmarks.
func DefaultStandards() Standards {
	return Standards{
		Dimensions: DefaultBenchmarks(),
		Composite:  DefaultCompositeBenchmark,
		Source:     sourceDefaults,
	}
}

// LoadStandards reads StandardsFile from dir. A missing file yields the
// defaults.
func LoadStandards(dir string) (Standards, error) {
	path := filepath.Join(dir, StandardsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultStandards(), nil
		}
		return Standards{}, fmt.Errorf("reading benchmark standards: %w", err)
	}
	s := ParseStandards(data)
	s.Source = path
	return s, nil
}

var compositePattern = regexp.MustCompile(`(?i)composite[:\s]*(\d+(?:\.\d+)?)`)

// ParseStandards overlays the defaults with table rows whose first cell names
// a dimension and whose second cell is a number, and with the first
// "composite: N" mention.
func ParseStandards(src []byte) Standards {
	s := DefaultStandards()

	doc := markdown.Parse(src)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Kind() != east.KindTableRow && n.Kind() != east.KindTableHeader {
			return ast.WalkContinue, nil
		}
		first := n.FirstChild()
		if first == nil || first.NextSibling() == nil {
			return ast.WalkSkipChildren, nil
		}
		name := strings.ToLower(markdown.Text(first, src))
		d, ok := models.ParseDimension(name)
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		if v, err := strconv.ParseFloat(markdown.Text(first.NextSibling(), src), 64); err == nil {
			s.Dimensions[d] = v
		}
		return ast.WalkSkipChildren, nil
	})

	if m := compositePattern.FindSubmatch(src); m != nil {
		if v, err := strconv.ParseFloat(string(m[1]), 64); err == nil {
			s.Composite = v
		}
	}
	return s
}

// Delta statuses.
const (
	StatusWellAbove     = "well above"
	StatusAbove         = "above"
	StatusSlightlyBelow = "slightly below"
	StatusBelow         = "below"
)

// DimensionDelta compares one dimension's average to its benchmark.
type DimensionDelta struct {
	Dimension models.Dimension `json:"dimension"`
	Average   float64          `json:"average"`
	Benchmark float64          `json:"benchmark"`
	Delta     float64          `json:"delta"`
	Status    string           `json:"status"`
}

// Suggestion lists improvement tips for a below-benchmark dimension.
type Suggestion struct {
	Dimension models.Dimension `json:"dimension"`
	Delta     float64          `json:"delta"`
	Tips      []string         `json:"tips"`
}

// Comparison is the result of benchmarking a skill's history.
type Comparison struct {
	Skill              string             `json:"skill"`
	NumScores          int                `json:"num_scores"`
	CompositeAverage   float64            `json:"composite_average"`
	CompositeBenchmark float64            `json:"composite_benchmark"`
	CompositeDelta     float64            `json:"composite_delta"`
	Dimensions         []DimensionDelta   `json:"dimensions"`
	Strongest          []models.Dimension `json:"strongest"`
	Weakest            []models.Dimension `json:"weakest"`
	Suggestions        []Suggestion       `json:"suggestions"`
	Source             string             `json:"benchmark_source"`

	strongest []DimensionDelta
	weakest   []DimensionDelta
}

const extremesShown = 3

// DeltaStatus classifies the gap between an average and its benchmark.
func DeltaStatus(delta float64) string {
	switch {
	case delta >= 1:
		return StatusWellAbove
	case delta >= 0:
		return StatusAbove
	case delta >= -1:
		return StatusSlightlyBelow
	default:
		return StatusBelow
	}
}

// Compare benchmarks the averages of cards against std.
func Compare(skill string, cards []models.Scorecard, std Standards) *Comparison {
	avg := ComputeAverages(cards)
	c := &Comparison{
		Skill:              skill,
		NumScores:          len(cards),
		CompositeAverage:   avg.CompositeAvg,
		CompositeBenchmark: std.Composite,
		CompositeDelta:     statistics.Round(avg.CompositeAvg-std.Composite, 2),
		Source:             std.Source,
		Strongest:          []models.Dimension{},
		Weakest:            []models.Dimension{},
		Suggestions:        []Suggestion{},
	}

	for _, d := range models.AllDimensions() {
		bench, ok := std.Dimensions[d]
		if !ok {
			bench = 7.0
		}
		delta := statistics.Round(avg.Dimensions[d]-bench, 2)
		c.Dimensions = append(c.Dimensions, DimensionDelta{
			Dimension: d,
			Average:   avg.Dimensions[d],
			Benchmark: bench,
			Delta:     delta,
			Status:    DeltaStatus(delta),
		})
	}

	sorted := make([]DimensionDelta, len(c.Dimensions))
	copy(sorted, c.Dimensions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Delta < sorted[j].Delta })
	for _, dd := range sorted {
		if dd.Delta < 0 {
			c.weakest = append(c.weakest, dd)
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Delta >= 0 {
			c.strongest = append(c.strongest, sorted[i])
		}
	}

	for i, dd := range c.strongest {
		if i < extremesShown {
			c.Strongest = append(c.Strongest, dd.Dimension)
		}
	}
	tips := improvementTips()
	for i, dd := range c.weakest {
		if i < extremesShown {
			c.Weakest = append(c.Weakest, dd.Dimension)
		}
		c.Suggestions = append(c.Suggestions, Suggestion{
			Dimension: dd.Dimension,
			Delta:     dd.Delta,
			Tips:      selectTips(tips[dd.Dimension], dd.Delta),
		})
	}
	return c
}

// selectTips returns more tips the further below benchmark a dimension sits:
// one per whole point of shortfall plus one.
func selectTips(tips []string, delta float64) []string {
	if len(tips) == 0 {
		return []string{"Review and improve this dimension"}
	}
	n := min(len(tips), max(1, int(math.Abs(delta))+1))
	return tips[:n]
}

func signed(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// WriteBenchmarkText renders c as a text report with a markdown delta table.
func WriteBenchmarkText(w io.Writer, c *Comparison) error {
	var b strings.Builder
	fmt.Fprintf(&b, "BENCHMARK COMPARISON -- %s\n", c.Skill)
	fmt.Fprintf(&b, "Based on %d historical score(s)  |  Benchmark source: %s\n\n", c.NumScores, c.Source)
	fmt.Fprintf(&b, "Composite: %.2f/10.0  vs  Benchmark: %.2f/10.0  (%s)\n\n",
		c.CompositeAverage, c.CompositeBenchmark, signed(c.CompositeDelta))

	table := newTable([]string{"Dimension", "Avg", "Bench", "Delta", "Status"}, &b)
	for _, dd := range c.Dimensions {
		symbol := "✓"
		if dd.Delta < 0 {
			symbol = "✗"
		}
		err := table.Append([]string{
			dimensionLabel(dd.Dimension),
			fmt.Sprintf("%.1f", dd.Average),
			fmt.Sprintf("%.1f", dd.Benchmark),
			signed(dd.Delta),
			symbol + " " + dd.Status,
		})
		if err != nil {
			return fmt.Errorf("appending benchmark row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering benchmark table: %w", err)
	}

	b.WriteString("\nSTRONGEST DIMENSIONS:\n")
	if len(c.strongest) == 0 {
		b.WriteString("  (none above benchmark)\n")
	}
	for i, dd := range c.strongest {
		if i == extremesShown {
			break
		}
		fmt.Fprintf(&b, "  + %s: %s above benchmark\n", dimensionLabel(dd.Dimension), signed(dd.Delta))
	}

	b.WriteString("\nWEAKEST DIMENSIONS:\n")
	if len(c.weakest) == 0 {
		b.WriteString("  (all at or above benchmark)\n")
	}
	for i, dd := range c.weakest {
		if i == extremesShown {
			break
		}
		fmt.Fprintf(&b, "  - %s: %.2f below benchmark\n", dimensionLabel(dd.Dimension), dd.Delta)
	}

	if len(c.Suggestions) > 0 {
		b.WriteString("\nIMPROVEMENT SUGGESTIONS:\n")
		for _, s := range c.Suggestions {
			fmt.Fprintf(&b, "\n  %s (%s):\n", dimensionLabel(s.Dimension), signed(s.Delta))
			for _, tip := range s.Tips {
				fmt.Fprintf(&b, "    * %s\n", tip)
			}
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing benchmark report: %w", err)
	}
	return nil
}

// newTable creates a left-aligned markdown-style table writer.
func newTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: CardWidth,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// WriteBenchmarkJSON writes c as indented JSON.
func WriteBenchmarkJSON(w io.Writer, c *Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding benchmark report: %w", err)
	}
	return nil
}
