package scoring

import (
	"strings"
	"testing"

	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/rubric"
	"github.com/stretchr/testify/require"
)

// lines builds a transcript from (text, count) pairs.
func lines(parts ...any) []string {
	var out []string
	for i := 0; i+1 < len(parts); i += 2 {
		text := parts[i].(string)
		n := parts[i+1].(int)
		for j := 0; j < n; j++ {
			out = append(out, text)
		}
	}
	return out
}

func analyze(t *testing.T, dim models.Dimension, in Input) models.DimensionResult {
	t.Helper()
	r := NewEngine(DefaultConfig()).Analyze(dim, in)
	require.GreaterOrEqual(t, r.Score, models.MinScore)
	require.LessOrEqual(t, r.Score, models.MaxScore)
	require.NotEmpty(t, strings.TrimSpace(r.Justification))
	return r
}

func withCriteria() rubric.Criteria {
	return rubric.Criteria{models.DimensionCorrectness: "must be correct"}
}
