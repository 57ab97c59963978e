package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/reporting"
)

func TestBenchmarkCommand_TextWithDefaults(t *testing.T) {
	dir := isolate(t)
	seedScores(t, dir, sampleCard("api-client", 0, 6), sampleCard("api-client", 1, 8))

	stdout, _, err := runCommand(t, "benchmark", "--skill", "api-client")
	require.NoError(t, err)
	require.Contains(t, stdout, "BENCHMARK COMPARISON -- api-client")
	require.Contains(t, stdout, "Benchmark source: defaults")
	require.Contains(t, stdout, "IMPROVEMENT SUGGESTIONS:")
}

func TestBenchmarkCommand_JSONWithStandards(t *testing.T) {
	dir := isolate(t)
	seedScores(t, dir, sampleCard("api-client", 0, 8))
	writeFile(t, dir, "refs/benchmark-standards.md", `# Standards

| Dimension | Target |
|---|---|
| safety | 8.0 |

Composite: 6.5
`)

	stdout, _, err := runCommand(t, "benchmark", "--skill", "api-client", "--references-dir", "refs", "--format", "json")
	require.NoError(t, err)

	var got reporting.Comparison
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Equal(t, 1, got.NumScores)
	require.InDelta(t, 6.5, got.CompositeBenchmark, 1e-9)
	require.InDelta(t, 1.5, got.CompositeDelta, 1e-9)
	for _, dd := range got.Dimensions {
		if dd.Dimension == models.DimensionSafety {
			require.InDelta(t, 8.0, dd.Benchmark, 1e-9)
			require.Equal(t, reporting.StatusAbove, dd.Status)
		}
	}
	require.Empty(t, got.Weakest)
	require.Empty(t, got.Suggestions)
}

func TestBenchmarkCommand_NoScores(t *testing.T) {
	isolate(t)

	stdout, stderr, err := runCommand(t, "benchmark", "--skill", "ghost")
	require.NoError(t, err)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "No scores found for skill 'ghost'")
}

func TestBenchmarkCommand_RequiresSkill(t *testing.T) {
	isolate(t)

	_, _, err := runCommand(t, "benchmark")
	require.ErrorContains(t, err, "skill")
}
