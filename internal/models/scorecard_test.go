package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	for _, d := range AllDimensions() {
		got, ok := ParseDimension(string(d))
		require.True(t, ok)
		require.Equal(t, d, got)
	}

	got, ok := ParseDimension("latency")
	require.False(t, ok)
	require.Equal(t, Dimension("latency"), got)
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	require.Len(t, w, len(AllDimensions()))

	sum := 0.0
	for _, v := range w {
		sum += v
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestWeightsClone(t *testing.T) {
	w := DefaultWeights()
	c := w.Clone()
	c[DimensionSafety] = 0.9

	require.InDelta(t, 0.10, w[DimensionSafety], 1e-9)
}

func TestScorecard_JSONRoundTrip(t *testing.T) {
	card := Scorecard{
		Skill:          "api-client",
		Timestamp:      time.Date(2026, 4, 2, 10, 15, 30, 0, time.UTC),
		CompositeScore: 7.35,
		Dimensions: map[Dimension]DimensionScore{
			DimensionSafety: {Score: 9, Weight: 0.1, Weighted: 0.9, Justification: "No issues detected"},
		},
	}

	data, err := json.Marshal(card)
	require.NoError(t, err)
	require.Contains(t, string(data), `"timestamp":"2026-04-02T10:15:30Z"`)
	require.NotContains(t, string(data), "run_id")

	var back Scorecard
	require.NoError(t, json.Unmarshal(data, &back))
	require.InDelta(t, card.CompositeScore, back.CompositeScore, 1e-9)
	require.True(t, card.Timestamp.Equal(back.Timestamp))
	require.Equal(t, map[Dimension]int{DimensionSafety: 9}, back.DimensionScores())
}

func TestComposites(t *testing.T) {
	records := []HistoryRecord{{CompositeScore: 6}, {CompositeScore: 7.5}}
	require.Equal(t, []float64{6, 7.5}, Composites(records))
	require.Empty(t, Composites(nil))
}
