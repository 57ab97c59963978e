package statistics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBootstrapCI_Degenerate(t *testing.T) {
	empty := BootstrapCI(nil, 0.95)
	require.Zero(t, empty.Mean)
	require.Zero(t, empty.NumBootstraps)

	single := BootstrapCI([]float64{7.25}, 0.95)
	require.Equal(t, 7.25, single.Lower)
	require.Equal(t, 7.25, single.Upper)
	require.Equal(t, 7.25, single.Mean)
}

func TestBootstrapCI_IdenticalComposites(t *testing.T) {
	ci := BootstrapCIWithSeed([]float64{8, 8, 8, 8}, 0.95, 42)
	require.InDelta(t, 8.0, ci.Lower, 1e-9)
	require.InDelta(t, 8.0, ci.Upper, 1e-9)
}

func TestBootstrapCI_BracketsMean(t *testing.T) {
	composites := []float64{5.5, 6.0, 6.8, 7.2, 7.9, 8.4, 9.1}
	ci := BootstrapCIWithSeed(composites, 0.95, 7)

	require.InDelta(t, Mean(composites), ci.Mean, 1e-9)
	require.Less(t, ci.Lower, ci.Mean)
	require.Greater(t, ci.Upper, ci.Mean)
	require.GreaterOrEqual(t, ci.Lower, 5.5)
	require.LessOrEqual(t, ci.Upper, 9.1)
	require.Equal(t, DefaultBootstrapIterations, ci.NumBootstraps)
	require.Equal(t, 0.95, ci.ConfidenceLevel)
}

func TestBootstrapCI_Reproducible(t *testing.T) {
	composites := []float64{4.0, 6.5, 7.0, 9.5}
	a := BootstrapCIWithSeed(composites, 0.9, 99)
	b := BootstrapCIWithSeed(composites, 0.9, 99)
	require.Equal(t, a, b)
}
