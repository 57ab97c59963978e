package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/transcript"
)

func TestScoreCommand_JSON(t *testing.T) {
	dir := isolate(t)
	transcriptPath := writeFile(t, dir, "run.jsonl", sloppyTranscript())
	writeFile(t, dir, "rubrics/data-migration.md", "# Migration\n### Correctness\nMigrations must be reversible.\n")
	scoresDir := filepath.Join(dir, "out")

	stdout, _, err := runCommand(t, "score",
		"--skill", "data-migration",
		"--transcript", transcriptPath,
		"--rubric-dir", filepath.Join(dir, "rubrics"),
		"--scores-dir", scoresDir,
		"--format", "json",
	)
	require.NoError(t, err)

	var card models.Scorecard
	require.NoError(t, json.Unmarshal([]byte(stdout), &card))
	require.Equal(t, "data-migration", card.Skill)
	require.Equal(t, "data-migration", card.RubricUsed)
	require.Equal(t, 5, card.TranscriptLines)
	require.Len(t, card.Dimensions, len(models.AllDimensions()))
	require.GreaterOrEqual(t, card.CompositeScore, float64(models.MinScore))
	require.LessOrEqual(t, card.CompositeScore, float64(models.MaxScore))
	require.NotEmpty(t, card.RunID)

	entries, err := os.ReadDir(scoresDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestScoreCommand_Text(t *testing.T) {
	dir := isolate(t)
	transcriptPath := writeFile(t, dir, "run.txt", sloppyTranscript())

	stdout, stderr, err := runCommand(t, "score",
		"--skill", "data-migration",
		"--transcript", transcriptPath,
		"--format", "text",
	)
	require.NoError(t, err)
	require.Contains(t, stdout, "VERDICT SCORECARD -- data-migration")
	require.Contains(t, stderr, "Scorecard written to")

	entries, err := os.ReadDir(filepath.Join(dir, "scores"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestScoreCommand_MissingTranscript(t *testing.T) {
	dir := isolate(t)

	_, _, err := runCommand(t, "score",
		"--skill", "data-migration",
		"--transcript", filepath.Join(dir, "missing.jsonl"),
		"--format", "json",
	)
	require.ErrorIs(t, err, transcript.ErrNotFound)

	var thresholdErr *ThresholdError
	require.False(t, errors.As(err, &thresholdErr))
}

func TestScoreCommand_RequiredFlags(t *testing.T) {
	isolate(t)

	_, _, err := runCommand(t, "score", "--skill", "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "transcript")
}

func TestScoreCommand_BadFormat(t *testing.T) {
	dir := isolate(t)
	transcriptPath := writeFile(t, dir, "run.txt", sloppyTranscript())

	_, _, err := runCommand(t, "score", "--skill", "x", "--transcript", transcriptPath, "--format", "xml")
	require.ErrorContains(t, err, `unsupported format "xml"`)
}

func TestScoreCommand_MinScore(t *testing.T) {
	dir := isolate(t)
	transcriptPath := writeFile(t, dir, "run.txt", sloppyTranscript())

	_, _, err := runCommand(t, "score",
		"--skill", "data-migration",
		"--transcript", transcriptPath,
		"--format", "json",
		"--min-score", "9.5",
	)
	var thresholdErr *ThresholdError
	require.ErrorAs(t, err, &thresholdErr)
	require.InDelta(t, 9.5, thresholdErr.MinScore, 1e-9)
	require.Less(t, thresholdErr.Composite, 9.5)

	_, _, err = runCommand(t, "score",
		"--skill", "data-migration",
		"--transcript", transcriptPath,
		"--format", "json",
		"--min-score", "1",
	)
	require.NoError(t, err)
}

func TestScoreCommand_ProjectConfig(t *testing.T) {
	dir := isolate(t)
	transcriptPath := writeFile(t, dir, "run.txt", sloppyTranscript())
	writeFile(t, dir, ".verdict.yaml", `paths:
  scores: custom-scores
scoring:
  min_score: 9.5
`)

	_, _, err := runCommand(t, "score", "--skill", "data-migration", "--transcript", transcriptPath, "--format", "json")
	var thresholdErr *ThresholdError
	require.ErrorAs(t, err, &thresholdErr)

	entries, err := os.ReadDir(filepath.Join(dir, "custom-scores"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestScoreCommand_EnvOverridesConfigFile(t *testing.T) {
	dir := isolate(t)
	transcriptPath := writeFile(t, dir, "run.txt", sloppyTranscript())
	writeFile(t, dir, ".verdict.yaml", "paths:\n  scores: from-file\n")
	t.Setenv("VERDICT_SCORES_DIR", filepath.Join(dir, "from-env"))

	_, _, err := runCommand(t, "score", "--skill", "data-migration", "--transcript", transcriptPath, "--format", "json")
	require.NoError(t, err)

	require.DirExists(t, filepath.Join(dir, "from-env"))
	require.NoDirExists(t, filepath.Join(dir, "from-file"))
}

func TestScoreCommand_WeightsFlag(t *testing.T) {
	dir := isolate(t)
	transcriptPath := writeFile(t, dir, "run.txt", sloppyTranscript())
	configPath := writeFile(t, dir, "weights.json", `{"scoring": {"dimensions": {"correctness": 0.9, "bogus": 0.5}}}`)

	stdout, _, err := runCommand(t, "score",
		"--skill", "data-migration",
		"--transcript", transcriptPath,
		"--config", configPath,
		"--format", "json",
	)
	require.NoError(t, err)

	var card models.Scorecard
	require.NoError(t, json.Unmarshal([]byte(stdout), &card))
	require.InDelta(t, 0.9, card.Dimensions[models.DimensionCorrectness].Weight, 1e-9)
	require.InDelta(t, 0.20, card.Dimensions[models.DimensionCompleteness].Weight, 1e-9)
}
