package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skilljudge/verdict/internal/models"
	"github.com/stretchr/testify/require"
)

func card(skill string, ts time.Time, composite float64) *models.Scorecard {
	return &models.Scorecard{
		Skill:          skill,
		RunID:          "run-" + ts.Format("150405"),
		Timestamp:      ts,
		RawComposite:   composite,
		CompositeScore: composite,
		Grade:          "B",
		GradeLabel:     "Above Average",
		Dimensions: map[models.Dimension]models.DimensionScore{
			models.DimensionSafety: {Score: 10, Weight: 0.1, Weighted: 1.0, Justification: "No safety concerns detected"},
		},
		RedFlags:        []string{},
		Bonuses:         []string{},
		RubricUsed:      "default",
		TranscriptLines: 12,
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "code-review_2025-01-15T12-00-00Z.json", Filename("code-review", ts))
	require.Equal(t, "my-skill_2025-01-15T12-00-00Z.json", Filename("My Skill", ts))

	local := ts.In(time.FixedZone("X", 3*3600))
	require.Equal(t, "code-review_2025-01-15T12-00-00Z.json", Filename("code-review", local))
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "scores"), nil)
	ts := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	path, err := store.Save(card("code-review", ts, 7.85))
	require.NoError(t, err)
	require.Equal(t, "code-review_2025-01-15T12-00-00Z.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "\n  \"skill\": \"code-review\"")
	require.Contains(t, string(data), `"timestamp": "2025-01-15T12:00:00Z"`)

	loaded, err := store.Load("code-review")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.InDelta(t, 7.85, loaded[0].CompositeScore, 1e-9)
	require.True(t, ts.Equal(loaded[0].Timestamp))
	require.Equal(t, 10, loaded[0].Dimensions[models.DimensionSafety].Score)
}

func TestLoad_SortedOldestFirstAndFiltered(t *testing.T) {
	store := NewFileStore(t.TempDir(), nil)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, c := range []float64{6.0, 8.0, 7.0} {
		_, err := store.Save(card("code-review", base.Add(time.Duration(2-i)*time.Hour), c))
		require.NoError(t, err)
	}
	_, err := store.Save(card("code-review-v2", base, 3.0))
	require.NoError(t, err)
	_, err = store.Save(card("code", base, 4.0))
	require.NoError(t, err)

	loaded, err := store.Load("code-review")
	require.NoError(t, err)
	require.Equal(t, []float64{7.0, 8.0, 6.0}, models.Composites(loaded))

	all, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestLoad_SkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, nil)
	ts := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	_, err := store.Save(card("code-review", ts, 8.0))
	require.NoError(t, err)

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("code-review_2025-01-16T00-00-00Z.json", "{not json")
	write("code-review_2025-01-17T00-00-00Z.json", `{"skill": "code-review", "timestamp": "2025-01-17T00:00:00Z"}`)
	write("code-review_2025-01-18T00-00-00Z.json", `{"skill": "code-review", "timestamp": "yesterday", "composite_score": 5}`)
	write("notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "code-review_dir.json"), 0o755))

	loaded, err := store.Load("code-review")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.InDelta(t, 8.0, loaded[0].CompositeScore, 1e-9)
}

func TestLoad_MissingDirectory(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent"), nil)
	loaded, err := store.Load("anything")
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestLoad_ReadsForeignWriterRecords(t *testing.T) {
	dir := t.TempDir()
	record := map[string]any{
		"skill":           "debugging",
		"timestamp":       "2024-12-31T23:59:59Z",
		"composite_score": 6.5,
		"grade":           "C+",
		"dimensions":      map[string]any{"correctness": map[string]any{"score": 7}},
	}
	data, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "debugging_2024-12-31T23-59-59Z.json"), data, 0o644))

	loaded, err := NewFileStore(dir, nil).Load("debugging")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "C+", loaded[0].Grade)
	require.Equal(t, 7, loaded[0].Dimensions[models.DimensionCorrectness].Score)
}

func TestSave_SameSecondOverwrites(t *testing.T) {
	store := NewFileStore(t.TempDir(), nil)
	ts := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	_, err := store.Save(card("code-review", ts, 5.0))
	require.NoError(t, err)
	_, err = store.Save(card("code-review", ts, 9.0))
	require.NoError(t, err)

	loaded, err := store.Load("code-review")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.InDelta(t, 9.0, loaded[0].CompositeScore, 1e-9)
}
