// Package history persists scorecards as JSON files and reads them back as
// history for consistency scoring and reports.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/validation"
)

// TimestampLayout is the second-resolution UTC layout used on scorecards.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Store reads and writes scorecards.
type Store interface {
	// Load returns the scorecards recorded for skill, oldest first.
	Load(skill string) ([]models.Scorecard, error)
	// Save persists card and returns the path written.
	Save(card *models.Scorecard) (string, error)
}

var _ Store = (*FileStore)(nil)

// FileStore keeps one JSON file per scorecard in a directory.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on
// the first Save.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{dir: dir, logger: logger}
}

// Dir returns the store directory.
func (fs *FileStore) Dir() string {
	return fs.dir
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "unnamed"
	}
	return s
}

// Filename returns the scorecard filename for skill at ts.
func Filename(skill string, ts time.Time) string {
	stamp := strings.ReplaceAll(ts.UTC().Format(TimestampLayout), ":", "-")
	return fmt.Sprintf("%s_%s.json", sanitizeName(skill), stamp)
}

// Save writes card to the store directory, creating it if needed. A second
// card for the same skill within the same second replaces the first.
func (fs *FileStore) Save(card *models.Scorecard) (string, error) {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return "", fmt.Errorf("create scores dir: %w", err)
	}

	path := filepath.Join(fs.dir, Filename(card.Skill, card.Timestamp))

	data, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal scorecard: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write scorecard: %w", err)
	}
	return path, nil
}

// Load returns the valid scorecards recorded for skill, oldest first.
func (fs *FileStore) Load(skill string) ([]models.Scorecard, error) {
	return fs.load(func(name string, card *models.Scorecard) bool {
		return strings.HasPrefix(name, sanitizeName(skill)+"_") && card.Skill == skill
	})
}

// LoadAll returns every valid scorecard in the store, oldest first.
func (fs *FileStore) LoadAll() ([]models.Scorecard, error) {
	return fs.load(func(string, *models.Scorecard) bool { return true })
}

// load reads all scorecard files accepted by keep. Unreadable, malformed or
// schema-invalid files are skipped.
func (fs *FileStore) load(keep func(name string, card *models.Scorecard) bool) ([]models.Scorecard, error) {
	if fs.dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading scores dir: %w", err)
	}

	var cards []models.Scorecard
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(fs.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			fs.logger.Debug("skipping unreadable scorecard", "path", path, "error", err)
			continue
		}
		if errs := validation.ValidateScorecardBytes(data); len(errs) > 0 {
			fs.logger.Debug("skipping invalid scorecard", "path", path, "errors", errs)
			continue
		}
		var card models.Scorecard
		if err := json.Unmarshal(data, &card); err != nil {
			fs.logger.Debug("skipping malformed scorecard", "path", path, "error", err)
			continue
		}
		if !keep(e.Name(), &card) {
			continue
		}
		cards = append(cards, card)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Timestamp.Before(cards[j].Timestamp)
	})
	return cards, nil
}
