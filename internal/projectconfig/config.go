// Package projectconfig provides the ProjectConfig struct and loader for
// .verdict.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skilljudge/verdict/internal/models"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up from the working directory.
const FileName = ".verdict.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultRubricsDir    = "rubrics/"
	DefaultScoresDir     = "scores/"
	DefaultReferencesDir = "references/"
)

// PathsConfig holds directory paths for rubrics, scores and references.
type PathsConfig struct {
	Rubrics    string `yaml:"rubrics,omitempty"`
	Scores     string `yaml:"scores,omitempty"`
	References string `yaml:"references,omitempty"`
}

// ScoringConfig holds weight sources and the pass threshold.
type ScoringConfig struct {
	// Config is the path of a weight document (JSON or YAML with
	// scoring.dimensions) applied on top of Dimensions.
	Config string `yaml:"config,omitempty"`
	// Dimensions is kept undecoded so a bad weight does not fail Load.
	// InlineWeights converts it.
	Dimensions map[string]any `yaml:"dimensions,omitempty"`
	MinScore   *float64       `yaml:"min_score,omitempty"`
}

// InlineWeights decodes Dimensions into per-dimension weights. Numeric
// strings are accepted the same way ParseWeights accepts them.
func (s ScoringConfig) InlineWeights() (map[string]float64, error) {
	if len(s.Dimensions) == 0 {
		return nil, nil
	}
	var weights map[string]float64
	if err := decodeWeights(s.Dimensions, &weights); err != nil {
		return nil, fmt.Errorf("decoding scoring.dimensions in %s: %w", FileName, err)
	}
	return weights, nil
}

// ProjectConfig is the top-level configuration loaded from .verdict.yaml.
type ProjectConfig struct {
	Paths   PathsConfig        `yaml:"paths,omitempty"`
	Scoring ScoringConfig      `yaml:"scoring,omitempty"`
	Grades  []models.GradeTier `yaml:"grades,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Rubrics:    DefaultRubricsDir,
			Scores:     DefaultScoresDir,
			References: DefaultReferencesDir,
		},
	}
}

// Load finds .verdict.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .verdict.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Paths.Rubrics != "" {
		dst.Paths.Rubrics = src.Paths.Rubrics
	}
	if src.Paths.Scores != "" {
		dst.Paths.Scores = src.Paths.Scores
	}
	if src.Paths.References != "" {
		dst.Paths.References = src.Paths.References
	}

	if src.Scoring.Config != "" {
		dst.Scoring.Config = src.Scoring.Config
	}
	if len(src.Scoring.Dimensions) > 0 {
		dst.Scoring.Dimensions = src.Scoring.Dimensions
	}
	if src.Scoring.MinScore != nil {
		dst.Scoring.MinScore = src.Scoring.MinScore
	}

	if len(src.Grades) > 0 {
		dst.Grades = src.Grades
	}
}
