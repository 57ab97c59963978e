package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/skilljudge/verdict/internal/projectconfig"
	"github.com/skilljudge/verdict/internal/scoring"
)

// Output formats.
const (
	formatText  = "text"
	formatJSON  = "json"
	formatJUnit = "junit"
)

// loadProjectConfig resolves .verdict.yaml from the working directory and
// applies environment overrides. Command flags are applied by the caller.
func loadProjectConfig(ctx context.Context) (*projectconfig.ProjectConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return nil, err
	}
	if err := projectconfig.ApplyEnv(ctx, cfg, nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEngine builds a scoring engine from cfg. Weights come from the defaults,
// then the inline scoring.dimensions, then the weight document. Problems with
// any of them are logged and the previous layer is kept.
func newEngine(cfg *projectconfig.ProjectConfig, logger *slog.Logger) *scoring.Engine {
	engineCfg := scoring.DefaultConfig()

	weights := engineCfg.Weights
	inline, err := cfg.Scoring.InlineWeights()
	if err != nil {
		logger.Warn("inline weights unusable, keeping defaults", "source", projectconfig.FileName, "error", err)
	} else {
		var ignored []string
		weights, ignored = projectconfig.MergeWeights(weights, inline)
		if len(ignored) > 0 {
			logger.Warn("ignoring unknown or out-of-range weights", "source", projectconfig.FileName, "keys", ignored)
		}
	}

	if cfg.Scoring.Config != "" {
		overrides, err := projectconfig.ReadWeights(cfg.Scoring.Config)
		if err != nil {
			logger.Warn("weight config unusable, keeping defaults", "path", cfg.Scoring.Config, "error", err)
		} else {
			var ignored []string
			weights, ignored = projectconfig.MergeWeights(weights, overrides)
			if len(ignored) > 0 {
				logger.Warn("ignoring unknown or out-of-range weights", "source", cfg.Scoring.Config, "keys", ignored)
			}
		}
	}
	engineCfg.Weights = weights

	if len(cfg.Grades) > 0 {
		if err := scoring.ValidateLadder(cfg.Grades); err != nil {
			logger.Warn("invalid grade ladder, using default", "error", err)
		} else {
			engineCfg.Ladder = cfg.Grades
		}
	}

	return scoring.NewEngine(engineCfg)
}

// resolveFormat returns format, or when it is empty, text for terminals and
// JSON otherwise.
func resolveFormat(format string, w io.Writer) string {
	if format != "" {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return formatText
	}
	return formatJSON
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q: must be one of %v", format, allowed)
}
