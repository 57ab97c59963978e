package projectconfig

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// EnvOverrides are the environment variables that take precedence over
// .verdict.yaml but yield to explicit command-line flags.
type EnvOverrides struct {
	RubricsDir    string `env:"VERDICT_RUBRICS_DIR"`
	ScoresDir     string `env:"VERDICT_SCORES_DIR"`
	ReferencesDir string `env:"VERDICT_REFERENCES_DIR"`
	WeightsConfig string `env:"VERDICT_CONFIG"`
}

// ApplyEnv overlays environment overrides onto cfg. A nil lookuper reads the
// process environment.
func ApplyEnv(ctx context.Context, cfg *ProjectConfig, lookuper envconfig.Lookuper) error {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var env EnvOverrides
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("reading environment overrides: %w", err)
	}

	if env.RubricsDir != "" {
		cfg.Paths.Rubrics = env.RubricsDir
	}
	if env.ScoresDir != "" {
		cfg.Paths.Scores = env.ScoresDir
	}
	if env.ReferencesDir != "" {
		cfg.Paths.References = env.ReferencesDir
	}
	if env.WeightsConfig != "" {
		cfg.Scoring.Config = env.WeightsConfig
	}
	return nil
}
