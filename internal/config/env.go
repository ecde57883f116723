package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// RuntimeEnv is read from the Nakama runtime environment (the [runtime] env
// entries of the server config).
type RuntimeEnv struct {
	ConfigPath        string `env:"stackem_config_path" envDefault:"data/game_config.json"`
	DefaultDifficulty string `env:"stackem_default_difficulty" envDefault:"medium"`
	LeaderboardPrefix string `env:"stackem_leaderboard_prefix" envDefault:"stackem"`
	TickRate          int    `env:"stackem_tick_rate" envDefault:"5"`
}

// ParseRuntimeEnv decodes vars into a RuntimeEnv, applying defaults for missing keys.
func ParseRuntimeEnv(vars map[string]string) (RuntimeEnv, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	var out RuntimeEnv
	if err := env.ParseWithOptions(&out, env.Options{Environment: vars}); err != nil {
		return RuntimeEnv{}, fmt.Errorf("failed to parse runtime env: %w", err)
	}
	if out.TickRate <= 0 {
		return RuntimeEnv{}, fmt.Errorf("stackem_tick_rate must be positive, got %d", out.TickRate)
	}
	return out, nil
}
