package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"stackem/internal/domain"
)

// DefaultLeaderboardLimit caps leaderboard queries when the file sets no limit.
const DefaultLeaderboardLimit = 100

type DifficultyRules struct {
	PrePlaced   *int `json:"pre_placed,omitempty"`
	DealPenalty *int `json:"deal_penalty,omitempty"`
}

type GameConfig struct {
	DefaultDifficulty string                     `json:"default_difficulty"`
	Difficulties      map[string]DifficultyRules `json:"difficulties"`
	// SnapThresholdPx is the farthest a drop may land from a slot center and still snap.
	SnapThresholdPx  float64 `json:"snap_threshold_px"`
	MaxDeckCycles    int     `json:"max_deck_cycles"`
	LeaderboardLimit int     `json:"leaderboard_limit"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
// A missing file is not an error; the built-in rules apply.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			cfg = &GameConfig{}
			return
		}
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := ParseGameConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// ParseGameConfig decodes and validates a game configuration document.
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if c.DefaultDifficulty != "" {
		if _, err := domain.ParseDifficulty(c.DefaultDifficulty); err != nil {
			return nil, fmt.Errorf("invalid default_difficulty: %w", err)
		}
	}
	for name, d := range c.Difficulties {
		if _, err := domain.ParseDifficulty(name); err != nil {
			return nil, fmt.Errorf("invalid difficulties entry: %w", err)
		}
		if d.PrePlaced != nil && (*d.PrePlaced < 0 || *d.PrePlaced > domain.DeckSize) {
			return nil, fmt.Errorf("pre_placed for %s out of range: %d", name, *d.PrePlaced)
		}
		if d.DealPenalty != nil && *d.DealPenalty < 0 {
			return nil, fmt.Errorf("deal_penalty for %s must not be negative: %d", name, *d.DealPenalty)
		}
	}
	if c.SnapThresholdPx < 0 || c.MaxDeckCycles < 0 || c.LeaderboardLimit < 0 {
		return nil, fmt.Errorf("snap_threshold_px, max_deck_cycles and leaderboard_limit must not be negative")
	}
	return &c, nil
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// Rules merges the file over domain.DefaultRules. Zero values keep the default.
func (c *GameConfig) Rules() domain.Rules {
	rules := domain.DefaultRules()
	if c == nil {
		return rules
	}
	for name, d := range c.Difficulties {
		diff, err := domain.ParseDifficulty(name)
		if err != nil {
			continue
		}
		if d.PrePlaced != nil {
			rules.PrePlaced[diff] = *d.PrePlaced
		}
		if d.DealPenalty != nil {
			rules.DealPenalty[diff] = *d.DealPenalty
		}
	}
	if c.SnapThresholdPx > 0 {
		rules.SnapThreshold = c.SnapThresholdPx
	}
	if c.MaxDeckCycles > 0 {
		rules.MaxDeckCycles = c.MaxDeckCycles
	}
	return rules
}

// Difficulty returns the configured default difficulty, or fallback when unset.
func (c *GameConfig) Difficulty(fallback domain.Difficulty) domain.Difficulty {
	if c == nil || c.DefaultDifficulty == "" {
		return fallback
	}
	d, err := domain.ParseDifficulty(c.DefaultDifficulty)
	if err != nil {
		return fallback
	}
	return d
}

// Limit returns the leaderboard page size.
func (c *GameConfig) Limit() int {
	if c == nil || c.LeaderboardLimit <= 0 {
		return DefaultLeaderboardLimit
	}
	return c.LeaderboardLimit
}

// CurrentRules returns the loaded rules, or the defaults before LoadGameConfig.
func CurrentRules() domain.Rules {
	return cfg.Rules()
}
