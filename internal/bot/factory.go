package bot

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// BotLevel selects a strategy.
type BotLevel string

const (
	BotLevelRandom BotLevel = "random"
	BotLevelGreedy BotLevel = "greedy"
)

// ParseLevel converts a flag or request value into a BotLevel.
func ParseLevel(s string) (BotLevel, error) {
	switch l := BotLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case BotLevelRandom, BotLevelGreedy:
		return l, nil
	default:
		return "", fmt.Errorf("unknown bot level: %q", s)
	}
}

// NewBrain creates a new AI brain based on the specified level. rng is only
// used by the random level and may be nil.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	switch level {
	case BotLevelGreedy:
		return &GreedyBot{Tuning: DefaultTuning}, nil
	case BotLevelRandom:
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return &RandomBot{rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %q", level)
	}
}
