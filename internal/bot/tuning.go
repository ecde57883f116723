package bot

import botinternal "stackem/internal/bot/internal"

// Tuning holds the greedy bot's placement weights and deal policy.
type Tuning struct {
	Weights botinternal.Weights
	// DealThreshold: when the best placement is worth less than this and a
	// fresh hand is available, the bot pays the penalty and deals instead.
	DealThreshold float64
}

// DefaultTuning values immediate points first and keeps lines reachable.
var DefaultTuning = Tuning{
	Weights: botinternal.Weights{
		Score:       1.0,
		Progress:    12.0,
		Blocked:     40.0,
		Combination: 5.0,
	},
	DealThreshold: -45.0,
}
