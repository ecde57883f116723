package domain

// DefaultSnapThreshold is the largest drop distance, in pixels, that still snaps to a slot.
const DefaultSnapThreshold = 50.0

// DefaultMaxDeckCycles is the number of reshuffles allowed per game.
const DefaultMaxDeckCycles = 3

// Rules holds the tunable constants of a game.
type Rules struct {
	PrePlaced     map[Difficulty]int
	DealPenalty   map[Difficulty]int // points deducted per deal or reshuffle
	SnapThreshold float64
	MaxDeckCycles int
}

// DefaultRules returns the standard game constants.
func DefaultRules() Rules {
	return Rules{
		PrePlaced: map[Difficulty]int{
			DifficultyEasy:   0,
			DifficultyMedium: 3,
			DifficultyHard:   6,
		},
		DealPenalty: map[Difficulty]int{
			DifficultyEasy:   3,
			DifficultyMedium: 6,
			DifficultyHard:   10,
		},
		SnapThreshold: DefaultSnapThreshold,
		MaxDeckCycles: DefaultMaxDeckCycles,
	}
}

// PrePlacedCount returns how many cards start on the board.
func (r Rules) PrePlacedCount(d Difficulty) int {
	return r.PrePlaced[d]
}

// PenaltyFor returns the signed score change charged for a deal.
func (r Rules) PenaltyFor(d Difficulty) int {
	return -r.DealPenalty[d]
}
