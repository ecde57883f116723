package bot

import (
	"stackem/internal/bot/internal"
	"stackem/internal/domain"
)

// GreedyBot places the active card where it scores best right now, falling
// back to a deal when every placement looks worse than the deal penalty.
type GreedyBot struct {
	Tuning Tuning
}

func (b *GreedyBot) CalculateMove(s domain.Session, rules domain.Rules) (Move, error) {
	card, index, ok := s.ActiveCard()
	if !ok {
		return dealOrStop(s, rules)
	}

	ranked := internal.RankSlots(s.Grid, card, b.Tuning.Weights)
	if len(ranked) == 0 {
		return dealOrStop(s, rules)
	}
	best := ranked[0]

	// A deal only helps when it hands out fresh cards; a reshuffle also
	// throws the hand away.
	if best.Value < b.Tuning.DealThreshold && !s.IsDealing && s.UndealtCount() >= domain.HandSize {
		return Move{Deal: true, Expected: float64(rules.PenaltyFor(s.Difficulty))}, nil
	}
	return Move{HandIndex: index, Slot: best.Slot, Expected: best.Value}, nil
}

func dealOrStop(s domain.Session, rules domain.Rules) (Move, error) {
	if !s.CanDeal(rules.MaxDeckCycles) || s.Grid.EmptyInteriorCount() == 0 {
		return Move{}, ErrNoMove
	}
	return Move{Deal: true, Expected: float64(rules.PenaltyFor(s.Difficulty))}, nil
}
