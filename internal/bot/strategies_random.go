package bot

import (
	"math/rand"

	"stackem/internal/bot/internal"
	"stackem/internal/domain"
)

// RandomBot drops the active card on any free slot. Useful as a baseline.
type RandomBot struct {
	rng *rand.Rand
}

func (b *RandomBot) CalculateMove(s domain.Session, rules domain.Rules) (Move, error) {
	_, index, ok := s.ActiveCard()
	if !ok {
		return dealOrStop(s, rules)
	}
	slots := internal.EmptySlots(s.Grid)
	if len(slots) == 0 {
		return Move{}, ErrNoMove
	}
	return Move{HandIndex: index, Slot: slots[b.rng.Intn(len(slots))]}, nil
}
