package bot

import (
	"errors"

	"stackem/internal/domain"
)

var ErrNoMove = errors.New("no legal move")

// Move represents the decision made by the AI: either a deal, or placing the
// hand card at HandIndex on Slot.
type Move struct {
	Deal      bool
	HandIndex int
	Slot      int
	// Expected is the strategy's own estimate of the move's value.
	Expected float64
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	CalculateMove(s domain.Session, rules domain.Rules) (Move, error)
}
