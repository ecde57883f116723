package bot

import (
	"errors"
	"fmt"

	"stackem/internal/app"
	"stackem/internal/domain"
)

// maxTurns bounds PlayGame in case a strategy keeps issuing refused moves.
const maxTurns = 1000

// Agent represents an autonomous player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Play asks the agent to calculate its move based on the current session.
func (a *Agent) Play(s domain.Session, rules domain.Rules) (Move, error) {
	if a.Strategy == nil {
		return Move{}, fmt.Errorf("agent %s has no strategy", a.ID)
	}
	return a.Strategy.CalculateMove(s, rules)
}

// Apply runs move through svc.
func Apply(svc *app.Service, s domain.Session, move Move) (domain.Session, []app.Event) {
	if move.Deal {
		return svc.Deal(s)
	}
	return svc.PlaceAt(s, move.HandIndex, move.Slot)
}

// PlayGame plays s to the end and returns the final session.
func (a *Agent) PlayGame(svc *app.Service, s domain.Session) (domain.Session, error) {
	rules := svc.Rules()
	for turn := 0; turn < maxTurns; turn++ {
		if s.IsOver(rules.MaxDeckCycles) {
			return s, nil
		}
		move, err := a.Play(s, rules)
		if errors.Is(err, ErrNoMove) {
			return s, nil
		}
		if err != nil {
			return s, err
		}
		next, events := Apply(svc, s, move)
		for _, ev := range events {
			if ev.Kind == app.EventCommandRefused {
				p := ev.Payload.(app.CommandRefusedPayload)
				return next, fmt.Errorf("agent %s move refused: %s", a.ID, p.Reason)
			}
		}
		s = next
	}
	return s, fmt.Errorf("agent %s did not finish within %d turns", a.ID, maxTurns)
}
