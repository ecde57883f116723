package app

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"stackem/internal/domain"
)

// Service contains the session use-cases. Every operation takes the prior
// session by value and returns the next one; the prior value is never modified.
type Service struct {
	rules domain.Rules
	rng   *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rules domain.Rules, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rules: rules, rng: rng}
}

// Rules returns the constants this service plays by.
func (s *Service) Rules() domain.Rules {
	return s.rules
}

// Command is an input to Apply.
type Command interface {
	commandName() string
}

// ResetCommand starts over, optionally switching difficulty.
// An empty Difficulty keeps the current one.
type ResetCommand struct {
	Difficulty domain.Difficulty
}

// DealCommand requests three new cards or a reshuffle.
type DealCommand struct{}

// PlaceCommand drops a hand card at a screen position.
type PlaceCommand struct {
	Drop Drop
}

func (ResetCommand) commandName() string { return "reset" }
func (DealCommand) commandName() string  { return "deal" }
func (PlaceCommand) commandName() string { return "place" }

// Drop describes the end of a drag: which hand card was released where, and
// the on-screen centers of the candidate slots.
type Drop struct {
	HandIndex int
	Card      domain.Card
	Point     domain.Point
	Slots     []domain.SlotCenter
}

// Apply dispatches cmd to the matching operation.
func (s *Service) Apply(prev domain.Session, cmd Command) (domain.Session, []Event) {
	switch c := cmd.(type) {
	case ResetCommand:
		d := c.Difficulty
		if d == "" {
			d = prev.Difficulty
		}
		if !d.Valid() {
			return prev, refused(c, RefusedUnknownDifficulty)
		}
		return s.NewSession(d)
	case DealCommand:
		return s.Deal(prev)
	case PlaceCommand:
		return s.Place(prev, c.Drop)
	default:
		return prev, []Event{{
			Kind:    EventCommandRefused,
			Payload: CommandRefusedPayload{Reason: RefusedUnknownCommand},
		}}
	}
}

// NewSession builds a fresh deck, pre-places cards for the difficulty and
// returns a zero-score session. Unknown difficulties fall back to DefaultDifficulty.
func (s *Service) NewSession(d domain.Difficulty) (domain.Session, []Event) {
	if !d.Valid() {
		d = DefaultDifficulty
	}
	deck := domain.CreateDeck(s.rng)
	grid, deck := domain.InitializeBoard(s.rules, d, deck, s.rng)

	session := domain.Session{
		ID:         uuid.NewString(),
		Difficulty: d,
		Deck:       deck,
		Grid:       grid,
	}
	return session, []Event{{
		Kind: EventSessionReset,
		Payload: SessionResetPayload{
			SessionID:  session.ID,
			Difficulty: d,
			PrePlaced:  len(grid.PlacedCards()),
		},
	}}
}

// Deal hands out the next three undealt cards. When fewer than three remain
// the deck is rebuilt without the cards already on the board instead, up to
// the rules' cycle cap. Both paths charge the difficulty penalty.
func (s *Service) Deal(prev domain.Session) (domain.Session, []Event) {
	cmd := DealCommand{}
	if prev.IsDealing {
		return prev, refused(cmd, RefusedAlreadyDealing)
	}

	next := prev.Clone()
	next.ShowAnimation = false
	next.AnimationType = ""
	penalty := s.rules.PenaltyFor(prev.Difficulty)

	var events []Event
	undealt := domain.UndealtCards(prev.Deck)
	if len(undealt) < domain.HandSize {
		if prev.DeckCycles >= s.rules.MaxDeckCycles {
			return prev, refused(cmd, RefusedDeckCyclesExhausted)
		}
		next.Deck = domain.RemoveCards(domain.CreateDeck(s.rng), prev.Grid.PlacedCards())
		next.DeckCycles++
		next.DealtCards = nil
		next.Score += penalty
		events = append(events, Event{
			Kind: EventDeckReshuffled,
			Payload: DeckReshuffledPayload{
				DeckCycles: next.DeckCycles,
				Penalty:    penalty,
				Score:      next.Score,
				Remaining:  next.UndealtCount(),
			},
		})
	} else {
		hand := make([]domain.Card, domain.HandSize)
		copy(hand, undealt[:domain.HandSize])
		for i := range hand {
			hand[i].IsDealt = true
		}
		next.Deck = domain.MarkDealt(prev.Deck, hand)
		next.DealtCards = hand
		next.Score += penalty
		events = append(events, Event{
			Kind: EventCardsDealt,
			Payload: CardsDealtPayload{
				Cards:     append([]domain.Card(nil), hand...),
				Penalty:   penalty,
				Score:     next.Score,
				Remaining: next.UndealtCount(),
			},
		})
	}

	return next, s.appendGameOver(prev, next, events)
}

// Place resolves a drop to the nearest slot and places the card there when
// the slot is within the snap threshold, interior and empty.
func (s *Service) Place(prev domain.Session, drop Drop) (domain.Session, []Event) {
	cmd := PlaceCommand{Drop: drop}
	if !inHand(prev, drop.HandIndex, drop.Card) {
		return prev, refused(cmd, RefusedCardNotInHand)
	}
	slot, distance, ok := domain.NearestSlot(drop.Point, drop.Slots)
	if !ok {
		return prev, refused(cmd, RefusedNoSlots)
	}
	if distance > s.rules.SnapThreshold {
		return prev, refused(cmd, RefusedOutsideSnapRadius)
	}
	return s.place(prev, cmd, drop.HandIndex, slot.Index)
}

// PlaceAt places the hand card at handIndex directly on slot, skipping drop
// geometry. Bots and server-side clients use it.
func (s *Service) PlaceAt(prev domain.Session, handIndex, slot int) (domain.Session, []Event) {
	cmd := PlaceCommand{}
	if handIndex < 0 || handIndex >= len(prev.DealtCards) {
		return prev, refused(cmd, RefusedCardNotInHand)
	}
	return s.place(prev, cmd, handIndex, slot)
}

func (s *Service) place(prev domain.Session, cmd Command, handIndex, slot int) (domain.Session, []Event) {
	if !domain.IsInteriorSlot(slot) {
		return prev, refused(cmd, RefusedTotalSlot)
	}
	if prev.Grid.IsOccupied(slot) {
		return prev, refused(cmd, RefusedSlotOccupied)
	}

	card := prev.DealtCards[handIndex]
	next := prev.Clone()
	next.Grid = prev.Grid.Place(slot, card)
	next.DealtCards = append(next.DealtCards[:handIndex], next.DealtCards[handIndex+1:]...)

	delta := domain.PositionScore(next.Grid, slot)
	next.Score += delta
	next.ShowAnimation = false
	next.AnimationType = ""

	events := []Event{{
		Kind: EventCardPlaced,
		Payload: CardPlacedPayload{
			Card:      card,
			HandIndex: handIndex,
			Slot:      slot,
			Delta:     delta,
			Score:     next.Score,
		},
	}}

	if combo, ok := domain.Check21Combination(next.Grid, slot); ok {
		next.ShowAnimation = true
		next.AnimationType = domain.AnimationThreeCard
		if combo.CardCount == 2 {
			next.AnimationType = domain.AnimationTwoCard
		}
		events = append(events, Event{
			Kind:    EventCombination,
			Payload: CombinationPayload{Combination: combo, Animation: next.AnimationType},
		})
	}

	return next, s.appendGameOver(prev, next, events)
}

func (s *Service) appendGameOver(prev, next domain.Session, events []Event) []Event {
	limit := s.rules.MaxDeckCycles
	if prev.IsOver(limit) || !next.IsOver(limit) {
		return events
	}
	return append(events, Event{
		Kind: EventGameOver,
		Payload: GameOverPayload{
			Score:      next.Score,
			Difficulty: next.Difficulty,
			DeckCycles: next.DeckCycles,
		},
	})
}

func inHand(s domain.Session, index int, card domain.Card) bool {
	if index < 0 || index >= len(s.DealtCards) {
		return false
	}
	return s.DealtCards[index].SameCard(card)
}

func refused(cmd Command, reason RefusalReason) []Event {
	return []Event{{
		Kind:    EventCommandRefused,
		Payload: CommandRefusedPayload{Command: cmd.commandName(), Reason: reason},
	}}
}
