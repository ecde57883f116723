package app

import "stackem/internal/domain"

// EventKind identifies emitted session events for adapter dispatch.
type EventKind string

const (
	EventSessionReset   EventKind = "session_reset"
	EventCardsDealt     EventKind = "cards_dealt"
	EventDeckReshuffled EventKind = "deck_reshuffled"
	EventCardPlaced     EventKind = "card_placed"
	EventCombination    EventKind = "combination"
	EventCommandRefused EventKind = "command_refused"
	EventGameOver       EventKind = "game_over"
)

// Event is something that happened while applying a command.
type Event struct {
	Kind    EventKind
	Payload any
}

type SessionResetPayload struct {
	SessionID  string
	Difficulty domain.Difficulty
	PrePlaced  int
}

type CardsDealtPayload struct {
	Cards     []domain.Card
	Penalty   int
	Score     int
	Remaining int // undealt cards left in the deck
}

type DeckReshuffledPayload struct {
	DeckCycles int
	Penalty    int
	Score      int
	Remaining  int
}

type CardPlacedPayload struct {
	Card      domain.Card
	HandIndex int
	Slot      int
	Delta     int
	Score     int
}

type CombinationPayload struct {
	Combination domain.Combination
	Animation   domain.AnimationType
}

type CommandRefusedPayload struct {
	Command string
	Reason  RefusalReason
}

type GameOverPayload struct {
	Score      int
	Difficulty domain.Difficulty
	DeckCycles int
}
