package nakama

import (
	"testing"

	"stackem/internal/app"
	"stackem/internal/domain"
)

func TestEventToMessage(t *testing.T) {
	card := domain.NewCard(domain.SuitSpades, domain.RankAce)
	tests := []struct {
		name   string
		event  app.Event
		opCode int64
		key    string
		value  interface{}
	}{
		{
			name:   "CardsDealt",
			event:  app.Event{Kind: app.EventCardsDealt, Payload: app.CardsDealtPayload{Cards: []domain.Card{card}, Penalty: -3, Score: -3, Remaining: 40}},
			opCode: OpCardsDealt,
			key:    "remaining",
			value:  float64(40),
		},
		{
			name:   "DeckReshuffled",
			event:  app.Event{Kind: app.EventDeckReshuffled, Payload: app.DeckReshuffledPayload{DeckCycles: 1}},
			opCode: OpDeckReshuffled,
			key:    "deck_cycles",
			value:  float64(1),
		},
		{
			name:   "CardPlaced",
			event:  app.Event{Kind: app.EventCardPlaced, Payload: app.CardPlacedPayload{Card: card, Slot: 14, Delta: 25}},
			opCode: OpCardPlaced,
			key:    "delta",
			value:  float64(25),
		},
		{
			name:   "Combination",
			event:  app.Event{Kind: app.EventCombination, Payload: app.CombinationPayload{Combination: domain.Combination{Line: domain.LineRow, Number: 2, CardCount: 2}, Animation: domain.AnimationTwoCard}},
			opCode: OpCombination,
			key:    "animation",
			value:  "2-card",
		},
		{
			name:   "Refused",
			event:  app.Event{Kind: app.EventCommandRefused, Payload: app.CommandRefusedPayload{Command: "deal", Reason: app.RefusedAlreadyDealing}},
			opCode: OpCommandRefused,
			key:    "reason",
			value:  string(app.RefusedAlreadyDealing),
		},
		{
			name:   "GameOver",
			event:  app.Event{Kind: app.EventGameOver, Payload: app.GameOverPayload{Score: 180, Difficulty: domain.DifficultyHard}},
			opCode: OpGameOver,
			key:    "difficulty",
			value:  "hard",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opCode, payload, err := eventToMessage(tt.event)
			if err != nil {
				t.Fatalf("eventToMessage() error: %v", err)
			}
			if opCode != tt.opCode {
				t.Fatalf("op code = %d, want %d", opCode, tt.opCode)
			}
			data, err := encodeStruct(payload)
			if err != nil {
				t.Fatalf("encodeStruct() error: %v", err)
			}
			if got := decodeStruct(t, data)[tt.key]; got != tt.value {
				t.Fatalf("%s = %v, want %v", tt.key, got, tt.value)
			}
		})
	}
}

func TestEventToMessage_SessionResetHasNoMessage(t *testing.T) {
	ev := app.Event{Kind: app.EventSessionReset, Payload: app.SessionResetPayload{SessionID: "s"}}
	if _, _, err := eventToMessage(ev); err == nil {
		t.Fatalf("expected error for session reset event")
	}
}

func TestSessionToMap_EmptySlotsAreNull(t *testing.T) {
	var s domain.Session
	s.Difficulty = domain.DifficultyEasy
	s.Grid = s.Grid.Place(7, domain.NewCard(domain.SuitHearts, domain.RankKing))

	data, err := encodeStruct(sessionToMap(s, domain.DefaultRules()))
	if err != nil {
		t.Fatalf("encodeStruct() error: %v", err)
	}
	grid := decodeStruct(t, data)["grid"].([]interface{})
	if grid[0] != nil {
		t.Fatalf("grid[0] = %v, want null", grid[0])
	}
	if card, ok := grid[7].(map[string]interface{}); !ok || card["id"] != "hearts-K" {
		t.Fatalf("grid[7] = %v", grid[7])
	}
}
