package bot

import (
	"errors"
	"math/rand"
	"testing"

	"stackem/internal/domain"
)

func card(r domain.Rank) domain.Card {
	c := domain.NewCard(domain.SuitHearts, r)
	c.IsDealt = true
	return c
}

func TestGreedyBot_DealsOnEmptyHand(t *testing.T) {
	s := domain.Session{Difficulty: domain.DifficultyEasy, Deck: domain.NewDeck()}
	move, err := (&GreedyBot{Tuning: DefaultTuning}).CalculateMove(s, domain.DefaultRules())
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if !move.Deal {
		t.Fatalf("expected a deal, got %+v", move)
	}
	if move.Expected != -3 {
		t.Fatalf("expected value = %v, want the easy penalty", move.Expected)
	}
}

func TestGreedyBot_CompletesTwentyOne(t *testing.T) {
	var g domain.Grid
	g = g.Place(13, card(domain.RankKing)).Place(15, card(domain.RankFive))
	s := domain.Session{
		Difficulty: domain.DifficultyMedium,
		Deck:       domain.NewDeck(),
		Grid:       g,
		DealtCards: []domain.Card{card(domain.RankTwo), card(domain.RankSix)},
	}

	move, err := (&GreedyBot{Tuning: DefaultTuning}).CalculateMove(s, domain.DefaultRules())
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if move.Deal || move.HandIndex != 1 {
		t.Fatalf("expected to play the active card, got %+v", move)
	}
	if domain.RowOf(move.Slot) != 2 {
		t.Fatalf("slot %d is not in row 2", move.Slot)
	}
}

func TestGreedyBot_DealsRatherThanBust(t *testing.T) {
	// Every free slot shares a line with a busted or nearly full line.
	var g domain.Grid
	for _, i := range domain.InteriorIndices() {
		g = g.Place(i, card(domain.RankKing))
	}
	// Free one slot whose row and column already total 40.
	g[14] = nil
	s := domain.Session{
		Difficulty: domain.DifficultyEasy,
		Deck:       domain.NewDeck(),
		Grid:       g,
		DealtCards: []domain.Card{card(domain.RankQueen)},
	}

	move, err := (&GreedyBot{Tuning: DefaultTuning}).CalculateMove(s, domain.DefaultRules())
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if !move.Deal {
		t.Fatalf("expected a deal to dodge a double bust, got %+v", move)
	}
}

func TestGreedyBot_NoMoveWhenStuck(t *testing.T) {
	deck := domain.MarkDealt(domain.NewDeck(), domain.NewDeck())
	s := domain.Session{Difficulty: domain.DifficultyEasy, Deck: deck, DeckCycles: 3}
	if _, err := (&GreedyBot{Tuning: DefaultTuning}).CalculateMove(s, domain.DefaultRules()); !errors.Is(err, ErrNoMove) {
		t.Fatalf("expected ErrNoMove, got %v", err)
	}
}

func TestRandomBot_PlacesOnFreeSlot(t *testing.T) {
	var g domain.Grid
	for _, i := range domain.InteriorIndices()[1:] {
		g = g.Place(i, card(domain.RankTwo))
	}
	s := domain.Session{Deck: domain.NewDeck(), Grid: g, DealtCards: []domain.Card{card(domain.RankNine)}}

	brain, err := NewBrain(BotLevelRandom, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewBrain failed: %v", err)
	}
	move, err := brain.CalculateMove(s, domain.DefaultRules())
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if move.Deal || move.Slot != domain.InteriorIndices()[0] || move.HandIndex != 0 {
		t.Fatalf("move = %+v, want the only free slot", move)
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel(" Greedy "); err != nil || l != BotLevelGreedy {
		t.Fatalf("ParseLevel() = %q, %v", l, err)
	}
	if _, err := ParseLevel("god"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := NewBrain("god", nil); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
