package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty selects pre-placed card count and deal penalty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every supported difficulty in menu order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty converts user input into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

// Valid reports whether d is one of the supported difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// AnimationType names the celebration shown for a combination.
type AnimationType string

const (
	AnimationTwoCard   AnimationType = "2-card"
	AnimationThreeCard AnimationType = "3-card"
)

// Session is a snapshot of one single-player game.
// Values are treated as immutable; use Clone before changing slices.
type Session struct {
	ID         string
	Difficulty Difficulty

	Deck       []Card
	DealtCards []Card // active hand, played right to left
	DeckCycles int
	IsDealing  bool

	Grid  Grid
	Score int

	// Transient celebration signal for the presentation layer.
	ShowAnimation bool
	AnimationType AnimationType
}

// Clone returns a copy of s that shares no mutable slices with it.
func (s Session) Clone() Session {
	out := s
	out.Deck = append([]Card(nil), s.Deck...)
	out.DealtCards = append([]Card(nil), s.DealtCards...)
	return out
}

// UndealtCount returns the number of deck cards not yet dealt or pre-placed.
func (s Session) UndealtCount() int {
	n := 0
	for _, c := range s.Deck {
		if !c.IsDealt {
			n++
		}
	}
	return n
}

// CanDeal reports whether a deal request would change the session.
func (s Session) CanDeal(maxDeckCycles int) bool {
	if s.IsDealing {
		return false
	}
	return s.UndealtCount() >= HandSize || s.DeckCycles < maxDeckCycles
}

// IsOver reports whether the player has no move left: the board is full, or
// the hand is empty and no further deal is possible.
func (s Session) IsOver(maxDeckCycles int) bool {
	if s.Grid.EmptyInteriorCount() == 0 {
		return true
	}
	return len(s.DealtCards) == 0 && !s.CanDeal(maxDeckCycles)
}

// ActiveCard returns the rightmost card of the hand, the one the player may drag.
func (s Session) ActiveCard() (Card, int, bool) {
	if len(s.DealtCards) == 0 {
		return Card{}, -1, false
	}
	i := len(s.DealtCards) - 1
	return s.DealtCards[i], i, true
}
