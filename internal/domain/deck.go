package domain

import (
	"math/rand"
)

// DeckSize is the number of cards in a fresh deck.
const DeckSize = 52

// NewDeck returns an ordered 52-card deck with every card undealt.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, NewCard(s, r))
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
// rand.Shuffle is a Fisher-Yates shuffle, so every permutation is equally likely.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// CreateDeck returns a fresh, shuffled 52-card deck.
func CreateDeck(rng *rand.Rand) []Card {
	return ShuffleDeck(NewDeck(), rng)
}

// UndealtCards returns the cards of deck not yet dealt, in deck order.
func UndealtCards(deck []Card) []Card {
	out := make([]Card, 0, len(deck))
	for _, c := range deck {
		if !c.IsDealt {
			out = append(out, c)
		}
	}
	return out
}

// MarkDealt returns a copy of deck with the given cards flagged as dealt.
func MarkDealt(deck []Card, cards []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	for i := range out {
		if containsCard(cards, out[i]) {
			out[i].IsDealt = true
		}
	}
	return out
}

// RemoveCards returns deck without any card matching one of toRemove by suit and rank.
func RemoveCards(deck []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 {
		return append([]Card(nil), deck...)
	}
	out := make([]Card, 0, len(deck))
	for _, c := range deck {
		if containsCard(toRemove, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func containsCard(cards []Card, c Card) bool {
	for _, o := range cards {
		if o.SameCard(c) {
			return true
		}
	}
	return false
}
