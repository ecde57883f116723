package domain

// Suit is one of the four French suits.
type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// Rank is a card rank as printed on the card face.
type Rank string

const (
	RankAce   Rank = "A"
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
)

// Suits and Ranks are listed in deck construction order.
var (
	Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}
	Ranks = []Rank{RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
		RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing}
)

var rankValues = map[Rank]int{
	RankAce:   11,
	RankTwo:   2,
	RankThree: 3,
	RankFour:  4,
	RankFive:  5,
	RankSix:   6,
	RankSeven: 7,
	RankEight: 8,
	RankNine:  9,
	RankTen:   10,
	RankJack:  10,
	RankQueen: 10,
	RankKing:  10,
}

// Value returns the base point value of the rank. Aces are 11 here; their
// contribution to a line total is resolved by the scoring rules.
func (r Rank) Value() int {
	return rankValues[r]
}

// Card is a single playing card.
type Card struct {
	Suit    Suit
	Rank    Rank
	Value   int
	IsDealt bool
}

// NewCard builds an undealt card with its canonical value.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank, Value: rank.Value()}
}

// ID identifies the card by suit and rank, e.g. "hearts-A".
func (c Card) ID() string {
	return string(c.Suit) + "-" + string(c.Rank)
}

// SameCard reports whether c and o share suit and rank.
func (c Card) SameCard(o Card) bool {
	return c.Suit == o.Suit && c.Rank == o.Rank
}

// IsAce reports whether the card is an Ace.
func (c Card) IsAce() bool {
	return c.Rank == RankAce
}
