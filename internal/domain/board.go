package domain

import "math/rand"

// Placement is a card sitting on an interior slot.
type Placement struct {
	CardID string
	Card   Card
}

// Grid holds the 36 board slots; nil means empty. Placements are never
// modified or removed once written, so copies may share them.
type Grid [GridSize]*Placement

// IsOccupied reports whether a card sits at index.
func (g Grid) IsOccupied(index int) bool {
	return InBounds(index) && g[index] != nil
}

// Place returns a copy of g with card placed at index.
// The caller is responsible for checking the slot is interior and empty.
func (g Grid) Place(index int, card Card) Grid {
	g[index] = &Placement{CardID: card.ID(), Card: card}
	return g
}

// PlacedCards returns the cards on the board in slot order.
func (g Grid) PlacedCards() []Card {
	var out []Card
	for _, p := range g {
		if p != nil {
			out = append(out, p.Card)
		}
	}
	return out
}

// EmptyInteriorCount returns how many placeable slots remain free.
func (g Grid) EmptyInteriorCount() int {
	n := 0
	for _, i := range InteriorIndices() {
		if g[i] == nil {
			n++
		}
	}
	return n
}

// InitializeBoard pre-places cards for the difficulty onto random interior
// slots, taking them from the front of deck. No row or column receives more
// than MaxPrePlacedPerLine cards; when that makes the target count impossible
// fewer cards are placed. The returned deck marks the used cards as dealt.
func InitializeBoard(rules Rules, difficulty Difficulty, deck []Card, rng *rand.Rand) (Grid, []Card) {
	var grid Grid
	target := rules.PrePlacedCount(difficulty)
	if target > len(deck) {
		target = len(deck)
	}
	if target <= 0 {
		return grid, append([]Card(nil), deck...)
	}

	positions := InteriorIndices()
	rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

	var rowCounts, colCounts [GridWidth]int
	used := make([]Card, 0, target)
	for _, pos := range positions {
		if len(used) == target {
			break
		}
		row, col := RowOf(pos), ColumnOf(pos)
		if rowCounts[row] >= MaxPrePlacedPerLine || colCounts[col] >= MaxPrePlacedPerLine {
			continue
		}
		card := deck[len(used)]
		card.IsDealt = true
		grid = grid.Place(pos, card)
		used = append(used, card)
		rowCounts[row]++
		colCounts[col]++
	}

	return grid, MarkDealt(deck, used)
}
