package internal

import (
	"sort"

	"stackem/internal/domain"
)

// Weights tunes how a placement is judged beyond its immediate points.
type Weights struct {
	// Score multiplies the points the placement earns right away.
	Score float64
	// Progress rewards lines left below 21, scaled by how close they are.
	Progress float64
	// Blocked penalizes lines below 21 that have no empty slot left.
	Blocked float64
	// Combination is added when the placement triggers a 2 or 3 card combination.
	Combination float64
}

// ScoredSlot is a candidate placement and its heuristic value.
type ScoredSlot struct {
	Slot  int
	Delta int // points the placement scores
	Value float64
}

// EmptySlots returns the free interior slots of g in index order.
func EmptySlots(g domain.Grid) []int {
	var out []int
	for _, i := range domain.InteriorIndices() {
		if !g.IsOccupied(i) {
			out = append(out, i)
		}
	}
	return out
}

// EvaluatePlacement scores putting card on slot.
func EvaluatePlacement(g domain.Grid, slot int, card domain.Card, w Weights) ScoredSlot {
	next := g.Place(slot, card)
	delta := domain.PositionScore(next, slot)
	value := float64(delta) * w.Score

	row, col := domain.RowOf(slot), domain.ColumnOf(slot)
	value += lineValue(domain.RowTotal(next, row), domain.RowFilled(next, row), w)
	value += lineValue(domain.ColumnTotal(next, col), domain.ColumnFilled(next, col), w)

	if _, ok := domain.Check21Combination(next, slot); ok {
		value += w.Combination
	}
	return ScoredSlot{Slot: slot, Delta: delta, Value: value}
}

func lineValue(total, filled int, w Weights) float64 {
	if total >= domain.Target {
		return 0
	}
	if filled == domain.LineLength {
		return -w.Blocked
	}
	return w.Progress * float64(total) / domain.Target
}

// RankSlots evaluates card on every empty slot, best first. Equal values keep
// slot order.
func RankSlots(g domain.Grid, card domain.Card, w Weights) []ScoredSlot {
	slots := EmptySlots(g)
	out := make([]ScoredSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, EvaluatePlacement(g, s, card, w))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}
