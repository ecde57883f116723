package domain

import "math"

// Point is a position in presentation pixels.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// SlotCenter is the on-screen center of a board slot.
type SlotCenter struct {
	Index  int
	Center Point
}

// NearestSlot returns the slot closest to point and its distance. The first
// slot wins on ties. ok is false when slots is empty.
func NearestSlot(point Point, slots []SlotCenter) (slot SlotCenter, distance float64, ok bool) {
	for _, s := range slots {
		d := point.Distance(s.Center)
		if !ok || d < distance {
			slot, distance, ok = s, d, true
		}
	}
	return slot, distance, ok
}

// GridLayout describes a regular on-screen board.
type GridLayout struct {
	Origin   Point   // top-left corner of slot 0
	CellSize float64 // slot width and height
	Gap      float64 // spacing between slots
}

// Center returns the center of the slot at index.
func (l GridLayout) Center(index int) Point {
	step := l.CellSize + l.Gap
	return Point{
		X: l.Origin.X + float64(ColumnOf(index))*step + l.CellSize/2,
		Y: l.Origin.Y + float64(RowOf(index))*step + l.CellSize/2,
	}
}

// Centers returns the centers of all 36 slots.
func (l GridLayout) Centers() []SlotCenter {
	out := make([]SlotCenter, GridSize)
	for i := range out {
		out[i] = SlotCenter{Index: i, Center: l.Center(i)}
	}
	return out
}
