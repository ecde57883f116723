package domain

const (
	// GridWidth is the number of slots per board row, including the total column.
	GridWidth = 6
	// GridSize is the number of slots on the board, including total slots.
	GridSize = GridWidth * GridWidth
	// LineLength is the number of playable slots in a row or column.
	LineLength = GridWidth - 1

	// Target is the line total that scores.
	Target = 21
	// HandSize is the number of cards handed out by a regular deal.
	HandSize = 3
	// MaxPrePlacedPerLine caps pre-placed cards in any single row or column.
	MaxPrePlacedPerLine = 2
)
