package domain

// RowOf returns the board row of a flat slot index.
func RowOf(index int) int { return index / GridWidth }

// ColumnOf returns the board column of a flat slot index.
func ColumnOf(index int) int { return index % GridWidth }

// IsTopRow reports whether index lies in row 0, the column-total row.
func IsTopRow(index int) bool { return index < GridWidth }

// IsFirstColumn reports whether index lies in column 0, the row-total column.
func IsFirstColumn(index int) bool { return index%GridWidth == 0 }

// IsTotalSlot reports whether index is a border slot that displays a total.
func IsTotalSlot(index int) bool { return IsTopRow(index) || IsFirstColumn(index) }

// InBounds reports whether index addresses a slot of the board.
func InBounds(index int) bool { return index >= 0 && index < GridSize }

// IsInteriorSlot reports whether a card may be placed at index.
func IsInteriorSlot(index int) bool { return InBounds(index) && !IsTotalSlot(index) }

// RowStartIndex returns the flat index of the first interior slot of row.
func RowStartIndex(row int) int { return row*GridWidth + 1 }

// RowIndices returns the interior slots of row in increasing column order.
func RowIndices(row int) [LineLength]int {
	var out [LineLength]int
	start := RowStartIndex(row)
	for i := range out {
		out[i] = start + i
	}
	return out
}

// ColumnIndices returns the interior slots of col in increasing row order.
func ColumnIndices(col int) [LineLength]int {
	var out [LineLength]int
	for r := range out {
		out[r] = (r+1)*GridWidth + col
	}
	return out
}

// InteriorIndices returns all 25 placeable slots in increasing index order.
func InteriorIndices() []int {
	out := make([]int, 0, LineLength*LineLength)
	for row := 1; row < GridWidth; row++ {
		idx := RowIndices(row)
		out = append(out, idx[:]...)
	}
	return out
}
