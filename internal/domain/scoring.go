package domain

// LineStatus buckets a line total against the target.
type LineStatus int

const (
	// LinePending is a total below 21.
	LinePending LineStatus = iota
	// LineExact is a total of exactly 21.
	LineExact
	// LineBust is a total above 21.
	LineBust
)

func (s LineStatus) String() string {
	switch s {
	case LineExact:
		return "exact"
	case LineBust:
		return "bust"
	default:
		return "pending"
	}
}

// ClassifyTotal returns the status bucket of a line total.
func ClassifyTotal(total int) LineStatus {
	switch {
	case total == Target:
		return LineExact
	case total > Target:
		return LineBust
	default:
		return LinePending
	}
}

// LineKind tells rows from columns.
type LineKind string

const (
	LineRow    LineKind = "row"
	LineColumn LineKind = "column"
)

// Combination is a line that reached exactly 21 with two or three cards.
type Combination struct {
	Line      LineKind
	Number    int // row or column number, 1..5
	CardCount int
}

// lineTotal sums the slots in traversal order. Non-Ace cards are added
// first; each Ace then adds 11 while the running total is at most 10, else 1.
func lineTotal(g Grid, slots [LineLength]int) (total, filled int) {
	aces := 0
	for _, i := range slots {
		p := g[i]
		if p == nil {
			continue
		}
		filled++
		if p.Card.IsAce() {
			aces++
			continue
		}
		total += p.Card.Value
	}
	for ; aces > 0; aces-- {
		if total <= 10 {
			total += 11
		} else {
			total++
		}
	}
	return total, filled
}

// RowTotal returns the Ace-aware total of a row.
func RowTotal(g Grid, row int) int {
	total, _ := lineTotal(g, RowIndices(row))
	return total
}

// ColumnTotal returns the Ace-aware total of a column.
func ColumnTotal(g Grid, col int) int {
	total, _ := lineTotal(g, ColumnIndices(col))
	return total
}

// RowFilled returns how many cards sit in a row.
func RowFilled(g Grid, row int) int {
	_, filled := lineTotal(g, RowIndices(row))
	return filled
}

// ColumnFilled returns how many cards sit in a column.
func ColumnFilled(g Grid, col int) int {
	_, filled := lineTotal(g, ColumnIndices(col))
	return filled
}

var exactScores = map[int]int{2: 100, 3: 300, 4: 600, 5: 1000}

const (
	// fallbackExactScore applies to a 21 made of an unexpected card count.
	// Board constraints keep this unreachable today.
	fallbackExactScore = 100
	bustScore          = -50
)

// LineScore returns the score of a line with the given total and card count.
func LineScore(total, filled int) int {
	switch ClassifyTotal(total) {
	case LineExact:
		if s, ok := exactScores[filled]; ok {
			return s
		}
		return fallbackExactScore
	case LineBust:
		return bustScore
	default:
		return 0
	}
}

// PositionScore returns the score change caused by the card at index: the
// row and column through it are scored independently and summed.
func PositionScore(g Grid, index int) int {
	row, col := RowOf(index), ColumnOf(index)
	score := 0
	if row > 0 {
		score += LineScore(lineTotal(g, RowIndices(row)))
	}
	if col > 0 {
		score += LineScore(lineTotal(g, ColumnIndices(col)))
	}
	return score
}

// Check21Combination reports the first line through index, row before
// column, that totals 21 with two or three cards. Only one line is
// reported even when both qualify.
func Check21Combination(g Grid, index int) (Combination, bool) {
	row, col := RowOf(index), ColumnOf(index)
	if row > 0 {
		total, filled := lineTotal(g, RowIndices(row))
		if total == Target && (filled == 2 || filled == 3) {
			return Combination{Line: LineRow, Number: row, CardCount: filled}, true
		}
	}
	if col > 0 {
		total, filled := lineTotal(g, ColumnIndices(col))
		if total == Target && (filled == 2 || filled == 3) {
			return Combination{Line: LineColumn, Number: col, CardCount: filled}, true
		}
	}
	return Combination{}, false
}

// LineTotal is the rendered state of one total slot.
type LineTotal struct {
	Total  int
	Filled int
	Status LineStatus
}

// BoardTotals holds the totals shown in row 0 and column 0. Index 0 is unused.
type BoardTotals struct {
	Rows    [GridWidth]LineTotal
	Columns [GridWidth]LineTotal
}

// ComputeBoardTotals evaluates every row and column of g.
func ComputeBoardTotals(g Grid) BoardTotals {
	var out BoardTotals
	for n := 1; n < GridWidth; n++ {
		total, filled := lineTotal(g, RowIndices(n))
		out.Rows[n] = LineTotal{Total: total, Filled: filled, Status: ClassifyTotal(total)}
		total, filled = lineTotal(g, ColumnIndices(n))
		out.Columns[n] = LineTotal{Total: total, Filled: filled, Status: ClassifyTotal(total)}
	}
	return out
}
