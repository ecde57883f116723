package domain

import "testing"

func TestSlotClassification(t *testing.T) {
	tests := []struct {
		index    int
		total    bool
		interior bool
	}{
		{index: 0, total: true},
		{index: 5, total: true},
		{index: 6, total: true},
		{index: 7, interior: true},
		{index: 11, interior: true},
		{index: 12, total: true},
		{index: 30, total: true},
		{index: 35, interior: true},
		{index: 36},
		{index: -1},
	}
	for _, tt := range tests {
		if InBounds(tt.index) {
			if got := IsTotalSlot(tt.index); got != tt.total {
				t.Errorf("IsTotalSlot(%d) = %t, want %t", tt.index, got, tt.total)
			}
		}
		if got := IsInteriorSlot(tt.index); got != tt.interior {
			t.Errorf("IsInteriorSlot(%d) = %t, want %t", tt.index, got, tt.interior)
		}
	}
}

func TestLineIndices(t *testing.T) {
	if got, want := RowIndices(2), [LineLength]int{13, 14, 15, 16, 17}; got != want {
		t.Fatalf("RowIndices(2) = %v, want %v", got, want)
	}
	if got, want := ColumnIndices(3), [LineLength]int{9, 15, 21, 27, 33}; got != want {
		t.Fatalf("ColumnIndices(3) = %v, want %v", got, want)
	}
	if got := RowStartIndex(1); got != 7 {
		t.Fatalf("RowStartIndex(1) = %d, want 7", got)
	}
}

func TestInteriorIndices(t *testing.T) {
	idx := InteriorIndices()
	if len(idx) != 25 {
		t.Fatalf("interior slots = %d, want 25", len(idx))
	}
	for _, i := range idx {
		if !IsInteriorSlot(i) {
			t.Fatalf("slot %d is not interior", i)
		}
	}
}
