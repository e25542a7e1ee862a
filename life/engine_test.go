package life

import (
	"testing"
)

func block() Configuration {
	return NewConfiguration(Cell{0, 0}, Cell{1, 0}, Cell{0, 1}, Cell{1, 1})
}

func blinker() Configuration {
	return NewConfiguration(Cell{0, 0}, Cell{1, 0}, Cell{2, 0})
}

func glider() Configuration {
	return NewConfiguration(Cell{1, 0}, Cell{2, 1}, Cell{0, 2}, Cell{1, 2}, Cell{2, 2})
}

func TestNeighborOffsets(t *testing.T) {
	tests := []struct {
		radius int
		want   int
	}{
		{0, 1},
		{1, 9},
		{2, 25},
	}

	for _, tt := range tests {
		offsets := NeighborOffsets(tt.radius)
		if len(offsets) != tt.want {
			t.Errorf("NeighborOffsets(%d) has %d offsets, want %d", tt.radius, len(offsets), tt.want)
		}
		seen := make(map[Cell]bool)
		hasOrigin := false
		for _, o := range offsets {
			if seen[o] {
				t.Errorf("NeighborOffsets(%d) repeats %v", tt.radius, o)
			}
			seen[o] = true
			if o.X < -tt.radius || o.X > tt.radius || o.Y < -tt.radius || o.Y > tt.radius {
				t.Errorf("NeighborOffsets(%d) offset %v out of range", tt.radius, o)
			}
			if o == (Cell{}) {
				hasOrigin = true
			}
		}
		if !hasOrigin {
			t.Errorf("NeighborOffsets(%d) missing origin", tt.radius)
		}
	}
}

func TestEnergySingleCell(t *testing.T) {
	energy := Energy(NewConfiguration(Cell{5, 5}))
	if len(energy) != 9 {
		t.Fatalf("single cell touches %d cells, want 9", len(energy))
	}
	for cell, e := range energy {
		if e != 1 {
			t.Errorf("energy at %v = %d, want 1", cell, e)
		}
	}
}

func TestEnergyBlock(t *testing.T) {
	energy := Energy(block())

	tests := []struct {
		cell Cell
		want int
	}{
		{Cell{0, 0}, 4},  // live cell counts itself plus three neighbors
		{Cell{-1, -1}, 1}, // corner of the halo
		{Cell{0, -1}, 2},  // edge of the halo
		{Cell{3, 3}, 0},   // untouched
	}
	for _, tt := range tests {
		if got := energy[tt.cell]; got != tt.want {
			t.Errorf("energy at %v = %d, want %d", tt.cell, got, tt.want)
		}
	}
	if _, ok := energy[Cell{3, 3}]; ok {
		t.Error("untouched cell should be absent from the energy map")
	}
}

func TestAdvanceEmpty(t *testing.T) {
	rules := []Rule{Life, HighLife, {Birth: NewCountSet(0, 1), Survival: NewCountSet(0)}, {}}
	for _, r := range rules {
		if next := Advance(Configuration{}, r); next.Len() != 0 {
			t.Errorf("Advance(empty, %v) has %d cells, want 0", r, next.Len())
		}
	}
}

func TestAdvanceBlockIsFixedPoint(t *testing.T) {
	b := block()
	if next := Advance(b, Life); !next.Equal(b) {
		t.Errorf("block changed under Life: %v", next.Cells())
	}
}

func TestAdvanceBlinker(t *testing.T) {
	next := Advance(blinker(), Life)
	want := NewConfiguration(Cell{1, -1}, Cell{1, 0}, Cell{1, 1})
	if !next.Equal(want) {
		t.Errorf("blinker phase 2 = %v, want %v", next.Cells(), want.Cells())
	}
	if back := Advance(next, Life); !back.Equal(blinker()) {
		t.Errorf("blinker phase 3 = %v, want original", back.Cells())
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	g := glider()
	before := g.Key()
	Advance(g, Life)
	if g.Key() != before {
		t.Error("Advance mutated its input")
	}
}

func TestAdvanceDeterministic(t *testing.T) {
	g := glider()
	a := Advance(g, HighLife)
	for range 10 {
		if b := Advance(g.Clone(), HighLife); !b.Equal(a) {
			t.Fatal("Advance is not deterministic")
		}
	}
}

func TestAdvanceBirthZeroCannotFillEmptySpace(t *testing.T) {
	rule := Rule{Birth: NewCountSet(0), Survival: NewCountSet()}
	next := Advance(NewConfiguration(Cell{0, 0}), rule)
	if next.Len() != 0 {
		t.Errorf("birth-on-zero produced %d cells, want 0", next.Len())
	}
}

func TestSingleCellDies(t *testing.T) {
	if next := Advance(NewConfiguration(Cell{3, -7}), Life); next.Len() != 0 {
		t.Errorf("isolated cell survived: %v", next.Cells())
	}
}
