package life

// mooreOffsets is the radius-1 neighborhood, including the origin.
var mooreOffsets = NeighborOffsets(1)

// NeighborOffsets returns the (2r+1)² offsets of the square of radius r,
// including (0, 0).
func NeighborOffsets(radius int) []Cell {
	side := 2*radius + 1
	offsets := make([]Cell, 0, side*side)
	for i := 0; i < side*side; i++ {
		offsets = append(offsets, Cell{X: i/side - radius, Y: i%side - radius})
	}
	return offsets
}

// Energy counts, for every cell touched by some live cell's Moore
// neighborhood, how many live cells lie within Chebyshev distance 1 of it.
// A live cell counts itself. Untouched cells are absent.
func Energy(c Configuration) map[Cell]int {
	energy := make(map[Cell]int, len(c)*4)
	for cell := range c {
		for _, off := range mooreOffsets {
			energy[cell.Add(off)]++
		}
	}
	return energy
}

// Advance computes the next generation under rule.
//
// Dead cells with no live neighbor never appear in the energy map, so a rule
// with 0 in its birth set cannot create life in an empty region.
func Advance(c Configuration, rule Rule) Configuration {
	next := make(Configuration, len(c))
	for cell, raw := range Energy(c) {
		if c.Has(cell) {
			if rule.Survival.Has(raw - 1) {
				next[cell] = struct{}{}
			}
		} else if rule.Birth.Has(raw) {
			next[cell] = struct{}{}
		}
	}
	return next
}
