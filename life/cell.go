// Package life implements a generalized Game-of-Life automaton over an
// unbounded plane, plus the pattern analysis used to score evolved patterns.
//
// Configurations are sparse sets of live cells. Every operation in this
// package is pure: inputs are never mutated and new values are returned.
package life

import (
	"slices"
	"strconv"
	"strings"
)

// Cell is an integer coordinate on the plane.
type Cell struct {
	X, Y int
}

// Add returns the component-wise sum of two cells.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the component-wise difference of two cells.
func (c Cell) Sub(o Cell) Cell {
	return Cell{X: c.X - o.X, Y: c.Y - o.Y}
}

// Compare orders cells lexicographically by (X, Y).
func (c Cell) Compare(o Cell) int {
	switch {
	case c.X < o.X:
		return -1
	case c.X > o.X:
		return 1
	case c.Y < o.Y:
		return -1
	case c.Y > o.Y:
		return 1
	}
	return 0
}

// Configuration is a finite set of live cells.
type Configuration map[Cell]struct{}

// NewConfiguration builds a configuration from the given cells.
// Duplicates collapse.
func NewConfiguration(cells ...Cell) Configuration {
	c := make(Configuration, len(cells))
	for _, cell := range cells {
		c[cell] = struct{}{}
	}
	return c
}

// Has reports whether the cell is live.
func (c Configuration) Has(cell Cell) bool {
	_, ok := c[cell]
	return ok
}

// Add marks a cell live. Only use on configurations the caller owns.
func (c Configuration) Add(cell Cell) {
	c[cell] = struct{}{}
}

// Len returns the number of live cells.
func (c Configuration) Len() int {
	return len(c)
}

// Clone returns an independent copy.
func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	for cell := range c {
		out[cell] = struct{}{}
	}
	return out
}

// Equal reports exact set equality.
func (c Configuration) Equal(o Configuration) bool {
	if len(c) != len(o) {
		return false
	}
	for cell := range c {
		if !o.Has(cell) {
			return false
		}
	}
	return true
}

// Cells returns the live cells in row-major order (by Y, then X).
func (c Configuration) Cells() []Cell {
	cells := make([]Cell, 0, len(c))
	for cell := range c {
		cells = append(cells, cell)
	}
	slices.SortFunc(cells, func(a, b Cell) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return cells
}

// Translate returns the configuration shifted by d.
func (c Configuration) Translate(d Cell) Configuration {
	out := make(Configuration, len(c))
	for cell := range c {
		out[cell.Add(d)] = struct{}{}
	}
	return out
}

// Bounds returns the per-axis minimum and maximum coordinates. The minimum X
// and minimum Y are computed independently and need not belong to the same
// cell. ok is false for an empty configuration.
func (c Configuration) Bounds() (lo, hi Cell, ok bool) {
	for cell := range c {
		if !ok {
			lo, hi, ok = cell, cell, true
			continue
		}
		lo.X = min(lo.X, cell.X)
		lo.Y = min(lo.Y, cell.Y)
		hi.X = max(hi.X, cell.X)
		hi.Y = max(hi.Y, cell.Y)
	}
	return lo, hi, ok
}

// Key returns a canonical string for the exact cell set. Two configurations
// have the same key iff they are equal.
func (c Configuration) Key() string {
	var b strings.Builder
	b.Grow(len(c) * 6)
	for i, cell := range c.Cells() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(cell.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(cell.Y))
	}
	return b.String()
}
