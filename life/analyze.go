package life

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Partition distances.
const (
	PartDistance  = 1 // Moore-adjacent components
	GroupDistance = 2 // coarser components that merge nearby parts
)

// Neighbors yields the (2d+1)² cells of the square of radius d around cell,
// including cell itself. The sequence may be ranged over any number of times.
func Neighbors(cell Cell, distance int) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		side := 2*distance + 1
		for i := 0; i < side*side; i++ {
			if !yield(Cell{X: cell.X + i/side - distance, Y: cell.Y + i%side - distance}) {
				return
			}
		}
	}
}

// Partition yields the connected components of c, where two cells are linked
// when they lie within Chebyshev distance d of each other. Components are
// disjoint and their union is c.
//
// The sequence consumes a private working copy taken when Partition is
// called, so it can be ranged over only once; c itself is never modified.
// Components come out in a deterministic order (by their first cell in
// row-major order).
func Partition(c Configuration, distance int) iter.Seq[Configuration] {
	remaining := c.Clone()
	order := c.Cells()
	return func(yield func(Configuration) bool) {
		for _, start := range order {
			if !remaining.Has(start) {
				continue
			}
			delete(remaining, start)
			part := NewConfiguration(start)
			frontier := []Cell{start}
			for len(frontier) > 0 && len(remaining) > 0 {
				cur := frontier[len(frontier)-1]
				frontier = frontier[:len(frontier)-1]
				for n := range Neighbors(cur, distance) {
					if remaining.Has(n) {
						delete(remaining, n)
						part[n] = struct{}{}
						frontier = append(frontier, n)
					}
				}
			}
			if !yield(part) {
				return
			}
		}
	}
}

// Parts materializes Partition into a slice.
func Parts(c Configuration, distance int) []Configuration {
	return slices.Collect(Partition(c, distance))
}

// Centralize translates c so its per-axis minimum coordinate is (0, 0).
// Any two translations of the same configuration centralize identically.
func Centralize(c Configuration) Configuration {
	lo, _, ok := c.Bounds()
	if !ok {
		return Configuration{}
	}
	return c.Translate(Cell{X: -lo.X, Y: -lo.Y})
}

// Tally is one distinct centralized shape and how often it occurs.
type Tally struct {
	Shape Configuration
	Count int
}

// Census is a multiset of centralized partitions, keyed by Shape.Key().
type Census map[string]Tally

// Split counts every distinct centralized partition of c at the given distance.
func Split(c Configuration, distance int) Census {
	census := make(Census)
	for part := range Partition(c, distance) {
		shape := Centralize(part)
		key := shape.Key()
		t, ok := census[key]
		if !ok {
			t.Shape = shape
		}
		t.Count++
		census[key] = t
	}
	return census
}

// Total returns the number of partitions counted, duplicates included.
func (c Census) Total() int {
	n := 0
	for _, t := range c {
		n += t.Count
	}
	return n
}

// Key returns a canonical string for the whole multiset. Two censuses have
// the same key iff they contain the same shapes with the same counts.
func (c Census) Key() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(strconv.Itoa(c[k].Count))
		b.WriteByte('x')
		b.WriteString(k)
		b.WriteByte('|')
	}
	return b.String()
}

// EnergyBin counts the cells of a partition that share an energy value.
type EnergyBin struct {
	Energy int
	Cells  int
}

// Signature is the set of energy bins of a partition, ordered by energy.
type Signature []EnergyBin

// Key returns a canonical string for the signature.
func (s Signature) Key() string {
	var b strings.Builder
	for _, bin := range s {
		b.WriteString(strconv.Itoa(bin.Energy))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(bin.Cells))
		b.WriteByte(' ')
	}
	return b.String()
}

// Fingerprint is one distinct energy signature and how often it occurs.
type Fingerprint struct {
	Signature Signature
	Count     int
}

// Fingerprints is a multiset of partition signatures, keyed by Signature.Key().
type Fingerprints map[string]Fingerprint

// Profile counts the energy signatures of the partitions of c. Differently
// shaped partitions with the same signature share an entry.
func Profile(c Configuration, distance int) Fingerprints {
	prints := make(Fingerprints)
	for part := range Partition(c, distance) {
		sig := signature(part)
		key := sig.Key()
		fp, ok := prints[key]
		if !ok {
			fp.Signature = sig
		}
		fp.Count++
		prints[key] = fp
	}
	return prints
}

// signature bins the energy map of part by energy value.
func signature(part Configuration) Signature {
	bins := make(map[int]int)
	for _, e := range Energy(part) {
		bins[e]++
	}
	sig := make(Signature, 0, len(bins))
	for e, n := range bins {
		sig = append(sig, EnergyBin{Energy: e, Cells: n})
	}
	slices.SortFunc(sig, func(a, b EnergyBin) int { return a.Energy - b.Energy })
	return sig
}

// IsStill advances c up to limit times and reports whether some generation
// equals c exactly (no translation allowed).
func IsStill(c Configuration, rule Rule, limit int) bool {
	next := c
	for range limit {
		next = Advance(next, rule)
		if next.Equal(c) {
			return true
		}
	}
	return false
}

// Cycle advances c up to limit times and returns the first step at which the
// centralized generation equals the centralized c, so oscillators and
// spaceships both match. It returns 0 when no step matches.
func Cycle(c Configuration, rule Rule, limit int) int {
	ref := Centralize(c)
	next := c
	for i := 1; i <= limit; i++ {
		next = Advance(next, rule)
		if Centralize(next).Equal(ref) {
			return i
		}
	}
	return 0
}
