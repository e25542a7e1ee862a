package evolve

import (
	"math/rand/v2"
	"slices"

	"github.com/pthm-cable/lifesoup/life"
)

// Crossover pools the parts of both parents and returns the union of a
// random, non-empty subset of them. Parts keep their absolute coordinates.
func Crossover(rng *rand.Rand, a, b life.Configuration) life.Configuration {
	pool := append(life.Parts(a, life.PartDistance), life.Parts(b, life.PartDistance)...)
	child := make(life.Configuration)
	if len(pool) == 0 {
		return child
	}
	k := 1 + rng.IntN(len(pool))
	for _, i := range rng.Perm(len(pool))[:k] {
		for cell := range pool[i] {
			child.Add(cell)
		}
	}
	return child
}

// Mutate removes one random cell from c and adds floor(len(c)·proportion)
// cells drawn with replacement from that cell's Moore neighborhood. Draws
// that land on the same cell collapse. c is not modified.
func Mutate(rng *rand.Rand, c life.Configuration, proportion float64) life.Configuration {
	out := c.Clone()
	if c.Len() == 0 {
		return out
	}
	cells := c.Cells()
	removed := cells[rng.IntN(len(cells))]
	delete(out, removed)

	around := slices.Collect(life.Neighbors(removed, 1))
	for range int(float64(c.Len()) * proportion) {
		out.Add(around[rng.IntN(len(around))])
	}
	return out
}
