package life

import "math/rand/v2"

// Range is an inclusive integer interval.
type Range struct {
	Min, Max int
}

// Span returns the number of integers in the range.
func (r Range) Span() int {
	return r.Max - r.Min + 1
}

// Draw returns a uniform integer in [Min, Max].
func (r Range) Draw(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Span())
}

// SeedConfiguration scatters a random number of cells, between
// squareSize²·minProportion and squareSize²·maxProportion, uniformly inside a
// squareSize×squareSize window. The window is offset along each axis by a
// random multiple of squareSize in [0, displacement]. Cells drawn twice
// collapse, so the result can be smaller than the drawn count.
func SeedConfiguration(rng *rand.Rand, squareSize int, minProportion, maxProportion float64, displacement int) Configuration {
	if squareSize <= 0 {
		return Configuration{}
	}
	area := float64(squareSize * squareSize)
	count := Range{Min: int(area * minProportion), Max: int(area * maxProportion)}.Draw(rng)
	dx := Range{Max: displacement}.Draw(rng) * squareSize
	dy := Range{Max: displacement}.Draw(rng) * squareSize

	c := make(Configuration, count)
	for range count {
		c.Add(Cell{X: rng.IntN(squareSize) + dx, Y: rng.IntN(squareSize) + dy})
	}
	return c
}

// SeedRule draws a rule whose birth and survival sets are random subsets
// (without repeats) of the born and survival value ranges. Subset sizes come
// from the cardinality ranges, clamped to the span of the value range.
func SeedRule(rng *rand.Rand, born, bornCardinality, survival, survivalCardinality Range) Rule {
	return Rule{
		Birth:    sampleSet(rng, born, bornCardinality),
		Survival: sampleSet(rng, survival, survivalCardinality),
	}
}

// sampleSet draws a random subset of values with a size drawn from cardinality.
func sampleSet(rng *rand.Rand, values, cardinality Range) CountSet {
	span := values.Span()
	if span <= 0 {
		return 0
	}
	k := Range{Min: cardinality.Min, Max: min(cardinality.Max, span)}.Draw(rng)
	k = max(0, min(k, span))
	var set CountSet
	for _, i := range rng.Perm(span)[:k] {
		set = set.With(values.Min + i)
	}
	return set
}
