// Package evolve searches for automaton patterns with a genetic algorithm.
//
// Individuals are (configuration, rule) pairs filed in a Population under
// their fitness. Engine seeds, breeds and evaluates individuals; Searcher
// runs the generational loop and publishes snapshots for concurrent readers.
package evolve

import (
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/lifesoup/life"
)

// neutralFitness is the average and minimum fitness of an empty population.
const neutralFitness = 0.5

// Candidate is a configuration paired with the rule that drives it.
type Candidate struct {
	Cells life.Configuration
	Rule  life.Rule

	// Iterations is how many steps the scoring run took to find a cycle,
	// or 0 when unknown. It does not take part in the candidate's key.
	Iterations int

	key string
}

// NewCandidate pairs cells with rule.
func NewCandidate(cells life.Configuration, rule life.Rule) Candidate {
	return Candidate{Cells: cells, Rule: rule, key: cells.Key() + "#" + rule.String()}
}

// Key identifies the candidate by value.
func (c Candidate) Key() string {
	if c.key == "" {
		return c.Cells.Key() + "#" + c.Rule.String()
	}
	return c.key
}

// Individual is a candidate together with the fitness it is filed under.
type Individual struct {
	Fitness float64
	Candidate
}

// empty is returned by selections on an empty population.
func empty() Individual {
	return Individual{Candidate: NewCandidate(life.Configuration{}, life.Life)}
}

// Population files candidates under fitness buckets. A bucket never holds
// the same candidate twice. Engine operations never modify a population they
// are given; they return a new one.
type Population struct {
	buckets map[float64][]Candidate
	size    int
}

// NewPopulation creates an empty population.
func NewPopulation() *Population {
	return &Population{buckets: make(map[float64][]Candidate)}
}

// Add files c under fitness. It returns false if the bucket already holds c.
func (p *Population) Add(fitness float64, c Candidate) bool {
	bucket := p.buckets[fitness]
	key := c.Key()
	for _, existing := range bucket {
		if existing.Key() == key {
			return false
		}
	}
	p.buckets[fitness] = append(bucket, c)
	p.size++
	return true
}

// Size returns the number of candidates across all buckets.
func (p *Population) Size() int {
	if p == nil {
		return 0
	}
	return p.size
}

// Buckets returns the number of distinct fitness values.
func (p *Population) Buckets() int {
	if p == nil {
		return 0
	}
	return len(p.buckets)
}

// Fitnesses returns the bucket keys in ascending order.
func (p *Population) Fitnesses() []float64 {
	if p == nil {
		return nil
	}
	fits := make([]float64, 0, len(p.buckets))
	for f := range p.buckets {
		fits = append(fits, f)
	}
	slices.Sort(fits)
	return fits
}

// Candidates returns a copy of the bucket filed under fitness.
func (p *Population) Candidates(fitness float64) []Candidate {
	if p == nil {
		return nil
	}
	return slices.Clone(p.buckets[fitness])
}

// weights returns the ascending fitness keys with their bucket sizes.
func (p *Population) weights() (fits, sizes []float64) {
	fits = p.Fitnesses()
	sizes = make([]float64, len(fits))
	for i, f := range fits {
		sizes[i] = float64(len(p.buckets[f]))
	}
	return fits, sizes
}

// Average returns the mean fitness over all candidates, or 0.5 when empty.
func (p *Population) Average() float64 {
	if p.Size() == 0 {
		return neutralFitness
	}
	fits, sizes := p.weights()
	return stat.Mean(fits, sizes)
}

// Min returns the lowest fitness, or 0.5 when empty.
func (p *Population) Min() float64 {
	if p.Size() == 0 {
		return neutralFitness
	}
	return p.Fitnesses()[0]
}

// Max returns the highest fitness, or 0.5 when empty.
func (p *Population) Max() float64 {
	if p.Size() == 0 {
		return neutralFitness
	}
	fits := p.Fitnesses()
	return fits[len(fits)-1]
}

// Clone returns a copy that can be modified independently.
func (p *Population) Clone() *Population {
	out := NewPopulation()
	if p == nil {
		return out
	}
	for f, bucket := range p.buckets {
		out.buckets[f] = slices.Clone(bucket)
	}
	out.size = p.size
	return out
}

// Best returns the smallest candidate in the highest fitness bucket. The
// boolean is false for an empty population, in which case the individual
// has zero fitness, no cells and the standard rule.
func (p *Population) Best() (Individual, bool) {
	if p.Size() == 0 {
		return empty(), false
	}
	top := p.Max()
	bucket := p.buckets[top]
	best := bucket[0]
	for _, c := range bucket[1:] {
		if c.Cells.Len() < best.Cells.Len() {
			best = c
		}
	}
	return Individual{Fitness: top, Candidate: best}, true
}

// NaturalFit draws a candidate by roulette selection. A bucket's weight is
// its fitness times its size, normalized by the population's total fitness;
// the candidate is then drawn uniformly from the chosen bucket.
func NaturalFit(p *Population, rng *rand.Rand) (Individual, bool) {
	if p.Size() == 0 {
		return empty(), false
	}
	fits, sizes := p.weights()
	total := p.Average() * float64(p.Size())

	weights := make([]float64, len(fits))
	var sum float64
	for i, f := range fits {
		if total > 0 && f > 0 {
			weights[i] = f * sizes[i] / total
		}
		sum += weights[i]
	}
	if sum <= 0 {
		// Every bucket scores zero: fall back to picking candidates uniformly.
		copy(weights, sizes)
	}

	idx := int(distuv.NewCategorical(weights, rng).Rand())
	bucket := p.buckets[fits[idx]]
	return Individual{Fitness: fits[idx], Candidate: bucket[rng.IntN(len(bucket))]}, true
}
