package evolve

import (
	"fmt"
	"math/rand/v2"

	"github.com/pthm-cable/lifesoup/config"
	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/metrics"
)

// Params holds the search parameters used by an Engine.
type Params struct {
	Metric        string
	Advances      int     // simulation horizon per evaluation
	MaxSize       int     // live-cell count that ends an evaluation as overflow
	Replacements  int     // children bred per iteration
	RandomInserts int     // fresh candidates seeded per step
	Mutations     float64 // proportion of a child's size added by mutation
	MovingWeight  float64 // passed to metrics through RunSummary

	SquareSize    int
	MinProportion float64
	MaxProportion float64
	Displacement  int

	Born                life.Range
	BornCardinality     life.Range
	Survival            life.Range
	SurvivalCardinality life.Range

	// FixedRule, when set, is used for every seeded candidate.
	FixedRule *life.Rule
}

// ParamsFromConfig extracts engine parameters from a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	p := Params{
		Metric:        cfg.Search.Metric,
		Advances:      cfg.Search.Advances,
		MaxSize:       cfg.Search.MaxSize,
		Replacements:  cfg.Search.Replacements,
		RandomInserts: cfg.Search.RandomInserts,
		Mutations:     cfg.Search.Mutations,
		MovingWeight:  cfg.Search.MovingWeight,

		SquareSize:    cfg.Seeding.SquareSize,
		MinProportion: cfg.Seeding.Proportion.Min,
		MaxProportion: cfg.Seeding.Proportion.Max,
		Displacement:  cfg.Seeding.Displacement,

		Born:                life.Range(cfg.Seeding.Born),
		BornCardinality:     life.Range(cfg.Seeding.BornCardinality),
		Survival:            life.Range(cfg.Seeding.Survival),
		SurvivalCardinality: life.Range(cfg.Seeding.SurvivalCardinality),
	}
	if cfg.Derived.Rule != nil {
		rule := *cfg.Derived.Rule
		p.FixedRule = &rule
	}
	return p
}

// Engine performs the genetic operations. It owns its random source, so an
// engine must not be shared between goroutines.
type Engine struct {
	params Params
	metric metrics.Metric
	rng    *rand.Rand
}

// NewEngine resolves the metric named in params and returns an engine drawing
// from rng. An unknown metric is an error.
func NewEngine(params Params, rng *rand.Rand) (*Engine, error) {
	metric, err := metrics.Lookup(params.Metric)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{params: params, metric: metric, rng: rng}, nil
}

// Params returns the engine's parameters.
func (e *Engine) Params() Params {
	return e.params
}

// NewCandidate draws a fresh random candidate.
func (e *Engine) NewCandidate() Candidate {
	p := e.params
	rule := life.SeedRule(e.rng, p.Born, p.BornCardinality, p.Survival, p.SurvivalCardinality)
	if p.FixedRule != nil {
		rule = *p.FixedRule
	}
	cells := life.SeedConfiguration(e.rng, p.SquareSize, p.MinProportion, p.MaxProportion, p.Displacement)
	return NewCandidate(cells, rule)
}

// Seed returns a copy of pop with n fresh candidates added, each filed under
// the population's average fitness at the time it is inserted.
func (e *Engine) Seed(pop *Population, n int) *Population {
	next := pop.Clone()
	for range n {
		next.Add(next.Average(), e.NewCandidate())
	}
	return next
}

// Iterate breeds the next generation. Each of the replacements rounds draws
// two parents by roulette, keeps both, and adds their child unless it dies.
// Candidates never drawn as parents do not survive.
func (e *Engine) Iterate(pop *Population, replacements, horizon, sizeLimit int) *Population {
	next := NewPopulation()
	if pop.Size() == 0 {
		return next
	}
	floor := pop.Min()
	for range replacements {
		p1, _ := NaturalFit(pop, e.rng)
		next.Add(p1.Fitness, p1.Candidate)
		p2, _ := NaturalFit(pop, e.rng)
		next.Add(p2.Fitness, p2.Candidate)

		cells := Mutate(e.rng, Crossover(e.rng, p1.Cells, p2.Cells), e.params.Mutations)
		rule := life.Rule{Birth: p1.Rule.Birth, Survival: p2.Rule.Survival}
		eval := e.Evaluate(cells, rule, horizon, floor, sizeLimit)
		if eval.Score == 0 {
			continue
		}
		child := NewCandidate(cells, rule)
		if eval.Outcome == OutcomeCycle {
			child.Iterations = eval.Iterations
		}
		next.Add(eval.Score, child)
	}
	return next
}

// Step seeds RandomInserts candidates into pop and iterates once with the
// engine's parameters.
func (e *Engine) Step(pop *Population) *Population {
	p := e.params
	return e.Iterate(e.Seed(pop, p.RandomInserts), p.Replacements, p.Advances, p.MaxSize)
}
