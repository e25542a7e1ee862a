package main

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/lifesoup/config"
	"github.com/pthm-cable/lifesoup/evolve"
	"github.com/pthm-cable/lifesoup/telemetry"
)

// FitnessEvaluator runs short headless searches and scores the settings
// they were run with.
type FitnessEvaluator struct {
	params     *ParamVector
	epochs     int
	seeds      []uint64
	baseConfig *config.Config

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastQuality    float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, epochs int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		epochs:      epochs,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// hallSize is the number of winners kept per run.
const hallSize = 20

// runResult holds the results from a single search run.
type runResult struct {
	best       float64 // highest fitness reached
	quality    float64
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean best score across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]runResult, len(fe.seeds))
	var g errgroup.Group
	for i, seed := range fe.seeds {
		g.Go(func() error {
			r, err := fe.runSearch(cfg, seed)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// A configuration the engine rejects is as bad as it gets
		return math.Inf(1)
	}

	fitness := make([]float64, len(results))
	quality := make([]float64, len(results))
	var bestSeed runResult
	for i, r := range results {
		fitness[i] = computeFitness(r)
		quality[i] = r.quality
		if i == 0 || r.best > bestSeed.best {
			bestSeed = r
		}
	}
	avgFitness := stat.Mean(fitness, nil)

	// Update best tracking
	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHallOfFame = bestSeed.hallOfFame
	}
	fe.lastQuality = stat.Mean(quality, nil)
	fe.mu.Unlock()

	return avgFitness
}

// runSearch executes one headless search with its own engine and random
// source.
func (fe *FitnessEvaluator) runSearch(cfg *config.Config, seed uint64) (runResult, error) {
	engine, err := evolve.NewEngine(evolve.ParamsFromConfig(cfg), rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return runResult{}, err
	}
	hof := telemetry.NewHallOfFame(hallSize)
	s := evolve.NewSearcher(engine, nil, evolve.SearchOptions{
		Epochs:      fe.epochs,
		WinnerEvery: cfg.Telemetry.WinnerEvery,
		Seed:        seed,
		HallOfFame:  hof,
	})
	pop := s.Run(context.Background())

	result := runResult{hallOfFame: hof, quality: computeQuality(pop)}
	if best, ok := s.Best(); ok {
		result.best = best.Fitness
	}
	return result, nil
}

// copyConfig creates a copy of the base config. Derived values are shared
// read-only.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(best × (1.0 + 0.2 × quality))
// The best score dominates; quality adds up to 20% bonus to differentiate
// settings that reach similar scores.
func computeFitness(r runResult) float64 {
	return -(r.best * (1.0 + 0.2*r.quality))
}

// computeQuality scores the diversity of the final population ∈ [0, 1]: the
// share of distinct fitness values among its members.
func computeQuality(pop *evolve.Population) float64 {
	if pop.Size() == 0 {
		return 0
	}
	return clamp01(float64(pop.Buckets()) / float64(pop.Size()))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
