package evolve

import (
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/lifesoup/life"
)

func cells(cs ...life.Cell) life.Configuration {
	return life.NewConfiguration(cs...)
}

func block() life.Configuration {
	return cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 1, Y: 0}, life.Cell{X: 0, Y: 1}, life.Cell{X: 1, Y: 1})
}

func blinker() life.Configuration {
	return cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 0})
}

func glider() life.Configuration {
	return cells(
		life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 1},
		life.Cell{X: 0, Y: 2}, life.Cell{X: 1, Y: 2}, life.Cell{X: 2, Y: 2},
	)
}

func line(n int) life.Configuration {
	c := make(life.Configuration)
	for x := range n {
		c.Add(life.Cell{X: x})
	}
	return c
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func testParams(metric string) Params {
	return Params{
		Metric:        metric,
		Advances:      50,
		MaxSize:       200,
		Replacements:  8,
		RandomInserts: 3,
		Mutations:     0.2,
		MovingWeight:  2,

		SquareSize:    6,
		MinProportion: 0.3,
		MaxProportion: 0.6,
		Displacement:  1,

		Born:                life.Range{Min: 1, Max: 8},
		BornCardinality:     life.Range{Min: 1, Max: 3},
		Survival:            life.Range{Min: 1, Max: 8},
		SurvivalCardinality: life.Range{Min: 2, Max: 4},
	}
}

func newTestEngine(t *testing.T, metric string) *Engine {
	t.Helper()
	e, err := NewEngine(testParams(metric), testRNG())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}
