package evolve

import (
	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/metrics"
)

// Outcome is how an evaluation ended.
type Outcome int

const (
	OutcomeCycle     Outcome = iota // group census repeated; scored by the metric
	OutcomeDeath                    // no live cells left; scores 0
	OutcomeOverflow                 // size limit exceeded; scores the floor
	OutcomeExhausted                // horizon reached without a repeat; scores the floor
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCycle:
		return "cycle"
	case OutcomeDeath:
		return "death"
	case OutcomeOverflow:
		return "overflow"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Evaluation is the result of simulating one candidate.
type Evaluation struct {
	Score       float64
	Outcome     Outcome
	Iterations  int // steps simulated
	CycleLength int // steps between repeated snapshots, 0 unless OutcomeCycle
	Final       life.Configuration
}

// Evaluate simulates cells under rule for up to horizon steps. After every
// step the centralized group census is compared with the census of every
// earlier step, including the initial configuration; the first repeat ends
// the run and the engine's metric scores it. Death scores 0. Exceeding
// sizeLimit, or reaching the horizon without a repeat, scores floor.
func (e *Engine) Evaluate(cells life.Configuration, rule life.Rule, horizon int, floor float64, sizeLimit int) Evaluation {
	history := map[string]int{life.Split(cells, life.GroupDistance).Key(): 0}
	current := cells
	for i := 1; i <= horizon; i++ {
		current = life.Advance(current, rule)
		if current.Len() == 0 {
			return Evaluation{Outcome: OutcomeDeath, Iterations: i, Final: current}
		}
		if current.Len() > sizeLimit {
			return Evaluation{Score: floor, Outcome: OutcomeOverflow, Iterations: i, Final: current}
		}
		key := life.Split(current, life.GroupDistance).Key()
		if seen, ok := history[key]; ok {
			cycle := i - seen
			score := e.metric(metrics.RunSummary{
				Origin:       cells,
				Final:        current,
				Rule:         rule,
				MovingWeight: e.params.MovingWeight,
				Iterations:   i,
				CycleLength:  cycle,
			})
			return Evaluation{Score: score, Outcome: OutcomeCycle, Iterations: i, CycleLength: cycle, Final: current}
		}
		history[key] = i
	}
	return Evaluation{Score: floor, Outcome: OutcomeExhausted, Iterations: horizon, Final: current}
}

// Fitness returns the score of Evaluate.
func (e *Engine) Fitness(cells life.Configuration, rule life.Rule, horizon int, floor float64, sizeLimit int) float64 {
	return e.Evaluate(cells, rule, horizon, floor, sizeLimit).Score
}
