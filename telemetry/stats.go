package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// EpochStats holds aggregated statistics for one search epoch.
type EpochStats struct {
	Epoch     int     `csv:"epoch"`
	ElapsedMS float64 `csv:"elapsed_ms"`

	// Population shape after the epoch
	Population int `csv:"population"`
	Buckets    int `csv:"buckets"`

	// Fitness distribution, weighted by bucket size
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessMin  float64 `csv:"fitness_min"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessMax  float64 `csv:"fitness_max"`

	// Best individual of the epoch
	BestCells int    `csv:"best_cells"`
	BestRule  string `csv:"best_rule"`

	// Time per replacement (ms), as reported by the original search loop
	ReplacementMS    float64 `csv:"replacement_ms"`
	AvgReplacementMS float64 `csv:"avg_replacement_ms"`
}

// ComputeFitnessStats calculates the weighted mean, standard deviation,
// minimum, median and maximum of fitness values. weights may be nil.
func ComputeFitnessStats(values, weights []float64) (mean, std, lo, p50, hi float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	// Quantile needs values in ascending order with weights kept aligned.
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case values[a] < values[b]:
			return -1
		case values[a] > values[b]:
			return 1
		}
		return 0
	})
	sorted := make([]float64, len(values))
	var sortedWeights []float64
	if weights != nil {
		sortedWeights = make([]float64, len(values))
	}
	for i, j := range idx {
		sorted[i] = values[j]
		if weights != nil {
			sortedWeights[i] = weights[j]
		}
	}

	mean, std = stat.MeanStdDev(sorted, sortedWeights)
	if len(values) == 1 {
		std = 0
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, sortedWeights)
	return mean, std, sorted[0], p50, sorted[len(sorted)-1]
}

// LogValue implements slog.LogValuer for structured logging.
func (s EpochStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("epoch", s.Epoch),
		slog.Float64("elapsed_ms", s.ElapsedMS),
		slog.Int("population", s.Population),
		slog.Int("buckets", s.Buckets),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_min", s.FitnessMin),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Int("best_cells", s.BestCells),
		slog.String("best_rule", s.BestRule),
		slog.Float64("replacement_ms", s.ReplacementMS),
		slog.Float64("avg_replacement_ms", s.AvgReplacementMS),
	)
}

// LogStats logs the epoch stats using slog.
func (s EpochStats) LogStats() {
	slog.Info("epoch", "stats", s)
}
