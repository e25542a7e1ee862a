// Package main provides CMA-ES optimization for finding genetic search
// settings that reach high fitness quickly.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/lifesoup/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// evalRecord is one row of optimize_log.csv. Parameter columns follow
// NewParamVector.
type evalRecord struct {
	Eval           int     `csv:"eval"`
	Fitness        float64 `csv:"fitness"`
	Quality        float64 `csv:"quality"`
	Mutations      float64 `csv:"mutations"`
	Replacements   float64 `csv:"replacements"`
	RandomInserts  float64 `csv:"random_inserts"`
	SquareSize     float64 `csv:"square_size"`
	ProportionMin  float64 `csv:"proportion_min"`
	ProportionSpan float64 `csv:"proportion_span"`
	Displacement   float64 `csv:"displacement"`
}

func newEvalRecord(eval int, fitness, quality float64, v []float64) evalRecord {
	return evalRecord{
		Eval:           eval,
		Fitness:        fitness,
		Quality:        quality,
		Mutations:      v[0],
		Replacements:   v[1],
		RandomInserts:  v[2],
		SquareSize:     v[3],
		ProportionMin:  v[4],
		ProportionSpan: v[5],
		Displacement:   v[6],
	}
}

// evalLog appends evaluation records to a CSV file, writing the header once.
type evalLog struct {
	f             *os.File
	headerWritten bool
}

func (l *evalLog) write(r evalRecord) error {
	records := []evalRecord{r}
	if !l.headerWritten {
		l.headerWritten = true
		return gocsv.MarshalFile(&records, l.f)
	}
	return gocsv.MarshalWithoutHeaders(&records, l.f)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	epochs := flag.Int("epochs", 100, "Search epochs per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	// Each run's searcher logs every epoch; only the progress lines below matter here
	slog.SetDefault(slog.New(slog.DiscardHandler))

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	evalSeeds := make([]uint64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = uint64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *epochs, evalSeeds, baseCfg)

	// Auto-size: 4 + floor(3*ln(n))
	dim := params.Dim()
	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*math.Log(float64(dim)))
	}

	logFile, err := os.Create(filepath.Join(*outputDir, "optimize_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	evals := &evalLog{f: logFile}

	// Track evaluations and timing
	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// CMA-ES works in the unit cube; the evaluator clamps
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			quality := evaluator.LastQuality()
			if err := evals.write(newEvalRecord(evalCount, fitness, quality, clamped)); err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))

			// Fitness = -(best × (1 + 0.2×quality)), so extract the best score
			best := -fitness / (1.0 + 0.2*quality)
			fmt.Printf("Eval %d/%d: best=%.2f quality=%.2f (overall=%.2f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, best, quality, -bestFitness,
				formatDuration(elapsed), formatDuration(remaining))
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // seeds already run in parallel inside each evaluation
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Metric: %s, seeds per evaluation: %d, epochs per run: %d\n", baseCfg.Search.Metric, *seeds, *epochs)

	// Start from the base config's settings
	initX := params.Normalize(params.Clamp(params.ExtractFromConfig(baseCfg)))
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.2f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.6f\n", spec.Name, spec.Path, bestParams[i])
	}

	writeResults(*outputDir, baseCfg, params, bestParams, evaluator)
}

// writeResults saves the best config and the best run's hall of fame.
func writeResults(dir string, baseCfg *config.Config, params *ParamVector, best []float64, evaluator *FitnessEvaluator) {
	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, best)
	configOutPath := filepath.Join(dir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	hof := evaluator.BestHallOfFame()
	if hof == nil {
		return
	}
	hofPath := filepath.Join(dir, "hall_of_fame.json")
	data, err := hof.MarshalJSON()
	if err != nil {
		log.Printf("failed to marshal hall of fame: %v", err)
		return
	}
	if err := os.WriteFile(hofPath, data, 0644); err != nil {
		log.Printf("failed to write hall of fame: %v", err)
		return
	}
	fmt.Printf("Hall of fame saved to: %s\n", hofPath)
}
