package evolve

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/lifesoup/telemetry"
)

// SearchOptions configures a Searcher. Nil telemetry sinks are skipped.
type SearchOptions struct {
	Epochs      int    // total epochs to reach; 0 runs until stopped
	FirstEpoch  int    // epoch number to start counting from when resuming
	WinnerEvery int    // record the epoch's best at least this often
	Seed        uint64 // recorded in population snapshots

	Progress   *telemetry.ProgressLog
	Output     *telemetry.OutputManager
	HallOfFame *telemetry.HallOfFame
	Perf       *telemetry.PerfCollector
	PerfWindow int // epochs between perf records
	Bookmarks  *telemetry.BookmarkDetector
	Snapshots  bool // save the population when a bookmark fires
}

// Searcher runs the generational loop. The population and best individual
// are published by atomic pointer replacement, so other goroutines may read
// them at any time while Run is in progress. Published populations must be
// treated as read-only.
type Searcher struct {
	engine *Engine
	opts   SearchOptions

	pop   atomic.Pointer[Population]
	best  atomic.Pointer[Individual]
	epoch atomic.Int64
	stop  atomic.Bool

	totalReplacement time.Duration
	ran              int // epochs run by this searcher
}

// NewSearcher creates a searcher starting from initial (nil for empty).
func NewSearcher(engine *Engine, initial *Population, opts SearchOptions) *Searcher {
	if initial == nil {
		initial = NewPopulation()
	}
	if opts.WinnerEvery < 1 {
		opts.WinnerEvery = 50
	}
	if opts.PerfWindow < 1 {
		opts.PerfWindow = 10
	}
	if opts.Perf == nil {
		opts.Perf = telemetry.NewPerfCollector(opts.PerfWindow)
	}
	s := &Searcher{engine: engine, opts: opts}
	s.pop.Store(initial)
	s.epoch.Store(int64(max(opts.FirstEpoch, 0)))
	return s
}

// Population returns the latest published population.
func (s *Searcher) Population() *Population {
	return s.pop.Load()
}

// Best returns the best individual recorded so far. The boolean is false
// before the first epoch completes with a non-empty population.
func (s *Searcher) Best() (Individual, bool) {
	if b := s.best.Load(); b != nil {
		return *b, true
	}
	return empty(), false
}

// Epoch returns the number of the next epoch to run, which is the number of
// completed epochs when counting started at zero.
func (s *Searcher) Epoch() int {
	return int(s.epoch.Load())
}

// Stop asks Run to return after the epoch in progress.
func (s *Searcher) Stop() {
	s.stop.Store(true)
}

// Run executes epochs until the configured count is reached, Stop is called
// or ctx is done. Cancellation is checked between epochs only; an epoch in
// progress always completes. Run returns the last complete population.
func (s *Searcher) Run(ctx context.Context) *Population {
	p := s.engine.Params()
	slog.Info("search started",
		"metric", p.Metric,
		"epochs", s.opts.Epochs,
		"population", s.Population().Size(),
	)

	pop := s.Population()
	for s.opts.Epochs == 0 || s.Epoch() < s.opts.Epochs {
		if ctx.Err() != nil || s.stop.Load() {
			break
		}
		epoch := s.Epoch()
		perf := s.opts.Perf

		perf.StartEpoch()
		perf.StartPhase(telemetry.PhaseSeed)
		seeded := s.engine.Seed(pop, p.RandomInserts)

		perf.StartPhase(telemetry.PhaseIterate)
		pop = s.engine.Iterate(seeded, p.Replacements, p.Advances, p.MaxSize)

		perf.StartPhase(telemetry.PhaseSelect)
		top, ok := pop.Best()
		s.pop.Store(pop)

		perf.StartPhase(telemetry.PhaseTelemetry)
		if ok {
			s.considerWinner(epoch, top)
		}
		elapsed := perf.EndEpoch()

		s.epoch.Add(1)
		s.report(epoch, pop, top, elapsed)
	}

	if err := s.opts.Output.WriteHallOfFame(s.opts.HallOfFame); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}
	slog.Info("search stopped",
		"epochs", s.Epoch(),
		"population", pop.Size(),
		"hall_of_fame", s.opts.HallOfFame.Len(),
		"hall_top", s.opts.HallOfFame.TopFitness(),
	)
	return pop
}

// considerWinner records top when it beats the best so far, ties it with
// fewer cells, or when the periodic record is due.
func (s *Searcher) considerWinner(epoch int, top Individual) {
	prev, hadBest := s.Best()
	improved := !hadBest ||
		top.Fitness > prev.Fitness ||
		(top.Fitness == prev.Fitness && top.Cells.Len() < prev.Cells.Len())
	periodic := epoch%s.opts.WinnerEvery == s.opts.WinnerEvery-1

	if improved {
		best := top
		s.best.Store(&best)
	}

	id := uuid.NewString()
	s.opts.HallOfFame.Consider(telemetry.HallEntry{
		ID:      id,
		Fitness: top.Fitness,
		Epoch:   epoch,
		Cells:   top.Cells,
		Rule:    top.Rule,
	})

	if !improved && !periodic {
		return
	}
	if s.opts.Progress == nil {
		return
	}

	w := telemetry.Winner{
		ID:         id,
		Epoch:      epoch,
		Fitness:    top.Fitness,
		Cells:      top.Cells,
		Rule:       top.Rule,
		Iterations: top.Iterations,
	}
	if !s.opts.Progress.RecordWinner(w) {
		slog.Warn("winner record dropped", "epoch", epoch, "fitness", top.Fitness)
		return
	}
	slog.Info("winner",
		"epoch", epoch,
		"fitness", top.Fitness,
		"cells", top.Cells.Len(),
		"rule", top.Rule.String(),
		"improved", improved,
	)
}

// report logs and writes the epoch's statistics and bookmarks.
func (s *Searcher) report(epoch int, pop *Population, top Individual, elapsed time.Duration) {
	p := s.engine.Params()
	perf := s.opts.Perf

	replacement := perf.PhaseDuration(telemetry.PhaseIterate) / time.Duration(max(p.Replacements, 1))
	s.totalReplacement += replacement
	s.ran++

	fits, sizes := pop.weights()
	mean, std, lo, p50, hi := telemetry.ComputeFitnessStats(fits, sizes)
	stats := telemetry.EpochStats{
		Epoch:            epoch,
		ElapsedMS:        float64(elapsed) / float64(time.Millisecond),
		Population:       pop.Size(),
		Buckets:          pop.Buckets(),
		FitnessMean:      mean,
		FitnessStd:       std,
		FitnessMin:       lo,
		FitnessP50:       p50,
		FitnessMax:       hi,
		BestCells:        top.Cells.Len(),
		BestRule:         top.Rule.String(),
		ReplacementMS:    float64(replacement) / float64(time.Millisecond),
		AvgReplacementMS: float64(s.totalReplacement) / float64(time.Millisecond) / float64(s.ran),
	}
	stats.LogStats()
	if err := s.opts.Output.WriteEpoch(stats); err != nil {
		slog.Error("failed to write epoch stats", "error", err)
	}

	if s.ran%s.opts.PerfWindow == 0 {
		ps := perf.Stats()
		ps.LogStats()
		if err := s.opts.Output.WritePerf(ps, epoch); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}

	if s.opts.Bookmarks == nil {
		return
	}
	for _, b := range s.opts.Bookmarks.Check(stats) {
		b.LogBookmark()
		if err := s.opts.Output.WriteBookmark(b); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if !s.opts.Snapshots {
			continue
		}
		snap := PopulationSnapshot(pop, epoch, s.opts.Seed, p.Metric)
		snap.Bookmark = &b
		path, err := s.opts.Output.WriteSnapshot(snap)
		if err != nil {
			slog.Error("failed to save snapshot", "error", err)
			continue
		}
		if path != "" {
			slog.Info("snapshot saved", "path", path, "bookmark", string(b.Type))
		}
	}
}
