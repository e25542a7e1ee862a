package game

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/lifesoup/evolve"
	"github.com/pthm-cable/lifesoup/ui"
)

// startSearch runs a searcher on a worker goroutine, continuing from the
// population the previous run ended with.
func (g *Game) startSearch() {
	if g.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	opts := g.opts.Search
	if g.searcher != nil {
		opts.FirstEpoch = g.searcher.Epoch()
	}
	s := evolve.NewSearcher(g.engine, g.resume, opts)
	group.Go(func() error {
		s.Run(ctx)
		return nil
	})

	g.searcher = s
	g.group = group
	g.cancel = cancel
	g.running = true
	slog.Info("background search started", "epoch", s.Epoch())
}

// stopSearch asks the worker to finish its epoch and waits for it.
func (g *Game) stopSearch() {
	if !g.running {
		return
	}
	g.searcher.Stop()
	g.cancel()
	if err := g.group.Wait(); err != nil {
		slog.Error("background search failed", "error", err)
	}
	g.resume = g.searcher.Population()
	g.running = false
	slog.Info("background search stopped", "epoch", g.searcher.Epoch())
}

// searchStatus reads the worker's published snapshots.
func (g *Game) searchStatus() ui.SearchStatus {
	status := ui.SearchStatus{
		Running: g.running,
		Metric:  g.engine.Params().Metric,
	}
	if g.searcher == nil {
		return status
	}
	pop := g.searcher.Population()
	status.Epoch = g.searcher.Epoch()
	status.Population = pop.Size()
	status.Buckets = pop.Buckets()
	if pop.Size() > 0 {
		status.Average = pop.Average()
	}
	if best, ok := g.searcher.Best(); ok {
		status.Best = best.Fitness
		status.BestCells = best.Cells.Len()
		status.BestRule = best.Rule.String()
	}
	return status
}
