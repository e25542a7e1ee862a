package evolve

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/lifesoup/telemetry"
)

func TestSearcherRunsConfiguredEpochs(t *testing.T) {
	e := newTestEngine(t, "most_shapes")
	s := NewSearcher(e, nil, SearchOptions{Epochs: 3})

	pop := s.Run(context.Background())
	if s.Epoch() != 3 {
		t.Errorf("epochs = %d, want 3", s.Epoch())
	}
	if pop != s.Population() {
		t.Error("Run should return the published population")
	}
	if pop.Size() == 0 {
		t.Fatal("population is empty after three epochs")
	}
	best, ok := s.Best()
	if !ok {
		t.Fatal("no best individual recorded")
	}
	if best.Fitness < pop.Max() {
		t.Errorf("best %v below the population max %v", best.Fitness, pop.Max())
	}
}

func TestSearcherHonorsCancellation(t *testing.T) {
	e := newTestEngine(t, "most_shapes")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSearcher(e, nil, SearchOptions{})
	s.Run(ctx)
	if s.Epoch() != 0 {
		t.Errorf("cancelled search ran %d epochs", s.Epoch())
	}
	if _, ok := s.Best(); ok {
		t.Error("best recorded without running")
	}

	stopped := NewSearcher(e, nil, SearchOptions{})
	stopped.Stop()
	stopped.Run(context.Background())
	if stopped.Epoch() != 0 {
		t.Errorf("stopped search ran %d epochs", stopped.Epoch())
	}
}

func TestSearcherStopWhileRunning(t *testing.T) {
	e := newTestEngine(t, "most_shapes")
	s := NewSearcher(e, nil, SearchOptions{})

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	deadline := time.After(10 * time.Second)
	for s.Epoch() < 2 {
		select {
		case <-deadline:
			t.Fatal("search made no progress")
		case <-time.After(time.Millisecond):
		}
	}
	s.Stop()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	// Readers may keep using the last snapshot after Run returns.
	if s.Population().Size() == 0 {
		t.Error("no population published")
	}
}

func TestSearcherWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	progress, err := telemetry.NewProgressLog(dir, telemetry.LogFileName(50, "most_shapes"), 16)
	if err != nil {
		t.Fatal(err)
	}
	hof := telemetry.NewHallOfFame(5)

	e := newTestEngine(t, "most_shapes")
	s := NewSearcher(e, nil, SearchOptions{
		Epochs:      4,
		WinnerEvery: 2,
		PerfWindow:  2,
		Progress:    progress,
		Output:      out,
		HallOfFame:  hof,
		Bookmarks:   telemetry.NewBookmarkDetector(4),
	})
	s.Run(context.Background())
	if err := progress.Close(); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	if hof.Len() == 0 {
		t.Error("hall of fame is empty")
	}

	epochs, err := os.ReadFile(filepath.Join(dir, "epochs.csv"))
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per epoch.
	if rows := strings.Count(string(epochs), "\n"); rows != 5 {
		t.Errorf("epochs.csv has %d lines, want 5", rows)
	}

	for _, name := range []string{"perf.csv", "hall_of_fame.json", "winners.csv", "50_most_shapes.log"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	loaded, err := telemetry.LoadHallOfFameFromFile(filepath.Join(dir, "hall_of_fame.json"))
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != hof.Len() {
		t.Errorf("reloaded hall has %d entries, want %d", loaded.Len(), hof.Len())
	}
}

func TestSearcherResumesEpochCount(t *testing.T) {
	e := newTestEngine(t, "most_shapes")
	first := NewSearcher(e, nil, SearchOptions{Epochs: 2})
	pop := first.Run(context.Background())

	second := NewSearcher(e, pop, SearchOptions{Epochs: 5, FirstEpoch: first.Epoch()})
	second.Run(context.Background())
	if second.Epoch() != 5 {
		t.Errorf("resumed search stopped at epoch %d, want 5", second.Epoch())
	}
}
