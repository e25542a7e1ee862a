package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_FitnessBreakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(EpochStats{Epoch: i, Population: 50, FitnessMax: 10, FitnessMean: 4})
	}

	bookmarks := bd.Check(EpochStats{Epoch: 5, Population: 50, FitnessMax: 25, FitnessMean: 5})
	if !hasBookmark(bookmarks, BookmarkFitnessBreakthrough) {
		t.Error("expected fitness_breakthrough bookmark")
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(EpochStats{Epoch: i, Population: 100, FitnessMax: 3, FitnessMean: 2})
	}

	bookmarks := bd.Check(EpochStats{Epoch: 5, Population: 50, FitnessMax: 3, FitnessMean: 2})
	if !hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("expected population_crash bookmark")
	}
}

func TestBookmarkDetector_PopulationRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(EpochStats{Epoch: i, Population: 2})
	}

	bookmarks := bd.Check(EpochStats{Epoch: 3, Population: 10})
	if !hasBookmark(bookmarks, BookmarkPopulationRecovery) {
		t.Error("expected population_recovery bookmark")
	}
}

func TestBookmarkDetector_Stagnation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := -1
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(EpochStats{Epoch: i, Population: 40, FitnessMax: 7, FitnessMean: 3})
		if hasBookmark(bookmarks, BookmarkStagnation) {
			if fired >= 0 {
				t.Fatalf("stagnation fired twice (epochs %d and %d)", fired, i)
			}
			fired = i
		}
	}
	// Four epochs of history are needed, then five flat checks.
	if fired != 8 {
		t.Errorf("stagnation fired at epoch %d, want 8", fired)
	}
}

func TestBookmarkDetector_NoBookmarksOnFirstEpoch(t *testing.T) {
	bd := NewBookmarkDetector(10)
	if got := bd.Check(EpochStats{Population: 1, FitnessMax: 100}); len(got) != 0 {
		t.Errorf("first epoch produced bookmarks: %v", got)
	}
}
