package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFitnessBreakthrough BookmarkType = "fitness_breakthrough"
	BookmarkPopulationRecovery  BookmarkType = "population_recovery"
	BookmarkPopulationCrash     BookmarkType = "population_crash"
	BookmarkStagnation          BookmarkType = "stagnation"
)

// Bookmark marks an epoch where the search did something notable.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Epoch       int          `csv:"epoch" json:"epoch"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"epoch", b.Epoch,
		"description", b.Description,
	)
}

// BookmarkDetector watches epoch statistics for notable moments.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []EpochStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPopMin      int // minimum population in recent history
	recentPopPeak     int // peak population in recent history
	stableEpochsCount int // consecutive epochs with a flat fitness distribution
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stagnation detection
	}
	return &BookmarkDetector{
		history:     make([]EpochStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats EpochStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Best fitness more than double the rolling average of maxima
		if b := bd.checkFitnessBreakthrough(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Population was nearly extinct, now at least 3x that
		if b := bd.checkPopulationRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Population dropped >30% from recent peak
		if b := bd.checkPopulationCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Best and mean fitness flat over 5+ epochs
		if b := bd.checkStagnation(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if stats.Population < bd.recentPopMin || bd.recentPopMin == 0 {
		bd.recentPopMin = stats.Population
	}
	if stats.Population > bd.recentPopPeak {
		bd.recentPopPeak = stats.Population
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats EpochStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the recorded epochs, oldest first.
func (bd *BookmarkDetector) getHistory() []EpochStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	return append(append([]EpochStats(nil), bd.history[bd.historyIdx:]...), bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkFitnessBreakthrough(stats EpochStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.FitnessMax
	}
	avg := total / float64(len(history))
	if avg <= 0 {
		return nil
	}

	if stats.FitnessMax > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkFitnessBreakthrough,
			Epoch:       stats.Epoch,
			Description: fmt.Sprintf("Best fitness %.2f is %.1fx average (%.2f)", stats.FitnessMax, stats.FitnessMax/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPopulationRecovery(stats EpochStats) *Bookmark {
	if bd.recentPopMin == 0 || bd.recentPopMin > 3 {
		return nil
	}

	if stats.Population >= bd.recentPopMin*3 && stats.Population >= 6 {
		oldMin := bd.recentPopMin
		bd.recentPopMin = stats.Population
		return &Bookmark{
			Type:        BookmarkPopulationRecovery,
			Epoch:       stats.Epoch,
			Description: fmt.Sprintf("Population recovered from %d to %d", oldMin, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPopulationCrash(stats EpochStats) *Bookmark {
	if bd.recentPopPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Population)/float64(bd.recentPopPeak)
	if drop > 0.30 && stats.Population < bd.recentPopPeak-10 {
		oldPeak := bd.recentPopPeak
		bd.recentPopPeak = stats.Population
		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Epoch:       stats.Epoch,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStagnation(stats EpochStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	var maxSum, meanSum float64
	for _, h := range recent {
		maxSum += h.FitnessMax
		meanSum += h.FitnessMean
	}
	maxMean := maxSum / 4
	meanMean := meanSum / 4

	var maxVar, meanVar float64
	for _, h := range recent {
		maxVar += (h.FitnessMax - maxMean) * (h.FitnessMax - maxMean)
		meanVar += (h.FitnessMean - meanMean) * (h.FitnessMean - meanMean)
	}
	maxVar /= 4
	meanVar /= 4

	// CV^2 < 0.0004 means CV < 2%
	flat := maxMean > 0 && meanMean > 0 &&
		maxVar/(maxMean*maxMean) < 0.0004 && meanVar/(meanMean*meanMean) < 0.0004 &&
		stats.FitnessMax <= maxMean*1.02

	if flat {
		bd.stableEpochsCount++
	} else {
		bd.stableEpochsCount = 0
	}

	if bd.stableEpochsCount == 5 { // trigger exactly once per flat stretch
		return &Bookmark{
			Type:        BookmarkStagnation,
			Epoch:       stats.Epoch,
			Description: fmt.Sprintf("Best fitness stuck near %.2f over 5+ epochs", stats.FitnessMax),
		}
	}
	return nil
}
