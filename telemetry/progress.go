package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/rle"
)

// Winner is a best-so-far pattern reported by the search.
type Winner struct {
	ID         string
	Epoch      int
	Fitness    float64
	Cells      life.Configuration
	Rule       life.Rule
	Iterations int // 0 when unknown
	Time       time.Time
}

// winnerCSV is the flat row written to winners.csv.
type winnerCSV struct {
	ID         string  `csv:"id"`
	Time       string  `csv:"time"`
	Epoch      int     `csv:"epoch"`
	Fitness    float64 `csv:"fitness"`
	Cells      int     `csv:"cells"`
	Rule       string  `csv:"rule"`
	Iterations int     `csv:"iterations"`
	Pattern    string  `csv:"pattern"`
}

// LogFileName returns the progress log name for a search: the horizon and
// the words of the metric name joined by underscores, e.g. "200_most_shapes.log".
func LogFileName(advances int, metric string) string {
	parts := append([]string{strconv.Itoa(advances)}, strings.Fields(strings.ReplaceAll(metric, "_", " "))...)
	return strings.Join(parts, "_") + ".log"
}

// FormatRecord renders a winner as a human-readable log record: a
// "fitness | cells | iterations" line, the pattern with its rule header, and
// a blank line.
func FormatRecord(w Winner) string {
	iterations := ""
	if w.Iterations > 0 {
		iterations = strconv.Itoa(w.Iterations)
	}
	return fmt.Sprintf("%.2f | %d | %s\n%s\n\n", w.Fitness, w.Cells.Len(), iterations, rle.SerializeRule(w.Cells, w.Rule))
}

// ProgressLog appends winners to a text log and to winners.csv from a
// background goroutine. RecordWinner never blocks: when the queue is full the
// record is dropped.
type ProgressLog struct {
	queue   chan Winner
	done    chan struct{}
	text    *os.File
	csv     *os.File
	dropped atomic.Int64

	mu     sync.Mutex
	closed bool

	headerWritten bool
}

// NewProgressLog opens (appending) name and winners.csv in dir and starts the
// writer. Returns nil if dir is empty (logging disabled).
func NewProgressLog(dir, name string, capacity int) (*ProgressLog, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating progress log directory: %w", err)
	}
	if capacity < 1 {
		capacity = 1
	}

	text, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	csvPath := filepath.Join(dir, "winners.csv")
	info, statErr := os.Stat(csvPath)
	csvFile, err := os.OpenFile(csvPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		text.Close()
		return nil, fmt.Errorf("opening winners.csv: %w", err)
	}

	l := &ProgressLog{
		queue:         make(chan Winner, capacity),
		done:          make(chan struct{}),
		text:          text,
		csv:           csvFile,
		headerWritten: statErr == nil && info.Size() > 0,
	}
	go l.run()
	return l, nil
}

// RecordWinner queues w for writing. It assigns an ID and timestamp when
// missing and returns false if the record was dropped.
func (l *ProgressLog) RecordWinner(w Winner) bool {
	if l == nil {
		return false
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Time.IsZero() {
		w.Time = time.Now()
	}
	w.Cells = w.Cells.Clone()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		l.dropped.Add(1)
		return false
	}
	select {
	case l.queue <- w:
		return true
	default:
		l.dropped.Add(1)
		return false
	}
}

// Dropped returns the number of records lost to a full queue or a closed log.
func (l *ProgressLog) Dropped() int64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Close stops accepting records, writes everything still queued and closes
// the files.
func (l *ProgressLog) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.queue)
	l.mu.Unlock()

	<-l.done

	var firstErr error
	if err := l.text.Close(); err != nil {
		firstErr = err
	}
	if err := l.csv.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (l *ProgressLog) run() {
	defer close(l.done)
	for w := range l.queue {
		if err := l.write(w); err != nil {
			slog.Warn("progress log write failed", "id", w.ID, "error", err)
		}
	}
}

func (l *ProgressLog) write(w Winner) error {
	if _, err := l.text.WriteString(FormatRecord(w)); err != nil {
		return fmt.Errorf("writing progress log: %w", err)
	}

	records := []winnerCSV{{
		ID:         w.ID,
		Time:       w.Time.Format(time.RFC3339),
		Epoch:      w.Epoch,
		Fitness:    w.Fitness,
		Cells:      w.Cells.Len(),
		Rule:       w.Rule.String(),
		Iterations: w.Iterations,
		Pattern:    rle.Serialize(w.Cells),
	}}
	if !l.headerWritten {
		if err := gocsv.Marshal(records, l.csv); err != nil {
			return fmt.Errorf("writing winners: %w", err)
		}
		l.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, l.csv); err != nil {
		return fmt.Errorf("writing winners: %w", err)
	}
	return nil
}
