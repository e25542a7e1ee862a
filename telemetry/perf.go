package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one search epoch.
const (
	PhaseSeed      = "seed"
	PhaseIterate   = "iterate"
	PhaseSelect    = "select"
	PhaseTelemetry = "telemetry"
)

var phases = []string{PhaseSeed, PhaseIterate, PhaseSelect, PhaseTelemetry}

// PerfSample holds timing data for a single epoch.
type PerfSample struct {
	EpochDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks epoch timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	epochStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (viewer)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize epochs.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 10
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartEpoch begins timing a new epoch.
func (p *PerfCollector) StartEpoch() {
	p.epochStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndEpoch finishes the current epoch and records its sample. It returns the
// epoch's duration.
func (p *PerfCollector) EndEpoch() time.Duration {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	sample := PerfSample{
		EpochDuration: now.Sub(p.epochStart),
		Phases:        p.currentPhases,
	}

	p.samples[p.writeIndex] = sample
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	return sample.EpochDuration
}

// PhaseDuration returns the time spent in phase during the last recorded
// epoch.
func (p *PerfCollector) PhaseDuration(phase string) time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	last := (p.writeIndex - 1 + p.windowSize) % p.windowSize
	return p.samples[last].Phases[phase]
}

// RecordFrame records frame timing for the viewer.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgEpochDuration time.Duration
	MinEpochDuration time.Duration
	MaxEpochDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total epoch time
	PhasePct map[string]float64

	EpochsPerSecond float64

	// Frame timing (viewer)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameDuration: p.frameDuration,
			FPS:           fps,
		}
	}

	var total, lo, hi time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.EpochDuration
		if i == 0 || s.EpochDuration < lo {
			lo = s.EpochDuration
		}
		if s.EpochDuration > hi {
			hi = s.EpochDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var perSec float64
	if avg > 0 {
		perSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgEpochDuration: avg,
		MinEpochDuration: lo,
		MaxEpochDuration: hi,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		EpochsPerSecond:  perSec,
		FrameDuration:    p.frameDuration,
		FPS:              fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_epoch_ms", s.AvgEpochDuration.Milliseconds(),
		"min_epoch_ms", s.MinEpochDuration.Milliseconds(),
		"max_epoch_ms", s.MaxEpochDuration.Milliseconds(),
		"epochs_per_sec", s.EpochsPerSecond,
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_epoch_ms", s.AvgEpochDuration.Milliseconds()),
		slog.Int64("min_epoch_ms", s.MinEpochDuration.Milliseconds()),
		slog.Int64("max_epoch_ms", s.MaxEpochDuration.Milliseconds()),
		slog.Float64("epochs_per_sec", s.EpochsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Epoch        int     `csv:"epoch"`
	AvgEpochMS   float64 `csv:"avg_epoch_ms"`
	MinEpochMS   float64 `csv:"min_epoch_ms"`
	MaxEpochMS   float64 `csv:"max_epoch_ms"`
	EpochsPerSec float64 `csv:"epochs_per_sec"`
	SeedPct      float64 `csv:"seed_pct"`
	IteratePct   float64 `csv:"iterate_pct"`
	SelectPct    float64 `csv:"select_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(epoch int) PerfStatsCSV {
	return PerfStatsCSV{
		Epoch:        epoch,
		AvgEpochMS:   ms(s.AvgEpochDuration),
		MinEpochMS:   ms(s.MinEpochDuration),
		MaxEpochMS:   ms(s.MaxEpochDuration),
		EpochsPerSec: s.EpochsPerSecond,
		SeedPct:      s.PhasePct[PhaseSeed],
		IteratePct:   s.PhasePct[PhaseIterate],
		SelectPct:    s.PhasePct[PhaseSelect],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
