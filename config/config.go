// Package config provides configuration loading and access for the search.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/metrics"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all search and viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Search    SearchConfig    `yaml:"search"`
	Seeding   SeedingConfig   `yaml:"seeding"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Viewer    ViewerConfig    `yaml:"viewer"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SearchConfig holds genetic search parameters.
type SearchConfig struct {
	Metric        string  `yaml:"metric"`         // fitness metric name
	Advances      int     `yaml:"advances"`       // simulation horizon per evaluation
	MaxSize       int     `yaml:"max_size"`       // live cells that end an evaluation as overflow
	Replacements  int     `yaml:"replacements"`   // children bred per epoch
	RandomInserts int     `yaml:"random_inserts"` // fresh candidates per epoch
	Epochs        int     `yaml:"epochs"`         // 0 = run until stopped
	Mutations     float64 `yaml:"mutations"`      // proportion of a child's size added by mutation
	MovingWeight  float64 `yaml:"moving_weight"`  // weight of moving groups in weighted_parts
	Rule          string  `yaml:"rule"`           // fixed rule for every seed, e.g. "B3/S23"; empty = random
}

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// FloatRange is a closed real interval.
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SeedingConfig controls random candidates.
type SeedingConfig struct {
	SquareSize          int        `yaml:"square_size"`  // side of the seeding window
	Proportion          FloatRange `yaml:"proportion"`   // live fraction of the window
	Displacement        int        `yaml:"displacement"` // max window offset, in window sides
	Born                IntRange   `yaml:"born"`
	BornCardinality     IntRange   `yaml:"born_cardinality"`
	Survival            IntRange   `yaml:"survival"`
	SurvivalCardinality IntRange   `yaml:"survival_cardinality"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow          int  `yaml:"perf_window"`           // epochs averaged by the perf collector
	WinnerEvery         int  `yaml:"winner_every"`          // record the best individual at least this often
	HallOfFameSize      int  `yaml:"hall_of_fame_size"`     // distinct winners kept
	BookmarkHistorySize int  `yaml:"bookmark_history_size"` // epochs of history for bookmark detection
	ProgressQueue       int  `yaml:"progress_queue"`        // pending winner records before dropping
	Snapshots           bool `yaml:"snapshots"`             // save the population when a bookmark fires
}

// ViewerConfig holds viewer settings.
type ViewerConfig struct {
	Simulate bool    `yaml:"simulate"`  // run the search in the background while viewing
	FPS      int     `yaml:"fps"`       // automaton generations per second
	CellSize float64 `yaml:"cell_size"` // pixels per cell at zoom 1
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Rule      *life.Rule // parsed Search.Rule, nil when rules are seeded
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.Rule = nil
	if c.Search.Rule != "" {
		rule, err := life.ParseRule(c.Search.Rule)
		if err != nil {
			return fmt.Errorf("%w: search.rule: %w", ErrInvalidConfig, err)
		}
		c.Derived.Rule = &rule
	}
	return nil
}

// Validate checks ranges and resolves the metric name. An unknown metric is
// an error so a bad name stops the program before any evaluation.
func (c *Config) Validate() error {
	if _, err := metrics.Lookup(c.Search.Metric); err != nil {
		return fmt.Errorf("%w: search.metric: %w", ErrInvalidConfig, err)
	}

	checks := []struct {
		ok   bool
		what string
	}{
		{c.Search.Advances >= 1, "search.advances must be at least 1"},
		{c.Search.MaxSize >= 1, "search.max_size must be at least 1"},
		{c.Search.Replacements >= 1, "search.replacements must be at least 1"},
		{c.Search.RandomInserts >= 0, "search.random_inserts must not be negative"},
		{c.Search.Epochs >= 0, "search.epochs must not be negative"},
		{c.Search.Mutations >= 0, "search.mutations must not be negative"},
		{c.Search.MovingWeight >= 0, "search.moving_weight must not be negative"},
		{c.Seeding.SquareSize >= 1, "seeding.square_size must be at least 1"},
		{c.Seeding.Displacement >= 0, "seeding.displacement must not be negative"},
		{c.Seeding.Proportion.Min >= 0 && c.Seeding.Proportion.Min <= c.Seeding.Proportion.Max && c.Seeding.Proportion.Max <= 1,
			"seeding.proportion must satisfy 0 <= min <= max <= 1"},
		{countRange(c.Seeding.Born), "seeding.born must satisfy 0 <= min <= max <= 8"},
		{countRange(c.Seeding.Survival), "seeding.survival must satisfy 0 <= min <= max <= 8"},
		{cardinality(c.Seeding.BornCardinality), "seeding.born_cardinality must satisfy 0 <= min <= max"},
		{cardinality(c.Seeding.SurvivalCardinality), "seeding.survival_cardinality must satisfy 0 <= min <= max"},
		{c.Telemetry.WinnerEvery >= 1, "telemetry.winner_every must be at least 1"},
		{c.Viewer.FPS >= 1, "viewer.fps must be at least 1"},
	}
	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, check.what)
		}
	}
	return nil
}

func countRange(r IntRange) bool {
	return r.Min >= 0 && r.Min <= r.Max && r.Max <= life.MaxNeighbors
}

func cardinality(r IntRange) bool {
	return r.Min >= 0 && r.Min <= r.Max
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
