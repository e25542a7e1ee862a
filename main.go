package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lifesoup/config"
	"github.com/pthm-cable/lifesoup/evolve"
	"github.com/pthm-cable/lifesoup/game"
	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/telemetry"
)

// options holds the command-line flags.
type options struct {
	configPath   string
	headless     bool
	outputDir    string
	seed         uint64
	maxEpochs    int
	patternPath  string
	seedPatterns string
	resumePath   string
}

func main() {
	// CLI flags
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.BoolVar(&opts.headless, "headless", false, "Run the search without graphics")
	flag.StringVar(&opts.outputDir, "output-dir", "", "Output directory for CSV logs, progress log and hall of fame")
	flag.Uint64Var(&opts.seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.IntVar(&opts.maxEpochs, "max-epochs", -1, "Stop after N epochs (-1 = use config, 0 = unlimited)")
	flag.StringVar(&opts.patternPath, "pattern", "", "RLE file shown first and added to the initial population")
	flag.StringVar(&opts.seedPatterns, "seed-patterns", "", "hall_of_fame.json to seed the initial population from")
	flag.StringVar(&opts.resumePath, "resume", "", "Population snapshot to resume the search from")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(opts); err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(1)
	}
}

// run sets up the search and its telemetry, then runs it headless or in a
// window. Deferred cleanup always runs before it returns.
func run(opts options) error {
	// Initialize config before anything else
	if err := config.Init(opts.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()
	if opts.maxEpochs >= 0 {
		cfg.Search.Epochs = opts.maxEpochs
	}

	// Set up seed
	rngSeed := opts.seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	engine, err := evolve.NewEngine(evolve.ParamsFromConfig(cfg), rand.New(rand.NewPCG(rngSeed, rngSeed^0x9e3779b97f4a7c15)))
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	initial, firstEpoch, err := initialPopulation(opts.resumePath, opts.seedPatterns)
	if err != nil {
		return fmt.Errorf("loading initial population: %w", err)
	}

	var pattern string
	if opts.patternPath != "" {
		data, err := os.ReadFile(opts.patternPath)
		if err != nil {
			return fmt.Errorf("reading pattern: %w", err)
		}
		pattern = string(data)
		fallback := life.Life
		if cfg.Derived.Rule != nil {
			fallback = *cfg.Derived.Rule
		}
		if evolve.AddPatterns(initial, fallback, pattern) == 0 {
			slog.Warn("pattern has no live cells", "path", opts.patternPath)
		}
	}

	// Telemetry sinks; all are nil-safe when output is disabled
	output, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return fmt.Errorf("creating output manager: %w", err)
	}
	defer func() {
		if err := output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	if output != nil {
		slog.Info("writing output", "dir", output.Dir())
	}

	progress, err := telemetry.NewProgressLog(opts.outputDir,
		telemetry.LogFileName(cfg.Search.Advances, cfg.Search.Metric), cfg.Telemetry.ProgressQueue)
	if err != nil {
		return fmt.Errorf("opening progress log: %w", err)
	}
	defer func() {
		if err := progress.Close(); err != nil {
			slog.Error("failed to close progress log", "error", err)
		}
		if n := progress.Dropped(); n > 0 {
			slog.Warn("winner records dropped", "count", n)
		}
	}()

	search := evolve.SearchOptions{
		Epochs:      cfg.Search.Epochs,
		FirstEpoch:  firstEpoch,
		WinnerEvery: cfg.Telemetry.WinnerEvery,
		Seed:        rngSeed,
		Progress:    progress,
		Output:      output,
		HallOfFame:  telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),
		PerfWindow:  cfg.Telemetry.PerfWindow,
		Bookmarks:   telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize),
		Snapshots:   cfg.Telemetry.Snapshots,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.headless {
		slog.Info("starting headless search",
			"seed", rngSeed,
			"metric", cfg.Search.Metric,
			"epochs", cfg.Search.Epochs,
			"population", initial.Size(),
		)
		evolve.NewSearcher(engine, initial, search).Run(ctx)
		return nil
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Life Soup")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGame(cfg, engine, game.Options{
		Pattern: pattern,
		Initial: initial,
		Search:  search,
	})
	defer g.Unload()

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		g.Update()
		g.Draw()
	}
	return nil
}

// initialPopulation loads the population a search starts from: a snapshot
// when resuming, otherwise a hall of fame, otherwise an empty population.
// It also returns the epoch to continue counting from.
func initialPopulation(resumePath, hallPath string) (*evolve.Population, int, error) {
	if resumePath != "" {
		snap, err := telemetry.LoadSnapshot(resumePath)
		if err != nil {
			return nil, 0, err
		}
		pop := evolve.PopulationFromSnapshot(snap)
		slog.Info("resuming search", "path", resumePath, "epoch", snap.Epoch, "population", pop.Size())
		return pop, snap.Epoch + 1, nil
	}
	if hallPath != "" {
		hof, err := telemetry.LoadHallOfFameFromFile(hallPath)
		if err != nil {
			return nil, 0, err
		}
		pop := evolve.PopulationFromHallOfFame(hof)
		slog.Info("seeded from hall of fame", "path", hallPath, "population", pop.Size())
		return pop, 0, nil
	}
	return evolve.NewPopulation(), 0, nil
}
