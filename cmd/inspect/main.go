// Package main reports what a pattern does: its size and components, whether
// it is still or periodic, and the score every fitness metric gives its run.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/pthm-cable/lifesoup/config"
	"github.com/pthm-cable/lifesoup/evolve"
	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/metrics"
	"github.com/pthm-cable/lifesoup/rle"
)

func main() {
	configPath := flag.String("config", "", "Config YAML supplying advances, max_size and moving_weight (empty = use defaults)")
	ruleFlag := flag.String("rule", "", "Rule for patterns without a header, e.g. B36/S23 (empty = B3/S23)")
	limit := flag.Int("limit", 100, "Generations searched for still and cycle detection")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: inspect [flags] <pattern.rle | ->\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	text, err := readPattern(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to read pattern: %v", err)
	}

	cells, rule := rle.Parse(text)
	if !rle.HasRule(text) && *ruleFlag != "" {
		if rule, err = life.ParseRule(*ruleFlag); err != nil {
			log.Fatalf("invalid -rule: %v", err)
		}
	}
	if cells.Len() == 0 {
		log.Fatal("pattern has no live cells")
	}

	report, err := Inspect(cells, rule, cfg, *limit)
	if err != nil {
		log.Fatalf("inspect: %v", err)
	}
	report.Print(os.Stdout)
}

func readPattern(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// Score is one metric's score of the pattern's run.
type Score struct {
	Metric      string
	Description string
	Value       float64
}

// Report describes a pattern.
type Report struct {
	Cells  int
	Rule   life.Rule
	Lo, Hi life.Cell
	Parts  int
	Groups int
	Shapes int // distinct part shapes up to translation

	Still  bool
	Period int // 0 when no period was found within the limit

	Outcome    evolve.Outcome
	Iterations int
	Cycle      int
	Scores     []Score
}

// Inspect analyzes cells and scores their run under every registered metric
// with the search settings in cfg. A run that dies, overflows or exhausts the
// horizon scores 0 under every metric.
func Inspect(cells life.Configuration, rule life.Rule, cfg *config.Config, limit int) (*Report, error) {
	lo, hi, _ := cells.Bounds()
	r := &Report{
		Cells:  cells.Len(),
		Rule:   rule,
		Lo:     lo,
		Hi:     hi,
		Parts:  len(life.Parts(cells, life.PartDistance)),
		Groups: len(life.Parts(cells, life.GroupDistance)),
		Shapes: len(life.Split(cells, life.PartDistance)),
		Still:  life.IsStill(cells, rule, 1),
		Period: life.Cycle(cells, rule, limit),
	}

	engine, err := evolve.NewEngine(evolve.ParamsFromConfig(cfg), nil)
	if err != nil {
		return nil, err
	}
	p := engine.Params()
	eval := engine.Evaluate(cells, rule, p.Advances, 0, p.MaxSize)
	r.Outcome = eval.Outcome
	r.Iterations = eval.Iterations
	r.Cycle = eval.CycleLength

	summary := metrics.RunSummary{
		Origin:       cells,
		Final:        eval.Final,
		Rule:         rule,
		MovingWeight: p.MovingWeight,
		Iterations:   eval.Iterations,
		CycleLength:  eval.CycleLength,
	}
	for _, m := range metrics.Default.All() {
		score := eval.Score
		if eval.Outcome == evolve.OutcomeCycle {
			score = m.Fn(summary)
		}
		r.Scores = append(r.Scores, Score{Metric: m.Name, Description: m.Description, Value: score})
	}
	return r, nil
}

// Print writes the report as aligned text.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Cells:    %d\n", r.Cells)
	fmt.Fprintf(w, "Rule:     %s\n", r.Rule)
	fmt.Fprintf(w, "Bounds:   (%d,%d) - (%d,%d), %dx%d\n", r.Lo.X, r.Lo.Y, r.Hi.X, r.Hi.Y, r.Hi.X-r.Lo.X+1, r.Hi.Y-r.Lo.Y+1)
	fmt.Fprintf(w, "Parts:    %d (%d distinct shapes)\n", r.Parts, r.Shapes)
	fmt.Fprintf(w, "Groups:   %d\n", r.Groups)
	switch {
	case r.Still:
		fmt.Fprintf(w, "Behavior: still life\n")
	case r.Period > 0:
		fmt.Fprintf(w, "Behavior: period %d\n", r.Period)
	default:
		fmt.Fprintf(w, "Behavior: no period found\n")
	}
	fmt.Fprintf(w, "Run:      %s after %d steps", r.Outcome, r.Iterations)
	if r.Outcome == evolve.OutcomeCycle {
		fmt.Fprintf(w, ", cycle %d", r.Cycle)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tSCORE\tDESCRIPTION")
	for _, s := range r.Scores {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", s.Metric, s.Value, s.Description)
	}
	tw.Flush()
}
