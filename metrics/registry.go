// Package metrics scores completed automaton runs. Each metric is a named
// function over a RunSummary; the search picks one by name at startup.
package metrics

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pthm-cable/lifesoup/life"
)

// ErrUnknownMetric is returned when a name is not registered.
var ErrUnknownMetric = errors.New("unknown metric")

// RunSummary describes one finished fitness evaluation.
type RunSummary struct {
	Origin       life.Configuration // configuration the run started from
	Final        life.Configuration // configuration at the step the cycle was detected
	Rule         life.Rule
	MovingWeight float64 // multiplier for non-still groups in weighted_parts
	Iterations   int     // steps simulated
	CycleLength  int     // steps between the repeated snapshots
}

// Metric scores a run. Scores are nonnegative.
type Metric func(RunSummary) float64

// MetricInfo describes a registered metric.
type MetricInfo struct {
	Name        string
	Description string
	Fn          Metric
}

// Registry maps metric names to functions.
type Registry struct {
	metrics []MetricInfo
	byName  map[string]MetricInfo
}

// NewRegistry creates a registry holding every built-in metric.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]MetricInfo)}
	r.registerDefaults()
	return r
}

// Register adds a metric. Registering an existing name replaces it.
func (r *Registry) Register(info MetricInfo) {
	info.Name = Normalize(info.Name)
	if _, exists := r.byName[info.Name]; !exists {
		r.metrics = append(r.metrics, info)
	} else {
		for i := range r.metrics {
			if r.metrics[i].Name == info.Name {
				r.metrics[i] = info
			}
		}
	}
	r.byName[info.Name] = info
}

// Lookup returns the metric registered under name. Spaces in name are
// treated as underscores, so "most shapes" finds most_shapes.
func (r *Registry) Lookup(name string) (Metric, error) {
	info, ok := r.byName[Normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownMetric, name, strings.Join(r.Names(), ", "))
	}
	return info.Fn, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.metrics))
	for _, m := range r.metrics {
		names = append(names, m.Name)
	}
	slices.Sort(names)
	return names
}

// All returns every registered metric in registration order.
func (r *Registry) All() []MetricInfo {
	return slices.Clone(r.metrics)
}

// Normalize maps a metric name to its registry form.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// Default is the registry of built-in metrics.
var Default = NewRegistry()

// Lookup resolves name against the Default registry.
func Lookup(name string) (Metric, error) {
	return Default.Lookup(name)
}

// registerDefaults adds the built-in metrics.
func (r *Registry) registerDefaults() {
	// Run length
	r.Register(MetricInfo{Name: "longest", Description: "Steps until the run repeats", Fn: Longest})
	r.Register(MetricInfo{Name: "longest_cycle", Description: "Length of the detected cycle", Fn: LongestCycle})

	// Size
	r.Register(MetricInfo{Name: "biggest", Description: "Live cells at the end of the run", Fn: Biggest})
	r.Register(MetricInfo{Name: "most_growth", Description: "Final size over initial size", Fn: MostGrowth})
	r.Register(MetricInfo{Name: "biggest_part", Description: "Largest distance-1 component", Fn: BiggestPart})
	r.Register(MetricInfo{Name: "biggest_group", Description: "Largest distance-2 component", Fn: BiggestGroup})

	// Structure
	r.Register(MetricInfo{Name: "most_shapes", Description: "Distance-1 components", Fn: MostShapes})
	r.Register(MetricInfo{Name: "most_parts", Description: "Distance-2 components", Fn: MostParts})
	r.Register(MetricInfo{Name: "most_diff_shapes", Description: "Distinct multi-cell shapes", Fn: MostDiffShapes})
	r.Register(MetricInfo{Name: "most_diff_parts", Description: "Distinct multi-bin part signatures", Fn: MostDiffParts})
	r.Register(MetricInfo{Name: "most_diff_groups", Description: "Distinct multi-bin group signatures", Fn: MostDiffGroups})

	// Motion
	r.Register(MetricInfo{Name: "most_moving_parts", Description: "Groups that are not still within the cycle", Fn: MostMovingParts})
	r.Register(MetricInfo{Name: "most_non_still", Description: "Parts that change after one step", Fn: MostNonStill})
	r.Register(MetricInfo{Name: "biggest_non_still", Description: "Largest group that is not still", Fn: BiggestNonStill})
	r.Register(MetricInfo{Name: "total_moving_parts", Description: "Size-weighted count of moving groups", Fn: TotalMovingParts})
	r.Register(MetricInfo{Name: "weighted_parts", Description: "Moving groups weighted against still parts", Fn: WeightedParts})
	r.Register(MetricInfo{Name: "cycle_part", Description: "Longest period among groups", Fn: CyclePart})
}
