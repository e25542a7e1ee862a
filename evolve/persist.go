package evolve

import (
	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/rle"
	"github.com/pthm-cable/lifesoup/telemetry"
)

// PopulationSnapshot captures every member of pop, highest fitness first.
func PopulationSnapshot(pop *Population, epoch int, seed uint64, metric string) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		Seed:    seed,
		Metric:  metric,
		Epoch:   epoch,
		Members: make([]telemetry.MemberState, 0, pop.Size()),
	}
	fits := pop.Fitnesses()
	for i := len(fits) - 1; i >= 0; i-- {
		for _, c := range pop.Candidates(fits[i]) {
			snap.Members = append(snap.Members, telemetry.NewMemberState(fits[i], c.Cells, c.Rule))
		}
	}
	return snap
}

// PopulationFromSnapshot rebuilds the population a snapshot was taken from.
// Members with empty patterns are skipped.
func PopulationFromSnapshot(snap *telemetry.Snapshot) *Population {
	pop := NewPopulation()
	if snap == nil {
		return pop
	}
	for _, m := range snap.Members {
		cells, rule := m.Decode()
		if cells.Len() == 0 {
			continue
		}
		pop.Add(m.Fitness, NewCandidate(cells, rule))
	}
	return pop
}

// PopulationFromHallOfFame files every hall entry under its recorded fitness.
func PopulationFromHallOfFame(hof *telemetry.HallOfFame) *Population {
	pop := NewPopulation()
	for _, e := range hof.Entries() {
		pop.Add(e.Fitness, NewCandidate(e.Cells, e.Rule))
	}
	return pop
}

// AddPatterns parses RLE patterns and files them under the population's
// average fitness. A pattern without a rule header uses fallback. It returns
// the number of patterns added.
func AddPatterns(pop *Population, fallback life.Rule, patterns ...string) int {
	added := 0
	for _, text := range patterns {
		cells, rule := rle.Parse(text)
		if cells.Len() == 0 {
			continue
		}
		if !rle.HasRule(text) {
			rule = fallback
		}
		if pop.Add(pop.Average(), NewCandidate(cells, rule)) {
			added++
		}
	}
	return added
}
