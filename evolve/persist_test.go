package evolve

import (
	"path/filepath"
	"testing"

	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/telemetry"
)

func TestSnapshotRoundTrip(t *testing.T) {
	pop := NewPopulation()
	pop.Add(1, NewCandidate(block(), life.Life))
	pop.Add(1, NewCandidate(blinker().Translate(life.Cell{X: -4, Y: 7}), life.HighLife))
	pop.Add(3.5, NewCandidate(glider(), life.Life))

	snap := PopulationSnapshot(pop, 12, 99, "most_shapes")
	if len(snap.Members) != 3 || snap.Members[0].Fitness != 3.5 {
		t.Fatalf("members = %+v", snap.Members)
	}

	path, err := telemetry.SaveSnapshot(snap, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "snapshot_12.json" {
		t.Errorf("path = %s", path)
	}
	loaded, err := telemetry.LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Seed != 99 || loaded.Epoch != 12 {
		t.Errorf("loaded seed %d epoch %d", loaded.Seed, loaded.Epoch)
	}

	back := PopulationFromSnapshot(loaded)
	if back.Size() != pop.Size() {
		t.Fatalf("size = %d, want %d", back.Size(), pop.Size())
	}
	for _, f := range pop.Fitnesses() {
		want := map[string]bool{}
		for _, c := range pop.Candidates(f) {
			want[c.Key()] = true
		}
		for _, c := range back.Candidates(f) {
			if !want[c.Key()] {
				t.Errorf("fitness %v: unexpected candidate %s", f, c.Key())
			}
		}
	}
}

func TestPopulationFromHallOfFame(t *testing.T) {
	hof := telemetry.NewHallOfFame(5)
	hof.Consider(telemetry.HallEntry{ID: "a", Fitness: 4, Cells: glider(), Rule: life.Life})
	hof.Consider(telemetry.HallEntry{ID: "b", Fitness: 2, Cells: block(), Rule: life.Life})

	pop := PopulationFromHallOfFame(hof)
	if pop.Size() != 2 || pop.Max() != 4 || pop.Min() != 2 {
		t.Errorf("size %d min %v max %v", pop.Size(), pop.Min(), pop.Max())
	}
	if PopulationFromHallOfFame(nil).Size() != 0 {
		t.Error("nil hall should give an empty population")
	}
}

func TestAddPatterns(t *testing.T) {
	pop := NewPopulation()
	pop.Add(4, NewCandidate(glider(), life.Life))

	n := AddPatterns(pop, life.HighLife,
		"x = 2, y = 2, rule = B3/S23\n2o$2o!",
		"3o!",
		"",
	)
	if n != 2 {
		t.Fatalf("added %d patterns, want 2", n)
	}
	if got := pop.Candidates(4); len(got) != 3 {
		t.Fatalf("patterns not filed at the average 4: buckets %v", pop.Fitnesses())
	}
	var rules []life.Rule
	for _, f := range pop.Fitnesses() {
		for _, c := range pop.Candidates(f) {
			if c.Cells.Len() == 3 {
				rules = append(rules, c.Rule)
			}
		}
	}
	if len(rules) != 1 || rules[0] != life.HighLife {
		t.Errorf("headerless pattern rules = %v, want [HighLife]", rules)
	}
}
