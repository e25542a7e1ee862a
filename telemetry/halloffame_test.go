package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/lifesoup/life"
)

func line(n int) life.Configuration {
	c := make(life.Configuration)
	for x := range n {
		c.Add(life.Cell{X: x})
	}
	return c
}

func TestHallOfFameOrdering(t *testing.T) {
	hof := NewHallOfFame(3)

	hof.Consider(HallEntry{ID: "a", Fitness: 2, Cells: line(4), Rule: life.Life})
	hof.Consider(HallEntry{ID: "b", Fitness: 5, Cells: line(6), Rule: life.Life})
	hof.Consider(HallEntry{ID: "c", Fitness: 5, Cells: line(3), Rule: life.Life})
	hof.Consider(HallEntry{ID: "d", Fitness: 1, Cells: line(2), Rule: life.Life})

	got := hof.Entries()
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("rank %d = %s, want %s", i, got[i].ID, id)
		}
	}
	if hof.TopFitness() != 5 {
		t.Errorf("TopFitness = %v, want 5", hof.TopFitness())
	}
}

func TestHallOfFameDeduplicatesTranslations(t *testing.T) {
	hof := NewHallOfFame(5)

	if !hof.Consider(HallEntry{ID: "first", Fitness: 3, Cells: line(3), Rule: life.Life}) {
		t.Fatal("first entry rejected")
	}
	shifted := line(3).Translate(life.Cell{X: 40, Y: -7})
	if hof.Consider(HallEntry{ID: "same", Fitness: 3, Cells: shifted, Rule: life.Life}) {
		t.Error("translated duplicate accepted")
	}
	if !hof.Consider(HallEntry{ID: "other rule", Fitness: 3, Cells: shifted, Rule: life.HighLife}) {
		t.Error("same cells under another rule rejected")
	}
	if !hof.Consider(HallEntry{ID: "fitter", Fitness: 9, Cells: shifted, Rule: life.Life}) {
		t.Error("fitter duplicate rejected")
	}
	if hof.Len() != 2 {
		t.Errorf("Len = %d, want 2", hof.Len())
	}
	if hof.Entries()[0].ID != "fitter" {
		t.Errorf("top entry = %s, want fitter", hof.Entries()[0].ID)
	}
}

func TestHallOfFameRejectsEmpty(t *testing.T) {
	hof := NewHallOfFame(2)
	if hof.Consider(HallEntry{Fitness: 10, Cells: life.Configuration{}}) {
		t.Error("empty pattern accepted")
	}
}

func TestHallOfFameJSONRoundTrip(t *testing.T) {
	hof := NewHallOfFame(4)
	glider := life.NewConfiguration(
		life.Cell{X: 11, Y: 10}, life.Cell{X: 12, Y: 11},
		life.Cell{X: 10, Y: 12}, life.Cell{X: 11, Y: 12}, life.Cell{X: 12, Y: 12},
	)
	hof.Consider(HallEntry{ID: "g", Fitness: 4, Epoch: 7, Cells: glider, Rule: life.HighLife})
	hof.Consider(HallEntry{ID: "l", Fitness: 2, Epoch: 3, Cells: line(3), Rule: life.Life})

	data, err := hof.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	path := filepath.Join(t.TempDir(), "hall_of_fame.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadHallOfFameFromFile(path)
	if err != nil {
		t.Fatalf("LoadHallOfFameFromFile: %v", err)
	}
	entries := loaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("loaded %d entries, want 2", len(entries))
	}
	if entries[0].ID != "g" || entries[0].Epoch != 7 || entries[0].Rule != life.HighLife {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if !entries[0].Cells.Equal(glider) {
		t.Errorf("glider cells = %v, want %v", entries[0].Cells.Cells(), glider.Cells())
	}
}

func TestLoadHallOfFameMissingFile(t *testing.T) {
	if _, err := LoadHallOfFameFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
