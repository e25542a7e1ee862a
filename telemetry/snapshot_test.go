package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/lifesoup/life"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	glider := life.NewConfiguration(
		life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 1},
		life.Cell{X: 0, Y: 2}, life.Cell{X: 1, Y: 2}, life.Cell{X: 2, Y: 2},
	)
	offset := glider.Translate(life.Cell{X: -30, Y: 12})

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Seed:    42,
		Metric:  "most_shapes",
		Epoch:   120,
		Members: []MemberState{
			NewMemberState(3.5, glider, life.Life),
			NewMemberState(1, offset, life.HighLife),
		},
		Bookmark: &Bookmark{Type: BookmarkStagnation, Epoch: 120, Description: "test"},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file not created at %s: %v", path, err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Seed != 42 || loaded.Epoch != 120 || loaded.Metric != "most_shapes" {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Members) != 2 {
		t.Fatalf("members = %d, want 2", len(loaded.Members))
	}

	cells, rule := loaded.Members[1].Decode()
	if !cells.Equal(offset) {
		t.Errorf("decoded cells = %v, want %v", cells.Cells(), offset.Cells())
	}
	if rule != life.HighLife {
		t.Errorf("decoded rule = %v, want %v", rule, life.HighLife)
	}
	if loaded.Members[0].Cells != 5 || loaded.Members[0].Fitness != 3.5 {
		t.Errorf("member 0 = %+v", loaded.Members[0])
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkStagnation {
		t.Errorf("bookmark not restored: %+v", loaded.Bookmark)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := SaveSnapshot(&Snapshot{
		Version:  SnapshotVersion,
		Epoch:    5000,
		Bookmark: &Bookmark{Type: BookmarkPopulationCrash, Epoch: 5000},
	}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_5000_population_crash.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Epoch: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_3000.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected error for unsupported version")
	}
}
