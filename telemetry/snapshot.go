package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/rle"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a whole population so a search can be resumed.
type Snapshot struct {
	Version int    `json:"version"`
	Seed    uint64 `json:"seed"`
	Metric  string `json:"metric"`
	Epoch   int    `json:"epoch"`

	Members []MemberState `json:"members"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// MemberState is one population member. Pattern is RLE text with a rule
// header.
type MemberState struct {
	Fitness float64 `json:"fitness"`
	Cells   int     `json:"cells"`
	Pattern string  `json:"pattern"`
}

// NewMemberState encodes a population member.
func NewMemberState(fitness float64, cells life.Configuration, rule life.Rule) MemberState {
	return MemberState{Fitness: fitness, Cells: cells.Len(), Pattern: rle.SerializeRule(cells, rule)}
}

// Decode returns the member's cells and rule.
func (m MemberState) Decode() (life.Configuration, life.Rule) {
	return rle.Parse(m.Pattern)
}

// SaveSnapshot writes a snapshot to dir.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Epoch)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Epoch, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}
	return &snapshot, nil
}
