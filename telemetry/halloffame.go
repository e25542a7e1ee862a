package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/rle"
)

// HallEntry is a pattern the search found worth keeping.
type HallEntry struct {
	ID      string
	Fitness float64
	Epoch   int
	Cells   life.Configuration
	Rule    life.Rule
}

// identity ignores position, so translated copies count as one pattern.
func (e HallEntry) identity() string {
	return life.Centralize(e.Cells).Key() + "#" + e.Rule.String()
}

// HallOfFame keeps the best distinct patterns seen during a search, ordered
// by fitness (descending) and then by size (ascending).
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers an entry to the hall. It returns true if the entry was
// added. An entry already present (up to translation) is only replaced by a
// fitter copy.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if hof == nil || entry.Cells.Len() == 0 {
		return false
	}
	id := entry.identity()
	for i, existing := range hof.entries {
		if existing.identity() != id {
			continue
		}
		if existing.Fitness >= entry.Fitness {
			return false
		}
		hof.entries = append(hof.entries[:i], hof.entries[i+1:]...)
		break
	}

	hof.entries = hof.insertEntry(hof.entries, entry)
	return hof.contains(id)
}

func (hof *HallOfFame) contains(id string) bool {
	for _, e := range hof.entries {
		if e.identity() == id {
			return true
		}
	}
	return false
}

// insertEntry adds an entry to the hall, maintaining sorted order.
// If the hall is full, the last entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) []HallEntry {
	idx := sort.Search(len(hall), func(i int) bool {
		if hall[i].Fitness != entry.Fitness {
			return hall[i].Fitness < entry.Fitness
		}
		return hall[i].Cells.Len() > entry.Cells.Len()
	})

	// Full hall and the entry would be last: skip it
	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}
	return hall
}

// Entries returns a copy of the hall in rank order.
func (hof *HallOfFame) Entries() []HallEntry {
	if hof == nil {
		return nil
	}
	return append([]HallEntry(nil), hof.entries...)
}

// Len returns the number of entries.
func (hof *HallOfFame) Len() int {
	if hof == nil {
		return 0
	}
	return len(hof.entries)
}

// TopFitness returns the highest fitness in the hall, or 0 if it is empty.
func (hof *HallOfFame) TopFitness() float64 {
	if hof.Len() == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// hallEntryJSON is the JSON-serializable representation of a hall entry.
type hallEntryJSON struct {
	ID      string  `json:"id"`
	Fitness float64 `json:"fitness"`
	Epoch   int     `json:"epoch"`
	Cells   int     `json:"cells"`
	Rule    string  `json:"rule"`
	Pattern string  `json:"pattern"`
}

// MarshalJSON serializes the hall as a ranked list. Patterns are RLE text
// with a rule header.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	export := make([]hallEntryJSON, len(hof.entries))
	for i, e := range hof.entries {
		export[i] = hallEntryJSON{
			ID:      e.ID,
			Fitness: e.Fitness,
			Epoch:   e.Epoch,
			Cells:   e.Cells.Len(),
			Rule:    e.Rule.String(),
			Pattern: rle.SerializeRule(e.Cells, e.Rule),
		}
	}
	return json.MarshalIndent(export, "", "  ")
}

// LoadHallOfFameFromFile reads a hall of fame written by MarshalJSON.
func LoadHallOfFameFromFile(path string) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var raw []hallEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	hof := NewHallOfFame(max(len(raw), 1))
	for _, ej := range raw {
		cells, rule := rle.Parse(ej.Pattern)
		if cells.Len() == 0 {
			slog.Warn("hall_of_fame_load: empty pattern, skipping", "id", ej.ID)
			continue
		}
		hof.Consider(HallEntry{
			ID:      ej.ID,
			Fitness: ej.Fitness,
			Epoch:   ej.Epoch,
			Cells:   cells,
			Rule:    rule,
		})
	}
	return hof, nil
}
