// Package scene holds the state shown by the viewer: the pattern being
// animated, its rule and generation, and its groups coloured for display.
// It has no rendering dependencies.
package scene

import (
	"errors"
	"math"

	"github.com/pthm-cable/lifesoup/life"
	"github.com/pthm-cable/lifesoup/rle"
)

// ErrEmptyPattern is returned when pasted text decodes to no cells.
var ErrEmptyPattern = errors.New("pattern has no live cells")

// Color is an RGB display colour.
type Color struct {
	R, G, B uint8
}

// paletteSize is the number of distinct group colours before they repeat.
const paletteSize = 64

// Palette returns count visually distinct colours, spreading hues by the
// golden angle.
func Palette(count int) []Color {
	colors := make([]Color, count)
	goldenAngle := 137.508 // degrees

	for i := range count {
		hue := math.Mod(float64(i)*goldenAngle, 360.0)
		r, g, b := hsvToRGB(hue, 0.7, 0.9)
		colors[i] = Color{R: r, G: g, B: b}
	}
	return colors
}

// hsvToRGB converts HSV to RGB.
func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

// Group is one distance-2 component with its display colour.
type Group struct {
	Cells life.Configuration
	Color Color
}

// Scene is the animated pattern. It is not safe for concurrent use.
type Scene struct {
	cells      life.Configuration
	rule       life.Rule
	generation int
	still      bool
	pattern    string
	palette    []Color
	groups     []Group // nil until computed for the current cells
}

// New creates an empty scene under the standard rule.
func New() *Scene {
	return &Scene{
		cells:   life.Configuration{},
		rule:    life.Life,
		palette: Palette(paletteSize),
	}
}

// Load replaces the scene with a pattern in RLE notation.
func (s *Scene) Load(text string) error {
	cells, rule := rle.Parse(text)
	if cells.Len() == 0 {
		return ErrEmptyPattern
	}
	s.Set(cells, rule)
	return nil
}

// Set replaces the scene with cells under rule and restarts the generation
// count.
func (s *Scene) Set(cells life.Configuration, rule life.Rule) {
	s.cells = cells.Clone()
	s.rule = rule
	s.generation = 0
	s.still = false
	s.pattern = rle.SerializeRule(cells, rule)
	s.groups = nil
}

// Step advances one generation. It returns true once the pattern is an exact
// still life; a still scene no longer advances.
func (s *Scene) Step() bool {
	if s.still {
		return true
	}
	next := life.Advance(s.cells, s.rule)
	s.still = next.Equal(s.cells)
	s.cells = next
	if !s.still {
		s.generation++
		s.groups = nil
	}
	return s.still
}

// Cells returns the current live cells. The caller must not modify them.
func (s *Scene) Cells() life.Configuration {
	return s.cells
}

// Rule returns the scene's rule.
func (s *Scene) Rule() life.Rule {
	return s.rule
}

// Generation returns the number of steps that changed the pattern since the
// last Load or Set.
func (s *Scene) Generation() int {
	return s.generation
}

// Still reports whether the pattern stopped changing.
func (s *Scene) Still() bool {
	return s.still
}

// Pattern returns the RLE of the pattern as it was loaded.
func (s *Scene) Pattern() string {
	return s.pattern
}

// Groups partitions the current cells at distance 2 and colours each group.
// Partition order is deterministic, so colours stay put between frames. The
// result is cached until the cells change.
func (s *Scene) Groups() []Group {
	if s.groups != nil {
		return s.groups
	}
	s.groups = []Group{}
	for part := range life.Partition(s.cells, life.GroupDistance) {
		s.groups = append(s.groups, Group{Cells: part, Color: s.palette[len(s.groups)%len(s.palette)]})
	}
	return s.groups
}
