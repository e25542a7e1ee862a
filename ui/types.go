// Package ui provides a descriptor-driven UI for the viewer. Panels are
// described by sections of field descriptors over the panel's data type and
// drawn by a themed Renderer.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText   WidgetType = iota // Label and formatted value
	WidgetBar                      // Bar filled over Range
	WidgetSpacer                   // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// UnitRange is the [0, 1] range.
var UnitRange = FieldRange{Min: 0, Max: 1}

// ratio maps v into [0, 1] within the range.
func (r FieldRange) ratio(v float32) float32 {
	if r.Max <= r.Min {
		return 0
	}
	return max(0, min((v-r.Min)/(r.Max-r.Min), 1))
}

// Field describes one line of a panel showing data of type T. Text fields use
// Text when set and otherwise Format applied to Value.
type Field[T any] struct {
	Label   string
	Widget  WidgetType
	Format  string          // Printf format for Value (e.g., "%.2f")
	Range   FieldRange      // for bars
	Value   func(T) float64 // numeric value
	Text    func(T) string  // text value
	Visible func(T) bool    // nil = always visible
}

// Section is a titled group of fields.
type Section[T any] struct {
	Title   string
	Fields  []Field[T]
	Visible func(T) bool // nil = always visible
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Background     rl.Color // behind the cells
	GridLine       rl.Color // cell boundaries at high zoom
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 16, G: 20, B: 26, A: 235},
		PanelBorder:    rl.Color{R: 55, G: 65, B: 78, A: 255},
		SectionHeader:  rl.Color{R: 235, G: 200, B: 90, A: 255},
		LabelColor:     rl.Gray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 38, G: 42, B: 48, A: 255},
		BarFill:        rl.Color{R: 90, G: 170, B: 120, A: 255},
		Background:     rl.Color{R: 12, G: 14, B: 18, A: 255},
		GridLine:       rl.Color{R: 30, G: 34, B: 40, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
