package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws panels and fields with a shared theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a bordered panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawHeader draws a section title and returns the next line's y.
func (r *Renderer) DrawHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawText draws a label with its value and returns the next line's y.
func (r *Renderer) DrawText(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a label with a bar filled to value within rng.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	const valueWidth = 40
	barX := x + r.Theme.LabelWidth
	barW := max(width-r.Theme.LabelWidth-valueWidth, 1)
	barY := y + (r.Theme.LineHeight-r.Theme.BarHeight)/2 - 1

	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, barY, barW, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, barY, int32(float32(barW)*rng.ratio(value)), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barW+4, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// fieldHeight is the vertical space a widget takes.
func (r *Renderer) fieldHeight(w WidgetType) int32 {
	switch w {
	case WidgetBar:
		return r.Theme.LineHeight + 2
	case WidgetSpacer:
		return 6
	}
	return r.Theme.LineHeight
}

// drawField renders one field of data and returns the next line's y.
func drawField[T any](r *Renderer, x, y int32, f Field[T], data T, width int32) int32 {
	switch f.Widget {
	case WidgetBar:
		var v float64
		if f.Value != nil {
			v = f.Value(data)
		}
		return r.DrawBar(x, y, f.Label, float32(v), f.Range, width)
	case WidgetSpacer:
		return y + r.fieldHeight(WidgetSpacer)
	}

	text := ""
	switch {
	case f.Text != nil:
		text = f.Text(data)
	case f.Value != nil:
		text = fmt.Sprintf(f.Format, f.Value(data))
	}
	return r.DrawText(x, y, f.Label, text)
}

// DrawSections renders the visible sections for data and returns the y below
// the last one.
func DrawSections[T any](r *Renderer, x, y int32, sections []Section[T], data T, width int32) int32 {
	for _, s := range sections {
		if s.Visible != nil && !s.Visible(data) {
			continue
		}
		if s.Title != "" {
			y = r.DrawHeader(x, y, s.Title)
		}
		for _, f := range s.Fields {
			if f.Visible != nil && !f.Visible(data) {
				continue
			}
			y = drawField(r, x, y, f, data, width)
		}
		y += 4
	}
	return y
}

// SectionsHeight returns the height DrawSections needs for data.
func SectionsHeight[T any](r *Renderer, sections []Section[T], data T) int32 {
	var h int32
	for _, s := range sections {
		if s.Visible != nil && !s.Visible(data) {
			continue
		}
		if s.Title != "" {
			h += r.Theme.LineHeight
		}
		for _, f := range s.Fields {
			if f.Visible == nil || f.Visible(data) {
				h += r.fieldHeight(f.Widget)
			}
		}
		h += 4
	}
	return h
}
