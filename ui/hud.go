package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the scene data shown in the top-left corner.
type HUDData struct {
	Title      string
	Generation int
	Cells      int
	Groups     int
	Rule       string
	Still      bool
	Paused     bool
	FPS        int32
	StepsPerS  int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Generation: %d | Cells: %d | Groups: %d | Rule: %s", data.Generation, data.Cells, data.Groups, data.Rule),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Steps/s: %d | FPS: %d", data.StepsPerS, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	switch {
	case data.Paused:
		statusText = "PAUSED"
	case data.Still:
		statusText = "Still life"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// SearchStatus is the background search state shown in the search panel.
type SearchStatus struct {
	Running    bool
	Metric     string
	Epoch      int
	Population int
	Buckets    int
	Average    float64
	Best       float64
	BestCells  int
	BestRule   string
}

// searchSections describes the search panel.
func searchSections() []Section[SearchStatus] {
	return []Section[SearchStatus]{
		{
			Title: "Search",
			Fields: []Field[SearchStatus]{
				{Label: "State", Text: func(s SearchStatus) string {
					if s.Running {
						return "running"
					}
					return "stopped"
				}},
				{Label: "Metric", Text: func(s SearchStatus) string { return s.Metric }},
				{Label: "Epoch", Format: "%.0f", Value: func(s SearchStatus) float64 { return float64(s.Epoch) }},
			},
		},
		{
			Title: "Population",
			Fields: []Field[SearchStatus]{
				{Label: "Size", Format: "%.0f", Value: func(s SearchStatus) float64 { return float64(s.Population) }},
				{Label: "Buckets", Format: "%.0f", Value: func(s SearchStatus) float64 { return float64(s.Buckets) }},
				{Label: "Average", Format: "%.2f", Value: func(s SearchStatus) float64 { return s.Average }},
				{Label: "Avg/best", Widget: WidgetBar, Range: UnitRange, Value: func(s SearchStatus) float64 {
					if s.Best <= 0 {
						return 0
					}
					return s.Average / s.Best
				}},
			},
		},
		{
			Title:   "Best",
			Visible: func(s SearchStatus) bool { return s.BestCells > 0 },
			Fields: []Field[SearchStatus]{
				{Label: "Fitness", Format: "%.2f", Value: func(s SearchStatus) float64 { return s.Best }},
				{Label: "Cells", Format: "%.0f", Value: func(s SearchStatus) float64 { return float64(s.BestCells) }},
				{Widget: WidgetSpacer},
				{Label: "Rule", Text: func(s SearchStatus) string { return s.BestRule }},
			},
		},
	}
}

// SearchPanel renders the background search status.
type SearchPanel struct {
	renderer *Renderer
	sections []Section[SearchStatus]
	x, y     int32
	width    int32
}

// NewSearchPanel creates a new search panel.
func NewSearchPanel(x, y, width int32) *SearchPanel {
	return &SearchPanel{
		renderer: NewRenderer(),
		sections: searchSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *SearchPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel and returns its bottom edge.
func (p *SearchPanel) Draw(data SearchStatus) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	height := SectionsHeight(r, p.sections, data) + padding*2
	r.DrawPanel(p.x, p.y, p.width, height)
	DrawSections(r, p.x+padding, p.y+padding, p.sections, data, p.width-padding*2)
	return p.y + height
}

// PatternPanel shows a pattern as RLE text.
type PatternPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPatternPanel creates a new pattern panel.
func NewPatternPanel(x, y, width int32) *PatternPanel {
	return &PatternPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PatternPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// maxPatternLines caps the RLE text drawn in the panel.
const maxPatternLines = 12

// Draw renders title and pattern, wrapping long lines.
func (p *PatternPanel) Draw(title, pattern string) {
	r := p.renderer
	padding := r.Theme.Padding
	charWidth := rl.MeasureText("o", r.Theme.FontSize)
	perLine := int(max(1, (p.width-padding*2)/max(charWidth, 1)))

	lines := wrap(pattern, perLine)
	if len(lines) > maxPatternLines {
		lines = append(lines[:maxPatternLines-1], "...")
	}
	height := padding*2 + r.Theme.LineHeight*int32(len(lines)+1)
	r.DrawPanel(p.x, p.y, p.width, height)

	y := r.DrawHeader(p.x+padding, p.y+padding, title)
	for _, line := range lines {
		rl.DrawText(line, p.x+padding, y, r.Theme.FontSize, r.Theme.ValueColor)
		y += r.Theme.LineHeight
	}
}

// wrap splits text into lines of at most width characters.
func wrap(text string, width int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		for len(line) > width {
			lines = append(lines, line[:width])
			line = line[width:]
		}
		lines = append(lines, line)
	}
	return lines
}
