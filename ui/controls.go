package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a request made through the controls panel.
type Action int

const (
	ActionNone   Action = iota
	ActionRun           // start the background search
	ActionStop          // stop the background search
	ActionPaste         // load an RLE pattern from the clipboard
	ActionBest          // show the search's best pattern now
	ActionPause         // toggle the animation
)

// ControlsState is what the controls panel needs to label its buttons.
type ControlsState struct {
	Running bool
	Paused  bool
	HasBest bool
}

// ControlsPanel renders the viewer's buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Height returns the panel height.
func (c *ControlsPanel) Height() int32 {
	return c.renderer.Theme.Padding*2 + 2*30 + 8
}

// Draw renders the buttons and returns the one pressed this frame.
func (c *ControlsPanel) Draw(state ControlsState) Action {
	r := c.renderer
	padding := float32(r.Theme.Padding)
	r.DrawPanel(c.x, c.y, c.width, c.Height())

	x := float32(c.x) + padding
	y := float32(c.y) + padding
	w := (float32(c.width) - padding*3) / 2
	const h = 30

	action := ActionNone
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, toggleText(state.Running, "Stop", "Run")) {
		action = ActionRun
		if state.Running {
			action = ActionStop
		}
	}
	if gui.Button(rl.Rectangle{X: x + w + padding, Y: y, Width: w, Height: h}, "Paste RLE") {
		action = ActionPaste
	}
	y += h + 8
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, toggleText(state.Paused, "Resume", "Pause")) {
		action = ActionPause
	}
	if state.HasBest && gui.Button(rl.Rectangle{X: x + w + padding, Y: y, Width: w, Height: h}, "Show best") {
		action = ActionBest
	}
	return action
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
