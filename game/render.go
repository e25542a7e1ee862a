package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lifesoup/scene"
	"github.com/pthm-cable/lifesoup/ui"
)

// Draw renders the viewer. Buttons pressed while drawing are applied on the
// next Update.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ui.DefaultTheme().Background)

	g.drawGrid()
	g.drawCells()
	g.drawUI()

	rl.EndDrawing()
}

// gridMinZoom is the smallest cell size, in pixels, that gets grid lines.
const gridMinZoom = 8

// drawGrid draws cell boundaries when cells are large enough to tell apart.
func (g *Game) drawGrid() {
	if g.camera.Zoom < gridMinZoom {
		return
	}
	color := ui.DefaultTheme().GridLine
	lo, hi := g.camera.VisibleCells()
	for x := lo.X; x <= hi.X+1; x++ {
		sx, _ := g.camera.WorldToScreen(float32(x), 0)
		rl.DrawLine(int32(sx), 0, int32(sx), int32(g.screenHeight), color)
	}
	for y := lo.Y; y <= hi.Y+1; y++ {
		_, sy := g.camera.WorldToScreen(0, float32(y))
		rl.DrawLine(0, int32(sy), int32(g.screenWidth), int32(sy), color)
	}
}

// drawCells draws every visible live cell in its group's colour.
func (g *Game) drawCells() {
	size := g.camera.Zoom
	gap := float32(0)
	if size >= 4 {
		gap = 1
	}
	for _, group := range g.scene.Groups() {
		color := toColor(group.Color)
		for cell := range group.Cells {
			if !g.camera.IsVisible(cell) {
				continue
			}
			sx, sy := g.camera.WorldToScreen(float32(cell.X), float32(cell.Y))
			rl.DrawRectangleRec(rl.Rectangle{X: sx, Y: sy, Width: size - gap, Height: size - gap}, color)
		}
	}
}

func toColor(c scene.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

func (g *Game) drawUI() {
	groups := len(g.scene.Groups())
	g.uiHUD.Draw(ui.HUDData{
		Title:      "Life Soup",
		Generation: g.scene.Generation(),
		Cells:      g.scene.Cells().Len(),
		Groups:     groups,
		Rule:       g.scene.Rule().String(),
		Still:      g.scene.Still(),
		Paused:     g.paused,
		FPS:        rl.GetFPS(),
		StepsPerS:  g.cfg.Viewer.FPS,
	})

	status := g.searchStatus()
	action := g.uiControls.Draw(ui.ControlsState{
		Running: g.running,
		Paused:  g.paused,
		HasBest: status.BestCells > 0,
	})
	if action != ui.ActionNone {
		g.pending = action
	}

	g.uiSearch.SetPosition(int32(g.screenWidth)-270, 10+g.uiControls.Height()+10)
	g.uiSearch.Draw(status)

	g.uiPattern.Draw("Pattern", g.scene.Pattern())

	if g.message != "" {
		rl.DrawText(g.message, 10, int32(g.screenHeight)-45, 14, rl.Orange)
	} else {
		mouse := rl.GetMousePosition()
		cell := g.camera.CellAt(mouse.X, mouse.Y)
		rl.DrawText(fmt.Sprintf("Cell (%d, %d)", cell.X, cell.Y), 10, int32(g.screenHeight)-45, 14, rl.Gray)
	}
	g.uiHUD.DrawControls(int32(g.screenWidth), int32(g.screenHeight),
		"SPACE: Pause | R: Run/Stop search | B: Best | Ctrl+V: Paste RLE | < >: Speed | Wheel/+/-: Zoom | Home: Frame")
}
