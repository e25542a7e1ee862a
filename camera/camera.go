// Package camera provides a 2D camera for viewing an unbounded cell plane.
package camera

import (
	"math"

	"github.com/pthm-cable/lifesoup/life"
)

// Camera controls the viewport into the plane. World coordinates are in
// cells; cell (x, y) covers [x, x+1) × [y, y+1).
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom is the size of one cell in pixels
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	home float32
}

// New creates a camera centered on the origin showing cells cellSize pixels
// wide.
func New(viewportW, viewportH, cellSize float32) *Camera {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Camera{
		Zoom:      cellSize,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   1,
		MaxZoom:   64,
		home:      cellSize,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// CellAt returns the cell under a screen position.
func (c *Camera) CellAt(sx, sy float32) life.Cell {
	wx, wy := c.ScreenToWorld(sx, sy)
	return life.Cell{X: int(math.Floor(float64(wx))), Y: int(math.Floor(float64(wy)))}
}

// IsVisible returns true if any part of the cell could be on screen.
func (c *Camera) IsVisible(cell life.Cell) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	x, y := float32(cell.X), float32(cell.Y)
	return x+1 >= minX && x <= maxX && y+1 >= minY && y <= maxY
}

// VisibleCells returns the inclusive range of cells touching the viewport.
func (c *Camera) VisibleCells() (lo, hi life.Cell) {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	lo = life.Cell{X: int(math.Floor(float64(minX))), Y: int(math.Floor(float64(minY)))}
	hi = life.Cell{X: int(math.Floor(float64(maxX))), Y: int(math.Floor(float64(maxY)))}
	return lo, hi
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the world point under (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X += wx - nx
	c.Y += wy - ny
}

// Fit centers the camera on the inclusive cell range [lo, hi] and zooms so
// it fills at most 80% of the viewport.
func (c *Camera) Fit(lo, hi life.Cell) {
	w := float32(hi.X - lo.X + 1)
	h := float32(hi.Y - lo.Y + 1)
	c.X = float32(lo.X) + w/2
	c.Y = float32(lo.Y) + h/2
	c.SetZoom(min(c.ViewportW*0.8/w, c.ViewportH*0.8/h, c.home))
}

// Reset returns the camera to the origin at the initial zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = c.home
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
