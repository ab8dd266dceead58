package tui

import (
	"math"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
)

// followLead is the share of the viewport kept left of the player.
const followLead = 0.3

// Camera maps world units onto screen cells. It scrolls horizontally only.
type Camera struct {
	X     float64 // World x of the left screen edge
	ViewW float64 // Visible world width
	ViewH float64 // Visible world height
	Cols  int
	Rows  int
}

// NewCamera creates a camera showing one viewport of w on a cols x rows screen.
func NewCamera(w config.World, cols, rows int) Camera {
	return Camera{ViewW: w.Width, ViewH: w.Height, Cols: cols, Rows: rows}
}

// Follow scrolls so that x sits followLead into the viewport, never left of
// the world start.
func (c *Camera) Follow(x float64) {
	c.X = math.Max(0, x-c.ViewW*followLead)
}

// ToScreen converts a world point to a cell.
func (c Camera) ToScreen(v core.Vec2) (int, int) {
	if c.ViewW <= 0 || c.ViewH <= 0 {
		return 0, 0
	}
	sx := (v.X - c.X) * float64(c.Cols) / c.ViewW
	sy := v.Y * float64(c.Rows) / c.ViewH
	return int(math.Floor(sx)), int(math.Floor(sy))
}

// BoxToRect converts a world box to the cells it covers. Every box covers
// at least one cell.
func (c Camera) BoxToRect(b core.Box) core.Rect {
	x0, y0 := c.ToScreen(core.Vec2{X: b.X, Y: b.Y})
	x1, y1 := c.ToScreen(core.Vec2{X: b.Right(), Y: b.Bottom()})
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// Visible reports whether any part of b is on screen horizontally.
func (c Camera) Visible(b core.Box) bool {
	return b.Right() >= c.X && b.X <= c.X+c.ViewW
}
