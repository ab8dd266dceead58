package tui

import (
	"testing"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
)

func testCamera() Camera {
	return NewCamera(config.World{Width: 1000, Height: 500}, 100, 50)
}

func TestCameraFollow(t *testing.T) {
	c := testCamera()

	c.Follow(100)
	if c.X != 0 {
		t.Errorf("X = %v, want clamped to 0", c.X)
	}

	c.Follow(2000)
	if c.X != 1700 {
		t.Errorf("X = %v, want 1700", c.X)
	}
}

func TestCameraToScreen(t *testing.T) {
	c := testCamera()
	c.X = 500

	tests := []struct {
		p      core.Vec2
		wx, wy int
	}{
		{core.Vec2{X: 500, Y: 0}, 0, 0},
		{core.Vec2{X: 1000, Y: 250}, 50, 25},
		{core.Vec2{X: 1499, Y: 499}, 99, 49},
		{core.Vec2{X: 400, Y: 0}, -10, 0},
	}

	for _, tt := range tests {
		x, y := c.ToScreen(tt.p)
		if x != tt.wx || y != tt.wy {
			t.Errorf("ToScreen(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}

func TestCameraBoxToRect(t *testing.T) {
	c := testCamera()

	r := c.BoxToRect(core.Box{X: 100, Y: 100, W: 200, H: 100})
	if r != core.NewRect(10, 10, 20, 10) {
		t.Errorf("BoxToRect() = %+v", r)
	}

	// Tiny boxes still cover a cell
	r = c.BoxToRect(core.Box{X: 100, Y: 100, W: 1, H: 1})
	if r.W != 1 || r.H != 1 {
		t.Errorf("tiny BoxToRect() = %+v, want 1x1", r)
	}
}

func TestCameraVisible(t *testing.T) {
	c := testCamera()
	c.X = 1000

	if !c.Visible(core.Box{X: 950, W: 100}) {
		t.Error("box straddling the left edge should be visible")
	}
	if c.Visible(core.Box{X: 800, W: 100}) {
		t.Error("box left of the viewport should not be visible")
	}
	if c.Visible(core.Box{X: 2100, W: 10}) {
		t.Error("box right of the viewport should not be visible")
	}
}
