package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/catapult/internal/catapult"
	"github.com/vovakirdan/catapult/internal/core"
)

// Glyphs and colors of the world.
const (
	glyphPlayer = 'O'
	glyphEnemy  = 'N'
	glyphPickup = '*'
	glyphGround = '▀'
	glyphAim    = '·'
)

type look struct {
	glyph rune
	color core.Color
}

var variantLooks = map[catapult.Variant]look{
	catapult.VariantCrate:     {'#', core.ColorBrown},
	catapult.VariantRock:      {'@', core.ColorGray},
	catapult.VariantMushroom1: {'m', core.ColorBrightMagenta},
	catapult.VariantMushroom2: {'m', core.ColorMagenta},
	catapult.VariantBush:      {'%', core.ColorBrightGreen},
	catapult.VariantTree2:     {'^', core.ColorDarkGreen},
	catapult.VariantTree3:     {'^', core.ColorGreen},
	catapult.VariantStump:     {'=', core.ColorSoil},
}

// drawWorld renders the current run into s, following the player.
func drawWorld(s *core.Screen, m *catapult.Machine, aim Aim) Camera {
	p := m.Params()
	cam := NewCamera(p.World, s.Width(), s.Height())
	player := m.Player()
	cam.Follow(player.Pos.X)

	// Ground strip
	_, gy := cam.ToScreen(core.Vec2{Y: p.World.Baseline()})
	for y := gy; y < s.Height(); y++ {
		r, c := ' ', core.ColorSoil
		if y == gy {
			r, c = glyphGround, core.ColorGreen
		}
		s.DrawHLine(0, y, s.Width(), r, c)
	}

	// Obstacles, back to front
	obstacles := m.Obstacles()
	order := make([]int, 0, len(obstacles))
	for i := range obstacles {
		if cam.Visible(obstacles[i].Box()) {
			order = append(order, i)
		}
	}
	for depth := 0; depth <= 10; depth++ {
		for _, i := range order {
			o := &obstacles[i]
			if o.Desc.Depth != depth {
				continue
			}
			l := variantLooks[o.Desc.Variant]
			s.DrawRect(cam.BoxToRect(o.Box()), l.glyph, l.color)
		}
	}

	for _, h := range []catapult.Hazard{m.Enemy(), m.Pickup()} {
		if !h.Body.Enabled || !cam.Visible(h.Body.Box()) {
			continue
		}
		g, c := glyphEnemy, core.ColorBrightRed
		if h.Kind == catapult.HazardPickup {
			g, c = glyphPickup, core.ColorBrightYellow
		}
		s.DrawRect(cam.BoxToRect(h.Body.Box()), g, c)
	}

	if m.State() == catapult.StateIdle {
		drawAim(s, cam, player.Pos, aim)
	}

	pc := core.ColorBrightWhite
	if m.PowerActive() {
		pc = core.ColorBrightYellow
	}
	px, py := cam.ToScreen(player.Pos)
	s.SetColored(px, py, glyphPlayer, pc)

	return cam
}

// drawAim draws a dotted line along the launch direction, longer with power.
func drawAim(s *core.Screen, cam Camera, from core.Vec2, aim Aim) {
	dots := 2 + int(math.Round(aim.Fraction()*8))
	step := cam.ViewW / float64(max(1, cam.Cols)) * 2
	dir := core.FromAngle(aim.Radians(), 1)
	for i := 1; i <= dots; i++ {
		d := float64(i) * step
		x, y := cam.ToScreen(core.Vec2{X: from.X + dir.X*d, Y: from.Y + dir.Y*d})
		s.SetColored(x, y, glyphAim, core.ColorBrightCyan)
	}
}

// drawHUD writes the score board and the aim readout in the top-left corner.
func drawHUD(s *core.Screen, m *catapult.Machine, aim Aim, paused bool) {
	for i, line := range strings.Split(m.ScoreText(), "\n") {
		s.DrawTextColored(1, i, line, core.ColorBrightWhite)
	}
	row := 3
	switch m.State() {
	case catapult.StateIdle:
		s.DrawTextColored(1, row, aimReadout(aim), core.ColorCyan)
		s.DrawText(1, row+1, "Arrows aim, space launches")
	case catapult.StateLaunched:
		if m.PowerActive() {
			s.DrawTextColored(1, row, "POWER!", core.ColorBrightYellow)
		} else if m.Run().Boosting {
			s.DrawTextColored(1, row, "BOOST", core.ColorOrange)
		}
	}
	if paused {
		s.DrawTextCentered(s.Height()/2, " PAUSED ", core.ColorBrightYellow)
	}
}

func aimReadout(a Aim) string {
	bar := int(math.Round(a.Fraction() * 10))
	return fmt.Sprintf("Angle %2.0f  Power [%s%s]", a.Angle,
		strings.Repeat("|", bar), strings.Repeat(" ", 10-bar))
}
