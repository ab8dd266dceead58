// Package physics is a small fixed-step arcade integrator standing in for a
// game engine's physics. It moves bodies under gravity and drag and resolves
// the player against axis-aligned colliders.
package physics

import (
	"math"
	"time"

	"github.com/vovakirdan/catapult/internal/core"
)

// Engine steps a core.Scene. The zero value is ready to use.
type Engine struct {
	// MaxStep splits long frames into sub-steps so fast bodies do not tunnel.
	// Zero means no splitting.
	MaxStep time.Duration

	contacts []core.Contact
}

// New creates an engine with a 1/60 s sub-step.
func New() *Engine {
	return &Engine{MaxStep: time.Second / 60}
}

// Step advances the scene by dt and returns the player's contacts in the
// order ground, obstacles by index, enemy, pickup. A collider touched in
// several sub-steps is reported once. The returned slice is reused by the
// next call.
func (e *Engine) Step(s core.Scene, dt time.Duration) []core.Contact {
	e.contacts = e.contacts[:0]
	if dt <= 0 {
		return e.contacts
	}

	steps := 1
	if e.MaxStep > 0 && dt > e.MaxStep {
		steps = int((dt + e.MaxStep - 1) / e.MaxStep)
	}
	secs := dt.Seconds() / float64(steps)

	var ground, enemy, pickup bool
	obstacles := make(map[int]bool)
	var groundVel float64
	obstacleVel := make(map[int]float64)

	for i := 0; i < steps; i++ {
		for _, b := range []*core.Body{s.Player, s.Enemy, s.Pickup} {
			if b != nil && b.Enabled {
				if i == 0 {
					b.MarkStep()
				}
				integrate(b, secs)
			}
		}

		p := s.Player
		if p == nil || !p.Enabled {
			continue
		}

		if resolveGround(p, s.GroundY) {
			ground = true
			groundVel = p.Vel.Y
		}
		for idx, solid := range s.Solids {
			if !p.Box().Intersects(solid.Box) {
				continue
			}
			if solid.Resolve {
				separate(p, solid)
			}
			obstacles[idx] = true
			obstacleVel[idx] = p.Vel.Y
		}
		if touches(p, s.Enemy) {
			enemy = true
		}
		if touches(p, s.Pickup) {
			pickup = true
		}
	}

	if ground {
		e.contacts = append(e.contacts, core.Contact{Kind: core.ContactGround, PlayerVelY: groundVel})
	}
	for idx := range s.Solids {
		if obstacles[idx] {
			e.contacts = append(e.contacts, core.Contact{Kind: core.ContactObstacle, Index: idx, PlayerVelY: obstacleVel[idx]})
		}
	}
	if enemy {
		e.contacts = append(e.contacts, core.Contact{Kind: core.ContactEnemy, PlayerVelY: s.Player.Vel.Y})
	}
	if pickup {
		e.contacts = append(e.contacts, core.Contact{Kind: core.ContactPickup, PlayerVelY: s.Player.Vel.Y})
	}
	return e.contacts
}

// integrate applies gravity, drag and the velocity cap, then moves the body.
func integrate(b *core.Body, secs float64) {
	b.Vel.Y += b.Gravity * secs
	if b.Drag > 0 {
		b.Vel.X = core.Approach(b.Vel.X, b.Drag*secs)
		b.Vel.Y = core.Approach(b.Vel.Y, b.Drag*secs)
	}
	if b.MaxVel > 0 {
		b.Vel.X = core.ClampF(b.Vel.X, -b.MaxVel, b.MaxVel)
		b.Vel.Y = core.ClampF(b.Vel.Y, -b.MaxVel, b.MaxVel)
	}
	b.Pos.X += b.Vel.X * secs
	b.Pos.Y += b.Vel.Y * secs
}

// resolveGround pushes the player back above groundY and reflects its fall
// using the player's own restitution. Reports whether they touched.
func resolveGround(p *core.Body, groundY float64) bool {
	bottom := p.Box().Bottom()
	if bottom < groundY {
		return false
	}
	p.Pos.Y -= bottom - groundY
	if p.Vel.Y > 0 {
		p.Vel.Y = -p.Vel.Y * p.Bounce
	}
	return true
}

// separate moves the player out of solid along the axis of least
// penetration and reflects the velocity on that axis by the solid's bounce.
func separate(p *core.Body, solid core.Solid) {
	dx, dy := p.Box().Penetration(solid.Box)
	if math.Abs(dx) < math.Abs(dy) {
		p.Pos.X += dx
		if p.Vel.X*dx < 0 {
			p.Vel.X = -p.Vel.X * solid.Bounce
		}
		return
	}
	p.Pos.Y += dy
	if p.Vel.Y*dy < 0 {
		p.Vel.Y = -p.Vel.Y * solid.Bounce
	}
}

func touches(p, other *core.Body) bool {
	if other == nil || !other.Enabled {
		return false
	}
	return p.Box().Intersects(other.Box())
}
