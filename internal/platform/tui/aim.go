package tui

import (
	"math"

	"github.com/vovakirdan/catapult/internal/core"
)

// Aim limits. Angles are degrees above the horizon.
const (
	aimMinAngle   = 5
	aimMaxAngle   = 85
	aimAngleStep  = 5
	aimMinPower   = 50
	aimMaxPower   = 600
	aimPowerStep  = 25
	aimStartAngle = 45
	aimStartPower = 300
)

// Aim is the catapult setting chosen before launch.
type Aim struct {
	Angle float64 // Degrees above the horizon
	Power float64 // Pull distance
}

// DefaultAim returns the aim a fresh run starts with.
func DefaultAim() Aim {
	return Aim{Angle: aimStartAngle, Power: aimStartPower}
}

// Apply adjusts the aim for one action and reports whether it changed.
func (a *Aim) Apply(action core.Action) bool {
	old := *a
	switch action {
	case core.ActionAimUp:
		a.Angle = core.ClampF(a.Angle+aimAngleStep, aimMinAngle, aimMaxAngle)
	case core.ActionAimDown:
		a.Angle = core.ClampF(a.Angle-aimAngleStep, aimMinAngle, aimMaxAngle)
	case core.ActionPowerUp:
		a.Power = core.ClampF(a.Power+aimPowerStep, aimMinPower, aimMaxPower)
	case core.ActionPowerDown:
		a.Power = core.ClampF(a.Power-aimPowerStep, aimMinPower, aimMaxPower)
	}
	return *a != old
}

// Radians returns the launch angle in world orientation, where y grows
// downwards and upward shots are negative.
func (a Aim) Radians() float64 {
	return -a.Angle * math.Pi / 180
}

// Fraction returns the power as a share of the maximum.
func (a Aim) Fraction() float64 {
	return a.Power / aimMaxPower
}
