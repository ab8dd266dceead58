package catapult

import (
	"math"

	"github.com/vovakirdan/catapult/internal/core"
)

// Score tuning constants.
const (
	DistancePerPoint = 10 // World units per point
	HitPenalty       = 5  // Points lost per damping hit
)

// ComputeScore returns round(distance/10) - 5*hits. Halves round up and the
// result is not clamped, so a short run with many hits goes negative.
func ComputeScore(distance float64, hits int) int {
	return int(math.Floor(distance/DistancePerPoint+0.5)) - hits*HitPenalty
}

// Outcome is the classification of a collision or bounds check.
type Outcome int

const (
	OutcomeNone        Outcome = iota
	OutcomeBounce              // Ground bounce
	OutcomeDamped              // Damping obstacle, costs a hit
	OutcomeBoosted             // Boost obstacle
	OutcomePowerUp             // Star contact
	OutcomeStopped             // Came to rest on the ground
	OutcomeKilled              // Lethal obstacle or enemy
	OutcomeOutOfBounds         // Left the world
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeBounce:
		return "bounce"
	case OutcomeDamped:
		return "damped"
	case OutcomeBoosted:
		return "boosted"
	case OutcomePowerUp:
		return "power-up"
	case OutcomeStopped:
		return "stopped"
	case OutcomeKilled:
		return "killed"
	case OutcomeOutOfBounds:
		return "out-of-bounds"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the run.
func (o Outcome) Terminal() bool {
	return o == OutcomeStopped || o == OutcomeKilled || o == OutcomeOutOfBounds
}

// ClassifyContext carries the run state a classification depends on.
type ClassifyContext struct {
	Aiming       bool    // Player not launched yet
	PowerActive  bool    // Power window open
	StopVelocity float64 // Ground contacts slower than this stop the run
	Obstacles    []Obstacle
}

// Classify maps one contact to its outcome.
func Classify(c core.Contact, ctx ClassifyContext) Outcome {
	switch c.Kind {
	case core.ContactGround:
		if ctx.Aiming {
			return OutcomeNone
		}
		if math.Abs(c.PlayerVelY) < ctx.StopVelocity {
			return OutcomeStopped
		}
		return OutcomeBounce
	case core.ContactObstacle:
		if c.Index < 0 || c.Index >= len(ctx.Obstacles) {
			return OutcomeNone
		}
		switch ctx.Obstacles[c.Index].Desc.Class {
		case ClassDamping:
			return OutcomeDamped
		case ClassBoost:
			return OutcomeBoosted
		case ClassLethal:
			if ctx.PowerActive {
				return OutcomeNone
			}
			return OutcomeKilled
		}
	case core.ContactEnemy:
		if ctx.PowerActive {
			return OutcomeNone
		}
		return OutcomeKilled
	case core.ContactPickup:
		return OutcomePowerUp
	}
	return OutcomeNone
}

// OutOfBounds reports whether pos lies outside the world: left of zero,
// beyond the world length or below the world height.
func OutOfBounds(pos core.Vec2, length, height float64) bool {
	return pos.X < 0 || pos.X > length || pos.Y > height
}
