package catapult

import (
	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
)

// HazardKind distinguishes the two moving actors.
type HazardKind int

const (
	HazardEnemy  HazardKind = iota // Flying ninja, lethal on contact
	HazardPickup                   // Star, opens the power window
)

// String returns a human-readable name for the hazard kind.
func (k HazardKind) String() string {
	switch k {
	case HazardEnemy:
		return "ninja"
	case HazardPickup:
		return "star"
	default:
		return "unknown"
	}
}

// Hazard tuning constants.
const (
	HazardPassDistance = 1000  // Respawn once the player is this far past
	EnemyFloorY        = 800   // Enemy bounces back up below this height
	EnemyBounceSpeed   = -1000 // Vertical velocity given at the floor
	AirMinY            = 100   // Highest respawn height
	AirBottomMargin    = 300   // Lowest respawn height, from the world bottom
	enemySize          = 100   // Unscaled enemy collision size
	pickupSize         = 60    // Unscaled star collision size
)

// Hazard is a moving actor that patrols towards the player and respawns
// ahead of it once passed.
type Hazard struct {
	Kind         HazardKind
	Body         core.Body
	Speed        float64 // Horizontal speed towards decreasing x
	RepeatOffset float64 // Distance ahead of the player on respawn
}

// NewEnemy creates the ninja at its starting offset, disabled until launch.
func NewEnemy(rng *core.RNG, p config.Params) Hazard {
	size := enemySize * p.Obstacles.SizeModifier
	h := Hazard{
		Kind:         HazardEnemy,
		Speed:        p.Obstacles.Ninja.Speed,
		RepeatOffset: p.Obstacles.Ninja.RepeatOffset,
		Body: core.Body{
			Size:    core.Vec2{X: size, Y: size},
			Gravity: p.Player.Gravity,
		},
	}
	h.respawn(p.Obstacles.Ninja.StartOffset, rng.Float(AirRange(p.World)))
	return h
}

// NewPickup creates the star at its starting offset, disabled until launch.
func NewPickup(rng *core.RNG, p config.Params) Hazard {
	size := pickupSize * p.Obstacles.SizeModifier
	h := Hazard{
		Kind:         HazardPickup,
		Speed:        p.Obstacles.Star.Speed,
		RepeatOffset: p.Obstacles.Star.RepeatOffset,
		Body: core.Body{
			Size: core.Vec2{X: size, Y: size},
		},
	}
	h.respawn(p.Obstacles.Star.StartOffset, rng.Float(AirRange(p.World)))
	return h
}

// AirRange returns the band of heights hazards respawn in.
func AirRange(w config.World) core.Range {
	return core.Range{Min: AirMinY, Max: w.Height - AirBottomMargin}
}

func (h *Hazard) respawn(x, y float64) {
	h.Body.Reset(x, y)
	h.Body.Vel.X = -h.Speed
}

// Update keeps the hazard in play. A hazard the player passed by more than
// HazardPassDistance respawns RepeatOffset ahead at a random air height with
// a fresh velocity. The enemy is kicked back up whenever it sinks below the
// floor height. Disabled hazards are left alone. Reports whether it respawned.
func (h *Hazard) Update(playerX float64, rng *core.RNG, air core.Range) bool {
	if !h.Body.Enabled {
		return false
	}

	respawned := false
	if playerX-h.Body.Pos.X > HazardPassDistance {
		h.respawn(playerX+h.RepeatOffset, rng.Float(air))
		respawned = true
	}

	if h.Kind == HazardEnemy && h.Body.Pos.Y > EnemyFloorY {
		h.Body.Vel.Y = EnemyBounceSpeed
	}
	return respawned
}
