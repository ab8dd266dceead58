package catapult

import "github.com/vovakirdan/catapult/internal/core"

// MutationKind tells the presentation what changed during a tick.
type MutationKind int

const (
	MutationRecycled        MutationKind = iota // Obstacle moved ahead of the player
	MutationHazardRespawned                     // Enemy or star moved ahead of the player
	MutationBounce                              // Player bounced off the ground or an obstacle
	MutationHit                                 // Damping hit counted
	MutationPowerStarted                        // Power window opened
	MutationPowerEnded                          // Power window closed
	MutationEnded                               // Run ended
)

// String returns a human-readable name for the mutation kind.
func (k MutationKind) String() string {
	switch k {
	case MutationRecycled:
		return "recycled"
	case MutationHazardRespawned:
		return "hazard-respawned"
	case MutationBounce:
		return "bounce"
	case MutationHit:
		return "hit"
	case MutationPowerStarted:
		return "power-started"
	case MutationPowerEnded:
		return "power-ended"
	case MutationEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Mutation is one world change produced by a tick.
type Mutation struct {
	Kind   MutationKind
	Index  int        // Obstacle index for MutationRecycled
	Hazard HazardKind // For MutationHazardRespawned
	Pos    core.Vec2  // New position where relevant
	Scale  float64    // New scale for MutationRecycled
}
