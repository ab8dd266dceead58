package core

// Body is the kinematic state of a dynamic actor as seen by the physics host.
// Position is the center of the body.
type Body struct {
	Pos     Vec2
	Vel     Vec2
	Size    Vec2    // Collision box width and height
	Gravity float64 // Per-body downward acceleration (units/s^2)
	Drag    float64 // Linear deceleration (units/s^2) applied to both axes
	MaxVel  float64 // Per-axis speed cap, 0 = uncapped
	Bounce  float64 // Restitution used against the ground
	Enabled bool    // Disabled bodies neither move nor collide

	prev Vec2
}

// Box returns the collision box of the body.
func (b *Body) Box() Box {
	return BoxAround(b.Pos.X, b.Pos.Y, b.Size.X, b.Size.Y)
}

// Reset teleports the body, clearing its velocity and last-step delta.
func (b *Body) Reset(x, y float64) {
	b.Pos = Vec2{X: x, Y: y}
	b.prev = b.Pos
	b.Vel = Vec2{}
}

// MarkStep remembers the current position as the start of a physics step.
func (b *Body) MarkStep() {
	b.prev = b.Pos
}

// Delta returns the distance moved during the last physics step.
func (b *Body) Delta() Vec2 {
	return Vec2{X: b.Pos.X - b.prev.X, Y: b.Pos.Y - b.prev.Y}
}

// ContactKind identifies what the player touched during a physics step.
type ContactKind int

const (
	ContactGround ContactKind = iota
	ContactObstacle
	ContactEnemy
	ContactPickup
)

// String returns a human-readable name for the contact kind.
func (k ContactKind) String() string {
	switch k {
	case ContactGround:
		return "ground"
	case ContactObstacle:
		return "obstacle"
	case ContactEnemy:
		return "enemy"
	case ContactPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// Contact is one collision event reported by the physics host.
type Contact struct {
	Kind  ContactKind
	Index int // Obstacle index for ContactObstacle, otherwise 0

	// Player vertical velocity after resolution (units/s).
	PlayerVelY float64
}

// Solid is a static collider offered to the physics host.
type Solid struct {
	Box     Box
	Bounce  float64 // Restitution applied to the player on contact
	Resolve bool    // Whether the host separates the player from it
}

// Scene is the set of colliders handed to the physics host for one step.
// The host mutates the referenced bodies in place.
type Scene struct {
	Player  *Body
	Enemy   *Body
	Pickup  *Body
	Solids  []Solid // Indexed like the simulation's obstacles
	GroundY float64 // Top of the ground strip
}
