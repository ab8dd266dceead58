// Package catapult implements the launch game simulation: obstacle recycling,
// moving hazards, the power window, scoring and the run state machine.
// It has no terminal or storage dependencies; a physics host steps the bodies
// returned by Machine.Scene and reports contacts back through Machine.Tick.
package catapult

import (
	"math"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
)

// Class is the behavioral family of an obstacle.
type Class int

const (
	ClassDamping Class = iota // Bounces the player and costs a hit
	ClassBoost                // Bounces the player for free
	ClassLethal               // Ends the run unless the power window is active
)

// String returns a human-readable name for the class.
func (c Class) String() string {
	switch c {
	case ClassDamping:
		return "damping"
	case ClassBoost:
		return "boost"
	case ClassLethal:
		return "lethal"
	default:
		return "unknown"
	}
}

// Variant selects a concrete obstacle look and its descriptor.
type Variant int

const (
	VariantCrate Variant = iota
	VariantRock
	VariantMushroom1
	VariantMushroom2
	VariantBush
	VariantTree2
	VariantTree3
	VariantStump
)

// Recycle margins behind the viewport.
const (
	MarginSoft   = 50  // Damping and boost obstacles
	MarginLethal = 100 // Lethal obstacles
	TreeStartGap = 400 // Trees never spawn within this distance of world start
)

// ClassDescriptor holds everything the simulation needs to know about a variant.
type ClassDescriptor struct {
	Variant Variant
	Name    string
	Class   Class
	Depth   int        // Draw order tag
	Margin  float64    // Recycle margin behind the viewport
	Bounce  float64    // Restitution applied to the player
	Scale   core.Range // Scale drawn on spawn and recycle
	Size    core.Vec2  // Unscaled collision size
	MinX    float64    // Extra offset added to world start on first spawn
}

// Describe returns the descriptor of v for the given obstacle parameters.
func Describe(v Variant, o config.Obstacles) ClassDescriptor {
	switch v {
	case VariantCrate:
		return ClassDescriptor{Variant: v, Name: "crate", Class: ClassDamping, Depth: 3, Margin: MarginSoft,
			Bounce: o.Crates.Bounce, Scale: o.Crates.Scale(), Size: core.Vec2{X: 100, Y: 100}}
	case VariantRock:
		return ClassDescriptor{Variant: v, Name: "rock", Class: ClassDamping, Depth: 4, Margin: MarginSoft,
			Bounce: o.Rocks.Bounce, Scale: o.Rocks.Scale(), Size: core.Vec2{X: 120, Y: 80}}
	case VariantMushroom1:
		return ClassDescriptor{Variant: v, Name: "mushroom", Class: ClassBoost, Depth: 5, Margin: MarginSoft,
			Bounce: o.Mushrooms.Bounce, Scale: o.Mushrooms.Scale(), Size: core.Vec2{X: 110, Y: 120}}
	case VariantMushroom2:
		return ClassDescriptor{Variant: v, Name: "mushroom", Class: ClassBoost, Depth: 6, Margin: MarginSoft,
			Bounce: o.Mushrooms.Bounce, Scale: o.Mushrooms.Scale(), Size: core.Vec2{X: 100, Y: 100}}
	case VariantBush:
		return ClassDescriptor{Variant: v, Name: "bush", Class: ClassBoost, Depth: 7, Margin: MarginSoft,
			Bounce: o.Bushes.Bounce, Scale: o.Bushes.Scale(), Size: core.Vec2{X: 140, Y: 90}}
	case VariantTree2:
		return ClassDescriptor{Variant: v, Name: "tree", Class: ClassLethal, Depth: 8, Margin: MarginLethal,
			Bounce: o.Trees.Bounce, Scale: o.Trees.Scale(), Size: core.Vec2{X: 180, Y: 360}, MinX: TreeStartGap}
	case VariantTree3:
		return ClassDescriptor{Variant: v, Name: "tree", Class: ClassLethal, Depth: 9, Margin: MarginLethal,
			Bounce: o.Trees.Bounce, Scale: o.Trees.Scale(), Size: core.Vec2{X: 160, Y: 320}, MinX: TreeStartGap}
	case VariantStump:
		return ClassDescriptor{Variant: v, Name: "stump", Class: ClassLethal, Depth: 10, Margin: MarginLethal,
			Bounce: o.Stumps.Bounce, Scale: o.Stumps.Scale(), Size: core.Vec2{X: 120, Y: 80}}
	}
	panic("catapult: unknown obstacle variant")
}

// Obstacle is a static ground object. X is its right edge and Y its bottom,
// which always sits on the ground baseline.
type Obstacle struct {
	Desc  ClassDescriptor
	X, Y  float64
	Scale float64
}

// Box returns the scaled collision box.
func (o *Obstacle) Box() core.Box {
	w := o.Desc.Size.X * o.Scale
	h := o.Desc.Size.Y * o.Scale
	return core.Box{X: o.X - w, Y: o.Y - h, W: w, H: h}
}

// Solid returns the collider offered to the physics host.
func (o *Obstacle) Solid() core.Solid {
	return core.Solid{
		Box:     o.Box(),
		Bounce:  o.Desc.Bounce,
		Resolve: o.Desc.Class != ClassLethal,
	}
}

// Behind reports whether the obstacle has fallen behind the viewport.
func (o *Obstacle) Behind(playerX, viewportW float64) bool {
	return o.X < playerX-viewportW/2-o.Desc.Margin
}

// Recycle moves an obstacle that fell behind the viewport to a fresh spot
// ahead of the player and redraws its scale. It is a no-op otherwise and
// reports whether the obstacle moved.
func (o *Obstacle) Recycle(rng *core.RNG, playerX, viewportW float64) bool {
	if !o.Behind(playerX, viewportW) {
		return false
	}
	o.X = rng.FloatBetween(playerX+5*viewportW, playerX+7*viewportW)
	o.Scale = rng.Float(o.Desc.Scale)
	return true
}

type spawnEntry struct {
	variant Variant
	count   int
}

// spawnPlan lists variants in creation order with their instance counts.
// Mushrooms and trees split their count over two looks.
func spawnPlan(o config.Obstacles) []spawnEntry {
	half := func(c float64) int { return int(math.Ceil(c / 2)) }
	full := func(c float64) int { return int(math.Ceil(c)) }
	return []spawnEntry{
		{VariantCrate, full(o.Crates.Count)},
		{VariantRock, full(o.Rocks.Count)},
		{VariantMushroom1, half(o.Mushrooms.Count)},
		{VariantMushroom2, half(o.Mushrooms.Count)},
		{VariantBush, full(o.Bushes.Count)},
		{VariantTree2, half(o.Trees.Count)},
		{VariantTree3, half(o.Trees.Count)},
		{VariantStump, full(o.Stumps.Count)},
	}
}

// SpawnObstacles creates the obstacles of a new run, scattered over the
// first five viewports at whole-unit positions.
func SpawnObstacles(rng *core.RNG, p config.Params) []Obstacle {
	var out []Obstacle
	baseline := p.World.Baseline()
	for _, entry := range spawnPlan(p.Obstacles) {
		desc := Describe(entry.variant, p.Obstacles)
		for i := 0; i < entry.count; i++ {
			out = append(out, Obstacle{
				Desc:  desc,
				X:     float64(rng.IntBetween(int(math.Ceil(p.World.Start+desc.MinX)), int(p.World.Width*5))),
				Y:     baseline,
				Scale: rng.Float(desc.Scale),
			})
		}
	}
	return out
}
