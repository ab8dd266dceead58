// Package config provides YAML-based tunable parameters for the catapult
// simulation: embedded defaults, file loading, the reward edit table and a
// snapshot holder shared by concurrent sessions.
package config

import (
	"time"

	"github.com/vovakirdan/catapult/internal/core"
)

// Params contains every tunable knob of the simulation.
type Params struct {
	World     World     `yaml:"world"`
	Obstacles Obstacles `yaml:"obstacles"`
	Player    Player    `yaml:"player"`
}

// World defines the dimensions of the scrolling scene.
type World struct {
	Width        float64 `yaml:"width"`         // Viewport width in world units
	Height       float64 `yaml:"height"`        // Viewport and world height
	SceneWidth   float64 `yaml:"scene_width"`   // World length in viewports
	Start        float64 `yaml:"start"`         // Leftmost x of the first obstacles
	GroundOffset float64 `yaml:"ground_offset"` // Ground baseline distance from the bottom
}

// Baseline returns the y coordinate obstacles stand on.
func (w World) Baseline() float64 {
	return w.Height - w.GroundOffset
}

// Length returns the total world width.
func (w World) Length() float64 {
	return w.Width * w.SceneWidth
}

// ObstacleClass defines spawn parameters shared by one obstacle family.
type ObstacleClass struct {
	Count  float64 `yaml:"count"`  // Instances per run, rounded up
	Bounce float64 `yaml:"bounce"` // Restitution applied to the player
	Min    float64 `yaml:"min"`    // Minimum scale
	Max    float64 `yaml:"max"`    // Maximum scale
}

// Scale returns the scale range of the family.
func (c ObstacleClass) Scale() core.Range {
	return core.Range{Min: c.Min, Max: c.Max}
}

// Star defines the power pickup.
type Star struct {
	Speed        float64 `yaml:"speed"`
	StartOffset  float64 `yaml:"start_offset"`  // Distance to the first encounter
	RepeatOffset float64 `yaml:"repeat_offset"` // Distance ahead of the player after respawn
	ActiveMS     int     `yaml:"active_ms"`     // Invulnerability window length
}

// Active returns the length of the power window.
func (s Star) Active() time.Duration {
	return time.Duration(s.ActiveMS) * time.Millisecond
}

// Ninja defines the flying enemy.
type Ninja struct {
	Speed        float64 `yaml:"speed"`
	StartOffset  float64 `yaml:"start_offset"`
	RepeatOffset float64 `yaml:"repeat_offset"`
}

// Obstacles groups all obstacle and hazard parameters.
type Obstacles struct {
	Crates       ObstacleClass `yaml:"crates"`
	Rocks        ObstacleClass `yaml:"rocks"`
	Mushrooms    ObstacleClass `yaml:"mushrooms"`
	Stumps       ObstacleClass `yaml:"stumps"`
	Trees        ObstacleClass `yaml:"trees"`
	Bushes       ObstacleClass `yaml:"bushes"`
	Star         Star          `yaml:"star"`
	Ninja        Ninja         `yaml:"ninja"`
	SizeModifier float64       `yaml:"size_modifier"` // Scales hazard sizes
}

// Point is a position in world units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Player defines the launched character.
type Player struct {
	Threshold    int     `yaml:"threshold"`     // Score above which a reward is offered
	Angle        float64 `yaml:"angle"`         // Boost direction in degrees, y down
	Boost        float64 `yaml:"boost"`         // Boost speed
	Bounce       float64 `yaml:"bounce"`        // Restitution against the ground
	Gravity      float64 `yaml:"gravity"`
	Speed        float64 `yaml:"speed"`         // Launch speed multiplier
	Drag         float64 `yaml:"drag"`
	MaxVelocity  float64 `yaml:"max_velocity"`  // Per-axis cap
	StopVelocity float64 `yaml:"stop_velocity"` // Ground contact below this ends the run
	Start        Point   `yaml:"start"`
}
