package config

import (
	_ "embed"
)

//go:embed defaults/catapult.yaml
var defaultCatapultYAML []byte

// DefaultParams returns the built-in parameters.
func DefaultParams() Params {
	return Params{
		World: World{
			Width:        1920,
			Height:       1080,
			SceneWidth:   500,
			Start:        900,
			GroundOffset: 168,
		},
		Obstacles: Obstacles{
			Crates:    ObstacleClass{Count: 5, Bounce: 0.4, Min: 0.9, Max: 1.1},
			Rocks:     ObstacleClass{Count: 4, Bounce: 0.4, Min: 0.8, Max: 1.2},
			Mushrooms: ObstacleClass{Count: 6, Bounce: 0.9, Min: 0.8, Max: 1.2},
			Stumps:    ObstacleClass{Count: 4, Bounce: 0, Min: 0.9, Max: 1.2},
			Trees:     ObstacleClass{Count: 4, Bounce: 0, Min: 0.6, Max: 1.1},
			Bushes:    ObstacleClass{Count: 5, Bounce: 0.6, Min: 0.8, Max: 1.2},
			Star: Star{
				Speed:        300,
				StartOffset:  4000,
				RepeatOffset: 4000,
				ActiveMS:     5000,
			},
			Ninja: Ninja{
				Speed:        250,
				StartOffset:  5000,
				RepeatOffset: 3000,
			},
			SizeModifier: 1,
		},
		Player: Player{
			Threshold:    2000,
			Angle:        60,
			Boost:        1800,
			Bounce:       0.7,
			Gravity:      500,
			Speed:        1,
			Drag:         0.5,
			MaxVelocity:  2000,
			StopVelocity: 60,
			Start:        Point{X: 400, Y: 860},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCatapultYAML
}
