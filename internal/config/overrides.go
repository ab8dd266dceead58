package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/catapult/internal/core"
)

// ErrUnknownKey is returned for a dotted path that names no numeric knob.
var ErrUnknownKey = errors.New("config: unknown key")

// Edit keys offered as rewards after a high score.
const (
	KeyCratesCount    = "obstacles.crates.count"
	KeyRocksCount     = "obstacles.rocks.count"
	KeyMushroomsCount = "obstacles.mushrooms.count"
	KeyStumpsCount    = "obstacles.stumps.count"
	KeyTreesCount     = "obstacles.trees.count"
	KeyBushesCount    = "obstacles.bushes.count"
	KeyNinjaSpeed     = "obstacles.ninja.speed"
	KeySizeModifier   = "obstacles.size_modifier"
	KeyPlayerBoost    = "player.boost"
	KeyPlayerBounce   = "player.bounce"
	KeyPlayerGravity  = "player.gravity"
	KeyPlayerSpeed    = "player.speed"
	KeyPlayerDrag     = "player.drag"
)

// Edit is one entry of the reward edit table.
type Edit struct {
	Key   string
	Label string
	Range core.Range
}

var editTable = []Edit{
	{Key: KeyPlayerBounce, Label: "Bouncier player", Range: core.Range{Min: 0.2, Max: 1}},
	{Key: KeyMushroomsCount, Label: "Mushrooms", Range: core.Range{Min: 4, Max: 10}},
	{Key: KeyCratesCount, Label: "Crates", Range: core.Range{Min: 4, Max: 10}},
	{Key: KeyBushesCount, Label: "Bushes", Range: core.Range{Min: 4, Max: 10}},
	{Key: KeyRocksCount, Label: "Rocks", Range: core.Range{Min: 4, Max: 10}},
	{Key: KeyPlayerDrag, Label: "Air drag", Range: core.Range{Min: 0.2, Max: 0.8}},
	{Key: KeyStumpsCount, Label: "Stumps", Range: core.Range{Min: 4, Max: 10}},
	{Key: KeyTreesCount, Label: "Trees", Range: core.Range{Min: 4, Max: 10}},
	{Key: KeyNinjaSpeed, Label: "Ninja speed", Range: core.Range{Min: 200, Max: 500}},
	{Key: KeySizeModifier, Label: "Hazard size", Range: core.Range{Min: 0.5, Max: 1.5}},
	{Key: KeyPlayerBoost, Label: "Boost power", Range: core.Range{Min: 1000, Max: 3000}},
	{Key: KeyPlayerGravity, Label: "Gravity", Range: core.Range{Min: 400, Max: 800}},
	{Key: KeyPlayerSpeed, Label: "Launch speed", Range: core.Range{Min: 0.5, Max: 3}},
}

// EditTable returns the reward edit table in display order.
func EditTable() []Edit {
	out := make([]Edit, len(editTable))
	copy(out, editTable)
	return out
}

// LookupEdit returns the edit table entry for key.
func LookupEdit(key string) (Edit, bool) {
	for _, e := range editTable {
		if e.Key == key {
			return e, true
		}
	}
	return Edit{}, false
}

// field returns a pointer to the numeric knob named by a dotted path.
func (p *Params) field(key string) *float64 {
	o := &p.Obstacles
	switch key {
	case "world.width":
		return &p.World.Width
	case "world.height":
		return &p.World.Height
	case "world.scene_width":
		return &p.World.SceneWidth
	case "world.start":
		return &p.World.Start
	case "world.ground_offset":
		return &p.World.GroundOffset
	case "obstacles.star.speed":
		return &o.Star.Speed
	case "obstacles.star.start_offset":
		return &o.Star.StartOffset
	case "obstacles.star.repeat_offset":
		return &o.Star.RepeatOffset
	case "obstacles.ninja.speed":
		return &o.Ninja.Speed
	case "obstacles.ninja.start_offset":
		return &o.Ninja.StartOffset
	case "obstacles.ninja.repeat_offset":
		return &o.Ninja.RepeatOffset
	case "obstacles.size_modifier":
		return &o.SizeModifier
	case "player.angle":
		return &p.Player.Angle
	case "player.boost":
		return &p.Player.Boost
	case "player.bounce":
		return &p.Player.Bounce
	case "player.gravity":
		return &p.Player.Gravity
	case "player.speed":
		return &p.Player.Speed
	case "player.drag":
		return &p.Player.Drag
	case "player.max_velocity":
		return &p.Player.MaxVelocity
	case "player.stop_velocity":
		return &p.Player.StopVelocity
	case "player.start.x":
		return &p.Player.Start.X
	case "player.start.y":
		return &p.Player.Start.Y
	}

	classes := map[string]*ObstacleClass{
		"crates":    &o.Crates,
		"rocks":     &o.Rocks,
		"mushrooms": &o.Mushrooms,
		"stumps":    &o.Stumps,
		"trees":     &o.Trees,
		"bushes":    &o.Bushes,
	}
	for name, c := range classes {
		switch key {
		case "obstacles." + name + ".count":
			return &c.Count
		case "obstacles." + name + ".bounce":
			return &c.Bounce
		case "obstacles." + name + ".min":
			return &c.Min
		case "obstacles." + name + ".max":
			return &c.Max
		}
	}
	return nil
}

// Get returns the value at a dotted path.
func (p Params) Get(key string) (float64, error) {
	f := p.field(key)
	if f == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return *f, nil
}

// Set writes v at a dotted path.
func (p *Params) Set(key string, v float64) error {
	f := p.field(key)
	if f == nil {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	*f = v
	return nil
}

// Keys returns every dotted path accepted by Get and Set, sorted.
func Keys() []string {
	var p Params
	candidates := []string{
		"world.width", "world.height", "world.scene_width", "world.start", "world.ground_offset",
		"obstacles.star.speed", "obstacles.star.start_offset", "obstacles.star.repeat_offset",
		"obstacles.ninja.speed", "obstacles.ninja.start_offset", "obstacles.ninja.repeat_offset",
		"obstacles.size_modifier",
		"player.angle", "player.boost", "player.bounce", "player.gravity", "player.speed",
		"player.drag", "player.max_velocity", "player.stop_velocity", "player.start.x", "player.start.y",
	}
	for _, name := range []string{"crates", "rocks", "mushrooms", "stumps", "trees", "bushes"} {
		for _, attr := range []string{"count", "bounce", "min", "max"} {
			candidates = append(candidates, "obstacles."+name+"."+attr)
		}
	}
	keys := candidates[:0]
	for _, k := range candidates {
		if p.field(k) != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
