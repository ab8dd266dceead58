package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Bounds for values read from files and the shared store.
const (
	MaxCount    = 50 // Instances per obstacle family
	MaxScale    = 10 // Obstacle scale and hazard size modifier
	MaxBounce   = 2
	MaxActiveMS = 60_000
)

// ErrInvalid marks parameters that failed validation.
var ErrInvalid = errors.New("config: invalid parameters")

// InvalidError lists the keys that failed validation.
type InvalidError struct {
	Keys []string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("config: invalid values for %s", strings.Join(e.Keys, ", "))
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *InvalidError) Unwrap() error { return ErrInvalid }

// IsInvalid reports whether err carries rejected keys. Functions returning
// such an error still return usable parameters.
func IsInvalid(err error) bool {
	var ie *InvalidError
	return errors.As(err, &ie)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func within(v, lo, hi float64) bool {
	return finite(v) && v >= lo && v <= hi
}

func nonNegative(v float64) bool {
	return finite(v) && v >= 0
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

// invalidKeys returns the dotted paths holding unusable values. Every key
// must be finite; the obstacles and player sub-tree must also stay within
// the bounds the simulation can run with.
func (p Params) invalidKeys() []string {
	bad := map[string]bool{}
	for _, k := range Keys() {
		v, _ := p.Get(k)
		if !finite(v) {
			bad[k] = true
		}
	}

	check := func(key string, ok func(float64) bool) {
		if v, _ := p.Get(key); !ok(v) {
			bad[key] = true
		}
	}
	for _, name := range []string{"crates", "rocks", "mushrooms", "stumps", "trees", "bushes"} {
		prefix := "obstacles." + name + "."
		check(prefix+"count", func(v float64) bool { return within(v, 0, MaxCount) })
		check(prefix+"bounce", func(v float64) bool { return within(v, 0, MaxBounce) })
		check(prefix+"min", func(v float64) bool { return within(v, 0, MaxScale) && v > 0 })
		check(prefix+"max", func(v float64) bool { return within(v, 0, MaxScale) && v > 0 })
		lo, _ := p.Get(prefix + "min")
		hi, _ := p.Get(prefix + "max")
		if lo > hi {
			bad[prefix+"min"] = true
			bad[prefix+"max"] = true
		}
	}
	for _, k := range []string{
		"obstacles.star.speed", "obstacles.star.start_offset", "obstacles.star.repeat_offset",
		"obstacles.ninja.speed", "obstacles.ninja.start_offset", "obstacles.ninja.repeat_offset",
		"player.boost", "player.gravity", "player.drag", "player.stop_velocity",
	} {
		check(k, nonNegative)
	}
	check("obstacles.size_modifier", func(v float64) bool { return within(v, 0, MaxScale) && v > 0 })
	check("player.bounce", func(v float64) bool { return within(v, 0, MaxBounce) })
	check("player.speed", positive)
	check("player.max_velocity", positive)

	keys := make([]string, 0, len(bad))
	for _, k := range Keys() {
		if bad[k] {
			keys = append(keys, k)
		}
	}
	if ms := p.Obstacles.Star.ActiveMS; ms < 0 || ms > MaxActiveMS {
		keys = append(keys, "obstacles.star.active_ms")
	}
	return keys
}

// Validate returns an *InvalidError naming every unusable key.
func (p Params) Validate() error {
	if keys := p.invalidKeys(); len(keys) > 0 {
		return &InvalidError{Keys: keys}
	}
	return nil
}

// Sanitize replaces every unusable key of p with its value in base. The
// returned error is an *InvalidError naming the replaced keys, or nil. When
// base itself does not validate the result is base.
func (p Params) Sanitize(base Params) (Params, error) {
	keys := p.invalidKeys()
	if len(keys) == 0 {
		return p, nil
	}
	for _, k := range keys {
		if k == "obstacles.star.active_ms" {
			p.Obstacles.Star.ActiveMS = base.Obstacles.Star.ActiveMS
			continue
		}
		v, _ := base.Get(k)
		if err := p.Set(k, v); err != nil {
			panic(err)
		}
	}
	if len(p.invalidKeys()) > 0 {
		p = base
	}
	return p, &InvalidError{Keys: keys}
}
