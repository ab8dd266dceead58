package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Sound identifies a sound effect.
type Sound int

const (
	SoundLaunch Sound = iota
	SoundBounce
	SoundHit
	SoundBoost
	SoundPowerUp
	SoundPowerDown
	SoundCrash
	SoundLand
)

// String returns a human-readable name for the sound.
func (s Sound) String() string {
	switch s {
	case SoundLaunch:
		return "launch"
	case SoundBounce:
		return "bounce"
	case SoundHit:
		return "hit"
	case SoundBoost:
		return "boost"
	case SoundPowerUp:
		return "power-up"
	case SoundPowerDown:
		return "power-down"
	case SoundCrash:
		return "crash"
	case SoundLand:
		return "land"
	default:
		return "unknown"
	}
}

// sweep is a sine tone gliding linearly from one frequency to another.
// It ends after its duration.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	phase    float64
	pos      int
	total    int
	square   bool
}

func newSweep(rate beep.SampleRate, from, to float64, d time.Duration, square bool) *sweep {
	return &sweep{rate: rate, from: from, to: to, total: rate.N(d), square: square}
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.from + (g.to-g.from)*progress

		val := math.Sin(2 * math.Pi * g.phase)
		if g.square {
			if g.phase < 0.5 {
				val = 0.6
			} else {
				val = -0.6
			}
		}
		// Linear fade out avoids a click at the end
		val *= 0.3 * (1 - progress)

		samples[i][0] = val
		samples[i][1] = val

		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }

// Effect returns the finite streamer for a sound effect.
func Effect(rate beep.SampleRate, s Sound) beep.Streamer {
	switch s {
	case SoundLaunch:
		return newSweep(rate, 220, 660, 180*time.Millisecond, false)
	case SoundBounce:
		return newSweep(rate, 440, 330, 90*time.Millisecond, false)
	case SoundHit:
		return newSweep(rate, 160, 90, 150*time.Millisecond, true)
	case SoundBoost:
		return newSweep(rate, 300, 900, 250*time.Millisecond, true)
	case SoundPowerUp:
		return beep.Seq(
			newSweep(rate, 523, 523, 80*time.Millisecond, false),
			newSweep(rate, 659, 659, 80*time.Millisecond, false),
			newSweep(rate, 784, 784, 120*time.Millisecond, false),
		)
	case SoundPowerDown:
		return newSweep(rate, 784, 392, 200*time.Millisecond, false)
	case SoundCrash:
		return newSweep(rate, 120, 40, 400*time.Millisecond, true)
	case SoundLand:
		return newSweep(rate, 330, 220, 300*time.Millisecond, false)
	default:
		return newSweep(rate, 440, 440, 50*time.Millisecond, false)
	}
}

// melody loops a short bass line forever.
type melody struct {
	rate  beep.SampleRate
	notes []float64
	step  int // Samples per note
	phase float64
	pos   int
}

func newMelody(rate beep.SampleRate) *melody {
	return &melody{
		rate:  rate,
		notes: []float64{110, 110, 165, 147, 110, 131, 147, 98},
		step:  rate.N(300 * time.Millisecond),
	}
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		idx := (m.pos / m.step) % len(m.notes)
		within := float64(m.pos%m.step) / float64(m.step)
		freq := m.notes[idx]

		val := 0.15 * math.Sin(2*math.Pi*m.phase) * (1 - 0.7*within)
		samples[i][0] = val
		samples[i][1] = val

		m.phase += freq / float64(m.rate)
		m.phase -= math.Floor(m.phase)
		m.pos++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }
