// Package audio plays the background music and sound effects.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/catapult/internal/settings"
)

const sampleRate = beep.SampleRate(44100)

// Manager owns the speaker, the music loop and the effects mixer.
// Every method is a no-op until Initialize succeeds.
type Manager struct {
	mu          sync.Mutex
	logger      *log.Logger
	mixer       *beep.Mixer
	music       *beep.Ctrl
	musicVolume *effects.Volume
	sfx         settings.Channel
	initialized bool
}

// NewManager creates a silent manager.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		logger: logger,
		mixer:  &beep.Mixer{},
		sfx:    settings.Default().SFX,
	}
}

// Initialize opens the speaker and starts the music loop paused.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	m.musicVolume = volume(newMelody(sampleRate), 0)
	m.music = &beep.Ctrl{Streamer: m.musicVolume, Paused: true}
	m.mixer.Add(m.music)
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Apply updates both channels from the player's settings.
func (m *Manager) Apply(s settings.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sfx = s.SFX
	if !m.initialized {
		return
	}

	speaker.Lock()
	m.music.Paused = !s.Music.Audible()
	setLevel(m.musicVolume, s.Music.Volume)
	speaker.Unlock()
}

// Play starts a sound effect on top of whatever is playing.
func (m *Manager) Play(s Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || !m.sfx.Audible() {
		return
	}
	m.logger.Debug("sfx", "sound", s)
	speaker.Lock()
	m.mixer.Add(volume(Effect(sampleRate, s), m.sfx.Volume))
	speaker.Unlock()
}

// Close silences everything.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}

// volume wraps s at the given settings level.
func volume(s beep.Streamer, level int) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setLevel(v, level)
	return v
}

// setLevel maps a 0..MaxVolume level onto a gain of level/MaxVolume.
// Level 0 is silent since log2(0) is -Inf.
func setLevel(v *effects.Volume, level int) {
	if level <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(float64(level) / settings.MaxVolume)
}
