// Package settings persists per-player preferences: the display name and
// the music and sound effect channels.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/catapult/internal/config"
)

// FileName is the settings file inside the catapult home directory.
const FileName = "settings.yaml"

// MaxVolume is the loudest channel level.
const MaxVolume = 5

// MaxNameLen is the longest accepted player name.
const MaxNameLen = 10

var (
	ErrNameEmpty   = errors.New("settings: name is empty")
	ErrNameTooLong = errors.New("settings: name is too long")
	ErrNameInvalid = errors.New("settings: name must be letters and digits only")
)

// Channel is the state of one audio channel.
type Channel struct {
	Paused bool `yaml:"paused"`
	Volume int  `yaml:"volume"` // 0..MaxVolume
}

// Settings holds everything stored in the settings file.
type Settings struct {
	Name  string  `yaml:"name"`
	Music Channel `yaml:"music"`
	SFX   Channel `yaml:"sfx"`
}

// Default returns the settings used when nothing is stored.
func Default() Settings {
	return Settings{
		Music: Channel{Volume: 1},
		SFX:   Channel{Volume: MaxVolume},
	}
}

// DefaultPath returns ~/.catapult/settings.yaml.
func DefaultPath() string {
	return filepath.Join(config.HomeDir(), FileName)
}

// ValidateName checks that name is 1 to MaxNameLen ASCII letters or digits.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return ErrNameInvalid
		}
	}
	return nil
}

// NameFrom derives a valid name from an external identity such as an SSH
// user: characters other than ASCII letters and digits are dropped and the
// rest is cut to MaxNameLen. The result is empty when nothing usable is left.
func NameFrom(raw string) string {
	out := make([]byte, 0, MaxNameLen)
	for i := 0; i < len(raw) && len(out) < MaxNameLen; i++ {
		c := raw[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			out = append(out, c)
		}
	}
	return string(out)
}

// Normalize clamps volumes and clears an invalid name.
func (s *Settings) Normalize() {
	s.Music.Volume = clampVolume(s.Music.Volume)
	s.SFX.Volume = clampVolume(s.SFX.Volume)
	if s.Name != "" && ValidateName(s.Name) != nil {
		s.Name = ""
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}

// HasName reports whether a valid name is stored.
func (s Settings) HasName() bool {
	return ValidateName(s.Name) == nil
}

// SetName validates and stores name.
func (s *Settings) SetName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.Name = name
	return nil
}

// Toggle flips the paused flag of a channel.
func (c *Channel) Toggle() {
	c.Paused = !c.Paused
}

// Louder raises the volume by one step, saturating at MaxVolume.
func (c *Channel) Louder() {
	c.Volume = clampVolume(c.Volume + 1)
}

// Quieter lowers the volume by one step, saturating at zero.
func (c *Channel) Quieter() {
	c.Volume = clampVolume(c.Volume - 1)
}

// Audible reports whether the channel produces sound.
func (c Channel) Audible() bool {
	return !c.Paused && c.Volume > 0
}

// Load reads settings from path. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("settings: cannot read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("settings: cannot parse %s: %w", path, err)
	}
	s.Normalize()
	return s, nil
}

// Save writes settings to path, creating parent directories.
func Save(path string, s Settings) error {
	s.Normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: cannot create directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: cannot encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: cannot write %s: %w", path, err)
	}
	return nil
}
