package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the parameters file in every search location.
const FileName = "catapult.yaml"

// Load loads the simulation parameters.
// Search order: customPath -> ~/.catapult/configs/catapult.yaml -> ./configs/catapult.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names. Out-of-range values fall back to the defaults and are
// reported through an *InvalidError alongside usable params.
func Load(customPath string) (Params, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultParams(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Merge(DefaultParams(), data)
		if IsInvalid(err) {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		if err != nil {
			return DefaultParams(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{UserConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := Merge(DefaultParams(), data)
		if IsInvalid(err) {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		if err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Merge(DefaultParams(), defaultCatapultYAML)
	if err != nil {
		return DefaultParams(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Merge decodes a YAML document over base. Keys missing from data keep the
// value they have in base, and so do keys whose decoded value does not
// validate. In that case the error is an *InvalidError and the returned
// params are still usable.
func Merge(base Params, data []byte) (Params, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg.Sanitize(base)
}

// Marshal encodes params as YAML.
func Marshal(p Params) ([]byte, error) {
	return yaml.Marshal(p)
}

// Tunables is the part of Params that rewards change and that is shared
// through the remote store.
type Tunables struct {
	Obstacles Obstacles `yaml:"obstacles"`
	Player    Player    `yaml:"player"`
}

// MergeTunables decodes a document holding the obstacles and player
// sub-tree over base. Other keys in data are ignored. Validation follows
// Merge.
func MergeTunables(base Params, data []byte) (Params, error) {
	t := base.Tunables()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return base, err
	}
	cfg := base
	cfg.Obstacles = t.Obstacles
	cfg.Player = t.Player
	return cfg.Sanitize(base)
}

// Tunables returns the shareable sub-tree of p.
func (p Params) Tunables() Tunables {
	return Tunables{Obstacles: p.Obstacles, Player: p.Player}
}

// MarshalTunables encodes the obstacles and player sub-tree of p.
func MarshalTunables(p Params) ([]byte, error) {
	return yaml.Marshal(p.Tunables())
}

// Save writes params to path, creating parent directories.
func Save(path string, p Params) error {
	data, err := Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// HomeDir returns ~/.catapult, or empty if home is unavailable.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".catapult")
}

// UserConfigPath returns the path to user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
