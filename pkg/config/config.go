// Package config loads and saves user preferences. Preferences live
// in a YAML file under the user config directory and survive across
// sessions; the scene itself is not stored here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chisel-cad/chisel/pkg/scene"
)

// prefsFile is the preferences file name inside the config directory.
const prefsFile = "preferences.yaml"

// Preferences is everything Chisel persists between sessions.
type Preferences struct {
	Snap          scene.SnapSettings `yaml:"snap"`
	LastScenePath string             `yaml:"last_scene_path,omitempty"`
	RecentScenes  []string           `yaml:"recent_scenes,omitempty"`
}

// Default returns preferences with default snap settings.
func Default() Preferences {
	return Preferences{Snap: scene.DefaultSnapSettings()}
}

// DefaultPath returns the canonical preferences path under the user
// config directory, e.g. ~/.config/chisel/preferences.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "chisel", prefsFile), nil
}

// Load reads preferences from path. A missing file is not an error;
// defaults are returned so first launch works without setup.
func Load(path string) (Preferences, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating parent directories as
// needed.
func Save(path string, p Preferences) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("config: marshal preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// RememberScene records path as the most recent scene, keeping the
// recent list short and free of duplicates.
func (p *Preferences) RememberScene(path string) {
	const maxRecent = 8

	p.LastScenePath = path
	recent := make([]string, 0, maxRecent)
	recent = append(recent, path)
	for _, r := range p.RecentScenes {
		if r == path {
			continue
		}
		recent = append(recent, r)
		if len(recent) == maxRecent {
			break
		}
	}
	p.RecentScenes = recent
}
