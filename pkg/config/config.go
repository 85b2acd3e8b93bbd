// Package config holds the engine tuning knobs, loaded from a TOML
// file layered over compiled-in defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ludex/constel/pkg/camera"
	"github.com/ludex/constel/pkg/focus"
	"github.com/ludex/constel/pkg/picking"
)

// Config holds constel configuration.
type Config struct {
	Camera    CameraConfig    `toml:"camera"`
	Generator GeneratorConfig `toml:"generator"`
	Picking   PickingConfig   `toml:"picking"`
	Focus     FocusConfig     `toml:"focus"`
	Viewer    ViewerConfig    `toml:"viewer"`
}

// CameraConfig tunes the orbit camera.
type CameraConfig struct {
	MinDistance     float64 `toml:"min_distance"`
	MaxDistance     float64 `toml:"max_distance"`
	Damping         float64 `toml:"damping"`
	AutoRotateSpeed float64 `toml:"auto_rotate_speed"` // radians per second
	IdleRearmDelay  float64 `toml:"idle_rearm_delay"`  // seconds
	FOVDegrees      float64 `toml:"fov_degrees"`
}

// GeneratorConfig controls the default scene generator.
type GeneratorConfig struct {
	Count int   `toml:"count"`
	Seed  int64 `toml:"seed"` // 0 means time-seeded
}

// PickingConfig tunes the pointer hit test.
type PickingConfig struct {
	ThresholdPx float64 `toml:"threshold_px"`
}

// FocusConfig tunes the focus transition.
type FocusConfig struct {
	Rate float64 `toml:"rate"` // progress units per second
}

// ViewerConfig controls the desktop viewer window.
type ViewerConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// DefaultNodeCount is the dataset size when none is configured or
// supplied by the caller.
const DefaultNodeCount = 200

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			MinDistance:     camera.DefaultMinDistance,
			MaxDistance:     camera.DefaultMaxDistance,
			Damping:         camera.DefaultDamping,
			AutoRotateSpeed: camera.DefaultAutoRotateSpeed,
			IdleRearmDelay:  camera.DefaultIdleRearmDelay,
			FOVDegrees:      60,
		},
		Generator: GeneratorConfig{Count: DefaultNodeCount},
		Picking:   PickingConfig{ThresholdPx: picking.DefaultThresholdPx},
		Focus:     FocusConfig{Rate: focus.DefaultRate},
		Viewer:    ViewerConfig{Width: 1280, Height: 800, Title: "constel"},
	}
}

// Load reads a TOML config file layered over the defaults. A missing
// file is not an error; unknown keys are ignored.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
