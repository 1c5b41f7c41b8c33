package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSize     = 4
	DefaultCellSize = 50.0
	DefaultSpacing  = 0.0
	DefaultDuration = 0.3
	DefaultPause    = 0.05
	DefaultFPS      = 60
	DefaultPreset   = "bottom-left"
	DefaultLogLevel = "info"
)

type Config struct {
	Grid      GridConfig              `yaml:"grid"`
	Animation AnimationConfig         `yaml:"animation"`
	Log       LogConfig               `yaml:"log"`
	Actions   map[string]ActionConfig `yaml:"actions,omitempty"`
}

type GridConfig struct {
	Size     int     `yaml:"size"`
	CellSize float64 `yaml:"cell_size"`
	Spacing  float64 `yaml:"spacing"`
	// Preset names the initial pattern; Initial, when set, replaces it.
	Preset  string  `yaml:"preset,omitempty"`
	Initial [][]int `yaml:"initial,omitempty"`
}

type AnimationConfig struct {
	Duration float64 `yaml:"duration"`
	Pause    float64 `yaml:"pause"`
	FPS      int     `yaml:"fps"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// ActionConfig defines an extra token. Kind is animate, composite or reset.
type ActionConfig struct {
	Kind   string   `yaml:"kind"`
	Axis   string   `yaml:"axis,omitempty"`
	Pairs  [][]int  `yaml:"pairs,omitempty"`
	Steps  []string `yaml:"steps,omitempty"`
	Coords [][]int  `yaml:"coords,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Size:     DefaultSize,
			CellSize: DefaultCellSize,
			Spacing:  DefaultSpacing,
			Preset:   DefaultPreset,
		},
		Animation: AnimationConfig{
			Duration: DefaultDuration,
			Pause:    DefaultPause,
			FPS:      DefaultFPS,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges. Token definitions are checked when the registry is built.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Size <= 0 {
		errs = append(errs, fmt.Errorf("grid.size must be positive, got %d", c.Grid.Size))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell_size must be positive, got %g", c.Grid.CellSize))
	}
	if c.Grid.Spacing < 0 {
		errs = append(errs, fmt.Errorf("grid.spacing must not be negative, got %g", c.Grid.Spacing))
	}
	if c.Animation.Duration <= 0 {
		errs = append(errs, fmt.Errorf("animation.duration must be positive, got %g", c.Animation.Duration))
	}
	if c.Animation.Pause < 0 {
		errs = append(errs, fmt.Errorf("animation.pause must not be negative, got %g", c.Animation.Pause))
	}
	if c.Animation.FPS <= 0 {
		errs = append(errs, fmt.Errorf("animation.fps must be positive, got %d", c.Animation.FPS))
	}
	if len(c.Grid.Initial) == 0 && c.Grid.Preset != "" {
		if _, ok := Presets[c.Grid.Preset]; !ok {
			errs = append(errs, fmt.Errorf("unknown preset: %s (available: %v)", c.Grid.Preset, ListPresets()))
		}
	}
	for i, rc := range c.Grid.Initial {
		if len(rc) != 2 {
			errs = append(errs, fmt.Errorf("grid.initial[%d] must be [row, col]", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// InitialCells returns the starting ones as [row, col] pairs.
func (c *Config) InitialCells() [][]int {
	if len(c.Grid.Initial) > 0 {
		return c.Grid.Initial
	}
	return GetPreset(c.Grid.Preset)
}
