package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth   = 1024
	DefaultHeight  = 768
	DefaultCenterX = -0.75
	DefaultCenterY = 0.0
	DefaultZoom    = 1.5
	DefaultDataDir = ".mandelzoom"
	DefaultSeed    = 1
)

type Config struct {
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	DataDir string        `yaml:"data_dir"`
	Seed    int64         `yaml:"seed"`
	Start   ViewConfig    `yaml:"start"`
	Palette PaletteConfig `yaml:"palette"`
}

// ViewConfig is a camera position: world center and zoom scale.
type ViewConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Zoom float64 `yaml:"zoom"`
}

// PaletteConfig holds the per-channel sine phases of the dwell palette.
type PaletteConfig struct {
	PhaseR float64 `yaml:"phase_r"`
	PhaseG float64 `yaml:"phase_g"`
	PhaseB float64 `yaml:"phase_b"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		DataDir: DefaultDataDir,
		Seed:    DefaultSeed,
		Start: ViewConfig{
			X:    DefaultCenterX,
			Y:    DefaultCenterY,
			Zoom: DefaultZoom,
		},
		Palette: PaletteConfig{
			PhaseR: 0.0,
			PhaseG: 2.0943951023931953, // 2*pi/3
			PhaseB: 4.1887902047863905, // 4*pi/3
		},
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
