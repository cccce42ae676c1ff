package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkarren/nbodies/internal/geometry"
)

const (
	DefaultWidth        = 640.0
	DefaultHeight       = 640.0
	DefaultDistance     = 1.0
	DefaultTime         = 1.0
	DefaultOversampling = 1024

	MinOversampling = 1
	MaxOversampling = 1 << 16
)

// Config carries the display geometry, the scaling between world and
// screen units, and the simulation toggles. Distance is screen units
// per meter; Time stretches the external clock before integration.
type Config struct {
	Seed          string  `yaml:"seed"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Distance      float64 `yaml:"distance"`
	Time          float64 `yaml:"time"`
	Oversampling  int     `yaml:"oversampling"`
	Bounded       bool    `yaml:"bounded"`
	Trajectory    bool    `yaml:"trajectory"`
	Pause         bool    `yaml:"pause"`
	EjectOutliers bool    `yaml:"eject_outliers"`
	RandomAnomaly bool    `yaml:"random_anomaly"`
	Anomaly       float64 `yaml:"anomaly"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Distance:     DefaultDistance,
		Time:         DefaultTime,
		Oversampling: DefaultOversampling,
		Trajectory:   true,
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
		return nil, fmt.Errorf("config %s: %w", path, err)
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

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("display size (%v, %v) must be positive", c.Width, c.Height)
	}
	if c.Distance <= 0 {
		return fmt.Errorf("distance scale %v must be positive", c.Distance)
	}
	if c.Time <= 0 {
		return fmt.Errorf("time scale %v must be positive", c.Time)
	}
	if c.Oversampling < MinOversampling {
		return fmt.Errorf("oversampling %d must be at least %d", c.Oversampling, MinOversampling)
	}
	return nil
}

// Middle is the screen center, the fixed point of the display
// transforms.
func (c *Config) Middle() geometry.Vector2 {
	return geometry.Vector2{X: c.Width / 2, Y: c.Height / 2}
}

// HalfExtent is the half-size of the visible area in world units, the
// rectangle used for edge wrapping.
func (c *Config) HalfExtent() geometry.Vector2 {
	return geometry.Vector2{X: c.Width / (2 * c.Distance), Y: c.Height / (2 * c.Distance)}
}

// IncreaseOversampling doubles the substep count, saturating at
// MaxOversampling.
func (c *Config) IncreaseOversampling() {
	if c.Oversampling < MaxOversampling {
		c.Oversampling *= 2
	}
}

// DecreaseOversampling halves the substep count, saturating at
// MinOversampling.
func (c *Config) DecreaseOversampling() {
	if c.Oversampling > MinOversampling {
		c.Oversampling /= 2
	}
}

// ZoomIn doubles the distance scale.
func (c *Config) ZoomIn() {
	c.Distance *= 2
}

// ZoomOut halves the distance scale.
func (c *Config) ZoomOut() {
	c.Distance /= 2
}
