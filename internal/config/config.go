package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHorizon      = 10000.0
	DefaultFrequency    = 0.5
	DefaultCount        = 50
	DefaultTracerRadius = 0.1
	DefaultTracerMass   = 500.0
)

// Config describes one simulation run. When Particles is non-empty it
// replaces random generation entirely, which makes runs reproducible from a
// file alone.
type Config struct {
	Horizon   float64          `yaml:"horizon"`
	Frequency float64          `yaml:"frequency"`
	Seed      int64            `yaml:"seed"`
	Count     int              `yaml:"count"`
	Tracer    TracerConfig     `yaml:"tracer"`
	Particles []ParticleConfig `yaml:"particles"`
}

type TracerConfig struct {
	Enabled bool    `yaml:"enabled"`
	Radius  float64 `yaml:"radius"`
	Mass    float64 `yaml:"mass"`
}

type ParticleConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
	Color  string  `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		Horizon:   DefaultHorizon,
		Frequency: DefaultFrequency,
		Count:     DefaultCount,
		Tracer: TracerConfig{
			Enabled: true,
			Radius:  DefaultTracerRadius,
			Mass:    DefaultTracerMass,
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
