package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/scooter-solver/contest/contesttypes"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DistanceWasserstein = "wasserstein"
	DistanceKL          = "kl"
)

type Config struct {
	Contest ContestConfig `toml:"contest"`
	Rivals  RivalsConfig  `toml:"rivals"`
	Sampler SamplerConfig `toml:"sampler"`
	Namer   NamerConfig   `toml:"namer"`
}

type ContestConfig struct {
	Capacity       int    `toml:"capacity"`
	MaxScenarios   int    `toml:"max_scenarios"`
	Distance       string `toml:"distance"`
	ValuePrecision int32  `toml:"value_precision"`
}

type RivalsConfig struct {
	Aggressive int `toml:"aggressive"`
	Neutral    int `toml:"neutral"`
}

type SamplerConfig struct {
	Samples        int     `toml:"samples"`
	Workers        int     `toml:"workers"`
	Rho            float64 `toml:"rho"`
	Additive       bool    `toml:"additive"`
	Seed           uint64  `toml:"seed"`
	DeclineUtility float64 `toml:"decline_utility"`
}

type NamerConfig struct {
	WordFile string `toml:"word_file"`
}

func DefaultContestConfig() ContestConfig {
	return ContestConfig{
		Capacity:       contesttypes.DefaultCapacity,
		MaxScenarios:   5000000,
		Distance:       DistanceWasserstein,
		ValuePrecision: 6,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Contest: DefaultContestConfig(),
		Rivals: RivalsConfig{
			Aggressive: 1,
			Neutral:    4,
		},
		Sampler: SamplerConfig{
			Samples:        500,
			Workers:        8,
			Rho:            0.2,
			Additive:       true,
			Seed:           0,
			DeclineUtility: -15,
		},
		Namer: NamerConfig{
			WordFile: "/usr/share/dict/words",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = Parse(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func Parse(data []byte, cfg *Config) error {
	err := toml.Unmarshal(data, cfg)
	if err != nil {
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	err := c.Contest.Validate()
	if err != nil {
		return err
	}

	if c.Rivals.Aggressive < 0 || c.Rivals.Neutral < 0 {
		return fmt.Errorf("%w: rival counts must be non-negative", ErrInvalidConfig)
	}
	if c.Sampler.Samples < 1 {
		return fmt.Errorf("%w: sampler needs at least one sample", ErrInvalidConfig)
	}
	if c.Sampler.Workers < 1 {
		return fmt.Errorf("%w: sampler needs at least one worker", ErrInvalidConfig)
	}
	if c.Sampler.Rho <= 0 {
		return fmt.Errorf("%w: rho must be positive", ErrInvalidConfig)
	}

	return nil
}

func (c ContestConfig) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be non-negative", ErrInvalidConfig)
	}
	if c.MaxScenarios < 0 {
		return fmt.Errorf("%w: max_scenarios must be non-negative", ErrInvalidConfig)
	}
	if c.ValuePrecision < 0 {
		return fmt.Errorf("%w: value_precision must be non-negative", ErrInvalidConfig)
	}
	switch c.Distance {
	case DistanceWasserstein, DistanceKL:
	default:
		return fmt.Errorf("%w: unknown distance %q", ErrInvalidConfig, c.Distance)
	}
	return nil
}
