package model

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	TimeLimit  time.Duration `yaml:"time_limit"`
	BoostBonus time.Duration `yaml:"boost_bonus"`

	FPS int `yaml:"fps"`
	// MoveTicks is how many ticks a one-tile move occupies, the tick that
	// starts it included. 0 and 1 both allow a move every tick.
	MoveTicks int `yaml:"move_ticks"`

	Counts      Counts     `yaml:"counts"`
	Separation  Separation `yaml:"separation"`
	MaxAttempts int        `yaml:"max_attempts"`

	// Seed 0 means a fresh time based seed for every session.
	Seed int64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Width:       15,
		Height:      15,
		TimeLimit:   60 * time.Second,
		BoostBonus:  10 * time.Second,
		FPS:         60,
		MoveTicks:   10,
		Counts:      Counts{Pairs: 3, Decoys: 3, Boosts: 2},
		Separation:  Separation{Key: 6, Door: 5, Decoy: 4, Boost: 6},
		MaxAttempts: 5000,
	}
}

// LoadConfig reads a YAML file over the defaults. Missing fields keep their
// default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, fmt.Errorf("maze size %dx%d must be positive", c.Width, c.Height))
	}
	if c.TimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("time_limit %v must be positive", c.TimeLimit))
	}
	if c.BoostBonus < 0 {
		errs = append(errs, fmt.Errorf("boost_bonus %v must not be negative", c.BoostBonus))
	}
	if c.FPS < 1 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	if c.MoveTicks < 0 {
		errs = append(errs, fmt.Errorf("move_ticks %d must not be negative", c.MoveTicks))
	}
	if c.Counts.Pairs < 0 || c.Counts.Decoys < 0 || c.Counts.Boosts < 0 {
		errs = append(errs, fmt.Errorf("entity counts %+v must not be negative", c.Counts))
	}
	if c.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max_attempts %d must be positive", c.MaxAttempts))
	}
	return errors.Join(errs...)
}

// TickInterval is the duration of one frame at the configured rate.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
