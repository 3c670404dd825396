// Package config loads simulation settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by FromEnv.
const (
	EnvConfigPath = "OBBSIM_CONFIG"
	EnvLogLevel   = "OBBSIM_LOG_LEVEL"
	EnvSentryDSN  = "SENTRY_DSN"
)

const DefaultPath = "obbsim.yaml"

// Body holds the parameters every spawned rigid body starts with.
type Body struct {
	Mass        float32    `yaml:"mass"`
	Drag        float32    `yaml:"drag"`
	AngularDrag float32    `yaml:"angular_drag"`
	Restitution float32    `yaml:"restitution"`
	UseGravity  bool       `yaml:"use_gravity"`
	HalfExtents [3]float32 `yaml:"half_extents"`
	Inertia     [3]float32 `yaml:"inertia"`
}

// Floor is the static box the bodies land on. A zero HalfExtents disables it.
type Floor struct {
	Position    [3]float32 `yaml:"position"`
	HalfExtents [3]float32 `yaml:"half_extents"`
}

type Config struct {
	TickRate          int     `yaml:"tick_rate"`
	Ticks             int     `yaml:"ticks"`
	Gravity           float32 `yaml:"gravity"`
	NormalizeRotation bool    `yaml:"normalize_rotation"`

	Bodies        int     `yaml:"bodies"`
	Seed          int64   `yaml:"seed"`
	SpawnExtent   float32 `yaml:"spawn_extent"`
	ShakeInterval int     `yaml:"shake_interval"`

	Body  Body  `yaml:"body"`
	Floor Floor `yaml:"floor"`

	// Scene names a scene file to load instead of spawning random bodies.
	Scene string `yaml:"scene"`

	LogLevel  string `yaml:"log_level"`
	SentryDSN string `yaml:"sentry_dsn"`
}

// Default returns the stock settings: 50 Hz, standard gravity and unit boxes
// with the default body parameters.
func Default() Config {
	return Config{
		TickRate:          50,
		Ticks:             500,
		Gravity:           -9.81,
		NormalizeRotation: true,

		Bodies:        20,
		Seed:          1,
		SpawnExtent:   10,
		ShakeInterval: 100,

		Body: Body{
			Mass:        5,
			Restitution: 1,
			UseGravity:  true,
			HalfExtents: [3]float32{0.5, 0.5, 0.5},
			Inertia:     [3]float32{1, 1, 1},
		},
		Floor: Floor{
			Position:    [3]float32{0, -1, 0},
			HalfExtents: [3]float32{50, 1, 50},
		},

		LogLevel: "info",
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by OBBSIM_CONFIG (default obbsim.yaml),
// applies the log level and Sentry DSN overrides and validates the result.
func FromEnv() (Config, error) {
	path := GetEnv(EnvConfigPath, DefaultPath)
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.LogLevel = GetEnv(EnvLogLevel, cfg.LogLevel)
	cfg.SentryDSN = GetEnv(EnvSentryDSN, cfg.SentryDSN)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s with %s: %w", path, EnvLogLevel, err)
	}
	return cfg, nil
}

// Validate reports settings the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}
	if c.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must not be negative, got %d", c.Ticks))
	}
	if c.Bodies < 0 {
		errs = append(errs, fmt.Errorf("bodies must not be negative, got %d", c.Bodies))
	}
	if c.ShakeInterval < 0 {
		errs = append(errs, fmt.Errorf("shake_interval must not be negative, got %d", c.ShakeInterval))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DeltaTime is the fixed step length in seconds.
func (c Config) DeltaTime() float32 {
	return 1 / float32(c.TickRate)
}

// Level parses LogLevel; an empty level means info.
func (c Config) Level() (logrus.Level, error) {
	if c.LogLevel == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
