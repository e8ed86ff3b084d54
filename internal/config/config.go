package config

import (
	"errors"
	"fmt"
	"os"

	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFixedTimestep       = 1.0 / 60.0
	DefaultMaxFrameDelta       = 0.1
	DefaultVelocityIterations  = 8
	DefaultSubsteps            = 1
	DefaultSpeculativeMargin   = 0.1
	DefaultSleepThreshold      = 0.01
	DefaultFriction            = 1.0
	DefaultMaxRecoveryVelocity = 2.0
	DefaultSpringFrequency     = 30.0
	DefaultSpringDampingRatio  = 1.0
)

var (
	ErrInvalidTimestep   = errors.New("fixed_timestep must be positive")
	ErrInvalidFrameDelta = errors.New("max_frame_delta must not be negative")
	ErrInvalidIterations = errors.New("velocity_iterations must be at least 1")
	ErrInvalidSubsteps   = errors.New("substeps must be at least 1")
	ErrInvalidWindow     = errors.New("window size must be positive")
)

type Config struct {
	Physics  PhysicsConfig `yaml:"physics"`
	Window   WindowConfig  `yaml:"window"`
	Scene    string        `yaml:"scene"`
	LogLevel string        `yaml:"log_level"`
}

type PhysicsConfig struct {
	Gravity             [3]float32 `yaml:"gravity,flow"`
	FixedTimestep       float32    `yaml:"fixed_timestep"`
	MaxFrameDelta       float32    `yaml:"max_frame_delta"`
	VelocityIterations  int        `yaml:"velocity_iterations"`
	Substeps            int        `yaml:"substeps"`
	SpeculativeMargin   float32    `yaml:"speculative_margin"`
	SleepThreshold      float32    `yaml:"sleep_threshold"`
	Friction            float32    `yaml:"friction"`
	MaxRecoveryVelocity float32    `yaml:"max_recovery_velocity"`
	SpringFrequency     float32    `yaml:"spring_frequency"`
	SpringDampingRatio  float32    `yaml:"spring_damping_ratio"`
}

type WindowConfig struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
}

func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		Gravity:             [3]float32{0, -9.81, 0},
		FixedTimestep:       DefaultFixedTimestep,
		MaxFrameDelta:       DefaultMaxFrameDelta,
		VelocityIterations:  DefaultVelocityIterations,
		Substeps:            DefaultSubsteps,
		SpeculativeMargin:   DefaultSpeculativeMargin,
		SleepThreshold:      DefaultSleepThreshold,
		Friction:            DefaultFriction,
		MaxRecoveryVelocity: DefaultMaxRecoveryVelocity,
		SpringFrequency:     DefaultSpringFrequency,
		SpringDampingRatio:  DefaultSpringDampingRatio,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Physics: DefaultPhysics(),
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "mirgo sandbox",
			TargetFPS: 60,
		},
		Scene:    "assets/scenes/demo.yaml",
		LogLevel: "info",
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
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
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return ErrInvalidWindow
	}
	return nil
}

func (p PhysicsConfig) Validate() error {
	if !(p.FixedTimestep > 0) {
		return ErrInvalidTimestep
	}
	if p.MaxFrameDelta < 0 {
		return ErrInvalidFrameDelta
	}
	if p.VelocityIterations < 1 {
		return ErrInvalidIterations
	}
	if p.Substeps < 1 {
		return ErrInvalidSubsteps
	}
	return nil
}

func (p PhysicsConfig) GravityVector() rl.Vector3 {
	return rl.Vector3{X: p.Gravity[0], Y: p.Gravity[1], Z: p.Gravity[2]}
}

// Settings converts to backend solver settings.
func (p PhysicsConfig) Settings() physics.Settings {
	return physics.Settings{
		Gravity: p.GravityVector(),
		Solve: physics.SolveDescription{
			VelocityIterations: p.VelocityIterations,
			Substeps:           p.Substeps,
		},
		Material: physics.Material{
			Friction:            p.Friction,
			MaxRecoveryVelocity: p.MaxRecoveryVelocity,
			SpringFrequency:     p.SpringFrequency,
			SpringDampingRatio:  p.SpringDampingRatio,
		},
	}
}
