package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/clock"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/history"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/session"
	"github.com/san-kum/gravsim/internal/trail"
)

const (
	DefaultFPS      = 60
	DefaultDuration = 10.0
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	G             float64      `yaml:"g"`
	MinSeparation float64      `yaml:"min_separation"`
	Integrator    string       `yaml:"integrator"`
	TrailLength   int          `yaml:"trail_length"`
	HistoryLength int          `yaml:"history_length"`
	Speed         float64      `yaml:"speed"`
	PositionBound float64      `yaml:"position_bound"`
	Run           RunConfig    `yaml:"run"`
	Bodies        []BodyConfig `yaml:"bodies"`
}

// RunConfig drives the headless frame clock.
type RunConfig struct {
	FPS      int     `yaml:"fps"`
	Duration float64 `yaml:"duration"`
}

type BodyConfig struct {
	ID       string     `yaml:"id"`
	Mass     float64    `yaml:"mass"`
	Position [2]float64 `yaml:"position,flow"`
	Velocity [2]float64 `yaml:"velocity,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		G:             physics.DefaultG,
		MinSeparation: physics.DefaultMinSeparation,
		Integrator:    integrators.Default,
		TrailLength:   trail.DefaultMaxLength,
		HistoryLength: history.DefaultCapacity,
		Speed:         1,
		PositionBound: session.DefaultPositionBound,
		Run: RunConfig{
			FPS:      DefaultFPS,
			Duration: DefaultDuration,
		},
		Bodies: []BodyConfig{
			{ID: "body1", Mass: 500, Position: [2]float64{-20, 20}, Velocity: [2]float64{7, 5}},
			{ID: "body2", Mass: 500, Position: [2]float64{20, -20}, Velocity: [2]float64{-10, -4}},
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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
	switch {
	case !(c.G > 0):
		return fmt.Errorf("%w: g must be positive, got %v", ErrInvalid, c.G)
	case c.MinSeparation < 0:
		return fmt.Errorf("%w: min_separation must not be negative", ErrInvalid)
	case c.TrailLength < 1:
		return fmt.Errorf("%w: trail_length must be at least 1", ErrInvalid)
	case c.HistoryLength < 1:
		return fmt.Errorf("%w: history_length must be at least 1", ErrInvalid)
	case !(c.Speed >= clock.MinSpeed && c.Speed <= clock.MaxSpeed):
		return fmt.Errorf("%w: speed must be in [%v, %v], got %v", ErrInvalid, clock.MinSpeed, clock.MaxSpeed, c.Speed)
	case c.PositionBound < 0:
		return fmt.Errorf("%w: position_bound must not be negative", ErrInvalid)
	case c.Run.FPS < 1:
		return fmt.Errorf("%w: run.fps must be at least 1", ErrInvalid)
	case !(c.Run.Duration > 0):
		return fmt.Errorf("%w: run.duration must be positive", ErrInvalid)
	}
	if !slices.Contains(integrators.Names(), c.Integrator) {
		return fmt.Errorf("%w: unknown integrator %q (available: %v)", ErrInvalid, c.Integrator, integrators.Names())
	}
	if err := physics.ValidateRoster(c.bodies()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) bodies() []physics.Body {
	out := make([]physics.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		out[i] = physics.Body{
			ID:       b.ID,
			Mass:     b.Mass,
			Position: geom.Vec2{X: b.Position[0], Y: b.Position[1]},
			Velocity: geom.Vec2{X: b.Velocity[0], Y: b.Velocity[1]},
		}
	}
	return out
}

// Session converts the file form into a session configuration.
func (c *Config) Session() session.Config {
	return session.Config{
		Bodies:        c.bodies(),
		G:             c.G,
		MinSeparation: c.MinSeparation,
		Integrator:    c.Integrator,
		TrailLength:   c.TrailLength,
		HistoryLength: c.HistoryLength,
		Speed:         c.Speed,
		PositionBound: c.PositionBound,
	}
}

// Physics returns the simulator configuration and roster without the
// session layer, for offline analysis.
func (c *Config) Physics() (physics.Config, []physics.Body, error) {
	integ, err := integrators.New(c.Integrator)
	if err != nil {
		return physics.Config{}, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return physics.Config{G: c.G, MinSeparation: c.MinSeparation, Integrator: integ}, c.bodies(), nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = slices.Clone(c.Bodies)
	return &out
}
