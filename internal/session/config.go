package session

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/history"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/trail"
)

const DefaultPositionBound = 100.0

type Config struct {
	Bodies        []physics.Body
	G             float64
	MinSeparation float64
	Integrator    string
	TrailLength   int
	HistoryLength int
	Speed         float64
	// PositionBound clamps initial positions set through
	// SetInitialCondition. Zero disables clamping.
	PositionBound float64
}

// DefaultConfig is the equal-mass binary the live view opens with.
func DefaultConfig() Config {
	return Config{
		Bodies: []physics.Body{
			{ID: "body1", Mass: 500, Position: geom.Vec2{X: -20, Y: 20}, Velocity: geom.Vec2{X: 7, Y: 5}},
			{ID: "body2", Mass: 500, Position: geom.Vec2{X: 20, Y: -20}, Velocity: geom.Vec2{X: -10, Y: -4}},
		},
		G:             physics.DefaultG,
		MinSeparation: physics.DefaultMinSeparation,
		Integrator:    integrators.Default,
		TrailLength:   trail.DefaultMaxLength,
		HistoryLength: history.DefaultCapacity,
		Speed:         1,
		PositionBound: DefaultPositionBound,
	}
}

func (c Config) physicsConfig() (physics.Config, error) {
	name := c.Integrator
	if name == "" {
		name = integrators.Default
	}
	integ, err := integrators.New(name)
	if err != nil {
		return physics.Config{}, fmt.Errorf("%w: %v", physics.ErrInvalidConfig, err)
	}
	return physics.Config{G: c.G, MinSeparation: c.MinSeparation, Integrator: integ}, nil
}
