package physics

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/integrators"
)

const (
	// DefaultG is the stylised constant of the orbit demos, not the SI value.
	DefaultG             = 50.0
	DefaultMinSeparation = 1e-3
)

type Config struct {
	G             float64
	MinSeparation float64
	Integrator    integrators.Integrator
}

func DefaultConfig() Config {
	return Config{
		G:             DefaultG,
		MinSeparation: DefaultMinSeparation,
		Integrator:    integrators.NewVerlet(),
	}
}

// Simulator is not safe for concurrent use.
type Simulator struct {
	cfg    Config
	bodies []Body
	index  map[string]int
}

func NewSimulator(cfg Config, bodies []Body) (*Simulator, error) {
	if !(cfg.G > 0) {
		return nil, fmt.Errorf("%w: G must be positive, got %v", ErrInvalidConfig, cfg.G)
	}
	if cfg.MinSeparation < 0 {
		return nil, fmt.Errorf("%w: min separation must be non-negative, got %v", ErrInvalidConfig, cfg.MinSeparation)
	}
	if cfg.Integrator == nil {
		cfg.Integrator = integrators.NewVerlet()
	}
	if err := ValidateRoster(bodies); err != nil {
		return nil, err
	}
	if err := CheckSeparation(bodies, cfg.MinSeparation); err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:    cfg,
		bodies: cloneBodies(bodies),
		index:  make(map[string]int, len(bodies)),
	}
	for i, b := range s.bodies {
		s.index[b.ID] = i
	}
	return s, nil
}

// Step advances the system by dt and returns the new body states. A
// non-positive dt is a no-op. On error the state is unchanged.
func (s *Simulator) Step(dt float64) ([]Body, error) {
	if dt <= 0 {
		return s.Bodies(), nil
	}

	n := len(s.bodies)
	pos := make([]geom.Vec2, n)
	vel := make([]geom.Vec2, n)
	for i, b := range s.bodies {
		pos[i] = b.Position
		vel[i] = b.Velocity
	}

	nextPos, nextVel, err := s.cfg.Integrator.Step(pos, vel, s.accelerations, dt)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		if !nextPos[i].IsFinite() || !nextVel[i].IsFinite() {
			return nil, fmt.Errorf("%w: body %s", ErrNonFinite, s.bodies[i].ID)
		}
	}
	for i := 0; i < n; i++ {
		s.bodies[i].Position = nextPos[i]
		s.bodies[i].Velocity = nextVel[i]
	}

	return s.Bodies(), nil
}

func (s *Simulator) Bodies() []Body {
	return cloneBodies(s.bodies)
}

func (s *Simulator) Body(id string) (Body, error) {
	i, ok := s.index[id]
	if !ok {
		return Body{}, fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	return s.bodies[i], nil
}

// SetState overwrites the kinematic state of id.
func (s *Simulator) SetState(id string, pos, vel geom.Vec2) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	if !pos.IsFinite() || !vel.IsFinite() {
		return fmt.Errorf("%w: %s", ErrNonFinite, id)
	}
	s.bodies[i].Position = pos
	s.bodies[i].Velocity = vel
	return nil
}

func (s *Simulator) SetMass(id string, mass float64) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	if !(mass > 0) {
		return fmt.Errorf("%w: %s has mass %v", ErrInvalidMass, id, mass)
	}
	s.bodies[i].Mass = mass
	return nil
}

func (s *Simulator) G() float64             { return s.cfg.G }
func (s *Simulator) MinSeparation() float64 { return s.cfg.MinSeparation }
func (s *Simulator) IntegratorName() string { return s.cfg.Integrator.Name() }
