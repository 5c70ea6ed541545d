// Package session composes the clock, the simulator and the trail store
// into the unit a renderer drives once per frame.
package session

import (
	"fmt"
	"time"

	"github.com/san-kum/gravsim/internal/clock"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/history"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/trail"
)

// Snapshot is everything a frame needs. Diagnostics and Totals describe
// the state after the step taken on the same tick.
type Snapshot struct {
	Tick        int
	SimTime     float64
	Running     bool
	Halted      bool
	Speed       float64
	Bodies      []physics.Body
	Trails      map[string][]geom.Vec2
	Diagnostics physics.Diagnostics
	Totals      physics.SystemTotals
	Speeds      map[string][]history.Sample
}

// InitialCondition edits the stored start state of one body. Nil fields are
// left alone.
type InitialCondition struct {
	Position *geom.Vec2
	Velocity *geom.Vec2
	Mass     *float64
}

type Session struct {
	cfg     Config
	sim     *physics.Simulator
	clock   *clock.Controller
	trails  *trail.Manager
	speeds  map[string]*history.Series
	initial []physics.Body
	ticks   int
	halted  *StepError
}

func New(cfg Config) (*Session, error) {
	pcfg, err := cfg.physicsConfig()
	if err != nil {
		return nil, err
	}
	sim, err := physics.NewSimulator(pcfg, cfg.Bodies)
	if err != nil {
		return nil, err
	}

	trails, err := trail.New(cfg.TrailLength)
	if err != nil {
		return nil, err
	}

	ck := clock.New()
	if cfg.Speed != 0 {
		if err := ck.SetSpeed(cfg.Speed); err != nil {
			return nil, err
		}
	}

	s := &Session{
		cfg:     cfg,
		sim:     sim,
		clock:   ck,
		trails:  trails,
		speeds:  make(map[string]*history.Series, len(cfg.Bodies)),
		initial: sim.Bodies(),
	}

	for _, b := range s.initial {
		if err := trails.AddBody(b.ID, b.Position); err != nil {
			return nil, err
		}
		series, err := history.NewSeries(cfg.HistoryLength)
		if err != nil {
			return nil, err
		}
		series.Add(0, b.Velocity.Norm())
		s.speeds[b.ID] = series
	}
	return s, nil
}

// Tick advances the session by the simulation time that elapsed since the
// previous call and returns the resulting frame.
func (s *Session) Tick(now time.Time) (Snapshot, error) {
	s.ticks++

	if s.halted != nil {
		s.clock.Sync(now)
		snap, _ := s.snapshot()
		return snap, s.halted
	}

	dt := s.clock.Tick(now)
	if dt <= 0 {
		return s.snapshot()
	}

	bodies, err := s.sim.Step(dt)
	if err != nil {
		s.clock.Rewind(dt)
		s.halted = &StepError{Tick: s.ticks, SimTime: s.clock.SimTime(), Err: err}
		snap, _ := s.snapshot()
		return snap, s.halted
	}

	t := s.clock.SimTime()
	for _, b := range bodies {
		if err := s.trails.Update(b.ID, b.Position); err != nil {
			return Snapshot{}, err
		}
		s.speeds[b.ID].Add(t, b.Velocity.Norm())
	}
	return s.snapshot()
}

// Snapshot reports the current frame without advancing.
func (s *Session) Snapshot() (Snapshot, error) {
	return s.snapshot()
}

func (s *Session) snapshot() (Snapshot, error) {
	snap := Snapshot{
		Tick:    s.ticks,
		SimTime: s.clock.SimTime(),
		Running: s.clock.Running(),
		Halted:  s.halted != nil,
		Speed:   s.clock.Speed(),
		Bodies:  s.sim.Bodies(),
		Trails:  s.trails.Trails(),
		Totals:  s.sim.Totals(),
		Speeds:  make(map[string][]history.Sample, len(s.speeds)),
	}
	for id, series := range s.speeds {
		snap.Speeds[id] = series.Samples()
	}

	d, err := s.sim.Diagnostics()
	if err != nil {
		return snap, err
	}
	snap.Diagnostics = d
	return snap, nil
}

// Reset rewinds bodies, trails, speed history and simulation time to the
// stored initial conditions. Speed and run state are kept.
func (s *Session) Reset() error {
	for _, b := range s.initial {
		if err := s.sim.SetMass(b.ID, b.Mass); err != nil {
			return err
		}
		if err := s.sim.SetState(b.ID, b.Position, b.Velocity); err != nil {
			return err
		}
		if err := s.trails.Reseed(b.ID, b.Position); err != nil {
			return err
		}
		series := s.speeds[b.ID]
		series.Reset()
		series.Add(0, b.Velocity.Norm())
	}
	s.clock.ResetTime()
	s.ticks = 0
	s.halted = nil
	return nil
}

// SetInitialCondition edits the state the next Reset restores. The live
// bodies are untouched.
func (s *Session) SetInitialCondition(id string, ic InitialCondition) error {
	idx := -1
	for i, b := range s.initial {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", physics.ErrUnknownBody, id)
	}

	next := make([]physics.Body, len(s.initial))
	copy(next, s.initial)

	b := next[idx]
	if ic.Position != nil {
		b.Position = *ic.Position
		if s.cfg.PositionBound > 0 {
			b.Position = b.Position.Clamp(s.cfg.PositionBound)
		}
	}
	if ic.Velocity != nil {
		b.Velocity = *ic.Velocity
	}
	if ic.Mass != nil {
		b.Mass = *ic.Mass
	}
	if err := b.Validate(); err != nil {
		return err
	}
	next[idx] = b

	if err := physics.CheckSeparation(next, s.sim.MinSeparation()); err != nil {
		return err
	}
	s.initial = next
	return nil
}

func (s *Session) InitialConditions() []physics.Body {
	out := make([]physics.Body, len(s.initial))
	copy(out, s.initial)
	return out
}

func (s *Session) Pause()  { s.clock.Pause() }
func (s *Session) Resume() { s.clock.Resume() }

func (s *Session) Toggle() clock.State { return s.clock.Toggle() }

func (s *Session) SetSpeed(multiplier float64) error { return s.clock.SetSpeed(multiplier) }
func (s *Session) Faster() float64                   { return s.clock.Faster() }
func (s *Session) Slower() float64                   { return s.clock.Slower() }

func (s *Session) SetTrailCapacity(n int) error { return s.trails.SetMaxLength(n) }

func (s *Session) Halted() bool { return s.halted != nil }

func (s *Session) SimTime() float64 { return s.clock.SimTime() }

func (s *Session) IntegratorName() string { return s.sim.IntegratorName() }

func (s *Session) G() float64 { return s.sim.G() }

func (s *Session) TrailCapacity() int { return s.trails.MaxLength() }
