// Package clock maps wall-clock ticks to simulation time.
//
// A [Controller] is a two-state machine (Running, Paused) with a speed
// multiplier. Every call to [Controller.Tick] consumes the wall time elapsed
// since the previous call; while paused that time is discarded rather than
// banked, so resuming never produces a catch-up spike.
package clock

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidSpeed indicates a speed multiplier outside [MinSpeed, MaxSpeed].
var ErrInvalidSpeed = errors.New("clock: speed multiplier must be positive")

const (
	MinSpeed = 1.0 / 1024
	MaxSpeed = 1024.0
)

type State int

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Controller struct {
	state   State
	speed   float64
	simTime float64
	last    time.Time
	hasLast bool
}

func New() *Controller {
	return &Controller{state: Running, speed: 1.0}
}

func (c *Controller) Pause() {
	c.state = Paused
}

// Resume switches to Running. The wall reference is dropped so the first
// tick after resuming attributes no elapsed time.
func (c *Controller) Resume() {
	if c.state == Running {
		return
	}
	c.state = Running
	c.hasLast = false
}

// Toggle flips between Running and Paused and returns the new state.
func (c *Controller) Toggle() State {
	if c.state == Running {
		c.Pause()
	} else {
		c.Resume()
	}
	return c.state
}

// SetSpeed sets the multiplier applied to later ticks. It must lie in
// [MinSpeed, MaxSpeed].
func (c *Controller) SetSpeed(multiplier float64) error {
	if !(multiplier >= MinSpeed && multiplier <= MaxSpeed) {
		return fmt.Errorf("%w: got %v, want [%v, %v]", ErrInvalidSpeed, multiplier, MinSpeed, MaxSpeed)
	}
	c.speed = multiplier
	return nil
}

// Faster doubles the multiplier, capped at MaxSpeed.
func (c *Controller) Faster() float64 {
	c.speed = math.Min(c.speed*2, MaxSpeed)
	return c.speed
}

// Slower halves the multiplier, floored at MinSpeed.
func (c *Controller) Slower() float64 {
	c.speed = math.Max(c.speed*0.5, MinSpeed)
	return c.speed
}

// Tick records now as the wall reference and returns the simulation time
// that elapsed since the previous tick. The first tick, any tick while
// paused, and a wall clock that moved backwards all yield zero. A delta
// that would make the simulation time non-finite is dropped.
func (c *Controller) Tick(now time.Time) float64 {
	var wall float64
	if c.hasLast {
		wall = now.Sub(c.last).Seconds()
	}
	c.last = now
	c.hasLast = true

	if c.state != Running || wall <= 0 {
		return 0
	}
	delta := wall * c.speed
	next := c.simTime + delta
	if math.IsInf(next, 0) || math.IsNaN(next) {
		return 0
	}
	c.simTime = next
	return delta
}

// Sync records now as the wall reference without attributing any elapsed
// time.
func (c *Controller) Sync(now time.Time) {
	c.last = now
	c.hasLast = true
}

// Rewind takes delta back out of the accumulated simulation time, for a
// tick whose step was rejected.
func (c *Controller) Rewind(delta float64) {
	if !(delta > 0) || math.IsInf(delta, 0) {
		return
	}
	c.simTime = math.Max(c.simTime-delta, 0)
}

// ResetTime zeroes the accumulated simulation time. Speed and state are kept.
func (c *Controller) ResetTime() {
	c.simTime = 0
}

func (c *Controller) SimTime() float64 { return c.simTime }
func (c *Controller) Speed() float64   { return c.speed }
func (c *Controller) State() State     { return c.state }
func (c *Controller) Running() bool    { return c.state == Running }
