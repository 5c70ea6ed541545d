package sim

import (
	"time"

	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/session"
)

// Config describes the synthetic frame clock a headless run uses in place
// of a renderer.
type Config struct {
	FPS      int
	Duration float64 // wall seconds
	Start    time.Time
	// Stride keeps every Stride-th frame in Result.Frames. Zero keeps all.
	Stride int
}

// Frame is the part of a snapshot kept for reporting.
type Frame struct {
	Time        float64
	Bodies      []physics.Body
	Diagnostics physics.Diagnostics
	Totals      physics.SystemTotals
}

type Observer interface {
	OnFrame(snap session.Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(session.Snapshot)

func (f ObserverFunc) OnFrame(snap session.Snapshot) { f(snap) }

type Result struct {
	Integrator string
	Frames     []Frame
	Ticks      int
	SimTime    float64
	Metrics    map[string]float64
	// Err is set when the session halted before the run finished.
	Err error
}

// Energies returns the specific orbital energy of every kept frame.
func (r *Result) Energies() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Diagnostics.SpecificEnergy
	}
	return out
}

// Separations returns the separation of the first two bodies in every kept
// frame.
func (r *Result) Separations() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Diagnostics.Separation
	}
	return out
}

// FrameInterval is the mean sim time between kept frames, or 0 with fewer
// than two frames.
func (r *Result) FrameInterval() float64 {
	if len(r.Frames) < 2 {
		return 0
	}
	return (r.Frames[len(r.Frames)-1].Time - r.Frames[0].Time) / float64(len(r.Frames)-1)
}
