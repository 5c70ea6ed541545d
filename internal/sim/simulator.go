// Package sim runs a session headless, ticking it from a synthetic frame
// clock and folding every frame into metrics.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/session"
)

type Runner struct {
	sess      *session.Session
	metrics   []metrics.Metric
	observers []Observer
}

func New(sess *session.Session) *Runner {
	return &Runner{sess: sess}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

// Run ticks the session FPS*Duration times after an initial reference tick.
// A halted session ends the run early; the partial result is returned with
// the *session.StepError.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	frames := int(cfg.Duration*float64(cfg.FPS) + 0.5)
	interval := time.Second / time.Duration(cfg.FPS)
	start := cfg.Start
	if start.IsZero() {
		start = time.Unix(0, 0)
	}
	stride := max(cfg.Stride, 1)

	result := &Result{
		Integrator: r.sess.IntegratorName(),
		Frames:     make([]Frame, 0, frames/stride+1),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	for i := 0; i <= frames; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		snap, err := r.sess.Tick(start.Add(time.Duration(i) * interval))
		if err != nil {
			result.Err = err
			r.finish(result)
			return result, err
		}
		result.Ticks++

		for _, m := range r.metrics {
			m.Observe(snap.Diagnostics, snap.Totals, snap.SimTime)
		}
		for _, o := range r.observers {
			o.OnFrame(snap)
		}
		if i%stride == 0 || i == frames {
			result.Frames = append(result.Frames, Frame{
				Time:        snap.SimTime,
				Bodies:      snap.Bodies,
				Diagnostics: snap.Diagnostics,
				Totals:      snap.Totals,
			})
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) finish(result *Result) {
	result.SimTime = r.sess.SimTime()
	result.Metrics = metrics.Collect(r.metrics)
}

func validateConfig(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Stride < 0 {
		return fmt.Errorf("stride must not be negative, got %d", cfg.Stride)
	}
	return nil
}
