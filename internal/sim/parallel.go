package sim

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/session"
)

// Compare runs the same scenario once per integrator, each on its own
// session and goroutine. Results come back in integrator order. A run that
// halts keeps its partial result, with Result.Err set, and does not cancel
// the others.
func Compare(ctx context.Context, base session.Config, integrators []string, cfg Config) ([]*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	results := make([]*Result, len(integrators))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range integrators {
		i, name := i, name
		g.Go(func() error {
			sc := base
			sc.Integrator = name
			sess, err := session.New(sc)
			if err != nil {
				return err
			}

			r := New(sess)
			for _, m := range metrics.Defaults() {
				r.AddMetric(m)
			}
			res, err := r.Run(ctx, cfg)
			var stepErr *session.StepError
			if err != nil && !errors.As(err, &stepErr) {
				return err
			}
			// a halt is reported through res.Err
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
