package sim

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// runParallel runs one batch per sample size with at most Workers in flight.
// Each batch owns its stream, so the output does not depend on scheduling.
func (r *Runner) runParallel(ctx context.Context, streams []rand.Source) ([][]Record, error) {
	batches := make([][]Record, len(r.cfg.SampleSizes))

	workers := r.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, n := range r.cfg.SampleSizes {
		g.Go(func() error {
			recs, err := r.runSize(ctx, n, streams[i])
			if err != nil {
				return err
			}
			batches[i] = recs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}
