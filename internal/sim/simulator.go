package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/ezsim/internal/ez"
)

// Runner drives repeated simulate-and-recover cycles.
type Runner struct {
	cfg     Config
	src     rand.Source
	metrics []Metric
}

// NewRunner returns a runner drawing all randomness from src. A nil src is
// replaced by an unseeded generator.
func NewRunner(cfg Config, src rand.Source) *Runner {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Runner{
		cfg:     cfg,
		src:     src,
		metrics: make([]Metric, 0),
	}
}

func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

// Run simulates Iterations records for every sample size. Records are grouped
// by sample size in configured order, then by iteration.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.validateConfig(); err != nil {
		return nil, err
	}

	streams := make([]rand.Source, len(r.cfg.SampleSizes))
	for i := range streams {
		streams[i] = rand.NewPCG(r.src.Uint64(), r.src.Uint64())
	}

	batches, err := r.runParallel(ctx, streams)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Records: make([]Record, 0, r.cfg.Iterations*len(r.cfg.SampleSizes)),
		Metrics: make(map[string]float64),
	}
	for _, b := range batches {
		result.Records = append(result.Records, b...)
	}

	for _, m := range r.metrics {
		m.Reset()
		for _, rec := range result.Records {
			m.Observe(rec)
		}
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) validateConfig() error {
	cfg := r.cfg
	if cfg.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfiguration, cfg.Iterations)
	}
	if len(cfg.SampleSizes) == 0 {
		return fmt.Errorf("%w: no sample sizes", ErrInvalidConfiguration)
	}
	for _, n := range cfg.SampleSizes {
		if n < 2 {
			return fmt.Errorf("%w: sample size must be at least 2, got %d", ErrInvalidConfiguration, n)
		}
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must be non-negative, got %d", ErrInvalidConfiguration, cfg.MaxRetries)
	}
	return cfg.Ranges.validate()
}

func (r *Runner) runSize(ctx context.Context, n int, src rand.Source) ([]Record, error) {
	records := make([]Record, 0, r.cfg.Iterations)
	for i := 1; i <= r.cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.iterate(n, i, src)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// iterate redraws degenerate parameter sets up to MaxRetries times, then
// gives up and returns an excluded record.
func (r *Runner) iterate(n, iteration int, src rand.Source) (Record, error) {
	attempts := r.cfg.MaxRetries + 1

	var (
		truth   ez.Parameters
		obs     ez.Statistics
		lastErr error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		truth = r.cfg.Ranges.Draw(src)

		var err error
		obs, err = ez.SimulateObserved(truth, n, src)
		if err != nil {
			return Record{}, err
		}

		est, err := ez.Inverse(obs)
		if errors.Is(err, ez.ErrDegenerateRecovery) {
			lastErr = err
			continue
		}
		if err != nil {
			return Record{}, err
		}

		bias := est.Sub(truth)
		return Record{
			SampleSize:   n,
			Iteration:    iteration,
			Attempts:     attempt,
			True:         truth,
			Observed:     obs,
			Recovered:    est,
			Bias:         bias,
			SquaredError: bias.Square(),
		}, nil
	}

	iterErr := &IterationError{SampleSize: n, Iteration: iteration, Attempts: attempts, Wrapped: lastErr}
	return Record{
		SampleSize: n,
		Iteration:  iteration,
		Attempts:   attempts,
		True:       truth,
		Observed:   obs,
		Excluded:   true,
		Reason:     iterErr.Error(),
	}, nil
}
