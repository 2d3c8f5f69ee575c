package metrics

import "github.com/san-kum/ezsim/internal/sim"

// ExclusionRate is the fraction of iterations that exhausted their retries.
type ExclusionRate struct {
	excluded int
	samples  int
}

func NewExclusionRate() *ExclusionRate {
	return &ExclusionRate{}
}

func (e *ExclusionRate) Name() string { return "exclusion_rate" }

func (e *ExclusionRate) Observe(r sim.Record) {
	e.samples++
	if r.Excluded {
		e.excluded++
	}
}

func (e *ExclusionRate) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.excluded) / float64(e.samples)
}

func (e *ExclusionRate) Reset() {
	e.excluded = 0
	e.samples = 0
}

// RetryRate is the mean number of redraws spent per iteration.
type RetryRate struct {
	retries int
	samples int
}

func NewRetryRate() *RetryRate {
	return &RetryRate{}
}

func (r *RetryRate) Name() string { return "retry_rate" }

func (r *RetryRate) Observe(rec sim.Record) {
	r.samples++
	if rec.Attempts > 1 {
		r.retries += rec.Attempts - 1
	}
}

func (r *RetryRate) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.retries) / float64(r.samples)
}

func (r *RetryRate) Reset() {
	r.retries = 0
	r.samples = 0
}
