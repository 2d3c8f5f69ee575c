package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration indicates a runner configuration that cannot run.
	ErrInvalidConfiguration = errors.New("sim: invalid configuration")

	// ErrAggregation indicates records that cannot be summarised.
	ErrAggregation = errors.New("sim: aggregation failed")
)

// IterationError describes an iteration that exhausted its retries.
type IterationError struct {
	SampleSize int
	Iteration  int
	Attempts   int
	Wrapped    error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("N=%d iteration %d excluded after %d attempts: %v",
		e.SampleSize, e.Iteration, e.Attempts, e.Wrapped)
}

func (e *IterationError) Unwrap() error {
	return e.Wrapped
}
