package ez

import (
	"errors"
	"fmt"
)

// Domain errors for the EZ transforms.
var (
	// ErrInvalidSampleSize indicates a simulation request with fewer than two trials.
	ErrInvalidSampleSize = errors.New("ez: sample size must be at least 2")

	// ErrDegenerateRecovery indicates statistics the inverse equations cannot map
	// back to finite parameters.
	ErrDegenerateRecovery = errors.New("ez: degenerate recovery (non-finite drift)")
)

// RecoveryError wraps a recovery failure with the statistics that caused it.
type RecoveryError struct {
	Stats   Statistics
	Reason  string
	Wrapped error
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("%s: %s (acc=%.6f mrt=%.6f vrt=%.6g)",
		e.Wrapped.Error(), e.Reason, e.Stats.Accuracy, e.Stats.MeanRT, e.Stats.VarRT)
}

func (e *RecoveryError) Unwrap() error {
	return e.Wrapped
}

func degenerate(s Statistics, reason string) error {
	return &RecoveryError{Stats: s, Reason: reason, Wrapped: ErrDegenerateRecovery}
}
