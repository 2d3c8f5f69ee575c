package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/ezsim/internal/ez"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultMaxRetries bounds the redraws spent on one iteration before it is
// recorded as excluded.
const DefaultMaxRetries = 10

// Range is a closed interval parameters are drawn uniformly from.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (r Range) draw(src rand.Source) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return distuv.Uniform{Min: r.Min, Max: r.Max, Src: src}.Rand()
}

// ParameterRanges are the sampling ranges of the true parameters.
type ParameterRanges struct {
	V Range `json:"v" yaml:"v"`
	A Range `json:"a" yaml:"a"`
	T Range `json:"t" yaml:"t"`
}

func DefaultRanges() ParameterRanges {
	return ParameterRanges{
		V: Range{Min: 0.5, Max: 2},
		A: Range{Min: 0.5, Max: 2},
		T: Range{Min: 0.1, Max: 0.5},
	}
}

// Draw samples one parameter set. Components are drawn in v, a, t order.
func (r ParameterRanges) Draw(src rand.Source) ez.Parameters {
	return ez.Parameters{
		V: r.V.draw(src),
		A: r.A.draw(src),
		T: r.T.draw(src),
	}
}

func (r ParameterRanges) validate() error {
	for _, c := range []struct {
		name string
		rng  Range
	}{{"v", r.V}, {"a", r.A}, {"t", r.T}} {
		if c.rng.Min > c.rng.Max {
			return fmt.Errorf("%w: %s range [%g, %g] is inverted", ErrInvalidConfiguration, c.name, c.rng.Min, c.rng.Max)
		}
	}
	if r.A.Min <= 0 {
		return fmt.Errorf("%w: boundary range must be positive, got min %g", ErrInvalidConfiguration, r.A.Min)
	}
	if r.T.Min < 0 {
		return fmt.Errorf("%w: nondecision range must be non-negative, got min %g", ErrInvalidConfiguration, r.T.Min)
	}
	return nil
}

type Config struct {
	Iterations  int
	SampleSizes []int
	Ranges      ParameterRanges
	MaxRetries  int
	Workers     int
}

func DefaultConfig() Config {
	return Config{
		Iterations:  1000,
		SampleSizes: []int{10, 40, 4000},
		Ranges:      DefaultRanges(),
		MaxRetries:  DefaultMaxRetries,
		Workers:     1,
	}
}

// Record is the outcome of one simulate-and-recover iteration.
type Record struct {
	SampleSize   int           `json:"sample_size"`
	Iteration    int           `json:"iteration"`
	Attempts     int           `json:"attempts"`
	True         ez.Parameters `json:"true"`
	Observed     ez.Statistics `json:"observed"`
	Recovered    ez.Parameters `json:"recovered"`
	Bias         ez.Parameters `json:"bias"`
	SquaredError ez.Parameters `json:"squared_error"`
	Excluded     bool          `json:"excluded,omitempty"`
	Reason       string        `json:"reason,omitempty"`
}

// SummaryRow aggregates the surviving records of one sample size.
type SummaryRow struct {
	SampleSize   int           `json:"sample_size"`
	Count        int           `json:"count"`
	Excluded     int           `json:"excluded"`
	Bias         ez.Parameters `json:"bias"`
	SquaredError ez.Parameters `json:"squared_error"`
}

type Metric interface {
	Name() string
	Observe(r Record)
	Value() float64
	Reset()
}

type Result struct {
	Records []Record
	Metrics map[string]float64
}

// Summary aggregates the records per sample size.
func (r *Result) Summary() ([]SummaryRow, error) {
	return Analyze(r.Records)
}
