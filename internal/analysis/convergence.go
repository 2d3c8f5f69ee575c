package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/ezsim/internal/sim"
	"gonum.org/v1/gonum/stat"
)

// ErrTooFewRows indicates fewer than two distinct sample sizes.
var ErrTooFewRows = errors.New("analysis: need at least two sample sizes")

// Trend summarises how one parameter's squared error scales with N.
type Trend struct {
	Param     string
	Slope     float64 // d log(MSE) / d log(N)
	Intercept float64
	RSquared  float64
	Monotone  bool // MSE strictly decreasing in N
}

// Convergence fits log(MSE) = Intercept + Slope*log(N) for v, a and t.
//
// Rows are taken in the given order, so Monotone only means something when
// sample sizes increase. Rows with a non-positive or
// non-finite MSE for a parameter are skipped for that parameter's fit.
func Convergence(rows []sim.SummaryRow) ([]Trend, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewRows, len(rows))
	}

	names := []string{"v", "a", "t"}
	trends := make([]Trend, 0, len(names))
	for p, name := range names {
		xs := make([]float64, 0, len(rows))
		ys := make([]float64, 0, len(rows))
		monotone := true
		prev := math.Inf(1)

		for _, row := range rows {
			mse := row.SquaredError.Slice()[p]
			if mse >= prev {
				monotone = false
			}
			prev = mse
			if !(mse > 0) || math.IsInf(mse, 0) {
				continue
			}
			xs = append(xs, math.Log(float64(row.SampleSize)))
			ys = append(ys, math.Log(mse))
		}

		tr := Trend{Param: name, Monotone: monotone, Slope: math.NaN(), Intercept: math.NaN(), RSquared: math.NaN()}
		if len(xs) >= 2 {
			tr.Intercept, tr.Slope = stat.LinearRegression(xs, ys, nil, false)
			tr.RSquared = stat.RSquared(xs, ys, nil, tr.Intercept, tr.Slope)
		}
		trends = append(trends, tr)
	}
	return trends, nil
}
