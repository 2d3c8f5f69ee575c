package ez

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// SimulateObserved draws the summary statistics of n simulated trials.
//
// The correct count is Binomial(n, Pc); counts of 0 or n are moved half a
// trial inward so accuracy stays inside (0,1). The mean RT is
// Normal(MRT, VRT/n) and the variance estimate is VRT * chi2(n-1)/(n-1).
func SimulateObserved(p Parameters, n int, src rand.Source) (Statistics, error) {
	if n < 2 {
		return Statistics{}, fmt.Errorf("%w: got %d", ErrInvalidSampleSize, n)
	}
	pred := Forward(p)
	return Statistics{
		Accuracy: SampleAccuracy(pred.Accuracy, n, src),
		MeanRT:   SampleMeanRT(pred.MeanRT, pred.VarRT, n, src),
		VarRT:    SampleVarRT(pred.VarRT, n, src),
	}, nil
}

// SampleAccuracy returns an observed proportion correct for n trials.
func SampleAccuracy(pc float64, n int, src rand.Source) float64 {
	nf := float64(n)
	k := distuv.Binomial{N: nf, P: pc, Src: src}.Rand()
	switch {
	case k <= 0:
		k = 0.5
	case k >= nf:
		k = nf - 0.5
	}
	return k / nf
}

// SampleMeanRT returns an observed mean RT for n trials.
func SampleMeanRT(mrt, vrt float64, n int, src rand.Source) float64 {
	return distuv.Normal{Mu: mrt, Sigma: math.Sqrt(vrt / float64(n)), Src: src}.Rand()
}

// SampleVarRT returns an observed RT variance for n trials. The result is
// always strictly positive.
func SampleVarRT(vrt float64, n int, src rand.Source) float64 {
	df := float64(n - 1)
	v := vrt * distuv.ChiSquared{K: df, Src: src}.Rand() / df
	if !(v > 0) {
		v = math.SmallestNonzeroFloat64
	}
	return v
}
