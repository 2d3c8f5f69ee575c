package ez

import "math"

// AccuracyEpsilon keeps the logit of the observed accuracy finite.
const AccuracyEpsilon = 1e-9

// Inverse recovers diffusion parameters from summary statistics.
//
// Statistics that cannot be mapped to finite parameters yield a
// *RecoveryError wrapping ErrDegenerateRecovery: a non-positive variance, an
// accuracy of exactly one half, or a negative quantity under the fourth root.
func Inverse(s Statistics) (Parameters, error) {
	if !(s.VarRT > 0) || math.IsInf(s.VarRT, 0) {
		return Parameters{}, degenerate(s, "variance not positive")
	}

	pc := clamp(s.Accuracy, AccuracyEpsilon, 1-AccuracyEpsilon)
	l := math.Log(pc / (1 - pc))

	x := l * (pc*pc*l - pc*l + pc - 0.5) / s.VarRT
	v := sign(pc-0.5) * math.Pow(x, 0.25)
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return Parameters{}, degenerate(s, "drift not finite")
	}

	a := l / v
	y := math.Exp(-v * a)
	t := s.MeanRT - (a/(2*v))*(1-y)/(1+y)

	p := Parameters{V: v, A: a, T: t}
	if !p.IsValid() {
		return Parameters{}, degenerate(s, "boundary or nondecision not finite")
	}
	return p, nil
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
