package ez

import "math"

// DriftEpsilon is the |v| below which the zero-drift limits are used.
const DriftEpsilon = 1e-6

// below this |v*a| the variance numerator cancels badly; use its series.
const seriesCutoff = 0.1

// Forward applies the EZ-diffusion equations to p.
func Forward(p Parameters) Predicted {
	mdt := meanDecisionTime(p.V, p.A)
	return Predicted{
		Accuracy:         ForwardAccuracy(p.V, p.A),
		MeanDecisionTime: mdt,
		MeanRT:           mdt + p.T,
		VarRT:            ForwardVarRT(p.V, p.A),
	}
}

// ForwardAccuracy returns the predicted proportion correct, 1/(1+exp(-va)).
func ForwardAccuracy(v, a float64) float64 {
	if math.Abs(v) < DriftEpsilon {
		return 0.5
	}
	return 1 / (1 + math.Exp(-v*a))
}

// ForwardMeanRT returns the predicted mean response time.
func ForwardMeanRT(v, a, t float64) float64 {
	return meanDecisionTime(v, a) + t
}

// ForwardVarRT returns the predicted response time variance,
// (a/(2v^3)) * (1 - 2vay - y^2) / (1+y)^2 with y = exp(-va).
func ForwardVarRT(v, a float64) float64 {
	if math.Abs(v) < DriftEpsilon {
		return a * a * a * a / 24
	}
	z := v * a
	if math.Abs(z) < seriesCutoff {
		// (1 - 2zy - y^2)/(1+y)^2 == (sinh z - z) / (2 cosh^2(z/2))
		z2 := z * z
		s := 1.0/6 + z2/120 + z2*z2/5040 + z2*z2*z2/362880
		c := math.Cosh(z / 2)
		return a * a * a * a / 4 * s / (c * c)
	}
	y := math.Exp(-z)
	num := 1 - 2*z*y - y*y
	den := (1 + y) * (1 + y)
	return (a / (2 * v * v * v)) * num / den
}

// (a/(2v)) * (1-y)/(1+y), written with tanh(va/2).
func meanDecisionTime(v, a float64) float64 {
	if math.Abs(v) < DriftEpsilon {
		return a * a / 4
	}
	return (a / (2 * v)) * math.Tanh(v*a/2)
}
