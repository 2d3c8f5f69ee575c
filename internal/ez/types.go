package ez

import "math"

// Parameters is a point in EZ-diffusion parameter space.
type Parameters struct {
	V float64 `json:"v" yaml:"v"` // drift rate
	A float64 `json:"a" yaml:"a"` // boundary separation
	T float64 `json:"t" yaml:"t"` // nondecision time
}

// IsValid reports whether every component is finite.
func (p Parameters) IsValid() bool {
	for _, x := range p.Slice() {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (p Parameters) Sub(other Parameters) Parameters {
	return Parameters{V: p.V - other.V, A: p.A - other.A, T: p.T - other.T}
}

// Square returns the component-wise square.
func (p Parameters) Square() Parameters {
	return Parameters{V: p.V * p.V, A: p.A * p.A, T: p.T * p.T}
}

// Slice returns the components in v, a, t order.
func (p Parameters) Slice() []float64 {
	return []float64{p.V, p.A, p.T}
}

// Statistics are the observed summary statistics of a block of trials.
type Statistics struct {
	Accuracy float64 `json:"accuracy"`
	MeanRT   float64 `json:"mean_rt"`
	VarRT    float64 `json:"var_rt"`
}

// Predicted holds the noiseless statistics implied by a parameter set.
type Predicted struct {
	Accuracy         float64
	MeanDecisionTime float64
	MeanRT           float64
	VarRT            float64
}

// Statistics drops the decision-time component, giving what an infinitely
// large sample would observe.
func (p Predicted) Statistics() Statistics {
	return Statistics{Accuracy: p.Accuracy, MeanRT: p.MeanRT, VarRT: p.VarRT}
}
