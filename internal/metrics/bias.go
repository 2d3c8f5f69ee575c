package metrics

import (
	"math"

	"github.com/san-kum/ezsim/internal/sim"
)

// MeanAbsBias averages |recovered - true| for one parameter.
type MeanAbsBias struct {
	name    string
	param   Param
	sum     float64
	samples int
}

func NewMeanAbsBias(p Param) *MeanAbsBias {
	return &MeanAbsBias{
		name:  "mean_abs_bias_" + string(p),
		param: p,
	}
}

func (m *MeanAbsBias) Name() string {
	return m.name
}

func (m *MeanAbsBias) Observe(r sim.Record) {
	if r.Excluded {
		return
	}
	m.sum += math.Abs(m.param.of(r.Bias))
	m.samples++
}

func (m *MeanAbsBias) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanAbsBias) Reset() {
	m.sum = 0
	m.samples = 0
}
