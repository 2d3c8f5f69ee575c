package metrics

import (
	"math"

	"github.com/san-kum/ezsim/internal/sim"
)

// RMSE is the root mean squared recovery error of one parameter over all
// surviving records.
type RMSE struct {
	name    string
	param   Param
	sum     float64
	samples int
}

func NewRMSE(p Param) *RMSE {
	return &RMSE{
		name:  "rmse_" + string(p),
		param: p,
	}
}

func (m *RMSE) Name() string {
	return m.name
}

func (m *RMSE) Observe(r sim.Record) {
	if r.Excluded {
		return
	}
	m.sum += m.param.of(r.SquaredError)
	m.samples++
}

func (m *RMSE) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return math.Sqrt(m.sum / float64(m.samples))
}

func (m *RMSE) Reset() {
	m.sum = 0
	m.samples = 0
}
