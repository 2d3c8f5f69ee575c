package metrics

import (
	"fmt"

	"github.com/san-kum/ezsim/internal/ez"
)

// Param selects one component of a parameter set.
type Param string

const (
	Drift       Param = "v"
	Boundary    Param = "a"
	Nondecision Param = "t"
)

func ParseParam(s string) (Param, error) {
	switch p := Param(s); p {
	case Drift, Boundary, Nondecision:
		return p, nil
	}
	return "", fmt.Errorf("unknown parameter: %s", s)
}

func (p Param) of(x ez.Parameters) float64 {
	switch p {
	case Boundary:
		return x.A
	case Nondecision:
		return x.T
	default:
		return x.V
	}
}
