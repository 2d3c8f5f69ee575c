package sim

import (
	"fmt"

	"github.com/san-kum/ezsim/internal/ez"
	"gonum.org/v1/gonum/stat"
)

type columns struct {
	bias     [3][]float64
	sqErr    [3][]float64
	excluded int
}

func (c *columns) add(rec Record) {
	for i, x := range rec.Bias.Slice() {
		c.bias[i] = append(c.bias[i], x)
	}
	for i, x := range rec.SquaredError.Slice() {
		c.sqErr[i] = append(c.sqErr[i], x)
	}
}

func means(cols [3][]float64) ez.Parameters {
	return ez.Parameters{
		V: stat.Mean(cols[0], nil),
		A: stat.Mean(cols[1], nil),
		T: stat.Mean(cols[2], nil),
	}
}

// Analyze groups records by sample size, in order of first appearance, and
// averages the bias and squared-error columns of the non-excluded records.
func Analyze(records []Record) ([]SummaryRow, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrAggregation)
	}

	order := make([]int, 0)
	groups := make(map[int]*columns)
	for _, rec := range records {
		g, ok := groups[rec.SampleSize]
		if !ok {
			g = &columns{}
			groups[rec.SampleSize] = g
			order = append(order, rec.SampleSize)
		}
		if rec.Excluded {
			g.excluded++
			continue
		}
		g.add(rec)
	}

	rows := make([]SummaryRow, 0, len(order))
	for _, n := range order {
		g := groups[n]
		count := len(g.bias[0])
		if count == 0 {
			return nil, fmt.Errorf("%w: sample size %d has no surviving records (%d excluded)", ErrAggregation, n, g.excluded)
		}
		rows = append(rows, SummaryRow{
			SampleSize:   n,
			Count:        count,
			Excluded:     g.excluded,
			Bias:         means(g.bias),
			SquaredError: means(g.sqErr),
		})
	}
	return rows, nil
}
