package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/ezsim/internal/analysis"
	"github.com/san-kum/ezsim/internal/automation"
	"github.com/san-kum/ezsim/internal/ez"
	"github.com/san-kum/ezsim/internal/sim"
)

func TestSummaryTable(t *testing.T) {
	rows := []sim.SummaryRow{
		{SampleSize: 10, Count: 998, Excluded: 2, Bias: ez.Parameters{V: 0.25}, SquaredError: ez.Parameters{V: 1.5}},
		{SampleSize: 4000, Count: 1000, Bias: ez.Parameters{V: -0.001}, SquaredError: ez.Parameters{V: 0.002}},
	}

	out := SummaryTable(rows)
	for _, want := range []string{"BIAS v", "MSE t", "998", "4000", "+0.250000", "-0.001000", "1.500000"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary table missing %q:\n%s", want, out)
		}
	}
}

func TestTrendTable(t *testing.T) {
	out := TrendTable([]analysis.Trend{
		{Param: "v", Slope: -1.02, RSquared: 0.99, Monotone: true},
		{Param: "t", Slope: -0.2, RSquared: 0.5, Monotone: false},
	})

	for _, want := range []string{"SLOPE", "-1.020", "monotone", "stalled"} {
		if !strings.Contains(out, want) {
			t.Errorf("trend table missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsBlock(t *testing.T) {
	out := MetricsBlock(map[string]float64{"rmse_v": 0.5, "exclusion_rate": 0})

	if strings.Index(out, "exclusion_rate") > strings.Index(out, "rmse_v") {
		t.Error("metrics should be sorted by name")
	}
	if !strings.Contains(out, "0.500000") {
		t.Errorf("missing value:\n%s", out)
	}
}

func TestSweepTable(t *testing.T) {
	out := SweepTable("a", []automation.SweepResult{
		{Value: 0.5, Summary: []sim.SummaryRow{{SampleSize: 40, Count: 10, Bias: ez.Parameters{A: 0.125}}}},
		{Value: 1.5, Summary: []sim.SummaryRow{{SampleSize: 40, Count: 9}}},
	})
	for _, want := range []string{"0.5000", "1.5000", "+0.125000", "KEPT"} {
		if !strings.Contains(out, want) {
			t.Errorf("sweep table missing %q:\n%s", want, out)
		}
	}
}
