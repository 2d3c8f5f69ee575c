package automation

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/ezsim/internal/config"
	"github.com/san-kum/ezsim/internal/experiment"
	"github.com/san-kum/ezsim/internal/metrics"
	"github.com/san-kum/ezsim/internal/sim"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

const scenarioYAML = `name: smoke
description: two small runs
steps:
  - name: small
    iterations: 5
    sample_sizes: [10, 40]
    seed: 7
  - name: narrow
    iterations: 3
    sample_sizes: [100]
    seed: 8
    profile: narrow
    max_retries: 0
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Name != "smoke" || len(s.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", s)
	}
	if s.Steps[1].MaxRetries == nil || *s.Steps[1].MaxRetries != 0 {
		t.Errorf("expected explicit zero retries, got %v", s.Steps[1].MaxRetries)
	}
}

func TestLoadScenario_NoSteps(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, "name: empty\n"))
	if err == nil || !strings.Contains(err.Error(), "no steps") {
		t.Errorf("expected no steps error, got %v", err)
	}
}

func TestStepConfig_Defaults(t *testing.T) {
	cfg := ScenarioStep{Seed: 3}.Config()
	def := config.DefaultConfig()

	if cfg.Iterations != def.Iterations {
		t.Errorf("iterations %d, want %d", cfg.Iterations, def.Iterations)
	}
	if len(cfg.SampleSizes) != len(def.SampleSizes) {
		t.Errorf("sample sizes %v, want %v", cfg.SampleSizes, def.SampleSizes)
	}
	if cfg.MaxRetries != sim.DefaultMaxRetries {
		t.Errorf("max retries %d, want %d", cfg.MaxRetries, sim.DefaultMaxRetries)
	}
	if cfg.Seed != 3 {
		t.Errorf("seed %d, want 3", cfg.Seed)
	}
}

func TestRunScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), s, experiment.NewRegistry(), quiet)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if got := len(results[0].Outcome.Records); got != 10 {
		t.Errorf("step 1: expected 10 records, got %d", got)
	}
	if got := len(results[1].Outcome.Summary); got != 1 {
		t.Errorf("step 2: expected 1 summary row, got %d", got)
	}
	if results[1].Ranges.V.Min != 1 {
		t.Errorf("step 2: expected narrow profile, got %+v", results[1].Ranges)
	}
}

func TestRunScenario_StopsOnError(t *testing.T) {
	s := &Scenario{Steps: []ScenarioStep{
		{Iterations: 2, SampleSizes: []int{10}, Seed: 1},
		{Iterations: 2, SampleSizes: []int{10}, Profile: "missing"},
	}}

	results, err := RunScenario(context.Background(), s, experiment.NewRegistry(), quiet)
	if err == nil || !strings.Contains(err.Error(), "step 2") {
		t.Fatalf("expected step 2 error, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected the first step result to be kept, got %d", len(results))
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Iterations = 4
	base.SampleSizes = []int{50}
	base.Seed = 11

	sweep := &Sweep{
		Param:      metrics.Boundary,
		Min:        0.5,
		Max:        1.5,
		NumSteps:   3,
		Base:       base,
		BaseRanges: sim.DefaultRanges(),
	}

	results, err := RunSweep(context.Background(), sweep, experiment.NewRegistry(), quiet)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 points, got %d", len(results))
	}

	want := []float64{0.5, 1.0, 1.5}
	for i, r := range results {
		if r.Value != want[i] {
			t.Errorf("point %d: value %g, want %g", i, r.Value, want[i])
		}
		if len(r.Summary) != 1 || r.Summary[0].SampleSize != 50 {
			t.Errorf("point %d: unexpected summary %+v", i, r.Summary)
		}
	}
}

func TestRunSweep_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		sweep Sweep
	}{
		{"no steps", Sweep{Min: 0, Max: 1}},
		{"inverted", Sweep{Min: 2, Max: 1, NumSteps: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.sweep.Base = config.DefaultConfig()
			if _, err := RunSweep(context.Background(), &tt.sweep, experiment.NewRegistry(), quiet); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFix(t *testing.T) {
	r := fix(sim.DefaultRanges(), metrics.Nondecision, 0.25)
	if r.T.Min != 0.25 || r.T.Max != 0.25 {
		t.Errorf("t not pinned: %+v", r.T)
	}
	if r.V != sim.DefaultRanges().V {
		t.Errorf("v changed: %+v", r.V)
	}
}
