package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/ezsim/internal/config"
	"github.com/san-kum/ezsim/internal/experiment"
	"github.com/san-kum/ezsim/internal/metrics"
	"github.com/san-kum/ezsim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of experiments
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single experiment in a scenario. Zero fields fall back
// to config.DefaultConfig.
type ScenarioStep struct {
	Name        string               `yaml:"name"`
	Iterations  int                  `yaml:"iterations"`
	SampleSizes []int                `yaml:"sample_sizes"`
	Seed        uint64               `yaml:"seed"`
	Workers     int                  `yaml:"workers"`
	MaxRetries  *int                 `yaml:"max_retries,omitempty"`
	Profile     string               `yaml:"profile"`
	Ranges      *sim.ParameterRanges `yaml:"ranges,omitempty"`
	Metrics     []string             `yaml:"metrics,omitempty"`
}

// StepResult pairs a step with the outcome of running it.
type StepResult struct {
	Step    ScenarioStep
	Ranges  sim.ParameterRanges
	Outcome *experiment.Outcome
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Config merges the step over the defaults.
func (s ScenarioStep) Config() *config.Config {
	cfg := config.DefaultConfig()
	if s.Iterations != 0 {
		cfg.Iterations = s.Iterations
	}
	if len(s.SampleSizes) > 0 {
		cfg.SampleSizes = s.SampleSizes
	}
	cfg.Seed = s.Seed
	if s.Workers != 0 {
		cfg.Workers = s.Workers
	}
	if s.MaxRetries != nil {
		cfg.MaxRetries = *s.MaxRetries
	}
	if s.Profile != "" {
		cfg.Profile = s.Profile
	}
	cfg.Ranges = s.Ranges
	cfg.Metrics = s.Metrics
	return cfg
}

// RunScenario executes all steps in a scenario. A failing step stops the
// scenario; results of the steps before it are returned with the error.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, log *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", step.Name)

		cfg := step.Config()
		ranges, err := cfg.ResolveRanges(registry.GetProfile)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		out, err := runOne(ctx, cfg, ranges, registry)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Ranges: ranges, Outcome: out})
	}

	return results, nil
}

// Sweep fixes one true parameter at evenly spaced values and runs a full
// simulate-and-recover experiment at each, drawing the other two from Base.
type Sweep struct {
	Param      metrics.Param
	Min        float64
	Max        float64
	NumSteps   int
	Base       *config.Config
	BaseRanges sim.ParameterRanges
}

// SweepResult holds the summary for one swept value
type SweepResult struct {
	Value   float64
	Summary []sim.SummaryRow
	Metrics map[string]float64
}

// RunSweep executes a parameter sweep. Every point reuses the base seed, so
// points differ only in the swept parameter.
func RunSweep(ctx context.Context, sweep *Sweep, registry *experiment.Registry, log *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if sweep.Min > sweep.Max {
		return nil, fmt.Errorf("sweep range [%g, %g] is inverted", sweep.Min, sweep.Max)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)

	step := 0.0
	if sweep.NumSteps > 1 {
		step = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		value := sweep.Min + float64(i)*step
		ranges := fix(sweep.BaseRanges, sweep.Param, value)

		out, err := runOne(ctx, sweep.Base, ranges, registry)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, value, err)
		}

		results = append(results, SweepResult{
			Value:   value,
			Summary: out.Summary,
			Metrics: out.Metrics,
		})

		log.Debug("sweep point done", "point", i+1, "of", sweep.NumSteps, string(sweep.Param), value)
	}

	return results, nil
}

func fix(r sim.ParameterRanges, p metrics.Param, value float64) sim.ParameterRanges {
	pinned := sim.Range{Min: value, Max: value}
	switch p {
	case metrics.Boundary:
		r.A = pinned
	case metrics.Nondecision:
		r.T = pinned
	default:
		r.V = pinned
	}
	return r
}

func runOne(ctx context.Context, cfg *config.Config, ranges sim.ParameterRanges, registry *experiment.Registry) (*experiment.Outcome, error) {
	ms, err := registry.Metrics(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	exp := experiment.New(experiment.Config{
		Iterations:  cfg.Iterations,
		SampleSizes: cfg.SampleSizes,
		Seed:        cfg.Seed,
		Workers:     cfg.Workers,
		MaxRetries:  cfg.MaxRetries,
		Ranges:      ranges,
	})
	if err := exp.Setup(ms); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
