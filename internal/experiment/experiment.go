package experiment

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/ezsim/internal/sim"
)

type Config struct {
	Iterations  int
	SampleSizes []int
	Seed        uint64
	Workers     int
	MaxRetries  int
	Ranges      sim.ParameterRanges
}

// Outcome bundles the raw records with their per-size summary.
type Outcome struct {
	Records []sim.Record
	Summary []sim.SummaryRow
	Metrics map[string]float64
}

type Experiment struct {
	cfg        Config
	runner     *sim.Runner
	randSource rand.Source
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15),
	}
}

func (e *Experiment) Setup(metrics []sim.Metric) error {
	e.runner = sim.NewRunner(sim.Config{
		Iterations:  e.cfg.Iterations,
		SampleSizes: e.cfg.SampleSizes,
		Ranges:      e.cfg.Ranges,
		MaxRetries:  e.cfg.MaxRetries,
		Workers:     e.cfg.Workers,
	}, e.randSource)
	for _, m := range metrics {
		e.runner.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	result, err := e.runner.Run(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := result.Summary()
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Records: result.Records,
		Summary: summary,
		Metrics: result.Metrics,
	}, nil
}

// Excluded counts the iterations that were dropped from the summary.
func (o *Outcome) Excluded() int {
	n := 0
	for _, row := range o.Summary {
		n += row.Excluded
	}
	return n
}
