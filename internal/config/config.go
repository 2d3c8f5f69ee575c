package config

import (
	"fmt"
	"os"

	"github.com/san-kum/ezsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIterations = 1000
	DefaultProfile    = "default"
	DefaultWorkers    = 1
	DefaultLogLevel   = "info"
)

// DefaultSampleSizes are the trial counts of the reference exercise.
var DefaultSampleSizes = []int{10, 40, 4000}

type Config struct {
	Iterations  int                  `yaml:"iterations"`
	SampleSizes []int                `yaml:"sample_sizes"`
	Seed        uint64               `yaml:"seed"`
	Workers     int                  `yaml:"workers"`
	MaxRetries  int                  `yaml:"max_retries"`
	Profile     string               `yaml:"profile"`
	Ranges      *sim.ParameterRanges `yaml:"ranges,omitempty"`
	Metrics     []string             `yaml:"metrics,omitempty"`
	LogLevel    string               `yaml:"log_level"`
}

func DefaultConfig() *Config {
	sizes := make([]int, len(DefaultSampleSizes))
	copy(sizes, DefaultSampleSizes)
	return &Config{
		Iterations:  DefaultIterations,
		SampleSizes: sizes,
		Workers:     DefaultWorkers,
		MaxRetries:  sim.DefaultMaxRetries,
		Profile:     DefaultProfile,
		LogLevel:    DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveRanges returns the explicit ranges if set, otherwise the named
// profile looked up through lookup.
func (c *Config) ResolveRanges(lookup func(string) (sim.ParameterRanges, error)) (sim.ParameterRanges, error) {
	if c.Ranges != nil {
		return *c.Ranges, nil
	}
	profile := c.Profile
	if profile == "" {
		profile = DefaultProfile
	}
	return lookup(profile)
}
