package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ezsim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Iterations != 1000 {
		t.Errorf("expected 1000 iterations, got %d", cfg.Iterations)
	}
	if len(cfg.SampleSizes) != 3 {
		t.Errorf("expected 3 sample sizes, got %v", cfg.SampleSizes)
	}
	if cfg.MaxRetries != sim.DefaultMaxRetries {
		t.Errorf("expected %d retries, got %d", sim.DefaultMaxRetries, cfg.MaxRetries)
	}

	cfg.SampleSizes[0] = 99
	if DefaultSampleSizes[0] == 99 {
		t.Error("DefaultConfig shares its sample size slice")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Iterations = 250
	cfg.SampleSizes = []int{20, 200}
	cfg.Seed = 7
	cfg.Metrics = []string{"rmse_v"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Iterations != 250 || loaded.Seed != 7 || len(loaded.SampleSizes) != 2 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if len(loaded.Metrics) != 1 || loaded.Metrics[0] != "rmse_v" {
		t.Errorf("metrics = %v", loaded.Metrics)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "iterations: 10\nranges:\n  v: {min: 1, max: 1.5}\n  a: {min: 1, max: 2}\n  t: {min: 0.2, max: 0.3}\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Iterations != 10 {
		t.Errorf("expected 10 iterations, got %d", cfg.Iterations)
	}
	if len(cfg.SampleSizes) != 3 {
		t.Errorf("expected default sample sizes, got %v", cfg.SampleSizes)
	}

	rng, err := cfg.ResolveRanges(func(string) (sim.ParameterRanges, error) {
		t.Fatal("lookup should not be used when ranges are explicit")
		return sim.ParameterRanges{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if rng.V.Max != 1.5 || rng.T.Min != 0.2 {
		t.Errorf("unexpected ranges %+v", rng)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("reference")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Iterations != 1000 {
		t.Errorf("expected 1000 iterations, got %d", cfg.Iterations)
	}

	cfg.SampleSizes[0] = 1
	if Presets["reference"].SampleSizes[0] == 1 {
		t.Error("GetPreset returned shared slice")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
}
