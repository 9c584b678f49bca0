package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Mission.Name != "Pathfinder" {
		t.Errorf("default mission: got %q", cfg.Mission.Name)
	}
	if cfg.Sim.Dt <= 0 || cfg.Sim.MaxTime <= 0 {
		t.Error("default sim parameters should be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mission.yaml")
	cfg := Default()
	cfg.Mission.Name = "RoundTrip"
	cfg.Sim.Dt = 0.01
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Mission.Name != "RoundTrip" {
		t.Errorf("mission name: got %q", loaded.Mission.Name)
	}
	if loaded.Sim.Dt != 0.01 {
		t.Errorf("dt: got %g", loaded.Sim.Dt)
	}
	if len(loaded.Mission.Stages) != 2 {
		t.Errorf("stages: got %d", len(loaded.Mission.Stages))
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "sim:\n  dt: 0.002\n  max_time: 120\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Dt != 0.002 || cfg.Sim.MaxTime != 120 {
		t.Errorf("sim section should override: %+v", cfg.Sim)
	}
	if len(cfg.Mission.Stages) == 0 {
		t.Error("unset mission section should keep the preset stages")
	}
}

func TestValidateRejectsDegenerateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Sim.Dt = 0 }},
		{"negative max time", func(c *Config) { c.Sim.MaxTime = -1 }},
		{"no stages", func(c *Config) { c.Mission.Stages = nil }},
		{"zero dry mass", func(c *Config) { c.Mission.Stages[0].DryMass = 0 }},
		{"thrustless burner", func(c *Config) { c.Mission.Stages[0].Thrust = 0 }},
		{"unknown controller", func(c *Config) { c.Controller.Kind = "psychic" }},
		{"bad inertia", func(c *Config) { c.Mission.Stages[0].Inertia = []float64{1, 2} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("want ErrInvalid, got %v", err)
			}
		})
	}
}

func TestToMissionMatchesPreset(t *testing.T) {
	cfg := Default()
	m, err := cfg.ToMission()
	if err != nil {
		t.Fatal(err)
	}
	if m.TotalMass() != 79 { // 40+25+8+6
		t.Errorf("total mass: got %g", m.TotalMass())
	}
	if m.Stages[1].Isp != 250 {
		t.Errorf("sustainer isp: got %g", m.Stages[1].Isp)
	}
}

func TestPreset(t *testing.T) {
	if Preset("pathfinder") == nil {
		t.Error("pathfinder preset should exist")
	}
	if Preset("nonexistent") != nil {
		t.Error("unknown preset should be nil")
	}
	if len(ListPresets()) < 2 {
		t.Error("expected at least two presets")
	}
}

func TestFreshControllersPerCall(t *testing.T) {
	cfg := Default()
	a, err := cfg.ToController()
	if err != nil {
		t.Fatal(err)
	}
	b, err := cfg.ToController()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("each call must build an independent controller instance")
	}
}
