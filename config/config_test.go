package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Battle.DT <= 0 {
		t.Errorf("battle.dt = %v, want positive", cfg.Battle.DT)
	}
	if cfg.Derived.WorldWidth != 30 {
		t.Errorf("world width = %v, want 30", cfg.Derived.WorldWidth)
	}
	if cfg.Derived.NeighborSq != 25 {
		t.Errorf("neighbor radius squared = %v, want 25", cfg.Derived.NeighborSq)
	}

	for _, name := range []string{"archer", "knight", "cowboy", "tower"} {
		if _, ok := cfg.Unit(name); !ok {
			t.Errorf("default unit %q missing", name)
		}
	}
	if _, ok := cfg.Unit("dragon"); ok {
		t.Error("unknown unit type should not resolve")
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("motion:\n  min_speed: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Motion.MinSpeed != 0.5 {
		t.Errorf("min_speed = %v, want 0.5", cfg.Motion.MinSpeed)
	}
	if cfg.Motion.ShuffleSpeed != 0.1 {
		t.Errorf("shuffle_speed = %v, want default 0.1", cfg.Motion.ShuffleSpeed)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero dt", "battle:\n  dt: 0\n"},
		{"duplicate unit", "units:\n  - {name: a}\n  - {name: a}\n"},
		{"inverted cooldown", "units:\n  - {name: a, cooldown_min: 2, cooldown_max: 1}\n"},
		{"malformed", "battle: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Motion.MinSpeed = 0.75

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if back.Motion.MinSpeed != 0.75 {
		t.Errorf("min_speed = %v, want 0.75", back.Motion.MinSpeed)
	}
	if len(back.Units) != len(cfg.Units) {
		t.Errorf("units = %d, want %d", len(back.Units), len(cfg.Units))
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	defer func() {
		if recover() == nil {
			t.Error("Cfg() should panic before Init")
		}
	}()
	Cfg()
}
