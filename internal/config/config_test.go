package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Size != 4 {
		t.Errorf("expected size 4, got %d", cfg.Grid.Size)
	}
	if cfg.Animation.Duration != 0.3 {
		t.Errorf("expected duration 0.3, got %f", cfg.Animation.Duration)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if len(cfg.InitialCells()) != 4 {
		t.Errorf("expected 4 initial cells, got %d", len(cfg.InitialCells()))
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridperm.yaml")
	data := `
grid:
  size: 6
  initial: [[0, 0], [5, 5]]
animation:
  duration: 0.5
actions:
  SW:
    kind: animate
    axis: column
    pairs: [[0, 4]]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Grid.Size != 6 {
		t.Errorf("expected size 6, got %d", cfg.Grid.Size)
	}
	if cfg.Grid.CellSize != DefaultCellSize {
		t.Errorf("unset field should keep default, got %f", cfg.Grid.CellSize)
	}
	if cfg.Animation.Pause != DefaultPause {
		t.Errorf("expected default pause, got %f", cfg.Animation.Pause)
	}
	if len(cfg.InitialCells()) != 2 {
		t.Errorf("explicit initial cells should replace the preset, got %v", cfg.InitialCells())
	}
	sw, ok := cfg.Actions["SW"]
	if !ok || sw.Kind != "animate" || len(sw.Pairs) != 1 {
		t.Errorf("action not decoded: %+v", cfg.Actions)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Grid.Preset = "top-right"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Grid.Preset != "top-right" {
		t.Errorf("expected preset top-right, got %s", loaded.Grid.Preset)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Size = 0
	cfg.Animation.Duration = -1
	cfg.Grid.Preset = "diagonal"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"grid.size", "animation.duration", "unknown preset"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("top-left")
	if len(p) != 4 || p[3][0] != 1 || p[3][1] != 1 {
		t.Errorf("unexpected preset %v", p)
	}
	p[0][0] = 9
	if Presets["top-left"][0][0] == 9 {
		t.Error("GetPreset must return a copy")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(names))
	}
	if names[0] != "bottom-left" {
		t.Errorf("expected sorted names, got %v", names)
	}
}
