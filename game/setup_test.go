package game

import (
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
)

func vec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

func TestSetupRoundTrip(t *testing.T) {
	var s Setup
	s.Add(components.KindArcher, components.TeamBlue, vec(-3, 1.5))
	s.Add(components.KindTower, components.TeamRed, vec(12, 0))

	path := filepath.Join(t.TempDir(), "setup.yaml")
	if err := s.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSetup(path)
	if err != nil {
		t.Fatal(err)
	}

	placements, err := loaded.Placements()
	if err != nil {
		t.Fatal(err)
	}
	want := []Placement{
		{components.KindArcher, components.TeamBlue, vec(-3, 1.5)},
		{components.KindTower, components.TeamRed, vec(12, 0)},
	}
	if len(placements) != len(want) {
		t.Fatalf("got %d placements, want %d", len(placements), len(want))
	}
	for i := range want {
		if placements[i] != want[i] {
			t.Errorf("placement %d = %+v, want %+v", i, placements[i], want[i])
		}
	}
}

func TestLoadSetupErrors(t *testing.T) {
	if _, err := LoadSetup(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	bad := Setup{Units: []config.SetupEntry{{Unit: "catapult", Team: "red"}}}
	if err := bad.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSetup(path); err == nil {
		t.Error("unknown unit type accepted")
	}
}

func TestSetupFromConfig(t *testing.T) {
	cfg := loadConfig(t)
	s := SetupFromConfig(cfg)

	counts := s.TeamCounts()
	if counts[components.TeamRed] != 5 || counts[components.TeamBlue] != 5 {
		t.Errorf("team counts = %v, want 5/5", counts)
	}

	s.Units[0].Unit = "changed"
	if cfg.Battle.DefaultSetup[0].Unit == "changed" {
		t.Error("setup aliases the config slice")
	}
}
