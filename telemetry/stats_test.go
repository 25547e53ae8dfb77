package telemetry

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"clamped high", []float64{1, 2, 3}, 7, 3.0},
		{"clamped low", []float64{1, 2, 3}, -1, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeHealthStats(t *testing.T) {
	values := []float64{4, 2, 8, 6}
	mean, std, p50 := ComputeHealthStats(values)

	if math.Abs(mean-5) > 0.001 {
		t.Errorf("mean = %v, want 5", mean)
	}
	// Population std of {2,4,6,8} is sqrt(5)
	if math.Abs(std-math.Sqrt(5)) > 0.001 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(5))
	}
	if p50 != 4 {
		t.Errorf("p50 = %v, want 4", p50)
	}
	if values[0] != 4 {
		t.Error("input slice was reordered")
	}
}

func TestComputeHealthStatsEdgeCases(t *testing.T) {
	mean, std, p50 := ComputeHealthStats(nil)
	if mean != 0 || std != 0 || p50 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, p50 = ComputeHealthStats([]float64{3})
	if mean != 3 || std != 0 || p50 != 3 {
		t.Errorf("single value = (%v, %v, %v), want (3, 0, 3)", mean, std, p50)
	}
}

func TestWindowStatsLeader(t *testing.T) {
	tests := []struct {
		red, blue int
		want      components.Team
	}{
		{3, 1, components.TeamRed},
		{0, 2, components.TeamBlue},
		{2, 2, components.TeamUnknown},
	}
	for _, tt := range tests {
		s := WindowStats{RedAlive: tt.red, BlueAlive: tt.blue}
		if got := s.Leader(); got != tt.want {
			t.Errorf("Leader(%d vs %d) = %s, want %s", tt.red, tt.blue, got, tt.want)
		}
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("window ticks = %d, want 10", c.WindowDurationTicks())
	}

	c.Record(NewSpawnEvent(0, ecs.Entity{}, components.TeamRed, components.KindKnight))
	c.Record(NewAttackEvent(3, ecs.Entity{}, components.TeamRed, components.KindKnight, ecs.Entity{}, components.TeamBlue, 2.5))
	c.Record(NewAttackEvent(4, ecs.Entity{}, components.TeamRed, components.KindKnight, ecs.Entity{}, components.TeamBlue, 2.5))
	c.Record(NewDeathEvent(4, ecs.Entity{}, components.TeamBlue, components.KindArcher))
	c.Record(NewStateChangeEvent(5, ecs.Entity{}, components.TeamRed, components.StateReload, components.StateAttack))
	c.Record(Event{Type: EventDeath, Team: components.TeamUnknown})

	if c.ShouldFlush(9) {
		t.Error("flush requested before window end")
	}
	if !c.ShouldFlush(10) {
		t.Error("flush not requested at window end")
	}

	var health [components.TeamCount][]float64
	health[components.TeamRed] = []float64{5, 3}
	s := c.Flush(10, health)

	if s.RedAlive != 2 || s.BlueAlive != 0 {
		t.Errorf("alive = %d/%d, want 2/0", s.RedAlive, s.BlueAlive)
	}
	if s.RedSpawns != 1 || s.RedAttacks != 2 || s.RedDamage != 5 {
		t.Errorf("red spawns=%d attacks=%d damage=%v", s.RedSpawns, s.RedAttacks, s.RedDamage)
	}
	if s.BlueDeaths != 1 || s.RedDeaths != 0 {
		t.Errorf("deaths red=%d blue=%d, want 0/1", s.RedDeaths, s.BlueDeaths)
	}
	if s.Transitions != 1 {
		t.Errorf("transitions = %d, want 1", s.Transitions)
	}
	if s.RedHealthMean != 4 || math.Abs(s.SimTimeSec-1) > 1e-9 {
		t.Errorf("health mean = %v sim time = %v", s.RedHealthMean, s.SimTimeSec)
	}

	next := c.Flush(20, health)
	if next.WindowStartTick != 10 || next.RedAttacks != 0 || next.BlueDeaths != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
