package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

func TestFindClosestEnemy(t *testing.T) {
	s := newTestSim(t, testParams, fighter, post)
	a := spawn(t, s, fighter.Kind, components.TeamRed, 0, 0)
	spawn(t, s, post.Kind, components.TeamRed, 1, 0) // teammate, ignored
	far := spawn(t, s, post.Kind, components.TeamBlue, 8, 0)
	near := spawn(t, s, post.Kind, components.TeamBlue, 0, -3)

	got, ok := s.Population.FindClosestEnemy(a)
	if !ok || got != near {
		t.Errorf("closest enemy = %v (%v), want %v", got, ok, near)
	}

	s.ApplyDamage(near, components.DamagePhysical, 1000)
	got, ok = s.Population.FindClosestEnemy(a)
	if !ok || got != far {
		t.Errorf("after kill closest enemy = %v (%v), want %v", got, ok, far)
	}
}

func TestFindClosestEnemyNone(t *testing.T) {
	s := newTestSim(t, testParams, fighter)
	a := spawn(t, s, fighter.Kind, components.TeamRed, 0, 0)
	if _, ok := s.Population.FindClosestEnemy(a); ok {
		t.Error("found an enemy on an empty opposing team")
	}
}

func TestFindClosestUnitIgnoresHeight(t *testing.T) {
	s := newTestSim(t, testParams, post)
	high := spawn(t, s, post.Kind, components.TeamRed, 1, 0)
	spawn(t, s, post.Kind, components.TeamBlue, 2, 0)

	pos, _, _, _, _ := s.Get(high)
	pos.Z = 100

	got, ok := s.Population.FindClosestUnit(r2.Vec{})
	if !ok || got != high {
		t.Errorf("closest unit = %v, want %v (height must be ignored)", got, high)
	}
}

func TestTargetStableWhileInRange(t *testing.T) {
	long := fighter
	long.Range = 5
	s := newTestSim(t, testParams, long, post)

	a := spawn(t, s, long.Kind, components.TeamRed, 0, 0)
	b1 := spawn(t, s, post.Kind, components.TeamBlue, 3, 0)
	b2 := spawn(t, s, post.Kind, components.TeamBlue, 0, 3)

	s.Step()
	locked := mustUnit(t, s, a).Target
	if locked != b1 && locked != b2 {
		t.Fatalf("target = %v, want one of the equidistant enemies", locked)
	}
	other := b2
	if locked == b2 {
		other = b1
	}

	pos, _, _, _, _ := s.Get(other)
	pos.X *= 0.95
	pos.Y *= 0.95

	for i := 0; i < 30; i++ {
		s.Step()
		if got := mustUnit(t, s, a).Target; got != locked {
			t.Fatalf("tick %d: target switched to %v while %v alive and in range", i, got, locked)
		}
	}
}

func TestRetargetOutOfRange(t *testing.T) {
	tests := []struct {
		name       string
		ratio      float64
		cooldown   float64
		wantSwitch bool
	}{
		{"disabled", 0, 0, false},
		{"cooldown active", 0.5, 1, false},
		{"switches to much closer enemy", 0.5, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testParams
			p.Targeting = TargetParams{SwitchCooldown: 2, RetargetRatio: tc.ratio}
			s := newTestSim(t, p, fighter, post)

			a := spawn(t, s, fighter.Kind, components.TeamRed, 0, 0)
			current := spawn(t, s, post.Kind, components.TeamBlue, 10, 0)
			closer := spawn(t, s, post.Kind, components.TeamBlue, 0, 3)

			u := mustUnit(t, s, a)
			u.Target = current
			u.TargetCooldown = tc.cooldown

			_, ok := s.Population.UpdateTarget(a, u, fighter.Range*fighter.Range, p.Targeting)
			if !ok {
				t.Fatal("lost target")
			}
			switched := u.Target == closer
			if switched != tc.wantSwitch {
				t.Errorf("switched = %v, want %v", switched, tc.wantSwitch)
			}
			if switched && u.TargetCooldown != 2 {
				t.Errorf("switch cooldown = %v, want 2", u.TargetCooldown)
			}
		})
	}
}

func TestRetargetRequiresMarkedlyCloserEnemy(t *testing.T) {
	p := testParams
	p.Targeting = TargetParams{SwitchCooldown: 1, RetargetRatio: 0.5}
	s := newTestSim(t, p, fighter, post)

	a := spawn(t, s, fighter.Kind, components.TeamRed, 0, 0)
	current := spawn(t, s, post.Kind, components.TeamBlue, 10, 0)
	spawn(t, s, post.Kind, components.TeamBlue, 0, 9) // closer, but not by half

	u := mustUnit(t, s, a)
	u.Target = current
	s.Population.UpdateTarget(a, u, fighter.Range*fighter.Range, p.Targeting)
	if u.Target != current {
		t.Errorf("target switched to a marginally closer enemy")
	}
}
