package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

func TestDuelScenario(t *testing.T) {
	s := newTestSim(t, testParams, fighter, dummy)
	rec := newRecorder()
	s.Deaths = rec
	s.Observer = rec

	a := spawn(t, s, fighter.Kind, components.TeamRed, 0, 0)
	b := spawn(t, s, dummy.Kind, components.TeamBlue, 10, 0)

	s.Step()
	ua := mustUnit(t, s, a)
	if ua.Target != b {
		t.Fatalf("A target = %v, want B %v", ua.Target, b)
	}
	if ua.State != components.StateMove {
		t.Fatalf("A state after first tick = %s, want move", ua.State)
	}

	for i := 0; i < 200 && s.World.Alive(b); i++ {
		s.Step()
	}
	if s.World.Alive(b) {
		t.Fatal("B survived 200 ticks")
	}
	if len(rec.deaths) != 1 || rec.deaths[0] != b {
		t.Fatalf("deaths = %v, want exactly B", rec.deaths)
	}
	if rec.attacks < 3 {
		t.Errorf("attacks = %d, want at least 3 to deplete 5 health at 2 per hit", rec.attacks)
	}

	for i := 0; i < 20; i++ {
		s.Step()
	}
	ua = mustUnit(t, s, a)
	if ua.State != components.StateIdle {
		t.Errorf("A final state = %s, want idle", ua.State)
	}
	if _, ok := s.Population.Resolve(ua.Target); ok {
		t.Error("A still resolves a target after B was removed")
	}

	seq := rec.transitions[a]
	want := []components.State{components.StateMove, components.StateReload, components.StateAttack}
	idx := 0
	for _, st := range seq {
		if idx < len(want) && st == want[idx] {
			idx++
		}
	}
	if idx != len(want) {
		t.Errorf("A transitions %v do not contain move -> reload -> attack", seq)
	}
	if last := seq[len(seq)-1]; last != components.StateIdle {
		t.Errorf("A last transition = %s, want idle", last)
	}

	pos, _, _, _, _ := s.Get(a)
	if pos.X < 7.9 || pos.X > 8.1 {
		t.Errorf("A stopped at x=%v, want about 8 (range 2 from B)", pos.X)
	}
}

func TestWeakHandleSafety(t *testing.T) {
	s := newTestSim(t, testParams, fighter, dummy)

	a := spawn(t, s, fighter.Kind, components.TeamRed, 0, 0)
	b := spawn(t, s, dummy.Kind, components.TeamBlue, 5, 0)
	s.Step()
	if got := mustUnit(t, s, a).Target; got != b {
		t.Fatalf("target = %v, want %v", got, b)
	}

	if !s.Remove(b) {
		t.Fatal("Remove(b) = false")
	}
	// Likely reuses b's slot with a new generation. Same team as a, so it
	// is never a valid target.
	c := spawn(t, s, dummy.Kind, components.TeamRed, 5, 0)

	if _, ok := s.Population.Resolve(b); ok {
		t.Fatal("stale handle resolved after reuse")
	}

	s.Step()
	ua := mustUnit(t, s, a)
	if ua.Target == c {
		t.Error("stale handle revived as a different unit")
	}
	if ua.Target != (ecs.Entity{}) {
		t.Errorf("target = %v, want none", ua.Target)
	}
}

func TestApplyDamageIdempotentOnDeath(t *testing.T) {
	s := newTestSim(t, testParams, dummy)
	rec := newRecorder()
	s.Deaths = rec

	e := spawn(t, s, dummy.Kind, components.TeamBlue, 0, 0)
	s.ApplyDamage(e, components.DamagePhysical, 2)
	if u := mustUnit(t, s, e); u.Health != 3 {
		t.Fatalf("health = %v, want 3", u.Health)
	}

	s.ApplyDamage(e, components.DamagePhysical, 100)
	if s.World.Alive(e) {
		t.Fatal("unit with free policy should be removed")
	}
	s.ApplyDamage(e, components.DamagePhysical, 1)
	s.ApplyDamage(e, components.DamagePhysical, 1)

	if len(rec.deaths) != 1 {
		t.Errorf("death hook ran %d times, want 1", len(rec.deaths))
	}
}

func TestApplyDamageExactlyZeroKills(t *testing.T) {
	s := newTestSim(t, testParams, dummy)
	e := spawn(t, s, dummy.Kind, components.TeamBlue, 0, 0)

	s.ApplyDamage(e, components.DamagePhysical, dummy.Health)
	if s.World.Alive(e) {
		t.Error("health exactly zero should be terminal")
	}
}

func TestFreezeDeathPolicy(t *testing.T) {
	corpse := dummy
	corpse.Death = DeathFreeze
	s := newTestSim(t, testParams, fighter, corpse)
	rec := newRecorder()
	s.Deaths = rec

	a := spawn(t, s, fighter.Kind, components.TeamRed, 0, 0)
	b := spawn(t, s, corpse.Kind, components.TeamBlue, 1, 0)

	s.ApplyDamage(b, components.DamagePhysical, 50)
	ub := mustUnit(t, s, b)
	if ub.State != components.StateDead || ub.Health != 0 {
		t.Fatalf("corpse state=%s health=%v, want dead with health clamped to 0", ub.State, ub.Health)
	}

	s.ApplyDamage(b, components.DamagePhysical, 50)
	if len(rec.deaths) != 1 {
		t.Errorf("death hook ran %d times, want 1", len(rec.deaths))
	}

	if counts := s.Population.Count(); counts[components.TeamBlue] != 0 {
		t.Errorf("blue live count = %d, corpse must not count", counts[components.TeamBlue])
	}
	if _, ok := s.Population.FindClosestEnemy(a); ok {
		t.Error("corpse was acquired as a target")
	}

	s.Step()
	if ub := mustUnit(t, s, b); ub.State != components.StateDead || ub.StateTime != 0 {
		t.Error("corpse must not be ticked")
	}
}

func TestStepSkipsUnitsKilledEarlierInPass(t *testing.T) {
	glass := dummy
	glass.Health = 0.5
	s := newTestSim(t, testParams, fighter, glass)
	rec := newRecorder()
	s.Observer = rec

	// Already in range; the fighter reaches Attack within a few ticks.
	spawn(t, s, fighter.Kind, components.TeamRed, 0, 0)
	b := spawn(t, s, glass.Kind, components.TeamBlue, 1, 0)

	for i := 0; i < 20 && s.World.Alive(b); i++ {
		s.Step()
	}
	if s.World.Alive(b) {
		t.Fatal("B not removed")
	}
	for _, st := range rec.transitions[b] {
		if st != components.StateDead && st != components.StateMove {
			t.Errorf("B made unexpected transition to %s", st)
		}
	}
}

func TestSpawnUnknownKind(t *testing.T) {
	s := newTestSim(t, testParams, fighter)
	if _, err := s.Spawn(components.KindArcher, components.TeamRed, r2.Vec{}); err == nil {
		t.Error("expected error for unregistered kind")
	}
}

func TestSpawnDefaults(t *testing.T) {
	s := newTestSim(t, testParams, fighter)
	e := spawn(t, s, fighter.Kind, components.TeamBlue, 2, 3)

	pos, motion, facing, u, ok := s.Get(e)
	if !ok {
		t.Fatal("spawned entity did not resolve")
	}
	if pos.X != 2 || pos.Y != 3 || pos.Z != 0 {
		t.Errorf("position = %+v", *pos)
	}
	if motion.Velocity != (r2.Vec{}) {
		t.Errorf("velocity = %v, want zero", motion.Velocity)
	}
	if facing.ScaleX != 1 {
		t.Errorf("blue ScaleX = %v, want +1", facing.ScaleX)
	}
	if u.State != components.StateIdle || u.Health != fighter.Health || u.Size != fighter.Size {
		t.Errorf("unit = %+v", *u)
	}
}

func TestDrawCooldownWithinBand(t *testing.T) {
	info := &UnitInfo{CooldownMin: 1.4, CooldownMax: 1.6}
	a := newTestSim(t, testParams)
	b := newTestSim(t, testParams)

	for i := 0; i < 500; i++ {
		got := a.drawCooldown(info)
		if got < 1.4 || got > 1.6 {
			t.Fatalf("cooldown %v outside [1.4, 1.6]", got)
		}
		if other := b.drawCooldown(info); other != got {
			t.Fatalf("same seed diverged: %v != %v", got, other)
		}
	}

	fixed := &UnitInfo{CooldownMin: 1.5, CooldownMax: 1.5}
	if got := a.drawCooldown(fixed); got != 1.5 {
		t.Errorf("fixed cooldown = %v, want 1.5", got)
	}
}

func TestTimeScaleZeroFreezesTimers(t *testing.T) {
	s := newTestSim(t, testParams, fighter, post)
	a := spawn(t, s, fighter.Kind, components.TeamRed, 0, 0)
	spawn(t, s, post.Kind, components.TeamBlue, 1, 0)

	s.Step() // Idle -> Reload
	if st := mustUnit(t, s, a).State; st != components.StateReload {
		t.Fatalf("state = %s, want reload", st)
	}

	s.Clock.TimeScale = 0
	for i := 0; i < 50; i++ {
		s.Step()
	}
	u := mustUnit(t, s, a)
	if u.State != components.StateReload || u.StateTime != 0 {
		t.Errorf("state=%s time=%v, want reload frozen at 0", u.State, u.StateTime)
	}
}

func TestResetDiscardsPopulation(t *testing.T) {
	s := newTestSim(t, testParams, fighter)
	spawn(t, s, fighter.Kind, components.TeamRed, 0, 0)
	s.Step()

	s.Reset()
	if s.Tick() != 0 {
		t.Errorf("tick = %d after reset", s.Tick())
	}
	visited := 0
	s.Population.ForEachUnit(AnyTeam, func(ecs.Entity, *components.Position, *components.Unit) bool {
		visited++
		return true
	})
	if visited != 0 {
		t.Errorf("visited %d units after reset", visited)
	}
	counts := s.Population.Count()
	if counts[components.TeamRed] != 0 {
		t.Errorf("red count = %d after reset", counts[components.TeamRed])
	}
}
