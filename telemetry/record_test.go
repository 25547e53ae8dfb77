package telemetry

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/systems"
)

func spawnTowers(t *testing.T, n int) []ecs.Entity {
	t.Helper()
	reg := systems.NewUnitRegistry()
	if err := reg.Register(systems.UnitInfo{Kind: components.KindTower, Health: 10, Size: 1, Static: true}); err != nil {
		t.Fatal(err)
	}
	sim := systems.NewSim(reg, systems.Params{}, 1)
	out := make([]ecs.Entity, n)
	for i := range out {
		e, err := sim.Spawn(components.KindTower, components.TeamRed, r2.Vec{X: float64(i)})
		if err != nil {
			t.Fatal(err)
		}
		out[i] = e
	}
	return out
}

func TestRecordBook(t *testing.T) {
	es := spawnTowers(t, 3)
	a, b, c := es[0], es[1], es[2]
	red, blue := components.TeamRed, components.TeamBlue

	book := NewRecordBook()
	book.Record(NewSpawnEvent(0, a, red, components.KindKnight))
	book.Record(NewSpawnEvent(0, b, blue, components.KindArcher))
	book.Record(NewSpawnEvent(5, c, blue, components.KindCowboy))
	book.Record(NewSpawnEvent(6, c, blue, components.KindCowboy)) // duplicate ignored

	book.Record(NewAttackEvent(10, a, red, components.KindKnight, b, blue, 2))
	book.Record(NewAttackEvent(20, c, blue, components.KindCowboy, b, blue, 1))
	book.Record(NewAttackEvent(30, a, red, components.KindKnight, b, blue, 2))
	book.Record(NewDeathEvent(30, b, blue, components.KindArcher))
	book.Record(NewDeathEvent(31, b, blue, components.KindArcher)) // already dead

	if book.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", book.Count())
	}

	ra := book.Get(a)
	if ra.Attacks != 2 || ra.DamageDealt != 4 || ra.Kills != 1 {
		t.Errorf("attacker record = %+v", ra)
	}
	rb := book.Get(b)
	if rb.Alive() || rb.DeathTick != 30 || rb.DamageTaken != 5 {
		t.Errorf("victim record = %+v", rb)
	}
	if rc := book.Get(c); rc.SpawnTick != 5 || rc.Kills != 0 || !rc.Alive() {
		t.Errorf("third record = %+v", rc)
	}

	top := book.Top(2)
	if len(top) != 2 || top[0].Entity != a || top[1].Entity != c {
		t.Errorf("Top(2) ranked %v, %v", top[0].Entity, top[1].Entity)
	}

	all := book.All()
	if all[0].Entity != a || all[2].Entity != c {
		t.Error("All() not in spawn order")
	}

	book.Reset()
	if book.Count() != 0 || book.Get(a) != nil {
		t.Error("Reset kept records")
	}
}
