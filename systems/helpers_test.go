package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

var testParams = Params{
	Motion:         MotionParams{MinSpeed: 1, ShuffleSpeed: 0.1, MoveEnterSpeed: 0.25},
	Targeting:      TargetParams{SwitchCooldown: 1, RetargetRatio: 0},
	NeighborRadius: 5,
	MaxObstacles:   MaxObstacles,
	TimeHorizon:    1.5,
}

// fighter is a mobile melee kind used by the scenario tests.
var fighter = UnitInfo{
	Kind:           components.KindKnight,
	Speed:          5,
	Range:          2,
	Size:           0.5,
	Health:         5,
	Damage:         2,
	CooldownMin:    0.3,
	CooldownMax:    0.3,
	AttackDuration: 0.2,
	Attack:         AttackMelee,
	Death:          DeathFree,
}

// dummy stands still and never attacks.
var dummy = UnitInfo{
	Kind:   components.KindCowboy,
	Health: 5,
	Size:   0.5,
	Attack: AttackNone,
	Death:  DeathFree,
}

// post is a static target.
var post = UnitInfo{
	Kind:   components.KindTower,
	Health: 20,
	Size:   1,
	Attack: AttackNone,
	Death:  DeathFree,
	Static: true,
}

func newTestSim(t *testing.T, p Params, infos ...UnitInfo) *Sim {
	t.Helper()
	reg := NewUnitRegistry()
	for _, info := range infos {
		if err := reg.Register(info); err != nil {
			t.Fatalf("Register(%s): %v", info.Kind, err)
		}
	}
	s := NewSim(reg, p, 42)
	s.Clock = Clock{DT: 0.1, TimeScale: 1}
	return s
}

func spawn(t *testing.T, s *Sim, kind components.Kind, team components.Team, x, y float64) ecs.Entity {
	t.Helper()
	e, err := s.Spawn(kind, team, r2.Vec{X: x, Y: y})
	if err != nil {
		t.Fatalf("Spawn(%s): %v", kind, err)
	}
	return e
}

func mustUnit(t *testing.T, s *Sim, e ecs.Entity) *components.Unit {
	t.Helper()
	u, ok := s.Population.Resolve(e)
	if !ok {
		t.Fatalf("entity %v did not resolve", e)
	}
	return u
}

// recorder captures simulation callbacks.
type recorder struct {
	deaths      []ecs.Entity
	attacks     int
	transitions map[ecs.Entity][]components.State
}

func newRecorder() *recorder {
	return &recorder{transitions: make(map[ecs.Entity][]components.State)}
}

func (r *recorder) OnUnitDeath(e ecs.Entity, _ *components.Unit, _ components.DamageType) {
	r.deaths = append(r.deaths, e)
}

func (r *recorder) OnAttack(ecs.Entity, ecs.Entity, float64) {
	r.attacks++
}

func (r *recorder) OnStateChange(e ecs.Entity, _, to components.State) {
	r.transitions[e] = append(r.transitions[e], to)
}
