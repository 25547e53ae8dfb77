// Package systems runs the battle simulation: targeting, the unit state
// machine, motion with local avoidance, and damage.
package systems

import (
	"fmt"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
)

// Presenter receives fire-and-forget presentation notifications.
type Presenter interface {
	PlayAnimation(e ecs.Entity, name string, loop bool)
	SpawnEffect(name string, pos r2.Vec)
	SpawnProjectile(kind components.Kind, from, to r2.Vec, speed float64)
}

// NopPresenter ignores every notification.
type NopPresenter struct{}

func (NopPresenter) PlayAnimation(ecs.Entity, string, bool)                   {}
func (NopPresenter) SpawnEffect(string, r2.Vec)                               {}
func (NopPresenter) SpawnProjectile(components.Kind, r2.Vec, r2.Vec, float64) {}

// DeathListener is told exactly once about every unit death.
type DeathListener interface {
	OnUnitDeath(e ecs.Entity, u *components.Unit, dmg components.DamageType)
}

// Observer receives combat events for telemetry.
type Observer interface {
	OnAttack(attacker, target ecs.Entity, damage float64)
	OnStateChange(e ecs.Entity, from, to components.State)
}

type nopListener struct{}

func (nopListener) OnUnitDeath(ecs.Entity, *components.Unit, components.DamageType) {}

type nopObserver struct{}

func (nopObserver) OnAttack(ecs.Entity, ecs.Entity, float64)                     {}
func (nopObserver) OnStateChange(ecs.Entity, components.State, components.State) {}

// Clock supplies the frame delta and a global time-scale multiplier.
type Clock struct {
	DT        float64
	TimeScale float64
}

// Scaled returns the effective delta for this tick.
func (c Clock) Scaled() float64 {
	return c.DT * c.TimeScale
}

// Params holds the tunables the simulation reads every tick.
type Params struct {
	Motion         MotionParams
	Targeting      TargetParams
	NeighborRadius float64
	MaxObstacles   int
	TimeHorizon    float64
}

// ParamsFromConfig extracts simulation parameters from cfg.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Motion: MotionParams{
			MinSpeed:       cfg.Motion.MinSpeed,
			ShuffleSpeed:   cfg.Motion.ShuffleSpeed,
			MoveEnterSpeed: cfg.Motion.MoveEnterSpeed,
		},
		Targeting: TargetParams{
			SwitchCooldown: cfg.Targeting.SwitchCooldown,
			RetargetRatio:  cfg.Targeting.RetargetRatio,
		},
		NeighborRadius: cfg.Avoidance.NeighborRadius,
		MaxObstacles:   cfg.Avoidance.MaxObstacles,
		TimeHorizon:    cfg.Avoidance.TimeHorizon,
	}
}

// Sim owns a battle's unit population and advances it one tick at a time.
// Collaborators default to no-ops and must not be set to nil.
type Sim struct {
	World      *ecs.World
	Population *Population
	Registry   *UnitRegistry
	Clock      Clock

	Presenter Presenter
	Deaths    DeathListener
	Observer  Observer
	Timer     PhaseTimer

	params     Params
	neighborSq float64
	rng        *rand.Rand
	seed       uint64

	units     *ecs.Map4[components.Position, components.Motion, components.Facing, components.Unit]
	snapshot  []ecs.Entity
	obstacles []Agent
	pending   []ecs.Entity
	stepping  bool
	tick      int64
}

// NewSim creates an empty simulation.
func NewSim(reg *UnitRegistry, p Params, seed uint64) *Sim {
	if p.MaxObstacles <= 0 || p.MaxObstacles > MaxObstacles {
		p.MaxObstacles = MaxObstacles
	}
	s := &Sim{
		Registry:   reg,
		Clock:      Clock{DT: 1.0 / 60.0, TimeScale: 1},
		Presenter:  NopPresenter{},
		Deaths:     nopListener{},
		Observer:   nopObserver{},
		Timer:      nopTimer{},
		params:     p,
		neighborSq: p.NeighborRadius * p.NeighborRadius,
		seed:       seed,
	}
	s.Reset()
	return s
}

// Reset discards the population and reseeds the random source.
func (s *Sim) Reset() {
	s.World = ecs.NewWorld()
	s.Population = NewPopulation(s.World)
	s.units = ecs.NewMap4[components.Position, components.Motion, components.Facing, components.Unit](s.World)
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	s.snapshot = s.snapshot[:0]
	s.pending = s.pending[:0]
	s.tick = 0
}

// Params returns the active tunables.
func (s *Sim) Params() Params {
	return s.params
}

// Tick returns the number of completed steps since the last reset.
func (s *Sim) Tick() int64 {
	return s.tick
}

// Spawn creates a unit of kind for team at pos. It fails only when kind is
// not registered.
func (s *Sim) Spawn(kind components.Kind, team components.Team, pos r2.Vec) (ecs.Entity, error) {
	info, ok := s.Registry.Lookup(kind)
	if !ok {
		return ecs.Entity{}, fmt.Errorf("spawn %s: unit kind not registered", kind)
	}

	position := components.Position{X: pos.X, Y: pos.Y}
	motion := components.Motion{}
	facing := components.Facing{ScaleX: team.Direction(), ScaleY: 1}
	unit := components.Unit{
		Kind:   kind,
		Team:   team,
		State:  components.StateIdle,
		Health: info.Health,
		Size:   info.Size,
	}
	e := s.units.NewEntity(&position, &motion, &facing, &unit)
	s.Presenter.PlayAnimation(e, info.Animations.Idle, true)
	return e, nil
}

// Remove frees a unit without running its death hook, as editor removal does.
func (s *Sim) Remove(e ecs.Entity) bool {
	if _, ok := s.Population.Resolve(e); !ok {
		return false
	}
	s.free(e)
	return true
}

// Get returns the components of a live entity.
func (s *Sim) Get(e ecs.Entity) (*components.Position, *components.Motion, *components.Facing, *components.Unit, bool) {
	if _, ok := s.Population.Resolve(e); !ok {
		return nil, nil, nil, nil, false
	}
	pos, motion, facing, unit := s.units.Get(e)
	return pos, motion, facing, unit, true
}

// Step advances every unit once. Units are visited in the order of a
// snapshot taken at the start of the tick; each is re-validated before its
// update, so units killed earlier in the pass are skipped. Positions and
// health written by one unit are visible to units updated after it.
func (s *Sim) Step() {
	s.stepping = true

	s.snapshot = s.snapshot[:0]
	s.Population.ForEachUnit(AnyTeam, func(e ecs.Entity, _ *components.Position, u *components.Unit) bool {
		if u.State != components.StateDead {
			s.snapshot = append(s.snapshot, e)
		}
		return true
	})

	dt := s.Clock.Scaled()
	for _, e := range s.snapshot {
		if !s.World.Alive(e) {
			continue
		}
		s.updateUnit(e, dt)
	}

	s.Timer.StartPhase(PhaseCleanup)
	s.stepping = false
	s.flush()
	s.tick++
}

// free removes e now, or at the end of the current step when called from
// inside Step.
func (s *Sim) free(e ecs.Entity) {
	if s.stepping {
		s.pending = append(s.pending, e)
		return
	}
	if s.World.Alive(e) {
		s.World.RemoveEntity(e)
	}
}

func (s *Sim) flush() {
	for _, e := range s.pending {
		if s.World.Alive(e) {
			s.World.RemoveEntity(e)
		}
	}
	s.pending = s.pending[:0]
}

// drawCooldown picks a reload length from the kind's band.
func (s *Sim) drawCooldown(info *UnitInfo) float64 {
	if info.CooldownMax <= info.CooldownMin {
		return info.CooldownMin
	}
	return info.CooldownMin + s.rng.Float64()*(info.CooldownMax-info.CooldownMin)
}
