package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

// ApplyDamage subtracts amount from the health of the unit at e. When
// health reaches zero the unit dies: health is clamped to zero, the death
// listener is notified and the kind's death policy runs. Stale handles and
// units that are already dead are ignored, so a unit dies at most once.
// Negative amounts are not supported.
func (s *Sim) ApplyDamage(e ecs.Entity, dmg components.DamageType, amount float64) {
	unit, ok := s.Population.Resolve(e)
	if !ok || !unit.Alive() {
		return
	}

	unit.Health -= amount
	if unit.Health > 0 {
		return
	}
	unit.Health = 0
	s.kill(e, unit, dmg)
}

// kill moves a unit into Dead and runs its death policy.
func (s *Sim) kill(e ecs.Entity, unit *components.Unit, dmg components.DamageType) {
	from := unit.State
	unit.State = components.StateDead
	unit.StateTime = 0
	unit.Target = ecs.Entity{}
	s.Observer.OnStateChange(e, from, components.StateDead)

	info, ok := s.Registry.Lookup(unit.Kind)
	if ok {
		s.Presenter.PlayAnimation(e, info.Animations.Death, false)
	}
	s.Deaths.OnUnitDeath(e, unit, dmg)

	if !ok {
		s.free(e)
		return
	}
	switch info.Death {
	case DeathFreeze:
		// The corpse stays in the world, skipped by live queries and Step.
	default:
		s.free(e)
	}
}

// attack runs the attack effect of the unit at e against its current target.
func (s *Sim) attack(e ecs.Entity, from r2.Vec, unit *components.Unit, info *UnitInfo) {
	target := unit.Target
	_, tpos, ok := s.Population.ResolveLive(target)
	if !ok {
		return
	}
	at := tpos.Planar()

	switch info.Attack {
	case AttackMelee:
		s.Presenter.SpawnEffect(info.Name+"_hit", at)
	case AttackProjectile:
		s.Presenter.SpawnProjectile(info.Kind, from, at, info.ProjectileSpeed)
	default:
		return
	}

	s.Observer.OnAttack(e, target, info.Damage)
	s.ApplyDamage(target, components.DamagePhysical, info.Damage)
}
