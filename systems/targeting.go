package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

// FindClosestEnemy returns the nearest live unit on the team opposing e.
func (p *Population) FindClosestEnemy(e ecs.Entity) (ecs.Entity, bool) {
	u, ok := p.Resolve(e)
	if !ok {
		return ecs.Entity{}, false
	}
	enemy := u.Team.Opposite()
	if enemy == components.TeamUnknown {
		return ecs.Entity{}, false
	}
	target, _, found := p.closest(p.posMap.Get(e).Planar(), enemy, e)
	return target, found
}

// FindClosestUnit returns the nearest live unit of any team to pos.
// It serves placement and removal tooling, not combat.
func (p *Population) FindClosestUnit(pos r2.Vec) (ecs.Entity, bool) {
	target, _, found := p.closest(pos, AnyTeam, ecs.Entity{})
	return target, found
}

// TargetParams tunes target switching.
type TargetParams struct {
	SwitchCooldown float64 // seconds a freshly adopted target is kept
	RetargetRatio  float64 // 0 never abandons a live target
}

// UpdateTarget re-validates the target held by the unit at e and
// re-acquires when the handle is stale or the target died. A live target
// in range is always kept. A live target out of range is only replaced
// once the switch cooldown has expired and another enemy is closer than
// RetargetRatio times the current distance. Returns the resolved target
// position when a valid target is held.
func (p *Population) UpdateTarget(e ecs.Entity, u *components.Unit, rangeSq float64, tp TargetParams) (r2.Vec, bool) {
	self := p.posMap.Get(e).Planar()

	if _, tpos, ok := p.ResolveLive(u.Target); ok {
		at := tpos.Planar()
		dSq := distanceSq(self, at)
		if dSq <= rangeSq || tp.RetargetRatio <= 0 || u.TargetCooldown > 0 {
			return at, true
		}

		candidate, cSq, found := p.closest(self, u.Team.Opposite(), e)
		limit := tp.RetargetRatio * math.Sqrt(dSq)
		if found && candidate != u.Target && cSq < limit*limit {
			u.Target = candidate
			u.TargetCooldown = tp.SwitchCooldown
			return p.posMap.Get(candidate).Planar(), true
		}
		return at, true
	}

	u.Target = ecs.Entity{}
	candidate, found := p.FindClosestEnemy(e)
	if !found {
		return r2.Vec{}, false
	}
	u.Target = candidate
	u.TargetCooldown = tp.SwitchCooldown
	return p.posMap.Get(candidate).Planar(), true
}
