package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

// TeamFilter restricts population queries to one team.
type TeamFilter = components.Team

// AnyTeam makes a population query visit every team.
const AnyTeam TeamFilter = components.TeamUnknown

// UnitVisitor is called for each visited unit. Returning false stops the
// iteration. Visitors must not add or remove entities.
type UnitVisitor func(e ecs.Entity, pos *components.Position, u *components.Unit) bool

// Population gives read access to the units stored in a world.
type Population struct {
	world     *ecs.World
	filter    *ecs.Filter3[components.Position, components.Motion, components.Unit]
	posMap    *ecs.Map[components.Position]
	motionMap *ecs.Map[components.Motion]
	unitMap   *ecs.Map[components.Unit]
}

// NewPopulation creates a population view over w.
func NewPopulation(w *ecs.World) *Population {
	return &Population{
		world:     w,
		filter:    ecs.NewFilter3[components.Position, components.Motion, components.Unit](w),
		posMap:    ecs.NewMap[components.Position](w),
		motionMap: ecs.NewMap[components.Motion](w),
		unitMap:   ecs.NewMap[components.Unit](w),
	}
}

// ForEachUnit visits every unit on team, dead or alive. AnyTeam visits all.
func (p *Population) ForEachUnit(team TeamFilter, fn UnitVisitor) {
	query := p.filter.Query()
	for query.Next() {
		pos, _, u := query.Get()
		if team != AnyTeam && u.Team != team {
			continue
		}
		if !fn(query.Entity(), pos, u) {
			query.Close()
			return
		}
	}
}

// ForEachLiveUnit is ForEachUnit restricted to units with health above zero.
func (p *Population) ForEachLiveUnit(team TeamFilter, fn UnitVisitor) {
	p.ForEachUnit(team, func(e ecs.Entity, pos *components.Position, u *components.Unit) bool {
		if !u.Alive() {
			return true
		}
		return fn(e, pos, u)
	})
}

// Resolve looks up a weak unit handle. Handles whose generation no longer
// matches a live entity resolve to false and are never dereferenced.
func (p *Population) Resolve(e ecs.Entity) (*components.Unit, bool) {
	if e == (ecs.Entity{}) || !p.world.Alive(e) || !p.unitMap.Has(e) {
		return nil, false
	}
	return p.unitMap.Get(e), true
}

// ResolveLive is Resolve that also rejects dead units.
func (p *Population) ResolveLive(e ecs.Entity) (*components.Unit, *components.Position, bool) {
	u, ok := p.Resolve(e)
	if !ok || !u.Alive() {
		return nil, nil, false
	}
	return u, p.posMap.Get(e), true
}

// Count returns the number of live units on each team.
func (p *Population) Count() [components.TeamCount]int {
	var counts [components.TeamCount]int
	p.ForEachLiveUnit(AnyTeam, func(_ ecs.Entity, _ *components.Position, u *components.Unit) bool {
		if int(u.Team) < len(counts) {
			counts[u.Team]++
		}
		return true
	})
	return counts
}

// CollectObstacles appends an avoidance Agent to dst for every live
// teammate of self within radiusSq, up to limit entries. Extra neighbors
// are dropped.
func (p *Population) CollectObstacles(self ecs.Entity, dst []Agent, radiusSq float64, limit int) []Agent {
	selfUnit, ok := p.Resolve(self)
	if !ok {
		return dst
	}
	center := p.posMap.Get(self).Planar()
	start := len(dst)

	query := p.filter.Query()
	for query.Next() {
		pos, motion, u := query.Get()
		if u.Team != selfUnit.Team || !u.Alive() {
			continue
		}
		e := query.Entity()
		if e == self {
			continue
		}
		at := pos.Planar()
		if distanceSq(center, at) > radiusSq {
			continue
		}
		if len(dst)-start >= limit {
			query.Close()
			break
		}
		dst = append(dst, Agent{
			Position: at,
			Velocity: motion.Velocity,
			Radius:   u.Size,
			MaxSpeed: 1,
		})
	}
	return dst
}

// closest returns the nearest live unit on team to at, skipping exclude.
// Only strictly closer candidates replace the current best, so among equal
// distances the first unit visited wins.
func (p *Population) closest(at r2.Vec, team TeamFilter, exclude ecs.Entity) (ecs.Entity, float64, bool) {
	var best ecs.Entity
	bestSq := 0.0
	found := false
	p.ForEachLiveUnit(team, func(e ecs.Entity, pos *components.Position, _ *components.Unit) bool {
		if e == exclude {
			return true
		}
		d := distanceSq(at, pos.Planar())
		if !found || d < bestSq {
			best, bestSq, found = e, d, true
		}
		return true
	})
	return best, bestSq, found
}
