package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/ui"
)

// activeSim returns the simulation shown in the current mode.
func (g *Game) activeSim() *systems.Sim {
	if g.mode == ModeEdit {
		return g.editor.Sim()
	}
	return g.battle.Sim()
}

func (g *Game) updateHovered() {
	if g.overPanel() {
		g.hovered = ecs.Entity{}
		return
	}
	g.hovered = g.hoveredUnit()
}

// hoveredUnit returns the unit whose body is under the cursor.
func (g *Game) hoveredUnit() ecs.Entity {
	pos := g.mouseWorld()
	if g.mode == ModeEdit {
		e, _ := g.editor.Hovered(pos)
		return e
	}
	return unitAt(g.battle.Sim(), pos)
}

// unitAt returns the closest unit to pos if pos lies within its body.
func unitAt(sim *systems.Sim, pos r2.Vec) ecs.Entity {
	e, ok := sim.Population.FindClosestUnit(pos)
	if !ok {
		return ecs.Entity{}
	}
	p, _, _, u, ok := sim.Get(e)
	if !ok || r2.Norm(r2.Sub(p.Planar(), pos)) > u.Size {
		return ecs.Entity{}
	}
	return e
}

// inspectorData snapshots the hovered unit for the inspector panel.
func (g *Game) inspectorData() (*ui.InspectorData, bool) {
	if g.hovered == (ecs.Entity{}) {
		return nil, false
	}
	sim := g.activeSim()
	pos, motion, _, u, ok := sim.Get(g.hovered)
	if !ok {
		return nil, false
	}
	info, ok := sim.Registry.Lookup(u.Kind)
	if !ok {
		return nil, false
	}

	data := &ui.InspectorData{Info: info, Unit: *u, Motion: *motion, Position: *pos}
	if tu, tpos, ok := sim.Population.ResolveLive(u.Target); ok {
		d := r2.Norm(r2.Sub(tpos.Planar(), pos.Planar()))
		data.Target = fmt.Sprintf("%s %s at %.1f", tu.Team, tu.Kind, d)
	}
	return data, true
}
