package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/systems"
)

// DrawTargets draws a line from each live unit to its resolved target.
func (r *BattlefieldRenderer) DrawTargets(sim *systems.Sim) {
	sim.Population.ForEachLiveUnit(systems.AnyTeam, func(_ ecs.Entity, pos *components.Position, u *components.Unit) bool {
		if !u.HasTarget() {
			return true
		}
		_, tpos, ok := sim.Population.ResolveLive(u.Target)
		if !ok {
			return true
		}
		x0, y0 := r.cam.WorldToScreen(float32(pos.X), float32(pos.Y))
		x1, y1 := r.cam.WorldToScreen(float32(tpos.X), float32(tpos.Y))
		color := TeamColor(u.Team)
		color.A = 110
		rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, 1.5, color)
		return true
	})
}

// DrawRanges draws the attack range of every live unit that can attack.
func (r *BattlefieldRenderer) DrawRanges(sim *systems.Sim) {
	sim.Population.ForEachLiveUnit(systems.AnyTeam, func(_ ecs.Entity, pos *components.Position, u *components.Unit) bool {
		info, ok := r.reg.Lookup(u.Kind)
		if !ok || info.Attack == systems.AttackNone {
			return true
		}
		sx, sy := r.cam.WorldToScreen(float32(pos.X), float32(pos.Y))
		color := TeamColor(u.Team)
		color.A = 60
		rl.DrawCircleLines(int32(sx), int32(sy), r.cam.Scale(float32(info.Range+u.Size)), color)
		return true
	})
}

// DrawVelocities draws the applied velocity of every moving unit. With
// desired set, the avoidance-adjusted request is drawn alongside it.
func (r *BattlefieldRenderer) DrawVelocities(sim *systems.Sim, desired bool) {
	sim.Population.ForEachLiveUnit(systems.AnyTeam, func(e ecs.Entity, pos *components.Position, _ *components.Unit) bool {
		_, m, _, _, ok := sim.Get(e)
		if !ok {
			return true
		}
		from := rl.Vector2{}
		from.X, from.Y = r.cam.WorldToScreen(float32(pos.X), float32(pos.Y))

		arrow := func(vx, vy float64, color rl.Color) {
			if vx == 0 && vy == 0 {
				return
			}
			to := rl.Vector2{}
			to.X, to.Y = r.cam.WorldToScreen(float32(pos.X+vx), float32(pos.Y+vy))
			rl.DrawLineEx(from, to, 2, color)
			rl.DrawCircleV(to, 2, color)
		}
		arrow(m.Velocity.X, m.Velocity.Y, rl.Color{R: 120, G: 230, B: 120, A: 200})
		if desired {
			arrow(m.Desired.X, m.Desired.Y, rl.Color{R: 230, G: 200, B: 90, A: 200})
		}
		return true
	})
}
