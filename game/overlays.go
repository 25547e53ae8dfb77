package game

import "github.com/pthm-cable/skirmish/ui"

// drawActiveOverlays renders all enabled battlefield overlays beneath the units.
func (g *Game) drawActiveOverlays() {
	sim := g.activeSim()
	field := g.field
	if g.mode == ModeEdit {
		field = g.editorField
	}

	if g.overlays.IsEnabled(ui.OverlayRanges) {
		field.DrawRanges(sim)
	}
	if g.mode != ModeBattle {
		return
	}
	if g.overlays.IsEnabled(ui.OverlayTargets) {
		field.DrawTargets(sim)
	}
	if g.overlays.IsEnabled(ui.OverlayVelocity) {
		field.DrawVelocities(sim, false)
	}
	if g.overlays.IsEnabled(ui.OverlayAvoidance) {
		field.DrawVelocities(sim, true)
	}
}
