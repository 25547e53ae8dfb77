package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/renderer"
	"github.com/pthm-cable/skirmish/ui"
)

const (
	editControls   = "[1-4] Unit  [0] None  [LMB] Place  [RMB] Remove  [Ctrl+S] Save  [Tab] Fight  [Wheel/Arrows] Camera"
	battleControls = "[Space] Pause  [Enter] Restart  [</>] Speed  [Tab] Edit  [Wheel/Arrows] Camera  [Home] Reset view"
)

// Draw renders the active mode.
func (g *Game) Draw() {
	rl.BeginDrawing()

	switch g.mode {
	case ModeEdit:
		g.editorField.DrawArena()
		g.drawActiveOverlays()
		g.editorField.DrawUnits(g.editor.Sim(), g.editorView, g.hovered)
		g.drawPlacementGhost()
	case ModeBattle:
		g.field.DrawArena()
		g.drawActiveOverlays()
		g.field.DrawUnits(g.battle.Sim(), g.presenter, g.hovered)
		g.field.DrawEffects(g.presenter)
	}

	g.drawUI()

	rl.EndDrawing()
}

// drawPlacementGhost previews the selected unit under the cursor.
func (g *Game) drawPlacementGhost() {
	kind, ok := g.editor.Selected()
	if !ok || g.overPanel() {
		return
	}
	info, _ := g.editor.Sim().Registry.Lookup(kind)
	pos := g.mouseWorld()
	sx, sy := g.camera.WorldToScreen(float32(pos.X), float32(pos.Y))

	color := renderer.TeamColor(TeamAt(pos))
	color.A = 90
	rl.DrawCircle(int32(sx), int32(sy), g.camera.Scale(float32(info.Size)), color)
}

func (g *Game) drawUI() {
	data := ui.HUDData{
		Title:     "Skirmish",
		Mode:      g.mode.String(),
		TimeScale: g.battle.Sim().Clock.TimeScale,
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
	}

	controls := ui.ControlsData{
		Editing:   g.mode == ModeEdit,
		Selected:  -1,
		TimeScale: float32(g.battle.Speed()),
		Paused:    g.paused,
		GameOver:  g.battle.State() == BattleGameOver,
	}
	for i, kind := range g.kinds {
		controls.Kinds = append(controls.Kinds, kind.String())
		if sel, ok := g.editor.Selected(); ok && sel == kind {
			controls.Selected = i
		}
	}

	if g.mode == ModeEdit {
		counts := g.editor.Setup().TeamCounts()
		data.RedAlive = counts[components.TeamRed]
		data.BlueAlive = counts[components.TeamBlue]
		data.Mode = fmt.Sprintf("edit (%d/%d units)", len(g.editor.Units()), g.cfg.Battle.MaxUnits)
	} else {
		r := g.battle.Outcome()
		data.Mode = g.battle.State().String()
		data.Tick = r.Ticks
		data.SimTime = r.SimTime
		data.RedAlive = r.Survivors[components.TeamRed]
		data.BlueAlive = r.Survivors[components.TeamBlue]
		data.Banner = banner(r)
	}

	g.hud.Draw(data, renderer.RedTeam, renderer.BlueTeam, int32(g.screenWidth))
	legend := battleControls
	if g.mode == ModeEdit {
		legend = editControls
	}
	g.hud.DrawControls(int32(g.screenHeight), legend)

	if g.overlays.IsEnabled(ui.OverlayPerf) && g.mode == ModeBattle {
		g.perfPanel.Draw(g.battle.Perf().Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayBattleStats) && g.mode == ModeBattle {
		g.statsPanel.Draw(g.battle.LastStats(), g.battle.Bookmarks())
	}
	if g.overlays.IsEnabled(ui.OverlayInspector) {
		if d, ok := g.inspectorData(); ok {
			g.inspector.Draw(d)
		}
	}

	g.applyControls(g.controls.Draw(controls, g.overlays))
}

// applyControls carries out what the user did in the controls panel.
func (g *Game) applyControls(res ui.ControlsResult) {
	if g.mode == ModeEdit && res.Selected >= 0 && res.Selected < len(g.kinds) {
		g.editor.Select(g.kinds[res.Selected])
	}
	if g.mode == ModeBattle && float64(res.TimeScale) != g.battle.Speed() {
		g.battle.SetSpeed(float64(res.TimeScale))
	}

	switch res.Action {
	case ui.ActionStartBattle:
		g.fight()
	case ui.ActionRestart:
		g.restart()
	case ui.ActionEdit:
		g.edit()
	case ui.ActionClearSetup:
		g.editor.Clear()
	case ui.ActionSaveSetup:
		g.saveSetup()
	}
}

// banner returns the game-over message for r, or "" while fighting.
func banner(r Result) string {
	switch {
	case !r.Decided:
		return ""
	case r.Draw():
		return "Draw!"
	default:
		return fmt.Sprintf("%s wins!", teamTitle(r.Winner))
	}
}

func teamTitle(t components.Team) string {
	switch t {
	case components.TeamRed:
		return "Red"
	case components.TeamBlue:
		return "Blue"
	}
	return "Nobody"
}
