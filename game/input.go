package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/ui"
)

// minSpeed is the slowest speed reachable with the keyboard.
const minSpeed = 0.125

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.toggleMode()
	}

	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.overlays.HandleKeyPress(key)
		}
	}

	g.handleCameraInput()
	g.updateHovered()

	switch g.mode {
	case ModeEdit:
		g.handleEditorInput()
	case ModeBattle:
		g.handleBattleInput()
	}
}

func (g *Game) toggleMode() {
	if g.mode == ModeEdit {
		g.fight()
		return
	}
	g.edit()
}

// edit switches to the placement editor.
func (g *Game) edit() {
	if err := g.enterEditor(); err != nil {
		slog.Error("failed to open editor", "error", err)
	}
}

// restart fights the current setup again.
func (g *Game) restart() {
	if err := g.startBattle(); err != nil {
		slog.Error("failed to restart battle", "error", err)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.controls.SetPosition(int32(w)-panelWidth-panelMargin, panelMargin)
	g.inspector.SetPosition(int32(w)-panelWidth*2-panelMargin*2, panelMargin)
	g.statsPanel.SetPosition(panelMargin, int32(h)-230)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	panSpeed := float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Middle mouse drag
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// mouseWorld returns the battlefield point under the cursor.
func (g *Game) mouseWorld() r2.Vec {
	m := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(m.X, m.Y)
	return r2.Vec{X: float64(wx), Y: float64(wy)}
}

// overPanel reports whether the cursor is over the controls panel, where
// clicks belong to the UI rather than the battlefield.
func (g *Game) overPanel() bool {
	m := rl.GetMousePosition()
	return m.X >= g.screenWidth-panelWidth-panelMargin*2
}

func (g *Game) handleEditorInput() {
	for i, kind := range g.kinds {
		if i < 9 && rl.IsKeyPressed(rl.KeyOne+int32(i)) {
			g.editor.Select(kind)
		}
	}
	if rl.IsKeyPressed(rl.KeyZero) {
		g.editor.Select(components.KindCount)
	}
	if rl.IsKeyDown(rl.KeyLeftControl) && rl.IsKeyPressed(rl.KeyS) {
		g.saveSetup()
	}

	if g.overPanel() {
		return
	}
	pos := g.mouseWorld()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.editor.Place(pos)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.editor.RemoveAt(pos)
		g.hovered = g.hoveredUnit()
	}
}

func (g *Game) handleBattleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		g.restart()
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.battle.SetSpeed(max(g.battle.Speed()*0.5, minSpeed))
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.battle.SetSpeed(min(max(g.battle.Speed(), minSpeed)*2, ui.MaxTimeScale))
	}
}
