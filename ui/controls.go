package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a request raised through the controls panel.
type Action int

const (
	ActionNone Action = iota
	ActionStartBattle
	ActionRestart
	ActionEdit
	ActionClearSetup
	ActionSaveSetup
)

// ControlsData is the viewer state the controls panel reflects.
type ControlsData struct {
	Editing   bool
	Kinds     []string // placeable unit types, in palette order
	Selected  int      // index into Kinds, -1 for none
	TimeScale float32
	Paused    bool
	GameOver  bool
}

// ControlsResult holds what the user changed this frame.
type ControlsResult struct {
	Action    Action
	Selected  int
	TimeScale float32
}

// MaxTimeScale is the upper end of the speed slider.
const MaxTimeScale = 4

// ControlsPanel renders the right-side controls: the unit palette or the
// battle buttons, plus the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the user's changes.
func (c *ControlsPanel) Draw(data ControlsData, overlays *OverlayRegistry) ControlsResult {
	res := ControlsResult{Selected: data.Selected, TimeScale: data.TimeScale}
	r := c.renderer
	padding := r.Theme.Padding

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	w := float32(c.width - padding*2)

	r.DrawPanel(c.x, c.y, c.width, c.height(data, overlays))

	if data.Editing {
		rl.DrawText("Place Units", int32(x), int32(y), 16, rl.White)
		y += 22
		for i, kind := range data.Kinds {
			label := fmt.Sprintf("%d  %s", i+1, kind)
			if i == data.Selected {
				label = "> " + label
			}
			if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, label) {
				res.Selected = i
			}
			y += 28
		}
		y += 6
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w/2 - 4, Height: 28}, "Clear") {
			res.Action = ActionClearSetup
		}
		if gui.Button(rl.Rectangle{X: x + w/2 + 4, Y: y, Width: w/2 - 4, Height: 28}, "Save") {
			res.Action = ActionSaveSetup
		}
		y += 34
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 30}, "Fight! [Tab]") {
			res.Action = ActionStartBattle
		}
		y += 40
	} else {
		rl.DrawText("Battle", int32(x), int32(y), 16, rl.White)
		y += 22
		rl.DrawText(fmt.Sprintf("Speed %.2fx", data.TimeScale), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 16
		res.TimeScale = gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: w, Height: 18}, "", "", data.TimeScale, 0, MaxTimeScale)
		y += 26
		restart := "Restart"
		if data.GameOver {
			restart = "Rematch"
		}
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w/2 - 4, Height: 28}, restart) {
			res.Action = ActionRestart
		}
		if gui.Button(rl.Rectangle{X: x + w/2 + 4, Y: y, Width: w/2 - 4, Height: 28}, "Edit [Tab]") {
			res.Action = ActionEdit
		}
		y += 38
	}

	c.drawOverlays(int32(x), int32(y), overlays)
	return res
}

func (c *ControlsPanel) height(data ControlsData, overlays *OverlayRegistry) int32 {
	r := c.renderer
	h := r.Theme.Padding * 2
	if data.Editing {
		h += 22 + int32(len(data.Kinds))*28 + 6 + 34 + 40
	} else {
		h += 22 + 16 + 26 + 38
	}
	for _, cat := range overlays.Categories() {
		h += r.Theme.LineHeight*(int32(len(overlays.ByCategory(cat)))+1) + 4
	}
	return h
}

func (c *ControlsPanel) drawOverlays(x, y int32, overlays *OverlayRegistry) int32 {
	r := c.renderer
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += r.Theme.LineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), c.width-r.Theme.Padding*2)
			y += r.Theme.LineHeight
		}
		y += 4
	}
	return y
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "combat":
		return "Combat"
	case "motion":
		return "Motion"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
