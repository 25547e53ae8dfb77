package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Mode      string // "edit" or the battle state
	Tick      int64
	SimTime   float64
	TimeScale float64
	RedAlive  int
	BlueAlive int
	Banner    string // game-over message, empty while fighting
	FPS       int32
	Paused    bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData, red, blue rl.Color, screenW int32) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(fmt.Sprintf("Blue: %d", data.BlueAlive), 10, 35, 18, blue)
	rl.DrawText(fmt.Sprintf("Red: %d", data.RedAlive), 110, 35, 18, red)

	rl.DrawText(
		fmt.Sprintf("Mode: %s | Tick: %d | Time: %.1fs | Scale: %.2fx | FPS: %d",
			data.Mode, data.Tick, data.SimTime, data.TimeScale, data.FPS),
		10, 58, 16, rl.LightGray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 78, 16, rl.Yellow)
	}

	if data.Banner != "" {
		size := int32(36)
		w := rl.MeasureText(data.Banner, size)
		rl.DrawText(data.Banner, screenW/2-w/2, 90, size, rl.White)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	p.renderer.DrawPanel(x-6, y-6, 260, int32(62+14*len(telemetry.Phases)))

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  P95: %s", stats.AvgTickDuration.Round(time.Microsecond), stats.P95TickDuration.Round(time.Microsecond)), x, y, 12, rl.Yellow)
	y += 14
	rl.DrawText(fmt.Sprintf("TPS: %.0f  FPS: %.0f", stats.TicksPerSecond, stats.FPS), x, y, 12, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		name := phase
		if p.registry != nil {
			name = p.registry.GetName(phase)
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// BattleStatsPanel shows the latest telemetry window and recent bookmarks.
type BattleStatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewBattleStatsPanel creates a new battle stats panel.
func NewBattleStatsPanel(x, y, width int32) *BattleStatsPanel {
	return &BattleStatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (b *BattleStatsPanel) SetPosition(x, y int32) {
	b.x = x
	b.y = y
}

// Draw renders the panel. bookmarks are shown newest first.
func (b *BattleStatsPanel) Draw(stats telemetry.WindowStats, bookmarks []telemetry.Bookmark) {
	r := b.renderer
	lh := r.Theme.LineHeight
	shown := min(len(bookmarks), 5)

	r.DrawPanel(b.x, b.y, b.width, lh*(8+int32(shown))+r.Theme.Padding*2)

	x := b.x + r.Theme.Padding
	y := b.y + r.Theme.Padding
	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Window ending %.1fs", stats.SimTimeSec))
	y = r.DrawLabelValue(x, y, "Attacks", fmt.Sprintf("blue %d  red %d", stats.BlueAttacks, stats.RedAttacks))
	y = r.DrawLabelValue(x, y, "Damage", fmt.Sprintf("blue %.1f  red %.1f", stats.BlueDamage, stats.RedDamage))
	y = r.DrawLabelValue(x, y, "Deaths", fmt.Sprintf("blue %d  red %d", stats.BlueDeaths, stats.RedDeaths))
	y = r.DrawLabelValue(x, y, "HP mean", fmt.Sprintf("blue %.1f  red %.1f", stats.BlueHealthMean, stats.RedHealthMean))
	y = r.DrawLabelValue(x, y, "Leader", stats.Leader().String())

	y = r.DrawSectionHeader(x, y+4, "Bookmarks")
	for i := len(bookmarks) - 1; i >= len(bookmarks)-shown; i-- {
		bm := bookmarks[i]
		rl.DrawText(fmt.Sprintf("%6d %s", bm.Tick, bm.Description), x, y, r.Theme.FontSize, r.Theme.ValueColor)
		y += lh
	}
}
