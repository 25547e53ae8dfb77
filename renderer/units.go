package renderer

import (
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/camera"
	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/systems"
)

// Team palette.
var (
	RedTeam  = rl.Color{R: 220, G: 70, B: 60, A: 255}
	BlueTeam = rl.Color{R: 70, G: 120, B: 230, A: 255}
	Corpse   = rl.Color{R: 90, G: 90, B: 90, A: 200}
)

// TeamColor returns the display color of a team.
func TeamColor(t components.Team) rl.Color {
	switch t {
	case components.TeamRed:
		return RedTeam
	case components.TeamBlue:
		return BlueTeam
	}
	return rl.LightGray
}

// BattlefieldRenderer draws the arena and its units through a camera.
type BattlefieldRenderer struct {
	cam *camera.Camera
	reg *systems.UnitRegistry
}

// NewBattlefieldRenderer creates a renderer for units registered in reg.
func NewBattlefieldRenderer(cam *camera.Camera, reg *systems.UnitRegistry) *BattlefieldRenderer {
	return &BattlefieldRenderer{cam: cam, reg: reg}
}

// DrawArena draws the ground, the halfway line and the battlefield border.
func (r *BattlefieldRenderer) DrawArena() {
	rl.ClearBackground(rl.Color{R: 18, G: 22, B: 18, A: 255})

	c := r.cam
	x0, y0 := c.WorldToScreen(-c.WorldW/2, -c.WorldH/2)
	x1, y1 := c.WorldToScreen(c.WorldW/2, c.WorldH/2)
	rl.DrawRectangle(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), rl.Color{R: 42, G: 58, B: 38, A: 255})

	// Deployment halves: blue on the left, red on the right.
	mid, _ := c.WorldToScreen(0, 0)
	rl.DrawRectangle(int32(x0), int32(y0), int32(mid-x0), int32(y1-y0), rl.Color{R: 70, G: 120, B: 230, A: 18})
	rl.DrawRectangle(int32(mid), int32(y0), int32(x1-mid), int32(y1-y0), rl.Color{R: 220, G: 70, B: 60, A: 18})
	rl.DrawLine(int32(mid), int32(y0), int32(mid), int32(y1), rl.Color{R: 200, G: 200, B: 200, A: 60})
	rl.DrawRectangleLines(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), rl.Color{R: 120, G: 130, B: 110, A: 255})
}

// DrawUnits draws every unit in sim, corpses first. hovered, if set, gets a
// highlight ring.
func (r *BattlefieldRenderer) DrawUnits(sim *systems.Sim, p *Presenter, hovered ecs.Entity) {
	var live []ecs.Entity
	sim.Population.ForEachUnit(systems.AnyTeam, func(e ecs.Entity, _ *components.Position, u *components.Unit) bool {
		if u.Alive() {
			live = append(live, e)
			return true
		}
		r.drawUnit(sim, p, e)
		return true
	})
	for _, e := range live {
		r.drawUnit(sim, p, e)
	}

	if hovered != (ecs.Entity{}) {
		if pos, _, _, u, ok := sim.Get(hovered); ok {
			sx, sy := r.cam.WorldToScreen(float32(pos.X), float32(pos.Y))
			rl.DrawCircleLines(int32(sx), int32(sy), r.cam.Scale(float32(u.Size))+4, rl.Yellow)
		}
	}
}

func (r *BattlefieldRenderer) drawUnit(sim *systems.Sim, p *Presenter, e ecs.Entity) {
	pos, _, facing, u, ok := sim.Get(e)
	if !ok || !r.cam.IsVisible(float32(pos.X), float32(pos.Y), float32(u.Size)) {
		return
	}
	info, ok := r.reg.Lookup(u.Kind)
	if !ok {
		return
	}

	sx, sy := r.cam.WorldToScreen(float32(pos.X), float32(pos.Y))
	radius := r.cam.Scale(float32(u.Size))
	if radius < 3 {
		radius = 3
	}
	heading := float32(facing.Rotation)
	if facing.ScaleX < 0 {
		heading += math.Pi
	}

	color := TeamColor(u.Team)
	anim, _ := p.Animation(e)
	switch {
	case !u.Alive():
		color = Corpse
		if strings.HasSuffix(anim.Name, "_death") {
			color.A = uint8(200 - 120*anim.Progress())
		}
	case strings.HasSuffix(anim.Name, "_attack") && !anim.Finished():
		color = brighten(color, float32(1-anim.Progress())*0.6)
	}

	if info.Static {
		rl.DrawRectanglePro(
			rl.Rectangle{X: sx, Y: sy, Width: radius * 1.6, Height: radius * 1.6},
			rl.Vector2{X: radius * 0.8, Y: radius * 0.8}, 0, color,
		)
	} else {
		drawOrientedTriangle(sx, sy, heading, radius, color)
	}
	if !u.Alive() {
		return
	}

	if u.State == components.StateReload && u.Cooldown > 0 {
		frac := float32(u.StateTime / u.Cooldown)
		if frac > 1 {
			frac = 1
		}
		rl.DrawRing(rl.Vector2{X: sx, Y: sy}, radius+2, radius+4, -90, -90+360*frac, 24, rl.Color{R: 240, G: 220, B: 120, A: 160})
	}
	if info.Health > 0 {
		drawHealthBar(sx, sy-radius-8, radius*2, float32(u.Health/info.Health))
	}
}

// brighten blends c toward white by t in [0, 1].
func brighten(c rl.Color, t float32) rl.Color {
	lerp := func(v uint8) uint8 { return uint8(float32(v) + (255-float32(v))*t) }
	return rl.Color{R: lerp(c.R), G: lerp(c.G), B: lerp(c.B), A: c.A}
}

func drawHealthBar(cx, y, width, frac float32) {
	if width < 16 {
		width = 16
	}
	if frac < 0 {
		frac = 0
	}
	x := cx - width/2
	rl.DrawRectangle(int32(x), int32(y), int32(width), 4, rl.Color{R: 40, G: 40, B: 40, A: 220})

	fill := rl.Color{R: 100, G: 200, B: 100, A: 255}
	if frac < 0.3 {
		fill = rl.Color{R: 200, G: 100, B: 100, A: 255}
	} else if frac < 0.6 {
		fill = rl.Color{R: 200, G: 180, B: 100, A: 255}
	}
	rl.DrawRectangle(int32(x), int32(y), int32(width*frac), 4, fill)
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	front := rl.Vector2{X: x + cos*radius*1.5, Y: y + sin*radius*1.5}

	backAngle := float64(heading) + math.Pi*0.8
	backLeft := rl.Vector2{X: x + float32(math.Cos(backAngle))*radius, Y: y + float32(math.Sin(backAngle))*radius}

	backAngle = float64(heading) - math.Pi*0.8
	backRight := rl.Vector2{X: x + float32(math.Cos(backAngle))*radius, Y: y + float32(math.Sin(backAngle))*radius}

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, color)
	rl.DrawTriangleLines(front, backLeft, backRight, rl.White)
}
