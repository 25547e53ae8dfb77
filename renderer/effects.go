package renderer

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skirmish/components"
)

// DrawEffects renders hit flashes and projectiles in flight.
func (r *BattlefieldRenderer) DrawEffects(p *Presenter) {
	for _, fx := range p.Effects() {
		fade := float32(fx.Fade())
		sx, sy := r.cam.WorldToScreen(float32(fx.Pos.X), float32(fx.Pos.Y))

		color := effectColor(fx.Name)
		color.A = uint8(fade * float32(color.A))

		// Grow while fading
		size := r.cam.Scale(0.3) * (1.5 - fade*0.5)
		if size < 2 {
			size = 2
		}
		rl.DrawCircle(int32(sx), int32(sy), size, color)
	}

	for _, pr := range p.Projectiles() {
		at := pr.Position()
		sx, sy := r.cam.WorldToScreen(float32(at.X), float32(at.Y))
		size := r.cam.Scale(0.12)
		if size < 2 {
			size = 2
		}
		rl.DrawCircle(int32(sx), int32(sy), size, projectileColor(pr.Kind))
	}
}

func effectColor(name string) rl.Color {
	switch {
	case strings.HasPrefix(name, "knight"):
		// Steel
		return rl.Color{R: 230, G: 230, B: 240, A: 220}
	case strings.HasPrefix(name, "cowboy"):
		// Muzzle orange
		return rl.Color{R: 255, G: 150, B: 50, A: 200}
	}
	return rl.Color{R: 255, G: 240, B: 160, A: 180}
}

func projectileColor(kind components.Kind) rl.Color {
	if kind == components.KindCowboy {
		return rl.Color{R: 250, G: 210, B: 80, A: 255}
	}
	return rl.Color{R: 190, G: 150, B: 100, A: 255}
}
