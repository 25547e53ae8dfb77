// Package renderer draws the battlefield with raylib and keeps the
// presentation state the simulation reports through its notifications.
package renderer

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

// Presentation timings in seconds.
const (
	EffectLifetime = 0.35
	ClipLength     = 0.5 // length of a one-shot animation clip
)

// Animation is the clip currently playing on a unit.
type Animation struct {
	Name    string
	Loop    bool
	Elapsed float64
}

// Progress returns how far a one-shot clip has played in [0, 1].
// Looping clips report their phase within the current cycle.
func (a Animation) Progress() float64 {
	if a.Loop {
		cycles := a.Elapsed / ClipLength
		return cycles - float64(int(cycles))
	}
	if a.Elapsed >= ClipLength {
		return 1
	}
	return a.Elapsed / ClipLength
}

// Finished reports whether a one-shot clip has played through.
func (a Animation) Finished() bool {
	return !a.Loop && a.Elapsed >= ClipLength
}

// Effect is a short-lived visual at a fixed position.
type Effect struct {
	Name string
	Pos  r2.Vec
	Age  float64
}

// Fade returns the remaining visibility in [0, 1].
func (e Effect) Fade() float64 {
	f := 1 - e.Age/EffectLifetime
	if f < 0 {
		return 0
	}
	return f
}

// Projectile is a cosmetic shot travelling between two points. Damage has
// already been applied when it is spawned.
type Projectile struct {
	Kind      components.Kind
	From, To  r2.Vec
	Speed     float64
	Travelled float64
}

// Distance returns the flight length.
func (p Projectile) Distance() float64 {
	return r2.Norm(r2.Sub(p.To, p.From))
}

// Arrived reports whether the projectile reached its destination.
func (p Projectile) Arrived() bool {
	return p.Speed <= 0 || p.Travelled >= p.Distance()
}

// Position returns the current location along the flight path.
func (p Projectile) Position() r2.Vec {
	d := p.Distance()
	if d == 0 || p.Arrived() {
		return p.To
	}
	return r2.Add(p.From, r2.Scale(p.Travelled/d, r2.Sub(p.To, p.From)))
}

// Presenter records presentation notifications from the simulation and
// advances them on the frame clock. It holds no raylib resources.
type Presenter struct {
	anims       map[ecs.Entity]Animation
	effects     []Effect
	projectiles []Projectile
}

// NewPresenter creates an empty presenter.
func NewPresenter() *Presenter {
	return &Presenter{anims: make(map[ecs.Entity]Animation)}
}

// PlayAnimation starts a clip on a unit, replacing the current one.
func (p *Presenter) PlayAnimation(e ecs.Entity, name string, loop bool) {
	p.anims[e] = Animation{Name: name, Loop: loop}
}

// SpawnEffect starts an effect at pos.
func (p *Presenter) SpawnEffect(name string, pos r2.Vec) {
	p.effects = append(p.effects, Effect{Name: name, Pos: pos})
}

// SpawnProjectile launches a cosmetic projectile.
func (p *Presenter) SpawnProjectile(kind components.Kind, from, to r2.Vec, speed float64) {
	p.projectiles = append(p.projectiles, Projectile{Kind: kind, From: from, To: to, Speed: speed})
}

// Update advances clips, effects and projectiles by dt seconds and drops
// whatever has expired.
func (p *Presenter) Update(dt float64) {
	for e, a := range p.anims {
		a.Elapsed += dt
		p.anims[e] = a
	}

	effects := p.effects[:0]
	for _, fx := range p.effects {
		fx.Age += dt
		if fx.Age < EffectLifetime {
			effects = append(effects, fx)
		}
	}
	p.effects = effects

	shots := p.projectiles[:0]
	for _, pr := range p.projectiles {
		pr.Travelled += pr.Speed * dt
		if !pr.Arrived() {
			shots = append(shots, pr)
		}
	}
	p.projectiles = shots
}

// Animation returns the clip playing on e.
func (p *Presenter) Animation(e ecs.Entity) (Animation, bool) {
	a, ok := p.anims[e]
	return a, ok
}

// Prune forgets clips of entities that no longer exist.
func (p *Presenter) Prune(alive func(ecs.Entity) bool) {
	for e := range p.anims {
		if !alive(e) {
			delete(p.anims, e)
		}
	}
}

// Effects returns the live effects. The slice is reused by Update.
func (p *Presenter) Effects() []Effect {
	return p.effects
}

// Projectiles returns the projectiles in flight. The slice is reused by Update.
func (p *Presenter) Projectiles() []Projectile {
	return p.projectiles
}

// Reset drops all presentation state.
func (p *Presenter) Reset() {
	clear(p.anims)
	p.effects = p.effects[:0]
	p.projectiles = p.projectiles[:0]
}
