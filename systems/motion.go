package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

// MotionParams tunes the integrator and the Idle/Move hysteresis.
type MotionParams struct {
	MinSpeed       float64 // floor for any non-zero speed
	ShuffleSpeed   float64 // below this a unit is settled and stops
	MoveEnterSpeed float64 // Idle leaves for Move above this speed
}

// Integrate applies the direct-velocity policy: the avoidance-adjusted
// desired velocity becomes the velocity, clamped to maxSpeed. Speeds below
// ShuffleSpeed snap to zero so an idle unit never drifts. Other speeds are
// raised to at least MinSpeed (never above maxSpeed). Position advances by
// velocity*dt on the ground plane only.
func Integrate(pos *components.Position, m *components.Motion, desired r2.Vec, maxSpeed, dt float64, p MotionParams) {
	m.Desired = desired

	v := clampSpeed(desired, maxSpeed)
	speed := r2.Norm(v)
	switch {
	case speed < p.ShuffleSpeed || speed == 0:
		v = r2.Vec{}
	case speed < p.MinSpeed:
		v = withSpeed(v, math.Min(p.MinSpeed, maxSpeed))
	}
	m.Velocity = v

	pos.X += v.X * dt
	pos.Y += v.Y * dt
}

// faceToward flips the facing sign to point along dx. Small dx keeps the
// current facing.
func faceToward(f *components.Facing, dx float64) {
	const deadZone = 1e-3
	if math.Abs(dx) < deadZone {
		return
	}
	mag := math.Abs(f.ScaleX)
	if mag == 0 {
		mag = 1
	}
	f.ScaleX = math.Copysign(mag, dx)
}
