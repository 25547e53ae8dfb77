// Package components defines ECS components for the battle simulation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Position is a ground-plane position. X and Y span the battlefield,
// Z is height above it and is ignored by every distance query.
type Position struct {
	X, Y, Z float64
}

// Planar returns the ground-plane projection of the position.
func (p Position) Planar() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Motion holds an entity's kinematic state.
type Motion struct {
	Velocity r2.Vec // velocity applied on the last integration
	Desired  r2.Vec // avoidance-adjusted velocity requested on the last tick
}

// Speed returns the magnitude of the applied velocity.
func (m *Motion) Speed() float64 {
	return r2.Norm(m.Velocity)
}

// Facing holds presentation transform data. The sign of ScaleX selects
// left or right facing.
type Facing struct {
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}
