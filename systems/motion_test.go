package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

func TestIntegrate(t *testing.T) {
	p := MotionParams{MinSpeed: 1, ShuffleSpeed: 0.1, MoveEnterSpeed: 0.25}

	tests := []struct {
		name     string
		desired  r2.Vec
		maxSpeed float64
		wantVel  r2.Vec
	}{
		{"zero", r2.Vec{}, 5, r2.Vec{}},
		{"within band", r2.Vec{X: 3}, 5, r2.Vec{X: 3}},
		{"clamped to max", r2.Vec{Y: -8}, 5, r2.Vec{Y: -5}},
		{"shuffle snaps to zero", r2.Vec{X: 0.05}, 5, r2.Vec{}},
		{"raised to min speed", r2.Vec{X: 0.5}, 5, r2.Vec{X: 1}},
		{"min speed never exceeds max", r2.Vec{X: 0.5}, 0.6, r2.Vec{X: 0.6}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := components.Position{X: 1, Y: 2, Z: 3}
			var m components.Motion
			Integrate(&pos, &m, tc.desired, tc.maxSpeed, 0.5, p)

			if math.Abs(m.Velocity.X-tc.wantVel.X) > 1e-12 || math.Abs(m.Velocity.Y-tc.wantVel.Y) > 1e-12 {
				t.Errorf("velocity = %v, want %v", m.Velocity, tc.wantVel)
			}
			if m.Desired != tc.desired {
				t.Errorf("desired = %v, want %v", m.Desired, tc.desired)
			}
			wantX := 1 + m.Velocity.X*0.5
			wantY := 2 + m.Velocity.Y*0.5
			if pos.X != wantX || pos.Y != wantY {
				t.Errorf("position = (%v, %v), want (%v, %v)", pos.X, pos.Y, wantX, wantY)
			}
			if pos.Z != 3 {
				t.Errorf("z = %v, integration must stay on the ground plane", pos.Z)
			}
		})
	}
}

func TestIntegrateStopsWithinOneTick(t *testing.T) {
	p := MotionParams{MinSpeed: 1, ShuffleSpeed: 0.1}
	pos := components.Position{}
	m := components.Motion{Velocity: r2.Vec{X: 4, Y: 4}}

	Integrate(&pos, &m, r2.Vec{}, 5, 0.1, p)
	if m.Velocity != (r2.Vec{}) {
		t.Fatalf("velocity = %v after zero desired, want zero", m.Velocity)
	}

	before := pos
	for i := 0; i < 10; i++ {
		Integrate(&pos, &m, r2.Vec{}, 5, 0.1, p)
	}
	if pos != before {
		t.Errorf("unit drifted from %v to %v", before, pos)
	}
}

func TestFaceToward(t *testing.T) {
	f := components.Facing{ScaleX: -2, ScaleY: 1}
	faceToward(&f, 0.5)
	if f.ScaleX != 2 {
		t.Errorf("ScaleX = %v, want 2", f.ScaleX)
	}
	faceToward(&f, 0)
	if f.ScaleX != 2 {
		t.Errorf("ScaleX = %v, dead zone should keep facing", f.ScaleX)
	}
	faceToward(&f, -3)
	if f.ScaleX != -2 {
		t.Errorf("ScaleX = %v, want -2", f.ScaleX)
	}
}

func TestEaseOutQuad(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 0.75}, {1, 1}, {2, 1},
	}
	for _, tc := range tests {
		if got := EaseOutQuad(tc.in); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("EaseOutQuad(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
