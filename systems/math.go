package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Clamp functions for common value ranges

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

// Vector helpers

// clampSpeed scales v down so that its length does not exceed maxSpeed.
func clampSpeed(v r2.Vec, maxSpeed float64) r2.Vec {
	if maxSpeed <= 0 {
		return r2.Vec{}
	}
	speedSq := r2.Norm2(v)
	if speedSq > maxSpeed*maxSpeed {
		return r2.Scale(maxSpeed/math.Sqrt(speedSq), v)
	}
	return v
}

// withSpeed returns v rescaled to the given length. Zero vectors stay zero.
func withSpeed(v r2.Vec, speed float64) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(speed/n, v)
}

// distanceSq returns the squared planar distance between two points.
func distanceSq(a, b r2.Vec) float64 {
	return r2.Norm2(r2.Sub(a, b))
}

// direction returns the unit vector from a toward b, or zero if they coincide.
func direction(from, to r2.Vec) r2.Vec {
	d := r2.Sub(to, from)
	if r2.Norm2(d) == 0 {
		return r2.Vec{}
	}
	return r2.Unit(d)
}

// EaseOutQuad maps t in [0, 1] onto a decelerating curve.
func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}
