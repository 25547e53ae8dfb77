package systems

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Avoidance tuning. These are part of the solver's contract and are not
// read from config.
const (
	AvoidanceMargin             = 0.1  // added to the combined radius of a pair
	AvoidanceDegenerateDistSq   = 0.01 // pairs closer than this have no usable direction
	AvoidanceRepulsionGain      = 4.0  // repulsion scale as a multiple of max speed
	AvoidanceMinSpeedRatio      = 0.7  // floor for a repelled agent's speed
	AvoidanceRepulsionThreshold = 0.1  // repulsion magnitude that activates the floor
	MaxObstacles                = 64
)

// Agent is the solver's view of a unit. It is built fresh every tick.
type Agent struct {
	Position          r2.Vec
	Velocity          r2.Vec
	PreferredVelocity r2.Vec
	Radius            float64
	MaxSpeed          float64
}

// ComputeAvoidanceVelocity adjusts agent's preferred velocity away from
// nearby obstacles using a cubic repulsion falloff. It is a simplified
// velocity-obstacle scheme: timeHorizon is accepted for interface
// compatibility but no prediction is made. Obstacles past MaxObstacles are
// ignored. The result never exceeds agent.MaxSpeed.
func ComputeAvoidanceVelocity(agent Agent, obstacles []Agent, timeHorizon float64) r2.Vec {
	_ = timeHorizon

	result := clampSpeed(agent.PreferredVelocity, agent.MaxSpeed)
	if len(obstacles) == 0 {
		return result
	}
	if len(obstacles) > MaxObstacles {
		obstacles = obstacles[:MaxObstacles]
	}

	var repulsion r2.Vec
	for i := range obstacles {
		ob := &obstacles[i]
		toObstacle := r2.Sub(ob.Position, agent.Position)
		distSq := r2.Norm2(toObstacle)

		combined := agent.Radius + ob.Radius + AvoidanceMargin
		if distSq >= combined*combined || distSq <= AvoidanceDegenerateDistSq {
			continue
		}

		dist := r2.Norm(toObstacle)
		dir := r2.Scale(1/dist, toObstacle)

		strength := (combined - dist) / combined
		strength = strength * strength * strength

		repulsion = r2.Sub(repulsion, r2.Scale(strength*agent.MaxSpeed*AvoidanceRepulsionGain, dir))
	}

	result = r2.Add(result, repulsion)

	if r2.Norm(repulsion) > AvoidanceRepulsionThreshold {
		speed := r2.Norm(result)
		floor := agent.MaxSpeed * AvoidanceMinSpeedRatio
		if speed < floor && speed > AvoidanceDegenerateDistSq {
			result = r2.Scale(floor/speed, result)
		}
	}

	return clampSpeed(result, agent.MaxSpeed)
}
