package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

// Conditions are the per-tick inputs to the unit state table.
type Conditions struct {
	Dead      bool // health reached zero
	HasTarget bool // a live target is held
	InRange   bool // the target is within attack range
	Moving    bool // speed above the Move entry threshold
	Settled   bool // speed below the shuffle threshold
	TimerDone bool // the Reload or Attack timer expired
}

// NextState evaluates the transition table for one tick. Every state and
// condition combination maps to exactly one state.
//
// Idle and Move use separate speed thresholds: Idle leaves once Moving,
// Move only returns once Settled. A settled Move goes straight to Reload
// when its target is already in range.
func NextState(state components.State, c Conditions) components.State {
	if state == components.StateDead || c.Dead {
		return components.StateDead
	}

	needsMove := c.HasTarget && !c.InRange

	switch state {
	case components.StateIdle:
		switch {
		case c.Moving, needsMove:
			return components.StateMove
		case c.HasTarget:
			return components.StateReload
		}
		return components.StateIdle

	case components.StateMove:
		if !c.Settled || needsMove {
			return components.StateMove
		}
		if c.HasTarget {
			return components.StateReload
		}
		return components.StateIdle

	case components.StateReload:
		if !c.TimerDone {
			return components.StateReload
		}
		if c.HasTarget && c.InRange {
			return components.StateAttack
		}
		return components.StateIdle

	case components.StateAttack:
		if !c.TimerDone {
			return components.StateAttack
		}
		if c.HasTarget {
			return components.StateReload
		}
		return components.StateIdle
	}

	// Out-of-range values recover to Idle.
	return components.StateIdle
}

// updateUnit runs one tick of the state machine for e.
func (s *Sim) updateUnit(e ecs.Entity, dt float64) {
	pos, motion, facing, unit := s.units.Get(e)
	if !unit.Alive() {
		return
	}
	info, ok := s.Registry.Lookup(unit.Kind)
	if !ok || info.Static {
		return
	}

	unit.StateTime += dt
	if unit.TargetCooldown > 0 {
		unit.TargetCooldown = math.Max(0, unit.TargetCooldown-dt)
	}

	s.Timer.StartPhase(PhaseTargeting)
	rangeSq := info.Range * info.Range
	targetPos, hasTarget := s.Population.UpdateTarget(e, unit, rangeSq, s.params.Targeting)
	self := pos.Planar()
	inRange := hasTarget && distanceSq(self, targetPos) <= rangeSq

	s.Timer.StartPhase(PhaseBehavior)
	c := Conditions{HasTarget: hasTarget, InRange: inRange}

	switch unit.State {
	case components.StateIdle, components.StateMove:
		var preferred r2.Vec
		if hasTarget && !inRange {
			preferred = r2.Scale(info.Speed, direction(self, targetPos))
		}
		s.obstacles = s.Population.CollectObstacles(e, s.obstacles[:0], s.neighborSq, s.params.MaxObstacles)
		agent := Agent{
			Position:          self,
			Velocity:          motion.Velocity,
			PreferredVelocity: preferred,
			Radius:            unit.Size,
			MaxSpeed:          info.Speed,
		}
		desired := ComputeAvoidanceVelocity(agent, s.obstacles, s.params.TimeHorizon)
		Integrate(pos, motion, desired, info.Speed, dt, s.params.Motion)

		speed := motion.Speed()
		c.Moving = speed > s.params.Motion.MoveEnterSpeed
		c.Settled = speed < s.params.Motion.ShuffleSpeed
		faceToward(facing, motion.Velocity.X)

	case components.StateReload:
		motion.Velocity = r2.Vec{}
		c.TimerDone = unit.StateTime >= unit.Cooldown
		if hasTarget {
			faceToward(facing, targetPos.X-self.X)
		}

	case components.StateAttack:
		motion.Velocity = r2.Vec{}
		c.TimerDone = unit.StateTime >= info.AttackDuration
	}

	if next := NextState(unit.State, c); next != unit.State {
		s.setState(e, pos, unit, info, next)
	}
}

// setState performs a transition and its entry effects. state_time always
// restarts at zero.
func (s *Sim) setState(e ecs.Entity, pos *components.Position, unit *components.Unit, info *UnitInfo, next components.State) {
	from := unit.State
	unit.State = next
	unit.StateTime = 0
	s.Observer.OnStateChange(e, from, next)

	switch next {
	case components.StateIdle:
		s.Presenter.PlayAnimation(e, info.Animations.Idle, true)
	case components.StateMove:
		s.Presenter.PlayAnimation(e, info.Animations.Move, true)
	case components.StateReload:
		unit.Cooldown = s.drawCooldown(info)
		s.Presenter.PlayAnimation(e, info.Animations.Reload, false)
	case components.StateAttack:
		s.attack(e, pos.Planar(), unit, info)
		s.Presenter.PlayAnimation(e, info.Animations.Attack, false)
	}
}
