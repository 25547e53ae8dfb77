// Package telemetry provides battle statistics, bookmarks and performance tracking.
package telemetry

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventAttack
	EventDeath
	EventStateChange
)

// Event represents a single telemetry event.
type Event struct {
	Type   EventType
	Tick   int64
	Entity ecs.Entity
	Team   components.Team
	Kind   components.Kind

	// Optional fields depending on event type
	Target     ecs.Entity       // attacked unit
	TargetTeam components.Team  // attacked unit's team
	Amount     float64          // damage dealt
	From, To   components.State // state change
}

// NewSpawnEvent creates a spawn event.
func NewSpawnEvent(tick int64, e ecs.Entity, team components.Team, kind components.Kind) Event {
	return Event{Type: EventSpawn, Tick: tick, Entity: e, Team: team, Kind: kind}
}

// NewAttackEvent creates an attack event.
func NewAttackEvent(tick int64, attacker ecs.Entity, team components.Team, kind components.Kind, target ecs.Entity, targetTeam components.Team, damage float64) Event {
	return Event{
		Type:       EventAttack,
		Tick:       tick,
		Entity:     attacker,
		Team:       team,
		Kind:       kind,
		Target:     target,
		TargetTeam: targetTeam,
		Amount:     damage,
	}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int64, e ecs.Entity, team components.Team, kind components.Kind) Event {
	return Event{Type: EventDeath, Tick: tick, Entity: e, Team: team, Kind: kind}
}

// NewStateChangeEvent creates a state transition event.
func NewStateChangeEvent(tick int64, e ecs.Entity, team components.Team, from, to components.State) Event {
	return Event{Type: EventStateChange, Tick: tick, Entity: e, Team: team, From: from, To: to}
}
