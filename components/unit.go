package components

import (
	"fmt"
	"strings"

	"github.com/mlange-42/ark/ecs"
)

// Team identifies a side. TeamUnknown is the neutral sentinel used by
// queries that accept any team.
type Team uint8

const (
	TeamRed Team = iota
	TeamBlue
	TeamUnknown
)

// TeamCount is the number of playable teams.
const TeamCount = int(TeamUnknown)

var teamNames = [...]string{"red", "blue", "unknown"}

// String returns the lowercase team name.
func (t Team) String() string {
	if int(t) < len(teamNames) {
		return teamNames[t]
	}
	return "unknown"
}

// Opposite returns the opposing team. TeamUnknown has no opponent.
func (t Team) Opposite() Team {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	default:
		return TeamUnknown
	}
}

// Direction returns the x sign a team faces at spawn: red attacks toward -x, blue toward +x.
func (t Team) Direction() float64 {
	if t == TeamBlue {
		return 1
	}
	return -1
}

// ParseTeam parses a team name.
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(s) {
	case "red":
		return TeamRed, nil
	case "blue":
		return TeamBlue, nil
	}
	return TeamUnknown, fmt.Errorf("unknown team %q", s)
}

// Kind is a unit type.
type Kind uint8

const (
	KindArcher Kind = iota
	KindKnight
	KindCowboy
	KindTower
	KindCount
)

var kindNames = [...]string{"archer", "knight", "cowboy", "tower"}

// String returns the unit type name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind parses a unit type name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return KindCount, fmt.Errorf("unknown unit type %q", s)
}

// State is a unit behavior state.
type State uint8

const (
	StateIdle State = iota
	StateMove
	StateReload
	StateAttack
	StateDead
	StateCount
)

var stateNames = [...]string{"idle", "move", "reload", "attack", "dead"}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "invalid"
}

// DamageType classifies incoming damage for death hooks.
type DamageType uint8

const (
	DamagePhysical DamageType = iota
)

// String returns the damage type name.
func (d DamageType) String() string {
	if d == DamagePhysical {
		return "physical"
	}
	return "unknown"
}

// Unit holds per-unit combat state.
type Unit struct {
	Kind      Kind
	Team      Team    // immutable after creation
	State     State
	StateTime float64 // seconds since the last transition
	Health    float64
	Size      float64 // collision radius
	Cooldown  float64 // reload length drawn when entering Reload

	// Target is a weak reference. It must be resolved through the world
	// every tick and never dereferenced once its generation is gone.
	Target         ecs.Entity
	TargetCooldown float64 // seconds before the target may be switched
}

// Alive reports whether the unit still takes part in the battle.
func (u *Unit) Alive() bool {
	return u.Health > 0 && u.State != StateDead
}

// HasTarget reports whether a target handle is set. The handle may be stale.
func (u *Unit) HasTarget() bool {
	return u.Target != (ecs.Entity{})
}
