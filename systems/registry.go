package systems

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
)

// AttackStyle selects how a unit delivers damage.
type AttackStyle uint8

const (
	AttackNone AttackStyle = iota
	AttackMelee
	AttackProjectile
)

func (a AttackStyle) String() string {
	switch a {
	case AttackMelee:
		return "melee"
	case AttackProjectile:
		return "projectile"
	default:
		return "none"
	}
}

// ParseAttackStyle parses an attack style name. Empty means none.
func ParseAttackStyle(s string) (AttackStyle, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return AttackNone, nil
	case "melee":
		return AttackMelee, nil
	case "projectile":
		return AttackProjectile, nil
	}
	return AttackNone, fmt.Errorf("unknown attack style %q", s)
}

// DeathPolicy selects what happens to a unit's entity when it dies.
type DeathPolicy uint8

const (
	DeathFree   DeathPolicy = iota // remove from the world
	DeathFreeze                    // keep the corpse in the Dead state
)

func (d DeathPolicy) String() string {
	if d == DeathFreeze {
		return "freeze"
	}
	return "free"
}

// ParseDeathPolicy parses a death policy name. Empty means free.
func ParseDeathPolicy(s string) (DeathPolicy, error) {
	switch strings.ToLower(s) {
	case "", "free":
		return DeathFree, nil
	case "freeze":
		return DeathFreeze, nil
	}
	return DeathFree, fmt.Errorf("unknown death policy %q", s)
}

// AnimationSet names the presentation clips played on state entry.
type AnimationSet struct {
	Idle   string
	Move   string
	Reload string
	Attack string
	Death  string
}

// UnitInfo is the read-only record shared by every unit of a kind.
type UnitInfo struct {
	Kind            components.Kind
	Name            string
	Speed           float64
	Range           float64
	Size            float64
	Health          float64
	Damage          float64
	CooldownMin     float64
	CooldownMax     float64
	AttackDuration  float64
	Attack          AttackStyle
	ProjectileSpeed float64
	Death           DeathPolicy
	Static          bool
	Animations      AnimationSet
}

func defaultAnimations(name string) AnimationSet {
	return AnimationSet{
		Idle:   name + "_idle",
		Move:   name + "_move",
		Reload: name + "_reload",
		Attack: name + "_attack",
		Death:  name + "_death",
	}
}

// UnitInfoFromConfig converts a unit type config entry into a UnitInfo.
func UnitInfoFromConfig(uc config.UnitConfig) (UnitInfo, error) {
	kind, err := components.ParseKind(uc.Name)
	if err != nil {
		return UnitInfo{}, err
	}
	attack, err := ParseAttackStyle(uc.Attack)
	if err != nil {
		return UnitInfo{}, fmt.Errorf("unit %q: %w", uc.Name, err)
	}
	death, err := ParseDeathPolicy(uc.Death)
	if err != nil {
		return UnitInfo{}, fmt.Errorf("unit %q: %w", uc.Name, err)
	}
	return UnitInfo{
		Kind:            kind,
		Name:            uc.Name,
		Speed:           uc.Speed,
		Range:           uc.Range,
		Size:            uc.Size,
		Health:          uc.Health,
		Damage:          uc.Damage,
		CooldownMin:     uc.CooldownMin,
		CooldownMax:     uc.CooldownMax,
		AttackDuration:  uc.AttackDuration,
		Attack:          attack,
		ProjectileSpeed: uc.ProjectileSpeed,
		Death:           death,
		Static:          uc.Static,
		Animations:      defaultAnimations(uc.Name),
	}, nil
}

// UnitRegistry holds the UnitInfo for every known kind.
// A kind must be registered before any unit of that kind is spawned.
type UnitRegistry struct {
	infos [components.KindCount]*UnitInfo
	order []components.Kind
}

// NewUnitRegistry creates an empty registry.
func NewUnitRegistry() *UnitRegistry {
	return &UnitRegistry{}
}

// NewUnitRegistryFromConfig registers every unit type in units.
func NewUnitRegistryFromConfig(units []config.UnitConfig) (*UnitRegistry, error) {
	r := NewUnitRegistry()
	for _, uc := range units {
		info, err := UnitInfoFromConfig(uc)
		if err != nil {
			return nil, fmt.Errorf("building unit registry: %w", err)
		}
		if err := r.Register(info); err != nil {
			return nil, fmt.Errorf("building unit registry: %w", err)
		}
	}
	return r, nil
}

// Register adds a kind to the registry. Registering a kind twice is an error.
func (r *UnitRegistry) Register(info UnitInfo) error {
	if info.Kind >= components.KindCount {
		return fmt.Errorf("invalid unit kind %d", info.Kind)
	}
	if r.infos[info.Kind] != nil {
		return fmt.Errorf("unit kind %s already registered", info.Kind)
	}
	if info.CooldownMax < info.CooldownMin {
		return fmt.Errorf("unit kind %s: cooldown band [%v, %v] is inverted", info.Kind, info.CooldownMin, info.CooldownMax)
	}
	if info.Name == "" {
		info.Name = info.Kind.String()
	}
	stored := info
	r.infos[info.Kind] = &stored
	r.order = append(r.order, info.Kind)
	return nil
}

// Lookup returns the UnitInfo for kind.
func (r *UnitRegistry) Lookup(kind components.Kind) (*UnitInfo, bool) {
	if kind >= components.KindCount || r.infos[kind] == nil {
		return nil, false
	}
	return r.infos[kind], true
}

// All returns registered infos in registration order.
func (r *UnitRegistry) All() []*UnitInfo {
	out := make([]*UnitInfo, len(r.order))
	for i, k := range r.order {
		out[i] = r.infos[k]
	}
	return out
}

// Names returns registered kind names in registration order.
func (r *UnitRegistry) Names() []string {
	names := make([]string, len(r.order))
	for i, k := range r.order {
		names[i] = r.infos[k].Name
	}
	return names
}
