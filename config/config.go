// Package config provides configuration loading and access for the battle simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Battle    BattleConfig    `yaml:"battle"`
	Motion    MotionConfig    `yaml:"motion"`
	Avoidance AvoidanceConfig `yaml:"avoidance"`
	Targeting TargetingConfig `yaml:"targeting"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Units     []UnitConfig    `yaml:"units"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the windowed viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds battlefield dimensions in world units.
// The battlefield is centered on the origin; the line x=0 splits the teams.
type WorldConfig struct {
	TileSize  float64 `yaml:"tile_size"`
	TileWidth int     `yaml:"tile_width"`
	Height    float64 `yaml:"height"`
}

// BattleConfig holds battle lifecycle parameters.
type BattleConfig struct {
	DT              float64      `yaml:"dt"`                // seconds per tick
	SlowMotionScale float64      `yaml:"slow_motion_scale"` // time scale at the start of game over
	FreezeTime      float64      `yaml:"freeze_time"`       // seconds for the slow motion to reach a standstill
	MaxUnits        int          `yaml:"max_units"`         // editor placement limit
	DefaultSetup    []SetupEntry `yaml:"default_setup"`
}

// SetupEntry places one unit in a battle setup.
type SetupEntry struct {
	Unit string  `yaml:"unit"`
	Team string  `yaml:"team"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// MotionConfig holds integrator tuning.
type MotionConfig struct {
	MinSpeed       float64 `yaml:"min_speed"`        // floor for any non-zero speed
	ShuffleSpeed   float64 `yaml:"shuffle_speed"`    // below this a unit is considered settled
	MoveEnterSpeed float64 `yaml:"move_enter_speed"` // Idle->Move threshold (hysteresis upper bound)
}

// AvoidanceConfig holds obstacle collection parameters.
type AvoidanceConfig struct {
	NeighborRadius float64 `yaml:"neighbor_radius"` // same-team units closer than this are obstacles
	MaxObstacles   int     `yaml:"max_obstacles"`
	TimeHorizon    float64 `yaml:"time_horizon"`
}

// TargetingConfig holds target acquisition parameters.
type TargetingConfig struct {
	SwitchCooldown float64 `yaml:"switch_cooldown"` // seconds before a fresh target may be replaced
	RetargetRatio  float64 `yaml:"retarget_ratio"`  // 0 disables switching away from a live target
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// UnitConfig defines a unit type. Kind-specific behavior is selected by Attack and Death.
type UnitConfig struct {
	Name            string  `yaml:"name"`
	Speed           float64 `yaml:"speed"`
	Range           float64 `yaml:"range"`
	Size            float64 `yaml:"size"`
	Health          float64 `yaml:"health"`
	Damage          float64 `yaml:"damage"`
	CooldownMin     float64 `yaml:"cooldown_min"`
	CooldownMax     float64 `yaml:"cooldown_max"`
	AttackDuration  float64 `yaml:"attack_duration"`
	Attack          string  `yaml:"attack"` // melee, projectile, none
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	Death           string  `yaml:"death"` // free, freeze
	Static          bool    `yaml:"static"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldWidth  float64        // TileWidth * TileSize
	WorldLeft   float64        // -WorldWidth/2
	WorldRight  float64        // +WorldWidth/2
	UnitIndex   map[string]int // name -> index into Units
	NeighborSq  float64        // Avoidance.NeighborRadius squared
	TicksPerSec float64        // 1 / Battle.DT
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Merge unmarshals data over cfg. Only fields present in data are overwritten,
// except lists, which yaml replaces wholesale.
func Merge(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Battle.DT <= 0 {
		return fmt.Errorf("battle.dt must be positive, got %v", c.Battle.DT)
	}
	seen := make(map[string]bool, len(c.Units))
	for _, u := range c.Units {
		if u.Name == "" {
			return fmt.Errorf("unit type without a name")
		}
		if seen[u.Name] {
			return fmt.Errorf("duplicate unit type %q", u.Name)
		}
		seen[u.Name] = true
		if u.CooldownMax < u.CooldownMin {
			return fmt.Errorf("unit %q: cooldown_max %v below cooldown_min %v", u.Name, u.CooldownMax, u.CooldownMin)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldWidth = float64(c.World.TileWidth) * c.World.TileSize
	c.Derived.WorldLeft = -c.Derived.WorldWidth * 0.5
	c.Derived.WorldRight = c.Derived.WorldWidth * 0.5
	c.Derived.NeighborSq = c.Avoidance.NeighborRadius * c.Avoidance.NeighborRadius
	c.Derived.TicksPerSec = 1 / c.Battle.DT

	if c.Battle.MaxUnits <= 0 {
		c.Battle.MaxUnits = 256
	}
	if c.Avoidance.MaxObstacles <= 0 {
		c.Avoidance.MaxObstacles = 64
	}

	c.Derived.UnitIndex = make(map[string]int, len(c.Units))
	for i, u := range c.Units {
		c.Derived.UnitIndex[u.Name] = i
	}
}

// Unit returns the unit type config with the given name.
func (c *Config) Unit(name string) (*UnitConfig, bool) {
	idx, ok := c.Derived.UnitIndex[name]
	if !ok {
		return nil, false
	}
	return &c.Units[idx], true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
