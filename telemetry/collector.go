package telemetry

import "github.com/pthm-cable/skirmish/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window, indexed by team
	attacks     [components.TeamCount]int
	damage      [components.TeamCount]float64
	deaths      [components.TeamCount]int
	spawns      [components.TeamCount]int
	transitions int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts an event in the current window.
func (c *Collector) Record(ev Event) {
	team := int(ev.Team)
	if team >= components.TeamCount {
		return
	}
	switch ev.Type {
	case EventSpawn:
		c.spawns[team]++
	case EventAttack:
		c.attacks[team]++
		c.damage[team] += ev.Amount
	case EventDeath:
		c.deaths[team]++
	case EventStateChange:
		c.transitions++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// health holds the current health of every live unit, per team.
func (c *Collector) Flush(currentTick int64, health [components.TeamCount][]float64) WindowStats {
	red := int(components.TeamRed)
	blue := int(components.TeamBlue)

	redMean, redStd, redP50 := ComputeHealthStats(health[red])
	blueMean, blueStd, blueP50 := ComputeHealthStats(health[blue])

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		RedAlive:  len(health[red]),
		BlueAlive: len(health[blue]),

		RedSpawns:   c.spawns[red],
		BlueSpawns:  c.spawns[blue],
		RedAttacks:  c.attacks[red],
		BlueAttacks: c.attacks[blue],
		RedDamage:   c.damage[red],
		BlueDamage:  c.damage[blue],
		RedDeaths:   c.deaths[red],
		BlueDeaths:  c.deaths[blue],

		Transitions: c.transitions,

		RedHealthMean:  redMean,
		RedHealthStd:   redStd,
		RedHealthP50:   redP50,
		BlueHealthMean: blueMean,
		BlueHealthStd:  blueStd,
		BlueHealthP50:  blueP50,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.attacks = [components.TeamCount]int{}
	c.damage = [components.TeamCount]float64{}
	c.deaths = [components.TeamCount]int{}
	c.spawns = [components.TeamCount]int{}
	c.transitions = 0

	return stats
}

// Reset clears counters and restarts the window at tick zero.
func (c *Collector) Reset() {
	c.Flush(0, [components.TeamCount][]float64{})
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
