// Package game runs battles: setup, the tick loop, outcome tracking, the
// placement editor and the windowed viewer.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/telemetry"
)

// BattleState is the lifecycle state of a battle.
type BattleState uint8

const (
	BattleSimulate BattleState = iota
	BattleGameOver
)

func (s BattleState) String() string {
	if s == BattleGameOver {
		return "game_over"
	}
	return "simulate"
}

// Options configures a Battle. Zero values are valid.
type Options struct {
	Seed      uint64
	Presenter systems.Presenter
	Output    *telemetry.OutputManager
	LogStats  bool

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Result summarizes a battle.
type Result struct {
	Winner    components.Team // TeamUnknown for a draw or an undecided battle
	Decided   bool
	Ticks     int64
	SimTime   float64
	Initial   [components.TeamCount]int
	Survivors [components.TeamCount]int
}

// Draw reports whether the battle ended with no team standing.
func (r Result) Draw() bool {
	return r.Decided && r.Winner == components.TeamUnknown
}

// Battle tracks one battle from setup to game over.
type Battle struct {
	cfg *config.Config
	sim *systems.Sim

	state      BattleState
	stateTime  float64 // unscaled seconds since entering the current state
	simTime    float64 // scaled seconds simulated
	winner     components.Team
	teamCounts [components.TeamCount]int
	initial    [components.TeamCount]int
	speed      float64 // viewer speed multiplier applied on top of the battle's own scaling

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	records       *telemetry.RecordBook
	bookmarks     *telemetry.BookmarkDetector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	lastStats     telemetry.WindowStats
	marks         []telemetry.Bookmark
}

// NewBattle builds a battle context from cfg. Call Start before stepping.
func NewBattle(cfg *config.Config, opts Options) (*Battle, error) {
	reg, err := systems.NewUnitRegistryFromConfig(cfg.Units)
	if err != nil {
		return nil, fmt.Errorf("building unit registry: %w", err)
	}

	b := &Battle{
		cfg:           cfg,
		sim:           systems.NewSim(reg, systems.ParamsFromConfig(cfg), opts.Seed),
		winner:        components.TeamUnknown,
		speed:         1,
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Battle.DT),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		records:       telemetry.NewRecordBook(),
		bookmarks:     telemetry.NewBookmarkDetector(),
		output:        opts.Output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	b.sim.Clock.DT = cfg.Battle.DT
	b.sim.Deaths = b
	b.sim.Observer = b
	b.sim.Timer = b.perf
	if opts.Presenter != nil {
		b.sim.Presenter = opts.Presenter
	}
	return b, nil
}

// Start discards any previous battle and spawns the units in setup.
func (b *Battle) Start(setup Setup) error {
	placements, err := setup.Placements()
	if err != nil {
		return fmt.Errorf("starting battle: %w", err)
	}

	b.sim.Reset()
	b.sim.Clock.TimeScale = b.speed
	b.state = BattleSimulate
	b.stateTime = 0
	b.simTime = 0
	b.winner = components.TeamUnknown
	b.teamCounts = [components.TeamCount]int{}
	b.records.Reset()
	b.collector.Reset()
	b.bookmarks = telemetry.NewBookmarkDetector()
	b.lastStats = telemetry.WindowStats{}
	b.marks = b.marks[:0]

	for _, p := range placements {
		e, err := b.sim.Spawn(p.Kind, p.Team, p.Position)
		if err != nil {
			return fmt.Errorf("starting battle: %w", err)
		}
		b.teamCounts[p.Team]++
		b.record(telemetry.NewSpawnEvent(0, e, p.Team, p.Kind))
	}
	b.initial = b.teamCounts

	logBattleStart(b)
	return nil
}

// Step advances the battle by one tick.
func (b *Battle) Step() {
	b.perf.StartTick()

	switch b.state {
	case BattleSimulate:
		b.checkForWinner()
	case BattleGameOver:
		b.updateGameOver()
	}

	b.simTime += b.sim.Clock.Scaled()
	b.sim.Step()

	b.perf.StartPhase(telemetry.PhaseTelemetry)
	b.flushTelemetry()
	b.perf.EndTick()
}

// checkForWinner ends the battle once at most one team has units left.
func (b *Battle) checkForWinner() {
	teams := 0
	winner := components.TeamUnknown
	for i, n := range b.teamCounts {
		if n > 0 {
			winner = components.Team(i)
			teams++
		}
	}
	if teams > 1 {
		return
	}

	b.state = BattleGameOver
	b.stateTime = 0
	b.winner = winner
	logBattleOver(b)
}

// updateGameOver eases the time scale from the slow motion scale to a
// standstill over the freeze time.
func (b *Battle) updateGameOver() {
	b.stateTime += b.sim.Clock.DT
	b.sim.Clock.TimeScale = b.speed * b.cfg.Battle.SlowMotionScale * (1 - systems.EaseOutQuad(b.freezeProgress()))
}

// SetSpeed sets the viewer speed multiplier. Negative values are treated as zero.
func (b *Battle) SetSpeed(speed float64) {
	b.speed = max(speed, 0)
	if b.state == BattleSimulate {
		b.sim.Clock.TimeScale = b.speed
	}
}

// Speed returns the viewer speed multiplier.
func (b *Battle) Speed() float64 { return b.speed }

func (b *Battle) freezeProgress() float64 {
	if b.cfg.Battle.FreezeTime <= 0 {
		return 1
	}
	return b.stateTime / b.cfg.Battle.FreezeTime
}

// OnUnitDeath implements systems.DeathListener.
func (b *Battle) OnUnitDeath(e ecs.Entity, u *components.Unit, dmg components.DamageType) {
	if int(u.Team) < components.TeamCount {
		b.teamCounts[u.Team]--
	}
	b.record(telemetry.NewDeathEvent(b.sim.Tick(), e, u.Team, u.Kind))
	slog.Debug("unit_death",
		"tick", b.sim.Tick(),
		"team", u.Team.String(),
		"kind", u.Kind.String(),
		"damage", dmg.String(),
	)
}

// Done reports whether the battle is over and time has frozen.
func (b *Battle) Done() bool {
	return b.state == BattleGameOver && b.freezeProgress() >= 1
}

// Outcome returns the current result.
func (b *Battle) Outcome() Result {
	return Result{
		Winner:    b.winner,
		Decided:   b.state == BattleGameOver,
		Ticks:     b.sim.Tick(),
		SimTime:   b.simTime,
		Initial:   b.initial,
		Survivors: b.teamCounts,
	}
}

// Finish writes end-of-battle output and logs the top units.
func (b *Battle) Finish() error {
	logTopUnits(b.records.Top(3))
	return b.output.WriteUnits(b.records.All())
}

// State returns the lifecycle state.
func (b *Battle) State() BattleState { return b.state }

// Winner returns the winning team, or TeamUnknown.
func (b *Battle) Winner() components.Team { return b.winner }

// TeamCount returns the number of live units on team.
func (b *Battle) TeamCount(team components.Team) int {
	if int(team) >= components.TeamCount {
		return 0
	}
	return b.teamCounts[team]
}

// Sim returns the underlying simulation.
func (b *Battle) Sim() *systems.Sim { return b.sim }

// LastStats returns the most recently flushed stats window.
func (b *Battle) LastStats() telemetry.WindowStats { return b.lastStats }

// Bookmarks returns the bookmarks detected so far, oldest first.
func (b *Battle) Bookmarks() []telemetry.Bookmark { return b.marks }

// Records returns the per-unit combat records.
func (b *Battle) Records() *telemetry.RecordBook { return b.records }

// Perf returns the performance collector.
func (b *Battle) Perf() *telemetry.PerfCollector { return b.perf }

// Config returns the battle configuration.
func (b *Battle) Config() *config.Config { return b.cfg }
