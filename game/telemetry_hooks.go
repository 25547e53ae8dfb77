package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/telemetry"
)

// record feeds an event to the window collector and the record book.
func (b *Battle) record(ev telemetry.Event) {
	b.collector.Record(ev)
	b.records.Record(ev)
}

// OnAttack implements systems.Observer.
func (b *Battle) OnAttack(attacker, target ecs.Entity, damage float64) {
	_, _, _, au, ok := b.sim.Get(attacker)
	if !ok {
		return
	}
	targetTeam := components.TeamUnknown
	if _, _, _, tu, ok := b.sim.Get(target); ok {
		targetTeam = tu.Team
	}
	b.record(telemetry.NewAttackEvent(b.sim.Tick(), attacker, au.Team, au.Kind, target, targetTeam, damage))
}

// OnStateChange implements systems.Observer.
func (b *Battle) OnStateChange(e ecs.Entity, from, to components.State) {
	_, _, _, u, ok := b.sim.Get(e)
	if !ok {
		return
	}
	b.record(telemetry.NewStateChangeEvent(b.sim.Tick(), e, u.Team, from, to))
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (b *Battle) flushTelemetry() {
	tick := b.sim.Tick()
	if !b.collector.ShouldFlush(tick) {
		return
	}

	stats := b.collector.Flush(tick, b.sampleHealth())
	perfStats := b.perf.Stats()
	b.lastStats = stats

	if b.statsCallback != nil {
		b.statsCallback(stats)
	}

	if b.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := b.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := b.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range b.bookmarks.Check(stats) {
		b.marks = append(b.marks, bm)
		if b.logStats {
			bm.LogBookmark()
		}
		if err := b.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// sampleHealth collects the health of every live unit, per team.
func (b *Battle) sampleHealth() [components.TeamCount][]float64 {
	var health [components.TeamCount][]float64
	b.sim.Population.ForEachLiveUnit(systems.AnyTeam, func(_ ecs.Entity, _ *components.Position, u *components.Unit) bool {
		if int(u.Team) < components.TeamCount {
			health[u.Team] = append(health[u.Team], u.Health)
		}
		return true
	})
	return health
}
