package game

import (
	"log/slog"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/telemetry"
)

func logBattleStart(b *Battle) {
	slog.Info("battle_start",
		"red", b.initial[components.TeamRed],
		"blue", b.initial[components.TeamBlue],
		"dt", b.sim.Clock.DT,
	)
}

func logBattleOver(b *Battle) {
	r := b.Outcome()
	slog.Info("battle_over",
		"winner", r.Winner.String(),
		"draw", r.Draw(),
		"tick", r.Ticks,
		"sim_time", r.SimTime,
		"red_survivors", r.Survivors[components.TeamRed],
		"blue_survivors", r.Survivors[components.TeamBlue],
	)
}

func logTopUnits(top []*telemetry.CombatRecord) {
	for i, r := range top {
		slog.Info("top_unit",
			"rank", i+1,
			"team", r.Team.String(),
			"kind", r.Kind.String(),
			"kills", r.Kills,
			"damage_dealt", r.DamageDealt,
			"survived", r.Alive(),
		)
	}
}
