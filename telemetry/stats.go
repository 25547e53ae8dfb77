package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/skirmish/components"
)

// WindowStats holds aggregated battle statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Live unit counts at window end
	RedAlive  int `csv:"red_alive"`
	BlueAlive int `csv:"blue_alive"`

	// Events during window, attributed to the acting unit's team
	RedSpawns   int     `csv:"red_spawns"`
	BlueSpawns  int     `csv:"blue_spawns"`
	RedAttacks  int     `csv:"red_attacks"`
	BlueAttacks int     `csv:"blue_attacks"`
	RedDamage   float64 `csv:"red_damage"`
	BlueDamage  float64 `csv:"blue_damage"`
	RedDeaths   int     `csv:"red_deaths"`
	BlueDeaths  int     `csv:"blue_deaths"`
	Transitions int     `csv:"transitions"`

	// Health distribution (sampled at window end)
	RedHealthMean  float64 `csv:"red_health_mean"`
	RedHealthStd   float64 `csv:"red_health_std"`
	RedHealthP50   float64 `csv:"red_health_p50"`
	BlueHealthMean float64 `csv:"blue_health_mean"`
	BlueHealthStd  float64 `csv:"blue_health_std"`
	BlueHealthP50  float64 `csv:"blue_health_p50"`
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeHealthStats calculates the population mean, standard deviation and
// median of the given health values.
func ComputeHealthStats(values []float64) (mean, std, p50 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	p50 = Percentile(sorted, 0.5)

	return mean, std, p50
}

// Leader returns the team with more live units, or TeamUnknown on a tie.
func (s WindowStats) Leader() components.Team {
	switch {
	case s.RedAlive > s.BlueAlive:
		return components.TeamRed
	case s.BlueAlive > s.RedAlive:
		return components.TeamBlue
	}
	return components.TeamUnknown
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("red_alive", s.RedAlive),
		slog.Int("blue_alive", s.BlueAlive),
		slog.Int("red_spawns", s.RedSpawns),
		slog.Int("blue_spawns", s.BlueSpawns),
		slog.Int("red_attacks", s.RedAttacks),
		slog.Int("blue_attacks", s.BlueAttacks),
		slog.Float64("red_damage", s.RedDamage),
		slog.Float64("blue_damage", s.BlueDamage),
		slog.Int("red_deaths", s.RedDeaths),
		slog.Int("blue_deaths", s.BlueDeaths),
		slog.Int("transitions", s.Transitions),
		slog.Float64("red_health_mean", s.RedHealthMean),
		slog.Float64("red_health_std", s.RedHealthStd),
		slog.Float64("red_health_p50", s.RedHealthP50),
		slog.Float64("blue_health_mean", s.BlueHealthMean),
		slog.Float64("blue_health_std", s.BlueHealthStd),
		slog.Float64("blue_health_p50", s.BlueHealthP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"red_alive", s.RedAlive,
		"blue_alive", s.BlueAlive,
		"red_attacks", s.RedAttacks,
		"blue_attacks", s.BlueAttacks,
		"red_damage", s.RedDamage,
		"blue_damage", s.BlueDamage,
		"red_deaths", s.RedDeaths,
		"blue_deaths", s.BlueDeaths,
		"transitions", s.Transitions,
		"red_health_mean", s.RedHealthMean,
		"blue_health_mean", s.BlueHealthMean,
	)
}
