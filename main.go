package main

import (
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/game"
	"github.com/pthm-cable/skirmish/results"
	"github.com/pthm-cable/skirmish/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	setupPath := flag.String("setup", "", "Path to a setup YAML (empty = setup from config)")
	headless := flag.Bool("headless", false, "Run without graphics")
	edit := flag.Bool("edit", false, "Open the placement editor instead of fighting")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	resultsDB := flag.String("results-db", "", "SQLite file to store battle results in (empty = disabled)")
	label := flag.String("label", "", "Label for stored results (empty = setup file name)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	runs := flag.Int("runs", 1, "Headless battles to play with consecutive seeds")
	workers := flag.Int("workers", 0, "Parallel workers for -runs (0 = GOMAXPROCS)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	setup := game.SetupFromConfig(cfg)
	if *setupPath != "" {
		s, err := game.LoadSetup(*setupPath)
		if err != nil && !(*edit && errors.Is(err, fs.ErrNotExist)) {
			slog.Error("failed to load setup", "path", *setupPath, "error", err)
			os.Exit(1)
		}
		if err == nil {
			setup = s
		}
	}

	resultLabel := *label
	if resultLabel == "" && *setupPath != "" {
		resultLabel = strings.TrimSuffix(filepath.Base(*setupPath), filepath.Ext(*setupPath))
	}

	var store *results.Store
	if *resultsDB != "" {
		s, err := results.Open(*resultsDB)
		if err != nil {
			slog.Error("failed to open results db", "error", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	if *headless {
		var ok bool
		if *runs > 1 {
			ok = runBatch(cfg, setup, store, resultLabel, rngSeed, *runs, *workers, *maxTicks, *logStats)
		} else {
			ok = runSingle(cfg, setup, store, resultLabel, rngSeed, *maxTicks, *logStats, *outputDir)
		}
		if !ok {
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Skirmish")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	output, err := openOutput(cfg, *outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	battleSeed := rngSeed
	g, err := game.NewGame(cfg, game.ViewerOptions{
		Battle:        game.Options{Seed: rngSeed, Output: output, LogStats: *logStats},
		Setup:         setup,
		SetupPath:     *setupPath,
		StartInEditor: *edit,
		OnFinish: func(b *game.Battle) {
			storeBattle(store, resultLabel, battleSeed, b)
		},
	})
	if err != nil {
		slog.Error("failed to start viewer", "error", err)
		os.Exit(1)
	}

	slog.Info("starting viewer", "seed", rngSeed, "units", len(setup.Units), "editor", *edit)
	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && g.Mode() == game.ModeBattle && g.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
}

func openOutput(cfg *config.Config, dir string) (*telemetry.OutputManager, error) {
	output, err := telemetry.NewOutputManager(dir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}
	return output, nil
}

// runSingle plays one headless battle with CSV output.
func runSingle(cfg *config.Config, setup game.Setup, store *results.Store, label string, seed uint64, maxTicks int64, logStats bool, outputDir string) bool {
	output, err := openOutput(cfg, outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		return false
	}
	defer output.Close()

	b, err := game.NewBattle(cfg, game.Options{Seed: seed, Output: output, LogStats: logStats})
	if err != nil {
		slog.Error("failed to create battle", "error", err)
		return false
	}
	if err := b.Start(setup); err != nil {
		slog.Error("failed to start battle", "error", err)
		return false
	}

	slog.Info("starting headless battle", "seed", seed, "max_ticks", maxTicks, "units", len(setup.Units))
	res := game.RunHeadless(b, maxTicks)
	if !res.Decided {
		slog.Info("max ticks reached", "tick", res.Ticks)
	}
	if err := b.Finish(); err != nil {
		slog.Error("failed to write unit records", "error", err)
	}
	storeBattle(store, label, seed, b)
	return true
}

// runBatch plays n headless battles on a worker pool and logs the tally.
func runBatch(cfg *config.Config, setup game.Setup, store *results.Store, label string, firstSeed uint64, n, workers int, maxTicks int64, logStats bool) bool {
	slog.Info("starting batch", "runs", n, "first_seed", firstSeed, "workers", workers, "max_ticks", maxTicks)
	start := time.Now()

	batchRuns := game.NewBatch(cfg, setup, maxTicks, workers).Run(game.Seeds(firstSeed, n), game.Options{LogStats: logStats})
	for _, r := range batchRuns {
		if r.Err != nil {
			slog.Error("battle failed", "seed", r.Seed, "error", r.Err)
		}
	}

	tally := game.TallyRuns(batchRuns)
	slog.Info("batch complete",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"red_wins", tally.Wins["red"],
		"blue_wins", tally.Wins["blue"],
		"draws", tally.Draws,
		"undecided", tally.Undecided,
		"failed", tally.Failed,
	)

	if store != nil {
		saved, err := store.SaveRuns(label, batchRuns)
		if err != nil {
			slog.Error("failed to store results", "error", err)
			return false
		}
		slog.Info("results stored", "battles", saved, "label", label)
		logKindSummaries(store, label)
	}
	return tally.Failed == 0
}

func storeBattle(store *results.Store, label string, seed uint64, b *game.Battle) {
	if store == nil {
		return
	}
	rec, err := store.SaveBattle(label, seed, b)
	if err != nil {
		slog.Error("failed to store result", "error", err)
		return
	}
	slog.Info("result stored", "id", rec.ID, "label", label, "winner", rec.Winner)
}

func logKindSummaries(store *results.Store, label string) {
	sums, err := store.KindSummaries(label)
	if err != nil {
		slog.Error("failed to summarize results", "error", err)
		return
	}
	for _, s := range sums {
		slog.Info("kind summary",
			"kind", s.Kind,
			"units", s.Units,
			"kills", s.Kills,
			"avg_damage_dealt", s.AvgDamageDealt,
			"survival_rate", s.SurvivalRate,
		)
	}
}
