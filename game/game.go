package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/camera"
	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/renderer"
	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/ui"
)

// Mode is what the viewer is doing.
type Mode uint8

const (
	ModeEdit Mode = iota
	ModeBattle
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "battle"
}

// Layout constants for the right-hand panels.
const (
	panelWidth  = 220
	panelMargin = 10
)

// Game is the windowed viewer: a placement editor and a battle view
// sharing one camera.
type Game struct {
	cfg  *config.Config
	opts ViewerOptions

	battle    *Battle
	editor    *Editor
	presenter *renderer.Presenter
	setup     Setup // setup of the current or next battle

	mode     Mode
	paused   bool
	finished bool // OnFinish already ran for the current battle

	// Rendering
	camera      *camera.Camera
	field       *renderer.BattlefieldRenderer
	editorField *renderer.BattlefieldRenderer
	editorView  *renderer.Presenter

	// UI
	hud        *ui.HUD
	controls   *ui.ControlsPanel
	perfPanel  *ui.PerfPanel
	statsPanel *ui.BattleStatsPanel
	inspector  *ui.Inspector
	overlays   *ui.OverlayRegistry
	kinds      []components.Kind // editor palette

	hovered ecs.Entity

	screenWidth, screenHeight float32
}

// NewGame creates the viewer. The raylib window must already be open.
func NewGame(cfg *config.Config, opts ViewerOptions) (*Game, error) {
	presenter := renderer.NewPresenter()
	battleOpts := opts.Battle
	battleOpts.Presenter = presenter

	battle, err := NewBattle(cfg, battleOpts)
	if err != nil {
		return nil, err
	}
	editor, err := NewEditor(cfg)
	if err != nil {
		return nil, err
	}

	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	cam := camera.New(w, h, float32(cfg.Derived.WorldWidth), float32(cfg.World.Height))

	g := &Game{
		cfg:          cfg,
		opts:         opts,
		battle:       battle,
		editor:       editor,
		presenter:    presenter,
		setup:        opts.Setup,
		camera:       cam,
		field:        renderer.NewBattlefieldRenderer(cam, battle.Sim().Registry),
		editorField:  renderer.NewBattlefieldRenderer(cam, editor.Sim().Registry),
		editorView:   renderer.NewPresenter(),
		hud:          ui.NewHUD(),
		controls:     ui.NewControlsPanel(int32(w)-panelWidth-panelMargin, panelMargin, panelWidth),
		perfPanel:    ui.NewPerfPanel(panelMargin+6, 110, systems.NewSystemRegistry()),
		statsPanel:   ui.NewBattleStatsPanel(panelMargin, int32(h)-230, 300),
		inspector:    ui.NewInspector(int32(w)-panelWidth*2-panelMargin*2, panelMargin, panelWidth),
		overlays:     ui.NewOverlayRegistry(),
		screenWidth:  w,
		screenHeight: h,
	}
	for _, info := range battle.Sim().Registry.All() {
		g.kinds = append(g.kinds, info.Kind)
	}
	editor.Sim().Presenter = g.editorView

	if opts.StartInEditor {
		if err := g.enterEditor(); err != nil {
			return nil, err
		}
		return g, nil
	}
	if err := g.startBattle(); err != nil {
		return nil, err
	}
	return g, nil
}

// startBattle fights the current setup from the beginning.
func (g *Game) startBattle() error {
	g.presenter.Reset()
	if err := g.battle.Start(g.setup); err != nil {
		return err
	}
	g.mode = ModeBattle
	g.finished = false
	g.paused = false
	g.hovered = ecs.Entity{}
	return nil
}

// enterEditor loads the current setup into the placement editor.
func (g *Game) enterEditor() error {
	g.editorView.Reset()
	if err := g.editor.Load(g.setup); err != nil {
		return fmt.Errorf("loading setup into editor: %w", err)
	}
	g.mode = ModeEdit
	g.hovered = ecs.Entity{}
	return nil
}

// fight takes the editor's placement as the setup and starts the battle.
func (g *Game) fight() {
	g.setup = g.editor.Setup()
	if err := g.startBattle(); err != nil {
		slog.Error("failed to start battle", "error", err)
	}
}

// saveSetup writes the editor's placement to the setup path.
func (g *Game) saveSetup() {
	if g.opts.SetupPath == "" {
		slog.Warn("no setup path to save to")
		return
	}
	g.setup = g.editor.Setup()
	if err := g.setup.WriteYAML(g.opts.SetupPath); err != nil {
		slog.Error("failed to save setup", "error", err)
		return
	}
	slog.Info("setup saved", "path", g.opts.SetupPath, "units", len(g.setup.Units))
}

// Update handles input and advances the active mode by one frame.
func (g *Game) Update() {
	g.handleInput()

	dt := float64(rl.GetFrameTime())
	switch g.mode {
	case ModeEdit:
		g.editorView.Update(dt)
	case ModeBattle:
		g.updateBattle(dt)
	}
	g.battle.Perf().RecordFrame()
}

func (g *Game) updateBattle(dt float64) {
	if !g.paused {
		g.battle.Step()
		g.presenter.Update(g.battle.Sim().Clock.Scaled())
		g.presenter.Prune(g.battle.Sim().World.Alive)
	}

	if g.battle.Done() && !g.finished {
		g.finished = true
		if err := g.battle.Finish(); err != nil {
			slog.Error("failed to write battle output", "error", err)
		}
		if g.opts.OnFinish != nil {
			g.opts.OnFinish(g.battle)
		}
	}
}

// Mode returns the active mode.
func (g *Game) Mode() Mode { return g.mode }

// Tick returns the battle tick.
func (g *Game) Tick() int64 { return g.battle.Sim().Tick() }

// Battle returns the battle shown by the viewer.
func (g *Game) Battle() *Battle { return g.battle }
