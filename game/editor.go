package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/systems"
)

// EditorUnit is a unit placed in the editor.
type EditorUnit struct {
	Kind   components.Kind
	Team   components.Team
	Entity ecs.Entity
}

// Editor places and removes units before a battle. Placed units live in
// their own frozen simulation so they can be drawn and hit-tested.
type Editor struct {
	sim      *systems.Sim
	units    []EditorUnit
	selected components.Kind
	maxUnits int
}

// NewEditor creates an empty editor for the unit types in cfg.
func NewEditor(cfg *config.Config) (*Editor, error) {
	reg, err := systems.NewUnitRegistryFromConfig(cfg.Units)
	if err != nil {
		return nil, fmt.Errorf("building unit registry: %w", err)
	}
	sim := systems.NewSim(reg, systems.ParamsFromConfig(cfg), 0)
	sim.Clock.TimeScale = 0
	return &Editor{
		sim:      sim,
		selected: components.KindCount,
		maxUnits: cfg.Battle.MaxUnits,
	}, nil
}

// Load replaces the placed units with those in setup. Entries that cannot
// be placed are skipped.
func (ed *Editor) Load(setup Setup) error {
	placements, err := setup.Placements()
	if err != nil {
		return err
	}
	ed.sim.Reset()
	ed.units = ed.units[:0]
	for _, p := range placements {
		ed.add(p.Kind, p.Team, p.Position)
	}
	return nil
}

// Clear removes every placed unit.
func (ed *Editor) Clear() {
	ed.sim.Reset()
	ed.units = ed.units[:0]
}

// Select sets the unit type placed by Place. KindCount clears the selection.
func (ed *Editor) Select(kind components.Kind) {
	ed.selected = kind
}

// Selected returns the selected unit type.
func (ed *Editor) Selected() (components.Kind, bool) {
	_, ok := ed.sim.Registry.Lookup(ed.selected)
	return ed.selected, ok
}

// TeamAt returns the team that owns the given side of the battlefield.
func TeamAt(pos r2.Vec) components.Team {
	if pos.X < 0 {
		return components.TeamBlue
	}
	return components.TeamRed
}

// Place adds a unit of the selected type at pos. It fails when nothing is
// selected, the editor is full, or the new unit would overlap the closest
// existing unit.
func (ed *Editor) Place(pos r2.Vec) (ecs.Entity, bool) {
	info, ok := ed.sim.Registry.Lookup(ed.selected)
	if !ok || len(ed.units) >= ed.maxUnits || !ed.canPlace(pos, info.Size) {
		return ecs.Entity{}, false
	}
	return ed.add(info.Kind, TeamAt(pos), pos)
}

func (ed *Editor) canPlace(pos r2.Vec, size float64) bool {
	e, ok := ed.sim.Population.FindClosestUnit(pos)
	if !ok {
		return true
	}
	other, _, _, _, _ := ed.sim.Get(e)
	return r2.Norm(r2.Sub(other.Planar(), pos))-size > 0
}

func (ed *Editor) add(kind components.Kind, team components.Team, pos r2.Vec) (ecs.Entity, bool) {
	if len(ed.units) >= ed.maxUnits {
		return ecs.Entity{}, false
	}
	e, err := ed.sim.Spawn(kind, team, pos)
	if err != nil {
		return ecs.Entity{}, false
	}
	ed.units = append(ed.units, EditorUnit{Kind: kind, Team: team, Entity: e})
	return e, true
}

// Hovered returns the placed unit whose body contains pos.
func (ed *Editor) Hovered(pos r2.Vec) (ecs.Entity, bool) {
	e, ok := ed.sim.Population.FindClosestUnit(pos)
	if !ok || ed.index(e) < 0 {
		return ecs.Entity{}, false
	}
	p, _, _, u, _ := ed.sim.Get(e)
	if r2.Norm(r2.Sub(p.Planar(), pos)) > u.Size {
		return ecs.Entity{}, false
	}
	return e, true
}

// RemoveAt removes the hovered unit at pos, if any.
func (ed *Editor) RemoveAt(pos r2.Vec) bool {
	e, ok := ed.Hovered(pos)
	if !ok {
		return false
	}
	i := ed.index(e)
	ed.sim.Remove(e)
	last := len(ed.units) - 1
	ed.units[i] = ed.units[last]
	ed.units = ed.units[:last]
	return true
}

func (ed *Editor) index(e ecs.Entity) int {
	for i, u := range ed.units {
		if u.Entity == e {
			return i
		}
	}
	return -1
}

// Units returns the placed units.
func (ed *Editor) Units() []EditorUnit {
	return ed.units
}

// Setup returns a battle setup with the placed units.
func (ed *Editor) Setup() Setup {
	var s Setup
	for _, u := range ed.units {
		pos, _, _, _, ok := ed.sim.Get(u.Entity)
		if !ok {
			continue
		}
		s.Add(u.Kind, u.Team, pos.Planar())
	}
	return s
}

// Sim returns the editor's frozen simulation.
func (ed *Editor) Sim() *systems.Sim {
	return ed.sim
}
