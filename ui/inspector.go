package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/systems"
)

// InspectorData is a snapshot of one unit for the inspector panel.
type InspectorData struct {
	Info     *systems.UnitInfo
	Unit     components.Unit
	Motion   components.Motion
	Position components.Position
	Target   string // description of the current target, empty for none
}

// Inspector renders the unit inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32

	// Sections are rebuilt when the inspected kind changes, since bar
	// ranges depend on the kind's maximum health and speed.
	kind     components.Kind
	sections []SectionDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		kind:     components.KindCount,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Sections returns the field layout for a unit kind.
func Sections(info *systems.UnitInfo) []SectionDescriptor {
	unitValue := func(data any, id string) float64 {
		d := data.(*InspectorData)
		return components.GetUnitValue(&d.Unit, id)
	}
	motionValue := func(data any, id string) float64 {
		d := data.(*InspectorData)
		return components.GetMotionValue(&d.Motion, id)
	}
	maxSpeed := info.Speed
	if maxSpeed <= 0 {
		maxSpeed = 1
	}
	return []SectionDescriptor{
		{ID: "combat", Title: "Combat", Fields: FieldsFromComponents(components.UnitFieldDescriptors(info.Health), unitValue)},
		{
			ID:      "motion",
			Title:   "Motion",
			Fields:  FieldsFromComponents(components.MotionFieldDescriptors(maxSpeed), motionValue),
			Visible: func(any) bool { return !info.Static },
		},
	}
}

// Draw renders the inspector panel for the given data and returns the bottom Y.
func (ins *Inspector) Draw(data *InspectorData) int32 {
	if data.Info == nil {
		return ins.y
	}
	if data.Info.Kind != ins.kind {
		ins.kind = data.Info.Kind
		ins.sections = Sections(data.Info)
	}

	r := ins.renderer
	padding := r.Theme.Padding
	contentWidth := ins.width - padding*2

	r.DrawPanel(ins.x, ins.y, ins.width, 230)

	x := ins.x + padding
	y := ins.y + padding
	rl.DrawText(fmt.Sprintf("%s %s", data.Unit.Team, data.Info.Name), x, y, 16, rl.White)
	y += 20
	y = r.DrawLabelValue(x, y, "State", data.Unit.State.String())
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("%.1f, %.1f", data.Position.X, data.Position.Y))
	if data.Target != "" {
		y = r.DrawLabelValue(x, y, "Target", data.Target)
	}
	y += 4

	for _, sd := range ins.sections {
		y = r.DrawSection(x, y, sd, data, contentWidth)
	}
	return y
}
