package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// valueColumn is the width reserved right of a bar for its printed value.
const valueColumn = 50

// Renderer draws panels and widgets in one theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a bordered panel rectangle.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	th := &r.Theme
	rl.DrawRectangle(x, y, width, height, th.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, th.PanelBorder)
}

// DrawSectionHeader draws a header line and returns the y below it.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws "label: value" and returns the y below it.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	th := &r.Theme
	r.drawLabel(x, y, label)
	rl.DrawText(value, x+th.LabelWidth, y, th.FontSize, th.ValueColor)
	return y + th.LineHeight
}

func (r *Renderer) drawLabel(x, y int32, label string) {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// barTrack draws the label and empty track of a bar row and returns the
// track rectangle.
func (r *Renderer) barTrack(x, y int32, label string, width int32) (tx, ty, tw int32) {
	th := &r.Theme
	tx, ty = x+th.LabelWidth, y+2
	tw = max(width-th.LabelWidth-valueColumn, 0)
	r.drawLabel(x, y, label)
	rl.DrawRectangle(tx, ty, tw, th.BarHeight, th.BarBg)
	return tx, ty, tw
}

// barValue prints the value after the track and returns the y of the next row.
func (r *Renderer) barValue(trackEnd, y int32, format string, value float32) int32 {
	th := &r.Theme
	rl.DrawText(fmt.Sprintf(format, value), trackEnd+5, y, th.FontSize, th.ValueColor)
	return y + th.LineHeight + 2
}

// DrawBar draws value as a left-aligned fill over rng.
func (r *Renderer) DrawBar(x, y int32, label, format string, value float32, rng FieldRange, width int32) int32 {
	tx, ty, tw := r.barTrack(x, y, label, width)
	fill := int32(float32(tw) * rng.Normalize(value))
	rl.DrawRectangle(tx, ty, fill, r.Theme.BarHeight, r.Theme.BarFill)
	return r.barValue(tx+tw, y, format, value)
}

// DrawCenteredBar draws value as a fill growing left or right of a zero
// mark in the middle of the track.
func (r *Renderer) DrawCenteredBar(x, y int32, label, format string, value float32, rng FieldRange, width int32) int32 {
	th := &r.Theme
	tx, ty, tw := r.barTrack(x, y, label, width)
	mid := tx + tw/2
	rl.DrawLine(mid, ty, mid, ty+th.BarHeight, rl.Color{R: 80, G: 80, B: 80, A: 255})

	extent := max(rng.Max, -rng.Min)
	var frac float32
	if extent > 0 {
		frac = min(max(value/extent, -1), 1)
	}
	w := int32(float32(tw/2) * frac)
	if w >= 0 {
		rl.DrawRectangle(mid, ty, w, th.BarHeight, th.BarFillPositive)
	} else {
		rl.DrawRectangle(mid+w, ty, -w, th.BarHeight, th.BarFillNegative)
	}
	return r.barValue(tx+tw, y, format, value)
}

// DrawField draws one descriptor row and returns the y below it.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	format := fd.Format
	if format == "" {
		format = "%.2f"
	}
	var value float32
	if fd.Getter != nil {
		value = fd.Getter(data)
	}

	switch fd.Widget {
	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)
	case WidgetSpacer:
		return y + 6
	case WidgetBar:
		return r.DrawBar(x, y, fd.Label, format, value, fd.Range, width)
	case WidgetCenteredBar:
		return r.DrawCenteredBar(x, y, fd.Label, format, value, fd.Range, width)
	case WidgetText:
		if fd.TextGetter != nil {
			return r.DrawLabelValue(x, y, fd.Label, fd.TextGetter(data))
		}
		return r.DrawLabelValue(x, y, fd.Label, fmt.Sprintf(format, value))
	}
	return y
}

// DrawSection draws a titled group of fields, skipping hidden ones.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		if fd.Visible == nil || fd.Visible(data) {
			y = r.DrawField(x, y, fd, data, width)
		}
	}
	return y + 4
}
