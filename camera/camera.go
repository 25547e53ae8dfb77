// Package camera maps between battlefield and screen coordinates.
package camera

// Camera controls the viewport into the battlefield. The battlefield is
// centered on the world origin and bounded: the camera center never leaves it.
type Camera struct {
	// Center of the view in world units
	X, Y float32

	// Zoom in screen pixels per world unit
	Zoom float32

	// Screen size in pixels
	ViewportW, ViewportH float32

	// Battlefield extent, centered on the origin
	WorldW, WorldH float32

	// FitZoom shows the whole battlefield with a small margin.
	FitZoom          float32
	MinZoom, MaxZoom float32
}

// fitMargin is the fraction of the viewport the battlefield fills at FitZoom.
const fitMargin = 0.9

// New creates a camera centered on the battlefield showing all of it.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		WorldW: worldW,
		WorldH: worldH,
	}
	c.Resize(viewportW, viewportH)
	c.Reset()
	return c
}

// WorldToScreen maps a world point to pixels.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld maps a pixel to a world point.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// Scale converts a world length to screen pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// IsVisible returns true if a circle at (wx, wy) with given world radius
// overlaps the view. Used to skip drawing off-screen units.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize adopts a new screen size and recomputes the zoom band.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH && c.FitZoom > 0 {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH

	fit := viewportW / c.WorldW
	if h := viewportH / c.WorldH; h < fit {
		fit = h
	}
	c.FitZoom = fit * fitMargin
	c.MinZoom = c.FitZoom * 0.5
	c.MaxZoom = c.FitZoom * 4
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels, keeping the
// center over the battlefield.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, -c.WorldW/2, c.WorldW/2)
	c.Y = clamp(c.Y+dy/c.Zoom, -c.WorldH/2, c.WorldH/2)
}

// SetZoom sets the zoom within [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy scales the zoom by factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the origin at FitZoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = c.FitZoom
}

// VisibleWorldBounds returns the world rectangle on screen.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	minX, minY = c.ScreenToWorld(0, 0)
	maxX, maxY = c.ScreenToWorld(c.ViewportW, c.ViewportH)
	return minX, minY, maxX, maxY
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
