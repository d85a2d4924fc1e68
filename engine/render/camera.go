package render

import (
	"math"

	"github.com/1siamBot/rts-command/engine/config"
	"github.com/1siamBot/rts-command/engine/geom"
)

// Camera is a top-down orthographic view onto the world. It implements the
// projections the selection layer needs.
type Camera struct {
	X, Y          float64 // camera center position (world coords)
	Zoom          float64 // zoom level (1.0 = default)
	MinZoom       float64
	MaxZoom       float64
	PixelsPerUnit float64
	ScreenW       int     // viewport width in pixels
	ScreenH       int     // viewport height in pixels
	Speed         float64 // pan speed (pixels per second)
	EdgeScroll    bool    // enable edge scrolling
	EdgeSize      int     // edge scroll trigger zone in pixels

	// Bounds clamps the camera center; an empty rect means no clamping
	Bounds geom.Rect
}

// NewCamera creates a camera from config
func NewCamera(cfg config.CameraConfig, screenW, screenH int) *Camera {
	return &Camera{
		Zoom:          1.0,
		MinZoom:       cfg.MinZoom,
		MaxZoom:       cfg.MaxZoom,
		PixelsPerUnit: cfg.PixelsPerUnit,
		ScreenW:       screenW,
		ScreenH:       screenH,
		Speed:         cfg.Speed,
		EdgeScroll:    cfg.EdgeScroll,
		EdgeSize:      cfg.EdgeSize,
	}
}

// SetBounds limits where the camera center may go
func (c *Camera) SetBounds(r geom.Rect) {
	c.Bounds = r
	c.clamp()
}

// Scale is the number of screen pixels per world unit at the current zoom
func (c *Camera) Scale() float64 {
	return c.PixelsPerUnit * c.Zoom
}

// Pan moves the camera by pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Scale()
	c.Y += dy / c.Scale()
	c.clamp()
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms toward a screen point, keeping the world point under it fixed
func (c *Camera) ZoomAt(delta float64, screen geom.Vec2) {
	before := c.ScreenToWorld(screen)
	c.SetZoom(c.Zoom + delta)
	after := c.ScreenToWorld(screen)
	c.X += before.X - after.X
	c.Y += before.Y - after.Y
	c.clamp()
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(p geom.Vec2) {
	c.X, c.Y = p.X, p.Y
	c.clamp()
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(p geom.Vec2) geom.Vec2 {
	s := c.Scale()
	return geom.Vec2{
		X: (p.X-c.X)*s + float64(c.ScreenW)/2,
		Y: (p.Y-c.Y)*s + float64(c.ScreenH)/2,
	}
}

// ScreenToWorld converts screen pixels to a world position
func (c *Camera) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	s := c.Scale()
	return geom.Vec2{
		X: (p.X-float64(c.ScreenW)/2)/s + c.X,
		Y: (p.Y-float64(c.ScreenH)/2)/s + c.Y,
	}
}

// ScreenToViewport normalizes screen pixels to [0,1] across the viewport
func (c *Camera) ScreenToViewport(p geom.Vec2) geom.Vec2 {
	return geom.Vec2{X: p.X / float64(c.ScreenW), Y: p.Y / float64(c.ScreenH)}
}

// WorldToViewport converts a world position to normalized viewport space
func (c *Camera) WorldToViewport(p geom.Vec2) geom.Vec2 {
	return c.ScreenToViewport(c.WorldToScreen(p))
}

// VisibleRect returns the world rectangle on screen, padded by pad units
func (c *Camera) VisibleRect(pad float64) geom.Rect {
	r := geom.RectFromPoints(
		c.ScreenToWorld(geom.Vec2{}),
		c.ScreenToWorld(geom.Vec2{X: float64(c.ScreenW), Y: float64(c.ScreenH)}),
	)
	r.Min = r.Min.Sub(geom.Vec2{X: pad, Y: pad})
	r.Max = r.Max.Add(geom.Vec2{X: pad, Y: pad})
	return r
}

func (c *Camera) clamp() {
	if c.Bounds.Width() <= 0 || c.Bounds.Height() <= 0 {
		return
	}
	c.X = math.Max(c.Bounds.Min.X, math.Min(c.Bounds.Max.X, c.X))
	c.Y = math.Max(c.Bounds.Min.Y, math.Min(c.Bounds.Max.Y, c.Y))
}
