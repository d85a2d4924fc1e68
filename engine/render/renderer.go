package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/formation"
	"github.com/1siamBot/rts-command/engine/geom"
)

var (
	groundColor   = color.RGBA{46, 64, 40, 255}
	gridColor     = color.RGBA{255, 255, 255, 20}
	selectColor   = color.RGBA{0, 255, 0, 200}
	boxLineColor  = color.RGBA{0, 255, 0, 128}
	boxFillColor  = color.RGBA{0, 255, 0, 30}
	markerColor   = color.RGBA{255, 255, 255, 140}
	pathLineColor = color.RGBA{255, 255, 255, 40}
)

// RGBA unpacks a 0xRRGGBBAA color
func RGBA(c uint32) color.RGBA {
	return color.RGBA{uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)}
}

// Renderer draws the top-down battlefield and the selection overlays
type Renderer struct {
	Camera   *Camera
	Icons    *IconSet
	GridStep float64 // world units between grid lines
}

func NewRenderer(cam *Camera, icons *IconSet) *Renderer {
	return &Renderer{Camera: cam, Icons: icons, GridStep: 4}
}

// DrawGround fills the background and draws the world grid
func (r *Renderer) DrawGround(screen *ebiten.Image) {
	screen.Fill(groundColor)
	if r.GridStep <= 0 {
		return
	}
	vis := r.Camera.VisibleRect(r.GridStep)
	w, h := float32(r.Camera.ScreenW), float32(r.Camera.ScreenH)
	for x := math.Floor(vis.Min.X/r.GridStep) * r.GridStep; x <= vis.Max.X; x += r.GridStep {
		sx := float32(r.Camera.WorldToScreen(geom.Vec2{X: x}).X)
		vector.StrokeLine(screen, sx, 0, sx, h, 1, gridColor, false)
	}
	for y := math.Floor(vis.Min.Y/r.GridStep) * r.GridStep; y <= vis.Max.Y; y += r.GridStep {
		sy := float32(r.Camera.WorldToScreen(geom.Vec2{Y: y}).Y)
		vector.StrokeLine(screen, 0, sy, w, sy, 1, gridColor, false)
	}
}

// DrawEntities draws every visible entity: buildings as squares, units as
// discs, with a ring around selected ones
func (r *Renderer) DrawEntities(screen *ebiten.Image, w *core.World) {
	ids := w.Query(core.CompPosition, core.CompSprite)
	sort.SliceStable(ids, func(i, j int) bool {
		a := w.Get(ids[i], core.CompSprite).(*core.Sprite)
		b := w.Get(ids[j], core.CompSprite).(*core.Sprite)
		return a.ZOrder < b.ZOrder
	})

	vis := r.Camera.VisibleRect(4)
	scale := r.Camera.Scale()
	for _, id := range ids {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		spr := w.Get(id, core.CompSprite).(*core.Sprite)
		if !spr.Visible || !vis.Contains(pos.Vec()) {
			continue
		}
		sp := r.Camera.WorldToScreen(pos.Vec())
		sx, sy := float32(sp.X), float32(sp.Y)
		half := float32(spr.Size * scale / 2)
		clr := RGBA(spr.Color)

		if w.Has(id, core.CompBuilding) {
			vector.DrawFilledRect(screen, sx-half, sy-half, half*2, half*2, clr, false)
			vector.StrokeRect(screen, sx-half, sy-half, half*2, half*2, 1, color.RGBA{0, 0, 0, 120}, false)
		} else {
			if c := w.Get(id, core.CompMovable); c != nil {
				if mov := c.(*core.Movable); mov.Moving {
					tp := r.Camera.WorldToScreen(mov.Target)
					vector.StrokeLine(screen, sx, sy, float32(tp.X), float32(tp.Y), 1, pathLineColor, false)
				}
			}
			vector.DrawFilledCircle(screen, sx, sy, half, clr, true)
			fx := sx + half*float32(math.Cos(pos.Facing))
			fy := sy + half*float32(math.Sin(pos.Facing))
			vector.StrokeLine(screen, sx, sy, fx, fy, 1, color.RGBA{0, 0, 0, 160}, true)
		}

		if c := w.Get(id, core.CompSelectable); c != nil && c.(*core.Selectable).Selected {
			ring := float32(c.(*core.Selectable).Radius*scale) + 3
			vector.StrokeCircle(screen, sx, sy, ring, 1.5, selectColor, true)
		}
	}
}

// DrawSelectionBox draws a selection rectangle given in screen pixels
func (r *Renderer) DrawSelectionBox(screen *ebiten.Image, box geom.Rect) {
	x1, y1 := float32(box.Min.X), float32(box.Min.Y)
	x2, y2 := float32(box.Max.X), float32(box.Max.Y)

	vector.DrawFilledRect(screen, x1, y1, x2-x1, y2-y1, boxFillColor, false)
	vector.StrokeLine(screen, x1, y1, x2, y1, 1, boxLineColor, false)
	vector.StrokeLine(screen, x2, y1, x2, y2, 1, boxLineColor, false)
	vector.StrokeLine(screen, x2, y2, x1, y2, 1, boxLineColor, false)
	vector.StrokeLine(screen, x1, y2, x1, y1, 1, boxLineColor, false)
}

// DrawPreview draws the formation preview markers
func (r *Renderer) DrawPreview(screen *ebiten.Image, markers []formation.Marker) {
	radius := float32(0.3 * r.Camera.Scale())
	for _, m := range markers {
		p := r.Camera.WorldToScreen(m.Pos)
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), radius, 1.5, markerColor, true)
	}
}

// DrawMinimap draws the entities inside bounds in a corner panel, with the
// camera view outlined
func (r *Renderer) DrawMinimap(screen *ebiten.Image, w *core.World, bounds geom.Rect, posX, posY, size int) {
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return
	}
	px, py, ps := float32(posX), float32(posY), float32(size)
	vector.DrawFilledRect(screen, px, py, ps, ps, color.RGBA{0, 0, 0, 180}, false)

	toMini := func(p geom.Vec2) (float32, float32) {
		return px + float32((p.X-bounds.Min.X)/bounds.Width())*ps,
			py + float32((p.Y-bounds.Min.Y)/bounds.Height())*ps
	}
	for _, id := range w.Query(core.CompPosition, core.CompSprite) {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		if !bounds.Contains(pos.Vec()) {
			continue
		}
		spr := w.Get(id, core.CompSprite).(*core.Sprite)
		mx, my := toMini(pos.Vec())
		dot := float32(2)
		if w.Has(id, core.CompBuilding) {
			dot = 3
		}
		vector.DrawFilledRect(screen, mx-dot/2, my-dot/2, dot, dot, RGBA(spr.Color), false)
	}

	view := r.Camera.VisibleRect(0)
	vx0, vy0 := toMini(view.Min)
	vx1, vy1 := toMini(view.Max)
	vector.StrokeRect(screen, vx0, vy0, vx1-vx0, vy1-vy0, 1, color.RGBA{255, 255, 255, 200}, false)
}
