package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/1siamBot/rts-command/engine/geom"
	"github.com/1siamBot/rts-command/engine/radial"
	"github.com/1siamBot/rts-command/engine/render"
)

const (
	glyphWidth  = 7 // basicfont.Face7x13 advance
	lineHeight  = 15
	infoPadding = 8
)

// RadialView draws the radial menu and routes pointer input to it
type RadialView struct {
	Menu   *radial.Menu
	Camera *render.Camera
	Icons  *render.IconSet
	Panels *Panels

	hovered int
}

func NewRadialView(menu *radial.Menu, cam *render.Camera, icons *render.IconSet) *RadialView {
	return &RadialView{Menu: menu, Camera: cam, Icons: icons, Panels: NewPanels(), hovered: -1}
}

// centerOnScreen is the menu anchor in screen pixels
func (v *RadialView) centerOnScreen() geom.Vec2 {
	return v.Camera.WorldToScreen(v.Menu.Center())
}

// ItemAt returns the index of the visible item under the cursor, or -1
func (v *RadialView) ItemAt(cursor geom.Vec2) int {
	if v.Menu.State() == radial.Closed {
		return -1
	}
	center := v.centerOnScreen()
	half := v.Menu.Config().ItemSize / 2
	for _, it := range v.Menu.Items() {
		if !it.Visible {
			continue
		}
		if center.Add(it.Offset).DistanceTo(cursor) <= half*it.Scale {
			return it.Index
		}
	}
	return -1
}

// Update drives hover state from the cursor and clicks items. It reports
// whether the primary press landed on the menu and must not reach the
// selection layer.
func (v *RadialView) Update(cursor geom.Vec2, primaryDown bool) bool {
	idx := v.ItemAt(cursor)
	if idx != v.hovered {
		if v.hovered >= 0 {
			v.Menu.Unhover(v.hovered)
		}
		if idx >= 0 {
			v.Menu.Hover(idx)
		}
		v.hovered = idx
	}
	if !primaryDown || idx < 0 {
		return false
	}
	v.Menu.Click(idx)
	return true
}

// Draw renders the items and the info panel
func (v *RadialView) Draw(screen *ebiten.Image) {
	if v.Menu.State() == radial.Closed {
		return
	}
	center := v.centerOnScreen()
	size := v.Menu.Config().ItemSize
	for _, it := range v.Menu.Items() {
		if !it.Visible || it.Alpha <= 0 {
			continue
		}
		p := center.Add(it.Offset)
		r := float32(size / 2 * it.Scale)
		a := uint8(255 * it.Alpha)
		ring := color.RGBA{120, 120, 140, a}
		if it.Interactable && it.Index == v.hovered {
			ring = color.RGBA{255, 220, 80, a}
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), r, color.RGBA{20, 24, 34, uint8(200 * it.Alpha)}, true)
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), r, 2, ring, true)

		if icon := v.iconFor(it); icon != nil {
			b := icon.Bounds()
			s := size * 0.8 * it.Scale / float64(b.Dx())
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
			op.GeoM.Scale(s, s)
			op.GeoM.Translate(p.X, p.Y)
			op.ColorScale.ScaleAlpha(float32(it.Alpha))
			screen.DrawImage(icon, op)
		}
	}
	v.drawInfo(screen, center)
}

func (v *RadialView) iconFor(it *radial.Item) *ebiten.Image {
	if v.Icons == nil {
		return nil
	}
	return v.Icons.Get(it.Icon)
}

func (v *RadialView) drawInfo(screen *ebiten.Image, center geom.Vec2) {
	info := v.Menu.Info()
	if !info.Visible {
		return
	}
	lines := strings.Split(info.Text, "\n")
	longest := 0
	for _, l := range lines {
		longest = max(longest, len(l))
	}
	w := longest*glyphWidth + infoPadding*2
	h := len(lines)*lineHeight + infoPadding*2
	reach := v.Menu.Config().Radius + v.Menu.Config().ItemSize
	x := int(center.X + reach)
	y := int(center.Y) - h/2
	if x+w > v.Camera.ScreenW {
		x = int(center.X-reach) - w
	}
	v.Panels.Draw(screen, x, y, w, h, 1)
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, x+infoPadding, y+infoPadding+11+i*lineHeight, color.White)
	}
}
