package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panels caches the procedurally generated panel backgrounds, keyed by size
type Panels struct {
	cache map[[2]int]*ebiten.Image
}

func NewPanels() *Panels {
	return &Panels{cache: make(map[[2]int]*ebiten.Image)}
}

// Draw draws a beveled dark metal panel at x,y
func (p *Panels) Draw(screen *ebiten.Image, x, y, w, h int, alpha float32) {
	if w <= 0 || h <= 0 {
		return
	}
	key := [2]int{w, h}
	img, ok := p.cache[key]
	if !ok {
		img = generateDarkMetalPanel(w, h)
		drawBevelBorder(img, w, h)
		p.cache[key] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(img, op)
}

// DrawBar draws a horizontal progress bar filled to ratio
func DrawBar(screen *ebiten.Image, x, y, w, h int, ratio float64, clr color.RGBA) {
	ratio = math.Max(0, math.Min(1, ratio))
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{10, 10, 10, 200}, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(float64(w)*ratio), float32(h), clr, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, color.RGBA{70, 85, 110, 255}, false)
}

func generateDarkMetalPanel(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// slightly lighter at the top, with brushed lines
			v := 22.0 + 8.0*(1.0-float64(y)/float64(h))
			v += 2.0 * math.Sin(float64(y)*0.8+float64(x)*0.01)
			v += 3.0 * math.Sin(float64(x*7919+y*7927)*0.001)

			i := (y*w + x) * 4
			pix[i] = uint8(math.Max(0, math.Min(255, v*0.9)))
			pix[i+1] = uint8(math.Max(0, math.Min(255, v*0.95)))
			pix[i+2] = uint8(math.Max(0, math.Min(255, v*1.2)))
			pix[i+3] = 230
		}
	}
	img.WritePixels(premultiply(pix))
	return img
}

// premultiply converts straight alpha RGBA pixels for WritePixels
func premultiply(pix []byte) []byte {
	for i := 0; i < len(pix); i += 4 {
		a := uint32(pix[i+3])
		pix[i] = uint8(uint32(pix[i]) * a / 255)
		pix[i+1] = uint8(uint32(pix[i+1]) * a / 255)
		pix[i+2] = uint8(uint32(pix[i+2]) * a / 255)
	}
	return pix
}

func drawBevelRect(dst *ebiten.Image, x, y, w, h int, highlight, shadow color.NRGBA) {
	half := func(c color.NRGBA) color.NRGBA { return color.NRGBA{c.R, c.G, c.B, c.A / 2} }
	// top and left catch the light
	for i := 0; i < w; i++ {
		dst.Set(x+i, y, highlight)
		dst.Set(x+i, y+1, half(highlight))
		dst.Set(x+i, y+h-1, shadow)
		dst.Set(x+i, y+h-2, half(shadow))
	}
	for i := 0; i < h; i++ {
		dst.Set(x, y+i, highlight)
		dst.Set(x+1, y+i, half(highlight))
		dst.Set(x+w-1, y+i, shadow)
		dst.Set(x+w-2, y+i, half(shadow))
	}
}

func drawBevelBorder(dst *ebiten.Image, w, h int) {
	drawBevelRect(dst, 0, 0, w, h, color.NRGBA{70, 85, 110, 200}, color.NRGBA{10, 15, 25, 200})
}
