package render

import (
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/1siamBot/rts-command/engine/catalog"
)

// IconSize is the edge length of generated placeholder icons
const IconSize = 40

// IconSet holds the menu icons keyed by catalog icon key. Missing files get
// a generated placeholder so the menu never draws an empty slot.
type IconSet struct {
	icons map[string]*ebiten.Image
	dir   string
}

// NewIconSet loads an icon for every unit and building in the catalog
func NewIconSet(cat *catalog.Catalog, logger *log.Logger) *IconSet {
	if logger == nil {
		logger = log.Default()
	}
	s := &IconSet{
		icons: make(map[string]*ebiten.Image),
		dir:   filepath.Join(getAssetsDir(), "icons"),
	}
	loaded := 0
	for _, u := range cat.Units {
		if s.load(u.Icon, u.Name, u.Color, logger) {
			loaded++
		}
	}
	for _, b := range cat.Buildings {
		if s.load(b.Icon, b.Name, b.Color, logger) {
			loaded++
		}
	}
	logger.Printf("IconSet: loaded %d icons from %s, %d placeholders", loaded, s.dir, len(s.icons)-loaded)
	return s
}

func (s *IconSet) load(key, label string, clr uint32, logger *log.Logger) bool {
	if key == "" {
		return false
	}
	if img := loadFromFile(filepath.Join(s.dir, key+".png"), logger); img != nil {
		s.icons[key] = img
		return true
	}
	s.icons[key] = placeholderIcon(label, RGBA(clr))
	return false
}

// Get returns the icon for key, or nil when it is unknown
func (s *IconSet) Get(key string) *ebiten.Image {
	return s.icons[key]
}

// placeholderIcon draws a colored disc with the label's first letter
func placeholderIcon(label string, clr color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(IconSize, IconSize)
	r := float32(IconSize) / 2
	vector.DrawFilledCircle(img, r, r, r-1, clr, true)
	vector.StrokeCircle(img, r, r, r-1, 2, color.RGBA{20, 20, 20, 255}, true)
	if label != "" {
		face := basicfont.Face7x13
		text.Draw(img, label[:1], face, IconSize/2-3, IconSize/2+4, color.White)
	}
	return img
}

func getAssetsDir() string {
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "assets")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "assets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return "assets"
}

func loadFromFile(path string, logger *log.Logger) *ebiten.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		logger.Printf("Warning: could not decode icon %s: %v", path, err)
		return nil
	}
	return ebiten.NewImageFromImage(img)
}
