package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/rts-command/engine/catalog"
	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/render"
	"github.com/1siamBot/rts-command/engine/selection"
	"github.com/1siamBot/rts-command/engine/systems"
	"github.com/1siamBot/rts-command/engine/world"
)

const (
	messageTTL  = 4.0
	maxMessages = 5
)

type message struct {
	text string
	ttl  float64
}

// HUD is the main heads-up display. It follows the game through the event
// bus rather than polling the simulation.
type HUD struct {
	ScreenW, ScreenH int
	TopBarHeight     int
	BottomHeight     int

	// State
	Phase         selection.PhaseKind
	SelectedCount int
	MenuOpen      bool
	Paused        bool
	ControlGroups [10][]core.EntityID
	messages      []message

	// References
	Ledger  *core.Ledger
	Catalog *catalog.Catalog
	Panels  *Panels
}

func NewHUD(sw, sh int, ledger *core.Ledger, cat *catalog.Catalog) *HUD {
	return &HUD{
		ScreenW:      sw,
		ScreenH:      sh,
		TopBarHeight: 30,
		BottomHeight: 80,
		Ledger:       ledger,
		Catalog:      cat,
		Panels:       NewPanels(),
	}
}

// Subscribe wires the HUD to the game events it displays
func (h *HUD) Subscribe(bus *core.EventBus) {
	bus.On(core.EvtPhaseChanged, func(e core.Event) {
		if k, ok := e.Payload.(selection.PhaseKind); ok {
			h.Phase = k
		}
	})
	bus.On(core.EvtSelectionChanged, func(e core.Event) {
		if n, ok := e.Payload.(int); ok {
			h.SelectedCount = n
		}
	})
	bus.On(core.EvtMenuOpened, func(core.Event) { h.MenuOpen = true })
	bus.On(core.EvtMenuClosed, func(core.Event) { h.MenuOpen = false })
	bus.On(core.EvtUnitCreated, func(e core.Event) {
		if p, ok := e.Payload.(systems.UnitCreated); ok {
			h.Notify("%s ready", h.unitName(p.Key))
		}
	})
	bus.On(core.EvtSpawnRejected, func(e core.Event) {
		if p, ok := e.Payload.(world.SpawnRejected); ok {
			h.Notify("Cannot train %s: %s", h.unitName(p.Unit), p.Reason)
		}
	})
}

func (h *HUD) unitName(key string) string {
	if h.Catalog != nil {
		if def, ok := h.Catalog.Units[key]; ok {
			return def.Name
		}
	}
	return key
}

// Notify shows a transient message
func (h *HUD) Notify(format string, args ...any) {
	h.messages = append(h.messages, message{text: fmt.Sprintf(format, args...), ttl: messageTTL})
	if len(h.messages) > maxMessages {
		h.messages = h.messages[len(h.messages)-maxMessages:]
	}
}

// Messages returns the live messages, oldest first
func (h *HUD) Messages() []string {
	out := make([]string, len(h.messages))
	for i, m := range h.messages {
		out[i] = m.text
	}
	return out
}

// Update ages the transient messages
func (h *HUD) Update(dt float64) {
	kept := h.messages[:0]
	for _, m := range h.messages {
		m.ttl -= dt
		if m.ttl > 0 {
			kept = append(kept, m)
		}
	}
	h.messages = kept
}

// Draw renders the entire HUD
func (h *HUD) Draw(screen *ebiten.Image, w *core.World, selected []selection.Entity) {
	h.drawTopBar(screen)
	h.drawSelection(screen, w, selected)
	h.drawMessages(screen)
	if h.Paused {
		h.drawPaused(screen)
	}
}

func (h *HUD) drawTopBar(screen *ebiten.Image) {
	h.Panels.Draw(screen, 0, 0, h.ScreenW, h.TopBarHeight, 0.9)
	info := ""
	if h.Ledger != nil {
		info = h.Ledger.Stock.String()
	}
	ebitenutil.DebugPrintAt(screen, info, 10, 8)
	ebitenutil.DebugPrintAt(screen, "Mode: "+h.Phase.String(), h.ScreenW-160, 8)
}

func (h *HUD) drawSelection(screen *ebiten.Image, w *core.World, selected []selection.Entity) {
	if len(selected) == 0 {
		return
	}
	py := h.ScreenH - h.BottomHeight
	h.Panels.Draw(screen, 0, py, h.ScreenW, h.BottomHeight, 0.9)

	if len(selected) == 1 {
		if b := selected[0].Building(); b != nil {
			h.drawBuilding(screen, w, b.ID(), b.Name(), py)
			return
		}
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d selected", len(selected)), 10, py+58)
	x := 10
	for i, e := range selected {
		if i >= 24 {
			break
		}
		clr := color.RGBA{60, 120, 255, 200}
		if c := w.Get(e.ID(), core.CompSprite); c != nil {
			clr = render.RGBA(c.(*core.Sprite).Color)
		}
		vector.DrawFilledRect(screen, float32(x), float32(py+8), 40, 40, clr, false)
		vector.StrokeRect(screen, float32(x), float32(py+8), 40, 40, 1, color.RGBA{0, 0, 0, 160}, false)
		x += 45
	}
}

func (h *HUD) drawBuilding(screen *ebiten.Image, w *core.World, id core.EntityID, name string, py int) {
	ebitenutil.DebugPrintAt(screen, name, 10, py+8)
	c := w.Get(id, core.CompProduction)
	if c == nil || h.Catalog == nil {
		return
	}
	prod := c.(*core.Production)
	if len(prod.Queue) == 0 {
		ebitenutil.DebugPrintAt(screen, "Idle", 10, py+28)
		return
	}
	current := h.unitName(prod.Queue[0])
	ratio := 0.0
	if def, ok := h.Catalog.Units[prod.Queue[0]]; ok && def.SpawnTime > 0 {
		ratio = prod.Progress / def.SpawnTime
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Training %s (%.1fs)  queue: %d",
		current, systems.Remaining(h.Catalog, prod), len(prod.Queue)), 10, py+28)
	DrawBar(screen, 10, py+50, 240, 8, ratio, color.RGBA{0, 200, 0, 255})
}

func (h *HUD) drawMessages(screen *ebiten.Image) {
	y := h.TopBarHeight + 10
	for _, m := range h.messages {
		ebitenutil.DebugPrintAt(screen, m.text, 10, y)
		y += 16
	}
}

func (h *HUD) drawPaused(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.ScreenH), color.RGBA{0, 0, 0, 120}, false)
	pw, ph := 200, 60
	px, py := (h.ScreenW-pw)/2, (h.ScreenH-ph)/2
	h.Panels.Draw(screen, px, py, pw, ph, 1)
	ebitenutil.DebugPrintAt(screen, "PAUSED", px+pw/2-18, py+14)
	ebitenutil.DebugPrintAt(screen, "P to resume", px+pw/2-33, py+34)
}

// HandleClick processes HUD clicks. Returns true if click was consumed.
func (h *HUD) HandleClick(mx, my int) bool {
	if my < h.TopBarHeight {
		return true
	}
	return h.SelectedCount > 0 && my >= h.ScreenH-h.BottomHeight
}

// AssignControlGroup stores ids as group n
func (h *HUD) AssignControlGroup(n int, ids []core.EntityID) {
	if n < 0 || n > 9 {
		return
	}
	h.ControlGroups[n] = append([]core.EntityID(nil), ids...)
}

// ControlGroup returns the ids stored in group n
func (h *HUD) ControlGroup(n int) []core.EntityID {
	if n < 0 || n > 9 {
		return nil
	}
	return h.ControlGroups[n]
}
