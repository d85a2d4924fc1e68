// Package radial implements the building-scoped radial command menu: a modal
// popup listing the units a building can spawn, with staggered open, collapse
// and cancel animations that stay consistent under rapid toggling.
package radial

import (
	"log"
	"math"

	"github.com/1siamBot/rts-command/engine/catalog"
	"github.com/1siamBot/rts-command/engine/config"
	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/geom"
	"github.com/1siamBot/rts-command/engine/tween"
)

// State is the lifecycle state of the menu session
type State uint8

const (
	Closed State = iota
	Opening
	Open
	Closing
	Cancelling
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	case Cancelling:
		return "cancelling"
	}
	return "unknown"
}

// Building is what the menu needs from a selected building
type Building interface {
	ID() core.EntityID
	Name() string
	Position() geom.Vec2
	// SpawnList returns nil when the building has no roster; individual
	// definitions may be nil when the data is broken.
	SpawnList() []*catalog.UnitDef
	TrySpawnUnit(def *catalog.UnitDef) bool
}

// Entry is the view-model of one menu slot, built fresh on every open
type Entry struct {
	Icon     string
	Label    string
	Unit     *catalog.UnitDef // spawn action when set
	Fallback func()           // used when Unit is nil
}

// IsUnitSpawn reports whether clicking the entry spawns a unit
func (e *Entry) IsUnitSpawn() bool { return e.Unit != nil }

// Item is a live menu button. Offset is relative to the menu center in
// screen pixels.
type Item struct {
	Index        int
	Icon         string
	Label        string
	Unit         *catalog.UnitDef
	Target       geom.Vec2
	Offset       geom.Vec2
	Rotation     float64 // degrees
	Alpha        float64
	Scale        float64
	Visible      bool
	Interactable bool

	action func()
	anim   tween.Handle
	hover  tween.Handle
}

// InfoPanel describes the hovered unit
type InfoPanel struct {
	Visible bool
	Unit    *catalog.UnitDef
	Text    string
}

// Menu is the single radial menu session
type Menu struct {
	cfg   config.MenuConfig
	tw    *tween.Tweener
	sched *core.Scheduler
	log   *log.Logger
	Bus   *core.EventBus

	state    State
	building Building
	center   geom.Vec2
	items    []*Item
	info     InfoPanel
	pending  Building

	session  tween.Group
	cleanup  core.TimerID
	closing  core.TimerID
	hideInfo core.TimerID
}

// NewMenu creates a closed menu. Animations run on tw and delayed work on
// sched; both must be advanced by the caller every frame.
func NewMenu(cfg config.MenuConfig, tw *tween.Tweener, sched *core.Scheduler, logger *log.Logger) *Menu {
	if logger == nil {
		logger = log.Default()
	}
	return &Menu{cfg: cfg, tw: tw, sched: sched, log: logger}
}

func (m *Menu) State() State              { return m.state }
func (m *Menu) ActiveBuilding() Building  { return m.building }
func (m *Menu) Center() geom.Vec2         { return m.center }
func (m *Menu) Items() []*Item            { return m.items }
func (m *Menu) Info() InfoPanel           { return m.info }
func (m *Menu) Config() config.MenuConfig { return m.cfg }

// VisibleItems counts items currently shown
func (m *Menu) VisibleItems() int {
	n := 0
	for _, it := range m.items {
		if it.Visible {
			n++
		}
	}
	return n
}

func (m *Menu) isFor(b Building) bool {
	return m.building != nil && b != nil && m.building.ID() == b.ID()
}

// Open builds the entries from the building's spawn list and populates the
// menu. A request that arrives while a cancel is still animating is parked
// and replayed once the cancel finishes.
func (m *Menu) Open(b Building) {
	if b == nil {
		return
	}
	if m.state == Cancelling {
		m.log.Printf("menu cancelling, open for %s queued", b.Name())
		m.pending = b
		return
	}
	defs := b.SpawnList()
	if defs == nil {
		m.log.Printf("building %s has no spawnable units", b.Name())
		return
	}
	entries := make([]*Entry, 0, len(defs))
	for i, def := range defs {
		if def == nil {
			m.log.Printf("building %s: spawn entry %d is missing", b.Name(), i)
			continue
		}
		entries = append(entries, &Entry{Icon: def.Icon, Label: def.Name, Unit: def})
	}
	m.Populate(entries, b)
}

// Populate fills the menu for b. Duplicate requests for the building already
// shown and requests while an open or cancel animation runs are ignored.
// A menu open for another building is torn down first.
func (m *Menu) Populate(entries []*Entry, b Building) {
	if b == nil {
		m.log.Printf("populate called without a building")
		return
	}
	if m.isFor(b) && m.VisibleItems() > 0 && (m.state == Opening || m.state == Open) {
		m.log.Printf("menu already populated for %s", b.Name())
		return
	}
	if m.state == Opening || m.state == Cancelling {
		m.log.Printf("menu is %s, skipping populate for %s", m.state, b.Name())
		return
	}
	if m.state != Closed {
		m.teardown()
	}

	type slot struct {
		entry  *Entry
		action func()
	}
	var slots []slot
	for i, e := range entries {
		if e == nil {
			m.log.Printf("entry %d is nil", i)
			continue
		}
		var action func()
		switch {
		case e.Unit != nil:
			def := e.Unit
			action = func() { b.TrySpawnUnit(def) }
		case e.Fallback != nil:
			action = e.Fallback
		default:
			m.log.Printf("entry %d (%q) has no action", i, e.Label)
			continue
		}
		if e.Icon == "" {
			m.log.Printf("entry %d (%q) has no icon", i, e.Label)
		}
		slots = append(slots, slot{entry: e, action: action})
	}
	if len(slots) == 0 {
		m.log.Printf("no usable entries for %s", b.Name())
		return
	}

	m.session = m.tw.NewGroup()
	m.building = b
	m.center = b.Position().Add(m.cfg.Offset)
	m.state = Opening
	m.items = m.items[:0]

	step := 360.0 / float64(len(slots))
	for i, s := range slots {
		angle := float64(i) * step
		rad := angle * math.Pi / 180
		it := &Item{
			Index:    i,
			Icon:     s.entry.Icon,
			Label:    s.entry.Label,
			Unit:     s.entry.Unit,
			Target:   geom.Vec2{X: math.Cos(rad), Y: math.Sin(rad)}.Scale(m.cfg.Radius),
			Rotation: angle - 90,
			Scale:    1,
			action:   s.action,
		}
		m.items = append(m.items, it)
		it.anim = m.tw.Start(tween.Spec{
			Group:    m.session,
			Delay:    float64(i) * m.cfg.StaggerDelay,
			Duration: m.cfg.OpenDuration,
			OnStart: func() {
				it.Alpha = 0
				it.Visible = true
			},
			Step: func(k float64) {
				it.Alpha = k
				it.Offset = geom.Vec2{}.Lerp(it.Target, tween.OutBack(k))
			},
			OnComplete: func() {
				if it.Visible {
					it.Interactable = true
				}
			},
		})
	}

	settle := float64(len(slots))*m.cfg.StaggerDelay + m.cfg.SettleDelay
	m.tw.Call(m.session, settle, func() {
		if m.state == Opening {
			m.state = Open
		}
	})
	m.Bus.Emit(core.Event{Type: core.EvtMenuOpened, Payload: b.ID()})
}

// Cancel tears the menu down with the reverse animation and deactivates it
// after CancelCleanupDelay. It may be called in any state; calling it again
// while cancelling restarts the cleanup timer.
func (m *Menu) Cancel() {
	if m.state == Closed {
		m.pending = nil
		return
	}
	if m.state == Cancelling {
		m.log.Printf("cancel called while cancelling, restarting cancel flow")
	}
	m.pending = nil
	m.sched.Cancel(m.cleanup)
	m.sched.Cancel(m.closing)
	m.tw.KillGroup(m.session)

	m.state = Cancelling
	m.collapse()
	m.hideInfoNow()
	m.cleanup = m.sched.After(m.cfg.CancelCleanupDelay, m.finishCancel)
}

// Close collapses an open menu. A menu still opening is cancelled instead;
// a cancel in progress always wins over a close.
func (m *Menu) Close() {
	switch m.state {
	case Opening:
		m.Cancel()
	case Open:
		m.tw.KillGroup(m.session)
		m.state = Closing
		m.collapse()
		m.hideInfoNow()
		m.closing = m.sched.After(m.cfg.CloseDelay, m.finishClose)
	}
}

// collapse animates every visible item back into the center and drops the
// ones that never appeared
func (m *Menu) collapse() {
	kept := m.items[:0]
	for _, it := range m.items {
		if it.Visible {
			kept = append(kept, it)
		}
	}
	for i := len(kept); i < len(m.items); i++ {
		m.items[i] = nil
	}
	m.items = kept

	for _, it := range m.items {
		it.Interactable = false
		fromOff, fromScale, fromAlpha := it.Offset, it.Scale, it.Alpha
		it.hover = 0
		it.anim = m.tw.Start(tween.Spec{
			Group:    m.session,
			Duration: m.cfg.CollapseDuration,
			Step: func(k float64) {
				it.Offset = fromOff.Lerp(geom.Vec2{}, tween.InOutBack(k))
				it.Scale = fromScale * (1 - tween.InBack(k))
				it.Alpha = fromAlpha * (1 - tween.InOutSine(k))
			},
			OnComplete: func() { m.removeItem(it) },
		})
	}
}

func (m *Menu) finishCancel() {
	m.cleanup = 0
	m.reset()
	if p := m.pending; p != nil {
		m.pending = nil
		m.Open(p)
	}
}

func (m *Menu) finishClose() {
	m.closing = 0
	if m.state == Closing {
		m.reset()
	}
}

// teardown closes the session immediately, without animation
func (m *Menu) teardown() {
	m.sched.Cancel(m.cleanup)
	m.sched.Cancel(m.closing)
	m.hideInfoNow()
	m.reset()
}

func (m *Menu) reset() {
	m.tw.KillGroup(m.session)
	m.session = 0
	m.items = m.items[:0]
	prev := m.building
	m.building = nil
	m.state = Closed
	if prev != nil {
		m.Bus.Emit(core.Event{Type: core.EvtMenuClosed, Payload: prev.ID()})
	}
}

func (m *Menu) removeItem(it *Item) {
	for i, x := range m.items {
		if x == it {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}

func (m *Menu) item(i int) *Item {
	for _, it := range m.items {
		if it.Index == i {
			return it
		}
	}
	return nil
}

// Click runs the item's action. Items ignore clicks until their own open
// animation has completed.
func (m *Menu) Click(i int) bool {
	it := m.item(i)
	if it == nil || !it.Interactable || it.action == nil {
		return false
	}
	it.action()
	return true
}
