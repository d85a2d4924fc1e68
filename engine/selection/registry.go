package selection

import (
	"log"
	"slices"

	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/geom"
)

// Registry is the ordered set of currently selected entities. It does not
// own them; it only calls their select hooks.
type Registry struct {
	entities    []Entity
	lastOffsets []geom.Vec2

	menu  MenuController
	sched *core.Scheduler
	bus   *core.EventBus
	log   *log.Logger
}

func NewRegistry(menu MenuController, sched *core.Scheduler, bus *core.EventBus, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{menu: menu, sched: sched, bus: bus, log: logger}
}

func (r *Registry) indexOf(id core.EntityID) int {
	for i, e := range r.entities {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

// Contains reports whether e is selected
func (r *Registry) Contains(e Entity) bool {
	return e != nil && r.indexOf(e.ID()) >= 0
}

func (r *Registry) Len() int { return len(r.entities) }

// Entities returns the selection in insertion order
func (r *Registry) Entities() []Entity {
	return slices.Clone(r.entities)
}

// Units returns the selected entities that can move, in selection order
func (r *Registry) Units() []Unit {
	var out []Unit
	for _, e := range r.entities {
		if u := e.Unit(); u != nil {
			out = append(out, u)
		}
	}
	return out
}

// HasBuilding reports whether any selected entity is a building
func (r *Registry) HasBuilding() bool {
	for _, e := range r.entities {
		if e.Building() != nil {
			return true
		}
	}
	return false
}

// Select adds e to the selection. Selecting a building opens its radial
// menu on the next tick.
func (r *Registry) Select(e Entity) {
	if e == nil || r.Contains(e) {
		return
	}
	r.entities = append(r.entities, e)
	e.OnSelect()
	r.changed()

	b := e.Building()
	if b == nil || r.menu == nil {
		return
	}
	open := func() {
		if r.Contains(e) {
			r.menu.Open(b)
		}
	}
	if r.sched == nil {
		open()
		return
	}
	r.sched.Defer(open)
}

// Deselect removes e from the selection. The radial menu is cancelled only
// when it belongs to e.
func (r *Registry) Deselect(e Entity) {
	if e == nil {
		return
	}
	i := r.indexOf(e.ID())
	if i < 0 {
		return
	}
	r.entities = slices.Delete(r.entities, i, i+1)
	e.OnDeselect()
	if b := e.Building(); b != nil && r.menu != nil {
		if active := r.menu.ActiveBuilding(); active != nil && active.ID() == b.ID() {
			r.menu.Cancel()
		}
	}
	r.changed()
}

// Toggle flips the membership of e
func (r *Registry) Toggle(e Entity) {
	if r.Contains(e) {
		r.Deselect(e)
	} else {
		r.Select(e)
	}
}

// Clear deselects everything and cancels the radial menu
func (r *Registry) Clear() {
	prev := r.entities
	r.entities = nil
	for _, e := range prev {
		e.OnDeselect()
	}
	if r.menu != nil {
		r.menu.Cancel()
	}
	if len(prev) > 0 {
		r.changed()
	}
}

// LastOffsets returns the formation offsets of the last formation drag
func (r *Registry) LastOffsets() []geom.Vec2 {
	return r.lastOffsets
}

// SetLastOffsets stores a copy of offsets for later quick commands
func (r *Registry) SetLastOffsets(offsets []geom.Vec2) {
	r.lastOffsets = slices.Clone(offsets)
}

// OffsetsValid reports whether the stored offsets fit the current
// selection. Stale offsets are not an error, they are just recomputed.
func (r *Registry) OffsetsValid() bool {
	return len(r.entities) > 0 && len(r.lastOffsets) == len(r.entities)
}

func (r *Registry) changed() {
	r.bus.Emit(core.Event{Type: core.EvtSelectionChanged, Payload: len(r.entities)})
}
