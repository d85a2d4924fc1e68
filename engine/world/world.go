// Package world exposes ECS entities to the selection layer and the radial
// menu: point and box queries, entity roles and the spawn request path.
package world

import (
	"log"
	"math"

	"github.com/1siamBot/rts-command/engine/catalog"
	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/geom"
	"github.com/1siamBot/rts-command/engine/radial"
	"github.com/1siamBot/rts-command/engine/selection"
)

// SpawnRejected is the payload of EvtSpawnRejected
type SpawnRejected struct {
	Building core.EntityID
	Unit     string
	Reason   string
}

// World answers selection queries against an ECS world
type World struct {
	ECS     *core.World
	Catalog *catalog.Catalog
	Ledger  *core.Ledger
	Bus     *core.EventBus
	log     *log.Logger
}

func New(ecs *core.World, cat *catalog.Catalog, ledger *core.Ledger, bus *core.EventBus, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{ECS: ecs, Catalog: cat, Ledger: ledger, Bus: bus, log: logger}
}

// Ref returns a handle to an entity
func (w *World) Ref(id core.EntityID) *Ref {
	return &Ref{w: w, id: id}
}

// OverlapPoint returns the selectable whose pick radius covers p. When
// several overlap the nearest wins.
func (w *World) OverlapPoint(p geom.Vec2) selection.Entity {
	best := core.EntityID(0)
	bestDist := math.Inf(1)
	for _, id := range w.ECS.Query(core.CompPosition, core.CompSelectable) {
		pos := w.ECS.Get(id, core.CompPosition).(*core.Position)
		sel := w.ECS.Get(id, core.CompSelectable).(*core.Selectable)
		d := pos.Vec().DistanceTo(p)
		if d <= sel.Radius && d < bestDist {
			best, bestDist = id, d
		}
	}
	if best == 0 {
		return nil
	}
	return w.Ref(best)
}

// Selectables returns every selectable entity in spawn order
func (w *World) Selectables() []selection.Entity {
	ids := w.ECS.Query(core.CompPosition, core.CompSelectable)
	out := make([]selection.Entity, len(ids))
	for i, id := range ids {
		out[i] = w.Ref(id)
	}
	return out
}

// Ref is a non-owning handle to one entity. It implements the selection
// entity, unit and building roles by looking up components on demand.
type Ref struct {
	w  *World
	id core.EntityID
}

func (r *Ref) ID() core.EntityID { return r.id }

func (r *Ref) Alive() bool { return r.w.ECS.Alive(r.id) }

func (r *Ref) Position() geom.Vec2 {
	if c := r.w.ECS.Get(r.id, core.CompPosition); c != nil {
		return c.(*core.Position).Vec()
	}
	return geom.Vec2{}
}

func (r *Ref) Name() string {
	if c := r.w.ECS.Get(r.id, core.CompSelectable); c != nil {
		return c.(*core.Selectable).Name
	}
	return ""
}

func (r *Ref) Unit() selection.Unit {
	if !r.w.ECS.Has(r.id, core.CompMovable) {
		return nil
	}
	return r
}

func (r *Ref) Building() radial.Building {
	if !r.w.ECS.Has(r.id, core.CompBuilding) {
		return nil
	}
	return r
}

func (r *Ref) OnSelect()   { r.setSelected(true) }
func (r *Ref) OnDeselect() { r.setSelected(false) }

func (r *Ref) setSelected(v bool) {
	if c := r.w.ECS.Get(r.id, core.CompSelectable); c != nil {
		c.(*core.Selectable).Selected = v
	}
}

// MoveTo orders the unit to walk to target
func (r *Ref) MoveTo(target geom.Vec2) {
	OrderMove(r.w.ECS, r.id, target)
}

func (r *Ref) buildingKey() string {
	if c := r.w.ECS.Get(r.id, core.CompBuilding); c != nil {
		return c.(*core.Building).Key
	}
	return ""
}

// SpawnList returns the units the building can produce
func (r *Ref) SpawnList() []*catalog.UnitDef {
	if r.w.Catalog == nil {
		return nil
	}
	return r.w.Catalog.Spawnable(r.buildingKey())
}

// TrySpawnUnit pays for def and queues it for production. It returns false
// without side effects when the building cannot produce the unit or the
// player cannot afford it.
func (r *Ref) TrySpawnUnit(def *catalog.UnitDef) bool {
	if def == nil {
		return false
	}
	key := r.buildingKey()
	if r.w.Catalog == nil || !r.w.Catalog.CanProduce(key, def.Key) {
		r.reject(def, "not in roster")
		return false
	}
	if r.w.Ledger != nil && !r.w.Ledger.Spend(def.Cost) {
		r.reject(def, "insufficient resources")
		return false
	}

	c := r.w.ECS.Get(r.id, core.CompProduction)
	if c == nil {
		c = &core.Production{}
		r.w.ECS.Attach(r.id, c)
	}
	prod := c.(*core.Production)
	prod.Queue = append(prod.Queue, def.Key)
	r.w.log.Printf("%s queued %s (%d in queue)", r.Name(), def.Name, len(prod.Queue))
	return true
}

func (r *Ref) reject(def *catalog.UnitDef, reason string) {
	r.w.log.Printf("%s cannot spawn %s: %s", r.Name(), def.Name, reason)
	r.w.Bus.Emit(core.Event{
		Type:    core.EvtSpawnRejected,
		Tick:    r.w.ECS.TickCount,
		Payload: SpawnRejected{Building: r.id, Unit: def.Key, Reason: reason},
	})
}
