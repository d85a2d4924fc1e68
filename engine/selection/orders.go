package selection

import (
	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/formation"
	"github.com/1siamBot/rts-command/engine/geom"
)

// pick resolves a click at a screen position
func (m *Machine) pick(screen geom.Vec2, multi bool) {
	reg := m.ctx.Registry
	if m.ctx.World == nil {
		reg.Clear()
		return
	}
	hit := m.ctx.World.OverlapPoint(m.ctx.Projection.ScreenToWorld(screen))
	switch {
	case hit == nil:
		reg.Clear()
	case multi:
		reg.Toggle(hit)
	default:
		reg.Clear()
		reg.Select(hit)
	}
}

// boxSelect selects the entities whose viewport position lies inside the
// dragged rectangle. Buildings are exclusive: when the box holds one, only
// the first building is selected.
func (m *Machine) boxSelect(a, b geom.Vec2) {
	if m.ctx.World == nil {
		return
	}
	proj := m.ctx.Projection
	rect := geom.RectFromPoints(proj.ScreenToViewport(a), proj.ScreenToViewport(b))

	var hits []Entity
	var building Entity
	for _, e := range m.ctx.World.Selectables() {
		if !rect.Contains(proj.WorldToViewport(e.Position())) {
			continue
		}
		hits = append(hits, e)
		if building == nil && e.Building() != nil {
			building = e
		}
	}
	if len(hits) == 0 {
		return
	}

	reg := m.ctx.Registry
	reg.Clear()
	if building != nil {
		reg.Select(building)
		return
	}
	for _, e := range hits {
		reg.Select(e)
	}
}

// ensureOffsets returns the stored formation offsets when they match the
// selection size, otherwise computes the fallback layout and stores it
func (m *Machine) ensureOffsets() []geom.Vec2 {
	reg := m.ctx.Registry
	if reg.OffsetsValid() {
		return reg.LastOffsets()
	}
	cfg := m.ctx.Config
	n := reg.Len()
	offsets := formation.Offsets(n, formation.UnitsPerRow(n, cfg.FallbackRows), cfg.DefaultSpacing)
	reg.SetLastOffsets(offsets)
	return offsets
}

// commandAt orders the selection to the world point under a screen position
func (m *Machine) commandAt(screen geom.Vec2) {
	m.issueMove(m.ctx.Projection.ScreenToWorld(screen), m.ensureOffsets())
}

// issueMove sends every selected unit to center plus its offset. Offsets are
// indexed by unit, so buildings in the selection do not consume a slot.
func (m *Machine) issueMove(center geom.Vec2, offsets []geom.Vec2) int {
	var targets []geom.Vec2
	for _, e := range m.ctx.Registry.Entities() {
		u := e.Unit()
		if u == nil {
			continue
		}
		var off geom.Vec2
		if i := len(targets); i < len(offsets) {
			off = offsets[i]
		}
		target := center.Add(off)
		u.MoveTo(target)
		targets = append(targets, target)
	}
	if len(targets) > 0 {
		m.ctx.Bus.Emit(core.Event{Type: core.EvtUnitMoveOrder, Payload: MoveOrder{Center: center, Targets: targets}})
	}
	return len(targets)
}
