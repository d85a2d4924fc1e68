package world

import (
	"github.com/1siamBot/rts-command/engine/catalog"
	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/geom"
)

// SpawnUnit creates a unit entity from its definition
func SpawnUnit(w *core.World, def *catalog.UnitDef, at geom.Vec2) core.EntityID {
	id := w.Spawn()
	w.Attach(id, &core.Position{X: at.X, Y: at.Y})
	w.Attach(id, &core.Sprite{Size: def.Size, Color: def.Color, Visible: true, ZOrder: 1})
	w.Attach(id, &core.Selectable{Name: def.Name, Radius: max(def.Size/2, 0.4)})
	w.Attach(id, &core.Movable{Speed: def.Speed, UnitKey: def.Key})
	return id
}

// SpawnBuilding creates a building entity from its definition
func SpawnBuilding(w *core.World, def *catalog.BuildingDef, at geom.Vec2) core.EntityID {
	id := w.Spawn()
	w.Attach(id, &core.Position{X: at.X, Y: at.Y})
	w.Attach(id, &core.Sprite{Size: def.Size, Color: def.Color, Visible: true})
	w.Attach(id, &core.Selectable{Name: def.Name, Radius: def.Size / 2})
	w.Attach(id, &core.Building{Key: def.Key})
	if len(def.CanProduce) > 0 {
		w.Attach(id, &core.Production{})
	}
	return id
}

// OrderMove sets the move target of a unit. It returns false when the
// entity cannot move.
func OrderMove(w *core.World, id core.EntityID, target geom.Vec2) bool {
	c := w.Get(id, core.CompMovable)
	if c == nil {
		return false
	}
	mov := c.(*core.Movable)
	mov.Target = target
	mov.Moving = true
	return true
}
