// Package selection turns raw pointer input into selection and command
// intent: it owns the selected set, the phase state machine driving
// click/box selection, move orders and formation dragging.
package selection

import (
	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/geom"
	"github.com/1siamBot/rts-command/engine/radial"
)

// Unit is the movable role of an entity
type Unit interface {
	MoveTo(target geom.Vec2)
}

// Entity is anything that can be selected. Unit and Building return nil
// when the entity does not have that role.
type Entity interface {
	ID() core.EntityID
	Position() geom.Vec2
	Unit() Unit
	Building() radial.Building
	OnSelect()
	OnDeselect()
}

// Projection converts between screen pixels, world units and normalized
// viewport coordinates
type Projection interface {
	ScreenToWorld(p geom.Vec2) geom.Vec2
	WorldToViewport(p geom.Vec2) geom.Vec2
	ScreenToViewport(p geom.Vec2) geom.Vec2
}

// WorldQuery answers spatial questions about selectable entities
type WorldQuery interface {
	// OverlapPoint returns the selectable under p, or nil
	OverlapPoint(p geom.Vec2) Entity
	// Selectables lists every selectable entity in a stable order
	Selectables() []Entity
}

// MenuController is the part of the radial menu the selection drives
type MenuController interface {
	Open(b radial.Building)
	Cancel()
	// ActiveBuilding is the building the menu is showing, or nil
	ActiveBuilding() radial.Building
}

// Input is one frame of pointer state. The Down/Up flags are edges, Held is
// level.
type Input struct {
	Cursor geom.Vec2 // screen pixels

	PrimaryDown, PrimaryHeld, PrimaryUp       bool
	SecondaryDown, SecondaryHeld, SecondaryUp bool

	MultiSelect       bool
	FormationModifier bool
}

// MoveOrder is the payload of EvtUnitMoveOrder
type MoveOrder struct {
	Center  geom.Vec2
	Targets []geom.Vec2
}

// identity is used when no projection is wired; screen, world and viewport
// coordinates are then the same space
type identity struct{}

func (identity) ScreenToWorld(p geom.Vec2) geom.Vec2   { return p }
func (identity) WorldToViewport(p geom.Vec2) geom.Vec2 { return p }
func (identity) ScreenToViewport(p geom.Vec2) geom.Vec2 { return p }
