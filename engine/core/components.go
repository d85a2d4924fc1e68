package core

import "github.com/1siamBot/rts-command/engine/geom"

// ---- Position ----

// Position is a top-down world position
type Position struct {
	X, Y   float64
	Facing float64 // radians, 0 = east
}

func (p *Position) Type() ComponentType { return CompPosition }

// Vec returns the position as a vector
func (p *Position) Vec() geom.Vec2 { return geom.Vec2{X: p.X, Y: p.Y} }

// DistanceTo returns euclidean distance to another position
func (p *Position) DistanceTo(other *Position) float64 {
	return p.Vec().DistanceTo(other.Vec())
}

// ---- Sprite ----

// Sprite is the flat placeholder shape the renderer draws
type Sprite struct {
	Size    float64 // world units
	Color   uint32  // RGBA
	Visible bool
	ZOrder  int
}

func (s *Sprite) Type() ComponentType { return CompSprite }

// ---- Selection ----

// Selectable marks an entity as selectable by the player. Radius is the
// pick radius in world units used by point queries.
type Selectable struct {
	Name     string
	Selected bool
	Radius   float64
}

func (s *Selectable) Type() ComponentType { return CompSelectable }

// ---- Movement ----

// Movable gives an entity the unit role: it accepts move orders and walks
// straight to its target.
type Movable struct {
	Speed   float64 // world units per second
	Target  geom.Vec2
	Moving  bool
	UnitKey string // catalog key of the unit definition
}

func (m *Movable) Type() ComponentType { return CompMovable }

// ---- Building ----

// Building gives an entity the building role
type Building struct {
	Key string // catalog key of the building definition
}

func (b *Building) Type() ComponentType { return CompBuilding }

// ---- Production ----

// Production is a building's spawn queue
type Production struct {
	Queue    []string // unit keys waiting to be produced
	Progress float64  // seconds spent on Queue[0]
	Rally    geom.Vec2
}

func (p *Production) Type() ComponentType { return CompProduction }
