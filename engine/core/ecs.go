package core

// EntityID identifies an entity within its World. Zero is never assigned and
// means "no entity".
type EntityID uint64

// Component is a marker interface for all components
type Component interface {
	Type() ComponentType
}

// ComponentType identifies the type of component
type ComponentType uint32

const (
	CompPosition ComponentType = iota
	CompSprite
	CompSelectable
	CompMovable
	CompBuilding
	CompProduction
	CompMax
)

// World holds all entities and their components. Entities live for the
// whole session; nothing in the prototype removes them.
type World struct {
	entities  map[EntityID]map[ComponentType]Component
	order     []EntityID // spawn order
	nextID    EntityID
	systems   []System
	TickCount uint64
	TickRate  float64 // ticks per second
}

// System processes entities each tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// NewWorld creates a new ECS world
func NewWorld(tickRate float64) *World {
	return &World{
		entities: make(map[EntityID]map[ComponentType]Component),
		TickRate: tickRate,
	}
}

// Spawn creates a new entity and returns its ID
func (w *World) Spawn() EntityID {
	w.nextID++
	id := w.nextID
	w.entities[id] = make(map[ComponentType]Component)
	w.order = append(w.order, id)
	return id
}

// Attach adds a component to an entity, replacing one of the same type
func (w *World) Attach(id EntityID, c Component) {
	if comps, ok := w.entities[id]; ok {
		comps[c.Type()] = c
	}
}

// Get returns a component for an entity, or nil
func (w *World) Get(id EntityID, ct ComponentType) Component {
	if comps, ok := w.entities[id]; ok {
		return comps[ct]
	}
	return nil
}

// Has checks if an entity has a component
func (w *World) Has(id EntityID, ct ComponentType) bool {
	_, ok := w.entities[id][ct]
	return ok
}

// Alive reports whether id was spawned in this world
func (w *World) Alive(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Query returns the entities that have all the given component types, in
// spawn order
func (w *World) Query(types ...ComponentType) []EntityID {
	var result []EntityID
	for _, id := range w.order {
		comps := w.entities[id]
		match := true
		for _, t := range types {
			if _, ok := comps[t]; !ok {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	return result
}

// AddSystem registers a system, keeping the list ordered by priority
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Tick runs all systems once
func (w *World) Tick(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.TickCount++
}

// EntityCount returns the number of entities
func (w *World) EntityCount() int {
	return len(w.order)
}
