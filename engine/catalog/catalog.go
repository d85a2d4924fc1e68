// Package catalog holds the unit and building definitions the game spawns
// from: display data for the radial menu and stats for the simulation.
package catalog

import "github.com/1siamBot/rts-command/engine/core"

// UnitDef defines a unit type that can be produced
type UnitDef struct {
	Key         string
	Name        string
	Icon        string // sprite sheet key
	Description string
	Cost        core.Resources
	SpawnTime   float64 // seconds
	Speed       float64 // world units per second
	Size        float64
	Color       uint32
}

// BuildingDef defines a building type
type BuildingDef struct {
	Key         string
	Name        string
	Icon        string
	Description string
	Size        float64
	Color       uint32
	CanProduce  []string // unit keys, in menu order
}

// Catalog holds all definitions
type Catalog struct {
	Units     map[string]*UnitDef
	Buildings map[string]*BuildingDef
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		Units:     make(map[string]*UnitDef),
		Buildings: make(map[string]*BuildingDef),
	}
}

// Default creates the prototype's unit roster
func Default() *Catalog {
	c := NewCatalog()

	c.AddUnit(&UnitDef{Key: "worker", Name: "Worker", Icon: "icon_worker", Description: "Gathers resources and raises buildings.",
		Cost: core.Resources{Food: 50}, SpawnTime: 3, Speed: 3.0, Size: 0.6, Color: 0xE0C060FF})
	c.AddUnit(&UnitDef{Key: "militia", Name: "Militia", Icon: "icon_militia", Description: "Cheap infantry armed with whatever was lying around.",
		Cost: core.Resources{Wood: 20, Food: 40}, SpawnTime: 4, Speed: 3.5, Size: 0.6, Color: 0x4080FFFF})
	c.AddUnit(&UnitDef{Key: "swordsman", Name: "Swordsman", Icon: "icon_swordsman", Description: "Armoured melee line holder.",
		Cost: core.Resources{Metal: 30, Food: 60, Gold: 10}, SpawnTime: 6, Speed: 3.0, Size: 0.7, Color: 0x3060D0FF})
	c.AddUnit(&UnitDef{Key: "archer", Name: "Archer", Icon: "icon_archer", Description: "Ranged support. Keep it behind the line.",
		Cost: core.Resources{Wood: 50, Food: 40}, SpawnTime: 5, Speed: 3.2, Size: 0.6, Color: 0x40C080FF})

	c.AddBuilding(&BuildingDef{Key: "town_hall", Name: "Town Hall", Icon: "icon_town_hall", Description: "Seat of the settlement.",
		Size: 2.5, Color: 0xA07040FF, CanProduce: []string{"worker", "militia"}})
	c.AddBuilding(&BuildingDef{Key: "barracks", Name: "Barracks", Icon: "icon_barracks", Description: "Trains the standing army.",
		Size: 2.0, Color: 0x905050FF, CanProduce: []string{"militia", "swordsman", "archer"}})
	c.AddBuilding(&BuildingDef{Key: "storehouse", Name: "Storehouse", Icon: "icon_storehouse", Description: "Stores gathered resources.",
		Size: 1.8, Color: 0x807060FF})

	return c
}

func (c *Catalog) AddUnit(u *UnitDef)         { c.Units[u.Key] = u }
func (c *Catalog) AddBuilding(b *BuildingDef) { c.Buildings[b.Key] = b }

// Spawnable returns the unit definitions a building can produce, in menu
// order. Unknown unit keys come back as nil entries so the caller can report
// them; an unknown building or one without a roster returns nil.
func (c *Catalog) Spawnable(buildingKey string) []*UnitDef {
	b, ok := c.Buildings[buildingKey]
	if !ok || len(b.CanProduce) == 0 {
		return nil
	}
	out := make([]*UnitDef, len(b.CanProduce))
	for i, key := range b.CanProduce {
		out[i] = c.Units[key]
	}
	return out
}

// CanProduce reports whether the building lists the unit in its roster
func (c *Catalog) CanProduce(buildingKey, unitKey string) bool {
	b, ok := c.Buildings[buildingKey]
	if !ok {
		return false
	}
	for _, k := range b.CanProduce {
		if k == unitKey {
			return true
		}
	}
	return false
}
