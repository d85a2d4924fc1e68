package systems

import (
	"github.com/1siamBot/rts-command/engine/catalog"
	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/geom"
	"github.com/1siamBot/rts-command/engine/world"
)

// SpawnOffset is where new units appear relative to their building
var SpawnOffset = geom.Vec2{X: 2, Y: 2}

// UnitCreated is the payload of EvtUnitCreated
type UnitCreated struct {
	Unit     core.EntityID
	Building core.EntityID
	Key      string
}

// ProductionSystem works through building spawn queues. Units are paid for
// when queued, so a finished unit always spawns.
type ProductionSystem struct {
	Catalog  *catalog.Catalog
	EventBus *core.EventBus
}

func (s *ProductionSystem) Priority() int { return 35 }

func (s *ProductionSystem) Update(w *core.World, dt float64) {
	for _, id := range w.Query(core.CompProduction, core.CompPosition) {
		prod := w.Get(id, core.CompProduction).(*core.Production)
		pos := w.Get(id, core.CompPosition).(*core.Position)
		if len(prod.Queue) == 0 {
			continue
		}

		key := prod.Queue[0]
		def, ok := s.Catalog.Units[key]
		if !ok {
			prod.Queue = prod.Queue[1:]
			prod.Progress = 0
			continue
		}

		prod.Progress += dt
		if prod.Progress < def.SpawnTime {
			continue
		}

		uid := world.SpawnUnit(w, def, pos.Vec().Add(SpawnOffset))
		if prod.Rally != (geom.Vec2{}) {
			world.OrderMove(w, uid, prod.Rally)
		}
		s.EventBus.Emit(core.Event{
			Type:    core.EvtUnitCreated,
			Tick:    w.TickCount,
			Payload: UnitCreated{Unit: uid, Building: id, Key: key},
		})

		prod.Progress = 0
		prod.Queue = prod.Queue[1:]
	}
}

// Remaining returns the seconds left on the unit currently in production
func Remaining(cat *catalog.Catalog, prod *core.Production) float64 {
	if len(prod.Queue) == 0 {
		return 0
	}
	def, ok := cat.Units[prod.Queue[0]]
	if !ok {
		return 0
	}
	return max(def.SpawnTime-prod.Progress, 0)
}
