package systems

import (
	"math"

	"github.com/1siamBot/rts-command/engine/core"
)

// StopDistance is how close a unit gets before it counts as arrived
const StopDistance = 0.1

// MovementSystem walks units straight towards their move target
type MovementSystem struct{}

func (s *MovementSystem) Priority() int { return 10 }

func (s *MovementSystem) Update(w *core.World, dt float64) {
	for _, id := range w.Query(core.CompPosition, core.CompMovable) {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		mov := w.Get(id, core.CompMovable).(*core.Movable)
		if !mov.Moving {
			continue
		}

		to := mov.Target.Sub(pos.Vec())
		dist := to.Len()
		if dist < StopDistance {
			mov.Moving = false
			continue
		}
		pos.Facing = math.Atan2(to.Y, to.X)

		step := mov.Speed * dt
		if step >= dist {
			pos.X, pos.Y = mov.Target.X, mov.Target.Y
			mov.Moving = false
			continue
		}
		pos.X += to.X / dist * step
		pos.Y += to.Y / dist * step
	}
}
