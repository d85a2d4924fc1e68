package selection

import (
	"math"

	"github.com/1siamBot/rts-command/engine/formation"
	"github.com/1siamBot/rts-command/engine/geom"
)

// formationDrag is the secondary-button drag shared by the Selecting and
// FormationDrag phases: the drag length picks rows and spacing, and release
// commits the formation and orders the units there.
type formationDrag struct {
	active      bool
	formed      bool
	origin      geom.Vec2
	unitsPerRow int
	spacing     float64
}

// update tracks one frame and reports whether the drag was released
func (d *formationDrag) update(m *Machine, in Input) bool {
	if in.SecondaryDown {
		*d = formationDrag{active: true, origin: in.Cursor}
	}
	if !d.active {
		return false
	}
	if in.SecondaryHeld || in.SecondaryUp {
		d.track(m, in.Cursor)
	}
	if in.SecondaryUp {
		d.commit(m, in.Cursor)
		d.active = false
		return true
	}
	return false
}

func (d *formationDrag) track(m *Machine, cursor geom.Vec2) {
	cfg := m.ctx.Config
	dist := d.origin.DistanceTo(cursor)
	if dist <= cfg.FormationDragThreshold {
		return
	}
	n := m.ctx.Registry.Len()
	lines := min(max(int(math.Floor(dist/cfg.PixelsPerLine))+1, 1), cfg.MaxLines)
	d.unitsPerRow = formation.UnitsPerRow(n, lines)
	d.spacing = math.Min(math.Max(dist*cfg.SpacingPerPixel, cfg.MinSpacing), cfg.MaxSpacing)
	d.formed = true

	center := m.ctx.Projection.ScreenToWorld(cursor)
	m.ctx.Preview.Show(formation.Layout(center, n, d.unitsPerRow, d.spacing))
}

func (d *formationDrag) commit(m *Machine, cursor geom.Vec2) {
	var offsets []geom.Vec2
	if d.formed {
		offsets = formation.Offsets(m.ctx.Registry.Len(), d.unitsPerRow, d.spacing)
		m.ctx.Registry.SetLastOffsets(offsets)
	} else {
		offsets = m.ensureOffsets()
	}
	m.ctx.Preview.Clear()
	m.issueMove(m.ctx.Projection.ScreenToWorld(cursor), offsets)
}

// abort drops an uncommitted drag
func (d *formationDrag) abort(m *Machine) {
	if d.active {
		m.ctx.Preview.Clear()
	}
	d.active = false
}
