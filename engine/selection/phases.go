package selection

import "github.com/1siamBot/rts-command/engine/geom"

type idlePhase struct{}

func (*idlePhase) kind() PhaseKind { return PhaseIdle }
func (*idlePhase) enter(*Machine)  {}
func (*idlePhase) exit(*Machine)   {}

func (p *idlePhase) update(m *Machine, in Input, dt float64) {
	switch {
	case in.PrimaryDown:
		m.forward(PhaseSelecting, in, dt)
	case in.SecondaryDown && m.ctx.Registry.Len() > 0:
		if in.FormationModifier {
			m.forward(PhaseFormationDrag, in, dt)
		} else {
			m.forward(PhaseCommand, in, dt)
		}
	}
}

// selectingPhase handles click and box selection with the primary button
// and the secondary-button formation drag.
type selectingPhase struct {
	pressed  bool
	released bool
	origin   geom.Vec2
	cursor   geom.Vec2
	drag     formationDrag
}

func (*selectingPhase) kind() PhaseKind { return PhaseSelecting }
func (*selectingPhase) enter(*Machine)  {}

func (s *selectingPhase) exit(m *Machine) {
	s.drag.abort(m)
}

func (s *selectingPhase) update(m *Machine, in Input, dt float64) {
	if in.PrimaryDown && !s.released && !s.drag.active {
		s.pressed = true
		s.origin = in.Cursor
	}
	if s.pressed {
		s.cursor = in.Cursor
	}
	if in.PrimaryUp && s.pressed {
		s.pressed = false
		s.released = true
		if s.origin.DistanceTo(in.Cursor) < m.ctx.Config.ClickThreshold {
			m.pick(in.Cursor, in.MultiSelect)
		} else {
			m.boxSelect(s.origin, in.Cursor)
		}
		m.ctx.Scheduler.Defer(func() {
			if m.current == phase(s) {
				m.SetPhase(PhaseIdle)
			}
		})
	}

	// a box select in progress owns the pointer until it is released
	if s.pressed && !s.drag.active {
		return
	}
	if s.drag.update(m, in) {
		m.SetPhase(PhaseCommand)
	}
}

type formationDragPhase struct {
	drag formationDrag
}

func (*formationDragPhase) kind() PhaseKind { return PhaseFormationDrag }
func (*formationDragPhase) enter(*Machine)  {}

func (f *formationDragPhase) exit(m *Machine) {
	f.drag.abort(m)
}

func (f *formationDragPhase) update(m *Machine, in Input, dt float64) {
	if !f.drag.active && in.PrimaryDown {
		m.forward(PhaseSelecting, in, dt)
		return
	}
	if f.drag.update(m, in) {
		m.SetPhase(PhaseIdle)
	}
}

// commandPhase issues move orders on secondary presses and keeps
// re-issuing them while the button is held. The repeat clock starts at zero
// on every press, so the first repeat comes RepeatInterval after the order
// that started it rather than on the next frame.
type commandPhase struct {
	holding bool
	repeat  float64
}

func (*commandPhase) kind() PhaseKind { return PhaseCommand }
func (*commandPhase) enter(*Machine)  {}
func (*commandPhase) exit(*Machine)   {}

func (c *commandPhase) update(m *Machine, in Input, dt float64) {
	switch {
	case in.PrimaryDown:
		m.forward(PhaseSelecting, in, dt)
		return
	case in.SecondaryDown && in.FormationModifier:
		m.forward(PhaseFormationDrag, in, dt)
		return
	case in.SecondaryDown:
		c.holding = true
		c.repeat = 0
		m.commandAt(in.Cursor)
		return
	}

	if c.holding && in.SecondaryHeld {
		c.repeat += dt
		if c.repeat >= m.ctx.Config.RepeatInterval {
			c.repeat = 0
			m.commandAt(in.Cursor)
		}
	}
	if in.SecondaryUp || !in.SecondaryHeld {
		c.holding = false
	}
}
