package selection

import (
	"log"

	"github.com/1siamBot/rts-command/engine/config"
	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/formation"
	"github.com/1siamBot/rts-command/engine/geom"
)

// PhaseKind names an interaction phase
type PhaseKind uint8

const (
	PhaseIdle PhaseKind = iota
	PhaseSelecting
	PhaseFormationDrag
	PhaseCommand
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseIdle:
		return "idle"
	case PhaseSelecting:
		return "selecting"
	case PhaseFormationDrag:
		return "formation-drag"
	case PhaseCommand:
		return "command"
	}
	return "unknown"
}

// Context is everything the phases share. It is built once by the caller
// and injected into the machine.
type Context struct {
	Registry   *Registry
	Preview    *formation.Preview
	Menu       MenuController
	Scheduler  *core.Scheduler
	Projection Projection
	World      WorldQuery
	Config     config.SelectionConfig
	Logger     *log.Logger
	Bus        *core.EventBus
}

type phase interface {
	kind() PhaseKind
	enter(m *Machine)
	update(m *Machine, in Input, dt float64)
	exit(m *Machine)
}

var phases = [...]func() phase{
	PhaseIdle:          func() phase { return &idlePhase{} },
	PhaseSelecting:     func() phase { return &selectingPhase{} },
	PhaseFormationDrag: func() phase { return &formationDragPhase{} },
	PhaseCommand:       func() phase { return &commandPhase{} },
}

// Machine routes per-frame input to the current phase
type Machine struct {
	ctx     *Context
	current phase
}

// NewMachine fills in missing collaborators with inert defaults and starts
// in Idle
func NewMachine(ctx *Context) *Machine {
	if ctx.Logger == nil {
		ctx.Logger = log.Default()
	}
	if ctx.Scheduler == nil {
		ctx.Logger.Printf("no scheduler wired, using a private one")
		ctx.Scheduler = core.NewScheduler()
	}
	if ctx.Preview == nil {
		ctx.Preview = formation.NewPreview()
	}
	if ctx.Projection == nil {
		ctx.Logger.Printf("no projection wired, treating screen as world space")
		ctx.Projection = identity{}
	}
	if ctx.World == nil {
		ctx.Logger.Printf("no world query wired, picks will select nothing")
	}
	if ctx.Registry == nil {
		ctx.Registry = NewRegistry(ctx.Menu, ctx.Scheduler, ctx.Bus, ctx.Logger)
	}

	m := &Machine{ctx: ctx}
	m.current = phases[PhaseIdle]()
	m.current.enter(m)
	return m
}

func (m *Machine) Context() *Context   { return m.ctx }
func (m *Machine) Registry() *Registry { return m.ctx.Registry }
func (m *Machine) Phase() PhaseKind    { return m.current.kind() }

// SetPhase exits the current phase and enters a fresh instance of k
func (m *Machine) SetPhase(k PhaseKind) {
	if int(k) >= len(phases) {
		m.ctx.Logger.Printf("unknown phase %d", k)
		return
	}
	prev := m.current.kind()
	m.current.exit(m)
	m.current = phases[k]()
	m.current.enter(m)
	m.ctx.Bus.Emit(core.Event{Type: core.EvtPhaseChanged, Payload: k})
	m.ctx.Logger.Printf("phase %s -> %s", prev, k)
}

// forward switches to k and hands it the input that caused the switch
func (m *Machine) forward(k PhaseKind, in Input, dt float64) {
	m.SetPhase(k)
	m.current.update(m, in, dt)
}

// Update feeds one frame of input to the current phase
func (m *Machine) Update(in Input, dt float64) {
	m.current.update(m, in, dt)
}

// SelectionBox returns the screen rectangle of an in-progress box select
func (m *Machine) SelectionBox() (geom.Rect, bool) {
	s, ok := m.current.(*selectingPhase)
	if !ok || !s.pressed {
		return geom.Rect{}, false
	}
	if s.origin.DistanceTo(s.cursor) < m.ctx.Config.ClickThreshold {
		return geom.Rect{}, false
	}
	return geom.RectFromPoints(s.origin, s.cursor), true
}
