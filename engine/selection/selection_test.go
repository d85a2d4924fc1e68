package selection

import (
	"io"
	"log"
	"math"
	"testing"

	"github.com/1siamBot/rts-command/engine/catalog"
	"github.com/1siamBot/rts-command/engine/config"
	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/formation"
	"github.com/1siamBot/rts-command/engine/geom"
	"github.com/1siamBot/rts-command/engine/radial"
)

const dt = 0.05

type fakeUnit struct {
	targets []geom.Vec2
}

func (u *fakeUnit) MoveTo(p geom.Vec2) { u.targets = append(u.targets, p) }

func (u *fakeUnit) last() geom.Vec2 {
	if len(u.targets) == 0 {
		return geom.Vec2{X: math.NaN()}
	}
	return u.targets[len(u.targets)-1]
}

type fakeBuilding struct {
	id  core.EntityID
	pos geom.Vec2
}

func (b *fakeBuilding) ID() core.EntityID                  { return b.id }
func (b *fakeBuilding) Name() string                       { return "building" }
func (b *fakeBuilding) Position() geom.Vec2                { return b.pos }
func (b *fakeBuilding) SpawnList() []*catalog.UnitDef       { return nil }
func (b *fakeBuilding) TrySpawnUnit(*catalog.UnitDef) bool { return false }

type fakeEntity struct {
	id        core.EntityID
	pos       geom.Vec2
	unit      *fakeUnit
	building  *fakeBuilding
	selects   int
	deselects int
}

func (e *fakeEntity) ID() core.EntityID   { return e.id }
func (e *fakeEntity) Position() geom.Vec2 { return e.pos }
func (e *fakeEntity) OnSelect()           { e.selects++ }
func (e *fakeEntity) OnDeselect()         { e.deselects++ }

func (e *fakeEntity) Unit() Unit {
	if e.unit == nil {
		return nil
	}
	return e.unit
}

func (e *fakeEntity) Building() radial.Building {
	if e.building == nil {
		return nil
	}
	return e.building
}

func unitAt(id core.EntityID, x, y float64) *fakeEntity {
	return &fakeEntity{id: id, pos: geom.Vec2{X: x, Y: y}, unit: &fakeUnit{}}
}

func buildingAt(id core.EntityID, x, y float64) *fakeEntity {
	pos := geom.Vec2{X: x, Y: y}
	return &fakeEntity{id: id, pos: pos, building: &fakeBuilding{id: id, pos: pos}}
}

type fakeWorld struct {
	entities []*fakeEntity
}

func (w *fakeWorld) OverlapPoint(p geom.Vec2) Entity {
	for _, e := range w.entities {
		if e.pos.DistanceTo(p) <= 0.5 {
			return e
		}
	}
	return nil
}

func (w *fakeWorld) Selectables() []Entity {
	out := make([]Entity, len(w.entities))
	for i, e := range w.entities {
		out[i] = e
	}
	return out
}

type fakeMenu struct {
	opened  []core.EntityID
	cancels int
	active  radial.Building
}

func (m *fakeMenu) Open(b radial.Building) {
	m.opened = append(m.opened, b.ID())
	m.active = b
}

func (m *fakeMenu) Cancel() {
	m.cancels++
	m.active = nil
}

func (m *fakeMenu) ActiveBuilding() radial.Building { return m.active }

// scaled maps 10 screen pixels to one world unit on a 1000px viewport
type scaled struct{}

func (scaled) ScreenToWorld(p geom.Vec2) geom.Vec2    { return p.Scale(0.1) }
func (scaled) WorldToViewport(p geom.Vec2) geom.Vec2  { return p.Scale(0.01) }
func (scaled) ScreenToViewport(p geom.Vec2) geom.Vec2 { return p.Scale(0.001) }

type harness struct {
	m     *Machine
	reg   *Registry
	menu  *fakeMenu
	world *fakeWorld
	sched *core.Scheduler
	bus   *core.EventBus
}

func newHarness(entities ...*fakeEntity) *harness {
	h := &harness{
		menu:  &fakeMenu{},
		world: &fakeWorld{entities: entities},
		sched: core.NewScheduler(),
		bus:   core.NewEventBus(),
	}
	h.m = NewMachine(&Context{
		Menu:       h.menu,
		Scheduler:  h.sched,
		Projection: scaled{},
		World:      h.world,
		Config:     config.Default().Selection,
		Logger:     log.New(io.Discard, "", 0),
		Bus:        h.bus,
	})
	h.reg = h.m.Registry()
	return h
}

// frame runs one tick in game loop order
func (h *harness) frame(in Input) {
	h.sched.Tick(dt)
	h.m.Update(in, dt)
}

func (h *harness) leftDrag(from, to geom.Vec2, multi bool) {
	h.frame(Input{Cursor: from, PrimaryDown: true, PrimaryHeld: true, MultiSelect: multi})
	h.frame(Input{Cursor: to, PrimaryUp: true, MultiSelect: multi})
}

func (h *harness) rightDrag(from, to geom.Vec2, modifier bool) {
	h.frame(Input{Cursor: from, SecondaryDown: true, SecondaryHeld: true, FormationModifier: modifier})
	h.frame(Input{Cursor: to, SecondaryHeld: true, FormationModifier: modifier})
	h.frame(Input{Cursor: to, SecondaryUp: true, FormationModifier: modifier})
}

func near(a, b geom.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestRegistry_SelectIdempotent(t *testing.T) {
	h := newHarness()
	e := unitAt(1, 0, 0)
	h.reg.Select(e)
	h.reg.Select(e)
	if h.reg.Len() != 1 || e.selects != 1 {
		t.Fatalf("select should be idempotent: len=%d selects=%d", h.reg.Len(), e.selects)
	}
	h.reg.Toggle(e)
	if h.reg.Contains(e) || e.deselects != 1 {
		t.Fatalf("toggle should deselect")
	}
}

func TestRegistry_ClearOnEmpty(t *testing.T) {
	h := newHarness()
	h.reg.Clear()
	if h.reg.Len() != 0 || h.menu.cancels != 1 {
		t.Fatalf("clear on empty should only cancel the menu, cancels=%d", h.menu.cancels)
	}
	if h.bus.Pending() != 0 {
		t.Fatalf("clear on empty should not report a selection change")
	}
}

func TestRegistry_ClearDeselectsInOrder(t *testing.T) {
	h := newHarness()
	a, b := unitAt(1, 0, 0), unitAt(2, 1, 0)
	h.reg.Select(a)
	h.reg.Select(b)
	h.reg.Clear()
	if a.deselects != 1 || b.deselects != 1 || h.reg.Len() != 0 {
		t.Fatalf("clear should deselect every member")
	}
}

func TestRegistry_BuildingMenuOpensNextTick(t *testing.T) {
	h := newHarness()
	b := buildingAt(5, 3, 3)
	h.reg.Select(b)
	if len(h.menu.opened) != 0 {
		t.Fatalf("menu should not open in the same tick")
	}
	h.sched.Tick(dt)
	if len(h.menu.opened) != 1 || h.menu.opened[0] != 5 {
		t.Fatalf("expected menu open for building 5, got %v", h.menu.opened)
	}

	other := buildingAt(6, 0, 0)
	h.reg.Select(other)
	h.reg.Clear()
	h.sched.Tick(dt)
	if len(h.menu.opened) != 1 {
		t.Fatalf("menu must not open for a building deselected before the tick")
	}
}

func TestRegistry_DeselectKeepsOtherBuildingsMenu(t *testing.T) {
	h := newHarness()
	first, second := buildingAt(1, 0, 0), buildingAt(2, 5, 5)
	h.reg.Select(first)
	h.reg.Select(second)
	h.sched.Tick(dt)
	if len(h.menu.opened) != 2 || h.menu.active.ID() != 2 {
		t.Fatalf("menu should show the last selected building, opened=%v", h.menu.opened)
	}

	h.reg.Deselect(first)
	if h.menu.cancels != 0 {
		t.Fatalf("deselecting another building must not close the menu, cancels=%d", h.menu.cancels)
	}
	h.reg.Deselect(second)
	if h.menu.cancels != 1 {
		t.Fatalf("deselecting the menu's building should close it, cancels=%d", h.menu.cancels)
	}
}

func TestSelecting_ClickThresholdBoundary(t *testing.T) {
	tests := []struct {
		name     string
		release  geom.Vec2
		wantKept bool
	}{
		// a pick on empty ground clears the selection
		{"14.9px is a click", geom.Vec2{X: 114.9, Y: 100}, false},
		// an empty box leaves it alone
		{"15px is a box", geom.Vec2{X: 115, Y: 100}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			far := unitAt(1, 50, 50)
			h := newHarness(far)
			h.reg.Select(far)
			h.leftDrag(geom.Vec2{X: 100, Y: 100}, tc.release, false)
			if got := h.reg.Contains(far); got != tc.wantKept {
				t.Fatalf("selection kept=%v, want %v", got, tc.wantKept)
			}
		})
	}
}

func TestSelecting_ClickPicksAndToggles(t *testing.T) {
	a := unitAt(1, 10, 10)
	b := unitAt(2, 20, 10)
	h := newHarness(a, b)

	h.leftDrag(geom.Vec2{X: 100, Y: 100}, geom.Vec2{X: 101, Y: 100}, false)
	if h.reg.Len() != 1 || !h.reg.Contains(a) {
		t.Fatalf("click should select the entity under the cursor")
	}
	h.sched.Tick(dt)

	h.leftDrag(geom.Vec2{X: 200, Y: 100}, geom.Vec2{X: 200, Y: 100}, true)
	if h.reg.Len() != 2 {
		t.Fatalf("multi-select click should add, len=%d", h.reg.Len())
	}
	h.sched.Tick(dt)

	h.leftDrag(geom.Vec2{X: 100, Y: 100}, geom.Vec2{X: 100, Y: 100}, true)
	if h.reg.Contains(a) || !h.reg.Contains(b) {
		t.Fatalf("multi-select click on a selected entity should remove it")
	}
	h.sched.Tick(dt)

	h.leftDrag(geom.Vec2{X: 100, Y: 100}, geom.Vec2{X: 100, Y: 100}, false)
	if h.reg.Len() != 1 || !h.reg.Contains(a) {
		t.Fatalf("plain click should replace the selection")
	}
}

func TestSelecting_BoxPrefersBuilding(t *testing.T) {
	u1, u2, u3 := unitAt(1, 1, 1), unitAt(2, 2, 1), unitAt(3, 3, 1)
	hall := buildingAt(4, 4, 1)
	h := newHarness(u1, u2, hall, u3)

	h.leftDrag(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 50, Y: 20}, false)
	ents := h.reg.Entities()
	if len(ents) != 1 || ents[0].ID() != 4 {
		t.Fatalf("box with a building should select only the building, got %d entities", len(ents))
	}
	h.sched.Tick(dt)
	if len(h.menu.opened) != 1 || h.menu.opened[0] != 4 {
		t.Fatalf("selecting the building should open its menu, got %v", h.menu.opened)
	}
}

func TestSelecting_BoxSelectsUnitsInOrder(t *testing.T) {
	u1, u2, out := unitAt(1, 1, 1), unitAt(2, 2, 1), unitAt(3, 30, 30)
	h := newHarness(u1, u2, out)
	h.reg.Select(out)

	h.leftDrag(geom.Vec2{X: 50, Y: 50}, geom.Vec2{X: 0, Y: 0}, false)
	ents := h.reg.Entities()
	if len(ents) != 2 || ents[0].ID() != 1 || ents[1].ID() != 2 {
		t.Fatalf("expected units 1,2 selected in order, got %v", ents)
	}
	if out.deselects != 1 {
		t.Fatalf("box select should clear the previous selection")
	}
}

func TestSelecting_DeferredIdle(t *testing.T) {
	h := newHarness()
	h.leftDrag(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0, Y: 0}, false)
	if h.m.Phase() != PhaseSelecting {
		t.Fatalf("release should not leave Selecting in the same tick")
	}
	h.sched.Tick(dt)
	if h.m.Phase() != PhaseIdle {
		t.Fatalf("expected idle one tick after release, got %s", h.m.Phase())
	}

	h.leftDrag(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0, Y: 0}, false)
	h.m.SetPhase(PhaseCommand)
	h.sched.Tick(dt)
	if h.m.Phase() != PhaseCommand {
		t.Fatalf("a stale deferred transition must not fire, got %s", h.m.Phase())
	}
}

func TestSelecting_SelectionBox(t *testing.T) {
	h := newHarness()
	h.frame(Input{Cursor: geom.Vec2{X: 10, Y: 10}, PrimaryDown: true, PrimaryHeld: true})
	if _, ok := h.m.SelectionBox(); ok {
		t.Fatalf("no box below the click threshold")
	}
	h.frame(Input{Cursor: geom.Vec2{X: 60, Y: 40}, PrimaryHeld: true})
	r, ok := h.m.SelectionBox()
	if !ok || r.Min != (geom.Vec2{X: 10, Y: 10}) || r.Max != (geom.Vec2{X: 60, Y: 40}) {
		t.Fatalf("unexpected box %+v ok=%v", r, ok)
	}
	h.frame(Input{Cursor: geom.Vec2{X: 60, Y: 40}, PrimaryUp: true})
	if _, ok := h.m.SelectionBox(); ok {
		t.Fatalf("box should disappear on release")
	}
}

func sevenUnits() []*fakeEntity {
	var out []*fakeEntity
	for i := 1; i <= 7; i++ {
		out = append(out, unitAt(core.EntityID(i), float64(i), 0))
	}
	return out
}

func TestFormationDrag_QuickClickReusesOffsets(t *testing.T) {
	units := sevenUnits()
	h := newHarness(units...)
	for _, u := range units {
		h.reg.Select(u)
	}
	stored := formation.Offsets(7, 7, 2)
	h.reg.SetLastOffsets(stored)

	h.rightDrag(geom.Vec2{X: 200, Y: 200}, geom.Vec2{X: 200, Y: 200}, true)
	center := geom.Vec2{X: 20, Y: 20}
	for i, u := range units {
		if want := center.Add(stored[i]); !near(u.unit.last(), want) {
			t.Fatalf("unit %d: expected %+v, got %+v", i, want, u.unit.last())
		}
	}
	if h.m.Phase() != PhaseIdle {
		t.Fatalf("formation drag should end in idle, got %s", h.m.Phase())
	}
}

func TestFormationDrag_QuickClickFallbackPersists(t *testing.T) {
	units := sevenUnits()
	h := newHarness(units...)
	for _, u := range units {
		h.reg.Select(u)
	}
	h.reg.SetLastOffsets(formation.Offsets(5, 5, 2))

	h.rightDrag(geom.Vec2{X: 200, Y: 200}, geom.Vec2{X: 200, Y: 200}, true)
	want := formation.Offsets(7, 3, 1.5)
	got := h.reg.LastOffsets()
	if len(got) != 7 {
		t.Fatalf("fallback offsets should be persisted, got %d", len(got))
	}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Fatalf("offset %d: expected %+v, got %+v", i, want[i], got[i])
		}
		if target := (geom.Vec2{X: 20, Y: 20}).Add(want[i]); !near(units[i].unit.last(), target) {
			t.Fatalf("unit %d sent to %+v, want %+v", i, units[i].unit.last(), target)
		}
	}
}

func TestFormationDrag_DragShapesFormation(t *testing.T) {
	units := []*fakeEntity{unitAt(1, 0, 0), unitAt(2, 1, 0), unitAt(3, 2, 0), unitAt(4, 3, 0)}
	h := newHarness(units...)
	for _, u := range units {
		h.reg.Select(u)
	}

	h.frame(Input{Cursor: geom.Vec2{}, SecondaryDown: true, SecondaryHeld: true, FormationModifier: true})
	if h.m.Phase() != PhaseFormationDrag {
		t.Fatalf("modifier + secondary should start a formation drag, got %s", h.m.Phase())
	}
	h.frame(Input{Cursor: geom.Vec2{X: 10}, SecondaryHeld: true})
	if h.m.Context().Preview.Active() {
		t.Fatalf("no preview at exactly the drag threshold")
	}

	// 45px: 3 lines, 2 per row, spacing clamped to 3
	cursor := geom.Vec2{X: 45}
	h.frame(Input{Cursor: cursor, SecondaryHeld: true})
	markers := h.m.Context().Preview.Markers()
	want := formation.Layout(geom.Vec2{X: 4.5}, 4, 2, 3)
	if len(markers) != len(want) {
		t.Fatalf("expected %d markers, got %d", len(want), len(markers))
	}
	for i := range want {
		if !near(markers[i].Pos, want[i]) {
			t.Fatalf("marker %d at %+v, want %+v", i, markers[i].Pos, want[i])
		}
	}

	h.frame(Input{Cursor: cursor, SecondaryUp: true})
	if h.m.Context().Preview.Active() {
		t.Fatalf("preview should be cleared on release")
	}
	offsets := h.reg.LastOffsets()
	wantOffsets := formation.Offsets(4, 2, 3)
	for i := range wantOffsets {
		if !near(offsets[i], wantOffsets[i]) {
			t.Fatalf("stored offset %d: %+v, want %+v", i, offsets[i], wantOffsets[i])
		}
		if !near(units[i].unit.last(), want[i]) {
			t.Fatalf("unit %d sent to %+v, want %+v", i, units[i].unit.last(), want[i])
		}
	}
}

func TestSelecting_FormationReleaseEntersCommand(t *testing.T) {
	u := unitAt(1, 0, 0)
	h := newHarness(u)
	h.reg.Select(u)
	h.m.SetPhase(PhaseSelecting)

	h.rightDrag(geom.Vec2{X: 500, Y: 500}, geom.Vec2{X: 600, Y: 500}, false)
	if h.m.Phase() != PhaseCommand {
		t.Fatalf("formation release in Selecting should enter Command, got %s", h.m.Phase())
	}
	if len(u.unit.targets) != 1 {
		t.Fatalf("expected one move order, got %d", len(u.unit.targets))
	}
}

func TestSelecting_BoxSurvivesSecondaryClick(t *testing.T) {
	a, b, c := unitAt(1, 0, 0), unitAt(2, 10, 10), unitAt(3, 20, 20)
	h := newHarness(a, b, c)
	h.reg.Select(a)

	h.frame(Input{Cursor: geom.Vec2{X: 50, Y: 50}, PrimaryDown: true, PrimaryHeld: true})
	h.frame(Input{Cursor: geom.Vec2{X: 120, Y: 120}, PrimaryHeld: true, SecondaryDown: true, SecondaryHeld: true})
	h.frame(Input{Cursor: geom.Vec2{X: 120, Y: 120}, PrimaryHeld: true, SecondaryUp: true})
	if h.m.Phase() != PhaseSelecting {
		t.Fatalf("a secondary click must not end a box select, got %s", h.m.Phase())
	}
	if len(a.unit.targets) != 0 {
		t.Fatalf("no move order while box selecting, got %v", a.unit.targets)
	}

	h.frame(Input{Cursor: geom.Vec2{X: 250, Y: 250}, PrimaryUp: true})
	if h.reg.Len() != 2 || !h.reg.Contains(b) || !h.reg.Contains(c) {
		t.Fatalf("box should select units 2 and 3, got %d entities", h.reg.Len())
	}
	if h.reg.Contains(a) {
		t.Fatalf("box select should replace the previous selection")
	}
}

func TestCommand_RepeatsWhileHeld(t *testing.T) {
	u := unitAt(1, 0, 0)
	h := newHarness(u)
	h.reg.Select(u)

	h.frame(Input{Cursor: geom.Vec2{X: 100}, SecondaryDown: true, SecondaryHeld: true})
	if h.m.Phase() != PhaseCommand || len(u.unit.targets) != 1 {
		t.Fatalf("secondary press should command at once, phase=%s orders=%d", h.m.Phase(), len(u.unit.targets))
	}
	if got := u.unit.last(); !near(got, geom.Vec2{X: 10}) {
		t.Fatalf("single unit should go to the cursor, got %+v", got)
	}

	h.frame(Input{Cursor: geom.Vec2{X: 200}, SecondaryHeld: true})
	if len(u.unit.targets) != 1 {
		t.Fatalf("no repeat before the interval")
	}
	h.frame(Input{Cursor: geom.Vec2{X: 300}, SecondaryHeld: true})
	if len(u.unit.targets) != 2 || !near(u.unit.last(), geom.Vec2{X: 30}) {
		t.Fatalf("expected a repeat at the current cursor, got %v", u.unit.targets)
	}

	h.frame(Input{Cursor: geom.Vec2{X: 300}, SecondaryHeld: true})
	h.frame(Input{Cursor: geom.Vec2{X: 400}, SecondaryDown: true, SecondaryHeld: true})
	if len(u.unit.targets) != 3 {
		t.Fatalf("a new press should command immediately")
	}
	h.frame(Input{Cursor: geom.Vec2{X: 400}, SecondaryHeld: true})
	if len(u.unit.targets) != 3 {
		t.Fatalf("a new press should reset the repeat timer")
	}

	h.frame(Input{Cursor: geom.Vec2{X: 400}, SecondaryUp: true})
	h.frame(Input{Cursor: geom.Vec2{X: 400}})
	h.frame(Input{Cursor: geom.Vec2{X: 400}})
	if len(u.unit.targets) != 3 {
		t.Fatalf("no repeats after release")
	}

	h.frame(Input{Cursor: geom.Vec2{X: 400}, PrimaryDown: true, PrimaryHeld: true})
	if h.m.Phase() != PhaseSelecting {
		t.Fatalf("primary press should enter Selecting, got %s", h.m.Phase())
	}
}

func TestIdle_SecondaryWithEmptySelectionStaysIdle(t *testing.T) {
	h := newHarness()
	h.frame(Input{SecondaryDown: true, SecondaryHeld: true})
	if h.m.Phase() != PhaseIdle {
		t.Fatalf("expected idle, got %s", h.m.Phase())
	}
}

func TestOrders_BuildingsDoNotConsumeOffsets(t *testing.T) {
	a, hall, b := unitAt(1, 0, 0), buildingAt(2, 0, 0), unitAt(3, 0, 0)
	h := newHarness()
	h.reg.Select(a)
	h.reg.Select(hall)
	h.reg.Select(b)

	offsets := []geom.Vec2{{X: 1}, {X: 2}, {X: 3}}
	h.reg.SetLastOffsets(offsets)
	h.m.commandAt(geom.Vec2{})
	if !near(a.unit.last(), offsets[0]) || !near(b.unit.last(), offsets[1]) {
		t.Fatalf("offsets should be indexed by unit: a=%+v b=%+v", a.unit.last(), b.unit.last())
	}

	if n := h.m.issueMove(geom.Vec2{X: 5, Y: 5}, offsets[:1]); n != 2 {
		t.Fatalf("expected 2 units ordered, got %d", n)
	}
	if !near(b.unit.last(), geom.Vec2{X: 5, Y: 5}) {
		t.Fatalf("units beyond the offset list go to the center, got %+v", b.unit.last())
	}
}

func TestMachine_PhaseEvents(t *testing.T) {
	h := newHarness()
	var seen []PhaseKind
	h.bus.On(core.EvtPhaseChanged, func(e core.Event) { seen = append(seen, e.Payload.(PhaseKind)) })
	h.leftDrag(geom.Vec2{}, geom.Vec2{}, false)
	h.sched.Tick(dt)
	h.bus.Dispatch()
	if len(seen) != 2 || seen[0] != PhaseSelecting || seen[1] != PhaseIdle {
		t.Fatalf("unexpected phase events %v", seen)
	}
}
