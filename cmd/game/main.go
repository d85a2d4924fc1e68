package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/1siamBot/rts-command/engine/catalog"
	"github.com/1siamBot/rts-command/engine/config"
	"github.com/1siamBot/rts-command/engine/core"
	"github.com/1siamBot/rts-command/engine/formation"
	"github.com/1siamBot/rts-command/engine/geom"
	"github.com/1siamBot/rts-command/engine/input"
	"github.com/1siamBot/rts-command/engine/radial"
	"github.com/1siamBot/rts-command/engine/render"
	"github.com/1siamBot/rts-command/engine/selection"
	"github.com/1siamBot/rts-command/engine/systems"
	"github.com/1siamBot/rts-command/engine/tween"
	"github.com/1siamBot/rts-command/engine/ui"
	"github.com/1siamBot/rts-command/engine/world"
)

const MapSize = 64

var groupKeys = [10]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game implements ebiten.Game interface
type Game struct {
	cfg      config.Config
	debug    bool
	log      *log.Logger
	gameLoop *core.GameLoop
	input    *input.InputState
	eventBus *core.EventBus
	sched    *core.Scheduler
	tweener  *tween.Tweener
	catalog  *catalog.Catalog
	ledger   *core.Ledger
	world    *world.World

	menu    *radial.Menu
	machine *selection.Machine
	preview *formation.Preview

	camera   *render.Camera
	renderer *render.Renderer
	hud      *ui.HUD
	radial   *ui.RadialView
}

func NewGame(cfg config.Config, debug bool, logger *log.Logger) *Game {
	g := &Game{
		cfg:      cfg,
		debug:    debug,
		log:      logger,
		gameLoop: core.NewGameLoop(cfg.TickRate),
		input:    input.NewInputState(),
		eventBus: core.NewEventBus(),
		sched:    core.NewScheduler(),
		tweener:  tween.NewTweener(),
		catalog:  catalog.Default(),
		ledger:   core.NewLedger(cfg.Resources),
		preview:  formation.NewPreview(),
	}
	sw, sh := cfg.Screen.Width, cfg.Screen.Height

	g.world = world.New(g.gameLoop.World, g.catalog, g.ledger, g.eventBus, prefixed(logger, "[world] "))
	g.gameLoop.World.AddSystem(&systems.MovementSystem{})
	g.gameLoop.World.AddSystem(&systems.ProductionSystem{Catalog: g.catalog, EventBus: g.eventBus})

	g.camera = render.NewCamera(cfg.Camera, sw, sh)
	g.camera.SetBounds(geom.Rect{Max: geom.Vec2{X: MapSize, Y: MapSize}})
	icons := render.NewIconSet(g.catalog, logger)
	g.renderer = render.NewRenderer(g.camera, icons)

	g.menu = radial.NewMenu(cfg.Menu, g.tweener, g.sched, prefixed(logger, "[radial] "))
	g.menu.Bus = g.eventBus
	g.machine = selection.NewMachine(&selection.Context{
		Preview:    g.preview,
		Menu:       g.menu,
		Scheduler:  g.sched,
		Projection: g.camera,
		World:      g.world,
		Config:     cfg.Selection,
		Logger:     prefixed(logger, "[phase] "),
		Bus:        g.eventBus,
	})

	g.hud = ui.NewHUD(sw, sh, g.ledger, g.catalog)
	g.hud.Subscribe(g.eventBus)
	g.radial = ui.NewRadialView(g.menu, g.camera, icons)

	g.spawnDemo()
	g.gameLoop.Play()
	return g
}

// prefixed returns a logger writing to the same place as l with its own prefix
func prefixed(l *log.Logger, prefix string) *log.Logger {
	return log.New(l.Writer(), prefix, l.Flags())
}

func (g *Game) spawnDemo() {
	ecs := g.gameLoop.World
	buildings := []struct {
		key string
		at  geom.Vec2
	}{
		{"town_hall", geom.Vec2{X: 24, Y: 30}},
		{"barracks", geom.Vec2{X: 36, Y: 30}},
		{"storehouse", geom.Vec2{X: 28, Y: 38}},
	}
	for _, b := range buildings {
		def, ok := g.catalog.Buildings[b.key]
		if !ok {
			g.log.Printf("demo building %q missing from catalog", b.key)
			continue
		}
		world.SpawnBuilding(ecs, def, b.at)
	}

	units := []string{"worker", "worker", "worker", "militia", "militia", "archer"}
	for i, key := range units {
		def, ok := g.catalog.Units[key]
		if !ok {
			continue
		}
		world.SpawnUnit(ecs, def, geom.Vec2{X: 26 + float64(i%3)*1.5, Y: 34 + float64(i/3)*1.5})
	}
	g.camera.CenterOn(geom.Vec2{X: 30, Y: 32})
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	g.input.Update()
	g.handleKeys()
	g.handleCamera(dt)

	cursor := g.input.Cursor()
	if g.radial.Update(cursor, g.input.LeftJustPressed) {
		g.input.ConsumePrimary()
	}
	if g.input.LeftJustPressed && g.hud.HandleClick(g.input.MouseX, g.input.MouseY) {
		g.input.ConsumePrimary()
	}

	g.sched.Tick(dt)
	g.machine.Update(g.input.Selection(), dt)
	g.tweener.Update(dt)
	g.hud.Update(dt)

	// Game simulation tick
	g.gameLoop.Update()
	g.eventBus.Dispatch()
	return nil
}

func (g *Game) handleKeys() {
	reg := g.machine.Registry()
	if g.input.IsKeyJustPressed(ebiten.KeyEscape) {
		reg.Clear()
	}
	if g.input.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePause()
	}
	if g.input.IsKeyJustPressed(ebiten.KeyC) {
		g.copyFormation()
	}
	if g.input.IsKeyJustPressed(ebiten.KeyV) {
		g.pasteFormation()
	}

	ctrl := g.input.KeysPressed[ebiten.KeyControl]
	for n, key := range groupKeys {
		if !g.input.IsKeyJustPressed(key) {
			continue
		}
		if ctrl {
			ids := make([]core.EntityID, 0, reg.Len())
			for _, e := range reg.Entities() {
				ids = append(ids, e.ID())
			}
			g.hud.AssignControlGroup(n, ids)
			g.hud.Notify("Group %d: %d entities", n, len(ids))
			continue
		}
		group := g.hud.ControlGroup(n)
		if len(group) == 0 {
			continue
		}
		reg.Clear()
		for _, id := range group {
			if ref := g.world.Ref(id); ref.Alive() {
				reg.Select(ref)
			}
		}
	}
}

func (g *Game) togglePause() {
	if g.gameLoop.State == core.StatePlaying {
		g.gameLoop.Pause()
	} else {
		g.gameLoop.Play()
	}
	g.hud.Paused = g.gameLoop.State == core.StatePaused
}

func (g *Game) copyFormation() {
	offsets := g.machine.Registry().LastOffsets()
	if len(offsets) == 0 {
		g.hud.Notify("No formation to copy")
		return
	}
	if err := clipboard.WriteAll(formation.FormatOffsets(offsets)); err != nil {
		g.log.Printf("copy formation: %v", err)
		g.hud.Notify("Clipboard unavailable")
		return
	}
	g.hud.Notify("Copied formation of %d", len(offsets))
}

func (g *Game) pasteFormation() {
	s, err := clipboard.ReadAll()
	if err != nil {
		g.log.Printf("paste formation: %v", err)
		g.hud.Notify("Clipboard unavailable")
		return
	}
	offsets, err := formation.ParseOffsets(s)
	if err != nil {
		g.log.Printf("paste formation: %v", err)
		g.hud.Notify("Clipboard holds no formation")
		return
	}
	g.machine.Registry().SetLastOffsets(offsets)
	g.hud.Notify("Pasted formation of %d", len(offsets))
}

func (g *Game) handleCamera(dt float64) {
	speed := g.camera.Speed * dt

	// WASD / Arrow keys
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.camera.Pan(0, -speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.camera.Pan(0, speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.camera.Pan(-speed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.camera.Pan(speed, 0)
	}

	// Edge scrolling
	if g.camera.EdgeScroll {
		edge := g.camera.EdgeSize
		if g.input.MouseX < edge {
			g.camera.Pan(-speed, 0)
		}
		if g.input.MouseX > g.camera.ScreenW-edge {
			g.camera.Pan(speed, 0)
		}
		if g.input.MouseY < edge {
			g.camera.Pan(0, -speed)
		}
		if g.input.MouseY > g.camera.ScreenH-edge {
			g.camera.Pan(0, speed)
		}
	}

	// Zoom with scroll wheel
	if g.input.ScrollY != 0 {
		g.camera.ZoomAt(g.input.ScrollY*0.1, g.input.Cursor())
	}

	// Middle mouse drag to pan
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		g.camera.Pan(float64(-g.input.MouseDX), float64(-g.input.MouseDY))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.DrawGround(screen)
	g.renderer.DrawEntities(screen, g.gameLoop.World)
	g.renderer.DrawPreview(screen, g.preview.Markers())
	if box, ok := g.machine.SelectionBox(); ok {
		g.renderer.DrawSelectionBox(screen, box)
	}
	g.radial.Draw(screen)

	size := 160
	g.renderer.DrawMinimap(screen, g.gameLoop.World, g.camera.Bounds,
		g.camera.ScreenW-size-10, g.camera.ScreenH-g.hud.BottomHeight-size-10, size)
	g.hud.Draw(screen, g.gameLoop.World, g.machine.Registry().Entities())

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"FPS: %.0f | Tick: %d | Entities: %d | Zoom: %.1fx | Menu: %s | Tweens: %d",
			ebiten.ActualFPS(), g.gameLoop.CurrentTick(), g.gameLoop.World.EntityCount(),
			g.camera.Zoom, g.menu.State(), g.tweener.Len(),
		), 10, g.hud.TopBarHeight+100)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Screen.Width, g.cfg.Screen.Height
}

func main() {
	configPath := flag.String("config", "config.json", "path to a JSON config overriding the defaults")
	debug := flag.Bool("debug", false, "show the debug overlay and log source lines")
	flag.Parse()

	logger := log.Default()
	if *debug {
		logger.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Printf("no config at %s, using defaults", *configPath)
		cfg = config.Default()
	case err != nil:
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	game := NewGame(cfg, *debug, logger)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
