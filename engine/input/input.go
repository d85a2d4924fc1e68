package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/rts-command/engine/geom"
	"github.com/1siamBot/rts-command/engine/selection"
)

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY    int
	MouseDX, MouseDY  int // delta since last frame
	prevMouseX        int
	prevMouseY        int
	LeftPressed       bool
	RightPressed      bool
	LeftJustPressed   bool
	RightJustPressed  bool
	LeftJustReleased  bool
	RightJustReleased bool
	ScrollY           float64

	// Keyboard
	KeysPressed map[ebiten.Key]bool
}

// keys polled every frame
var commonKeys = []ebiten.Key{
	ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
	ebiten.KeySpace, ebiten.KeyEscape,
	ebiten.KeyShift, ebiten.KeyControl, ebiten.KeyAlt,
	ebiten.KeyC, ebiten.KeyV, ebiten.KeyP,
}

func NewInputState() *InputState {
	return &InputState{
		KeysPressed: make(map[ebiten.Key]bool),
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	// Mouse position
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	// Mouse buttons
	s.LeftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.RightPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.RightJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight)

	// Scroll
	_, s.ScrollY = ebiten.Wheel()

	for _, k := range commonKeys {
		s.KeysPressed[k] = ebiten.IsKeyPressed(k)
	}
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// Cursor returns the mouse position in screen pixels
func (s *InputState) Cursor() geom.Vec2 {
	return geom.Vec2{X: float64(s.MouseX), Y: float64(s.MouseY)}
}

// Selection translates the frame into selection input. Shift or Ctrl add
// to the selection; Alt turns a right drag into a formation drag.
func (s *InputState) Selection() selection.Input {
	return selection.Input{
		Cursor:            s.Cursor(),
		PrimaryDown:       s.LeftJustPressed,
		PrimaryHeld:       s.LeftPressed,
		PrimaryUp:         s.LeftJustReleased,
		SecondaryDown:     s.RightJustPressed,
		SecondaryHeld:     s.RightPressed,
		SecondaryUp:       s.RightJustReleased,
		MultiSelect:       s.KeysPressed[ebiten.KeyShift] || s.KeysPressed[ebiten.KeyControl],
		FormationModifier: s.KeysPressed[ebiten.KeyAlt],
	}
}

// ConsumePrimary hides this frame's left button edges, used when the UI
// has handled the click
func (s *InputState) ConsumePrimary() {
	s.LeftJustPressed = false
	s.LeftJustReleased = false
}
