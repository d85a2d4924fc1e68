package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/rts-command/engine/geom"
)

func TestSelection_Translate(t *testing.T) {
	s := NewInputState()
	s.MouseX, s.MouseY = 40, 25
	s.LeftJustPressed = true
	s.LeftPressed = true
	s.RightJustReleased = true
	s.KeysPressed[ebiten.KeyControl] = true

	in := s.Selection()
	if in.Cursor != (geom.Vec2{X: 40, Y: 25}) {
		t.Fatalf("unexpected cursor %+v", in.Cursor)
	}
	if !in.PrimaryDown || !in.PrimaryHeld || in.PrimaryUp {
		t.Fatalf("primary edges not mapped: %+v", in)
	}
	if in.SecondaryDown || in.SecondaryHeld || !in.SecondaryUp {
		t.Fatalf("secondary edges not mapped: %+v", in)
	}
	if !in.MultiSelect || in.FormationModifier {
		t.Fatalf("ctrl should map to multi-select only")
	}

	s.KeysPressed[ebiten.KeyControl] = false
	s.KeysPressed[ebiten.KeyAlt] = true
	in = s.Selection()
	if in.MultiSelect || !in.FormationModifier {
		t.Fatalf("alt should map to the formation modifier")
	}
}

func TestConsumePrimary(t *testing.T) {
	s := NewInputState()
	s.LeftJustPressed = true
	s.LeftPressed = true
	s.ConsumePrimary()
	in := s.Selection()
	if in.PrimaryDown || in.PrimaryUp {
		t.Fatalf("consumed click should not reach the selection")
	}
	if !in.PrimaryHeld {
		t.Fatalf("held level is left untouched")
	}
}
