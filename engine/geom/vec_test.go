package geom

import "testing"

func TestRectFromPoints_Normalizes(t *testing.T) {
	r := RectFromPoints(Vec2{X: 4, Y: -1}, Vec2{X: -2, Y: 3})
	if r.Min != (Vec2{X: -2, Y: -1}) || r.Max != (Vec2{X: 4, Y: 3}) {
		t.Fatalf("unexpected rect %+v", r)
	}
	if r.Width() != 6 || r.Height() != 4 {
		t.Fatalf("expected 6x4, got %vx%v", r.Width(), r.Height())
	}
}

func TestRect_ContainsEdges(t *testing.T) {
	r := Rect{Max: Vec2{X: 1, Y: 1}}
	cases := []struct {
		p    Vec2
		want bool
	}{
		{Vec2{}, true},
		{Vec2{X: 1, Y: 1}, true},
		{Vec2{X: 0.5, Y: 0.5}, true},
		{Vec2{X: 1.01, Y: 0.5}, false},
		{Vec2{X: 0.5, Y: -0.01}, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.p); got != c.want {
			t.Fatalf("Contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestVec2_LerpOvershoots(t *testing.T) {
	got := Vec2{}.Lerp(Vec2{X: 10}, 1.1)
	if got.X < 10.99 || got.X > 11.01 {
		t.Fatalf("lerp should not clamp, got %v", got)
	}
	if d := (Vec2{X: 3}).DistanceTo(Vec2{Y: 4}); d != 5 {
		t.Fatalf("expected distance 5, got %v", d)
	}
}
