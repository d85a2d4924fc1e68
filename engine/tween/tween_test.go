package tween

import (
	"math"
	"testing"
)

func TestTween_StepsAndCompletes(t *testing.T) {
	tw := NewTweener()
	var last float64
	started, done := 0, 0
	h := tw.Start(Spec{
		Delay:      0.1,
		Duration:   0.2,
		OnStart:    func() { started++ },
		Step:       func(k float64) { last = k },
		OnComplete: func() { done++ },
	})
	tw.Update(0.05)
	if started != 0 {
		t.Fatalf("tween started before its delay")
	}
	tw.Update(0.15) // elapsed 0.2, progress 0.5
	if started != 1 || math.Abs(last-0.5) > 1e-9 {
		t.Fatalf("expected started and progress 0.5, got started=%d k=%f", started, last)
	}
	tw.Update(0.2)
	if done != 1 || last != 1 {
		t.Fatalf("expected completion with k=1, got done=%d k=%f", done, last)
	}
	if tw.Running(h) || tw.Len() != 0 {
		t.Fatalf("completed tween still live")
	}
}

func TestTween_KillSkipsCompletion(t *testing.T) {
	tw := NewTweener()
	done := 0
	h := tw.Start(Spec{Duration: 1, OnComplete: func() { done++ }})
	tw.Update(0.5)
	if !tw.Kill(h) {
		t.Fatalf("Kill of live tween should report true")
	}
	if tw.Kill(h) {
		t.Fatalf("second Kill should report false")
	}
	tw.Update(1)
	if done != 0 {
		t.Fatalf("killed tween ran OnComplete")
	}
}

func TestTween_KillGroupOnlyOwnTweens(t *testing.T) {
	tw := NewTweener()
	a, b := tw.NewGroup(), tw.NewGroup()
	fired := map[string]int{}
	tw.Call(a, 0.1, func() { fired["a1"]++ })
	tw.Call(a, 0.2, func() { fired["a2"]++ })
	tw.Call(b, 0.1, func() { fired["b"]++ })
	tw.Call(0, 0.1, func() { fired["none"]++ })

	if n := tw.KillGroup(a); n != 2 {
		t.Fatalf("expected 2 tweens killed, got %d", n)
	}
	if n := tw.KillGroup(0); n != 0 {
		t.Fatalf("zero group must never match, killed %d", n)
	}
	tw.Update(1)
	if fired["a1"] != 0 || fired["a2"] != 0 {
		t.Fatalf("group a callbacks fired after KillGroup: %v", fired)
	}
	if fired["b"] != 1 || fired["none"] != 1 {
		t.Fatalf("unrelated tweens should still fire: %v", fired)
	}
}

func TestTween_StartFromCallbackRunsNextFrame(t *testing.T) {
	tw := NewTweener()
	second := 0
	tw.Call(0, 0, func() {
		tw.Call(0, 0, func() { second++ })
	})
	tw.Update(0.01)
	if second != 0 {
		t.Fatalf("tween started inside Update advanced in the same frame")
	}
	tw.Update(0.01)
	if second != 1 {
		t.Fatalf("expected chained call to fire on the next frame")
	}
}

func TestEases_Endpoints(t *testing.T) {
	for name, e := range map[string]Ease{
		"linear": Linear, "outback": OutBack, "inback": InBack,
		"inoutback": InOutBack, "inoutsine": InOutSine,
	} {
		if math.Abs(e(0)) > 1e-4 || math.Abs(e(1)-1) > 1e-4 {
			t.Fatalf("%s: expected e(0)=0 and e(1)=1, got %f, %f", name, e(0), e(1))
		}
	}
	if OutBack(0.6) <= 1 {
		t.Fatalf("OutBack should overshoot past 1 before settling, got %f", OutBack(0.6))
	}
}
