// Package tween runs frame-driven animations identified by explicit handles.
// Every tween also belongs to a Group so an owner (a menu session, a single
// menu item) can stop exactly the animations it started and nothing else.
package tween

import "github.com/gen2brain/raylib-go/easings"

// Handle identifies one running tween or delayed call
type Handle uint64

// Group is an ownership token shared by related tweens. The zero Group is
// "ungrouped" and is never matched by KillGroup.
type Group uint64

// Ease maps linear progress in [0,1] to eased progress
type Ease func(t float64) float64

func ease(fn func(t, b, c, d float32) float32) Ease {
	return func(t float64) float64 { return float64(fn(float32(t), 0, 1, 1)) }
}

var (
	Linear    = ease(easings.LinearNone)
	OutBack   = ease(easings.BackOut)
	InBack    = ease(easings.BackIn)
	InOutBack = ease(easings.BackInOut)
	InOutSine = ease(easings.SineInOut)
)

// Spec describes a tween. Step receives eased progress every frame once the
// delay has elapsed, and exactly 1 on the final frame.
type Spec struct {
	Group      Group
	Delay      float64
	Duration   float64
	Ease       Ease
	OnStart    func()
	Step       func(k float64)
	OnComplete func()
}

type tween struct {
	handle  Handle
	spec    Spec
	elapsed float64
	started bool
	dead    bool
}

// Tweener owns all live tweens. It is advanced once per frame by Update.
type Tweener struct {
	active     []*tween
	nextHandle Handle
	nextGroup  Group
}

func NewTweener() *Tweener {
	return &Tweener{}
}

// NewGroup returns a fresh ownership token
func (tw *Tweener) NewGroup() Group {
	tw.nextGroup++
	return tw.nextGroup
}

// Start schedules a tween and returns its handle
func (tw *Tweener) Start(s Spec) Handle {
	tw.nextHandle++
	tw.active = append(tw.active, &tween{handle: tw.nextHandle, spec: s})
	return tw.nextHandle
}

// Call runs fn once after delay seconds, as a tween with no Step
func (tw *Tweener) Call(g Group, delay float64, fn func()) Handle {
	return tw.Start(Spec{Group: g, Delay: delay, OnComplete: fn})
}

// Kill stops a tween without running its completion callback. It reports
// whether the handle was live.
func (tw *Tweener) Kill(h Handle) bool {
	if h == 0 {
		return false
	}
	for _, t := range tw.active {
		if t.handle == h && !t.dead {
			t.dead = true
			return true
		}
	}
	return false
}

// KillGroup stops every live tween of g and returns how many it stopped
func (tw *Tweener) KillGroup(g Group) int {
	if g == 0 {
		return 0
	}
	n := 0
	for _, t := range tw.active {
		if t.spec.Group == g && !t.dead {
			t.dead = true
			n++
		}
	}
	return n
}

// Running reports whether h is scheduled or animating
func (tw *Tweener) Running(h Handle) bool {
	for _, t := range tw.active {
		if t.handle == h {
			return !t.dead
		}
	}
	return false
}

// Len returns the number of live tweens
func (tw *Tweener) Len() int {
	n := 0
	for _, t := range tw.active {
		if !t.dead {
			n++
		}
	}
	return n
}

// Update advances every tween by dt seconds. Tweens started from callbacks
// begin advancing on the next Update.
func (tw *Tweener) Update(dt float64) {
	snapshot := tw.active
	for _, t := range snapshot {
		if t.dead {
			continue
		}
		t.elapsed += dt
		if t.elapsed < t.spec.Delay {
			continue
		}
		if !t.started {
			t.started = true
			if t.spec.OnStart != nil {
				t.spec.OnStart()
				if t.dead {
					continue
				}
			}
		}
		p := 1.0
		if t.spec.Duration > 0 {
			p = (t.elapsed - t.spec.Delay) / t.spec.Duration
			if p > 1 {
				p = 1
			}
		}
		if t.spec.Step != nil {
			k := p
			if p < 1 && t.spec.Ease != nil {
				k = t.spec.Ease(p)
			}
			t.spec.Step(k)
		}
		if p >= 1 && !t.dead {
			t.dead = true
			if t.spec.OnComplete != nil {
				t.spec.OnComplete()
			}
		}
	}

	kept := tw.active[:0]
	for _, t := range tw.active {
		if !t.dead {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(tw.active); i++ {
		tw.active[i] = nil
	}
	tw.active = kept
}
