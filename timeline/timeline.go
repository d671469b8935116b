// Package timeline implements the cooperative event loop the sheet transition runs on.
//
// A Timeline has no goroutine nor ticker of its own: the host advances it on every
// frame with its own clock (the Gio frame time, a bubbletea tick, or a virtual clock
// in tests). Every posted continuation and every animation callback runs from Advance,
// so all of them are serialized on the goroutine which calls it.
package timeline

import (
	"container/heap"
	"time"

	"github.com/esimov/sheetfab"
)

var _ sheetfab.Loop = (*Timeline)(nil)

// Timeline is a timer queue plus the set of running animations.
type Timeline struct {
	now    time.Time
	seq    uint64
	timers timerQueue
	anims  []*track
}

type track struct {
	anim    *sheetfab.Animation
	start   time.Time
	started bool
}

// New creates a timeline whose clock starts at start.
func New(start time.Time) *Timeline {
	return &Timeline{now: start}
}

// Now returns the time of the last turn.
func (t *Timeline) Now() time.Time {
	return t.now
}

// Post schedules fn to run on the first turn at or after delay from now.
// Continuations posted during a turn never run in that same turn.
func (t *Timeline) Post(delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	heap.Push(&t.timers, &timer{
		due: t.now.Add(delay),
		seq: t.seq,
		fn:  fn,
	})
	t.seq++
}

// Animate registers the animation. It starts on the next turn.
func (t *Timeline) Animate(a *sheetfab.Animation) {
	if a == nil {
		return
	}
	t.anims = append(t.anims, &track{anim: a})
}

// Advance runs one turn of the loop at the given time: first the due continuations,
// in due time order, then one frame of every running animation.
// A time earlier than the last turn is treated as the last turn.
func (t *Timeline) Advance(now time.Time) {
	if now.Before(t.now) {
		now = t.now
	}
	t.now = now

	t.runTimers()
	t.runFrames()
}

// Step advances the clock by d.
func (t *Timeline) Step(d time.Duration) {
	t.Advance(t.now.Add(d))
}

// RunFor advances the clock by d, one frame at a time.
func (t *Timeline) RunFor(d, frame time.Duration) {
	if frame <= 0 {
		frame = d
	}
	end := t.now.Add(d)
	for t.now.Before(end) {
		next := t.now.Add(frame)
		if next.After(end) {
			next = end
		}
		t.Advance(next)
	}
	// One more turn at the end time flushes the zero delay continuations.
	t.Advance(end)
}

// Drain advances the clock frame by frame until nothing is pending anymore
// or maxTurns turns have run. It reports whether the timeline is idle.
func (t *Timeline) Drain(frame time.Duration, maxTurns int) bool {
	for i := 0; i < maxTurns && t.Pending(); i++ {
		t.Step(frame)
	}
	return !t.Pending()
}

// Pending reports whether continuations or animations are waiting to run.
func (t *Timeline) Pending() bool {
	return len(t.timers) > 0 || len(t.anims) > 0
}

// Animating reports whether at least one animation is running.
func (t *Timeline) Animating() bool {
	return len(t.anims) > 0
}

// NextDeadline returns when the next turn is needed: now while animations run,
// otherwise the due time of the earliest continuation.
func (t *Timeline) NextDeadline() (time.Time, bool) {
	if len(t.anims) > 0 {
		return t.now, true
	}
	if len(t.timers) > 0 {
		return t.timers[0].due, true
	}
	return time.Time{}, false
}

func (t *Timeline) runTimers() {
	// Everything due is popped before running anything, so continuations posted
	// by these callbacks wait for the next turn.
	var due []*timer
	for len(t.timers) > 0 && !t.timers[0].due.After(t.now) {
		due = append(due, heap.Pop(&t.timers).(*timer))
	}
	for _, e := range due {
		e.fn()
	}
}

func (t *Timeline) runFrames() {
	if len(t.anims) == 0 {
		return
	}
	active := make([]*track, len(t.anims))
	copy(active, t.anims)

	finished := make(map[*track]bool)
	for _, tr := range active {
		a := tr.anim
		if !tr.started {
			tr.started = true
			tr.start = t.now
			if a.OnStart != nil {
				a.OnStart()
			}
		}

		fraction := float32(1)
		if a.Duration > 0 {
			elapsed := t.now.Sub(tr.start)
			if elapsed < a.Duration {
				fraction = float32(elapsed) / float32(a.Duration)
			}
		}
		if a.OnUpdate != nil {
			curve := a.Curve
			if curve == nil {
				curve = sheetfab.Linear
			}
			a.OnUpdate(curve(fraction))
		}
		if fraction >= 1 {
			finished[tr] = true
			if a.OnEnd != nil {
				a.OnEnd()
			}
		}
	}

	// Animations registered by the callbacks above are kept for the next turn.
	kept := t.anims[:0]
	for _, tr := range t.anims {
		if !finished[tr] {
			kept = append(kept, tr)
		}
	}
	for i := len(kept); i < len(t.anims); i++ {
		t.anims[i] = nil
	}
	t.anims = kept
}

type timer struct {
	due time.Time
	seq uint64
	fn  func()
}

// timerQueue is a min-heap ordered by due time, then by insertion order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}
