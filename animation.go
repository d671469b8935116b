package sheetfab

import "time"

// Hooks receives the start and end of an animation.
// Each hook fires at most once; a nil *Hooks is valid and ignored.
type Hooks struct {
	OnStart func()
	OnEnd   func()
}

func (h *Hooks) start() {
	if h == nil || h.OnStart == nil {
		return
	}
	fn := h.OnStart
	h.OnStart = nil
	fn()
}

func (h *Hooks) end() {
	if h == nil || h.OnEnd == nil {
		return
	}
	fn := h.OnEnd
	h.OnEnd = nil
	fn()
}

// Animation describes a single timed animation played by the Loop.
// OnUpdate receives the eased fraction of the elapsed duration.
type Animation struct {
	Duration time.Duration
	Curve    Interpolator

	OnStart  func()
	OnUpdate func(fraction float32)
	OnEnd    func()
}

// Loop is the single UI event loop every state change and callback is serialized on.
type Loop interface {
	// Post schedules fn to run on a later turn of the loop, after delay.
	// It never runs fn synchronously, even for a zero delay.
	Post(delay time.Duration, fn func())
	// Animate plays a asynchronously. The hooks of a are called on the loop.
	Animate(a *Animation)
}

// tween interpolates the transformation of el between from and to.
// The element is reset to Identity when the animation ends, before the end hook runs.
func tween(el Element, from, to Transform, d time.Duration, curve Interpolator, hooks *Hooks) *Animation {
	return &Animation{
		Duration: d,
		Curve:    curve,
		OnStart: func() {
			el.SetTransform(from)
			hooks.start()
		},
		OnUpdate: func(f float32) {
			el.SetTransform(lerpTransform(from, to, f))
		},
		OnEnd: func() {
			el.SetTransform(Identity)
			hooks.end()
		},
	}
}

func lerpTransform(from, to Transform, f float32) Transform {
	return Transform{
		Alpha:  lerp(from.Alpha, to.Alpha, f),
		ScaleX: lerp(from.ScaleX, to.ScaleX, f),
		ScaleY: lerp(from.ScaleY, to.ScaleY, f),
		PivotX: to.PivotX,
		PivotY: to.PivotY,
	}
}

func lerp(a, b, f float32) float32 {
	return a + (b-a)*f
}
