package sheetfab

import "time"

// ControlAnimator plays the fade and scale animation of the control
// as it disappears into the sheet and reappears from it.
type ControlAnimator struct {
	control Control
	loop    Loop
	curve   Interpolator

	// Corner the scale is anchored at, relative to the control's size.
	pivotX, pivotY float32
}

// NewControlAnimator creates an animator bound to the control.
func NewControlAnimator(loop Loop, control Control, curve Interpolator) *ControlAnimator {
	return &ControlAnimator{
		control: control,
		loop:    loop,
		curve:   curve,
		pivotX:  1,
		pivotY:  1,
	}
}

// SetPivot changes the corner the scale animation is anchored at.
func (a *ControlAnimator) SetPivot(x, y float32) {
	a.pivotX, a.pivotY = x, y
}

// MorphAway fades the control out while doubling its size.
func (a *ControlAnimator) MorphAway(d time.Duration, hooks *Hooks) {
	from := Transform{Alpha: 1, ScaleX: 1, ScaleY: 1, PivotX: a.pivotX, PivotY: a.pivotY}
	to := Transform{Alpha: 0, ScaleX: 2, ScaleY: 2, PivotX: a.pivotX, PivotY: a.pivotY}
	a.loop.Animate(tween(a.control, from, to, d, a.curve, hooks))
}

// MorphBack makes the control visible and plays MorphAway in reverse.
func (a *ControlAnimator) MorphBack(d time.Duration, hooks *Hooks) {
	a.control.SetVisibility(Visible)

	from := Transform{Alpha: 0, ScaleX: 2, ScaleY: 2, PivotX: a.pivotX, PivotY: a.pivotY}
	to := Transform{Alpha: 1, ScaleX: 1, ScaleY: 1, PivotX: a.pivotX, PivotY: a.pivotY}
	// Apply the start state at once so the control does not flash at full size
	// before the first animation frame.
	a.control.SetTransform(from)
	a.loop.Animate(tween(a.control, from, to, d, a.curve, hooks))
}
