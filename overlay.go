package sheetfab

import "time"

// OverlayAnimator fades the dimming backdrop shown behind the sheet.
type OverlayAnimator struct {
	overlay Element
	loop    Loop
	curve   Interpolator
}

// NewOverlayAnimator creates an animator bound to the overlay.
func NewOverlayAnimator(loop Loop, overlay Element, curve Interpolator) *OverlayAnimator {
	return &OverlayAnimator{overlay: overlay, loop: loop, curve: curve}
}

// Show makes the overlay visible and fades it in.
func (a *OverlayAnimator) Show(d time.Duration, hooks *Hooks) {
	a.overlay.SetVisibility(Visible)

	from := Transform{Alpha: 0, ScaleX: 1, ScaleY: 1}
	a.overlay.SetTransform(from)
	a.loop.Animate(tween(a.overlay, from, Identity, d, a.curve, hooks))
}

// Hide fades the overlay out and removes it from the layout once done,
// so it stops intercepting touches.
func (a *OverlayAnimator) Hide(d time.Duration, hooks *Hooks) {
	to := Transform{Alpha: 0, ScaleX: 1, ScaleY: 1}
	done := &Hooks{
		OnStart: hooks.start,
		OnEnd: func() {
			a.overlay.SetVisibility(Gone)
			hooks.end()
		},
	}
	a.loop.Animate(tween(a.overlay, Identity, to, d, a.curve, done))
}

// IsVisible reports whether the overlay is currently shown.
func (a *OverlayAnimator) IsVisible() bool {
	return a.overlay.Visibility() == Visible
}
