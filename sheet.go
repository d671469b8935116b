package sheetfab

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/esimov/sheetfab/imop"
)

// SheetAnimator animates the sheet into and out of view and interpolates its
// background color between the control color and the sheet color.
type SheetAnimator struct {
	sheet  Sheet
	loop   Loop
	curve  Interpolator
	logger *slog.Logger

	sheetColor   color.NRGBA
	controlColor color.NRGBA

	direction  RevealDirection
	tintFailed bool
}

// NewSheetAnimator creates an animator bound to the sheet.
// The reveal direction defaults to up and to the left, which suits a control
// resting in the bottom right corner of the screen.
func NewSheetAnimator(loop Loop, sheet Sheet, sheetColor, controlColor color.NRGBA, curve Interpolator, logger *slog.Logger) *SheetAnimator {
	if logger == nil {
		logger = discardLogger()
	}
	return &SheetAnimator{
		sheet:        sheet,
		loop:         loop,
		curve:        curve,
		logger:       logger,
		sheetColor:   sheetColor,
		controlColor: controlColor,
		direction:    RevealDirection{X: RevealLeft, Y: RevealUp},
	}
}

// RevealFromControl shows the sheet as if the control was morphing into it.
// The hooks' end fires with whichever of the expand and color animations is longer,
// the expand animation winning ties.
func (a *SheetAnimator) RevealFromControl(showDuration, colorDuration time.Duration, hooks *Hooks) {
	a.sheet.SetVisibility(Visible)
	hooks.start()

	var expandHooks, colorHooks *Hooks
	if showDuration >= colorDuration {
		expandHooks = hooks
	} else {
		colorHooks = hooks
	}

	px, py := a.direction.Pivot()
	from := Transform{Alpha: 0, ScaleX: 0, ScaleY: 0, PivotX: px, PivotY: py}
	to := Transform{Alpha: 1, ScaleX: 1, ScaleY: 1, PivotX: px, PivotY: py}
	a.sheet.SetTransform(from)
	a.loop.Animate(tween(a.sheet, from, to, showDuration, a.curve, expandHooks))

	a.startColorAnimation(a.controlColor, a.sheetColor, colorDuration, colorHooks)
}

// CollapseIntoControl hides the sheet as if it was morphing back into the control.
// The color is not animated back to the control color: the sheet keeps its own color
// and only shrinks. The color duration still takes part in choosing when the hooks' end fires.
func (a *SheetAnimator) CollapseIntoControl(hideDuration, colorDuration time.Duration, hooks *Hooks) {
	hooks.start()

	var shrinkHooks *Hooks
	if hideDuration >= colorDuration {
		shrinkHooks = hooks
	} else {
		a.loop.Post(colorDuration, hooks.end)
	}

	px, py := a.direction.Pivot()
	from := Transform{Alpha: 1, ScaleX: 1, ScaleY: 1, PivotX: px, PivotY: py}
	to := Transform{Alpha: 0, ScaleX: 0, ScaleY: 0, PivotX: px, PivotY: py}
	a.loop.Animate(tween(a.sheet, from, to, hideDuration, a.curve, shrinkHooks))
}

func (a *SheetAnimator) startColorAnimation(start, end color.NRGBA, d time.Duration, hooks *Hooks) {
	from, to := imop.FromNRGBA(start), imop.FromNRGBA(end)

	a.loop.Animate(&Animation{
		Duration: d,
		Curve:    a.curve,
		OnStart:  hooks.start,
		OnUpdate: func(f float32) {
			a.setBackgroundColor(imop.Evaluate(f, from, to).NRGBA())
		},
		OnEnd: hooks.end,
	})
}

// setBackgroundColor prefers the dedicated card background of tintable sheets,
// replacing their background with a flat color would drop the card styling.
func (a *SheetAnimator) setBackgroundColor(c color.NRGBA) {
	if ts, ok := a.sheet.(TintableSurface); ok {
		if err := ts.SetCardBackgroundColor(c); err != nil && !a.tintFailed {
			a.tintFailed = true
			a.logger.Debug("card background not available", "err", err)
		}
		return
	}
	a.sheet.SetBackgroundColor(c)
}

// SetVisibility changes the visibility of the sheet.
func (a *SheetAnimator) SetVisibility(v Visibility) {
	a.sheet.SetVisibility(v)
}

// IsVisible reports whether the sheet is visible.
func (a *SheetAnimator) IsVisible() bool {
	return a.sheet.Visibility() == Visible
}

// RevealDirection returns the direction computed by the last alignment.
func (a *SheetAnimator) RevealDirection() RevealDirection {
	return a.direction
}
