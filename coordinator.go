package sheetfab

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"time"
)

// State is the state of the sheet transition.
type State int

const (
	Hidden State = iota
	Showing
	Shown
	Hiding
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Showing:
		return "showing"
	case Shown:
		return "shown"
	case Hiding:
		return "hiding"
	}
	return "unknown"
}

// Config holds the timing of the transition.
// A zero duration plays the corresponding animation without any visible motion.
type Config struct {
	SheetDuration     time.Duration
	ShowColorDuration time.Duration
	HideColorDuration time.Duration
	ControlDuration   time.Duration

	ShowOverlayDuration time.Duration
	HideOverlayDuration time.Duration

	// RevealDelay separates the control disappearing from the sheet appearing,
	// RestoreDelay is its mirror on the hide path.
	RevealDelay  time.Duration
	RestoreDelay time.Duration

	// Curve is the easing curve shared by every animation. Defaults to FastOutSlowIn.
	Curve Interpolator
	// Logger receives debug records of the state transitions. Defaults to discarding them.
	Logger *slog.Logger
}

// DefaultConfig returns the timing used by the material design sheet transition.
func DefaultConfig() *Config {
	const sheetDuration = 300 * time.Millisecond

	return &Config{
		SheetDuration:       sheetDuration,
		ShowColorDuration:   sheetDuration * 3 / 4,
		HideColorDuration:   sheetDuration * 3 / 4,
		ControlDuration:     300 * time.Millisecond,
		ShowOverlayDuration: sheetDuration,
		HideOverlayDuration: sheetDuration,
		Curve:               FastOutSlowIn,
	}
}

// Listener is notified of the sheet lifecycle.
// Every method is called synchronously from the loop.
type Listener interface {
	// OnShowSheet is called when the sheet is about to be shown.
	OnShowSheet()
	// OnSheetShown is called once the sheet is fully shown.
	OnSheetShown()
	// OnHideSheet is called when the sheet is about to be hidden.
	OnHideSheet()
	// OnSheetHidden is called once the sheet is fully hidden.
	OnSheetHidden()
}

// ListenerFuncs adapts optional functions to the Listener interface.
type ListenerFuncs struct {
	ShowSheet   func()
	SheetShown  func()
	HideSheet   func()
	SheetHidden func()
}

func (l ListenerFuncs) OnShowSheet()   { call(l.ShowSheet) }
func (l ListenerFuncs) OnSheetShown()  { call(l.SheetShown) }
func (l ListenerFuncs) OnHideSheet()   { call(l.HideSheet) }
func (l ListenerFuncs) OnSheetHidden() { call(l.SheetHidden) }

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// Coordinator sequences the control, sheet and overlay animations and keeps
// the transition state consistent under repeated show and hide requests.
type Coordinator struct {
	cfg    Config
	loop   Loop
	logger *slog.Logger

	control Control
	events  Events
	unsubs  []func()

	controlAnim *ControlAnimator
	sheetAnim   *SheetAnimator
	overlayAnim *OverlayAnimator

	state State
	// hideAfterShown is set by a hide request arriving while the sheet is showing.
	hideAfterShown bool
	// pendingHide collects the completion callbacks of the deferred hide.
	pendingHide func()
	// hideDone collects the completion callbacks of the hide in flight.
	hideDone func()
	// restAfterHide hides the control once the sheet is hidden.
	restAfterHide bool
	// restoreAt is the translation the control comes back at after the sheet hides.
	restoreAt    [2]float32
	hasRestoreAt bool

	anchor   image.Point
	listener Listener
}

// New creates a coordinator for the control, sheet and overlay elements.
// The sheet starts invisible and the overlay gone. A nil cfg means DefaultConfig.
//
// The coordinator subscribes to its own input buses: taps on the control show the sheet,
// a touch down on the overlay hides it, and the first settled layout initializes the
// control anchor. Hosts publish those events through Events.
func New(loop Loop, control Control, sheet Sheet, overlay Element, sheetColor, controlColor color.NRGBA, cfg *Config) *Coordinator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := &Coordinator{
		cfg:      *cfg,
		loop:     loop,
		control:  control,
		listener: ListenerFuncs{},
	}
	if c.cfg.Curve == nil {
		c.cfg.Curve = FastOutSlowIn
	}
	c.logger = c.cfg.Logger
	if c.logger == nil {
		c.logger = discardLogger()
	}

	c.controlAnim = NewControlAnimator(loop, control, c.cfg.Curve)
	c.sheetAnim = NewSheetAnimator(loop, sheet, sheetColor, controlColor, c.cfg.Curve, c.logger)
	c.overlayAnim = NewOverlayAnimator(loop, overlay, c.cfg.Curve)

	sheet.SetVisibility(Invisible)
	overlay.SetVisibility(Gone)

	c.unsubs = append(c.unsubs,
		c.events.Tap.Subscribe(func(Tap) {
			c.Show()
		}),
		c.events.Touch.Subscribe(func(t Touch) {
			// Only the first event of the gesture hides the sheet.
			if c.IsSheetVisible() && t.Action == TouchDown {
				c.Hide(nil)
			}
		}),
		c.events.Layout.Once(func(Layout) {
			c.updateAnchor()
		}),
	)

	return c
}

// Events returns the input buses the host publishes to.
func (c *Coordinator) Events() *Events {
	return &c.events
}

// Close removes the input subscriptions of the coordinator.
func (c *Coordinator) Close() {
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
}

// SetListener registers the lifecycle listener. A nil listener removes it.
func (c *Coordinator) SetListener(l Listener) {
	if l == nil {
		l = ListenerFuncs{}
	}
	c.listener = l
}

// State returns the current transition state.
func (c *Coordinator) State() State {
	return c.state
}

// IsAnimating reports whether the sheet is being shown or hidden.
func (c *Coordinator) IsAnimating() bool {
	return c.state == Showing || c.state == Hiding
}

// IsSheetVisible reports whether the sheet is visible.
func (c *Coordinator) IsSheetVisible() bool {
	return c.sheetAnim.IsVisible()
}

// Anchor returns the rest position of the control center.
func (c *Coordinator) Anchor() image.Point {
	return c.anchor
}

// RevealDirection returns the direction the sheet expands towards.
func (c *Coordinator) RevealDirection() RevealDirection {
	return c.sheetAnim.RevealDirection()
}

// ShowControl moves the control anchor by the given translation and shows the control
// there, unless the sheet is visible, in which case the control reappears at the new
// anchor once the sheet is hidden.
func (c *Coordinator) ShowControl(translationX, translationY float32) {
	c.setAnchor(translationX, translationY)
	if c.IsSheetVisible() {
		c.restoreAt = [2]float32{translationX, translationY}
		c.hasRestoreAt = true
		return
	}
	c.hasRestoreAt = false
	c.control.Show(translationX, translationY)
}

// Show morphs the control into the sheet.
// It does nothing unless the sheet is hidden and at rest.
func (c *Coordinator) Show() {
	if c.state != Hidden {
		c.logger.Debug("show ignored", "state", c.state)
		return
	}
	c.setState(Showing)

	ph := &phase{done: c.sheetShown}
	c.overlayAnim.Show(c.cfg.ShowOverlayDuration, ph.hooks())
	c.morphIntoSheet(ph)

	c.listener.OnShowSheet()
}

// Hide morphs the sheet back into the control and calls onComplete once done.
//
// A hide requested while the sheet is being shown is deferred until it is shown.
// A hide requested while the sheet is being hidden starts nothing new, but onComplete
// still runs when the hide in flight completes.
// When the sheet is already hidden onComplete runs right away and the listener
// receives no event.
func (c *Coordinator) Hide(onComplete func()) {
	switch c.state {
	case Hidden:
		c.logger.Debug("hide ignored", "state", c.state)
		call(onComplete)
		return
	case Hiding:
		c.hideDone = join(c.hideDone, onComplete)
		return
	case Showing:
		c.logger.Debug("hide deferred until the sheet is shown")
		c.hideAfterShown = true
		c.pendingHide = join(c.pendingHide, onComplete)
		return
	}
	c.setState(Hiding)
	c.hideDone = onComplete

	ph := &phase{done: c.sheetHidden}
	c.overlayAnim.Hide(c.cfg.HideOverlayDuration, ph.hooks())
	c.morphFromSheet(ph)

	c.listener.OnHideSheet()
}

// HideThenRest hides the sheet, if it is visible, and then the control.
// The control is never hidden while the sheet is still on top of it.
func (c *Coordinator) HideThenRest() {
	if c.state == Hidden && !c.IsSheetVisible() {
		c.control.Hide()
		return
	}
	c.restAfterHide = true
	c.Hide(nil)
}

func (c *Coordinator) sheetShown() {
	c.setState(Shown)
	c.listener.OnSheetShown()

	if c.hideAfterShown {
		c.hideAfterShown = false
		done := c.pendingHide
		c.pendingHide = nil
		c.Hide(done)
	}
}

func (c *Coordinator) sheetHidden() {
	c.setState(Hidden)

	done := c.hideDone
	c.hideDone = nil
	call(done)

	c.listener.OnSheetHidden()

	if c.restAfterHide {
		c.restAfterHide = false
		c.control.Hide()
	}
}

func (c *Coordinator) morphIntoSheet(ph *phase) {
	// Refresh the anchor so that the control returns to the right place once the sheet hides.
	c.updateAnchor()

	c.sheetAnim.AlignWithControl(c.control.Frame())
	c.controlAnim.SetPivot(c.sheetAnim.RevealDirection().Pivot())
	c.controlAnim.MorphAway(c.cfg.ControlDuration, ph.hooks())

	hooks := ph.hooks()
	c.loop.Post(c.cfg.RevealDelay, func() {
		c.control.SetVisibility(Invisible)
		c.sheetAnim.RevealFromControl(c.cfg.SheetDuration, c.cfg.ShowColorDuration, hooks)
	})
}

func (c *Coordinator) morphFromSheet(ph *phase) {
	c.sheetAnim.CollapseIntoControl(c.cfg.SheetDuration, c.cfg.HideColorDuration, ph.hooks())

	hooks := ph.hooks()
	c.loop.Post(c.cfg.RestoreDelay, func() {
		c.sheetAnim.SetVisibility(Invisible)
		if c.hasRestoreAt {
			c.hasRestoreAt = false
			c.control.SetTranslation(c.restoreAt[0], c.restoreAt[1])
		}
		c.controlAnim.MorphBack(c.cfg.ControlDuration, hooks)
	})
}

func (c *Coordinator) updateAnchor() {
	f := c.control.Frame()
	c.setAnchor(f.TranslationX, f.TranslationY)
}

// setAnchor computes the control center it would have at the given translation.
func (c *Coordinator) setAnchor(translationX, translationY float32) {
	f := c.control.Frame()
	c.anchor = image.Point{
		X: round(f.X + float32(f.Width/2) + (translationX - f.TranslationX)),
		Y: round(f.Y + float32(f.Height/2) + (translationY - f.TranslationY)),
	}
}

func (c *Coordinator) setState(s State) {
	c.logger.Debug("sheet transition", "from", c.state, "to", s)
	c.state = s
}

// phase calls done once every animation it handed hooks to has ended,
// whatever the order the durations make them end in.
type phase struct {
	pending int
	done    func()
}

func (p *phase) hooks() *Hooks {
	p.pending++
	return &Hooks{OnEnd: p.end}
}

func (p *phase) end() {
	p.pending--
	if p.pending == 0 {
		p.done()
	}
}

func join(a, b func()) func() {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func() {
		a()
		b()
	}
}

// round rounds half up, towards positive infinity.
func round(v float32) int {
	return int(math.Floor(float64(v) + 0.5))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
