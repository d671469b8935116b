package sheetfab_test

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/esimov/sheetfab"
	"github.com/esimov/sheetfab/element"
	"github.com/esimov/sheetfab/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

var (
	epoch        = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sheetColor   = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
	controlColor = color.NRGBA{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff}
)

type fixture struct {
	tl      *timeline.Timeline
	control *element.Control
	sheet   *element.Card
	overlay *element.Box
	c       *sheetfab.Coordinator

	events []string
}

func newFixture(t *testing.T, cfg *sheetfab.Config) *fixture {
	t.Helper()

	f := &fixture{
		tl:      timeline.New(epoch),
		control: element.NewControl("fab", image.Rect(0, 0, 56, 56)),
		sheet:   element.NewCard("sheet", image.Rect(-200, -200, 100, 200)),
		overlay: element.NewBox("overlay", image.Rect(-400, -400, 400, 400)),
	}
	f.sheet.SetVisibility(sheetfab.Gone)
	f.overlay.SetVisibility(sheetfab.Gone)

	f.c = sheetfab.New(f.tl, f.control, f.sheet, f.overlay, sheetColor, controlColor, cfg)
	f.c.SetListener(sheetfab.ListenerFuncs{
		ShowSheet:   func() { f.record("about-to-show") },
		SheetShown:  func() { f.record("shown") },
		HideSheet:   func() { f.record("about-to-hide") },
		SheetHidden: func() { f.record("hidden") },
	})
	return f
}

func (f *fixture) record(ev string) {
	f.events = append(f.events, ev)
}

func (f *fixture) settle(t *testing.T) {
	t.Helper()
	require.True(t, f.tl.Drain(frame, 1000), "timeline did not settle")
}

func TestCoordinator_EndToEnd(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, nil)

	var visibleAfterAboutToShow, visibleAfterShown bool
	f.c.SetListener(sheetfab.ListenerFuncs{
		ShowSheet: func() {
			f.record("about-to-show")
			visibleAfterAboutToShow = f.c.IsSheetVisible()
		},
		SheetShown: func() {
			f.record("shown")
			visibleAfterShown = f.c.IsSheetVisible()
		},
	})
	assert.False(f.c.IsSheetVisible())
	assert.Equal(sheetfab.Gone, f.overlay.Visibility())

	f.c.Show()
	assert.Equal(sheetfab.Showing, f.c.State())
	assert.True(f.c.IsAnimating())
	assert.False(visibleAfterAboutToShow)

	f.settle(t)
	assert.Equal([]string{"about-to-show", "shown"}, f.events)
	assert.True(visibleAfterShown)
	assert.True(f.c.IsSheetVisible())
	assert.Equal(sheetfab.Shown, f.c.State())
	assert.False(f.c.IsAnimating())

	assert.Equal(sheetfab.Invisible, f.control.Visibility())
	assert.Equal(sheetfab.Visible, f.overlay.Visibility())
	assert.Equal(sheetfab.Identity, f.sheet.Transform())
	assert.Equal(sheetColor, f.sheet.CardBackground())

	// The sheet does not fit to the left of the control, so it is aligned on the left edges.
	assert.Equal(float32(0), f.sheet.Frame().X)
	assert.Equal(float32(0), f.sheet.Frame().Y)
	assert.Equal(sheetfab.RevealDirection{X: sheetfab.RevealRight, Y: sheetfab.RevealDown}, f.c.RevealDirection())
	assert.Equal(image.Pt(28, 28), f.c.Anchor())
}

func TestCoordinator_ShowTiming(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, nil)

	f.c.Show()
	// The reveal continuation and all the animations start on the first turn.
	f.tl.Step(frame)
	assert.True(f.c.IsSheetVisible())
	assert.Equal(sheetfab.Invisible, f.control.Visibility())

	f.tl.Step(150 * time.Millisecond)
	alpha := f.sheet.Transform().Alpha
	assert.Greater(alpha, float32(0))
	assert.Less(alpha, float32(1))

	f.tl.Step(149 * time.Millisecond)
	assert.Equal(sheetfab.Showing, f.c.State())
	f.tl.Step(time.Millisecond)
	assert.Equal(sheetfab.Shown, f.c.State())
	assert.Equal([]string{"about-to-show", "shown"}, f.events)
}

func TestCoordinator_ShowIdempotent(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, nil)

	f.c.Show()
	f.c.Show()
	f.tl.Step(frame)
	f.c.Show()
	assert.True(f.tl.Animating())

	f.settle(t)
	f.c.Show()
	assert.False(f.tl.Pending())
	assert.Equal(sheetfab.Shown, f.c.State())
	assert.Equal([]string{"about-to-show", "shown"}, f.events)
}

func TestCoordinator_HideDeferredUntilShown(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, nil)

	var done []string
	f.c.Show()
	f.c.Hide(func() { done = append(done, "first") })
	f.tl.Step(frame)
	f.c.Hide(func() { done = append(done, "second") })
	assert.Equal(sheetfab.Showing, f.c.State())

	f.settle(t)
	assert.Equal([]string{"about-to-show", "shown", "about-to-hide", "hidden"}, f.events)
	assert.Equal([]string{"first", "second"}, done)
	assert.Equal(sheetfab.Hidden, f.c.State())
	assert.False(f.c.IsSheetVisible())
}

func TestCoordinator_Hide(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, nil)

	f.c.Show()
	f.settle(t)
	f.events = nil

	calls := 0
	f.c.Hide(func() { calls++ })
	assert.Equal(sheetfab.Hiding, f.c.State())
	assert.True(f.c.IsAnimating())

	f.c.Hide(func() { calls++ })
	f.c.Show()
	f.tl.Step(frame)
	// The sheet is swapped for the control right away.
	assert.False(f.c.IsSheetVisible())
	assert.Equal(sheetfab.Visible, f.control.Visibility())

	f.settle(t)
	assert.Equal([]string{"about-to-hide", "hidden"}, f.events)
	assert.Equal(2, calls)
	assert.Equal(sheetfab.Hidden, f.c.State())
	assert.Equal(sheetfab.Gone, f.overlay.Visibility())
	assert.Equal(sheetfab.Identity, f.control.Transform())
	assert.Equal(sheetfab.Identity, f.overlay.Transform())
}

func TestCoordinator_HideWhenHidden(t *testing.T) {
	f := newFixture(t, nil)

	calls := 0
	f.c.Hide(func() { calls++ })
	f.c.Hide(nil)

	assert.Equal(t, 1, calls)
	assert.Empty(t, f.events)
	assert.False(t, f.tl.Pending())
}

func TestCoordinator_NoShowHideOverlap(t *testing.T) {
	f := newFixture(t, nil)
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		switch rnd.Intn(4) {
		case 0:
			f.c.Show()
		case 1:
			f.c.Hide(nil)
		case 2:
			f.c.Events().Touch.Publish(sheetfab.Touch{Action: sheetfab.TouchDown})
		default:
			f.tl.Step(time.Duration(rnd.Intn(120)) * time.Millisecond)
		}
		state := f.c.State()
		assert.Equal(t, state == sheetfab.Showing || state == sheetfab.Hiding, f.c.IsAnimating())
	}
	f.settle(t)

	// Every cycle runs to completion before the next one starts.
	cycle := []string{"about-to-show", "shown", "about-to-hide", "hidden"}
	for i, ev := range f.events {
		assert.Equal(t, cycle[i%len(cycle)], ev, "event %d", i)
	}
}

func TestCoordinator_HideThenRest(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, nil)

	f.c.Show()
	f.settle(t)

	var controlAtHidden sheetfab.Visibility
	f.c.SetListener(sheetfab.ListenerFuncs{
		SheetHidden: func() {
			f.record("hidden")
			controlAtHidden = f.control.Visibility()
		},
	})
	f.c.HideThenRest()
	f.settle(t)

	assert.Equal([]string{"about-to-show", "shown", "hidden"}, f.events)
	assert.Equal(sheetfab.Visible, controlAtHidden)
	assert.Equal(sheetfab.Gone, f.control.Visibility())
}

func TestCoordinator_HideThenRestWhileHidden(t *testing.T) {
	f := newFixture(t, nil)

	f.c.HideThenRest()
	assert.Equal(t, sheetfab.Gone, f.control.Visibility())
	assert.Empty(t, f.events)
}

func TestCoordinator_HideThenRestWhileShowing(t *testing.T) {
	f := newFixture(t, nil)

	f.c.Show()
	f.c.HideThenRest()
	f.settle(t)

	assert.Equal(t, []string{"about-to-show", "shown", "about-to-hide", "hidden"}, f.events)
	assert.Equal(t, sheetfab.Gone, f.control.Visibility())
}

func TestCoordinator_CustomDurations(t *testing.T) {
	assert := assert.New(t)

	cfg := sheetfab.DefaultConfig()
	cfg.ControlDuration = 600 * time.Millisecond
	cfg.ShowColorDuration = 450 * time.Millisecond
	cfg.RevealDelay = 50 * time.Millisecond
	f := newFixture(t, cfg)

	f.c.Show()
	f.tl.Advance(epoch)
	f.tl.RunFor(400*time.Millisecond, time.Millisecond)
	assert.Equal(sheetfab.Showing, f.c.State())

	// The phase settles with its slowest animation, the control fade here.
	f.tl.RunFor(199*time.Millisecond, time.Millisecond)
	assert.Equal(sheetfab.Showing, f.c.State())
	f.tl.Step(time.Millisecond)
	assert.Equal(sheetfab.Shown, f.c.State())
	assert.Equal(sheetColor, f.sheet.CardBackground())

	f.c.Hide(nil)
	f.tl.Advance(f.tl.Now())
	f.tl.Step(599 * time.Millisecond)
	assert.Equal(sheetfab.Hiding, f.c.State())
	f.tl.Step(time.Millisecond)
	assert.Equal(sheetfab.Hidden, f.c.State())
	assert.Equal([]string{"about-to-show", "shown", "about-to-hide", "hidden"}, f.events)
}

func TestCoordinator_ZeroDurations(t *testing.T) {
	f := newFixture(t, &sheetfab.Config{})

	f.c.Show()
	f.tl.Advance(epoch)
	assert.Equal(t, sheetfab.Shown, f.c.State())

	f.c.Hide(nil)
	f.tl.Advance(epoch)
	assert.Equal(t, sheetfab.Hidden, f.c.State())
	assert.Equal(t, []string{"about-to-show", "shown", "about-to-hide", "hidden"}, f.events)
}

func TestCoordinator_Input(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, nil)
	ev := f.c.Events()

	// Touches are ignored while the sheet is hidden.
	ev.Touch.Publish(sheetfab.Touch{Action: sheetfab.TouchDown})
	assert.Equal(sheetfab.Hidden, f.c.State())

	ev.Tap.Publish(sheetfab.Tap{})
	assert.Equal(sheetfab.Showing, f.c.State())
	f.settle(t)

	for _, action := range []sheetfab.TouchAction{sheetfab.TouchMove, sheetfab.TouchUp, sheetfab.TouchCancel} {
		ev.Touch.Publish(sheetfab.Touch{Action: action, X: 10, Y: 10})
		assert.Equal(sheetfab.Shown, f.c.State())
	}
	ev.Touch.Publish(sheetfab.Touch{Action: sheetfab.TouchDown, X: 10, Y: 10})
	assert.Equal(sheetfab.Hiding, f.c.State())
	f.settle(t)

	f.c.Close()
	assert.Equal(0, ev.Tap.Len())
	assert.Equal(0, ev.Touch.Len())
	assert.Equal(0, ev.Layout.Len())
	ev.Tap.Publish(sheetfab.Tap{})
	assert.Equal(sheetfab.Hidden, f.c.State())
}

func TestCoordinator_LayoutInitializesAnchorOnce(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, nil)
	ev := f.c.Events()

	assert.Equal(image.Point{}, f.c.Anchor())
	assert.Equal(1, ev.Layout.Len())

	f.control.Layout(image.Rect(100, 200, 156, 256))
	f.control.SetTranslation(10.4, 0)
	ev.Layout.Publish(sheetfab.Layout{})
	assert.Equal(image.Pt(138, 228), f.c.Anchor())
	assert.Equal(0, ev.Layout.Len())

	f.control.Layout(image.Rect(0, 0, 56, 56))
	ev.Layout.Publish(sheetfab.Layout{})
	assert.Equal(image.Pt(138, 228), f.c.Anchor())
}

func TestCoordinator_ShowControl(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, nil)

	f.control.Hide()
	f.c.ShowControl(0, -20)
	assert.Equal(sheetfab.Visible, f.control.Visibility())
	assert.Equal(float32(-20), f.control.Frame().TranslationY)
	assert.Equal(image.Pt(28, 8), f.c.Anchor())

	f.c.Show()
	f.settle(t)
	f.c.ShowControl(0, 0)
	assert.Equal(sheetfab.Invisible, f.control.Visibility())
	assert.Equal(image.Pt(28, 28), f.c.Anchor())

	// The last request wins and only moves the control once the sheet is hidden.
	f.c.ShowControl(0, -100)
	assert.Equal(image.Pt(28, -72), f.c.Anchor())
	assert.Equal(float32(-20), f.control.Frame().TranslationY)

	f.c.Hide(nil)
	f.settle(t)
	assert.Equal(sheetfab.Hidden, f.c.State())
	assert.Equal(sheetfab.Visible, f.control.Visibility())
	assert.Equal(sheetfab.Identity, f.control.Transform())
	assert.Equal(float32(0), f.control.Frame().TranslationX)
	assert.Equal(float32(-100), f.control.Frame().TranslationY)
	assert.Equal(image.Pt(28, -72), f.c.Anchor())

	// The next cycle starts from the restored position.
	f.c.Show()
	assert.Equal(image.Pt(28, -72), f.c.Anchor())
}

func TestCoordinator_TintFailureIsSwallowed(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	cfg := sheetfab.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tl := timeline.New(epoch)
	control := element.NewControl("fab", image.Rect(0, 0, 56, 56))
	sheet := element.NewFlatCard("sheet", image.Rect(-200, -200, 100, 200))
	overlay := element.NewBox("overlay", image.Rect(0, 0, 10, 10))
	c := sheetfab.New(tl, control, sheet, overlay, sheetColor, controlColor, cfg)

	c.Show()
	require.True(t, tl.Drain(frame, 1000))

	assert.Equal(sheetfab.Shown, c.State())
	assert.Equal(color.NRGBA{}, sheet.Background())
	assert.Equal(1, strings.Count(buf.String(), "card background not available"))
	assert.Contains(buf.String(), "to=shown")
}

func TestCoordinator_PlainSheetBackground(t *testing.T) {
	tl := timeline.New(epoch)
	control := element.NewControl("fab", image.Rect(0, 0, 56, 56))
	sheet := element.NewBox("sheet", image.Rect(-200, -200, 100, 200))
	overlay := element.NewBox("overlay", image.Rect(0, 0, 10, 10))
	c := sheetfab.New(tl, control, sheet, overlay, sheetColor, controlColor, nil)

	c.Show()
	tl.Step(frame)
	assert.Equal(t, controlColor, sheet.Background())

	require.True(t, tl.Drain(frame, 1000))
	assert.Equal(t, sheetColor, sheet.Background())
}
