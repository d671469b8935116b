// Package stage assembles the elements, the timeline and the coordinator of the demo
// from a configuration and translates host input into coordinator events.
// Every host drives the same stage, so they all behave alike.
package stage

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/esimov/sheetfab"
	"github.com/esimov/sheetfab/config"
	"github.com/esimov/sheetfab/element"
	"github.com/esimov/sheetfab/imop"
	"github.com/esimov/sheetfab/timeline"
	"github.com/esimov/sheetfab/utils"
)

// Lifecycle events recorded in the log.
const (
	EventShowSheet   = "about-to-show"
	EventSheetShown  = "shown"
	EventHideSheet   = "about-to-hide"
	EventSheetHidden = "hidden"
)

// Entry is a timestamped event of the log.
type Entry struct {
	At    time.Duration
	Event string
}

func (e Entry) String() string {
	return fmt.Sprintf("%8s  %s", utils.FormatTime(e.At), e.Event)
}

// Stage is the scene shared by the hosts.
type Stage struct {
	Timeline    *timeline.Timeline
	Coordinator *sheetfab.Coordinator

	Control *element.Control
	Sheet   *element.Box
	// Card is nil when the sheet is a plain surface.
	Card    *element.Card
	Overlay *element.Box

	Size    image.Point
	Palette config.Palette
	Items   []string

	Radius    int
	Elevation int

	scrim        *imop.Blend
	scrimOpacity float32

	start    time.Time
	log      []Entry
	settled  bool
	onChange func(Entry)
}

// New builds the stage described by cfg, with its clock starting at now.
func New(cfg *config.Config, now time.Time, logger *slog.Logger) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scrim := imop.NewBlend()
	if err := scrim.Set(cfg.Scrim.Blend); err != nil {
		return nil, err
	}

	s := &Stage{
		Timeline:     timeline.New(now),
		Control:      element.NewControl("control", cfg.Control.Rect()),
		Overlay:      element.NewBox("overlay", image.Rect(0, 0, cfg.Window.Width, cfg.Window.Height)),
		Size:         image.Pt(cfg.Window.Width, cfg.Window.Height),
		Palette:      cfg.Palette(),
		Items:        cfg.Sheet.Items,
		Radius:       cfg.Sheet.Radius,
		Elevation:    cfg.Sheet.Elevation,
		scrim:        scrim,
		scrimOpacity: cfg.Scrim.Opacity,
		start:        now,
	}

	var sheet sheetfab.Sheet
	if cfg.Sheet.Card {
		s.Card = element.NewCard("sheet", cfg.Sheet.Rect())
		s.Card.Radius, s.Card.Elevation = cfg.Sheet.Radius, cfg.Sheet.Elevation
		s.Sheet = s.Card.Box
		sheet = s.Card
	} else {
		s.Sheet = element.NewBox("sheet", cfg.Sheet.Rect())
		sheet = s.Sheet
	}
	s.Sheet.SetMargins(cfg.Sheet.Margins.Insets())
	s.Control.SetBackgroundColor(s.Palette.Control)
	s.Overlay.SetBackgroundColor(s.Palette.Scrim)

	sc := cfg.Sheetfab()
	sc.Logger = logger
	s.Coordinator = sheetfab.New(s.Timeline, s.Control, sheet, s.Overlay, s.Palette.Sheet, s.Palette.Control, sc)
	s.Coordinator.SetListener(sheetfab.ListenerFuncs{
		ShowSheet:   func() { s.record(EventShowSheet) },
		SheetShown:  func() { s.record(EventSheetShown) },
		HideSheet:   func() { s.record(EventHideSheet) },
		SheetHidden: func() { s.record(EventSheetHidden) },
	})

	return s, nil
}

// OnEvent registers a function called for every new log entry.
func (s *Stage) OnEvent(fn func(Entry)) {
	s.onChange = fn
}

func (s *Stage) record(ev string) {
	e := Entry{At: s.Elapsed(), Event: ev}
	s.log = append(s.log, e)
	if s.onChange != nil {
		s.onChange(e)
	}
}

// Log returns the recorded events.
func (s *Stage) Log() []Entry {
	return s.log
}

// Elapsed returns the time elapsed on the stage clock.
func (s *Stage) Elapsed() time.Duration {
	return s.Timeline.Now().Sub(s.start)
}

// Settle notifies the coordinator that the first layout pass is done.
func (s *Stage) Settle() {
	if s.settled {
		return
	}
	s.settled = true
	s.Coordinator.Events().Layout.Publish(sheetfab.Layout{})
}

// Advance runs one turn of the stage loop.
func (s *Stage) Advance(now time.Time) {
	s.Timeline.Advance(now)
}

// Press handles a pointer press at p, in window units.
// A press on a sheet item selects it, any other press on the overlay hides the sheet,
// and a press on the control shows it.
func (s *Stage) Press(p image.Point) {
	if s.Overlay.Visibility() == sheetfab.Visible {
		if i, ok := s.ItemAt(p); ok {
			s.record("item " + s.Items[i])
			s.Coordinator.Hide(nil)
			return
		}
		s.touch(sheetfab.TouchDown, p)
		return
	}
	if s.Control.Contains(p) {
		s.Coordinator.Events().Tap.Publish(sheetfab.Tap{})
	}
}

// Drag handles a pointer move while pressed.
func (s *Stage) Drag(p image.Point) {
	s.touch(sheetfab.TouchMove, p)
}

// Release handles the end of a press.
func (s *Stage) Release(p image.Point) {
	s.touch(sheetfab.TouchUp, p)
}

// Cancel handles an interrupted gesture.
func (s *Stage) Cancel() {
	s.touch(sheetfab.TouchCancel, image.Point{})
}

func (s *Stage) touch(action sheetfab.TouchAction, p image.Point) {
	if s.Overlay.Visibility() != sheetfab.Visible {
		return
	}
	s.Coordinator.Events().Touch.Publish(sheetfab.Touch{
		Action: action,
		X:      float32(p.X),
		Y:      float32(p.Y),
	})
}

// Toggle shows the sheet when it is hidden and hides it otherwise.
func (s *Stage) Toggle() {
	if s.Coordinator.State() == sheetfab.Hidden {
		s.Coordinator.Show()
		return
	}
	s.Coordinator.Hide(nil)
}

// Rest hides the sheet, if needed, and then the control.
func (s *Stage) Rest() {
	s.Coordinator.HideThenRest()
}

// Wake brings the control back at the given translation.
func (s *Stage) Wake(translationX, translationY float32) {
	s.Coordinator.ShowControl(translationX, translationY)
}

// ItemRect returns the on-screen rectangle of the i-th sheet item.
func (s *Stage) ItemRect(i int) image.Rectangle {
	r := s.Sheet.Bounds()
	n := len(s.Items)
	if n == 0 || i < 0 || i >= n {
		return image.Rectangle{}
	}
	h := r.Dy() / n
	return image.Rect(r.Min.X, r.Min.Y+i*h, r.Max.X, r.Min.Y+(i+1)*h)
}

// ItemAt returns the index of the sheet item under p.
// Items only respond once the sheet is fully shown.
func (s *Stage) ItemAt(p image.Point) (int, bool) {
	if s.Coordinator.State() != sheetfab.Shown {
		return 0, false
	}
	for i := range s.Items {
		if p.In(s.ItemRect(i)) {
			return i, true
		}
	}
	return 0, false
}

// SheetColor returns the current fill color of the sheet.
func (s *Stage) SheetColor() color.NRGBA {
	if s.Card != nil {
		return s.Card.Fill()
	}
	return s.Sheet.Background()
}

// ScrimOpacity returns the opacity of the overlay, its fade included.
func (s *Stage) ScrimOpacity() float32 {
	if s.Overlay.Visibility() != sheetfab.Visible {
		return 0
	}
	return s.scrimOpacity * s.Overlay.Transform().Alpha
}

// Dim returns the backdrop color as seen through the overlay.
func (s *Stage) Dim(backdrop color.NRGBA) color.NRGBA {
	opacity := s.ScrimOpacity()
	if opacity == 0 {
		return backdrop
	}
	return s.scrim.Mix(s.Palette.Scrim, backdrop, opacity)
}
