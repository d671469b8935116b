// Package giohost renders the stage in a Gio window.
package giohost

import (
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/esimov/sheetfab/stage"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Gui is the Gio front end of a stage.
type Gui struct {
	stage *stage.Stage
	title string
	theme *material.Theme

	icon    image.Image
	iconOp  paint.ImageOp
	hasIcon bool

	// Pixels per window unit of the last frame.
	scale   float32
	pressed bool
}

// NewGUI initializes the Gio interface of the stage.
func NewGUI(s *stage.Stage, title string) *Gui {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	return &Gui{
		stage: s,
		title: title,
		theme: th,
		scale: 1,
	}
}

// SetIcon sets the image drawn in the middle of the control.
func (g *Gui) SetIcon(img image.Image) {
	g.icon = img
	g.iconOp = paint.NewImageOp(img)
	g.hasIcon = true
}

// Run opens the window and processes its events until it is closed.
// Like every Gio window loop it must not run on the main goroutine, see app.Main.
func (g *Gui) Run() error {
	w := new(app.Window)
	w.Option(
		app.Title(g.title),
		app.Size(unit.Dp(g.stage.Size.X), unit.Dp(g.stage.Size.Y)),
	)

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			if g.update(gtx) {
				w.Perform(system.ActionClose)
			}
			g.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// update feeds the input of the last frame to the stage and advances its loop.
// It reports whether the window should be closed.
func (g *Gui) update(gtx C) (quit bool) {
	g.scale = gtx.Metric.PxPerDp
	if g.scale <= 0 {
		g.scale = 1
	}
	// The window is laid out once the first frame arrives.
	g.stage.Settle()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: g,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		p := g.toStage(e.Position)
		switch e.Kind {
		case pointer.Press:
			g.pressed = true
			g.stage.Press(p)
		case pointer.Drag:
			if g.pressed {
				g.stage.Drag(p)
			}
		case pointer.Release:
			g.pressed = false
			g.stage.Release(p)
		case pointer.Cancel:
			g.pressed = false
			g.stage.Cancel()
		}
	}

	for {
		ev, ok := gtx.Event(
			key.Filter{Name: key.NameEscape},
			key.Filter{Name: key.NameSpace},
			key.Filter{Name: "H"},
			key.Filter{Name: "W"},
		)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		switch e.Name {
		case key.NameEscape:
			quit = true
		case key.NameSpace:
			g.stage.Toggle()
		case "H":
			g.stage.Rest()
		case "W":
			g.stage.Wake(0, 0)
		}
	}

	g.stage.Advance(gtx.Now)

	if deadline, ok := g.stage.Timeline.NextDeadline(); ok {
		if !deadline.After(gtx.Now) {
			gtx.Execute(op.InvalidateCmd{})
		} else {
			gtx.Execute(op.InvalidateCmd{At: deadline})
		}
	}
	return quit
}

// toStage converts a window position in pixels to stage units.
func (g *Gui) toStage(p f32.Point) image.Point {
	return image.Pt(int(p.X/g.scale), int(p.Y/g.scale))
}

// draw paints the stage: the background, the control, the overlay and the sheet on top.
func (g *Gui) draw(gtx C) D {
	s := g.stage
	size := gtx.Constraints.Max

	area := clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops)
	event.Op(gtx.Ops, g)
	paint.FillShape(gtx.Ops, s.Palette.Background, clip.Rect(image.Rectangle{Max: size}).Op())
	area.Pop()

	// Everything below is laid out in stage units.
	defer op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(g.scale, g.scale))).Push(gtx.Ops).Pop()

	g.drawControl(gtx)
	g.drawScrim(gtx)
	g.drawSheet(gtx)

	return D{Size: size}
}

// setColor converts any color to the non premultiplied form Gio paints with.
func setColor(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
