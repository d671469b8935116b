package giohost

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/esimov/sheetfab/element"
	"github.com/esimov/sheetfab/utils"
)

// shadowColor is painted under elevated sheets.
var shadowColor = color.NRGBA{A: 0x40}

// pushTransform applies the scale and opacity of the box to the following operations.
// It reports false when the box is not drawn at all.
func pushTransform(ops *op.Ops, b *element.Box) (pop func(), ok bool) {
	if !b.Shown() || b.VisualBounds().Empty() {
		return nil, false
	}
	t := b.Transform()
	r := b.Bounds()

	pivot := f32.Pt(
		float32(r.Min.X)+t.PivotX*float32(r.Dx()),
		float32(r.Min.Y)+t.PivotY*float32(r.Dy()),
	)
	tr := op.Affine(f32.Affine2D{}.Scale(pivot, f32.Pt(t.ScaleX, t.ScaleY))).Push(ops)
	opacity := paint.PushOpacity(ops, utils.Clamp(t.Alpha, 0, 1))

	return func() {
		opacity.Pop()
		tr.Pop()
	}, true
}

// drawControl draws the round control with its icon.
func (g *Gui) drawControl(gtx C) {
	c := g.stage.Control
	pop, ok := pushTransform(gtx.Ops, c.Box)
	if !ok {
		return
	}
	defer pop()

	r := c.Bounds()
	paint.FillShape(gtx.Ops, c.Background(), clip.Ellipse(r).Op(gtx.Ops))

	if g.hasIcon {
		size := g.icon.Bounds().Size()
		off := r.Min.Add(r.Size().Sub(size).Div(2))

		defer op.Offset(off).Push(gtx.Ops).Pop()
		defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
		g.iconOp.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
	}
}

// drawScrim dims the whole window while the overlay is shown.
func (g *Gui) drawScrim(gtx C) {
	opacity := g.stage.ScrimOpacity()
	if opacity <= 0 {
		return
	}
	col := setColor(g.stage.Palette.Scrim)
	col.A = uint8(float32(col.A)*opacity + 0.5)

	paint.FillShape(gtx.Ops, col, clip.Rect(image.Rectangle{Max: g.stage.Size}).Op())
}

// drawSheet draws the sheet card, its shadow and its items.
func (g *Gui) drawSheet(gtx C) {
	s := g.stage
	pop, ok := pushTransform(gtx.Ops, s.Sheet)
	if !ok {
		return
	}
	defer pop()

	r := s.Sheet.Bounds()
	if s.Elevation > 0 {
		shadow := r.Add(image.Pt(0, s.Elevation/2))
		paint.FillShape(gtx.Ops, shadowColor, clip.UniformRRect(shadow, s.Radius).Op(gtx.Ops))
	}
	paint.FillShape(gtx.Ops, s.SheetColor(), clip.UniformRRect(r, s.Radius).Op(gtx.Ops))

	// The stage is already scaled to pixels, the labels are laid out in stage units.
	gtx.Metric = unit.Metric{PxPerDp: 1, PxPerSp: 1}
	for i, item := range s.Items {
		row := s.ItemRect(i)
		g.drawItem(gtx, row, item)
	}
}

func (g *Gui) drawItem(gtx C, row image.Rectangle, label string) {
	defer op.Offset(row.Min).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(row.Size())

	layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16)}.Layout(gtx, func(gtx C) D {
		return layout.W.Layout(gtx, material.Body1(g.theme, label).Layout)
	})
}
