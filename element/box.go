// Package element provides in-memory implementations of the visual handles the
// sheet coordinator drives. Hosts render them and tests assert on them.
package element

import (
	"image"
	"image/color"
	"math"

	"github.com/esimov/sheetfab"
)

var (
	_ sheetfab.Element = (*Box)(nil)
	_ sheetfab.Sheet   = (*Box)(nil)
)

// Box is a rectangular element positioned inside a parent.
type Box struct {
	Name string

	left, top     int
	width, height int

	translationX, translationY float32
	// Screen location of the parent's origin.
	parentX, parentY int

	margins    sheetfab.Insets
	visibility sheetfab.Visibility
	transform  sheetfab.Transform
	background color.NRGBA
}

// NewBox creates a visible box laid out at r, relative to its parent.
func NewBox(name string, r image.Rectangle) *Box {
	return &Box{
		Name:       name,
		left:       r.Min.X,
		top:        r.Min.Y,
		width:      r.Dx(),
		height:     r.Dy(),
		visibility: sheetfab.Visible,
		transform:  sheetfab.Identity,
	}
}

// Frame returns the geometry of the box.
func (b *Box) Frame() sheetfab.Frame {
	x := float32(b.left) + b.translationX
	y := float32(b.top) + b.translationY
	return sheetfab.Frame{
		X:            x,
		Y:            y,
		Width:        b.width,
		Height:       b.height,
		TranslationX: b.translationX,
		TranslationY: b.translationY,
		ScreenX:      b.parentX + round(x),
		ScreenY:      b.parentY + round(y),
		Margins:      b.margins,
	}
}

// SetX moves the box horizontally by changing its translation.
func (b *Box) SetX(x float32) {
	b.translationX = x - float32(b.left)
}

// SetY moves the box vertically by changing its translation.
func (b *Box) SetY(y float32) {
	b.translationY = y - float32(b.top)
}

// SetTranslation sets the offset of the box from its laid out position.
func (b *Box) SetTranslation(x, y float32) {
	b.translationX, b.translationY = x, y
}

// SetParentOffset sets the screen location of the box's parent.
func (b *Box) SetParentOffset(x, y int) {
	b.parentX, b.parentY = x, y
}

// SetMargins sets the layout margins.
func (b *Box) SetMargins(m sheetfab.Insets) {
	b.margins = m
}

// Layout moves and resizes the box. The translation is kept.
func (b *Box) Layout(r image.Rectangle) {
	b.left, b.top = r.Min.X, r.Min.Y
	b.width, b.height = r.Dx(), r.Dy()
}

func (b *Box) Visibility() sheetfab.Visibility {
	return b.visibility
}

func (b *Box) SetVisibility(v sheetfab.Visibility) {
	b.visibility = v
}

// Transform returns the transformation currently applied.
func (b *Box) Transform() sheetfab.Transform {
	return b.transform
}

func (b *Box) SetTransform(t sheetfab.Transform) {
	b.transform = t
}

// Background returns the background color.
func (b *Box) Background() color.NRGBA {
	return b.background
}

func (b *Box) SetBackgroundColor(c color.NRGBA) {
	b.background = c
}

// Bounds returns the on-screen rectangle of the box, translation included.
func (b *Box) Bounds() image.Rectangle {
	f := b.Frame()
	return image.Rect(f.ScreenX, f.ScreenY, f.ScreenX+f.Width, f.ScreenY+f.Height)
}

// VisualBounds returns the on-screen rectangle once the scale transformation
// is applied around the pivot.
func (b *Box) VisualBounds() image.Rectangle {
	r := b.Bounds()
	t := b.transform

	px := float32(r.Min.X) + t.PivotX*float32(r.Dx())
	py := float32(r.Min.Y) + t.PivotY*float32(r.Dy())
	scale := func(v, pivot, s float32) int {
		return round(pivot + (v-pivot)*s)
	}
	return image.Rect(
		scale(float32(r.Min.X), px, t.ScaleX),
		scale(float32(r.Min.Y), py, t.ScaleY),
		scale(float32(r.Max.X), px, t.ScaleX),
		scale(float32(r.Max.Y), py, t.ScaleY),
	).Canon()
}

// Shown reports whether the box is drawn: visible and not fully transparent.
func (b *Box) Shown() bool {
	return b.visibility == sheetfab.Visible && b.transform.Alpha > 0
}

// Contains reports whether the on-screen point p hits the visible box.
func (b *Box) Contains(p image.Point) bool {
	return b.visibility == sheetfab.Visible && p.In(b.VisualBounds())
}

func round(v float32) int {
	return int(math.Floor(float64(v) + 0.5))
}
