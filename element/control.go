package element

import (
	"image"

	"github.com/esimov/sheetfab"
)

var _ sheetfab.Control = (*Control)(nil)

// Control is a box which can be shown at a given translation and hidden again.
type Control struct {
	*Box
}

// NewControl creates a visible control laid out at r.
func NewControl(name string, r image.Rectangle) *Control {
	return &Control{Box: NewBox(name, r)}
}

// Show makes the control visible at the given translation.
func (c *Control) Show(translationX, translationY float32) {
	c.SetTranslation(translationX, translationY)
	c.SetTransform(sheetfab.Identity)
	c.SetVisibility(sheetfab.Visible)
}

// Hide removes the control from the screen.
func (c *Control) Hide() {
	c.SetVisibility(sheetfab.Gone)
}
