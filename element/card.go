package element

import (
	"errors"
	"image"
	"image/color"

	"github.com/esimov/sheetfab"
)

var (
	_ sheetfab.Sheet           = (*Card)(nil)
	_ sheetfab.TintableSurface = (*Card)(nil)
)

// ErrNoCardBackground is returned by cards without a dedicated background.
var ErrNoCardBackground = errors.New("card background is not supported")

// Card is a box with a dedicated card background which the sheet animation
// tints instead of the generic background.
type Card struct {
	*Box

	cardBackground color.NRGBA
	// Elevation is the shadow depth, in pixels, drawn by the hosts.
	Elevation int
	// Radius is the corner radius, in pixels.
	Radius int

	flat bool
}

// NewCard creates a visible card laid out at r.
func NewCard(name string, r image.Rectangle) *Card {
	return &Card{Box: NewBox(name, r)}
}

// NewFlatCard creates a card whose dedicated background is missing at runtime.
// Tinting it fails with ErrNoCardBackground.
func NewFlatCard(name string, r image.Rectangle) *Card {
	c := NewCard(name, r)
	c.flat = true
	return c
}

func (c *Card) SetCardBackgroundColor(col color.NRGBA) error {
	if c.flat {
		return ErrNoCardBackground
	}
	c.cardBackground = col
	return nil
}

// CardBackground returns the card background color.
func (c *Card) CardBackground() color.NRGBA {
	return c.cardBackground
}

// Fill returns the color the card is painted with.
func (c *Card) Fill() color.NRGBA {
	if c.flat {
		return c.Background()
	}
	return c.cardBackground
}
